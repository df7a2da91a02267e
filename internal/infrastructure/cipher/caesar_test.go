package cipher_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irgordon/cipher-cli/internal/infrastructure/cipher"
)

// printableASCII returns every printable ASCII character once.
func printableASCII() string {
	var sb strings.Builder
	for r := rune(0x20); r < 0x7f; r++ {
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestCaesar_KnownVectors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		rotations int
		want      string
	}{
		{"uppercase", "A", 1, "B"},
		{"lowercase", "a", 1, "b"},
		{"wraps uppercase", "Z", 1, "A"},
		{"wraps lowercase", "z", 1, "a"},
		{"passes non letters", "Hi! 2024", 3, "Kl! 2024"},
		{"full turn", "abc", 26, "abc"},
		{"reduces large offsets", "abc", 54, "cde"},
		{"empty", "", 7, ""},
		{"non ascii letters untouched", "Ça va ü", 1, "Çb wb ü"},
		{"kelvin sign untouched", "\u212a", 1, "\u212a"},
		{"sample sentence", "Welcome to the hallowed chAmbers!", 54, "Ygneqog vq vjg jcnnqygf ejCodgtu!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cipher.CaesarEncrypt(tt.input, tt.rotations))
		})
	}
}

func TestCaesar_Decrypt(t *testing.T) {
	assert.Equal(t, "Welcome to the hallowed chAmbers!",
		cipher.CaesarDecrypt("Ygneqog vq vjg jcnnqygf ejCodgtu!", 54))
	assert.Equal(t, "Z", cipher.CaesarDecrypt("A", 1))
	assert.Equal(t, "z", cipher.CaesarDecrypt("a", 27))
}

func TestCaesar_RoundTrip(t *testing.T) {
	text := printableASCII()

	for k := 0; k <= 1000; k++ {
		got := cipher.CaesarDecrypt(cipher.CaesarEncrypt(text, k), k)
		if got != text {
			t.Fatalf("round trip failed for rotations=%d: got %q", k, got)
		}
	}
}

func TestCaesar_ZeroIsIdentity(t *testing.T) {
	text := printableASCII()
	assert.Equal(t, text, cipher.CaesarEncrypt(text, 0))
	assert.Equal(t, text, cipher.CaesarDecrypt(text, 0))
}

func TestCaesar_NegativeRotationsWrap(t *testing.T) {
	// Not a supported input, but it must stay deterministic and in range.
	assert.Equal(t, "Z", cipher.CaesarEncrypt("A", -1))
	assert.Equal(t, "y", cipher.CaesarEncrypt("b", -29))
	assert.Equal(t, "b", cipher.CaesarDecrypt("y", -29))
}

func TestCaesar_ExtremeRotations(t *testing.T) {
	// math.MaxInt64 % 26 == 7
	assert.Equal(t, "g", cipher.CaesarEncrypt("z", math.MaxInt64))
	assert.Equal(t, "G", cipher.CaesarEncrypt("Z", math.MaxInt64))

	for _, k := range []int{math.MaxInt64, math.MaxInt64 - 1, math.MinInt64, math.MinInt64 + 1} {
		got := cipher.CaesarDecrypt(cipher.CaesarEncrypt("Hello, World!", k), k)
		assert.Equal(t, "Hello, World!", got, "rotations=%d", k)
	}
}
