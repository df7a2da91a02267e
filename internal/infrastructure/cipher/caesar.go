package cipher

import (
	"strings"
	"unicode"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// CaesarEncrypt shifts every ASCII letter in text forward by rotations positions,
// wrapping around the alphabet and keeping the letter's case. Anything that is not
// an ASCII letter is copied through unchanged.
//
// Callers are expected to pass a non-negative rotation count. Negative values are
// not rejected: they wrap like any other offset and simply shift the other way.
func CaesarEncrypt(text string, rotations int) string {
	return shift(text, rotations)
}

// CaesarDecrypt reverses CaesarEncrypt for the same rotation count.
func CaesarDecrypt(text string, rotations int) string {
	// Reduce before negating so math.MinInt cannot overflow
	return shift(text, -(rotations % len(alphabet)))
}

func shift(text string, offset int) string {
	// index+offset must not overflow for offsets near the int limits
	offset %= len(alphabet)

	var sb strings.Builder
	sb.Grow(len(text))

	for _, r := range text {
		if !isASCIILetter(r) {
			sb.WriteRune(r)
			continue
		}

		index := strings.IndexRune(alphabet, unicode.ToLower(r))
		replacement := rune(alphabet[wrap(index+offset)])
		if unicode.IsUpper(r) {
			replacement = unicode.ToUpper(replacement)
		}
		sb.WriteRune(replacement)
	}

	return sb.String()
}

// wrap reduces i into [0, len(alphabet)), sending negative values forward.
func wrap(i int) int {
	n := len(alphabet)
	return ((i % n) + n) % n
}
