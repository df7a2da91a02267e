package cipher

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Params carries the per-call settings a scheme may need.
type Params struct {
	Rotations int
}

// Scheme is a reversible text transformation that can be looked up by name.
type Scheme interface {
	// Name returns the unique, lowercase identifier for this scheme
	Name() string

	// Description returns a human-readable description
	Description() string

	// RequiresRotations reports whether Params.Rotations is meaningful
	RequiresRotations() bool

	Encrypt(text string, p Params) string
	Decrypt(text string, p Params) string
}

var (
	schemes   = make(map[string]Scheme)
	schemesMu sync.RWMutex
)

func init() {
	mustRegister(caesarScheme{})
	mustRegister(baconScheme{})
}

// Register adds a scheme to the registry.
func Register(s Scheme) error {
	if s == nil {
		return fmt.Errorf("cannot register nil scheme")
	}

	name := strings.ToLower(s.Name())
	if name == "" {
		return fmt.Errorf("scheme name cannot be empty")
	}

	schemesMu.Lock()
	defer schemesMu.Unlock()

	if _, exists := schemes[name]; exists {
		return fmt.Errorf("scheme %s is already registered", name)
	}

	schemes[name] = s
	return nil
}

func mustRegister(s Scheme) {
	if err := Register(s); err != nil {
		panic(err)
	}
}

// Lookup finds a scheme by name, ignoring case.
func Lookup(name string) (Scheme, bool) {
	schemesMu.RLock()
	defer schemesMu.RUnlock()

	s, ok := schemes[strings.ToLower(name)]
	return s, ok
}

// List returns every registered scheme sorted by name.
func List() []Scheme {
	schemesMu.RLock()
	defer schemesMu.RUnlock()

	out := make([]Scheme, 0, len(schemes))
	for _, s := range schemes {
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})

	return out
}

// Unregister removes a scheme (mainly for testing).
func Unregister(name string) {
	schemesMu.Lock()
	defer schemesMu.Unlock()

	delete(schemes, strings.ToLower(name))
}

type caesarScheme struct{}

func (caesarScheme) Name() string            { return "caesar" }
func (caesarScheme) Description() string     { return "Caesar rotation cipher over a-z" }
func (caesarScheme) RequiresRotations() bool { return true }

func (caesarScheme) Encrypt(text string, p Params) string { return CaesarEncrypt(text, p.Rotations) }
func (caesarScheme) Decrypt(text string, p Params) string { return CaesarDecrypt(text, p.Rotations) }

type baconScheme struct{}

func (baconScheme) Name() string            { return "bacon" }
func (baconScheme) Description() string     { return "Bacon cipher, five a/b symbols per letter" }
func (baconScheme) RequiresRotations() bool { return false }

func (baconScheme) Encrypt(text string, _ Params) string { return BaconEncrypt(text) }
func (baconScheme) Decrypt(text string, _ Params) string { return BaconDecrypt(text) }
