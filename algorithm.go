package hashkit

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant of an Algorithm.
type Kind uint8

const (
	KindDefault Kind = iota // xxHash64 over seed and item
	KindMurmur3             // 32-bit, Murmur3 finalizer
	KindFNV1a               // FNV-1a folded over the item digest
	KindSeeded              // xxHash64 keyed by base ^ seed
)

// Algorithm is a closed choice of digest algorithm. Only the seeded variant
// carries a base seed; the zero value is the default algorithm.
// Algorithms are comparable with ==.
type Algorithm struct {
	kind Kind
	base uint64
}

var (
	Default = Algorithm{kind: KindDefault}
	Murmur3 = Algorithm{kind: KindMurmur3}
	FNV1a   = Algorithm{kind: KindFNV1a}
)

// Seeded returns the explicit-seeded algorithm keyed by base.
func Seeded(base uint64) Algorithm {
	return Algorithm{kind: KindSeeded, base: base}
}

// Kind returns the variant tag.
func (a Algorithm) Kind() Kind { return a.kind }

// Base returns the base seed of a seeded algorithm, 0 otherwise.
func (a Algorithm) Base() uint64 { return a.base }

func (a Algorithm) String() string {
	switch a.kind {
	case KindDefault:
		return "default"
	case KindMurmur3:
		return "murmur3"
	case KindFNV1a:
		return "fnv1a"
	case KindSeeded:
		return fmt.Sprintf("seeded(%d)", a.base)
	default:
		return fmt.Sprintf("kind(%d)", uint8(a.kind))
	}
}

// ParseAlgorithm is the inverse of String. The seeded form also accepts
// "seeded:<base>"; base may be decimal or 0x-prefixed hex.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "default", "":
		return Default, nil
	case "murmur3", "murmur":
		return Murmur3, nil
	case "fnv1a", "fnv-1a", "fnv":
		return FNV1a, nil
	}

	var raw string
	switch {
	case strings.HasPrefix(name, "seeded(") && strings.HasSuffix(name, ")"):
		raw = name[len("seeded(") : len(name)-1]
	case strings.HasPrefix(name, "seeded:"):
		raw = name[len("seeded:"):]
	default:
		return Algorithm{}, newParseError(s, ErrUnknownAlgorithm)
	}

	base, err := ParseSeed(raw)
	if err != nil {
		return Algorithm{}, newParseError(s, err)
	}
	return Seeded(base), nil
}

// ParseSeed parses a decimal or 0x-prefixed hexadecimal 64-bit seed.
func ParseSeed(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
	}
	return v, nil
}
