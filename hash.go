// Package hashkit provides deterministic seeded hash functions, double hashing
// for deriving bloom filter positions, and distribution diagnostics.
package hashkit

import "fmt"

// Hasher computes a 64-bit digest of an item. Function implements it; bloom
// filters and the quality evaluator consume it.
type Hasher interface {
	Hash(item any) uint64
}

// Function is an immutable (algorithm, seed) pair. Copies are independent
// and safe for concurrent use.
type Function struct {
	alg  Algorithm
	seed uint64
}

var _ Hasher = Function{}

// New returns a Function using the default algorithm with seed 0.
func New() Function {
	return Function{alg: Default}
}

// NewWithAlgorithm returns a Function for alg with seed 0.
func NewWithAlgorithm(alg Algorithm) Function {
	return Function{alg: alg}
}

// NewWithSeed returns a Function for alg keyed by seed.
func NewWithSeed(alg Algorithm, seed uint64) Function {
	return Function{alg: alg, seed: seed}
}

// GenerateFunctions returns count functions cycling default, murmur3, fnv1a.
// Seeds are the index times the 64-bit golden ratio, so consecutive
// functions do not share low-order seed bits.
func GenerateFunctions(count int) []Function {
	if count <= 0 {
		return []Function{}
	}
	cycle := [...]Algorithm{Default, Murmur3, FNV1a}

	fns := make([]Function, count)
	for i := range fns {
		fns[i] = NewWithSeed(cycle[i%len(cycle)], uint64(i)*gratio64)
	}
	return fns
}

func (f Function) Algorithm() Algorithm { return f.alg }

func (f Function) Seed() uint64 { return f.seed }

func (f Function) String() string {
	return fmt.Sprintf("%s/%#016x", f.alg, f.seed)
}

// Hash returns the digest of item. It depends only on the algorithm, the
// seed and the structural content of item, never on per-process state.
func (f Function) Hash(item any) uint64 {
	switch f.alg.kind {
	case KindMurmur3:
		return murmur3Hash(item, uint32(f.seed))
	case KindFNV1a:
		return fnv1aHash(item, f.seed)
	case KindSeeded:
		return mixSeeded(f.alg.base^f.seed, item)
	default:
		return mixSeeded(f.seed, item)
	}
}
