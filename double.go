package hashkit

// DoubleHasher derives many bounded indices from two digests using
// h(i) = (h1 + i*h2) mod m, avoiding k independent hash passes.
type DoubleHasher struct {
	a Function
	b Function
}

// NewDoubleHasher pairs the default algorithm with murmur3 so the two base
// digests come from different constructions.
func NewDoubleHasher() DoubleHasher {
	return NewDoubleHasherWithAlgorithms(Default, Murmur3)
}

// NewDoubleHasherWithAlgorithms pairs two algorithms with seed 0.
func NewDoubleHasherWithAlgorithms(a, b Algorithm) DoubleHasher {
	return DoubleHasher{a: NewWithAlgorithm(a), b: NewWithAlgorithm(b)}
}

// NewDoubleHasherFrom pairs two fully configured functions.
func NewDoubleHasherFrom(a, b Function) DoubleHasher {
	return DoubleHasher{a: a, b: b}
}

// Functions returns the two base functions.
func (d DoubleHasher) Functions() (Function, Function) {
	return d.a, d.b
}

// HashMultiple returns count indices in [0, bound). A bound of 0 yields count
// zeros.
func (d DoubleHasher) HashMultiple(item any, count int, bound uint64) []uint64 {
	if count <= 0 {
		return []uint64{}
	}
	return d.AppendMultiple(make([]uint64, 0, count), item, count, bound)
}

// AppendMultiple appends the same indices HashMultiple returns to dst.
func (d DoubleHasher) AppendMultiple(dst []uint64, item any, count int, bound uint64) []uint64 {
	if count <= 0 {
		return dst
	}
	if bound == 0 {
		for i := 0; i < count; i++ {
			dst = append(dst, 0)
		}
		return dst
	}

	h1 := d.a.Hash(item) % bound
	h2 := d.b.Hash(item) % bound
	// An even step shares a factor with an even bound and would cycle
	// through a strict subset of residues.
	if h2%2 == 0 {
		h2 = (h2 + 1) % bound
	}

	pos := h1
	for i := 0; i < count; i++ {
		dst = append(dst, pos)
		pos = addMod(pos, h2, bound)
	}
	return dst
}

// addMod returns (a + b) mod m for a, b < m without overflowing.
func addMod(a, b, m uint64) uint64 {
	if a >= m-b {
		return a - (m - b)
	}
	return a + b
}
