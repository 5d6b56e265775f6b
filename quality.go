package hashkit

import (
	"math"
	"math/bits"

	"github.com/unkn0wn-root/hashkit/internal/mathutil"
)

const (
	avalancheSampleSize = 100 // leading items compared pairwise
	digestBits          = 64  // width of every digest
)

// Quality holds distribution diagnostics, each in [0, 1].
type Quality struct {
	Uniformity     float64 // 1.0 is perfectly uniform across buckets
	CollisionRate  float64 // share of items whose full digest repeats
	AvalancheScore float64 // 1.0 when adjacent digests differ in half their bits
}

// Evaluate hashes data with h and scores bucket uniformity, full-digest
// collisions and bit dispersion. Empty data or buckets <= 0 yields a zero
// Quality. It is meant for offline tuning, not the hot path.
//
// The avalanche score compares digests of adjacent sample items rather than
// single-bit variants of one item, since items are opaque. It measures
// inter-item bit independence, not true single-bit avalanche sensitivity.
func Evaluate[T any](h Hasher, data []T, buckets int) Quality {
	if len(data) == 0 || buckets <= 0 {
		return Quality{}
	}

	digests := make([]uint64, len(data))
	for i := range data {
		digests[i] = h.Hash(data[i])
	}

	return Quality{
		Uniformity:     mathutil.Clamp01(uniformity(digests, buckets)),
		CollisionRate:  mathutil.Clamp01(collisionRate(digests)),
		AvalancheScore: mathutil.Clamp01(avalancheScore(digests)),
	}
}

// uniformity maps the chi-square statistic against a uniform expectation
// to 1/(1 + chi2/buckets).
func uniformity(digests []uint64, buckets int) float64 {
	counts := make([]uint64, buckets)
	for _, d := range digests {
		counts[d%uint64(buckets)]++
	}
	expected := float64(len(digests)) / float64(buckets)
	chi := mathutil.ChiSquare(counts, expected)
	return 1 / (1 + chi/float64(buckets))
}

func collisionRate(digests []uint64) float64 {
	seen := make(map[uint64]struct{}, len(digests))
	for _, d := range digests {
		seen[d] = struct{}{}
	}
	return 1 - float64(len(seen))/float64(len(digests))
}

// avalancheScore is 1 - 2|r - 0.5| where r is the mean share of differing
// bits between each digest and its successor in the sample.
func avalancheScore(digests []uint64) float64 {
	n := len(digests)
	if n > avalancheSampleSize {
		n = avalancheSampleSize
	}
	pairs := n - 1
	if pairs <= 0 {
		return 0
	}

	var flipped int
	for i := 0; i < pairs; i++ {
		flipped += bits.OnesCount64(digests[i] ^ digests[i+1])
	}
	ratio := float64(flipped) / float64(pairs*digestBits)
	return 1 - 2*math.Abs(ratio-0.5)
}
