package hashkit

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const (
	// FNV-1a 64-bit parameters
	fnvOffset64 = 0xcbf29ce484222325
	fnvPrime64  = 0x100000001b3

	// MurmurHash3 fmix32 multipliers
	murmurMix1 = 0x85ebca6b
	murmurMix2 = 0xc2b2ae35

	// golden ratio multiplier used to spread generated seeds
	gratio64 = 0x9e3779b97f4a7c15
)

// mixer is the single fixed-key general-purpose 64-bit mixer shared by the
// default, murmur3 and seeded algorithms. xxHash64 with its zero seed is
// deterministic across calls and processes, unlike runtime map hashing.
type mixer struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newMixer() *mixer {
	return &mixer{d: xxhash.New()}
}

// writeUint64 feeds v as 8 little-endian bytes.
func (m *mixer) writeUint64(v uint64) {
	binary.LittleEndian.PutUint64(m.buf[:], v)
	_, _ = m.d.Write(m.buf[:])
}

// writeUint32 feeds v as 4 little-endian bytes.
func (m *mixer) writeUint32(v uint32) {
	binary.LittleEndian.PutUint32(m.buf[:4], v)
	_, _ = m.d.Write(m.buf[:4])
}

func (m *mixer) writeUint16(v uint16) {
	binary.LittleEndian.PutUint16(m.buf[:2], v)
	_, _ = m.d.Write(m.buf[:2])
}

func (m *mixer) sum() uint64 {
	return m.d.Sum64()
}

// mixSeeded hashes the seed (8 bytes) followed by the item.
func mixSeeded(seed uint64, item any) uint64 {
	m := newMixer()
	m.writeUint64(seed)
	writeItem(m, item)
	return m.sum()
}

// murmur3Hash runs the general mixer over the 32-bit seed and the item,
// then disperses the truncated result with the Murmur3 finalizer.
func murmur3Hash(item any, seed uint32) uint64 {
	m := newMixer()
	m.writeUint32(seed)
	writeItem(m, item)
	return uint64(fmix32(uint32(m.sum())))
}

// fmix32 is the MurmurHash3 32-bit finalizer.
func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= murmurMix1
	h ^= h >> 13
	h *= murmurMix2
	h ^= h >> 16
	return h
}

// fnv1aHash digests the item without a seed, then folds the 8 little-endian
// bytes of that digest into an FNV-1a accumulator keyed by seed.
func fnv1aHash(item any, seed uint64) uint64 {
	m := newMixer()
	writeItem(m, item)
	return fnv1aFold(m.sum(), seed)
}

// fnv1aFold is the standard byte-wise FNV-1a step over a 64-bit value:
// XOR the byte in, then multiply by the FNV prime.
func fnv1aFold(digest, seed uint64) uint64 {
	h := uint64(fnvOffset64) ^ seed
	for i := 0; i < 8; i++ {
		h ^= (digest >> (8 * i)) & 0xff
		h *= fnvPrime64
	}
	return h
}
