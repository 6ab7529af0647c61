package galaxy

import (
	"fmt"
	"math/rand"
	"strconv"
	"unicode/utf16"
)

// RNG is a small seeded generator (xmur3 seed hash feeding mulberry32).
// The same seed string always yields the same sequence on every platform.
type RNG struct {
	a uint32
}

// NewRNG seeds a generator from an arbitrary string. An empty seed draws a
// random one.
func NewRNG(seed string) *RNG {
	if seed == "" {
		seed = strconv.FormatFloat(rand.Float64(), 'g', -1, 64) // #nosec G404 -- unseeded fallback
	}
	return &RNG{a: xmur3(seed)()}
}

// Derive returns an independent stream for a related purpose, seeded by
// appending a suffix to the base seed.
func Derive(seed, suffix string) *RNG {
	return NewRNG(seed + "-" + suffix)
}

// Float64 returns the next value in [0,1).
func (r *RNG) Float64() float64 {
	r.a += 0x6D2B79F5
	t := r.a
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Range returns a value in [min,max).
func (r *RNG) Range(min, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// xmur3 hashes the UTF-16 code units of s into a 32-bit seed generator.
func xmur3(s string) func() uint32 {
	units := utf16.Encode([]rune(s))
	h := uint32(1779033703) ^ uint32(len(units))
	for _, c := range units {
		h = (h ^ uint32(c)) * 3432918353
		h = h<<13 | h>>19
	}
	return func() uint32 {
		h = (h ^ h>>16) * 2246822507
		h = (h ^ h>>13) * 3266489909
		h ^= h >> 16
		return h
	}
}

// RandomSeed returns a fresh PAX-#### token.
func RandomSeed() string {
	return fmt.Sprintf("PAX-%04d", rand.Intn(9999)) // #nosec G404 -- map seeds are not secrets
}
