// Package rng provides reproducible, seed-keyed random draws for world generation.
//
// Nothing here touches global random state except Basic, which exists for
// cosmetic choices that never need to be replayed.
package rng

import (
	"math"
	"math/rand/v2"
)

// Seed is a 32-bit key for a single deterministic draw.
type Seed uint32

const fnvOffset = 0x811c9dc5

// Hash32 mixes 32-bit input into a well-distributed 32-bit output.
// Murmur finalizer-style avalanching; stable across platforms and Go versions.
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// SeedOf folds any number of numeric parts (world seed, coordinates, noise
// samples, salts) into one Seed. Order matters.
func SeedOf(parts ...float64) Seed {
	h := uint32(fnvOffset)
	for _, p := range parts {
		if p == 0 {
			p = 0 // collapse -0
		}
		bits := math.Float64bits(p)
		h = Hash32(h ^ uint32(bits))
		h = Hash32(h ^ uint32(bits>>32))
	}
	return Seed(h)
}

// Unit returns the seed's draw in [0, 1).
func (s Seed) Unit() float64 {
	return float64(Hash32(uint32(s))) / (1 << 32)
}

// Seeded maps the seed's draw into [min, max], optionally rounded to the
// nearest integer. Same inputs always give the same output.
func Seeded(seed Seed, min, max float64, round bool) float64 {
	v := min + seed.Unit()*(max-min)
	if round {
		v = math.Round(v)
	}
	return v
}

// ChanceSeeded reports whether a percentage draw from seed is <= percent.
func ChanceSeeded(seed Seed, percent float64) bool {
	return Seeded(seed, 0, 100, false) <= percent
}

// Basic returns an integer in [min, max] from the process entropy source.
// Not reproducible; use only for transient cosmetic choices.
func Basic(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}
