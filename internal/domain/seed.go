// Package domain contains the delay injection and recovery engine.
package domain

import (
	"fmt"
	"math"

	m "github.com/growthboot/FlakeMonster/internal/model"
)

// SeedContext builds the sub-seed context for one injection point. Two
// distinct points never share a context by construction, barring synthetic
// container-name collisions between anonymous functions.
func SeedContext(filePath, containerName string, index int) string {
	return fmt.Sprintf("%s:%s:%d", filePath, containerName, index)
}

// Delay derives the deterministic delay for a seed context, scaled linearly
// into [min, max]. All arithmetic is pinned 32-bit wraparound so identical
// inputs reproduce bit-identical output across processes and platforms.
func Delay(baseSeed int32, context string, min, max float64) float64 {
	contextSeed := uint32(baseSeed) + rollingHash(context)
	unit := float64(mix32(contextSeed)) / float64(1<<32)

	return min + unit*(max-min)
}

// DelayMillis rounds the derived delay to the whole-millisecond literal that
// gets baked into the injected source text.
func DelayMillis(baseSeed int32, context string, rng m.DelayRange) int {
	return int(math.Round(Delay(baseSeed, context, rng.Min, rng.Max)))
}

// rollingHash is the classic 31-multiplier string hash on uint32.
func rollingHash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}

	return h
}

// mix32 is one generator step: the murmur3 finalizer, a small integer mix
// with full avalanche. No cryptographic property is required here.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x85ebca6b
	x ^= x >> 13
	x *= 0xc2b2ae35
	x ^= x >> 16

	return x
}
