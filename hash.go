package isoscene

import "math"

// Procedural effects and backgrounds must be pure functions of the animation
// tick and the identity of the thing being drawn: rendering the same frame
// twice has to feed bit-identical vertex streams to the GPU. A stateful RNG
// would break that, so all per-frame "randomness" comes from the sin-based
// hash below.

// Hash01 returns a deterministic pseudo-random value in [0, 1) for a seed.
func Hash01(seed uint64) float64 {
	s := math.Sin(float64(seed)*12.9898) * 43758.5453123
	return s - math.Floor(s)
}

// HashRange returns a deterministic pseudo-random value in [lo, hi).
func HashRange(seed uint64, lo, hi float64) float64 {
	return lo + Hash01(seed)*(hi-lo)
}

// TickHash combines an animation tick, an identity and a salt into a value
// in [0, 1). Effect recipes derive all jitter from this so two frames with
// the same tick render identically.
func TickHash(tick, id, salt uint64) float64 {
	return Hash01(tick*1000003 + id*7919 + salt*104729)
}

// TickHashRange is TickHash mapped onto [lo, hi).
func TickHashRange(tick, id, salt uint64, lo, hi float64) float64 {
	return lo + TickHash(tick, id, salt)*(hi-lo)
}
