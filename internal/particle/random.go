package particle

import (
	"math"
	"math/rand/v2"
)

// RandomInRange returns a random float64 in [min, max).
// When min >= max it returns min without consuming randomness, so
// zero-width ranges stay deterministic.
func RandomInRange(r *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Jitter draws a symmetric perturbation from [-|width|/2, +|width|/2].
// A negative width is treated as its magnitude.
func Jitter(r *rand.Rand, width float64) float64 {
	half := math.Abs(width) / 2
	return RandomInRange(r, -half, half)
}

// pick returns a uniformly random index in [0, n). n must be positive.
func pick(r *rand.Rand, n int) int {
	if n == 1 {
		return 0
	}
	return r.IntN(n)
}
