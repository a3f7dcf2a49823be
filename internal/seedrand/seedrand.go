// Package seedrand provides the deterministic pseudo-random source used for
// lesson generation. Identical seeds always produce identical output, across
// runs and machines, so a (day, user) pair always maps to the same lesson.
package seedrand

import "math"

// NextFloat maps seed to a value in [0, 1) as frac(sin(seed) * 10000).
// The distribution is not uniform; only reproducibility matters here.
func NextFloat(seed int) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}

// Shuffle returns a permuted copy of s. It runs Fisher-Yates from the last
// index down to 1, drawing the step-i swap index from NextFloat(seed+i).
// The input slice is never modified.
func Shuffle[T any](s []T, seed int) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := len(out) - 1; i > 0; i-- {
		j := int(math.Floor(NextFloat(seed+i) * float64(i+1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Pick returns an index in [0, n) derived from seed. It returns 0 when n <= 0.
func Pick(seed, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(NextFloat(seed) * float64(n)))
}
