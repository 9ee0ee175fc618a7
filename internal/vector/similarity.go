// Package vector provides similarity helpers and the embedding matrix codec.
package vector

import "math"

// normEpsilon guards against division by zero when normalizing a degenerate
// (all-zero) embedding.
const normEpsilon = 1e-12

// InnerProduct returns the inner product of two vectors (for normalized
// vectors equals cosine similarity).
func InnerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return dot
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v * v)
	}
	return math.Sqrt(sum)
}

// NormalizeL2 normalizes the slice in place to unit L2 norm. The divisor is
// the norm plus a small epsilon, so an all-zero vector stays (near) zero
// instead of producing NaNs.
func NormalizeL2(x []float32) {
	norm := L2Norm(x) + normEpsilon
	inv := float32(1.0 / norm)
	for i := range x {
		x[i] *= inv
	}
}
