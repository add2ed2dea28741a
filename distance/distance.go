// Package distance computes scalar distances between equal-length float64
// vectors, optionally weighted per dimension.
//
// Every function is pure: inputs are never mutated or retained and the
// functions are safe for concurrent use. Shape errors (length mismatch,
// unsupported metric) are reported as NaN rather than as an error value,
// so callers handling untrusted input should check the result with math.IsNaN.
package distance

import (
	"math"
)

// Func measures the distance between two vectors.
type Func func(a, b []float64) float64

// WeightedFunc measures the distance between two vectors, scaling each
// dimension by the matching weight.
type WeightedFunc func(a, b, weights []float64) float64

// EuclideanDistance returns sqrt(Σ (aᵢ-bᵢ)²).
func EuclideanDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.NaN()
	}
	var s, t float64
	for i := range a {
		t = a[i] - b[i]
		s += t * t
	}
	return math.Sqrt(s)
}

// EuclideanDistanceWeighted returns sqrt(Σ wᵢ(aᵢ-bᵢ)²).
func EuclideanDistanceWeighted(a, b, weights []float64) float64 {
	if len(a) != len(b) || len(a) != len(weights) {
		return math.NaN()
	}
	var s, t float64
	for i := range a {
		t = a[i] - b[i]
		s += weights[i] * (t * t)
	}
	return math.Sqrt(s)
}

// CosineDistance returns one minus the cosine similarity of a and b.
// A zero-norm vector yields NaN.
func CosineDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.NaN()
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// CosineDistanceWeighted is CosineDistance with every product scaled by wᵢ.
func CosineDistanceWeighted(a, b, weights []float64) float64 {
	if len(a) != len(b) || len(a) != len(weights) {
		return math.NaN()
	}
	var dot, na, nb float64
	for i := range a {
		dot += weights[i] * a[i] * b[i]
		na += weights[i] * (a[i] * a[i])
		nb += weights[i] * (b[i] * b[i])
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// ManhattanDistance returns Σ |aᵢ-bᵢ|.
func ManhattanDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.NaN()
	}
	var s float64
	for i := range a {
		s += math.Abs(a[i] - b[i])
	}
	return s
}

// ManhattanDistanceWeighted returns Σ wᵢ|aᵢ-bᵢ|.
func ManhattanDistanceWeighted(a, b, weights []float64) float64 {
	if len(a) != len(b) || len(a) != len(weights) {
		return math.NaN()
	}
	var s float64
	for i := range a {
		s += weights[i] * math.Abs(a[i]-b[i])
	}
	return s
}

// RMSEDistance returns the root-mean-square error sqrt(Σ (aᵢ-bᵢ)² / n).
// Empty vectors yield NaN.
func RMSEDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.NaN()
	}
	var s, t float64
	for i := range a {
		t = a[i] - b[i]
		s += t * t
	}
	return math.Sqrt(s / float64(len(a)))
}

// Distance computes the distance between a and b using metric m.
// Unknown metrics yield NaN.
func Distance(a, b []float64, m Metric) float64 {
	switch m {
	case Euclidean:
		return EuclideanDistance(a, b)
	case Cosine:
		return CosineDistance(a, b)
	case Manhattan:
		return ManhattanDistance(a, b)
	case RMSE:
		return RMSEDistance(a, b)
	}
	return math.NaN()
}

// DistanceWeighted computes the weighted distance between a and b using
// metric m. RMSE has no weighted form and, like unknown metrics, yields NaN.
func DistanceWeighted(a, b, weights []float64, m Metric) float64 {
	switch m {
	case Euclidean:
		return EuclideanDistanceWeighted(a, b, weights)
	case Cosine:
		return CosineDistanceWeighted(a, b, weights)
	case Manhattan:
		return ManhattanDistanceWeighted(a, b, weights)
	case RMSE:
		return math.NaN()
	}
	return math.NaN()
}
