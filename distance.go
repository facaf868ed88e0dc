package dbscan

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric measures the distance between two points of equal
// dimensionality.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
// Custom functions cannot be accelerated with a KD-tree; AlgorithmBallTree
// accepts them when they satisfy the triangle inequality.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1. Panics if P < 1.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
	return floats.Distance(a, b, m.P)
}

// euclideanBound returns a factor f such that for every pair of points in
// dims dimensions, L2(a, b) <= f * m.Distance(a, b). The second result is
// false when no such bound is known for the metric.
func euclideanBound(m DistanceMetric, dims int) (float64, bool) {
	switch mm := m.(type) {
	case EuclideanMetric, ManhattanMetric:
		return 1, true
	case ChebyshevMetric:
		return math.Sqrt(float64(dims)), true
	case MinkowskiMetric:
		if mm.P < 1 {
			return 0, false
		}
		if mm.P <= 2 {
			return 1, true
		}
		return math.Pow(float64(dims), 0.5-1/mm.P), true
	default:
		return 0, false
	}
}
