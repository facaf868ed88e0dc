package dbscan

import (
	"math"
	"testing"
)

const floatTol = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// --- EuclideanMetric tests ---

func TestEuclideanDistance_IdenticalVectors(t *testing.T) {
	m := EuclideanMetric{}
	a := []float64{1, 2, 3}
	if d := m.Distance(a, a); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestEuclideanDistance_UnitVectors(t *testing.T) {
	m := EuclideanMetric{}
	a := []float64{1, 0, 0}
	b := []float64{0, 1, 0}
	// sqrt((1-0)^2 + (0-1)^2 + (0-0)^2) = sqrt(2)
	if d := m.Distance(a, b); !almostEqual(d, math.Sqrt(2), floatTol) {
		t.Errorf("expected %v, got %v", math.Sqrt(2), d)
	}
}

func TestEuclideanDistance_HandComputed(t *testing.T) {
	m := EuclideanMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	// sqrt((4-1)^2 + (6-2)^2 + (3-3)^2) = sqrt(9+16+0) = 5
	if d := m.Distance(a, b); !almostEqual(d, 5.0, floatTol) {
		t.Errorf("expected 5.0, got %v", d)
	}
}

func TestEuclideanDistance_Symmetric(t *testing.T) {
	m := EuclideanMetric{}
	a := []float64{0.3, -1.7, 2.2}
	b := []float64{-4.1, 0.9, 1.0}
	if m.Distance(a, b) != m.Distance(b, a) {
		t.Errorf("Distance(a, b) = %v, Distance(b, a) = %v", m.Distance(a, b), m.Distance(b, a))
	}
}

// --- ManhattanMetric tests ---

func TestManhattanDistance_IdenticalVectors(t *testing.T) {
	m := ManhattanMetric{}
	a := []float64{3, 4, 5}
	if d := m.Distance(a, a); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestManhattanDistance_HandComputed(t *testing.T) {
	m := ManhattanMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 0, 3}
	// |4-1| + |0-2| + |3-3| = 3 + 2 + 0 = 5
	if d := m.Distance(a, b); !almostEqual(d, 5.0, floatTol) {
		t.Errorf("expected 5.0, got %v", d)
	}
}

// --- ChebyshevMetric tests ---

func TestChebyshevDistance_IdenticalVectors(t *testing.T) {
	m := ChebyshevMetric{}
	a := []float64{-1, 7}
	if d := m.Distance(a, a); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestChebyshevDistance_HandComputed(t *testing.T) {
	m := ChebyshevMetric{}
	a := []float64{1, 5, 3}
	b := []float64{4, 1, 3}
	// max(|4-1|, |1-5|, |3-3|) = max(3, 4, 0) = 4
	if d := m.Distance(a, b); !almostEqual(d, 4.0, floatTol) {
		t.Errorf("expected 4.0, got %v", d)
	}
}

// --- MinkowskiMetric tests ---

func TestMinkowskiDistance_P1_EqualsManhattan(t *testing.T) {
	a := []float64{1, -2, 3.5}
	b := []float64{-0.5, 4, 2}
	got := MinkowskiMetric{P: 1}.Distance(a, b)
	want := ManhattanMetric{}.Distance(a, b)
	if !almostEqual(got, want, floatTol) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMinkowskiDistance_P2_EqualsEuclidean(t *testing.T) {
	a := []float64{1, -2, 3.5}
	b := []float64{-0.5, 4, 2}
	got := MinkowskiMetric{P: 2}.Distance(a, b)
	want := EuclideanMetric{}.Distance(a, b)
	if !almostEqual(got, want, floatTol) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMinkowskiDistance_P3_HandComputed(t *testing.T) {
	a := []float64{0, 0}
	b := []float64{1, 2}
	// (1^3 + 2^3)^(1/3) = 9^(1/3)
	want := math.Pow(9, 1.0/3)
	if d := (MinkowskiMetric{P: 3}).Distance(a, b); !almostEqual(d, want, floatTol) {
		t.Errorf("expected %v, got %v", want, d)
	}
}

func TestMinkowskiDistance_PBelowOne_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for P < 1")
		}
	}()
	MinkowskiMetric{P: 0.5}.Distance([]float64{0}, []float64{1})
}

// --- DistanceFunc tests ---

func TestDistanceFunc_Adapter(t *testing.T) {
	called := false
	f := DistanceFunc(func(a, b []float64) float64 {
		called = true
		return 42
	})
	if d := f.Distance([]float64{0}, []float64{1}); d != 42 {
		t.Errorf("expected 42, got %v", d)
	}
	if !called {
		t.Error("wrapped function was not called")
	}
}

func TestAllMetrics_ZeroVectors(t *testing.T) {
	zero := []float64{0, 0, 0}
	metrics := []DistanceMetric{
		EuclideanMetric{},
		ManhattanMetric{},
		ChebyshevMetric{},
		MinkowskiMetric{P: 3},
	}
	for _, m := range metrics {
		if d := m.Distance(zero, zero); d != 0 {
			t.Errorf("%T: expected 0, got %v", m, d)
		}
	}
}

// --- euclideanBound tests ---

func TestEuclideanBound_ContainsMetricBall(t *testing.T) {
	// For every metric with a bound, L2 <= bound * metric distance.
	points := [][]float64{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{-2, 0.5, 3, 1},
		{0.1, -0.2, 0.3, -0.4},
		{5, 0, 0, 0},
	}
	metrics := []DistanceMetric{
		EuclideanMetric{},
		ManhattanMetric{},
		ChebyshevMetric{},
		MinkowskiMetric{P: 1.5},
		MinkowskiMetric{P: 3},
		MinkowskiMetric{P: 10},
	}
	l2 := EuclideanMetric{}
	for _, m := range metrics {
		bound, ok := euclideanBound(m, 4)
		if !ok {
			t.Fatalf("%T: expected a bound", m)
		}
		for i := range points {
			for j := range points {
				e := l2.Distance(points[i], points[j])
				d := m.Distance(points[i], points[j])
				if e > bound*d*(1+1e-12) {
					t.Errorf("%T: L2 %v exceeds bound %v * %v", m, e, bound, d)
				}
			}
		}
	}
}

func TestEuclideanBound_Unsupported(t *testing.T) {
	f := DistanceFunc(func(a, b []float64) float64 { return 0 })
	if _, ok := euclideanBound(f, 2); ok {
		t.Error("expected no bound for DistanceFunc")
	}
	if _, ok := euclideanBound(MinkowskiMetric{P: 0.5}, 2); ok {
		t.Error("expected no bound for Minkowski P < 1")
	}
}
