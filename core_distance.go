package dbscan

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// CoreDistances returns, for each point, the distance to its k-th nearest
// other point under metric (nil means EuclideanMetric). Duplicates count as
// distinct points at distance 0.
//
// Sorted in descending order these values form the k-distance curve used to
// pick eps. With MinPts = k+1, point i is a core point for a given eps
// exactly when CoreDistances(data, k, metric)[i] < eps.
//
// k must be between 1 and len(data)-1. An empty dataset yields an empty
// slice for any k >= 1.
func CoreDistances(data [][]float64, k int, metric DistanceMetric) ([]float64, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidParameter, k)
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}
	if err := validateMetric(metric); err != nil {
		return nil, err
	}
	n := len(data)
	if n == 0 {
		return []float64{}, nil
	}
	if k > n-1 {
		return nil, fmt.Errorf("%w: k must be < number of points (%d), got %d", ErrInvalidParameter, n, k)
	}
	dims, err := validateData(data)
	if err != nil {
		return nil, err
	}

	if _, ok := metric.(EuclideanMetric); ok && dims <= autoKDTreeMaxDims && n >= autoKDTreeMinPoints {
		return coreDistancesKD(data, k, metric), nil
	}
	return coreDistancesBrute(data, k, metric), nil
}

func coreDistancesBrute(data [][]float64, k int, metric DistanceMetric) []float64 {
	core := make([]float64, len(data))
	dists := make([]float64, 0, len(data)-1)
	for i, p := range data {
		dists = dists[:0]
		for j, q := range data {
			if j != i {
				dists = append(dists, metric.Distance(p, q))
			}
		}
		slices.Sort(dists)
		core[i] = dists[k-1]
	}
	return core
}

// coreDistancesKD finds the k+1 nearest points of each point with a KD-tree
// and recomputes their distances with metric. The point itself is normally
// among them; when it is not, at least k+1 points coincide with it and the
// answer is 0.
func coreDistancesKD(data [][]float64, k int, metric DistanceMetric) []float64 {
	points := make(kdPoints, len(data))
	for i, row := range data {
		points[i] = kdPoint{index: i, coords: row}
	}
	tree := kdtree.New(slices.Clone(points), false)

	core := make([]float64, len(data))
	dists := make([]float64, 0, k+1)
	for i, p := range points {
		keep := kdtree.NewNKeeper(k + 1)
		tree.NearestSet(keep, p)

		dists = dists[:0]
		self := false
		for _, cd := range keep.Heap {
			if cd.Comparable == nil {
				continue
			}
			q := cd.Comparable.(kdPoint)
			if q.index == i && !self {
				self = true
				continue
			}
			dists = append(dists, metric.Distance(p.coords, q.coords))
		}
		if !self {
			continue
		}
		slices.Sort(dists)
		core[i] = dists[k-1]
	}
	return core
}
