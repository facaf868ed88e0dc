package dbscan

import (
	"fmt"
	"math"
)

// Neighbors returns the indices of every point in data strictly within eps
// of data[center], center itself included, in ascending order. A nil metric
// means EuclideanMetric. Because the comparison is strict, eps == 0 yields
// no neighbors at all.
//
// Neighbors fails with ErrIndexOutOfRange when center is not a valid index,
// with ErrInvalidParameter when eps is negative or NaN or the metric is
// invalid, and with ErrInvalidInput when the points do not share one finite
// dimensionality.
func Neighbors(data [][]float64, center int, eps float64, metric DistanceMetric) ([]int, error) {
	if math.IsNaN(eps) || eps < 0 {
		return nil, fmt.Errorf("%w: eps must be >= 0, got %v", ErrInvalidParameter, eps)
	}
	if center < 0 || center >= len(data) {
		return nil, fmt.Errorf("%w: center %d, dataset has %d points", ErrIndexOutOfRange, center, len(data))
	}
	if _, err := validateData(data); err != nil {
		return nil, err
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}
	if err := validateMetric(metric); err != nil {
		return nil, err
	}

	nb := newBruteIndex(data, eps, metric).query(center)
	if nb == nil {
		nb = []int{}
	}
	return nb, nil
}
