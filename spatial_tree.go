package dbscan

// neighborIndex answers eps-neighborhood queries over one dataset.
// The radius and metric are fixed when the index is built.
type neighborIndex interface {
	// query returns the indices of every point strictly within eps of
	// point center, center included, in ascending order.
	query(center int) []int
}

// bruteIndex scans every point for each query.
type bruteIndex struct {
	data   [][]float64
	eps    float64
	metric DistanceMetric
}

func newBruteIndex(data [][]float64, eps float64, metric DistanceMetric) *bruteIndex {
	return &bruteIndex{data: data, eps: eps, metric: metric}
}

func (b *bruteIndex) query(center int) []int {
	return scanRange(b.data, center, 0, len(b.data), b.eps, b.metric, nil)
}

// scanRange appends to dst the indices in [start, end) strictly within eps
// of data[center].
func scanRange(data [][]float64, center, start, end int, eps float64, metric DistanceMetric, dst []int) []int {
	c := data[center]
	for i := start; i < end; i++ {
		if metric.Distance(c, data[i]) < eps {
			dst = append(dst, i)
		}
	}
	return dst
}
