package dbscan

import (
	"slices"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// kdRadiusSlack widens the Euclidean search radius so that rounding
// differences between the tree's squared distances and the metric can
// never drop a true neighbor. Candidates are re-checked exactly.
const kdRadiusSlack = 1e-9

// kdPoint is a dataset row tagged with its original index so that results
// from the tree can be mapped back after the tree reorders its points.
type kdPoint struct {
	index  int
	coords []float64
}

func (p kdPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(kdPoint)
	return p.coords[d] - q.coords[d]
}

func (p kdPoint) Dims() int { return len(p.coords) }

// Distance returns the squared Euclidean distance, which is what the tree
// compares against squared per-axis offsets when pruning.
func (p kdPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(kdPoint)
	var sum float64
	for i := range p.coords {
		d := p.coords[i] - q.coords[i]
		sum += d * d
	}
	return sum
}

// kdPoints implements kdtree.Interface.
type kdPoints []kdPoint

func (p kdPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p kdPoints) Len() int                              { return len(p) }
func (p kdPoints) Pivot(d kdtree.Dim) int                { return kdPlane{points: p, dim: d}.pivot() }
func (p kdPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// kdPlane orders points along one dimension for median partitioning.
type kdPlane struct {
	points kdPoints
	dim    kdtree.Dim
}

func (p kdPlane) Len() int           { return len(p.points) }
func (p kdPlane) Less(i, j int) bool { return p.points[i].coords[p.dim] < p.points[j].coords[p.dim] }
func (p kdPlane) Swap(i, j int)      { p.points[i], p.points[j] = p.points[j], p.points[i] }

func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

func (p kdPlane) pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

// kdIndex answers neighbor queries with a KD-tree range search. The tree
// returns every point inside a Euclidean ball that contains the metric's
// eps-ball; each candidate is then checked against the metric with the
// same strict comparison the brute-force scan uses.
type kdIndex struct {
	tree    *kdtree.Tree
	points  kdPoints
	data    [][]float64
	eps     float64
	metric  DistanceMetric
	radius2 float64
}

// newKDIndex builds the tree. data must be non-empty and metric must be
// KD-tree compatible (see KDTreeValidMetric).
func newKDIndex(data [][]float64, eps float64, metric DistanceMetric) *kdIndex {
	bound, _ := euclideanBound(metric, len(data[0]))
	r := eps * bound * (1 + kdRadiusSlack)

	points := make(kdPoints, len(data))
	for i, row := range data {
		points[i] = kdPoint{index: i, coords: row}
	}

	// kdtree.New reorders its input; keep points in dataset order for lookups.
	return &kdIndex{
		tree:    kdtree.New(slices.Clone(points), false),
		points:  points,
		data:    data,
		eps:     eps,
		metric:  metric,
		radius2: r * r,
	}
}

func (k *kdIndex) query(center int) []int {
	keep := kdtree.NewDistKeeper(k.radius2)
	k.tree.NearestSet(keep, k.points[center])

	c := k.data[center]
	result := make([]int, 0, len(keep.Heap))
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue
		}
		p := cd.Comparable.(kdPoint)
		if k.metric.Distance(c, p.coords) < k.eps {
			result = append(result, p.index)
		}
	}
	slices.Sort(result)
	return result
}
