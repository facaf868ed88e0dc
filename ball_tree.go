package dbscan

import (
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ballLeafSize is the maximum number of points stored in a leaf ball.
const ballLeafSize = 16

// ballNode is one ball of the tree: every point idx[start:end] lies within
// radius of centroid.
type ballNode struct {
	start, end int
	leaf       bool
	radius     float64
	centroid   []float64
}

// ballIndex answers neighbor queries with a ball tree. A ball is skipped
// when the triangle inequality proves none of its points can be within
// eps, so any true metric works, including a DistanceFunc.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - idx maps tree order back to dataset indices
type ballIndex struct {
	data   [][]float64
	eps    float64
	metric DistanceMetric
	idx    []int
	nodes  []ballNode
}

// newBallIndex builds the tree. data must be non-empty.
func newBallIndex(data [][]float64, eps float64, metric DistanceMetric) *ballIndex {
	idx := make([]int, len(data))
	for i := range idx {
		idx[i] = i
	}
	t := &ballIndex{data: data, eps: eps, metric: metric, idx: idx}
	t.build(0, 0, len(data))
	return t
}

// build fills node with the ball around idx[start:end] and splits it at the
// median of the dimension with the greatest spread.
func (t *ballIndex) build(node, start, end int) {
	for node >= len(t.nodes) {
		t.nodes = append(t.nodes, ballNode{})
	}

	// Mean as a sum of scaled rows so large coordinates cannot overflow.
	centroid := make([]float64, len(t.data[0]))
	w := 1 / float64(end-start)
	for _, i := range t.idx[start:end] {
		floats.AddScaled(centroid, w, t.data[i])
	}

	var radius float64
	for _, i := range t.idx[start:end] {
		radius = math.Max(radius, t.metric.Distance(centroid, t.data[i]))
	}

	leaf := end-start <= ballLeafSize
	t.nodes[node] = ballNode{start: start, end: end, leaf: leaf, radius: radius, centroid: centroid}
	if leaf {
		return
	}

	dim := t.spreadDim(start, end)
	sub := t.idx[start:end]
	sort.Slice(sub, func(a, b int) bool {
		return t.data[sub[a]][dim] < t.data[sub[b]][dim]
	})
	mid := start + (end-start)/2

	t.build(2*node+1, start, mid)
	t.build(2*node+2, mid, end)
}

// spreadDim returns the dimension with the greatest spread among the points
// idx[start:end].
func (t *ballIndex) spreadDim(start, end int) int {
	best, bestSpread := 0, -1.0
	for d := range t.data[0] {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, i := range t.idx[start:end] {
			v := t.data[i][d]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if hi-lo > bestSpread {
			best, bestSpread = d, hi-lo
		}
	}
	return best
}

func (t *ballIndex) query(center int) []int {
	q := t.data[center]
	// Rounding in the centroid distance must not prune a true neighbor.
	limit := t.eps * (1 + kdRadiusSlack)

	var result []int
	stack := []int{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[id]
		if t.metric.Distance(q, n.centroid)-n.radius > limit {
			continue
		}
		if !n.leaf {
			stack = append(stack, 2*id+1, 2*id+2)
			continue
		}
		for _, i := range t.idx[n.start:n.end] {
			if t.metric.Distance(q, t.data[i]) < t.eps {
				result = append(result, i)
			}
		}
	}
	slices.Sort(result)
	return result
}
