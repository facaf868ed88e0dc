package dbscan

// Label values with special meaning. Positive labels are cluster IDs.
const (
	// Unassigned marks a point not yet classified. It never appears in a
	// finished result.
	Unassigned = 0

	// Noise marks a point that is not density-reachable from any core point.
	Noise = -1
)

// labelStore owns the label array of one run. It only permits the
// transitions Unassigned→Noise, Unassigned→cluster and Noise→cluster;
// a positive label is final.
type labelStore struct {
	labels []int
	core   []bool
}

func newLabelStore(n int) *labelStore {
	return &labelStore{
		labels: make([]int, n),
		core:   make([]bool, n),
	}
}

func (s *labelStore) get(i int) int { return s.labels[i] }

func (s *labelStore) clustered(i int) bool { return s.labels[i] > 0 }

// markNoise labels an unassigned point as noise. It is a no-op for points
// that already carry a label.
func (s *labelStore) markNoise(i int) {
	if s.labels[i] == Unassigned {
		s.labels[i] = Noise
	}
}

// assign moves point i into cluster c and reports whether the label
// changed. Points already in a cluster keep their label.
func (s *labelStore) assign(i, c int) bool {
	if s.labels[i] > 0 {
		return false
	}
	s.labels[i] = c
	return true
}

func (s *labelStore) markCore(i int) { s.core[i] = true }
