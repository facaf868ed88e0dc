package dbscan

// frontier is the FIFO work queue of one cluster expansion. Every index is
// enqueued at most once per cluster: marks[i] holds the ID of the last
// cluster i was enqueued for, which is independent of the label array.
// Cluster IDs start at 1, so the zero mark never matches.
type frontier struct {
	queue []int
	head  int
	marks []int
	id    int
}

func newFrontier(n int) *frontier {
	return &frontier{marks: make([]int, n)}
}

// reset empties the queue and starts tracking membership for cluster id.
func (f *frontier) reset(id int) {
	f.queue = f.queue[:0]
	f.head = 0
	f.id = id
}

// push enqueues i unless it was already enqueued for the current cluster.
func (f *frontier) push(i int) bool {
	if f.marks[i] == f.id {
		return false
	}
	f.marks[i] = f.id
	f.queue = append(f.queue, i)
	return true
}

// pop dequeues the oldest pending index.
func (f *frontier) pop() (int, bool) {
	if f.head == len(f.queue) {
		return 0, false
	}
	i := f.queue[f.head]
	f.head++
	return i, true
}

// pending returns the number of indices waiting to be popped.
func (f *frontier) pending() int { return len(f.queue) - f.head }
