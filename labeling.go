package dbscan

// summarize builds the Result for a finished run. Every label is either
// Noise or a cluster ID in [1, numClusters].
func summarize(store *labelStore, numClusters, queries int) *Result {
	sizes := make([]int, numClusters)
	noise := 0
	for _, l := range store.labels {
		if l == Noise {
			noise++
			continue
		}
		sizes[l-1]++
	}

	return &Result{
		Labels:          store.labels,
		Core:            store.core,
		NumClusters:     numClusters,
		NumNoise:        noise,
		ClusterSizes:    sizes,
		NeighborQueries: queries,
	}
}

// CoreIndices returns the indices of the core points in ascending order.
func (r *Result) CoreIndices() []int {
	idx := make([]int, 0, len(r.Core))
	for i, c := range r.Core {
		if c {
			idx = append(idx, i)
		}
	}
	return idx
}

// Members returns the indices of the points labeled k in ascending order.
// Members(Noise) lists the noise points.
func (r *Result) Members(k int) []int {
	var idx []int
	for i, l := range r.Labels {
		if l == k {
			idx = append(idx, i)
		}
	}
	return idx
}
