package dbscan

import "sync"

// parallelBruteIndex splits each brute-force scan across goroutines.
// Each worker handles a contiguous range of rows and the per-range results
// are concatenated in range order, so the output is identical to bruteIndex.
type parallelBruteIndex struct {
	data       [][]float64
	eps        float64
	metric     DistanceMetric
	numWorkers int

	// parts holds one result buffer per worker, reused across queries.
	parts [][]int
}

func newParallelBruteIndex(data [][]float64, eps float64, metric DistanceMetric, numWorkers int) *parallelBruteIndex {
	return &parallelBruteIndex{
		data:       data,
		eps:        eps,
		metric:     metric,
		numWorkers: numWorkers,
		parts:      make([][]int, numWorkers),
	}
}

func (p *parallelBruteIndex) query(center int) []int {
	n := len(p.data)
	if p.numWorkers <= 1 || n <= 1 {
		return scanRange(p.data, center, 0, n, p.eps, p.metric, nil)
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + p.numWorkers - 1) / p.numWorkers

	used := 0
	for w := 0; w < p.numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}
		used++

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			p.parts[w] = scanRange(p.data, center, start, end, p.eps, p.metric, p.parts[w][:0])
		}(w, startRow, endRow)
	}

	wg.Wait()

	total := 0
	for _, part := range p.parts[:used] {
		total += len(part)
	}
	result := make([]int, 0, total)
	for _, part := range p.parts[:used] {
		result = append(result, part...)
	}
	return result
}
