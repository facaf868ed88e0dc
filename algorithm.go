package dbscan

import "fmt"

const (
	// autoKDTreeMaxDims is the highest dimensionality for which auto
	// selection still prefers the KD-tree over a linear scan.
	autoKDTreeMaxDims = 16

	// autoKDTreeMinPoints is the smallest dataset for which auto selection
	// builds a KD-tree at all.
	autoKDTreeMinPoints = 64

	// parallelMinPoints is the smallest dataset for which the brute-force
	// scan is split across workers.
	parallelMinPoints = 2048
)

// KDTreeValidMetric reports whether the metric supports KD-tree acceleration.
// The KD-tree searches a Euclidean ball, so the metric needs a known bound
// relative to L2: Euclidean, Manhattan, Chebyshev, Minkowski.
func KDTreeValidMetric(m DistanceMetric) bool {
	_, ok := euclideanBound(m, 1)
	return ok
}

// selectAlgorithm resolves AlgorithmAuto into a concrete algorithm choice
// based on the metric, dataset size and dimensionality, and validates that
// user-forced algorithm choices are compatible with the metric.
func selectAlgorithm(cfg Config, n, dims int) (Algorithm, error) {
	algo := cfg.Algorithm

	if algo == AlgorithmAuto {
		if KDTreeValidMetric(cfg.Metric) && dims <= autoKDTreeMaxDims && n >= autoKDTreeMinPoints {
			return AlgorithmKDTree, nil
		}
		return AlgorithmBrute, nil
	}

	if algo == AlgorithmKDTree && !KDTreeValidMetric(cfg.Metric) {
		return "", fmt.Errorf("%w: metric %T is not supported by the KD-tree algorithm", ErrInvalidParameter, cfg.Metric)
	}

	return algo, nil
}

// newNeighborIndex builds the neighbor query backend for algo.
func newNeighborIndex(algo Algorithm, data [][]float64, eps float64, metric DistanceMetric, workers int) neighborIndex {
	switch algo {
	case AlgorithmKDTree:
		return newKDIndex(data, eps, metric)
	case AlgorithmBallTree:
		return newBallIndex(data, eps, metric)
	default:
		if workers > 1 && len(data) >= parallelMinPoints {
			return newParallelBruteIndex(data, eps, metric, workers)
		}
		return newBruteIndex(data, eps, metric)
	}
}
