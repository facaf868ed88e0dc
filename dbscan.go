package dbscan

import (
	"context"
	"fmt"
	"math"
	"runtime"
)

// Algorithm selects the neighbor query strategy.
type Algorithm string

const (
	AlgorithmAuto   Algorithm = "auto"
	AlgorithmBrute  Algorithm = "brute"
	AlgorithmKDTree Algorithm = "kdtree"

	// AlgorithmBallTree prunes with the triangle inequality and accepts
	// any metric, including a DistanceFunc that is a true metric. It is
	// never chosen by AlgorithmAuto.
	AlgorithmBallTree Algorithm = "balltree"
)

// Config controls DBSCAN clustering behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Eps is the neighborhood radius. Two points are neighbors when their
	// distance is strictly less than Eps. Must be > 0 and finite. Default: 0.5.
	Eps float64

	// MinPts is the number of points, the point itself included, that must
	// lie within Eps for a point to be a core point. Must be >= 1. Default: 3.
	MinPts int

	// Metric is the distance function used to measure point similarity.
	// Built-in: EuclideanMetric, ManhattanMetric, ChebyshevMetric,
	// MinkowskiMetric. Use DistanceFunc to wrap a custom function.
	// Default: EuclideanMetric.
	Metric DistanceMetric

	// Algorithm selects the neighbor query strategy.
	// "auto" picks a KD-tree for low-dimensional data when the metric allows.
	// "brute" scans every point for each query.
	// "kdtree" uses a gonum KD-tree range search.
	// "balltree" uses a ball tree and works with any true metric.
	// Default: "auto".
	Algorithm Algorithm

	// Workers controls the number of goroutines splitting each brute-force
	// scan on large datasets. Labeling itself is always sequential.
	// 0 means use runtime.NumCPU(). Must be >= 0. Default: 0 (auto).
	Workers int
}

// Result contains the output of DBSCAN clustering.
type Result struct {
	// Labels assigns each point to a cluster (1..NumClusters, numbered in
	// discovery order) or -1 for noise.
	Labels []int

	// Core reports for each point whether it is a core point.
	Core []bool

	// NumClusters is the number of clusters found.
	NumClusters int

	// NumNoise is the number of points labeled noise.
	NumNoise int

	// ClusterSizes[k-1] is the number of points in cluster k.
	ClusterSizes []int

	// NeighborQueries is the number of neighborhood queries the run issued.
	// Each point is queried at most once, so it never exceeds len(Labels).
	NeighborQueries int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Eps:       0.5,
		MinPts:    3,
		Metric:    EuclideanMetric{},
		Algorithm: AlgorithmAuto,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if math.IsNaN(cfg.Eps) || math.IsInf(cfg.Eps, 0) || cfg.Eps <= 0 {
		return fmt.Errorf("%w: Eps must be > 0 and finite, got %v", ErrInvalidParameter, cfg.Eps)
	}
	if cfg.MinPts < 1 {
		return fmt.Errorf("%w: MinPts must be >= 1, got %d", ErrInvalidParameter, cfg.MinPts)
	}
	if err := validateMetric(cfg.Metric); err != nil {
		return err
	}
	switch cfg.Algorithm {
	case AlgorithmAuto, AlgorithmBrute, AlgorithmKDTree, AlgorithmBallTree:
		// valid
	default:
		return fmt.Errorf("%w: unknown Algorithm %q", ErrInvalidParameter, cfg.Algorithm)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: Workers must be >= 0, got %d", ErrInvalidParameter, cfg.Workers)
	}
	return nil
}

// validateMetric rejects metric parameters that are not a metric at all.
func validateMetric(m DistanceMetric) error {
	if mk, ok := m.(MinkowskiMetric); ok && !(mk.P >= 1) {
		return fmt.Errorf("%w: MinkowskiMetric P must be >= 1, got %v", ErrInvalidParameter, mk.P)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
// Eps and MinPts are left alone: zero is an error there, not a request for
// the default.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmAuto
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateData checks that every point has the same non-zero dimensionality
// and only finite coordinates. It returns the dimensionality.
func validateData(data [][]float64) (int, error) {
	dims := len(data[0])
	if dims == 0 {
		return 0, fmt.Errorf("%w: points must have at least one dimension", ErrInvalidInput)
	}
	for i, row := range data {
		if len(row) != dims {
			return 0, fmt.Errorf("%w: point %d has %d dimensions, expected %d", ErrInvalidInput, i, len(row), dims)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: point %d has non-finite coordinate %v at dimension %d", ErrInvalidInput, i, v, j)
			}
		}
	}
	return dims, nil
}

// emptyResult returns a Result with non-nil, zero-length slices.
func emptyResult() *Result {
	return &Result{
		Labels:       []int{},
		Core:         []bool{},
		ClusterSizes: []int{},
	}
}

// Fit clusters data with Euclidean distance and returns one label per point:
// -1 for noise, 1..C for clusters in discovery order. An empty dataset
// yields an empty label slice.
func Fit(data [][]float64, eps float64, minPts int) ([]int, error) {
	cfg := DefaultConfig()
	cfg.Eps = eps
	cfg.MinPts = minPts
	result, err := Cluster(data, cfg)
	if err != nil {
		return nil, err
	}
	return result.Labels, nil
}

// Cluster performs DBSCAN clustering on the given data.
// Each element is a point (float64 slice); all points must have the same
// dimensionality. Returns an error if the config or data is invalid.
func Cluster(data [][]float64, cfg Config) (*Result, error) {
	return ClusterContext(context.Background(), data, cfg)
}

// ClusterContext is like Cluster but stops early with the context's error
// once ctx is done. The context is checked between points of the outer scan.
func ClusterContext(ctx context.Context, data [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	n := len(data)
	if n == 0 {
		return emptyResult(), nil
	}

	dims, err := validateData(data)
	if err != nil {
		return nil, err
	}

	algo, err := selectAlgorithm(cfg, n, dims)
	if err != nil {
		return nil, err
	}

	r := &run{
		index:    newNeighborIndex(algo, data, cfg.Eps, cfg.Metric, cfg.Workers),
		minPts:   cfg.MinPts,
		labels:   newLabelStore(n),
		frontier: newFrontier(n),
	}
	numClusters, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(r.labels, numClusters, r.queries), nil
}

// run holds the mutable state of one clustering invocation.
type run struct {
	index    neighborIndex
	minPts   int
	labels   *labelStore
	frontier *frontier
	queries  int
}

func (r *run) neighbors(p int) []int {
	r.queries++
	return r.index.query(p)
}

// scan visits every point once in index order, marking noise and seeding a
// new cluster at each unlabeled core point. It returns the cluster count.
func (r *run) scan(ctx context.Context) (int, error) {
	clusterID := 0
	for p := range r.labels.labels {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("dbscan: clustering stopped at point %d: %w", p, err)
		}
		if r.labels.get(p) != Unassigned {
			continue
		}

		nb := r.neighbors(p)
		if len(nb) < r.minPts {
			r.labels.markNoise(p)
			continue
		}

		clusterID++
		r.expand(p, nb, clusterID)
	}
	return clusterID, nil
}

// expand grows cluster c from core point p breadth-first. Noise points
// reached by the frontier become border points without a neighbor query;
// unassigned points join c and, if they are core points themselves, push
// their own neighborhoods onto the frontier.
func (r *run) expand(p int, nb []int, c int) {
	r.labels.assign(p, c)
	r.labels.markCore(p)

	f := r.frontier
	f.reset(c)
	r.enqueue(nb)

	for {
		q, ok := f.pop()
		if !ok {
			return
		}

		switch r.labels.get(q) {
		case Noise:
			r.labels.assign(q, c)
		case Unassigned:
			r.labels.assign(q, c)
			qn := r.neighbors(q)
			if len(qn) >= r.minPts {
				r.labels.markCore(q)
				r.enqueue(qn)
			}
		}
	}
}

// enqueue pushes the points of nb that are not yet in a cluster.
func (r *run) enqueue(nb []int) {
	for _, q := range nb {
		if r.labels.clustered(q) {
			continue
		}
		r.frontier.push(q)
	}
}
