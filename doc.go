// Package dbscan implements Density-Based Spatial Clustering of Applications
// with Noise (DBSCAN).
//
// A point is a core point when at least MinPts points (itself included) lie
// strictly within distance Eps of it. Clusters are the sets of points
// density-reachable from core points; everything else is noise.
//
// Basic usage:
//
//	labels, err := dbscan.Fit(data, 0.5, 3)
//	// labels[i] is the cluster ID for point i (1..C, -1 = noise)
//
// For the full configuration and result:
//
//	cfg := dbscan.DefaultConfig()
//	cfg.Eps = 0.3
//	cfg.MinPts = 5
//	cfg.Metric = dbscan.ManhattanMetric{}
//	result, err := dbscan.Cluster(data, cfg)
//	// result.Core[i] reports whether point i is a core point
//	// result.ClusterSizes[k-1] is the size of cluster k
//
// Clusters are numbered from 1 in the order their seed core point is reached
// by a scan over the points in index order.
//
// # Algorithm selection
//
// By default (Algorithm: "auto"), neighbor queries use a KD-tree for
// low-dimensional data with a KD-tree compatible metric and a brute-force
// scan otherwise. All backends produce identical neighbor sets. Set
// Config.Algorithm to force one:
//
//	cfg.Algorithm = dbscan.AlgorithmBrute    // O(n) scan per query, optionally parallel
//	cfg.Algorithm = dbscan.AlgorithmKDTree   // gonum KD-tree range search
//	cfg.Algorithm = dbscan.AlgorithmBallTree // ball tree, any true metric
//
// # Choosing eps
//
// CoreDistances returns each point's distance to its k-th nearest other
// point. With MinPts = k+1, a point is a core point exactly when that
// distance is below Eps, so the sorted values show how Eps trades core
// points for noise.
package dbscan
