package main

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/config"
	"github.com/TrevorS/dbscan/internal/dataset"
	"github.com/TrevorS/dbscan/internal/logger"
	"github.com/TrevorS/dbscan/internal/report"
)

var clusterBindings = map[string]string{
	"eps":          "eps",
	"min_pts":      "min-pts",
	"metric":       "metric",
	"p":            "p",
	"algorithm":    "algorithm",
	"workers":      "workers",
	"format":       "format",
	"input_format": "input-format",
}

func newClusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster <file|->",
		Short: "Cluster a dataset and print the labels",
		Long: `Cluster reads one point per row (CSV) or a list of points (JSON, YAML) and
prints one label per point: 1..C for clusters in discovery order, -1 for
noise. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: runCluster,
	}

	def := dbscan.DefaultConfig()
	cmd.Flags().Float64("eps", def.Eps, "Neighborhood radius (strict)")
	cmd.Flags().Int("min-pts", def.MinPts, "Neighbors, the point included, needed for a core point")
	cmd.Flags().String("metric", "euclidean", "Distance metric: euclidean, manhattan, chebyshev, minkowski")
	cmd.Flags().Float64("p", 2, "Minkowski exponent (with --metric minkowski)")
	cmd.Flags().String("algorithm", string(def.Algorithm), "Neighbor search: auto, brute, kdtree, balltree")
	cmd.Flags().Int("workers", 0, "Goroutines per brute-force scan (0 = number of CPUs)")
	cmd.Flags().StringP("format", "o", config.FormatJSON, "Output format: json, table, labels")
	cmd.Flags().String("input-format", "auto", "Input format: auto, csv, json, yaml")
	return cmd
}

func runCluster(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, clusterBindings)
	if err != nil {
		return err
	}
	cfg, err := settings.EngineConfig()
	if err != nil {
		return err
	}
	inputFormat, err := dataset.ParseFormat(settings.InputFormat)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logger.Logger.With("run_id", runID)

	points, err := dataset.LoadFile(args[0], inputFormat)
	if err != nil {
		return err
	}
	log.Infow("Clustering dataset",
		"source", args[0],
		"points", len(points),
		"eps", cfg.Eps,
		"min_pts", cfg.MinPts,
		"metric", settings.Metric,
		"algorithm", cfg.Algorithm)

	start := time.Now()
	result, err := dbscan.ClusterContext(cmd.Context(), points, cfg)
	if err != nil {
		return withHint(errors.Wrap(err, "clustering failed"),
			"--eps must be a positive number and --min-pts at least 1")
	}
	log.Infow("Clustering complete",
		"clusters", result.NumClusters,
		"noise", result.NumNoise,
		"core_points", len(result.CoreIndices()),
		"neighbor_queries", result.NeighborQueries,
		"elapsed", time.Since(start))
	log.Debugw("Cluster sizes", "sizes", result.ClusterSizes)

	return report.Render(cmd.OutOrStdout(), settings.Format, runID, points, result)
}
