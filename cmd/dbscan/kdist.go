package main

import (
	"encoding/json"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/dataset"
	"github.com/TrevorS/dbscan/internal/logger"
)

var kdistBindings = map[string]string{
	"metric":       "metric",
	"p":            "p",
	"input_format": "input-format",
}

// kdistQuantiles are reported alongside the curve as eps candidates.
var kdistQuantiles = []struct {
	name string
	q    float64
}{
	{"p50", 0.5},
	{"p90", 0.9},
	{"p95", 0.95},
	{"p99", 0.99},
}

type kdistReport struct {
	K         int                `json:"k"`
	MinPts    int                `json:"min_pts"`
	Quantiles map[string]float64 `json:"quantiles"`
	Distances []float64          `json:"distances"`
}

func newKDistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kdist <file|->",
		Short: "Print the k-distance curve used to choose eps",
		Long: `Kdist computes, for every point, the distance to its k-th nearest other
point and prints these distances in descending order together with a few
quantiles. With --min-pts k+1, a point is a core point exactly when its
k-distance is below eps, so the knee of the curve is a good eps.`,
		Args: cobra.ExactArgs(1),
		RunE: runKDist,
	}

	cmd.Flags().Int("k", dbscan.DefaultConfig().MinPts-1, "Neighbor rank (use min-pts - 1)")
	cmd.Flags().String("metric", "euclidean", "Distance metric: euclidean, manhattan, chebyshev, minkowski")
	cmd.Flags().Float64("p", 2, "Minkowski exponent (with --metric minkowski)")
	cmd.Flags().String("input-format", "auto", "Input format: auto, csv, json, yaml")
	return cmd
}

func runKDist(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, kdistBindings)
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
	k, _ := cmd.Flags().GetInt("k")

	points, err := dataset.LoadFile(args[0], inputFormat)
	if err != nil {
		return err
	}

	dists, err := dbscan.CoreDistances(points, k, cfg.Metric)
	if err != nil {
		return withHint(errors.Wrap(err, "k-distance computation failed"),
			"--k must be at least 1 and smaller than the number of points")
	}
	logger.Logger.Debugw("Computed k-distances", "k", k, "points", len(points))

	rep := kdistReport{K: k, MinPts: k + 1, Quantiles: map[string]float64{}}
	slices.Sort(dists)
	if len(dists) > 0 {
		for _, kq := range kdistQuantiles {
			rep.Quantiles[kq.name] = stat.Quantile(kq.q, stat.Empirical, dists, nil)
		}
	}
	slices.Reverse(dists)
	rep.Distances = dists

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(rep), "failed to write k-distances")
}
