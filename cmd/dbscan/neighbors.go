package main

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/dataset"
	"github.com/TrevorS/dbscan/internal/logger"
)

var neighborsBindings = map[string]string{
	"eps":          "eps",
	"metric":       "metric",
	"p":            "p",
	"input_format": "input-format",
}

func newNeighborsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neighbors <file|->",
		Short: "Print the eps-neighborhood of one point",
		Long: `Neighbors prints, as a JSON array, the indices of every point strictly
within --eps of the point at --index, that point included.`,
		Args: cobra.ExactArgs(1),
		RunE: runNeighbors,
	}

	cmd.Flags().Int("index", 0, "Index of the center point")
	cmd.Flags().Float64("eps", dbscan.DefaultConfig().Eps, "Neighborhood radius (strict)")
	cmd.Flags().String("metric", "euclidean", "Distance metric: euclidean, manhattan, chebyshev, minkowski")
	cmd.Flags().Float64("p", 2, "Minkowski exponent (with --metric minkowski)")
	cmd.Flags().String("input-format", "auto", "Input format: auto, csv, json, yaml")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd, neighborsBindings)
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
	index, _ := cmd.Flags().GetInt("index")

	points, err := dataset.LoadFile(args[0], inputFormat)
	if err != nil {
		return err
	}

	nb, err := dbscan.Neighbors(points, index, cfg.Eps, cfg.Metric)
	if err != nil {
		return withHint(errors.Wrap(err, "neighbor query failed"), "--eps must not be negative")
	}
	logger.Logger.Debugw("Neighbor query", "index", index, "eps", cfg.Eps, "neighbors", len(nb))

	return errors.Wrap(json.NewEncoder(cmd.OutOrStdout()).Encode(nb), "failed to write neighbors")
}
