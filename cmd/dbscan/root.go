package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/config"
	"github.com/TrevorS/dbscan/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dbscan",
		Short: "Density-based clustering of point sets",
		Long: `dbscan labels each point of a dataset with a cluster ID, or -1 for noise,
using the DBSCAN rule: a point belongs to a cluster when it is
density-reachable from a core point with at least --min-pts neighbors
strictly within --eps.

Settings come from flags, DBSCAN_* environment variables and an optional
--config file (YAML or TOML), in that order of precedence.

Examples:
  dbscan cluster points.csv --eps 0.5 --min-pts 2
  dbscan cluster points.json -o table
  cat points.csv | dbscan cluster - -o labels
  dbscan neighbors points.csv --index 3 --eps 0.5
  dbscan kdist points.csv --k 3`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			jsonLogs, _ := cmd.Flags().GetBool("log-json")
			if err := logger.Initialize(jsonLogs, verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "Config file (YAML or TOML)")
	root.PersistentFlags().CountP("verbose", "v", "Increase log verbosity")
	root.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	root.AddCommand(newClusterCmd())
	root.AddCommand(newNeighborsCmd())
	root.AddCommand(newKDistCmd())
	return root
}

// loadSettings merges defaults, environment, the config file and the flags
// named in bindings (viper key → flag name) into Settings.
func loadSettings(cmd *cobra.Command, bindings map[string]string) (*config.Settings, error) {
	configFile, _ := cmd.Flags().GetString("config")
	v, err := config.New(configFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(cmd.Flags(), v, bindings); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlags(flags *pflag.FlagSet, v *viper.Viper, bindings map[string]string) error {
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return errors.Wrapf(err, "failed to bind flag --%s", name)
		}
	}
	return nil
}

// withHint attaches a user-facing hint to engine errors. paramHint explains
// the command's own parameter ranges.
func withHint(err error, paramHint string) error {
	switch {
	case errors.Is(err, dbscan.ErrInvalidParameter):
		return errors.WithHint(err, paramHint)
	case errors.Is(err, dbscan.ErrInvalidInput):
		return errors.WithHint(err, "every point needs the same number of finite coordinates")
	case errors.Is(err, dbscan.ErrIndexOutOfRange):
		return errors.WithHint(err, "--index must name a point of the dataset, counting from 0")
	default:
		return err
	}
}
