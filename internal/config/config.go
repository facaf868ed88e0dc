// Package config loads dbscan CLI settings from defaults, an optional config
// file, DBSCAN_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/TrevorS/dbscan"
)

// EnvPrefix is the prefix of environment variables read by the CLI,
// e.g. DBSCAN_EPS or DBSCAN_MIN_PTS.
const EnvPrefix = "DBSCAN"

// Output formats.
const (
	FormatJSON   = "json"
	FormatTable  = "table"
	FormatLabels = "labels"
)

// Settings is the full CLI configuration.
type Settings struct {
	Eps         float64 `mapstructure:"eps"`
	MinPts      int     `mapstructure:"min_pts"`
	Metric      string  `mapstructure:"metric"`
	P           float64 `mapstructure:"p"`
	Algorithm   string  `mapstructure:"algorithm"`
	Workers     int     `mapstructure:"workers"`
	Format      string  `mapstructure:"format"`
	InputFormat string  `mapstructure:"input_format"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	def := dbscan.DefaultConfig()
	v.SetDefault("eps", def.Eps)
	v.SetDefault("min_pts", def.MinPts)
	v.SetDefault("metric", "euclidean")
	v.SetDefault("p", 2.0)
	v.SetDefault("algorithm", string(def.Algorithm))
	v.SetDefault("workers", def.Workers)
	v.SetDefault("format", FormatJSON)
	v.SetDefault("input_format", "auto")
}

// New returns a Viper instance with defaults, environment binding and, when
// configFile is not empty, the contents of that file (YAML or TOML, chosen
// by extension).
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "failed to read config file %s", configFile),
				"config files may be YAML (.yaml, .yml) or TOML (.toml)")
		}
	}

	return v, nil
}

// Load unmarshals the settings held by v and validates them.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the CLI-only settings. Clustering parameters are checked
// by the engine itself.
func (s *Settings) Validate() error {
	switch s.Format {
	case FormatJSON, FormatTable, FormatLabels:
	default:
		return errors.WithHintf(errors.Newf("unknown output format %q", s.Format),
			"use one of %s, %s, %s", FormatJSON, FormatTable, FormatLabels)
	}
	if _, err := s.metric(); err != nil {
		return err
	}
	return nil
}

// EngineConfig converts the settings into an engine configuration.
func (s *Settings) EngineConfig() (dbscan.Config, error) {
	metric, err := s.metric()
	if err != nil {
		return dbscan.Config{}, err
	}
	return dbscan.Config{
		Eps:       s.Eps,
		MinPts:    s.MinPts,
		Metric:    metric,
		Algorithm: dbscan.Algorithm(strings.ToLower(s.Algorithm)),
		Workers:   s.Workers,
	}, nil
}

func (s *Settings) metric() (dbscan.DistanceMetric, error) {
	switch strings.ToLower(s.Metric) {
	case "", "euclidean", "l2":
		return dbscan.EuclideanMetric{}, nil
	case "manhattan", "cityblock", "l1":
		return dbscan.ManhattanMetric{}, nil
	case "chebyshev", "linf":
		return dbscan.ChebyshevMetric{}, nil
	case "minkowski":
		return dbscan.MinkowskiMetric{P: s.P}, nil
	default:
		return nil, errors.WithHint(errors.Newf("unknown metric %q", s.Metric),
			"use one of euclidean, manhattan, chebyshev, minkowski")
	}
}
