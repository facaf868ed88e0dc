// Package logger holds the process-wide structured logger of the dbscan CLI.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It is a no-op until Initialize is called.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize builds the global logger writing to stderr, so that stdout
// stays reserved for clustering output. jsonOutput selects zap's production
// JSON encoding; otherwise a console encoder is used. verbosity > 0 enables
// debug logs.
func Initialize(jsonOutput bool, verbosity int) error {
	l, err := build(jsonOutput, verbosity, zapcore.Lock(os.Stderr))
	if err != nil {
		return err
	}
	Logger = l.Sugar()
	return nil
}

// Level maps a -v count to a zap level.
func Level(verbosity int) zapcore.Level {
	if verbosity > 0 {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

func build(jsonOutput bool, verbosity int, out zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(Level(verbosity))

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = level
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		return config.Build()
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		out,
		level,
	)), nil
}
