// Package observability provides logging, metrics, and formatted CLI output.
package observability

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a sugared zap logger. Verbose mode uses the development
// config (debug level, console encoding).
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.DisableStacktrace = true
		logger, err = cfg.Build()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

// NopLogger returns a logger that discards everything.
func NopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.SugaredLogger) *zap.SugaredLogger {
	if logger == nil {
		return NopLogger()
	}
	return logger
}
