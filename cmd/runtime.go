package cmd

import (
	"p13n-sync/core/config"
	"p13n-sync/core/logger"

	"go.uber.org/zap"
)

// bootstrap loads configuration and builds the logger every command starts
// from. The logger is installed as the zap global so deep call sites can
// report without plumbing.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	zap.ReplaceGlobals(logg)

	return cfg, logg, nil
}
