package main

import (
	"os"

	"github.com/cybergodev/dlmeta/internal/config"
	"github.com/cybergodev/dlmeta/internal/logger"
)

func main() {
	// Errors raised before flag parsing still need a logger.
	if l, err := logger.New(os.Stderr, logger.DefaultLevel); err == nil {
		logger.Init(l)
	}

	settings, err := config.Load()
	if err != nil {
		logger.Logger().Errorw("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := createRootCommand(settings).Execute(); err != nil {
		logger.Logger().Errorw("command failed", "error", err)
		_ = logger.Logger().Sync()
		os.Exit(1)
	}
}
