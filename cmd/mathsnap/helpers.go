package main

import (
	"fmt"

	"github.com/at-ishikawa/mathsnap/internal/config"
	"github.com/at-ishikawa/mathsnap/internal/solver/remote"
	"github.com/at-ishikawa/mathsnap/internal/upload"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newSolverClient(cfg *config.Config) *remote.Client {
	return remote.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout, cfg.Server.MaxRetryAttempts)
}

func newValidator(cfg *config.Config) upload.Validator {
	return upload.NewValidator(cfg.Upload.MaxBytes)
}
