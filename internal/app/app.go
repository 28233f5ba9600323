// Package app implements the application layer for slipway.
package app

import (
	"context"
	"fmt"
	"time"

	"go.slipway.dev/slipway/internal/adapters/config"
	"go.slipway.dev/slipway/internal/core/ports"
	"go.slipway.dev/slipway/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader     ports.ConfigLoader
	pipeline   *pipeline.Pipeline
	logger     ports.Logger
	configPath string
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, pl *pipeline.Pipeline, logger ports.Logger) *App {
	return &App{
		loader:     loader,
		pipeline:   pl,
		logger:     logger,
		configPath: config.DefaultFilename,
	}
}

// SetConfigPath overrides the project file location.
func (a *App) SetConfigPath(path string) {
	if path != "" {
		a.configPath = path
	}
}

// Build runs the full pipeline for the configured project.
func (a *App) Build(ctx context.Context) error {
	plan, err := a.loader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load project")
	}

	record, err := a.pipeline.Run(ctx, plan)
	if err != nil {
		return zerr.Wrap(err, "build failed")
	}

	a.logger.Info(fmt.Sprintf("built %s in %s, checksum %s",
		record.Archive, record.Duration.Round(time.Millisecond), record.Checksum))
	return nil
}

// Clean removes prior pipeline output for the configured project.
func (a *App) Clean(ctx context.Context) error {
	plan, err := a.loader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load project")
	}

	if err := a.pipeline.Clean(ctx, plan); err != nil {
		return zerr.Wrap(err, "clean failed")
	}
	return nil
}
