package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.slipway.dev/slipway/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.slipway.dev/slipway/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.slipway.dev/slipway/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.slipway.dev/slipway/internal/core/ports"
	"go.slipway.dev/slipway/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the app with the adapters the CLI needs direct
// access to.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			pl, err := graft.Dep[*pipeline.Pipeline](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, pl, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log, Telemetry: tel}, nil
		},
	})
}
