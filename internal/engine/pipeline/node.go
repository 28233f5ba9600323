package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.slipway.dev/slipway/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.slipway.dev/slipway/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.slipway.dev/slipway/internal/adapters/manifest"  //nolint:depguard // Wired in engine wiring
	"go.slipway.dev/slipway/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.slipway.dev/slipway/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.slipway.dev/slipway/internal/adapters/toolchain" //nolint:depguard // Wired in engine wiring
	"go.slipway.dev/slipway/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			toolchain.NodeID,
			fs.HasherNodeID,
			manifest.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.ToolResolver](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.RunStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(executor, resolver, hasher, store, tel, log), nil
		},
	})
}
