package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	progrockadapter "go.slipway.dev/slipway/internal/adapters/telemetry/progrock"
	"go.slipway.dev/slipway/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			return progrockadapter.New(), nil
		},
	})
}
