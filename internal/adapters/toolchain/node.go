package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.slipway.dev/slipway/internal/core/ports"
)

// NodeID is the unique identifier for the tool resolver Graft node.
const NodeID graft.ID = "adapter.tool_resolver"

func init() {
	graft.Register(graft.Node[ports.ToolResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ToolResolver, error) {
			return NewResolver(), nil
		},
	})
}
