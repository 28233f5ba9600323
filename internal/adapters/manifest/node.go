package manifest

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.slipway.dev/slipway/internal/core/ports"
)

// NodeID is the unique identifier for the run store Graft node.
const NodeID graft.ID = "adapter.run_store"

func init() {
	graft.Register(graft.Node[ports.RunStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.RunStore, error) {
			store, err := NewStore(filepath.Join(".slipway", "manifest.json"))
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
