// Package telemetry provides ports.Telemetry implementations.
package telemetry

import (
	"context"
	"io"

	"go.slipway.dev/slipway/internal/core/ports"
)

var _ ports.Telemetry = (*Discard)(nil)

// Discard is a no-op telemetry implementation for tests and plain runs.
type Discard struct{}

// NewDiscard creates a new Discard recorder.
func NewDiscard() *Discard {
	return &Discard{}
}

// Record returns a vertex that swallows everything.
func (d *Discard) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := discardVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close is a no-op.
func (d *Discard) Close() error { return nil }

type discardVertex struct{}

func (discardVertex) Stdout() io.Writer { return io.Discard }
func (discardVertex) Stderr() io.Writer { return io.Discard }
func (discardVertex) Complete(error)    {}
