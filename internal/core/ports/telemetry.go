package ports

import (
	"context"
	"io"
)

// Telemetry records the lifecycle of pipeline stages.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a new vertex for the named stage.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded stage.
type Vertex interface {
	// Stdout returns a writer capturing the stage's standard output.
	Stdout() io.Writer

	// Stderr returns a writer capturing the stage's error output.
	Stderr() io.Writer

	// Complete marks the vertex as finished, successfully or with err.
	Complete(err error)
}

type vertexKey struct{}

// ContextWithVertex returns a context carrying the given vertex.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, or nil.
func VertexFromContext(ctx context.Context) Vertex {
	v, _ := ctx.Value(vertexKey{}).(Vertex)
	return v
}
