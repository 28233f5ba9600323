// Package progrock provides the Progrock implementation of the telemetry port.
package progrock

import (
	"context"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.slipway.dev/slipway/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry using the progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder whose vertex lifecycle is surfaced on stderr,
// next to the stage output the pipeline streams itself.
func New() *Recorder {
	return NewRecorder(NewDisplay(os.Stderr))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex for the named stage.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
