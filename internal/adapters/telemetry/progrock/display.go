package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Display)(nil)

// Display is a progrock.Writer that surfaces vertex lifecycle changes
// on a terminal writer as they are recorded: one line when a stage
// starts, one when it finishes or fails. Stage process output is not
// repeated here; it streams through the vertex writers separately.
type Display struct {
	w io.Writer

	mu      sync.Mutex
	started map[string]bool
	done    map[string]bool
}

// NewDisplay creates a Display writing to w.
func NewDisplay(w io.Writer) *Display {
	return &Display{
		w:       w,
		started: make(map[string]bool),
		done:    make(map[string]bool),
	}
}

// WriteStatus renders newly started and newly completed vertexes.
// Updates re-listing an already-reported vertex state are ignored.
func (d *Display) WriteStatus(update *progrock.StatusUpdate) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, v := range update.Vertexes {
		if !d.started[v.Id] {
			d.started[v.Id] = true
			fmt.Fprintf(d.w, "=> %s\n", v.Name)
		}
		if v.Completed == nil || d.done[v.Id] {
			continue
		}
		d.done[v.Id] = true
		if v.Error != nil {
			fmt.Fprintf(d.w, "=> %s failed: %s\n", v.Name, *v.Error)
		} else {
			fmt.Fprintf(d.w, "=> %s done\n", v.Name)
		}
	}
	return nil
}

// Close implements progrock.Writer. The display holds no buffered
// state; everything was written as it arrived.
func (d *Display) Close() error { return nil }
