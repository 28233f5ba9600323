// Package fs provides filesystem-backed adapters.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.slipway.dev/slipway/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of artifact files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash returns the hex XXHash of the file's content.
func (h *Hasher) Hash(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open artifact"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash artifact"), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
