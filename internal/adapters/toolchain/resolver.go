// Package toolchain resolves the external tools a pipeline run depends on.
package toolchain

import (
	"os/exec"
	"path/filepath"
	"strings"

	"go.slipway.dev/slipway/internal/core/domain"
	"go.slipway.dev/slipway/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolResolver = (*Resolver)(nil)

// Resolver implements ports.ToolResolver against the ambient PATH.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve maps each configured tool name to an absolute executable path.
// A single error lists every missing tool, so a half-provisioned host
// fails once with the full picture instead of mid-pipeline.
func (r *Resolver) Resolve(names []string) (map[string]string, error) {
	resolved := make(map[string]string, len(names))
	var missing []string

	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := resolved[name]; ok {
			continue
		}

		path, err := lookup(name)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		resolved[name] = path
	}

	if len(missing) > 0 {
		return nil, zerr.With(domain.ErrToolNotFound, "tools", strings.Join(missing, ", "))
	}

	return resolved, nil
}

func lookup(name string) (string, error) {
	if filepath.IsAbs(name) {
		// Configured as an explicit path; verify it exists and is runnable.
		return name, checkExecutable(name)
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

func checkExecutable(path string) error {
	_, err := exec.LookPath(path)
	return err
}
