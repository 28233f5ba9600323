// Package shell provides the process executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.slipway.dev/slipway/internal/core/domain"
	"go.slipway.dev/slipway/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the task's process and blocks until it terminates.
//
// The effective environment is os.Environ() with the task's overrides
// applied on top; an override wins on key collision. Output streams to
// the given writers, falling back to the calling process's own streams,
// so tool output stays visible to the operator.
//
// An exit code inside the task's accepted set is success. Anything else
// is a fatal error carrying the executable path and exit code.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) error {
	env := mergeEnvironment(os.Environ(), task.Env)

	// Non-absolute executables are resolved against the merged PATH, not
	// the parent's, so a PATH override affects the lookup too.
	executable := task.Executable
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, task.Args...) //nolint:gosec // command comes from the build plan
	if len(cmd.Args) > 0 {
		cmd.Args[0] = task.Executable
	}
	if task.WorkingDir != "" {
		cmd.Dir = task.WorkingDir
	}
	cmd.Env = env
	cmd.Stdin = os.Stdin
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if task.Accepts(code) {
			e.logger.Info(task.Executable + ": tolerated exit code, state already satisfied")
			return nil
		}
		failure := zerr.With(domain.ErrCommandFailed, "executable", executable)
		return zerr.With(failure, "exit_code", code)
	}

	return zerr.With(zerr.Wrap(err, "command could not be started"), "executable", executable)
}

// mergeEnvironment overlays the task's overrides on the inherited
// environment. Override wins on key collision.
func mergeEnvironment(inherited []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(inherited)+len(overrides))
	for _, entry := range inherited {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the
// PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
