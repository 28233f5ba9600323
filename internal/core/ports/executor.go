// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.slipway.dev/slipway/internal/core/domain"
)

// Executor runs a single task to completion.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute spawns the task's process with the merged environment,
	// streams its output to stdout/stderr, and blocks until termination.
	//
	// It returns nil when the exit code is accepted by the task, and a
	// fatal error naming the executable and exit code otherwise.
	Execute(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) error
}
