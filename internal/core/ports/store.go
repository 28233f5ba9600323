package ports

import "go.slipway.dev/slipway/internal/core/domain"

// RunStore persists run records across pipeline invocations.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunStore interface {
	// Get retrieves the latest record for the given archive name.
	// Returns nil, nil if not found.
	Get(archive string) (*domain.RunRecord, error)

	// Put stores the record, replacing any previous one for the same
	// archive.
	Put(record domain.RunRecord) error
}
