package ports

import "go.slipway.dev/slipway/internal/core/domain"

// ConfigLoader loads the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at the given path and returns the
	// resolved build plan.
	Load(path string) (*domain.Plan, error)
}
