// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.slipway.dev/slipway/internal/adapters/config"
	_ "go.slipway.dev/slipway/internal/adapters/fs"
	_ "go.slipway.dev/slipway/internal/adapters/logger"
	_ "go.slipway.dev/slipway/internal/adapters/manifest"
	_ "go.slipway.dev/slipway/internal/adapters/shell"
	_ "go.slipway.dev/slipway/internal/adapters/telemetry"
	_ "go.slipway.dev/slipway/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.slipway.dev/slipway/internal/app"
	_ "go.slipway.dev/slipway/internal/engine/pipeline"
)
