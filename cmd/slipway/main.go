// Package main is the entry point for the slipway CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.slipway.dev/slipway/cmd/slipway/commands"
	"go.slipway.dev/slipway/internal/app"
	_ "go.slipway.dev/slipway/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	defer func() {
		if err := components.Telemetry.Close(); err != nil {
			components.Logger.Error(err)
		}
	}()

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
