package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run the full build pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context())
		},
	}
}
