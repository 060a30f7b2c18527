package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Watch the inbox and answer requests until stopped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Serve(cmd.Context(), c.opts)
		},
	}
}

func (c *CLI) newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <request-file>",
		Short: "Answer a single request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Process(cmd.Context(), args[0], c.opts)
		},
	}
}
