package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tri/internal/core/domain"
)

func (c *CLI) newHeadersCmd() *cobra.Command {
	var req domain.HeadersRequest

	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Print the origin or development labels of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Headers(cmd.Context(), cmd.OutOrStdout(), req, c.opts)
		},
	}
	cmd.Flags().StringVarP(&req.Project, "project", "p", "", "Project name")
	cmd.Flags().IntVarP(&req.PeriodLength, "length", "l", domain.DefaultPeriodLength, "Period length in months: 1, 3, 6 or 12")
	cmd.Flags().IntVarP(&req.PeriodType, "type", "t", 0, "0 for origin labels, 1 for development labels")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
