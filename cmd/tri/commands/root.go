// Package commands implements the CLI commands for the tri agent.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tri/internal/app"
	"go.trai.ch/tri/internal/build"
	"go.trai.ch/tri/internal/core/domain"
)

// CLI represents the command line interface for tri.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
}

// Application represents the application logic interface.
type Application interface {
	Serve(ctx context.Context, opts app.Options) error
	Process(ctx context.Context, path string, opts app.Options) error
	Headers(ctx context.Context, w io.Writer, req domain.HeadersRequest, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tri",
		Short:         "Answers loss-development triangle requests dropped into an inbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.ConfigPath, "config", "c", "", "Agent config file (default <root>/tri.yaml)")
	flags.StringVarP(&c.opts.Root, "root", "r", "", "Project root (default .)")
	flags.BoolVar(&c.opts.JSON, "json", false, "Write logs as JSON")

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newProcessCmd())
	rootCmd.AddCommand(c.newHeadersCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
