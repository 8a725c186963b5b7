// Package commands implements the CLI commands for bridge.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/bridge/internal/app"
	"go.trai.ch/bridge/internal/build"
	"go.trai.ch/bridge/internal/core/domain"
)

// CLI represents the command line interface for bridge.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Install(ctx context.Context, requests []string, opts app.InstallOptions) error
	Update(ctx context.Context, names []string) error
	CheckUpdates(ctx context.Context, opts app.CheckOptions) ([]domain.UpdateCandidate, error)
	Remove(ctx context.Context, req string, opts app.RemoveOptions) (*domain.RemovalReport, error)
	List(ctx context.Context) error
	Link(ctx context.Context) error
	Unlink(ctx context.Context) error
	LinkBin(ctx context.Context, req string) error
	UnlinkBin(ctx context.Context, req string) error
	Resolve(ctx context.Context, specifier, from string) (domain.Resolution, error)
	Exec(ctx context.Context, file string, args []string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "bridge",
		Short:         "A shared package registry for local projects",
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

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newCheckUpdatesCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newLinkCmd())
	rootCmd.AddCommand(c.newUnlinkCmd())
	rootCmd.AddCommand(c.newLinkBinCmd())
	rootCmd.AddCommand(c.newUnlinkBinCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newExecCmd())
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
