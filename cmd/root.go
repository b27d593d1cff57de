package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	"github.com/mozilla-ai/mcpmarket/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute runs the root command, cancelling long-running commands when ctx is done.
func Execute(ctx context.Context) error {
	rootCmd, err := NewRootCmd(&RootCmd{BaseCmd: &cmd.BaseCmd{}})
	if err != nil {
		return err
	}

	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd creates the root command with every subcommand attached.
// The supplied options are passed to each subcommand.
func NewRootCmd(c *RootCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           cmd.AppName + " <command> [args]",
		Short:         "Browse, search and install MCP servers from the marketplace.",
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewBrowseCmd,
		NewSearchCmd,
		NewInfoCmd,
		NewCategoriesCmd,
		NewInstallCmd,
		NewExportCmd,
		NewServeCmd,
		NewMCPCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(c.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The '` + cmd.AppName + `' CLI is a catalog of installable MCP servers.

Browse and search the catalog, inspect a server's requirements, then install it
into your host application's user or project settings.`
}
