package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
	"github.com/mozilla-ai/mcpmarket/internal/printer"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

type InfoCmd struct {
	*cmd.BaseCmd
	Format          cmd.OutputFormat
	Markdown        bool
	registryBuilder registry.Builder
}

func NewInfoCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InfoCmd{
		BaseCmd:         baseCmd,
		Format:          cmd.FormatText,
		registryBuilder: opts.RegistryBuilder,
	}

	cobraCmd := &cobra.Command{
		Use:   "info <server-id>",
		Short: "Show detailed information about an MCP server",
		Long:  c.longDescription(),
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	cobraCmd.Flags().Var(&c.Format, "format", formatFlagUsage())
	cobraCmd.Flags().BoolVar(
		&c.Markdown,
		"markdown",
		false,
		"Print Markdown installation instructions instead of the server details",
	)

	return cobraCmd, nil
}

func (c *InfoCmd) longDescription() string {
	return `Show everything the marketplace knows about a server: its tools, the arguments
and environment variables it requires, and how to install it.

Server IDs are matched exactly and are case-sensitive.`
}

func (c *InfoCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])

	reg, err := c.registryBuilder.Build()
	if err != nil {
		return err
	}

	handler, err := cmd.FormatHandler[packages.Server](
		cobraCmd.OutOrStdout(),
		c.Format,
		printer.NewDetailsPrinter(reg.ListCategories()),
	)
	if err != nil {
		return err
	}

	srv, err := reg.Resolve(id)
	if err != nil {
		if errors.Is(err, errs.ErrServerNotFound) && (c.Format == cmd.FormatText || c.Format == "") {
			printer.BrowseHint(cobraCmd.ErrOrStderr())
		}
		return handler.HandleError(err)
	}

	if c.Markdown {
		_, err := fmt.Fprintln(cobraCmd.OutOrStdout(), printer.InstallationInstructions(srv))
		return err
	}

	return handler.HandleResult(srv)
}
