package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	"github.com/mozilla-ai/mcpmarket/internal/cmd/output"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
	"github.com/mozilla-ai/mcpmarket/internal/printer"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

const searchEmptyMessage = "No servers found matching your search."

type SearchCmd struct {
	*cmd.BaseCmd
	Format          cmd.OutputFormat
	registryBuilder registry.Builder
}

func NewSearchCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &SearchCmd{
		BaseCmd:         baseCmd,
		Format:          cmd.FormatText,
		registryBuilder: opts.RegistryBuilder,
	}

	cobraCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for MCP servers by keyword",
		Long:  c.longDescription(),
		RunE:  c.run,
	}

	cobraCmd.Flags().Var(&c.Format, "format", formatFlagUsage())

	return cobraCmd, nil
}

func (c *SearchCmd) longDescription() string {
	return `Search the marketplace for MCP servers.

The query is matched case-insensitively against each server's name, description,
author and tags. Multiple arguments are joined with spaces to form the query.`
}

func (c *SearchCmd) run(cobraCmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))

	serverPrinter, err := printer.NewServerPrinter(printer.WithCategory(true), printer.WithSpacing(true))
	if err != nil {
		return err
	}
	serverPrinter.SetHeader(printer.SearchHeader(query))
	serverPrinter.SetFooter(func(w io.Writer, _ int) { printer.UsageHints(w) })

	handler, err := cmd.FormatHandler[packages.Server](cobraCmd.OutOrStdout(), c.Format, serverPrinter)
	if err != nil {
		return err
	}
	if th, ok := handler.(*output.TextHandler[packages.Server]); ok {
		th.WithEmptyHeader().WithEmptyMessage(searchEmptyMessage)
	}

	if query == "" {
		return handler.HandleError(fmt.Errorf("search query cannot be empty"))
	}

	reg, err := c.registryBuilder.Build()
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResults(reg.Search(query)...)
}
