package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	"github.com/mozilla-ai/mcpmarket/internal/mcpserver"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

type MCPCmd struct {
	*cmd.BaseCmd
	registryBuilder registry.Builder
}

func NewMCPCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &MCPCmd{
		BaseCmd:         baseCmd,
		registryBuilder: opts.RegistryBuilder,
	}

	cobraCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server over stdio that lets agents query the marketplace",
		Long: `Run an MCP server over stdin and stdout which exposes read-only tools for
searching the marketplace, listing categories and looking up servers.

Add '` + cmd.AppName + ` mcp' as a stdio server in your host application to let agents
discover MCP servers for themselves.`,
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	return cobraCmd, nil
}

func (c *MCPCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	reg, err := c.registryBuilder.Build()
	if err != nil {
		return err
	}

	srv, err := mcpserver.NewServer(logger, reg)
	if err != nil {
		return err
	}

	return srv.ServeStdio(cobraCmd.Context(), cobraCmd.InOrStdin(), cobraCmd.OutOrStdout())
}
