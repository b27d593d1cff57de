package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/api"
	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	"github.com/mozilla-ai/mcpmarket/internal/mcpserver"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

type ServeCmd struct {
	*cmd.BaseCmd
	Addr            string
	CORSOrigins     []string
	CORSCredentials bool
	MCP             bool
	registryBuilder registry.Builder
}

func NewServeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ServeCmd{
		BaseCmd:         baseCmd,
		registryBuilder: opts.RegistryBuilder,
	}

	cobraCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the marketplace catalog over HTTP",
		Long:  c.longDescription(),
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	cobraCmd.Flags().StringVar(&c.Addr, "addr", api.DefaultAddr, "Address to listen on in the format host:port")
	cobraCmd.Flags().StringArrayVar(
		&c.CORSOrigins,
		"cors-origin",
		nil,
		"Origin allowed to make cross-origin requests, enables CORS (can be repeated)",
	)
	cobraCmd.Flags().BoolVar(
		&c.CORSCredentials,
		"cors-allow-credentials",
		false,
		"Allow credentials in cross-origin requests, ignored when the wildcard origin is allowed",
	)
	cobraCmd.Flags().BoolVar(
		&c.MCP,
		"mcp",
		false,
		fmt.Sprintf("Also serve the catalog as an MCP server over streamable HTTP at %s", api.MCPPath),
	)

	return cobraCmd, nil
}

func (c *ServeCmd) longDescription() string {
	return `Serve the marketplace catalog as a read-only HTTP API until interrupted.

The API is documented by its OpenAPI schema, served at '/openapi.json' and
browsable at '/docs'.`
}

func (c *ServeCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	reg, err := c.registryBuilder.Build()
	if err != nil {
		return err
	}

	opts := []api.ServerOption{
		api.WithAddr(c.Addr),
		api.WithCORSAllowOrigins(c.CORSOrigins),
		api.WithCORSAllowCredentials(c.CORSCredentials),
	}

	if c.MCP {
		mcpSrv, err := mcpserver.NewServer(logger, reg)
		if err != nil {
			return err
		}
		opts = append(opts, api.WithMCPHandler(mcpSrv.Handler()))
	}

	srv, err := api.NewServer(logger, reg, opts...)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cobraCmd.OutOrStdout(), "Serving %s catalog on http://%s\n", cmd.AppName, c.Addr)

	return srv.Start(cobraCmd.Context())
}
