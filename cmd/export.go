package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/installer"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
	"github.com/mozilla-ai/mcpmarket/internal/printer"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
	"github.com/mozilla-ai/mcpmarket/internal/settings"
)

type ExportCmd struct {
	*cmd.BaseCmd
	Format  cmd.ExportFormat
	Timeout int
	inputFlags

	registryBuilder registry.Builder
}

func NewExportCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ExportCmd{
		BaseCmd:         baseCmd,
		Format:          cmd.ExportFormatJSON,
		registryBuilder: opts.RegistryBuilder,
	}

	cobraCmd := &cobra.Command{
		Use:   "export <server-id>",
		Short: "Print the runtime configuration for an MCP server without installing it",
		Long:  c.longDescription(),
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	allowed := cmd.AllowedExportFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the export format (one of: %s)", allowed.String()),
	)
	cobraCmd.Flags().IntVar(&c.Timeout, "timeout", 0, "Connection timeout in milliseconds")
	c.inputFlags.register(cobraCmd.Flags())

	return cobraCmd, nil
}

func (c *ExportCmd) longDescription() string {
	return `Print the configuration a server would be installed with, as an 'mcpServers'
settings snippet in JSON, TOML or YAML.

The dotenv format prints the environment variables the server declares,
with any supplied values, ready to be filled in and used with 'install --env-file'.

Nothing is prompted for and no settings are written. Missing required values
are reported on stderr, and their placeholders are left in place.`
}

func (c *ExportCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])

	reg, err := c.registryBuilder.Build()
	if err != nil {
		return err
	}

	srv, err := reg.Resolve(id)
	if err != nil {
		if errors.Is(err, errs.ErrServerNotFound) {
			printer.BrowseHint(cobraCmd.ErrOrStderr())
		}
		return err
	}

	inputs, err := c.inputs(srv)
	if err != nil {
		return err
	}

	if c.Format == cmd.ExportFormatDotEnv {
		data, err := dotenv(srv, inputs)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cobraCmd.OutOrStdout(), data)
		return err
	}

	if v := installer.Validate(srv, inputs, nil); !v.Valid {
		printer.MissingConfiguration(cobraCmd.ErrOrStderr(), v.Missing)
	}

	cfg := installer.Synthesize(srv, inputs, installer.Extras{Timeout: c.Timeout})
	data, err := settings.Encode(c.Format.FileName(), map[string]any{
		installer.SettingsKey: map[string]any{srv.ID: cfg},
	})
	if err != nil {
		return fmt.Errorf("failed to export configuration for '%s': %w", srv.ID, err)
	}

	_, err = cobraCmd.OutOrStdout().Write(data)
	return err
}

// dotenv renders each environment variable srv declares with its supplied value, or empty when there is none.
func dotenv(srv packages.Server, inputs installer.Inputs) (string, error) {
	values := make(map[string]string, len(srv.Installation.EnvVars))
	for _, name := range srv.Installation.EnvVars {
		values[name] = inputs.EnvVars[name]
	}

	data, err := godotenv.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to export environment for '%s': %w", srv.ID, err)
	}
	return data, nil
}
