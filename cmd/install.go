package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/installer"
	"github.com/mozilla-ai/mcpmarket/internal/printer"
	"github.com/mozilla-ai/mcpmarket/internal/prompt"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
	"github.com/mozilla-ai/mcpmarket/internal/settings"
)

const flagTrust = "trust"

type InstallCmd struct {
	*cmd.BaseCmd
	Scope   string
	Trust   bool
	Timeout int
	Yes     bool
	inputFlags

	registryBuilder registry.Builder
	settingsLoader  settings.Loader
	prompter        prompt.Prompter
	envLookup       installer.EnvLookup
	workDir         string
}

func NewInstallCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InstallCmd{
		BaseCmd:         baseCmd,
		registryBuilder: opts.RegistryBuilder,
		settingsLoader:  opts.SettingsLoader,
		prompter:        opts.Prompter,
		envLookup:       opts.EnvLookup,
		workDir:         opts.WorkDir,
	}

	cobraCmd := &cobra.Command{
		Use:   "install <server-id>",
		Short: "Install an MCP server into your settings",
		Long:  c.longDescription(),
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	cobraCmd.Flags().StringVarP(
		&c.Scope,
		"scope",
		"s",
		installer.ScopeNameProject,
		fmt.Sprintf("Settings to install into (one of: %s, %s)", installer.ScopeNameProject, installer.ScopeNameUser),
	)
	cobraCmd.Flags().BoolVar(&c.Trust, flagTrust, false, "Trust the server, bypassing tool call confirmations")
	cobraCmd.Flags().IntVar(&c.Timeout, "timeout", 0, "Connection timeout in milliseconds")
	cobraCmd.Flags().BoolVarP(
		&c.Yes,
		"yes",
		"y",
		false,
		"Skip prompts, supplied and environment values must satisfy the server's requirements",
	)
	c.inputFlags.register(cobraCmd.Flags())

	return cobraCmd, nil
}

func (c *InstallCmd) longDescription() string {
	return `Install an MCP server from the marketplace into your settings.

Required arguments and environment variables are prompted for unless they are
supplied with --arg, --env or --env-file. Environment variables already set in
your environment are used without prompting.

By default the server is installed into the project settings in the current
directory, use '--scope user' to install into your home directory instead.
Installing a server that is already configured replaces its configuration.`
}

func (c *InstallCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	out := cobraCmd.OutOrStdout()
	logger := c.Logger()

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

	prompter := c.prompter
	if prompter == nil {
		prompter = prompt.NewTerminal(cobraCmd.InOrStdin(), out)
	}

	opts := []installer.Option{installer.WithOutput(out)}
	if c.envLookup != nil {
		opts = append(opts, installer.WithEnvLookup(c.envLookup))
	}
	if c.workDir != "" {
		opts = append(opts, installer.WithWorkDir(c.workDir))
	}

	inst, err := installer.NewInstaller(logger, reg, c.settingsLoader, prompter, opts...)
	if err != nil {
		return err
	}

	req := installer.Request{
		ServerID: srv.ID,
		Scope:    c.Scope,
		Timeout:  c.Timeout,
		Yes:      c.Yes,
		Args:     inputs.Args,
		EnvVars:  inputs.EnvVars,
	}
	if cobraCmd.Flags().Changed(flagTrust) {
		trust := c.Trust
		req.Trust = &trust
	}

	if _, err := inst.Install(cobraCmd.Context(), req); err != nil {
		if errors.Is(err, errs.ErrUserCancelled) {
			return nil
		}
		return err
	}

	return nil
}
