package options

import (
	"fmt"
	"strings"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	"github.com/mozilla-ai/mcpmarket/internal/installer"
	"github.com/mozilla-ai/mcpmarket/internal/prompt"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
	"github.com/mozilla-ai/mcpmarket/internal/settings"
)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	RegistryBuilder registry.Builder
	SettingsLoader  settings.Loader

	// Prompter is used for interactive input, when nil a terminal prompter over the command's input is created.
	Prompter prompt.Prompter

	// EnvLookup finds ambient environment variables during installs, when nil the process environment is used.
	EnvLookup installer.EnvLookup

	// WorkDir is the workspace root for project scoped settings, when empty the working directory is used.
	WorkDir string
}

func defaultOptions() CmdOptions {
	base := &cmd.BaseCmd{}
	return CmdOptions{
		RegistryBuilder: base,
		SettingsLoader:  base,
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithRegistryBuilder(b registry.Builder) CmdOption {
	return func(o *CmdOptions) error {
		o.RegistryBuilder = b
		return nil
	}
}

func WithSettingsLoader(l settings.Loader) CmdOption {
	return func(o *CmdOptions) error {
		o.SettingsLoader = l
		return nil
	}
}

func WithPrompter(p prompt.Prompter) CmdOption {
	return func(o *CmdOptions) error {
		o.Prompter = p
		return nil
	}
}

func WithEnvLookup(fn installer.EnvLookup) CmdOption {
	return func(o *CmdOptions) error {
		o.EnvLookup = fn
		return nil
	}
}

func WithWorkDir(path string) CmdOption {
	return func(o *CmdOptions) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("work dir cannot be empty")
		}
		o.WorkDir = path
		return nil
	}
}
