package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpmarket/internal/flags"
	"github.com/mozilla-ai/mcpmarket/internal/perms"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
	"github.com/mozilla-ai/mcpmarket/internal/registry/options"
	"github.com/mozilla-ai/mcpmarket/internal/settings"
)

var (
	_ registry.Builder = (*BaseCmd)(nil)
	_ settings.Loader  = (*BaseCmd)(nil)
)

type BaseCmd struct {
	logger hclog.Logger
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(strings.TrimSpace(os.Getenv(flags.EnvVarLogLevel)))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	// Nothing is logged unless a log file is configured.
	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.RegularFile)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, logging disabled\n", logPath, err)
		} else {
			output = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   AppName,
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// Build creates the registry, using the registry file from flags when one is configured.
// Supplied options are applied after the flag value.
func (c *BaseCmd) Build(opt ...options.BuildOption) (*registry.Registry, error) {
	opts := append([]options.BuildOption{options.WithRegistryFile(flags.RegistryFile)}, opt...)
	return registry.Load(c.Logger(), opts...)
}

// Load reads the user and workspace settings, using the settings directory and file names from flags.
func (c *BaseCmd) Load(rootPath string) (*settings.Settings, error) {
	loader := &settings.DefaultLoader{
		Logger:   c.Logger(),
		DirName:  flags.SettingsDir,
		FileName: flags.SettingsFile,
	}
	return loader.Load(rootPath)
}
