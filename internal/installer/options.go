package installer

import (
	"fmt"
	"io"
	"strings"
)

// Options contains optional configuration for an Installer.
// NewOptions should be used to create instances of Options.
type Options struct {
	// EnvLookup finds values for environment variables that were not supplied.
	EnvLookup EnvLookup

	// Output receives user-facing progress messages.
	Output io.Writer

	// WorkDir is the workspace root used to locate project settings.
	// When empty, the process working directory is used.
	WorkDir string
}

// Option defines a functional option for configuring Options.
type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		EnvLookup: OSEnvLookup,
		Output:    io.Discard,
	}
}

// NewOptions creates Options with optional configurations applied in order.
func NewOptions(opts ...Option) (Options, error) {
	options := defaultOptions()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithEnvLookup replaces the process environment as the source of ambient environment variables.
func WithEnvLookup(lookup EnvLookup) Option {
	return func(o *Options) error {
		if lookup == nil {
			return fmt.Errorf("env lookup cannot be nil")
		}
		o.EnvLookup = lookup
		return nil
	}
}

// WithOutput sets where progress messages are written.
func WithOutput(w io.Writer) Option {
	return func(o *Options) error {
		if w == nil {
			return fmt.Errorf("output writer cannot be nil")
		}
		o.Output = w
		return nil
	}
}

// WithWorkDir sets the workspace root.
func WithWorkDir(path string) Option {
	return func(o *Options) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return fmt.Errorf("work dir cannot be empty")
		}
		o.WorkDir = path
		return nil
	}
}
