package options

import (
	"strings"
)

// BuildOption defines a functional option for configuring registry builds.
type BuildOption func(*BuildOptions) error

// BuildOptions contains configuration for building a registry.
// NewBuildOptions should be used to create instances of BuildOptions.
type BuildOptions struct {
	// RegistryFile is an optional path to a registry document on local disk.
	// When empty, the registry bundled with the binary is used.
	RegistryFile string

	// DefaultLimit overrides the number of ranked results returned when no limit is requested.
	// Zero uses the registry default.
	DefaultLimit int
}

// NewBuildOptions creates BuildOptions with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewBuildOptions(opts ...BuildOption) (BuildOptions, error) {
	options := BuildOptions{
		RegistryFile: "", // Empty uses embedded registry
		DefaultLimit: 0,  // Zero uses default
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return BuildOptions{}, err
		}
	}

	return options, nil
}

// WithRegistryFile configures a local registry document to load instead of the embedded one.
func WithRegistryFile(path string) BuildOption {
	return func(o *BuildOptions) error {
		o.RegistryFile = strings.TrimSpace(path)
		return nil
	}
}

// WithDefaultLimit configures the default number of ranked results.
func WithDefaultLimit(limit int) BuildOption {
	return func(o *BuildOptions) error {
		o.DefaultLimit = limit
		return nil
	}
}
