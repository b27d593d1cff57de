package registry

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpmarket/internal/registry/options"
)

// Builder constructs a Registry.
// Commands receive a Builder so tests can supply a catalog without touching disk.
type Builder interface {
	Build(opt ...options.BuildOption) (*Registry, error)
}

// BuilderFunc adapts an ordinary function into a Builder.
type BuilderFunc func(opt ...options.BuildOption) (*Registry, error)

// Build implements Builder.
func (f BuilderFunc) Build(opt ...options.BuildOption) (*Registry, error) {
	return f(opt...)
}

// Load creates a Registry from a registry document on local disk when options.WithRegistryFile is supplied,
// otherwise from the document bundled with the binary.
func Load(logger hclog.Logger, opt ...options.BuildOption) (*Registry, error) {
	opts, err := options.NewBuildOptions(opt...)
	if err != nil {
		return nil, err
	}

	var data []byte
	if opts.RegistryFile != "" {
		data, err = os.ReadFile(opts.RegistryFile)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read registry file '%s': %w", ErrRegistryLoadFailed, opts.RegistryFile, err)
		}
	} else {
		data, err = EmbeddedDocument()
		if err != nil {
			return nil, err
		}
	}

	var regOpts []Option
	if opts.DefaultLimit > 0 {
		regOpts = append(regOpts, WithDefaultLimit(opts.DefaultLimit))
	}

	return New(logger, data, regOpts...)
}
