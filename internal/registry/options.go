package registry

import (
	"fmt"
)

// Option configures a Registry.
type Option func(*registryOptions) error

type registryOptions struct {
	defaultLimit int
}

func defaultOptions() registryOptions {
	return registryOptions{
		defaultLimit: DefaultLimit,
	}
}

func newOptions(opt ...Option) (registryOptions, error) {
	opts := defaultOptions()
	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return registryOptions{}, err
		}
	}
	return opts, nil
}

// WithDefaultLimit overrides the number of results returned by ranked listings
// when callers do not supply a positive limit.
func WithDefaultLimit(limit int) Option {
	return func(o *registryOptions) error {
		if limit <= 0 {
			return fmt.Errorf("default limit must be greater than zero, got: %d", limit)
		}
		o.defaultLimit = limit
		return nil
	}
}
