package api

import (
	"fmt"
	"slices"

	"github.com/mozilla-ai/mcpmarket/internal/installer"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

type Convertible[T any] interface {
	// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
	// It should be responsible for any normalization required to ensure consistency
	// across the API boundary.
	ToAPIType() (T, error)
}

// DomainServer wraps a catalog server so it can be converted to its API representation.
type DomainServer packages.Server

// DomainCategory wraps a catalog category so it can be converted to its API representation.
type DomainCategory packages.Category

// DomainRuntimeConfig wraps a synthesized runtime configuration.
type DomainRuntimeConfig installer.RuntimeConfig

// ToAPIType converts the catalog server to an API server.
// Collections are never nil, so they are always encoded as arrays.
func (d DomainServer) ToAPIType() (Server, error) {
	if d.ID == "" {
		return Server{}, fmt.Errorf("server ID cannot be empty")
	}

	return Server{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Author:        d.Author,
		Category:      d.Category,
		Tags:          nonNil(d.Tags),
		Repository:    d.Repository,
		Documentation: d.Documentation,
		Transport:     string(d.Transport),
		Installation: Installation{
			Type:         string(d.Installation.Type),
			Command:      d.Installation.Command,
			Args:         nonNil(d.Installation.Args),
			RequiredArgs: nonNil(d.Installation.RequiredArgs),
			EnvVars:      nonNil(d.Installation.EnvVars),
		},
		Tools:     nonNil(d.Tools),
		Verified:  d.Verified,
		Downloads: d.Downloads,
		Rating:    d.Rating,
	}, nil
}

// ToAPIType converts the catalog category to an API category, applying the default icon when none is set.
func (d DomainCategory) ToAPIType() (Category, error) {
	if d.ID == "" {
		return Category{}, fmt.Errorf("category ID cannot be empty")
	}

	icon := d.Icon
	if icon == "" {
		icon = packages.DefaultCategoryIcon
	}

	return Category{
		ID:   d.ID,
		Name: d.Name,
		Icon: icon,
	}, nil
}

// ToAPIType converts the runtime configuration to its API representation.
func (d DomainRuntimeConfig) ToAPIType() (RuntimeConfig, error) {
	return RuntimeConfig{
		Command: d.Command,
		Args:    slices.Clone(d.Args),
		Env:     d.Env,
		URL:     d.URL,
		HTTPURL: d.HTTPURL,
	}, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
