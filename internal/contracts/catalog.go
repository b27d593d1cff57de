// Package contracts holds the interfaces that read-only catalog surfaces depend on.
package contracts

import (
	"github.com/mozilla-ai/mcpmarket/internal/packages"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

var _ CatalogReader = (*registry.Registry)(nil)

// CatalogReader provides read access to the marketplace catalog.
type CatalogReader interface {
	// Version returns the catalog version.
	Version() string

	// Find runs a query against the catalog.
	Find(q registry.Query) (packages.Servers, error)

	// Resolve returns the server with the given ID, or an error wrapping errors.ErrServerNotFound.
	Resolve(id string) (packages.Server, error)

	// ListCategories returns every category in catalog order.
	ListCategories() packages.Categories
}
