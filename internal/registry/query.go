package registry

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/filter"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

const (
	// FilterKeyCategory is the key to use for filtering on exact category ID.
	FilterKeyCategory = "category"

	// FilterKeyVerified is the key to use for filtering on verification status.
	FilterKeyVerified = "verified"

	// FilterKeyQuery is the key to use for free text search.
	FilterKeyQuery = "q"

	// FilterKeyTransport is the key to use for filtering on transport.
	FilterKeyTransport = "transport"

	// FilterKeyTool is the key to use for filtering on servers that expose a named tool.
	FilterKeyTool = "tool"

	// FilterKeyAuthor is the key to use for filtering on a case-insensitive part of the author.
	FilterKeyAuthor = "author"
)

// SortOrder describes how Query results are ordered.
type SortOrder string

const (
	// SortCatalog keeps catalog order.
	SortCatalog SortOrder = ""

	// SortPopular orders by downloads, highest first.
	SortPopular SortOrder = "popular"

	// SortRating orders by rating, highest first.
	SortRating SortOrder = "rating"
)

// ParseSortOrder converts a string into a SortOrder, returning an error wrapping errors.ErrBadRequest
// for unrecognised values.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(filter.NormalizeString(s)) {
	case SortCatalog:
		return SortCatalog, nil
	case SortPopular:
		return SortPopular, nil
	case SortRating:
		return SortRating, nil
	default:
		return "", fmt.Errorf("%w: unknown sort order '%s', must be one of: popular, rating", errs.ErrBadRequest, s)
	}
}

// Query combines filters, ordering and limits over the catalog.
type Query struct {
	// Filters are keyed by the FilterKey* constants. Unknown keys are ignored.
	Filters map[string]string

	// Sort controls the result ordering.
	Sort SortOrder

	// Limit truncates the results. Zero or less returns everything for SortCatalog,
	// and DefaultLimit results for ranked orders.
	Limit int
}

func matchers() map[string]filter.Predicate[packages.Server] {
	return map[string]filter.Predicate[packages.Server]{
		// Category IDs are compared exactly, like ListByCategory.
		FilterKeyCategory: func(s packages.Server, val string) bool { return s.Category == strings.TrimSpace(val) },
		FilterKeyVerified: filter.EqualsBool(func(s packages.Server) bool { return s.Verified }),
		FilterKeyQuery:    searchPredicate(),
		FilterKeyTransport: filter.Equals(func(s packages.Server) string {
			return string(s.Transport)
		}),
		FilterKeyTool: filter.PartialAny(func(s packages.Server) []string { return s.Tools }),
	}
}

// Find runs the supplied Query against the catalog.
func (r *Registry) Find(q Query) (packages.Servers, error) {
	if v, ok := q.Filters[FilterKeyVerified]; ok {
		if _, err := strconv.ParseBool(filter.NormalizeString(v)); err != nil {
			return nil, fmt.Errorf("%w: invalid value for '%s': %s", errs.ErrBadRequest, FilterKeyVerified, v)
		}
	}

	var source packages.Servers
	switch q.Sort {
	case SortCatalog:
		source = r.servers
	case SortPopular:
		source = r.ListPopular(len(r.servers))
	case SortRating:
		source = r.ListTopRated(len(r.servers))
	default:
		return nil, fmt.Errorf("%w: unknown sort order '%s'", errs.ErrBadRequest, q.Sort)
	}

	opt := []filter.Option[packages.Server]{
		filter.WithMatchers(matchers()),
		filter.WithMatcher(FilterKeyAuthor, func(s packages.Server, val string) bool {
			return filter.ContainsFold(s.Author, strings.TrimSpace(val))
		}),
	}

	out := packages.Servers{}
	for _, srv := range source {
		ok, err := filter.Match(srv, q.Filters, opt...)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, srv.Clone())
		}
	}

	limit := q.Limit
	if limit <= 0 && q.Sort != SortCatalog {
		limit = r.defaultLimit
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	r.logger.Debug("Query complete", "filters", q.Filters, "sort", q.Sort, "limit", limit, "results", len(out))

	return out, nil
}
