package registry

import (
	"cmp"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/xeipuuv/gojsonschema"

	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/filter"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

//go:embed data/registry.json data/registry.schema.json
var embeddedData embed.FS

const (
	// Name is used to identify the registry in logs and errors.
	Name = "registry"

	// DefaultLimit is the number of results returned by ranked listings when no valid limit is supplied.
	DefaultLimit = 10

	embeddedRegistryPath = "data/registry.json"
	embeddedSchemaPath   = "data/registry.schema.json"
)

var (
	// ErrRegistryLoadFailed is returned when the registry document cannot be read or decoded.
	ErrRegistryLoadFailed = errors.New("failed to load registry")

	// ErrRegistryInvalid is returned when the registry document does not satisfy the registry schema,
	// or contains structural problems such as duplicate server IDs.
	ErrRegistryInvalid = errors.New("invalid registry")
)

// Document is the on-disk shape of a registry.
type Document struct {
	Version    string              `json:"version"`
	Servers    packages.Servers    `json:"servers"`
	Categories packages.Categories `json:"categories"`
}

// Registry is an immutable, indexed view over a registry Document.
// All query methods return copies, so a Registry is safe for concurrent reads.
type Registry struct {
	logger       hclog.Logger
	version      string
	servers      packages.Servers
	categories   packages.Categories
	index        map[string]int
	defaultLimit int
}

// EmbeddedDocument returns the raw registry document bundled with the binary.
func EmbeddedDocument() ([]byte, error) {
	data, err := embeddedData.ReadFile(embeddedRegistryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read embedded registry data: %w", ErrRegistryLoadFailed, err)
	}
	return data, nil
}

// Schema returns the JSON schema that registry documents are validated against.
func Schema() ([]byte, error) {
	data, err := embeddedData.ReadFile(embeddedSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read embedded registry schema: %w", ErrRegistryLoadFailed, err)
	}
	return data, nil
}

// Validate checks the supplied registry document against the registry schema.
// The returned error wraps ErrRegistryInvalid and lists every schema violation.
func Validate(data []byte) error {
	schema, err := Schema()
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistryLoadFailed, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", re.Field(), re.Description()))
	}

	return fmt.Errorf("%w: %s", ErrRegistryInvalid, strings.Join(problems, "; "))
}

// New creates a Registry from the supplied registry document.
// The document is validated against the registry schema before it is decoded.
func New(logger hclog.Logger, data []byte, opt ...Option) (*Registry, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	opts, err := newOptions(opt...)
	if err != nil {
		return nil, err
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal registry data: %w", ErrRegistryLoadFailed, err)
	}

	return fromDocument(logger.Named(Name), doc, opts)
}

func fromDocument(logger hclog.Logger, doc Document, opts registryOptions) (*Registry, error) {
	index := make(map[string]int, len(doc.Servers))
	for i, srv := range doc.Servers {
		if _, exists := index[srv.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate server ID detected: %s", ErrRegistryInvalid, srv.ID)
		}
		index[srv.ID] = i
	}

	for _, srv := range doc.Servers {
		if _, ok := doc.Categories.Find(srv.Category); !ok {
			logger.Warn("Server references unknown category", "server", srv.ID, "category", srv.Category)
		}
	}

	logger.Debug(
		"Loaded registry",
		"version", doc.Version,
		"servers", len(doc.Servers),
		"categories", len(doc.Categories),
	)

	return &Registry{
		logger:       logger,
		version:      doc.Version,
		servers:      doc.Servers.Clone(),
		categories:   slices.Clone(doc.Categories),
		index:        index,
		defaultLimit: opts.defaultLimit,
	}, nil
}

// Version returns the version of the loaded registry document.
func (r *Registry) Version() string {
	return r.version
}

// ListAll returns every server in catalog order.
func (r *Registry) ListAll() packages.Servers {
	return r.servers.Clone()
}

// ListCategories returns every category in catalog order.
func (r *Registry) ListCategories() packages.Categories {
	if r.categories == nil {
		return packages.Categories{}
	}
	return slices.Clone(r.categories)
}

// ListByCategory returns servers whose category matches id exactly, in catalog order.
func (r *Registry) ListByCategory(id string) packages.Servers {
	return r.where(func(s packages.Server) bool { return s.Category == id })
}

// ListVerified returns verified servers in catalog order.
func (r *Registry) ListVerified() packages.Servers {
	return r.where(func(s packages.Server) bool { return s.Verified })
}

// ListPopular returns up to limit servers ordered by downloads, highest first.
// Servers with equal downloads keep their catalog order.
func (r *Registry) ListPopular(limit int) packages.Servers {
	return r.ranked(limit, func(a, b packages.Server) int {
		return cmp.Compare(b.Downloads, a.Downloads)
	})
}

// ListTopRated returns up to limit servers ordered by rating, highest first.
// Servers with equal ratings keep their catalog order.
func (r *Registry) ListTopRated(limit int) packages.Servers {
	return r.ranked(limit, func(a, b packages.Server) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
}

// FindByID returns the server with the exact (case-sensitive) ID.
func (r *Registry) FindByID(id string) (packages.Server, bool) {
	i, ok := r.index[id]
	if !ok {
		return packages.Server{}, false
	}
	return r.servers[i].Clone(), true
}

// Resolve returns the server with the exact ID, or an error wrapping errors.ErrServerNotFound.
func (r *Registry) Resolve(id string) (packages.Server, error) {
	srv, ok := r.FindByID(id)
	if !ok {
		r.logger.Debug("Server not found", "id", id)
		return packages.Server{}, fmt.Errorf("%w: '%s'", errs.ErrServerNotFound, id)
	}
	return srv, nil
}

// Search returns servers where the query is a case-insensitive substring of the name,
// description, author or any tag. Results are in catalog order.
// An empty query matches every server.
func (r *Registry) Search(query string) packages.Servers {
	matches := searchPredicate()
	return r.where(func(s packages.Server) bool { return matches(s, query) })
}

func (r *Registry) where(keep func(packages.Server) bool) packages.Servers {
	out := packages.Servers{}
	for _, srv := range r.servers {
		if keep(srv) {
			out = append(out, srv.Clone())
		}
	}
	return out
}

func (r *Registry) ranked(limit int, compare func(a, b packages.Server) int) packages.Servers {
	if limit <= 0 {
		limit = r.defaultLimit
	}

	sorted := r.servers.Clone()
	slices.SortStableFunc(sorted, compare)

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func searchPredicate() filter.Predicate[packages.Server] {
	return filter.PartialAny(
		filter.Single(func(s packages.Server) string { return s.Name }),
		filter.Single(func(s packages.Server) string { return s.Description }),
		filter.Single(func(s packages.Server) string { return s.Author }),
		func(s packages.Server) []string { return s.Tags },
	)
}
