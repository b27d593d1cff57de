package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpmarket/internal/contracts"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

// HealthStatusOK is reported whenever the API is able to serve the catalog.
const HealthStatusOK HealthStatus = "ok"

// HealthStatus represents the status of the catalog API.
type HealthStatus string

// Health describes the catalog being served.
type Health struct {
	Status     HealthStatus `doc:"Status of the API"                    json:"status"`
	Version    string       `doc:"Version of the catalog being served"  json:"version"`
	Servers    int          `doc:"Number of servers in the catalog"     json:"servers"`
	Categories int          `doc:"Number of categories in the catalog"  json:"categories"`
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Body Health
}

// RegisterHealthRoutes sets up health-related API endpoints
func RegisterHealthRoutes(routerAPI huma.API, catalog contracts.CatalogReader, apiPathPrefix string) {
	healthAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Health"}

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "getHealth",
			Method:      http.MethodGet,
			Summary:     "Get catalog health",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
			return handleHealth(catalog)
		},
	)
}

func handleHealth(catalog contracts.CatalogReader) (*HealthResponse, error) {
	servers, err := catalog.Find(registry.Query{})
	if err != nil {
		return nil, err
	}

	resp := &HealthResponse{}
	resp.Body = Health{
		Status:     HealthStatusOK,
		Version:    catalog.Version(),
		Servers:    len(servers),
		Categories: len(catalog.ListCategories()),
	}

	return resp, nil
}
