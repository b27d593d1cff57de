package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/mcpmarket/internal/contracts"
	"github.com/mozilla-ai/mcpmarket/internal/installer"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

// Server is the API representation of a catalog entry.
type Server struct {
	ID            string       `doc:"Unique server identifier"                  example:"github"     json:"id"`
	Name          string       `doc:"Display name"                              example:"GitHub"     json:"name"`
	Description   string       `doc:"Summary of what the server provides"       json:"description"`
	Author        string       `doc:"Author or maintainer"                      json:"author"`
	Category      string       `doc:"Category identifier"                       example:"development" json:"category"`
	Tags          []string     `doc:"Free form tags"                            json:"tags"`
	Repository    string       `doc:"Source repository URL"                     json:"repository"`
	Documentation string       `doc:"Documentation URL"                         json:"documentation"`
	Transport     string       `doc:"Transport used between host and server"    enum:"stdio,sse,http" json:"transport"`
	Installation  Installation `doc:"How the host launches the server"          json:"installation"`
	Tools         []string     `doc:"Names of the tools the server exposes"     json:"tools"`
	Verified      bool         `doc:"Whether the curator has verified the server" json:"verified"`
	Downloads     int64        `doc:"Download count"                            json:"downloads"`
	Rating        float64      `doc:"Average rating out of 5"                   json:"rating"`
}

// Installation is the API representation of a server's launch description.
type Installation struct {
	Type         string   `doc:"Provisioning mechanism"                          enum:"npx,npm,custom" json:"type"`
	Command      string   `doc:"Executable launched by the host"                 json:"command"`
	Args         []string `doc:"Arguments, which may contain {name} placeholders" json:"args"`
	RequiredArgs []string `doc:"Placeholders that must be supplied on install"   json:"requiredArgs"`
	EnvVars      []string `doc:"Environment variables required at runtime"       json:"envVars"`
}

// RuntimeConfig is the API representation of the configuration written to a host's settings on install.
type RuntimeConfig struct {
	Command string            `doc:"Executable launched by the host"  json:"command,omitempty"`
	Args    []string          `doc:"Arguments passed to the command"  json:"args,omitempty"`
	Env     map[string]string `doc:"Environment for the server"       json:"env,omitempty"`
	URL     string            `doc:"Endpoint for SSE servers"         json:"url,omitempty"`
	HTTPURL string            `doc:"Endpoint for HTTP servers"        json:"httpUrl,omitempty"`
}

// ServersRequest represents the incoming API request for querying the catalog.
type ServersRequest struct {
	Category string `doc:"Only include servers in this category"            example:"development" query:"category"`
	Verified string `doc:"Only include servers with this verification status" example:"true"      query:"verified"`
	Sort     string `doc:"Order results by downloads or rating"             example:"popular"     query:"sort"`
	Limit    int    `doc:"Maximum number of results"                        example:"10"          query:"limit"`
	Query    string `doc:"Case-insensitive search over names, descriptions and tags" example:"git" query:"q"`
	Author   string `doc:"Only include servers whose author contains this text" example:"anthropic" query:"author"`
}

// ServerRequest represents the incoming API request for a single server.
type ServerRequest struct {
	ID string `doc:"ID of the server" example:"github" path:"id"`
}

// ServersResponse represents the wrapped API response for a list of servers.
type ServersResponse struct {
	Body struct {
		Servers []Server `doc:"Matching catalog servers" json:"servers"`
	}
}

// ServerResponse represents the wrapped API response for a single server.
type ServerResponse struct {
	Body Server
}

// ServerConfigResponse represents the wrapped API response for a server's configuration preview.
type ServerConfigResponse struct {
	Body struct {
		ID     string        `doc:"ID of the server"                                   json:"id"`
		Config RuntimeConfig `doc:"Configuration written when installed without input" json:"config"`

		// Missing lists the inputs an install would need to prompt for.
		Missing []string `doc:"Required inputs which are not satisfied by the preview" json:"missing"`
	}
}

// RegisterServerRoutes sets up catalog server API endpoints
func RegisterServerRoutes(routerAPI huma.API, catalog contracts.CatalogReader, apiPathPrefix string) {
	serversAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Servers"}

	// Add route at the root of the group (no path specified).
	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listServers",
			Method:      http.MethodGet,
			Summary:     "Query catalog servers",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServersRequest) (*ServersResponse, error) {
			return handleServers(catalog, input)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "getServer",
			Method:      http.MethodGet,
			Path:        "/{id}",
			Summary:     "Get server details",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerRequest) (*ServerResponse, error) {
			return handleServer(catalog, input.ID)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "getServerConfig",
			Method:      http.MethodGet,
			Path:        "/{id}/config",
			Summary:     "Preview server configuration",
			Tags:        append(tags, "Config"),
		},
		func(ctx context.Context, input *ServerRequest) (*ServerConfigResponse, error) {
			return handleServerConfig(catalog, input.ID)
		},
	)
}

// handleServers returns the catalog servers matching the request filters.
func handleServers(catalog contracts.CatalogReader, input *ServersRequest) (*ServersResponse, error) {
	sortOrder, err := registry.ParseSortOrder(input.Sort)
	if err != nil {
		return nil, err
	}

	filters := map[string]string{}
	for key, value := range map[string]string{
		registry.FilterKeyCategory: input.Category,
		registry.FilterKeyVerified: input.Verified,
		registry.FilterKeyQuery:    input.Query,
		registry.FilterKeyAuthor:   input.Author,
	} {
		if strings.TrimSpace(value) != "" {
			filters[key] = value
		}
	}

	servers, err := catalog.Find(registry.Query{
		Filters: filters,
		Sort:    sortOrder,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &ServersResponse{}
	resp.Body.Servers = make([]Server, 0, len(servers))
	for _, srv := range servers {
		data, err := DomainServer(srv).ToAPIType()
		if err != nil {
			return nil, err
		}
		resp.Body.Servers = append(resp.Body.Servers, data)
	}

	return resp, nil
}

// handleServer returns the details of a single catalog server.
func handleServer(catalog contracts.CatalogReader, id string) (*ServerResponse, error) {
	srv, err := catalog.Resolve(id)
	if err != nil {
		return nil, err
	}

	data, err := DomainServer(srv).ToAPIType()
	if err != nil {
		return nil, err
	}

	resp := &ServerResponse{}
	resp.Body = data

	return resp, nil
}

// handleServerConfig returns the configuration the server would be installed with when no input is supplied.
// Nothing is read from the API host's environment.
func handleServerConfig(catalog contracts.CatalogReader, id string) (*ServerConfigResponse, error) {
	srv, err := catalog.Resolve(id)
	if err != nil {
		return nil, err
	}

	inputs := installer.Inputs{}
	cfg, err := DomainRuntimeConfig(installer.Synthesize(srv, inputs, installer.Extras{})).ToAPIType()
	if err != nil {
		return nil, err
	}

	resp := &ServerConfigResponse{}
	resp.Body.ID = srv.ID
	resp.Body.Config = cfg
	resp.Body.Missing = installer.Validate(srv, inputs, nil).Missing

	return resp, nil
}
