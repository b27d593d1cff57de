//go:build docsgen_api
// +build docsgen_api

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpmarket/internal/api"
	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	"github.com/mozilla-ai/mcpmarket/internal/perms"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

// main generates the OpenAPI specification for the catalog API.
// It assumes it is run from the repository root.
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   cmd.AppName + ".docsgen.api",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	// Output path for the OpenAPI spec, relative to the repository root.
	outputPath := "./docs/api/openapi.yaml"

	// The bundled catalog backs the routes, only their definitions end up in the document.
	reg, err := registry.Load(logger)
	if err != nil {
		logger.Error("failed to load registry", "error", err)
		os.Exit(1)
	}

	// Create a chi router (same as 'serve').
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	config := huma.DefaultConfig(cmd.AppName+" catalog", cmd.Version())
	router := humachi.New(mux, config)

	apiPathPrefix, err := api.RegisterRoutes(router, reg)
	if err != nil {
		logger.Error("failed to register API routes", "error", err)
		os.Exit(1)
	}

	logger.Info("Routes registered", "prefix", apiPathPrefix)

	yamlBytes, err := router.OpenAPI().YAML()
	if err != nil {
		logger.Error("failed to generate OpenAPI YAML", "error", err)
		os.Exit(1)
	}

	docsDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(docsDir, perms.RegularDir); err != nil {
		logger.Error("failed to create docs directory", "path", docsDir, "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, yamlBytes, perms.RegularFile); err != nil {
		logger.Error("failed to write OpenAPI spec", "path", outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("OpenAPI spec generated", "path", outputPath, "size", fmt.Sprintf("%d bytes", len(yamlBytes)))
}
