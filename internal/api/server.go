// Package api serves the marketplace catalog as a read-only HTTP API.
package api

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	"github.com/mozilla-ai/mcpmarket/internal/contracts"
	"github.com/mozilla-ai/mcpmarket/internal/errors"
)

// APIServer manages the HTTP API for the catalog.
// NewServer should be used to create instances of APIServer.
type APIServer struct {
	logger          hclog.Logger
	catalog         contracts.CatalogReader
	addr            string
	cors            CORSConfig
	shutdownTimeout time.Duration
	mcpHandler      http.Handler
}

// NewServer creates a new API server with the provided catalog and options.
// Applies default options first, then user-provided options to ensure all fields have valid values.
func NewServer(logger hclog.Logger, catalog contracts.CatalogReader, opt ...ServerOption) (*APIServer, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if catalog == nil || reflect.ValueOf(catalog).IsNil() {
		return nil, fmt.Errorf("catalog cannot be nil")
	}

	opts, err := NewServerOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid API options: %w", err)
	}

	return &APIServer{
		logger:          logger.Named("api"),
		catalog:         catalog,
		addr:            opts.Addr,
		cors:            opts.CORS,
		shutdownTimeout: opts.ShutdownTimeout,
		mcpHandler:      opts.MCPHandler,
	}, nil
}

// Handler builds the HTTP handler serving the API routes.
func (s *APIServer) Handler() (http.Handler, error) {
	// Create router.
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	// Add CORS middleware if enabled.
	if s.cors.Enabled {
		s.applyCORS(mux)
	}

	config := huma.DefaultConfig(fmt.Sprintf("%s catalog", cmd.AppName), cmd.Version())
	router := humachi.New(mux, config)

	// Configure the error handling wrapping.
	huma.NewErrorWithContext = errorHandler(s.logger)

	prefix, err := RegisterRoutes(router, s.catalog)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Registered API routes", "prefix", prefix)

	if s.mcpHandler != nil {
		mux.Handle(MCPPath, s.mcpHandler)
		s.logger.Debug("Registered MCP handler", "path", MCPPath)
	}

	return mux, nil
}

// Start starts the API server and blocks until the context is canceled or an error occurs.
// A server which shuts down because the context was canceled returns nil.
func (s *APIServer) Start(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on '%s': %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting API server", "address", listener.Addr().String())
		if s.cors.Enabled {
			s.logger.Info("CORS enabled", "origins", s.cors.AllowOrigins)
		}
		if err := srv.Serve(listener); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Handle graceful shutdown.
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down API server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("API server shutdown failed: %w", err)
		}
		s.logger.Info("Shutdown complete")
		return nil
	})

	return g.Wait()
}

// applyCORS applies CORS middleware to the router based on the configured options.
func (s *APIServer) applyCORS(mux *chi.Mux) {
	s.logger.Info("Enabling CORS", "origins", s.cors.AllowOrigins)

	corsOptions := cors.Options{
		AllowedOrigins:   slices.Clone(s.cors.AllowOrigins),
		AllowedMethods:   s.cors.AllowMethods,
		AllowedHeaders:   s.cors.AllowedHeaders,
		AllowCredentials: s.cors.AllowCredentials,
		MaxAge:           int(s.cors.MaxAge.Seconds()),
	}

	// Handle wildcard origins properly.
	for i, origin := range corsOptions.AllowedOrigins {
		if strings.TrimSpace(origin) == "*" {
			corsOptions.AllowedOrigins = []string{"*"}
			corsOptions.AllowCredentials = false
			break
		}
		corsOptions.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	mux.Use(cors.Handler(corsOptions))
}

// mapError maps application domain errors to appropriate HTTP status codes.
//
// This function is the central place where domain errors from internal/errors are converted to HTTP responses.
// When adding new errors to internal/errors/errors.go, you MUST add them here to prevent them from falling
// through to the default case which returns HTTP 500.
//
// Mapping guidelines:
//   - 400: Client errors (bad input, invalid requests)
//   - 404: Resource not found errors
//   - 500: Unexpected internal errors (default case)
//
// Don't forget to:
// 1. Add test cases to TestMapError (internal/api/server_test.go)
// 2. Update the documentation in internal/errors/errors.go
func mapError(logger hclog.Logger, err error) huma.StatusError {
	switch {
	case stdErrors.Is(err, errors.ErrBadRequest):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrInvalidScope):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrMissingRequiredInput):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrServerNotFound):
		return huma.Error404NotFound(err.Error())
	default:
		logger.Error("Unexpected error serving catalog", "error", err)
		return huma.Error500InternalServerError("Internal server error", err)
	}
}

// errorHandler wraps error handling for the application when converting to API friendly errors.
// Errors that Huma has already assigned a client status (e.g. request validation) keep it,
// errors returned by handlers are mapped with mapError.
func errorHandler(logger hclog.Logger) func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
	return func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		switch {
		case len(errs) == 0:
			// No errors provided; return a generic error.
			return huma.NewError(status, msg)
		case status != http.StatusInternalServerError:
			return huma.NewError(status, msg, errs...)
		case len(errs) == 1:
			// Single error; map it directly.
			return mapError(logger, errs[0])
		default:
			// Multiple errors; join them and map.
			return mapError(logger, stdErrors.Join(errs...))
		}
	}
}
