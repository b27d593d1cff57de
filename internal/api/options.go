package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultAddr is the address the catalog API binds to when none is configured.
	DefaultAddr = "localhost:8090"

	// MCPPath is where the MCP handler is served when one is configured.
	MCPPath = "/mcp"
)

// ServerOptions contains optional configuration for the API server.
// NewServerOptions should be used to create instances of ServerOptions.
type ServerOptions struct {
	// Addr specifies the network address to bind.
	Addr string

	// CORS configuration for cross-origin requests.
	CORS CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	ShutdownTimeout time.Duration

	// MCPHandler is mounted at MCPPath when set.
	MCPHandler http.Handler
}

// CORSConfig defines Cross-Origin Resource Sharing settings for the API server.
type CORSConfig struct {
	// Enabled determines whether CORS headers are added to responses.
	Enabled bool

	// AllowCredentials indicates whether the request can include credentials.
	// Must be false when AllowOrigins contains "*"
	AllowCredentials bool

	// AllowedHeaders specifies which headers the client can include in requests.
	AllowedHeaders []string

	// AllowMethods specifies which HTTP methods are permitted.
	// Using strings to match the go-chi/cors library API.
	AllowMethods []string

	// AllowOrigins specifies which origins can access the API.
	// Use ["*"] to allow all origins.
	AllowOrigins []string

	// MaxAge specifies how long browsers can cache preflight responses.
	MaxAge time.Duration
}

// ServerOption defines a functional option for configuring ServerOptions.
// Options are applied in order, with later options overriding earlier ones.
type ServerOption func(*ServerOptions) error

// NewServerOptions creates ServerOptions with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewServerOptions(opt ...ServerOption) (ServerOptions, error) {
	options := ServerOptions{
		Addr: DefaultAddr,
		CORS: CORSConfig{
			Enabled:          false,
			AllowOrigins:     nil,
			AllowMethods:     DefaultCORSAllowMethods(),
			AllowedHeaders:   DefaultCORSAllowHeaders(),
			AllowCredentials: false,
			MaxAge:           DefaultCORSMaxAge(),
		},
		ShutdownTimeout: DefaultShutdownTimeout(),
	}

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&options); err != nil {
			return ServerOptions{}, err
		}
	}

	return options, nil
}

// WithAddr sets the "host:port" address the server binds to.
func WithAddr(addr string) ServerOption {
	return func(o *ServerOptions) error {
		addr = strings.TrimSpace(addr)
		if err := validateAddr(addr); err != nil {
			return err
		}
		o.Addr = addr
		return nil
	}
}

// WithCORSAllowOrigins sets the allowed origins for CORS requests.
// CORS is enabled when at least one origin is supplied.
func WithCORSAllowOrigins(origins []string) ServerOption {
	return func(o *ServerOptions) error {
		o.CORS.AllowOrigins = origins
		o.CORS.Enabled = len(origins) > 0
		return nil
	}
}

// WithCORSAllowCredentials sets whether credentials are allowed in CORS requests.
func WithCORSAllowCredentials(allowed bool) ServerOption {
	return func(o *ServerOptions) error {
		o.CORS.AllowCredentials = allowed
		return nil
	}
}

// WithCORSMaxAge sets how long browsers can cache CORS preflight responses.
func WithCORSMaxAge(maxAge time.Duration) ServerOption {
	return func(o *ServerOptions) error {
		if maxAge < 0 {
			return fmt.Errorf("CORS max age cannot be negative, got %v", maxAge)
		}
		o.CORS.MaxAge = maxAge
		return nil
	}
}

// WithShutdownTimeout configures how long to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) ServerOption {
	return func(o *ServerOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %v", timeout)
		}
		o.ShutdownTimeout = timeout
		return nil
	}
}

// WithMCPHandler mounts an MCP handler alongside the catalog API.
func WithMCPHandler(h http.Handler) ServerOption {
	return func(o *ServerOptions) error {
		if h == nil {
			return fmt.Errorf("MCP handler cannot be nil")
		}
		o.MCPHandler = h
		return nil
	}
}

// DefaultCORSAllowHeaders returns standard headers required for API interaction.
func DefaultCORSAllowHeaders() []string {
	// Headers that are safe-listed regardless of configuration.
	return []string{
		"Accept",
		"Accept-Language",
		"Content-Language",
		"Content-Type",
		"Range",
	}
}

// DefaultCORSAllowMethods returns the HTTP methods the read-only API serves.
func DefaultCORSAllowMethods() []string {
	return []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodOptions,
	}
}

// DefaultCORSMaxAge returns the default CORS max age duration.
// Max age is the default time browsers can cache preflight responses.
func DefaultCORSMaxAge() time.Duration {
	return 5 * time.Minute
}

// DefaultShutdownTimeout is the default time allowed for API server graceful shutdown.
func DefaultShutdownTimeout() time.Duration {
	return 5 * time.Second
}

// validateAddr checks if the address is a valid "host:port" string.
func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}

	if port == "" {
		return fmt.Errorf("address missing port")
	}

	if _, err := strconv.Atoi(port); err != nil {
		if _, err := net.LookupPort("tcp", port); err != nil {
			return fmt.Errorf("invalid address port: %s", port)
		}
	}

	return nil
}
