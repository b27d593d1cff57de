package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerOptions(t *testing.T) {
	t.Parallel()

	t.Run("default options", func(t *testing.T) {
		t.Parallel()

		opts, err := NewServerOptions()
		require.NoError(t, err)
		assert.Equal(t, DefaultAddr, opts.Addr)
		assert.Equal(t, DefaultShutdownTimeout(), opts.ShutdownTimeout)
		assert.False(t, opts.CORS.Enabled)
		assert.False(t, opts.CORS.AllowCredentials)
		assert.Equal(t, []string{http.MethodGet, http.MethodHead, http.MethodOptions}, opts.CORS.AllowMethods)
		require.Len(t, opts.CORS.AllowedHeaders, 5)
		assert.Equal(t, 5*time.Minute, opts.CORS.MaxAge)
	})

	t.Run("origins enable CORS", func(t *testing.T) {
		t.Parallel()

		origins := []string{"http://localhost:3000", "https://example.com"}
		opts, err := NewServerOptions(WithCORSAllowOrigins(origins))
		require.NoError(t, err)
		assert.True(t, opts.CORS.Enabled)
		assert.Equal(t, origins, opts.CORS.AllowOrigins)
	})

	t.Run("no origins leaves CORS disabled", func(t *testing.T) {
		t.Parallel()

		opts, err := NewServerOptions(WithCORSAllowOrigins(nil))
		require.NoError(t, err)
		assert.False(t, opts.CORS.Enabled)
	})

	t.Run("options override in order", func(t *testing.T) {
		t.Parallel()

		opts, err := NewServerOptions(
			WithShutdownTimeout(5*time.Second),
			WithShutdownTimeout(10*time.Second), // This should win
		)
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, opts.ShutdownTimeout)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		_, err := NewServerOptions(WithShutdownTimeout(0))
		require.EqualError(t, err, "shutdown timeout must be positive, got 0s")

		_, err = NewServerOptions(WithCORSMaxAge(-time.Second))
		require.EqualError(t, err, "CORS max age cannot be negative, got -1s")

		_, err = NewServerOptions(WithAddr("localhost:"))
		require.EqualError(t, err, "address missing port")
	})

	t.Run("address is trimmed", func(t *testing.T) {
		t.Parallel()

		opts, err := NewServerOptions(WithAddr("  0.0.0.0:9090 "))
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:9090", opts.Addr)
	})
}

func TestValidateAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{
			name:    "valid host and port",
			addr:    "localhost:8090",
			wantErr: false,
		},
		{
			name:    "valid IP and port",
			addr:    "127.0.0.1:8090",
			wantErr: false,
		},
		{
			name:    "empty host with port",
			addr:    ":8090",
			wantErr: false,
		},
		{
			name:    "named port",
			addr:    "localhost:http",
			wantErr: false,
		},
		{
			name:    "missing port",
			addr:    "localhost",
			wantErr: true,
		},
		{
			name:    "empty port",
			addr:    "localhost:",
			wantErr: true,
		},
		{
			name:    "unknown named port",
			addr:    "localhost:not-a-port",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := validateAddr(tc.addr)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestWithMCPHandler(t *testing.T) {
	t.Parallel()

	_, err := NewServerOptions(WithMCPHandler(nil))
	require.EqualError(t, err, "MCP handler cannot be nil")

	opts, err := NewServerOptions(WithMCPHandler(http.NotFoundHandler()))
	require.NoError(t, err)
	require.NotNil(t, opts.MCPHandler)
}
