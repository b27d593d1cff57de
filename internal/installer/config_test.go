package installer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

func stdioServer(args []string, envVars []string) packages.Server {
	return packages.Server{
		ID:        "test",
		Name:      "Test",
		Transport: packages.TransportStdio,
		Installation: packages.Installation{
			Type:    packages.InstallationNPX,
			Command: "run",
			Args:    args,
			EnvVars: envVars,
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func TestSynthesize_Placeholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		values   map[string]string
		expected []string
	}{
		{
			name:     "replaced",
			args:     []string{"run", "{a}"},
			values:   map[string]string{"a": "x"},
			expected: []string{"run", "x"},
		},
		{
			name:     "unresolved left as-is",
			args:     []string{"run", "{a}"},
			values:   map[string]string{},
			expected: []string{"run", "{a}"},
		},
		{
			name:     "empty value is unresolved",
			args:     []string{"{a}"},
			values:   map[string]string{"a": ""},
			expected: []string{"{a}"},
		},
		{
			name:     "only whole element tokens",
			args:     []string{"--key={a}", "{a}x", "{a}"},
			values:   map[string]string{"a": "v"},
			expected: []string{"--key={a}", "{a}x", "v"},
		},
		{
			name:     "no args",
			args:     nil,
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Synthesize(stdioServer(tc.args, nil), Inputs{Args: tc.values}, Extras{})
			require.Equal(t, "run", cfg.Command)
			require.Equal(t, tc.expected, cfg.Args)
		})
	}
}

func TestSynthesize_DoesNotMutateServer(t *testing.T) {
	t.Parallel()

	srv := stdioServer([]string{"{a}"}, nil)
	cfg := Synthesize(srv, Inputs{Args: map[string]string{"a": "x"}}, Extras{})
	cfg.Args[0] = "changed"

	require.Equal(t, []string{"{a}"}, srv.Installation.Args)
}

func TestSynthesize_Env(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envVars  []string
		supplied map[string]string
		expected map[string]string
	}{
		{
			name:     "omitted when not declared and none supplied",
			envVars:  nil,
			supplied: nil,
			expected: nil,
		},
		{
			name:     "present when declared even if empty",
			envVars:  []string{},
			supplied: nil,
			expected: map[string]string{},
		},
		{
			name:     "copied when declared",
			envVars:  []string{"K"},
			supplied: map[string]string{"K": "v"},
			expected: map[string]string{"K": "v"},
		},
		{
			name:     "copied when supplied but not declared",
			envVars:  nil,
			supplied: map[string]string{"EXTRA": "1"},
			expected: map[string]string{"EXTRA": "1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Synthesize(stdioServer([]string{"a"}, tc.envVars), Inputs{EnvVars: tc.supplied}, Extras{})
			require.Equal(t, tc.expected, cfg.Env)
		})
	}
}

func TestSynthesize_EnvIsCopied(t *testing.T) {
	t.Parallel()

	supplied := map[string]string{"K": "v"}
	cfg := Synthesize(stdioServer(nil, []string{"K"}), Inputs{EnvVars: supplied}, Extras{})
	cfg.Env["K"] = "changed"

	require.Equal(t, "v", supplied["K"])
}

func TestSynthesize_RemoteTransports(t *testing.T) {
	t.Parallel()

	inputs := Inputs{Args: map[string]string{
		ArgKeyURL:     "https://example.com/sse",
		ArgKeyHTTPURL: "https://example.com/mcp",
	}}

	sse := Synthesize(packages.Server{Transport: packages.TransportSSE}, inputs, Extras{})
	require.Equal(t, RuntimeConfig{URL: "https://example.com/sse"}, sse)

	http := Synthesize(packages.Server{Transport: packages.TransportHTTP}, inputs, Extras{})
	require.Equal(t, RuntimeConfig{HTTPURL: "https://example.com/mcp"}, http)

	missing := Synthesize(packages.Server{Transport: packages.TransportSSE}, Inputs{}, Extras{})
	require.Equal(t, RuntimeConfig{}, missing)
}

func TestSynthesize_Extras(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		extras          Extras
		expectedTimeout int
		expectedTrust   *bool
	}{
		{name: "unset", extras: Extras{}},
		{name: "non-positive timeout ignored", extras: Extras{Timeout: -5}},
		{name: "timeout", extras: Extras{Timeout: 30000}, expectedTimeout: 30000},
		{name: "trust true", extras: Extras{Trust: boolPtr(true)}, expectedTrust: boolPtr(true)},
		{name: "explicit false kept", extras: Extras{Trust: boolPtr(false)}, expectedTrust: boolPtr(false)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Synthesize(packages.Server{Transport: packages.TransportHTTP}, Inputs{}, tc.extras)
			require.Equal(t, tc.expectedTimeout, cfg.Timeout)
			require.Equal(t, tc.expectedTrust, cfg.Trust)
		})
	}
}

func TestRuntimeConfig_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      RuntimeConfig
		expected string
	}{
		{
			name:     "stdio without env",
			cfg:      RuntimeConfig{Command: "npx", Args: []string{"-y", "pkg"}},
			expected: `{"command":"npx","args":["-y","pkg"]}`,
		},
		{
			name:     "declared empty env is kept",
			cfg:      RuntimeConfig{Command: "npx", Args: []string{}, Env: map[string]string{}},
			expected: `{"command":"npx","args":[],"env":{}}`,
		},
		{
			name:     "remote with extras",
			cfg:      RuntimeConfig{HTTPURL: "https://x", Timeout: 100, Trust: boolPtr(false)},
			expected: `{"httpUrl":"https://x","timeout":100,"trust":false}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tc.cfg)
			require.NoError(t, err)
			require.JSONEq(t, tc.expected, string(data))
		})
	}
}
