package installer

import (
	"maps"

	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

const (
	// ArgKeyURL is the input argument used as the endpoint for servers using the SSE transport.
	ArgKeyURL = "url"

	// ArgKeyHTTPURL is the input argument used as the endpoint for servers using the HTTP transport.
	ArgKeyHTTPURL = "httpUrl"
)

// RuntimeConfig is the launch/connection configuration for an installed server,
// in the shape the host application expects under 'mcpServers'.
type RuntimeConfig struct {
	Command string            `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
	Args    []string          `json:"args,omitzero" yaml:"args,omitempty" toml:"args,omitempty"`
	Env     map[string]string `json:"env,omitzero" yaml:"env,omitempty" toml:"env,omitempty"`
	URL     string            `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`
	HTTPURL string            `json:"httpUrl,omitempty" yaml:"httpUrl,omitempty" toml:"httpUrl,omitempty"`

	// Timeout is the connection timeout in milliseconds.
	Timeout int `json:"timeout,omitempty" yaml:"timeout,omitempty" toml:"timeout,omitzero"`

	// Trust bypasses tool call confirmation in the host when true. An explicit false is kept.
	Trust *bool `json:"trust,omitempty" yaml:"trust,omitempty" toml:"trust,omitempty"`
}

// Inputs are the values collected for an install.
type Inputs struct {
	Args    map[string]string
	EnvVars map[string]string
}

// Extras are optional host settings applied to every RuntimeConfig regardless of transport.
type Extras struct {
	// Timeout in milliseconds, zero or less means unset.
	Timeout int

	// Trust is applied when non-nil.
	Trust *bool
}

// Synthesize builds the RuntimeConfig for server from the collected inputs.
// Argument placeholders of the exact form '{name}' are replaced by non-empty input values,
// unresolved placeholders are left as-is.
func Synthesize(server packages.Server, inputs Inputs, extras Extras) RuntimeConfig {
	var cfg RuntimeConfig

	switch server.Transport {
	case packages.TransportStdio:
		cfg.Command = server.Installation.Command
		cfg.Args = substitute(server.Installation.Args, inputs.Args)
		if server.Installation.DeclaresEnvVars() || len(inputs.EnvVars) > 0 {
			cfg.Env = maps.Clone(inputs.EnvVars)
			if cfg.Env == nil {
				cfg.Env = map[string]string{}
			}
		}
	case packages.TransportSSE:
		cfg.URL = inputs.Args[ArgKeyURL]
	case packages.TransportHTTP:
		cfg.HTTPURL = inputs.Args[ArgKeyHTTPURL]
	}

	if extras.Timeout > 0 {
		cfg.Timeout = extras.Timeout
	}

	if extras.Trust != nil {
		trust := *extras.Trust
		cfg.Trust = &trust
	}

	return cfg
}

func substitute(args []string, values map[string]string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if name, ok := packages.PlaceholderName(arg); ok {
			if v := values[name]; v != "" {
				out = append(out, v)
				continue
			}
		}
		out = append(out, arg)
	}
	return out
}
