package packages

import (
	"fmt"
	"strings"
)

const (
	// TransportStdio represents standard input/output transport.
	// The host launches the server's command and speaks MCP over its stdin/stdout.
	TransportStdio Transport = "stdio"

	// TransportSSE represents SSE transport, where the host connects to a URL.
	TransportSSE Transport = "sse"

	// TransportHTTP represents streamable-HTTP transport, where the host connects to an HTTP URL.
	TransportHTTP Transport = "http"
)

// Transport represents the communication mechanism a running MCP server uses with the host.
type Transport string

type Transports []Transport

// String implements fmt.Stringer.
func (t Transport) String() string {
	return string(t)
}

// AllTransports returns all supported transport types.
func AllTransports() Transports {
	return Transports{
		TransportStdio,
		TransportSSE,
		TransportHTTP,
	}
}

// ParseTransport converts a string into a Transport, rejecting unknown values.
func ParseTransport(s string) (Transport, error) {
	v := Transport(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range AllTransports() {
		if t == v {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown transport '%s', must be one of: %s", s, AllTransports().String())
}

// ToStrings converts a slice of Transport to a slice of strings.
func (t Transports) ToStrings() []string {
	result := make([]string, len(t))
	for i, transport := range t {
		result[i] = string(transport)
	}
	return result
}

// String implements fmt.Stringer for a collection of transports,
// converting them to a comma separated string.
func (t Transports) String() string {
	return strings.Join(t.ToStrings(), ", ")
}
