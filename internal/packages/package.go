package packages

import "slices"

// Server represents an immutable catalog entry describing an installable MCP server.
type Server struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Description   string       `json:"description" yaml:"description"`
	Author        string       `json:"author" yaml:"author"`
	Category      string       `json:"category" yaml:"category"`
	Tags          []string     `json:"tags" yaml:"tags"`
	Repository    string       `json:"repository" yaml:"repository"`
	Documentation string       `json:"documentation" yaml:"documentation"`
	Transport     Transport    `json:"transport" yaml:"transport"`
	Installation  Installation `json:"installation" yaml:"installation"`
	Tools         []string     `json:"tools" yaml:"tools"`

	// Verified is the curator's trust flag, unrelated to the user-granted trust on install.
	Verified  bool    `json:"verified" yaml:"verified"`
	Downloads int64   `json:"downloads" yaml:"downloads"`
	Rating    float64 `json:"rating" yaml:"rating"`
}

// Clone returns a deep copy of the server so callers cannot mutate catalog state.
func (s Server) Clone() Server {
	c := s
	c.Tags = slices.Clone(s.Tags)
	c.Tools = slices.Clone(s.Tools)
	c.Installation = s.Installation.Clone()
	return c
}

// Servers is a wrapper for a collection of Server entries.
type Servers []Server

// Clone returns a deep copy of every server in the collection.
func (s Servers) Clone() Servers {
	if s == nil {
		return Servers{}
	}
	out := make(Servers, len(s))
	for i, srv := range s {
		out[i] = srv.Clone()
	}
	return out
}

// IDs returns the server IDs in collection order.
func (s Servers) IDs() []string {
	ids := make([]string, len(s))
	for i, srv := range s {
		ids[i] = srv.ID
	}
	return ids
}
