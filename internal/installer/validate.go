package installer

import (
	"os"

	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

// EnvLookup returns the value of an environment variable and whether it is set.
type EnvLookup func(name string) (string, bool)

// OSEnvLookup reads from the process environment.
func OSEnvLookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Validation is the outcome of Validate.
type Validation struct {
	Valid bool

	// Missing lists required arguments first, then environment variables, each in declaration order.
	Missing []string
}

// Validate reports which of the server's required arguments and environment variables have no value.
// Environment variables may be satisfied by the inputs or by lookup. Empty values count as missing.
func Validate(server packages.Server, inputs Inputs, lookup EnvLookup) Validation {
	missing := []string{}

	for _, arg := range server.Installation.RequiredArgs {
		if inputs.Args[arg] == "" {
			missing = append(missing, arg)
		}
	}

	for _, name := range server.Installation.EnvVars {
		if inputs.EnvVars[name] != "" {
			continue
		}
		if lookup != nil {
			if v, ok := lookup(name); ok && v != "" {
				continue
			}
		}
		missing = append(missing, name)
	}

	return Validation{
		Valid:   len(missing) == 0,
		Missing: missing,
	}
}
