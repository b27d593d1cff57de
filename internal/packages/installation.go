package packages

import (
	"regexp"
	"slices"
)

const (
	InstallationNPX    InstallationType = "npx"
	InstallationNPM    InstallationType = "npm"
	InstallationCustom InstallationType = "custom"
)

// InstallationType describes how the server's command is provisioned on the host.
type InstallationType string

// placeholderRegex matches an argument that consists solely of a placeholder token, e.g. '{apiKey}'.
var placeholderRegex = regexp.MustCompile(`^\{(\w+)\}$`)

// Installation describes how the host should launch a server.
type Installation struct {
	// Type is the provisioning mechanism (npx, npm or custom).
	Type InstallationType `json:"type" yaml:"type"`

	// Command is the executable to be launched, e.g. 'npx'.
	Command string `json:"command" yaml:"command"`

	// Args are passed to Command in order and may contain placeholder tokens of the form '{name}'.
	Args []string `json:"args" yaml:"args"`

	// RequiredArgs names the placeholders that must be supplied before installing.
	// A nil slice means the server declares none.
	RequiredArgs []string `json:"requiredArgs,omitempty" yaml:"requiredArgs,omitempty"`

	// EnvVars names the environment variables required to run the server.
	// A nil slice means the server declares none, an empty slice is still a declaration.
	EnvVars []string `json:"envVars,omitempty" yaml:"envVars,omitempty"`
}

// PlaceholderName returns the placeholder name when arg is exactly a '{name}' token.
func PlaceholderName(arg string) (string, bool) {
	m := placeholderRegex.FindStringSubmatch(arg)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Placeholders returns the placeholder names referenced by the installation arguments, in argument order.
func (i Installation) Placeholders() []string {
	var names []string
	for _, arg := range i.Args {
		if name, ok := PlaceholderName(arg); ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// DeclaresEnvVars reports whether the installation declares environment variables, even an empty set.
func (i Installation) DeclaresEnvVars() bool {
	return i.EnvVars != nil
}

// Clone returns a deep copy of the installation.
func (i Installation) Clone() Installation {
	return Installation{
		Type:         i.Type,
		Command:      i.Command,
		Args:         slices.Clone(i.Args),
		RequiredArgs: slices.Clone(i.RequiredArgs),
		EnvVars:      slices.Clone(i.EnvVars),
	}
}
