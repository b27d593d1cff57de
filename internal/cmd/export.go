package cmd

import (
	"fmt"
	"slices"
	"strings"
)

// ExportFormat represents an enum for the supported formats a server's runtime configuration can be exported in.
type ExportFormat string

// ExportFormats is a wrapper which allows 'helper' receivers to be declared,
// such as String().
type ExportFormats []ExportFormat

const (
	// ExportFormatDotEnv exports the server's environment variables as a dotenv (.env) file.
	ExportFormatDotEnv ExportFormat = "dotenv"

	// ExportFormatJSON exports an 'mcpServers' settings snippet as JSON.
	ExportFormatJSON ExportFormat = "json"

	// ExportFormatTOML exports an 'mcpServers' settings snippet as TOML.
	ExportFormatTOML ExportFormat = "toml"

	// ExportFormatYAML exports an 'mcpServers' settings snippet as YAML.
	ExportFormatYAML ExportFormat = "yaml"
)

// AllowedExportFormats returns the allowed formats for the export command.
func AllowedExportFormats() ExportFormats {
	formats := ExportFormats{
		ExportFormatJSON,
		ExportFormatDotEnv,
		ExportFormatYAML,
		ExportFormatTOML,
	}

	slices.Sort(formats)

	return formats
}

// String implements fmt.Stringer for a collection of export formats,
// converting them to a comma separated string.
func (f *ExportFormats) String() string {
	efs := *f
	out := make([]string, len(efs))
	for i := range efs {
		out[i] = efs[i].String()
	}
	return strings.Join(out, ", ")
}

// String implements fmt.Stringer for an export format.
// This is also required by Cobra as part of implementing flag.Value.
func (f *ExportFormat) String() string {
	return strings.ToLower(string(*f))
}

// Set is used by Cobra to set the export format value from a string.
// This is also required by Cobra as part of implementing flag.Value.
func (f *ExportFormat) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	allowed := AllowedExportFormats()

	for _, a := range allowed {
		if string(a) == v {
			*f = ExportFormat(v)
			return nil
		}
	}

	return fmt.Errorf("invalid format '%s', must be one of %v", v, allowed.String())
}

// Type is used by Cobra to get the 'type' of an export format for display purposes.
// This is also required by Cobra as part of implementing flag.Value.
func (f *ExportFormat) Type() string {
	return "format"
}

// FileName returns a settings file name whose extension selects this format's settings codec.
// The dotenv format has no settings codec and returns an empty string.
func (f *ExportFormat) FileName() string {
	switch *f {
	case ExportFormatJSON, ExportFormatTOML, ExportFormatYAML:
		return "settings." + f.String()
	default:
		return ""
	}
}
