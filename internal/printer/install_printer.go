package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

// Summary describes a pending installation for confirmation.
type Summary struct {
	ServerName string
	Scope      string

	// Command and Args are only shown when Command is set.
	Command string
	Args    []string

	Trust bool
}

// InstallHeader writes the banner shown when an installation starts.
func InstallHeader(w io.Writer, srv packages.Server) {
	_, _ = fmt.Fprintf(w, "\n%s\n\n", Title("Installing: "+srv.Name))
	_, _ = fmt.Fprintf(w, "%s\n\n", srv.Description)
}

// SectionHeading writes a bold heading followed by a blank line.
func SectionHeading(w io.Writer, heading string) {
	_, _ = fmt.Fprintf(w, "%s\n\n", Section(heading))
}

// FoundValue writes a line noting a value was not prompted for, along with where it was found.
func FoundValue(w io.Writer, name string, source string) {
	_, _ = fmt.Fprintf(w, "  %s %s (%s)\n", Success("✓"), name, source)
}

// PrintSummary writes the configuration summary shown before confirmation.
func PrintSummary(w io.Writer, s Summary) {
	SectionHeading(w, "Configuration Summary:")
	_, _ = fmt.Fprintf(w, "  %s %s\n", Command("Server:"), s.ServerName)
	_, _ = fmt.Fprintf(w, "  %s %s\n", Command("Scope:"), s.Scope)
	if s.Command != "" {
		_, _ = fmt.Fprintf(w, "  %s %s\n", Command("Command:"), strings.TrimSpace(s.Command+" "+strings.Join(s.Args, " ")))
	}
	if s.Trust {
		_, _ = fmt.Fprintf(w, "  %s All tool calls will be auto-approved\n", Warning("⚠ Trust:"))
	}
	_, _ = fmt.Fprintln(w)
}

// Cancelled writes the message shown when the user abandons an installation.
func Cancelled(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n%s\n\n", Error("Installation cancelled."))
}

// Installed writes the message shown after a successful installation.
func Installed(w io.Writer, srv packages.Server, settingsPath string) {
	_, _ = fmt.Fprintf(w, "\n%s\n", Success(fmt.Sprintf("✓ Successfully installed %s!", srv.Name)))
	_, _ = fmt.Fprintf(w, "%s\n\n", Hint(fmt.Sprintf("Saved to %s. The server will be available the next time the host starts.", settingsPath)))
}

// MissingConfiguration writes the list of values an installation could not find.
func MissingConfiguration(w io.Writer, missing []string) {
	_, _ = fmt.Fprintln(w, Error("Missing required configuration:"))
	for _, m := range missing {
		_, _ = fmt.Fprintf(w, "  • %s\n", m)
	}
	_, _ = fmt.Fprintln(w)
}
