package printer

import (
	"fmt"
	"strings"

	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

// InstallationInstructions renders markdown describing how to install srv.
func InstallationInstructions(srv packages.Server) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", srv.Name)
	fmt.Fprintf(&b, "%s\n\n", srv.Description)

	if len(srv.Installation.RequiredArgs) > 0 {
		b.WriteString("**Required Arguments:**\n")
		for _, arg := range srv.Installation.RequiredArgs {
			fmt.Fprintf(&b, "  - %s\n", arg)
		}
		b.WriteString("\n")
	}

	if len(srv.Installation.EnvVars) > 0 {
		b.WriteString("**Required Environment Variables:**\n")
		for _, env := range srv.Installation.EnvVars {
			fmt.Fprintf(&b, "  - %s\n", env)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Installation Command:**\n")
	fmt.Fprintf(&b, "%s [--scope user|project] [--trust]\n\n", InstallCommandLine(srv.ID))

	if len(srv.Tools) > 0 {
		b.WriteString("**Available Tools:**\n")
		for _, tool := range srv.Tools {
			fmt.Fprintf(&b, "  - %s\n", tool)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**Documentation:** %s\n", srv.Documentation)
	fmt.Fprintf(&b, "**Repository:** %s", srv.Repository)

	return b.String()
}
