package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mozilla-ai/mcpmarket/internal/cmd/output"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

var _ output.Printer[packages.Server] = (*DetailsPrinter)(nil)

// DetailsPrinter prints everything known about a server.
type DetailsPrinter struct {
	headerFunc output.WriteFunc[packages.Server]
	footerFunc output.WriteFunc[packages.Server]
	categories packages.Categories
}

// NewDetailsPrinter creates a DetailsPrinter, categories are used to label the server's category.
func NewDetailsPrinter(categories packages.Categories) *DetailsPrinter {
	return &DetailsPrinter{categories: categories}
}

func (p *DetailsPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *DetailsPrinter) SetHeader(fn output.WriteFunc[packages.Server]) {
	p.headerFunc = fn
}

func (p *DetailsPrinter) Item(w io.Writer, srv packages.Server) error {
	verified := ""
	if srv.Verified {
		verified = " " + VerifiedStyle.Render("✓ Verified")
	}

	if _, err := fmt.Fprintf(w, "\n%s%s\n\n", Title(srv.Name), verified); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s\n\n", srv.Description)

	_, _ = fmt.Fprintln(w, Section("Details:"))
	field(w, "ID", srv.ID)
	field(w, "Author", srv.Author)
	field(w, "Category", p.categories.Label(srv.Category))
	field(w, "Rating", fmt.Sprintf("%s (%s/5.0)", Stars(srv.Rating), FormatRating(srv.Rating)))
	field(w, "Downloads", FormatCount(srv.Downloads))
	field(w, "Transport", srv.Transport.String())
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, Section("Tags:"))
	_, _ = fmt.Fprintf(w, "  %s\n\n", strings.Join(srv.Tags, ", "))

	if len(srv.Tools) > 0 {
		bullets(w, fmt.Sprintf("Available Tools (%d):", len(srv.Tools)), srv.Tools)
	}
	if len(srv.Installation.RequiredArgs) > 0 {
		bullets(w, "Required Arguments:", srv.Installation.RequiredArgs)
	}
	if len(srv.Installation.EnvVars) > 0 {
		bullets(w, "Required Environment Variables:", srv.Installation.EnvVars)
	}

	_, _ = fmt.Fprintln(w, Section("Installation:"))
	_, _ = fmt.Fprintf(w, "  %s\n\n", Command(InstallCommandLine(srv.ID)))

	_, _ = fmt.Fprintln(w, Section("Resources:"))
	field(w, "Repository", srv.Repository)
	field(w, "Documentation", srv.Documentation)
	_, _ = fmt.Fprintln(w)

	return nil
}

func (p *DetailsPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *DetailsPrinter) SetFooter(fn output.WriteFunc[packages.Server]) {
	p.footerFunc = fn
}

// InstallCommandLine is the command used to install the server with the given ID.
func InstallCommandLine(id string) string {
	return fmt.Sprintf("%s install %s", AppName, id)
}

func field(w io.Writer, label string, value string) {
	_, _ = fmt.Fprintf(w, "  %s %s\n", Label(label+":"), value)
}

func bullets(w io.Writer, heading string, items []string) {
	_, _ = fmt.Fprintln(w, Section(heading))
	for _, it := range items {
		_, _ = fmt.Fprintf(w, "  • %s\n", it)
	}
	_, _ = fmt.Fprintln(w)
}
