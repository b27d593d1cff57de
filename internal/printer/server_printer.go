package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/mcpmarket/internal/cmd/output"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

var _ output.Printer[packages.Server] = (*ServerPrinter)(nil)

// ServerPrinter prints a compact entry for each server, as used by list style commands.
type ServerPrinter struct {
	headerFunc output.WriteFunc[packages.Server]
	footerFunc output.WriteFunc[packages.Server]
	opts       ServerPrinterOptions
}

// NewServerPrinter creates a ServerPrinter with no header or footer.
func NewServerPrinter(opt ...ServerPrinterOption) (*ServerPrinter, error) {
	opts, err := NewServerPrinterOptions(opt...)
	if err != nil {
		return nil, err
	}
	return &ServerPrinter{opts: opts}, nil
}

func (p *ServerPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *ServerPrinter) SetHeader(fn output.WriteFunc[packages.Server]) {
	p.headerFunc = fn
}

// Item prints a single server entry:
//
//	✓ github - GitHub
//	  Repository management, file operations...
//	  ⭐⭐⭐⭐⭐ (4.7) • 98.8K downloads
//	  Tags: git, github, code, issues, pull-requests
func (p *ServerPrinter) Item(w io.Writer, srv packages.Server) error {
	mark := " "
	if srv.Verified {
		mark = VerifiedStyle.Render("✓")
	}

	stat := fmt.Sprintf("%s downloads", FormatNumber(srv.Downloads))
	if p.opts.showCategory {
		stat = srv.Category
	}

	if _, err := fmt.Fprintf(w, "  %s %s - %s\n", mark, ID(srv.ID), NameStyle.Render(srv.Name)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "    %s\n", srv.Description)
	_, _ = fmt.Fprintf(w, "    %s %s\n", Stars(srv.Rating), Hint(fmt.Sprintf("(%s) • %s", FormatRating(srv.Rating), stat)))
	_, _ = fmt.Fprintf(w, "    %s\n", Hint("Tags: "+FirstTags(srv.Tags)))

	if p.opts.spaced {
		_, _ = fmt.Fprintln(w)
	}

	return nil
}

func (p *ServerPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *ServerPrinter) SetFooter(fn output.WriteFunc[packages.Server]) {
	p.footerFunc = fn
}

// TitleHeader returns a header func which prints a title.
func TitleHeader[T any](title string) output.WriteFunc[T] {
	return func(w io.Writer, _ int) {
		_, _ = fmt.Fprintf(w, "\n%s\n\n", Title(title))
	}
}

// SearchHeader returns a header func which prints the search query and, when there are matches, the match count.
func SearchHeader(query string) output.WriteFunc[packages.Server] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "\n%s\n\n", Title(fmt.Sprintf("🔍 Search Results for %q", query)))
		if count > 0 {
			_, _ = fmt.Fprintf(w, "Found %d server(s):\n\n", count)
		}
	}
}

// UsageHints writes the hints pointing users at info and install.
func UsageHints(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s %s %s\n", Hint("💡 Use"), Command(AppName+" info <id>"), Hint("for more details"))
	_, _ = fmt.Fprintf(w, "%s %s %s\n\n", Hint("💡 Use"), Command(AppName+" install <id>"), Hint("to install a server"))
}

// BrowseHint writes the hint pointing users at browse.
func BrowseHint(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\n%s %s %s\n\n", Hint("💡 Use"), Command(AppName+" browse"), Hint("to see all available servers"))
}

// UsageHintsFooter returns a footer func which prints UsageHints.
func UsageHintsFooter[T any]() output.WriteFunc[T] {
	return func(w io.Writer, _ int) {
		_, _ = fmt.Fprintln(w)
		UsageHints(w)
	}
}
