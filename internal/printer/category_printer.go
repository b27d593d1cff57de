package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mozilla-ai/mcpmarket/internal/cmd/output"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

var (
	_ output.Printer[CategoryGroup]     = (*CategoryGroupPrinter)(nil)
	_ output.Printer[packages.Category] = (*CategoryPrinter)(nil)
)

// CategoryGroup is a category together with the servers listed under it.
type CategoryGroup struct {
	Category packages.Category `json:"category" yaml:"category"`
	Servers  packages.Servers  `json:"servers" yaml:"servers"`
}

// GroupByCategory groups servers under each category, in category order.
// Categories without servers are omitted, as are servers whose category is not listed.
func GroupByCategory(categories packages.Categories, servers packages.Servers) []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(categories))
	for _, cat := range categories {
		var members packages.Servers
		for _, srv := range servers {
			if srv.Category == cat.ID {
				members = append(members, srv)
			}
		}
		if len(members) > 0 {
			groups = append(groups, CategoryGroup{Category: cat, Servers: members})
		}
	}
	return groups
}

// CategoryGroupPrinter prints each group's heading followed by its servers.
type CategoryGroupPrinter struct {
	headerFunc output.WriteFunc[CategoryGroup]
	footerFunc output.WriteFunc[CategoryGroup]
	servers    output.Printer[packages.Server]
}

// NewCategoryGroupPrinter creates a CategoryGroupPrinter which prints servers using prn.
func NewCategoryGroupPrinter(prn output.Printer[packages.Server]) *CategoryGroupPrinter {
	return &CategoryGroupPrinter{servers: prn}
}

func (p *CategoryGroupPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *CategoryGroupPrinter) SetHeader(fn output.WriteFunc[CategoryGroup]) {
	p.headerFunc = fn
}

func (p *CategoryGroupPrinter) Item(w io.Writer, group CategoryGroup) error {
	label := packages.Categories{group.Category}.Label(group.Category.ID)
	if _, err := fmt.Fprintln(w, Section(label)); err != nil {
		return err
	}

	for _, srv := range group.Servers {
		if err := p.servers.Item(w, srv); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(w)
	return nil
}

func (p *CategoryGroupPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *CategoryGroupPrinter) SetFooter(fn output.WriteFunc[CategoryGroup]) {
	p.footerFunc = fn
}

// CategoryIndex writes the one-line list of category IDs shown after browse results.
func CategoryIndex(w io.Writer, categories packages.Categories) {
	if len(categories) == 0 {
		return
	}

	entries := make([]string, len(categories))
	for i, c := range categories {
		icon := c.Icon
		if icon == "" {
			icon = packages.DefaultCategoryIcon
		}
		entries[i] = fmt.Sprintf("%s %s", icon, c.ID)
	}

	_, _ = fmt.Fprintln(w, Section("Categories:"))
	_, _ = fmt.Fprintf(w, "%s\n\n", Hint(strings.Join(entries, ", ")))
}

// CategoryPrinter prints one line per category.
type CategoryPrinter struct {
	headerFunc output.WriteFunc[packages.Category]
	footerFunc output.WriteFunc[packages.Category]
	counts     map[string]int
}

// NewCategoryPrinter creates a CategoryPrinter.
// When counts is supplied, the number of servers in each category is printed.
func NewCategoryPrinter(counts map[string]int) *CategoryPrinter {
	return &CategoryPrinter{
		headerFunc: func(w io.Writer, _ int) {
			_, _ = fmt.Fprintf(w, "\n%s\n\n", Title("📂 Marketplace Categories"))
		},
		footerFunc: func(w io.Writer, _ int) {
			_, _ = fmt.Fprintf(w, "\n%s %s\n\n", Hint("💡 Use"), Command(AppName+" browse --category <id>"))
		},
		counts: counts,
	}
}

func (p *CategoryPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
	}
}

func (p *CategoryPrinter) SetHeader(fn output.WriteFunc[packages.Category]) {
	p.headerFunc = fn
}

func (p *CategoryPrinter) Item(w io.Writer, cat packages.Category) error {
	label := packages.Categories{cat}.Label(cat.ID)
	line := fmt.Sprintf("  %s %s", label, Hint("("+cat.ID+")"))
	if p.counts != nil {
		line += Hint(fmt.Sprintf(" • %d server(s)", p.counts[cat.ID]))
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func (p *CategoryPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *CategoryPrinter) SetFooter(fn output.WriteFunc[packages.Category]) {
	p.footerFunc = fn
}
