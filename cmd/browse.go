package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	"github.com/mozilla-ai/mcpmarket/internal/cmd/output"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
	"github.com/mozilla-ai/mcpmarket/internal/printer"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

// DefaultBrowseLimit is the number of servers shown by 'browse --popular' and 'browse --top-rated'.
const DefaultBrowseLimit = 20

const browseEmptyMessage = "No servers found matching your criteria."

type BrowseCmd struct {
	*cmd.BaseCmd
	Category        string
	Verified        bool
	Popular         bool
	TopRated        bool
	Limit           int
	Format          cmd.OutputFormat
	registryBuilder registry.Builder
}

// browseView is what a browse invocation displays.
type browseView struct {
	title   string
	servers packages.Servers

	// grouped views print servers under their category headings.
	grouped bool
}

func NewBrowseCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &BrowseCmd{
		BaseCmd:         baseCmd,
		Format:          cmd.FormatText,
		registryBuilder: opts.RegistryBuilder,
	}

	cobraCmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse available MCP servers in the marketplace",
		Long:  c.longDescription(),
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	cobraCmd.Flags().StringVarP(&c.Category, "category", "c", "", "Filter by category ID")
	cobraCmd.Flags().BoolVarP(&c.Verified, "verified", "v", false, "Show only verified servers")
	cobraCmd.Flags().BoolVarP(&c.Popular, "popular", "p", false, "Show the most downloaded servers")
	cobraCmd.Flags().BoolVarP(&c.TopRated, "top-rated", "t", false, "Show the highest rated servers")
	cobraCmd.Flags().IntVar(
		&c.Limit,
		"limit",
		DefaultBrowseLimit,
		"Number of servers shown with --popular or --top-rated",
	)
	cobraCmd.Flags().Var(&c.Format, "format", formatFlagUsage())

	return cobraCmd, nil
}

func (c *BrowseCmd) longDescription() string {
	return `Browse the MCP servers available in the marketplace.

Only one view is shown. When more than one flag is supplied, --popular takes
precedence over --top-rated, then --verified, then --category.`
}

// categoryTitle is the browse title for a single category, unknown categories use their ID.
func categoryTitle(categories packages.Categories, id string) string {
	return categories.Label(id) + " Servers"
}

// browseFooter prints the usage hints, followed by the category index when withIndex is set.
func browseFooter[T any](categories packages.Categories, withIndex bool) output.WriteFunc[T] {
	hints := printer.UsageHintsFooter[T]()
	return func(w io.Writer, count int) {
		hints(w, count)
		if withIndex {
			printer.CategoryIndex(w, categories)
		}
	}
}

// view selects the servers and title to show based on the command's flags.
func (c *BrowseCmd) view(reg *registry.Registry) (browseView, error) {
	switch {
	case c.Popular:
		if c.Limit <= 0 {
			return browseView{}, fmt.Errorf("limit must be greater than zero")
		}
		return browseView{title: "🔥 Popular MCP Servers", servers: reg.ListPopular(c.Limit)}, nil
	case c.TopRated:
		if c.Limit <= 0 {
			return browseView{}, fmt.Errorf("limit must be greater than zero")
		}
		return browseView{title: "⭐ Top Rated MCP Servers", servers: reg.ListTopRated(c.Limit)}, nil
	case c.Verified:
		return browseView{title: "✓ Verified MCP Servers", servers: reg.ListVerified(), grouped: true}, nil
	case c.Category != "":
		title := categoryTitle(reg.ListCategories(), c.Category)
		return browseView{title: title, servers: reg.ListByCategory(c.Category)}, nil
	default:
		return browseView{title: "📦 MCP Marketplace", servers: reg.ListAll(), grouped: true}, nil
	}
}

func (c *BrowseCmd) run(cobraCmd *cobra.Command, _ []string) error {
	reg, err := c.registryBuilder.Build()
	if err != nil {
		return err
	}

	v, err := c.view(reg)
	if err != nil {
		return err
	}

	serverPrinter, err := printer.NewServerPrinter()
	if err != nil {
		return err
	}

	categories := reg.ListCategories()
	out := cobraCmd.OutOrStdout()

	// Structured formats always get a flat list of servers.
	if v.grouped && (c.Format == cmd.FormatText || c.Format == "") {
		groupPrinter := printer.NewCategoryGroupPrinter(serverPrinter)
		groupPrinter.SetHeader(printer.TitleHeader[printer.CategoryGroup](v.title))
		groupPrinter.SetFooter(browseFooter[printer.CategoryGroup](categories, c.Category == ""))
		groups := printer.GroupByCategory(categories, v.servers)
		return handleResults[printer.CategoryGroup](out, c.Format, groupPrinter, browseEmptyMessage, groups...)
	}

	serverPrinter.SetHeader(printer.TitleHeader[packages.Server](v.title))
	serverPrinter.SetFooter(browseFooter[packages.Server](categories, c.Category == ""))
	return handleResults[packages.Server](out, c.Format, serverPrinter, browseEmptyMessage, v.servers...)
}
