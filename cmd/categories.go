package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
	"github.com/mozilla-ai/mcpmarket/internal/printer"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

type CategoriesCmd struct {
	*cmd.BaseCmd
	Format          cmd.OutputFormat
	registryBuilder registry.Builder
}

func NewCategoriesCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &CategoriesCmd{
		BaseCmd:         baseCmd,
		Format:          cmd.FormatText,
		registryBuilder: opts.RegistryBuilder,
	}

	cobraCmd := &cobra.Command{
		Use:   "categories",
		Short: "List marketplace categories",
		Long:  "List the categories in the marketplace, with the number of servers in each.",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	cobraCmd.Flags().Var(&c.Format, "format", formatFlagUsage())

	return cobraCmd, nil
}

func (c *CategoriesCmd) run(cobraCmd *cobra.Command, _ []string) error {
	reg, err := c.registryBuilder.Build()
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, srv := range reg.ListAll() {
		counts[srv.Category]++
	}

	return handleResults[packages.Category](
		cobraCmd.OutOrStdout(),
		c.Format,
		printer.NewCategoryPrinter(counts),
		"No categories found.",
		reg.ListCategories()...,
	)
}
