package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lootgrid/pkg/catalog"
	"github.com/matzehuels/lootgrid/pkg/errors"
	"github.com/matzehuels/lootgrid/pkg/loot"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// catalogCommand groups catalog inspection subcommands. Without a
// subcommand it lists containers.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect containers and items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalogFromConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Println(containerTable(cat))
			return nil
		},
	}

	cmd.AddCommand(c.catalogItemsCommand())
	cmd.AddCommand(c.catalogValidateCommand())
	return cmd
}

// catalogItemsCommand lists the items a container can drop with their odds.
func (c *CLI) catalogItemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "items <container>",
		Short:             "List the items a container can drop",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeContainers,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.catalogFromConfig(cmd)
			if err != nil {
				return err
			}
			ct, ok := cat.Container(args[0])
			if !ok {
				return errors.New(errors.ErrCodeUnknownContainer, "unknown container %q", args[0])
			}
			fmt.Println(itemTable(ct, loot.Allowed(ct, cat.Items())))
			return nil
		},
	}
}

// catalogValidateCommand reports catalog problems.
func (c *CLI) catalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.ResourceDir, cfg.CatalogOptions(loggerFromContext(cmd.Context())))
			if err != nil {
				return err
			}
			problems, verr := cat.Validate()
			for _, p := range problems {
				printWarning("%s", p.String())
			}
			if verr != nil {
				printError("%s", errors.UserMessage(verr))
				return verr
			}
			printSuccess("%d containers, %d items, %d warnings", cat.ContainerCount(), cat.ItemCount(), len(problems))
			return nil
		},
	}
}

func (c *CLI) catalogFromConfig(cmd *cobra.Command) (*catalog.Catalog, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return loadCatalog(cfg, loggerFromContext(cmd.Context()))
}

// containerTable renders one row per container.
func containerTable(cat *catalog.Catalog) string {
	rows := make([][]string, 0, cat.ContainerCount())
	for _, key := range cat.Keys() {
		ct, _ := cat.Container(key)
		lo, hi := ct.ItemRange()
		rows = append(rows, []string{
			key,
			ct.DisplayName(),
			fmt.Sprintf("%d×%d", ct.GridSize, ct.GridSize),
			fmt.Sprintf("%d–%d", lo, hi),
			strconv.Itoa(len(loot.Allowed(ct, cat.Items()))),
			strings.Join(ct.AllowTypes, ", "),
		})
	}
	return newTable("Key", "Name", "Grid", "Items", "Pool", "Types").Rows(rows...).Render()
}

// itemTable renders the allowed items of ct with their per-draw odds.
func itemTable(ct catalog.Container, items []catalog.Item) string {
	total := 0
	for _, it := range items {
		total += max(ct.Weight(it.Grade), 0)
	}

	rows := make([][]string, 0, len(items))
	grades := make([]int, 0, len(items))
	for _, it := range items {
		w := max(ct.Weight(it.Grade), 0)
		odds := "—"
		if total > 0 && w > 0 {
			odds = fmt.Sprintf("%.1f%%", 100*float64(w)/float64(total))
		}
		rows = append(rows, []string{
			strconv.Itoa(it.ID),
			it.Name,
			strconv.Itoa(it.Grade),
			fmt.Sprintf("%d×%d", it.Width, it.Length),
			it.SecondClass,
			odds,
		})
		grades = append(grades, it.Grade)
	}

	return newTable("ID", "Name", "Grade", "Size", "Type", "First draw").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if col == 1 && row >= 0 && row < len(grades) {
				return gradeStyle(grades[row])
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle()
		})
}
