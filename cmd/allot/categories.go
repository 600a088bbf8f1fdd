package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/cli"
	"github.com/Veraticus/allot/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage budget categories",
		Long: `List, add, update, and delete budget categories. Categories can be
referred to by ID or by name.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, closeEngine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeEngine()

			state := e.State()
			out := cmd.OutOrStdout()

			if len(state.Categories) == 0 {
				printLine(out, cli.InfoStyle.Render("No categories found. Use 'allot categories add' to create one."))
				return nil
			}

			printLine(out, renderCategories(state.Categories))

			total := budget.TotalPercent(state.Categories)
			if math.Abs(total-100) > 1e-9 {
				printLine(out, cli.FormatWarning(fmt.Sprintf("Percentages add up to %s; balances are scaled to fit.", cli.FormatPercent(total))))
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Create a new category with 0% and an empty balance.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			cat, err := e.AddCategory(ctx, args[0])
			if err != nil {
				return err
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %q (%s)", cat.Name, cat.ID)))
			return nil
		},
	}
}

func updateCategoryCmd() *cobra.Command {
	var (
		name    string
		percent string
	)

	cmd := &cobra.Command{
		Use:   "update <category>",
		Short: "Rename a category or change its percentage",
		Long: `Change the name and/or percentage of a category. Balances keep their
current values until the next 'allot distribute'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update budget.CategoryUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("percent") {
				p := budget.ParsePercent(percent)
				update.Percent = &p
			}
			if update.Name == nil && update.Percent == nil {
				return fmt.Errorf("nothing to update: pass --name and/or --percent")
			}

			ctx := cmd.Context()
			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			cat, err := e.UpdateCategory(ctx, args[0], update)
			if err != nil {
				return err
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated %q: %s, balance %s",
				cat.Name, cli.FormatPercent(cat.Percent), cli.FormatMoney(cat.Balance))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new category name")
	cmd.Flags().StringVar(&percent, "percent", "", "new percentage of income, e.g. 25 or 12.5%")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete a category",
		Long: `Delete a category. Transactions recorded against it are kept and are
shown with an unknown category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			cat, err := e.ResolveCategory(args[0])
			if err != nil {
				return err
			}

			if !force {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := prompter.Confirm(ctx, fmt.Sprintf("Delete category %q with balance %s?", cat.Name, cli.FormatMoney(cat.Balance)))
				if err != nil {
					return err
				}
				if !ok {
					printLine(cmd.OutOrStdout(), cli.FormatInfo("Kept category"))
					return nil
				}
			}

			if _, err := e.DeleteCategory(ctx, cat.ID); err != nil {
				return err
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted category %q", cat.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking for confirmation")

	return cmd
}

func renderCategories(categories []model.Category) string {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c.ID, c.Name, cli.FormatPercent(c.Percent), cli.FormatMoney(c.Balance)})
	}
	return cli.RenderTable([]string{"ID", "Name", "Percent", "Balance"}, rows)
}
