package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/cli"
)

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Show or change your income",
		Args:  cobra.NoArgs,
		RunE:  runShowIncome,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current income",
		Args:  cobra.NoArgs,
		RunE:  runShowIncome,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the income and redistribute it across categories",
		Long: `Set the income and immediately reset every category balance to its
share of the new income. Spending recorded since the last distribution
is no longer reflected in the balances.`,
		Args: cobra.ExactArgs(1),
		RunE: runSetIncome,
	})

	return cmd
}

func runShowIncome(cmd *cobra.Command, _ []string) error {
	e, closeEngine, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer closeEngine()

	printLine(cmd.OutOrStdout(), fmt.Sprintf("Income: %s", cli.FormatMoney(e.State().Income)))
	return nil
}

func runSetIncome(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, closeEngine, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine()

	income := budget.ParseAmount(args[0])
	if err := e.SetIncome(ctx, income); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printLine(out, cli.FormatSuccess(fmt.Sprintf("Income set to %s", cli.FormatMoney(income))))
	printLine(out, renderCategories(e.State().Categories))
	return nil
}

func distributeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distribute",
		Short: "Reset category balances from the current income",
		Long: `Recompute every category balance as its percentage share of the income.
Percentages are normalized when they do not add up to 100.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			if err := e.Distribute(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printLine(out, cli.FormatSuccess("Income distributed"))
			printLine(out, renderCategories(e.State().Categories))
			return nil
		},
	}
}
