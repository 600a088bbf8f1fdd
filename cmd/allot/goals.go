package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/cli"
	"github.com/Veraticus/allot/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
	}

	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(createGoalCmd())

	return cmd
}

func listGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, closeEngine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeEngine()

			printLine(cmd.OutOrStdout(), renderGoals(e.State().Goals))
			return nil
		},
	}
}

func createGoalCmd() *cobra.Command {
	var (
		target string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a savings goal",
		Long: `Create a savings goal. With --from, as much of the target as the
category holds is moved from the category balance into the goal.
Goals are only funded when they are created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			fromID, err := resolveCategoryFlag(e, from)
			if err != nil {
				return err
			}

			goal, err := e.CreateGoal(ctx, budget.GoalRequest{
				Name:           args[0],
				FromCategoryID: fromID,
				TargetAmount:   budget.ParseAmount(target),
			})
			if err != nil {
				return err
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created goal %q: saved %s of %s",
				goal.Name, cli.FormatMoney(goal.Saved), cli.FormatMoney(goal.TargetAmount))))
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "amount to save")
	cmd.Flags().StringVar(&from, "from", "", "category ID or name to fund the goal from")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func renderGoals(goals []model.Goal) string {
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			g.Name,
			cli.FormatMoney(g.Saved),
			cli.FormatMoney(g.TargetAmount),
			cli.FormatMoney(g.Remaining()),
			fmt.Sprintf("%.0f%%", math.Floor(budget.GoalProgress(g)*100)),
		})
	}
	return cli.RenderTable([]string{"Goal", "Saved", "Target", "Remaining", "Progress"}, rows)
}
