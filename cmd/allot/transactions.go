package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/cli"
	"github.com/Veraticus/allot/internal/common"
	"github.com/Veraticus/allot/internal/config"
	"github.com/Veraticus/allot/internal/engine"
	"github.com/Veraticus/allot/internal/model"
	"github.com/Veraticus/allot/internal/ofx"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txn", "tx"},
		Short:   "Record and review transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, closeEngine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeEngine()

			state := e.State()
			txns := state.Transactions
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}

			printLine(cmd.OutOrStdout(), renderTransactions(state.Categories, txns))
			if len(txns) < len(state.Transactions) {
				printLine(cmd.OutOrStdout(), cli.SubtleStyle.Render(
					fmt.Sprintf("showing %d of %d", len(txns), len(state.Transactions))))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of transactions to show (0 for all)")

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		amount   string
		typ      string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Record a transaction",
		Long: `Record an expense or income. The amount is always entered as a positive
number; --type decides whether it is taken from or added to the category.
An expense larger than the category balance empties the category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txnType, err := parseTransactionType(typ)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			categoryID, err := resolveCategoryFlag(e, category)
			if err != nil {
				return err
			}

			txn, err := e.AddTransaction(ctx, budget.TransactionRequest{
				Title:      args[0],
				CategoryID: categoryID,
				Type:       txnType,
				Amount:     budget.ParseAmount(amount),
			})
			if err != nil {
				return err
			}

			state := e.State()
			msg := fmt.Sprintf("Recorded %q for %s", txn.Title, cli.FormatMoney(txn.Amount))
			if label := budget.CategoryLabel(state.Categories, txn.CategoryID); label != "" {
				cat, _ := budget.FindCategory(state.Categories, txn.CategoryID)
				msg += fmt.Sprintf(" in %s (balance %s)", label, cli.FormatMoney(cat.Balance))
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount of the transaction")
	cmd.Flags().StringVarP(&typ, "type", "t", string(model.TransactionExpense), "expense or income")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category ID or name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func importOFXCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "import-ofx <file>",
		Short: "Import transactions from an OFX/QFX statement",
		Long: `Record every transaction of a bank or credit card statement. Debits
become expenses and credits become income. Transactions that were already
imported from an earlier statement are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := config.ExpandPath(args[0])

			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			categoryID, err := resolveCategoryFlag(e, category)
			if err != nil {
				return err
			}

			file, err := os.Open(path) //nolint:gosec // user-provided statement
			if err != nil {
				return common.NewUserError(fmt.Sprintf("cannot open %s", path), err)
			}
			defer func() { _ = file.Close() }()

			requests, err := ofx.NewParser().ParseFile(ctx, file, categoryID)
			if err != nil {
				return err
			}

			parsed := len(requests)
			requests = skipKnownTransactions(e.State().Transactions, requests)
			skipped := parsed - len(requests)
			out := cmd.OutOrStdout()
			if len(requests) == 0 {
				printLine(out, cli.FormatInfo("No new transactions in "+path))
				return nil
			}

			bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(requests), "Importing transactions...")
			txns, err := e.AddTransactions(ctx, requests, cli.ProgressFunc(bar))
			if err != nil {
				return err
			}

			common.LogInfo("Imported OFX statement", common.Fields{
				"file":         path,
				"transactions": len(txns),
				"skipped":      skipped,
			})
			printLine(out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions from %s", len(txns), path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category ID or name to assign every transaction to")

	return cmd
}

func parseTransactionType(s string) (model.TransactionType, error) {
	switch model.TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case model.TransactionExpense, "":
		return model.TransactionExpense, nil
	case model.TransactionIncome:
		return model.TransactionIncome, nil
	default:
		return "", fmt.Errorf("%w: transaction type %q (want expense or income)", common.ErrInvalidInput, s)
	}
}

func resolveCategoryFlag(e *engine.Engine, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	cat, err := e.ResolveCategory(ref)
	if err != nil {
		return "", err
	}
	return cat.ID, nil
}

func skipKnownTransactions(existing []model.Transaction, requests []budget.TransactionRequest) []budget.TransactionRequest {
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t.ID] = true
	}

	fresh := requests[:0]
	for _, r := range requests {
		if !known[r.ID] {
			fresh = append(fresh, r)
		}
	}
	return fresh
}

func renderTransactions(categories []model.Category, txns []model.Transaction) string {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			t.Date.Local().Format("2006-01-02"),
			t.Title,
			budget.CategoryLabel(categories, t.CategoryID),
			cli.FormatMoney(t.Amount),
		})
	}
	return cli.RenderTable([]string{"Date", "Title", "Category", "Amount"}, rows)
}
