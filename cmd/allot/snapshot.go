package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/allot/internal/cli"
	"github.com/Veraticus/allot/internal/common"
	"github.com/Veraticus/allot/internal/config"
	"github.com/Veraticus/allot/internal/snapshot"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the budget as a JSON snapshot",
		Long:  `Write the whole budget as JSON to a file, or to stdout when no file is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, closeEngine, err := openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeEngine()

			if len(args) == 0 {
				return e.Export(cmd.OutOrStdout())
			}

			path := config.ExpandPath(args[0])
			file, err := os.Create(path) //nolint:gosec // user-provided export path
			if err != nil {
				return common.NewUserError(fmt.Sprintf("cannot create %s", path), err)
			}

			if err := e.Export(file); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", path, err)
			}

			printLine(cmd.OutOrStdout(), cli.FormatSuccess("Exported budget to "+path))
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON snapshot",
		Long: `Replace the budget with the contents of a JSON snapshot. Parts missing
from the snapshot are kept. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				r    io.Reader
				path = args[0]
			)
			if path == "-" {
				r = cmd.InOrStdin()
			} else {
				path = config.ExpandPath(path)
				file, err := os.Open(path) //nolint:gosec // user-provided snapshot
				if err != nil {
					return common.NewUserError(fmt.Sprintf("cannot open %s", path), err)
				}
				defer func() { _ = file.Close() }()
				r = file
			}

			e, closeEngine, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeEngine()

			if err := e.Import(ctx, r); err != nil {
				if errors.Is(err, snapshot.ErrInvalidFormat) {
					return common.NewUserError(path+" is not a valid budget snapshot; nothing was changed", err)
				}
				return err
			}

			state := e.State()
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Imported budget: %d categories, %d transactions, %d goals",
				len(state.Categories), len(state.Transactions), len(state.Goals))))
			return nil
		},
	}
}
