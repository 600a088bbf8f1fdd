package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/allot/internal/cli"
	"github.com/Veraticus/allot/internal/config"
	"github.com/Veraticus/allot/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates automatically; this one is useful to check
the schema state with --status.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	ctx := cmd.Context()
	dbPath := config.DatabasePath(viper.GetViper())
	out := cmd.OutOrStdout()

	slog.Info("Starting database migration", "database", dbPath, "status_only", status)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if status {
		version, dirty, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		printLine(out, cli.FormatTitle("Database Migration Status"))
		printLine(out, fmt.Sprintf("Database: %s", dbPath))
		printLine(out, fmt.Sprintf("Current version: %d", version))
		printLine(out, fmt.Sprintf("Latest version: %d", storage.ExpectedSchemaVersion))
		if dirty {
			printLine(out, cli.FormatWarning("Schema is dirty: a previous migration failed part way"))
		}
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	printLine(out, cli.FormatSuccess("Database migrations completed successfully"))
	return nil
}
