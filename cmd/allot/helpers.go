package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/allot/internal/config"
	"github.com/Veraticus/allot/internal/engine"
	"github.com/Veraticus/allot/internal/storage"
)

const defaultDatabaseHint = config.DefaultDatabasePath

// envKeyReplacer maps nested keys such as database.path to ALLOT_DATABASE_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openEngine loads the budget. The returned close function releases the
// database.
func openEngine(ctx context.Context) (*engine.Engine, func(), error) {
	defaults, err := config.LoadDefaults(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}

	e, err := engine.New(ctx, store, defaults.State())
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return e, closeStore, nil
}

func printLine(w io.Writer, a ...any) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
