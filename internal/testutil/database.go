// Package testutil provides test utilities for allot: isolated storage,
// a fluent builder for budget state and a storage fake with failure
// injection.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/allot/internal/model"
	"github.com/Veraticus/allot/internal/storage"
)

// TestDB represents a migrated in-memory database.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database. It automatically
// handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.Seed(testutil.NewStateBuilder().WithIncome(1000).Build())
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// Seed saves state as the stored budget or fails the test.
func (db *TestDB) Seed(state model.State) {
	db.t.Helper()

	if err := db.Storage.Save(context.Background(), state); err != nil {
		db.t.Fatalf("failed to seed state: %v", err)
	}
}

// MustLoad returns the stored budget or fails the test.
func (db *TestDB) MustLoad(defaults model.State) model.State {
	db.t.Helper()

	state, err := db.Storage.Load(context.Background(), defaults)
	if err != nil {
		db.t.Fatalf("failed to load state: %v", err)
	}
	return state
}
