// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/allot/internal/model"
)

// Storage defines the contract for our persistence layer: a key-value
// store holding the four parts of the budget state.
type Storage interface {
	// Load returns the persisted state. Each part that is missing or
	// cannot be decoded falls back to the matching part of defaults.
	Load(ctx context.Context, defaults model.State) (model.State, error)
	// Save replaces the persisted state as a single unit.
	Save(ctx context.Context, state model.State) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Keys under which the parts of the state are stored.
const (
	KeyIncome       = "income"
	KeyCategories   = "categories"
	KeyTransactions = "transactions"
	KeyGoals        = "goals"
)

// StateKeys lists every storage key in a stable order.
var StateKeys = []string{KeyIncome, KeyCategories, KeyTransactions, KeyGoals}
