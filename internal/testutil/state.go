package testutil

import (
	"time"

	"github.com/Veraticus/allot/internal/model"
)

// Category names used across tests.
const (
	Essentials = "Essentials"
	Savings    = "Savings"
	Fun        = "Fun"
)

// StateBuilder constructs budget state for tests. IDs are derived from
// names so tests can refer to them without looking them up.
type StateBuilder struct {
	state model.State
}

// NewStateBuilder returns a builder for an empty budget.
func NewStateBuilder() *StateBuilder {
	return &StateBuilder{state: model.State{
		Categories:   []model.Category{},
		Transactions: []model.Transaction{},
		Goals:        []model.Goal{},
	}}
}

// WithIncome sets the income.
func (b *StateBuilder) WithIncome(income float64) *StateBuilder {
	b.state.Income = income
	return b
}

// WithCategory adds a category whose ID is CategoryID(name).
func (b *StateBuilder) WithCategory(name string, percent, balance float64) *StateBuilder {
	b.state.Categories = append(b.state.Categories, model.Category{
		ID:      CategoryID(name),
		Name:    name,
		Percent: percent,
		Balance: balance,
	})
	return b
}

// WithBasicCategories adds Essentials, Savings and Fun split 50/30/20
// with empty balances.
func (b *StateBuilder) WithBasicCategories() *StateBuilder {
	return b.
		WithCategory(Essentials, 50, 0).
		WithCategory(Savings, 30, 0).
		WithCategory(Fun, 20, 0)
}

// WithTransaction appends a transaction dated at a fixed time.
func (b *StateBuilder) WithTransaction(id, title, categoryName string, amount float64) *StateBuilder {
	categoryID := ""
	if categoryName != "" {
		categoryID = CategoryID(categoryName)
	}
	b.state.Transactions = append(b.state.Transactions, model.Transaction{
		Date:       FixedTime(),
		ID:         id,
		Title:      title,
		CategoryID: categoryID,
		Amount:     amount,
	})
	return b
}

// WithGoal appends a goal.
func (b *StateBuilder) WithGoal(id, name string, target, saved float64) *StateBuilder {
	b.state.Goals = append(b.state.Goals, model.Goal{
		ID:           id,
		Name:         name,
		TargetAmount: target,
		Saved:        saved,
	})
	return b
}

// Build returns a copy of the built state.
func (b *StateBuilder) Build() model.State {
	return b.state.Clone()
}

// CategoryID is the ID the builder gives to a category named name.
func CategoryID(name string) string {
	return "cat-" + name
}

// FixedTime is the timestamp used for built transactions.
func FixedTime() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}
