// Package engine drives the budget: it holds the in-memory state, applies
// the budget operations when the user asks for them, and persists the
// result after every change.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/common"
	"github.com/Veraticus/allot/internal/model"
	"github.com/Veraticus/allot/internal/service"
	"github.com/Veraticus/allot/internal/snapshot"
)

// ErrPersist is returned when a change was applied in memory but could not
// be written to storage.
var ErrPersist = errors.New("failed to persist budget")

// Engine owns the budget state for one session. It is not safe for
// concurrent use: operations are expected to run one at a time.
type Engine struct {
	storage  service.Storage
	defaults model.State
	state    model.State
}

// New loads the stored budget, falling back to defaults for anything that
// has not been stored yet.
func New(ctx context.Context, storage service.Storage, defaults model.State) (*Engine, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage is required")
	}

	e := &Engine{
		storage:  storage,
		defaults: defaults.Clone(),
	}
	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// State returns a copy of the current budget.
func (e *Engine) State() model.State {
	return e.state.Clone()
}

// Reload replaces the in-memory state with the stored one.
func (e *Engine) Reload(ctx context.Context) error {
	state, err := e.storage.Load(ctx, e.defaults)
	if err != nil {
		return fmt.Errorf("failed to load budget: %w", err)
	}
	e.state = state
	return nil
}

// ResolveCategory finds a category by ID or name.
func (e *Engine) ResolveCategory(ref string) (model.Category, error) {
	return budget.FindCategory(e.state.Categories, ref)
}

// SetIncome changes the income and redistributes it across categories.
func (e *Engine) SetIncome(ctx context.Context, income float64) error {
	next := budget.SetIncome(e.state, income)
	slog.Info("Income changed", "from", e.state.Income, "to", next.Income)
	return e.commit(ctx, next)
}

// Distribute resets every category balance from the current income.
func (e *Engine) Distribute(ctx context.Context) error {
	next := budget.Redistribute(e.state)
	slog.Info("Distributed income",
		"income", next.Income,
		"categories", len(next.Categories),
		"total_percent", budget.TotalPercent(next.Categories),
		"allocated", budget.TotalBalance(next.Categories))
	return e.commit(ctx, next)
}

// AddCategory creates an empty category.
func (e *Engine) AddCategory(ctx context.Context, name string) (model.Category, error) {
	cat, next := budget.AddCategory(e.state, name, "")
	slog.Info("Created category", "id", cat.ID, "name", cat.Name)
	return cat, e.commit(ctx, next)
}

// UpdateCategory edits the category referenced by ref. Balances are left
// as they are until the next distribution.
func (e *Engine) UpdateCategory(ctx context.Context, ref string, update budget.CategoryUpdate) (model.Category, error) {
	current, err := e.ResolveCategory(ref)
	if err != nil {
		return model.Category{}, err
	}

	cat, next, err := budget.UpdateCategory(e.state, current.ID, update)
	if err != nil {
		return model.Category{}, err
	}
	slog.Info("Updated category", "id", cat.ID, "name", cat.Name, "percent", cat.Percent)
	return cat, e.commit(ctx, next)
}

// DeleteCategory removes the category referenced by ref. Transactions keep
// pointing at the removed ID.
func (e *Engine) DeleteCategory(ctx context.Context, ref string) (model.Category, error) {
	cat, err := e.ResolveCategory(ref)
	if err != nil {
		return model.Category{}, err
	}

	next, err := budget.DeleteCategory(e.state, cat.ID)
	if err != nil {
		return model.Category{}, err
	}
	slog.Info("Deleted category", "id", cat.ID, "name", cat.Name)
	return cat, e.commit(ctx, next)
}

// AddTransaction records one transaction.
func (e *Engine) AddTransaction(ctx context.Context, req budget.TransactionRequest) (model.Transaction, error) {
	txn, next := budget.AddTransaction(e.state, req)
	slog.Info("Recorded transaction",
		"id", txn.ID,
		"title", txn.Title,
		"amount", txn.Amount,
		"category", budget.CategoryLabel(next.Categories, txn.CategoryID))
	return txn, e.commit(ctx, next)
}

// AddTransactions records a batch in order and persists once at the end.
// progress, when set, is called after each transaction is applied.
func (e *Engine) AddTransactions(ctx context.Context, reqs []budget.TransactionRequest, progress func(done int)) ([]model.Transaction, error) {
	next := e.state
	txns := make([]model.Transaction, 0, len(reqs))

	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var txn model.Transaction
		txn, next = budget.AddTransaction(next, req)
		txns = append(txns, txn)

		if progress != nil {
			progress(i + 1)
		}
	}

	slog.Info("Recorded transactions", "count", len(txns))
	return txns, e.commit(ctx, next)
}

// CreateGoal creates a goal, funding it from a category when requested.
func (e *Engine) CreateGoal(ctx context.Context, req budget.GoalRequest) (model.Goal, error) {
	goal, next := budget.CreateGoal(e.state, req)
	slog.Info("Created goal",
		"id", goal.ID,
		"name", goal.Name,
		"target", goal.TargetAmount,
		"saved", goal.Saved)
	return goal, e.commit(ctx, next)
}

// Export writes the current budget as a snapshot document.
func (e *Engine) Export(w io.Writer) error {
	return snapshot.Export(w, e.state)
}

// Import replaces the parts of the budget present in the snapshot read
// from r. A document that does not parse leaves the budget untouched and
// returns an error wrapping snapshot.ErrInvalidFormat.
func (e *Engine) Import(ctx context.Context, r io.Reader) error {
	next, err := snapshot.Import(r, e.state)
	if err != nil {
		return err
	}

	slog.Info("Imported snapshot",
		"categories", len(next.Categories),
		"transactions", len(next.Transactions),
		"goals", len(next.Goals))
	if common.DebugEnabled(ctx) {
		common.LogDebug("Imported state", common.Fields{"state": spew.Sdump(next)})
	}
	return e.commit(ctx, next)
}

// commit makes next the current state and saves it. The in-memory change
// stands even when saving fails; the failure is logged and returned.
func (e *Engine) commit(ctx context.Context, next model.State) error {
	e.state = next

	if err := e.storage.Save(ctx, next); err != nil {
		common.LogError(err, "Failed to persist budget", common.Fields{
			"categories":   len(next.Categories),
			"transactions": len(next.Transactions),
			"goals":        len(next.Goals),
		})
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
