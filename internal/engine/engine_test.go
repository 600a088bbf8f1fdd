package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/model"
	"github.com/Veraticus/allot/internal/snapshot"
	"github.com/Veraticus/allot/internal/testutil"
)

func newTestEngine(t *testing.T, initial *model.State) (*Engine, *testutil.MemoryStorage) {
	t.Helper()

	store := testutil.NewMemoryStorage(initial)
	defaults := testutil.NewStateBuilder().WithIncome(1000).WithBasicCategories().Build()

	e, err := New(context.Background(), store, defaults)
	require.NoError(t, err)
	return e, store
}

func TestNew_UsesDefaultsWhenNothingStored(t *testing.T) {
	e, store := newTestEngine(t, nil)

	state := e.State()
	assert.InDelta(t, 1000, state.Income, 0)
	assert.Len(t, state.Categories, 3)
	assert.Equal(t, 0, store.Saves())
}

func TestNew_LoadsStoredState(t *testing.T) {
	stored := testutil.NewStateBuilder().WithIncome(250).WithCategory("Rent", 100, 10).Build()
	e, _ := newTestEngine(t, &stored)

	assert.Equal(t, stored, e.State())
}

func TestNew_RequiresStorage(t *testing.T) {
	_, err := New(context.Background(), nil, model.State{})
	require.Error(t, err)
}

func TestEngine_StateReturnsCopy(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	state := e.State()
	state.Categories[0].Name = "changed"

	assert.Equal(t, testutil.Essentials, e.State().Categories[0].Name)
}

func TestEngine_SetIncome(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, nil)

	require.NoError(t, e.SetIncome(ctx, 2000))

	state := e.State()
	assert.InDelta(t, 2000, state.Income, 0)
	assert.InDelta(t, 1000, state.Categories[0].Balance, 0)
	assert.InDelta(t, 600, state.Categories[1].Balance, 0)
	assert.InDelta(t, 400, state.Categories[2].Balance, 0)

	saved, ok := store.Saved()
	require.True(t, ok)
	assert.Equal(t, state, saved)
}

func TestEngine_DistributeDiscardsSpending(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, nil)

	require.NoError(t, e.Distribute(ctx))
	_, err := e.AddTransaction(ctx, budget.TransactionRequest{
		Title:      "Groceries",
		CategoryID: testutil.CategoryID(testutil.Essentials),
		Type:       model.TransactionExpense,
		Amount:     120,
	})
	require.NoError(t, err)
	assert.InDelta(t, 380, e.State().Categories[0].Balance, 0)

	require.NoError(t, e.Distribute(ctx))
	assert.InDelta(t, 500, e.State().Categories[0].Balance, 0)
	assert.Len(t, e.State().Transactions, 1)
}

func TestEngine_CategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, nil)

	cat, err := e.AddCategory(ctx, "Travel")
	require.NoError(t, err)
	assert.NotEmpty(t, cat.ID)
	assert.InDelta(t, 0, cat.Percent, 0)

	name := "Trips"
	percent := 10.0
	updated, err := e.UpdateCategory(ctx, "travel", budget.CategoryUpdate{Name: &name, Percent: &percent})
	require.NoError(t, err)
	assert.Equal(t, cat.ID, updated.ID)
	assert.Equal(t, "Trips", updated.Name)
	assert.InDelta(t, 10, updated.Percent, 0)

	deleted, err := e.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trips", deleted.Name)
	assert.Len(t, e.State().Categories, 3)
	assert.Equal(t, 3, store.Saves())
}

func TestEngine_CategoryNotFound(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, nil)

	_, err := e.UpdateCategory(ctx, "missing", budget.CategoryUpdate{})
	require.ErrorIs(t, err, budget.ErrCategoryNotFound)

	_, err = e.DeleteCategory(ctx, "missing")
	require.ErrorIs(t, err, budget.ErrCategoryNotFound)

	assert.Equal(t, 0, store.Saves())
}

func TestEngine_DeleteKeepsTransactionReference(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, nil)
	funID := testutil.CategoryID(testutil.Fun)

	_, err := e.AddTransaction(ctx, budget.TransactionRequest{
		Title:      "Cinema",
		CategoryID: funID,
		Type:       model.TransactionExpense,
		Amount:     15,
	})
	require.NoError(t, err)

	_, err = e.DeleteCategory(ctx, testutil.Fun)
	require.NoError(t, err)

	state := e.State()
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, funID, state.Transactions[0].CategoryID)
	assert.Equal(t, budget.UnknownCategory, budget.CategoryLabel(state.Categories, funID))
}

func TestEngine_AddTransactionsBatch(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, nil)
	require.NoError(t, e.Distribute(ctx))
	essentials := testutil.CategoryID(testutil.Essentials)

	var progress []int
	txns, err := e.AddTransactions(ctx, []budget.TransactionRequest{
		{Title: "first", CategoryID: essentials, Type: model.TransactionExpense, Amount: 100},
		{Title: "second", CategoryID: essentials, Type: model.TransactionIncome, Amount: 30},
	}, func(done int) { progress = append(progress, done) })
	require.NoError(t, err)

	require.Len(t, txns, 2)
	assert.Equal(t, []int{1, 2}, progress)

	state := e.State()
	assert.Equal(t, "second", state.Transactions[0].Title)
	assert.Equal(t, "first", state.Transactions[1].Title)
	assert.InDelta(t, 430, state.Categories[0].Balance, 0)
	assert.Equal(t, 2, store.Saves())
}

func TestEngine_AddTransactionsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e, store := newTestEngine(t, nil)
	cancel()

	_, err := e.AddTransactions(ctx, []budget.TransactionRequest{{Title: "x", Amount: 1}}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, e.State().Transactions)
	assert.Equal(t, 0, store.Saves())
}

func TestEngine_CreateGoal(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, nil)
	require.NoError(t, e.Distribute(ctx))
	savings := testutil.CategoryID(testutil.Savings)

	goal, err := e.CreateGoal(ctx, budget.GoalRequest{
		Name:           "Laptop",
		FromCategoryID: savings,
		TargetAmount:   200,
	})
	require.NoError(t, err)

	assert.InDelta(t, 200, goal.Saved, 0)
	assert.InDelta(t, 100, e.State().Categories[1].Balance, 0)
	assert.Len(t, e.State().Goals, 1)
}

func TestEngine_PersistFailureKeepsChange(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, nil)
	store.FailSaves(true)

	err := e.SetIncome(ctx, 3000)
	require.ErrorIs(t, err, ErrPersist)
	require.ErrorIs(t, err, testutil.ErrSaveFailed)

	assert.InDelta(t, 3000, e.State().Income, 0)
	_, saved := store.Saved()
	assert.False(t, saved)
}

func TestEngine_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source, _ := newTestEngine(t, nil)
	require.NoError(t, source.Distribute(ctx))
	_, err := source.AddTransaction(ctx, budget.TransactionRequest{
		Date:       testutil.FixedTime(),
		Title:      "Rent",
		CategoryID: testutil.CategoryID(testutil.Essentials),
		Type:       model.TransactionExpense,
		Amount:     400,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, source.Export(&buf))

	target, store := newTestEngine(t, &model.State{})
	require.NoError(t, target.Import(ctx, &buf))

	assert.Equal(t, source.State(), target.State())
	saved, ok := store.Saved()
	require.True(t, ok)
	assert.Equal(t, source.State(), saved)
}

func TestEngine_ImportPartialDocument(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, nil)

	require.NoError(t, e.Import(ctx, strings.NewReader(`{"income": 42}`)))

	state := e.State()
	assert.InDelta(t, 42, state.Income, 0)
	assert.Len(t, state.Categories, 3)
}

func TestEngine_ImportInvalidLeavesState(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, nil)
	before := e.State()

	err := e.Import(ctx, strings.NewReader(`{not json`))
	require.ErrorIs(t, err, snapshot.ErrInvalidFormat)

	assert.Equal(t, before, e.State())
	assert.Equal(t, 0, store.Saves())
}

func TestEngine_Reload(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, nil)

	replacement := testutil.NewStateBuilder().WithIncome(7).Build()
	require.NoError(t, store.Save(ctx, replacement))

	require.NoError(t, e.Reload(ctx))
	assert.Equal(t, replacement, e.State())
}
