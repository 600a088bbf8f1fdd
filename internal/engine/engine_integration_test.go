package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/model"
	"github.com/Veraticus/allot/internal/testutil"
)

func TestEngine_SQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defaults := testutil.NewStateBuilder().WithIncome(1000).WithBasicCategories().Build()

	e, err := New(ctx, db.Storage, defaults)
	require.NoError(t, err)

	require.NoError(t, e.Distribute(ctx))
	_, err = e.AddTransaction(ctx, budget.TransactionRequest{
		Date:       testutil.FixedTime(),
		Title:      "Dinner",
		CategoryID: testutil.CategoryID(testutil.Fun),
		Type:       model.TransactionExpense,
		Amount:     50,
	})
	require.NoError(t, err)
	_, err = e.CreateGoal(ctx, budget.GoalRequest{
		Name:           "Holiday",
		FromCategoryID: testutil.CategoryID(testutil.Savings),
		TargetAmount:   1000,
	})
	require.NoError(t, err)

	reopened, err := New(ctx, db.Storage, model.State{})
	require.NoError(t, err)

	state := reopened.State()
	assert.Equal(t, e.State(), state)
	assert.InDelta(t, 150, state.Categories[2].Balance, 0)
	assert.InDelta(t, 0, state.Categories[1].Balance, 0)
	require.Len(t, state.Goals, 1)
	assert.InDelta(t, 300, state.Goals[0].Saved, 0)
}
