package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/allot/internal/model"
)

func TestAddCategory(t *testing.T) {
	state := model.State{Categories: categoriesWithPercents(50)}

	cat, next := AddCategory(state, "Travel", "")
	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, "Travel", cat.Name)
	assert.Equal(t, float64(0), cat.Percent)
	assert.Equal(t, float64(0), cat.Balance)
	require.Len(t, next.Categories, 2)
	assert.Equal(t, cat, next.Categories[1])
	assert.Len(t, state.Categories, 1)

	fixed, _ := AddCategory(state, "Fixed", "my-id")
	assert.Equal(t, "my-id", fixed.ID)
}

func TestUpdateCategory(t *testing.T) {
	state := model.State{Income: 1000, Categories: Distribute(1000, categoriesWithPercents(50, 50))}
	name := "Housing"
	percent := 80.0

	cat, next, err := UpdateCategory(state, "a", CategoryUpdate{Name: &name, Percent: &percent})
	require.NoError(t, err)
	assert.Equal(t, "Housing", cat.Name)
	assert.Equal(t, float64(80), cat.Percent)
	assert.Equal(t, float64(500), cat.Balance, "percent edits do not redistribute")
	assert.Equal(t, "Category A", state.Categories[0].Name)

	cat, _, err = UpdateCategory(next, "b", CategoryUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Category B", cat.Name)

	_, unchanged, err := UpdateCategory(state, "zzz", CategoryUpdate{Name: &name})
	require.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Equal(t, state, unchanged)
}

func TestDeleteCategory_LeavesTransactionsDangling(t *testing.T) {
	state := model.State{Income: 1000, Categories: Distribute(1000, categoriesWithPercents(50, 50))}
	_, state = AddTransaction(state, TransactionRequest{Title: "Food", Amount: 10, Type: model.TransactionExpense, CategoryID: "a"})

	next, err := DeleteCategory(state, "a")
	require.NoError(t, err)
	require.Len(t, next.Categories, 1)
	assert.Equal(t, "b", next.Categories[0].ID)
	require.Len(t, next.Transactions, 1)
	assert.Equal(t, "a", next.Transactions[0].CategoryID)
	assert.Equal(t, UnknownCategory, CategoryLabel(next.Categories, "a"))
	assert.Len(t, state.Categories, 2)

	_, err = DeleteCategory(next, "a")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestFindCategory(t *testing.T) {
	cats := []model.Category{
		{ID: "1", Name: "Essentials"},
		{ID: "2", Name: "Wants"},
		{ID: "3", Name: "wants"},
		{ID: "Essentials", Name: "Tricky"},
	}

	tests := []struct {
		wantErr error
		name    string
		ref     string
		wantID  string
	}{
		{name: "by id", ref: "2", wantID: "2"},
		{name: "id wins over name", ref: "Essentials", wantID: "Essentials"},
		{name: "by name case-insensitive", ref: " tricky ", wantID: "Essentials"},
		{name: "ambiguous name", ref: "WANTS", wantErr: ErrAmbiguousCategory},
		{name: "missing", ref: "Travel", wantErr: ErrCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindCategory(cats, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	cats := []model.Category{{ID: "1", Name: "Essentials"}}

	assert.Equal(t, "Essentials", CategoryLabel(cats, "1"))
	assert.Equal(t, UnknownCategory, CategoryLabel(cats, "2"))
	assert.Equal(t, "", CategoryLabel(cats, ""))
}
