package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/allot/internal/model"
	"github.com/google/uuid"
)

// UnknownCategory is the label shown for a transaction whose category no
// longer exists.
const UnknownCategory = "unknown"

// Category lookup errors.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrAmbiguousCategory = errors.New("category reference is ambiguous")
)

// CategoryUpdate holds the user-editable category fields. Nil fields are
// left untouched.
type CategoryUpdate struct {
	Name    *string
	Percent *float64
}

// AddCategory appends a category with percent 0 and balance 0. The ID is
// generated when empty.
func AddCategory(state model.State, name, id string) (model.Category, model.State) {
	if id == "" {
		id = uuid.NewString()
	}
	cat := model.Category{ID: id, Name: name}

	next := state.Clone()
	next.Categories = append(next.Categories, cat)
	return cat, next
}

// UpdateCategory changes the name and/or percent of a category. Balances
// are not redistributed; callers run Redistribute explicitly.
func UpdateCategory(state model.State, id string, update CategoryUpdate) (model.Category, model.State, error) {
	i := indexOfCategory(state.Categories, id)
	if i < 0 {
		return model.Category{}, state, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}

	next := state.Clone()
	if update.Name != nil {
		next.Categories[i].Name = *update.Name
	}
	if update.Percent != nil {
		next.Categories[i].Percent = model.Finite(*update.Percent)
	}
	return next.Categories[i], next, nil
}

// DeleteCategory removes a category. Transactions that reference it keep
// the dangling ID.
func DeleteCategory(state model.State, id string) (model.State, error) {
	i := indexOfCategory(state.Categories, id)
	if i < 0 {
		return state, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}

	next := state.Clone()
	next.Categories = append(next.Categories[:i], next.Categories[i+1:]...)
	return next, nil
}

// FindCategory resolves a user reference to a category: an exact ID match
// wins, otherwise a single case-insensitive name match.
func FindCategory(categories []model.Category, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	if i := indexOfCategory(categories, ref); i >= 0 {
		return categories[i], nil
	}

	var (
		found   model.Category
		matches int
	)
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			found = c
			matches++
		}
	}

	switch matches {
	case 0:
		return model.Category{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, ref)
	case 1:
		return found, nil
	default:
		return model.Category{}, fmt.Errorf("%w: %d categories named %q", ErrAmbiguousCategory, matches, ref)
	}
}

// CategoryLabel returns the display name for a transaction's category
// reference: "" when the transaction has no category and UnknownCategory
// when the reference dangles.
func CategoryLabel(categories []model.Category, id string) string {
	if id == "" {
		return ""
	}
	if i := indexOfCategory(categories, id); i >= 0 {
		return categories[i].Name
	}
	return UnknownCategory
}

func indexOfCategory(categories []model.Category, id string) int {
	for i, c := range categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
