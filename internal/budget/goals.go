package budget

import (
	"math"

	"github.com/Veraticus/allot/internal/model"
	"github.com/google/uuid"
)

// GoalRequest describes a goal to create. FromCategoryID optionally names
// the category that funds the goal at creation. ID is generated when empty.
type GoalRequest struct {
	ID             string
	Name           string
	FromCategoryID string
	TargetAmount   float64
}

// CreateGoal appends a new goal. When FromCategoryID resolves to a category
// with a positive balance, min(balance, target) moves from the category to
// the goal. Creation is the only time a goal receives funds.
func CreateGoal(state model.State, req GoalRequest) (model.Goal, model.State) {
	goal := model.Goal{
		ID:           req.ID,
		Name:         req.Name,
		TargetAmount: model.Finite(req.TargetAmount),
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	next := state.Clone()

	if req.FromCategoryID != "" {
		if i := indexOfCategory(next.Categories, req.FromCategoryID); i >= 0 && next.Categories[i].Balance > 0 {
			transfer := math.Min(next.Categories[i].Balance, goal.TargetAmount)
			if transfer > 0 {
				next.Categories[i].Balance -= transfer
				goal.Saved += transfer
			}
		}
	}

	next.Goals = append(next.Goals, goal)
	return goal, next
}

// GoalProgress returns the saved fraction of the target, clamped to [0, 1].
func GoalProgress(goal model.Goal) float64 {
	if goal.TargetAmount <= 0 {
		if goal.Saved > 0 {
			return 1
		}
		return 0
	}
	return math.Max(0, math.Min(1, goal.Saved/goal.TargetAmount))
}
