package budget

import (
	"math"

	"github.com/Veraticus/allot/internal/model"
)

// Distribute recomputes every category balance from income and the
// category percents, discarding prior balances. Only Balance changes;
// the returned slice is a new one.
//
// With a positive percent total each category receives
// round(percent/total*income). When every percent is zero the income is
// split into equal floored shares and the remainder is dropped. Negative
// and non-finite percents count as zero, and balances never go below zero.
func Distribute(income float64, categories []model.Category) []model.Category {
	if len(categories) == 0 {
		return categories
	}

	income = model.Finite(income)
	total := TotalPercent(categories)

	out := make([]model.Category, len(categories))
	copy(out, categories)

	if total == 0 {
		share := nonNegative(math.Floor(income / float64(len(out))))
		for i := range out {
			out[i].Balance = share
		}
		return out
	}

	denominator := math.Max(total, 1)
	for i := range out {
		out[i].Balance = nonNegative(roundHalfUp(weight(out[i].Percent) / denominator * income))
	}
	return out
}

// SetIncome replaces the income and redistributes it across categories.
func SetIncome(state model.State, income float64) model.State {
	next := state.Clone()
	next.Income = model.Finite(income)
	next.Categories = Distribute(next.Income, next.Categories)
	return next
}

// Redistribute runs Distribute with the state's current income.
func Redistribute(state model.State) model.State {
	next := state.Clone()
	next.Categories = Distribute(next.Income, next.Categories)
	return next
}

// TotalPercent sums the category weights, counting negative and
// non-finite percents as zero.
func TotalPercent(categories []model.Category) float64 {
	var total float64
	for _, c := range categories {
		total += weight(c.Percent)
	}
	return total
}

// TotalBalance sums the category balances.
func TotalBalance(categories []model.Category) float64 {
	var total float64
	for _, c := range categories {
		total += c.Balance
	}
	return total
}

func weight(percent float64) float64 {
	return nonNegative(model.Finite(percent))
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// roundHalfUp rounds to the nearest integer, halves toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
