// Package model defines the budget data types shared by every layer.
package model

// State is the complete budget: the unit that is persisted, exported and
// imported. Transactions are ordered most-recent-first.
type State struct {
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
	Goals        []Goal        `json:"goals"`
	Income       float64       `json:"income"`
}

// Clone returns a copy of the state whose slices can be modified without
// affecting the receiver.
func (s State) Clone() State {
	return State{
		Income:       s.Income,
		Categories:   cloneSlice(s.Categories),
		Transactions: cloneSlice(s.Transactions),
		Goals:        cloneSlice(s.Goals),
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
