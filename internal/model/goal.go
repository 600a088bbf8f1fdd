package model

import "encoding/json"

// Goal is a savings target funded by a one-time transfer from a category.
type Goal struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	TargetAmount float64 `json:"targetAmount"`
	Saved        float64 `json:"saved"`
}

// Remaining returns how much is still missing to reach the target.
func (g Goal) Remaining() float64 {
	if g.Saved >= g.TargetAmount {
		return 0
	}
	return g.TargetAmount - g.Saved
}

// UnmarshalJSON decodes a goal, coercing non-numeric amounts to 0.
func (g *Goal) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           json.RawMessage `json:"id"`
		Name         json.RawMessage `json:"name"`
		TargetAmount json.RawMessage `json:"targetAmount"`
		Saved        json.RawMessage `json:"saved"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*g = Goal{
		ID:           CoerceString(raw.ID),
		Name:         CoerceString(raw.Name),
		TargetAmount: CoerceNumber(raw.TargetAmount),
		Saved:        CoerceNumber(raw.Saved),
	}
	return nil
}
