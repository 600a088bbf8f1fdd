package model

import "encoding/json"

// Category is a named bucket of money with an allocation weight.
// Percent is a weight, not a share: it need not be in 0..100 and the
// percents of all categories need not sum to 100.
type Category struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Balance float64 `json:"balance"`
}

// UnmarshalJSON decodes a category, coercing non-numeric percent and
// balance values to 0 and numeric ids to strings.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      json.RawMessage `json:"id"`
		Name    json.RawMessage `json:"name"`
		Percent json.RawMessage `json:"percent"`
		Balance json.RawMessage `json:"balance"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Category{
		ID:      CoerceString(raw.ID),
		Name:    CoerceString(raw.Name),
		Percent: CoerceNumber(raw.Percent),
		Balance: CoerceNumber(raw.Balance),
	}
	return nil
}
