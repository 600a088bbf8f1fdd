package budget

import (
	"strings"

	"github.com/Veraticus/allot/internal/model"
	"github.com/shopspring/decimal"
)

// ParseAmount converts user input to a number. Anything that is not a
// plain decimal number (including the empty string) becomes 0.
func ParseAmount(input string) float64 {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0
	}

	d, err := decimal.NewFromString(input)
	if err != nil {
		return 0
	}
	return model.Finite(d.InexactFloat64())
}

// ParsePercent converts a percent typed by the user. A trailing "%" is
// accepted.
func ParsePercent(input string) float64 {
	return ParseAmount(strings.TrimSuffix(strings.TrimSpace(input), "%"))
}
