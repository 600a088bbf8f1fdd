// Package storage provides the data persistence layer for the allot application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/allot/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidState = errors.New("invalid state")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateState rejects numbers that cannot be stored as JSON.
func validateState(state model.State) error {
	if !finite(state.Income) {
		return fmt.Errorf("%w: income is not a finite number", ErrInvalidState)
	}
	for i, c := range state.Categories {
		if !finite(c.Percent) || !finite(c.Balance) {
			return fmt.Errorf("%w: category at index %d has a non-finite number", ErrInvalidState, i)
		}
	}
	for i, t := range state.Transactions {
		if !finite(t.Amount) {
			return fmt.Errorf("%w: transaction at index %d has a non-finite amount", ErrInvalidState, i)
		}
	}
	for i, g := range state.Goals {
		if !finite(g.TargetAmount) || !finite(g.Saved) {
			return fmt.Errorf("%w: goal at index %d has a non-finite number", ErrInvalidState, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
