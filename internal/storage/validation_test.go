package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/allot/internal/model"
)

func TestValidateState(t *testing.T) {
	tests := []struct {
		mutate  func(*model.State)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*model.State) {}},
		{name: "nan income", mutate: func(s *model.State) { s.Income = math.NaN() }, wantErr: true},
		{name: "infinite percent", mutate: func(s *model.State) { s.Categories[0].Percent = math.Inf(-1) }, wantErr: true},
		{name: "nan amount", mutate: func(s *model.State) { s.Transactions[0].Amount = math.NaN() }, wantErr: true},
		{name: "infinite target", mutate: func(s *model.State) { s.Goals[0].TargetAmount = math.Inf(1) }, wantErr: true},
		{name: "negative numbers are fine", mutate: func(s *model.State) { s.Income = -5; s.Categories[0].Percent = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := savedState()
			tt.mutate(&state)
			err := validateState(state)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidState)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	assert.NoError(t, validateString("x", "p"))
	assert.ErrorIs(t, validateString("", "p"), ErrEmptyString)
	assert.ErrorIs(t, validateString(" \t", "p"), ErrEmptyString)
}
