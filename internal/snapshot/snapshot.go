// Package snapshot serializes the complete budget state to a JSON document
// and reads such documents back.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/allot/internal/model"
)

// ErrInvalidFormat is returned when a document cannot be parsed.
var ErrInvalidFormat = errors.New("invalid snapshot format")

// document mirrors model.State with every field optional so that absent
// fields can be told apart from zero values.
type document struct {
	Income       json.RawMessage `json:"income"`
	Categories   json.RawMessage `json:"categories"`
	Transactions json.RawMessage `json:"transactions"`
	Goals        json.RawMessage `json:"goals"`
}

// Marshal renders the state as an indented JSON document. Empty lists are
// written as [] rather than null.
func Marshal(state model.State) ([]byte, error) {
	state = state.Clone()
	if state.Categories == nil {
		state.Categories = []model.Category{}
	}
	if state.Transactions == nil {
		state.Transactions = []model.Transaction{}
	}
	if state.Goals == nil {
		state.Goals = []model.Goal{}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Unmarshal parses a document and overlays it on current. Fields the
// document omits (or sets to null) keep their current value. On any parse
// error current is returned unchanged together with an error wrapping
// ErrInvalidFormat. Field contents are not validated beyond decoding.
func Unmarshal(data []byte, current model.State) (model.State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return current, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	next := current.Clone()

	if present(doc.Income) {
		next.Income = model.CoerceNumber(doc.Income)
	}
	if present(doc.Categories) {
		var categories []model.Category
		if err := json.Unmarshal(doc.Categories, &categories); err != nil {
			return current, fmt.Errorf("%w: categories: %v", ErrInvalidFormat, err)
		}
		next.Categories = categories
	}
	if present(doc.Transactions) {
		var transactions []model.Transaction
		if err := json.Unmarshal(doc.Transactions, &transactions); err != nil {
			return current, fmt.Errorf("%w: transactions: %v", ErrInvalidFormat, err)
		}
		next.Transactions = transactions
	}
	if present(doc.Goals) {
		var goals []model.Goal
		if err := json.Unmarshal(doc.Goals, &goals); err != nil {
			return current, fmt.Errorf("%w: goals: %v", ErrInvalidFormat, err)
		}
		next.Goals = goals
	}

	return next, nil
}

// Export writes the state document to w.
func Export(w io.Writer, state model.State) error {
	data, err := Marshal(state)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Import reads a document from r and overlays it on current.
func Import(r io.Reader, current model.State) (model.State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return current, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Unmarshal(data, current)
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
