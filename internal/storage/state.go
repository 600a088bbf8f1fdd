package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/allot/internal/model"
	"github.com/Veraticus/allot/internal/service"
)

// Load reads the persisted state. Every key is decoded on its own: a
// missing, null or undecodable value falls back to the matching part of
// defaults, so a damaged entry never prevents the rest from loading.
func (s *SQLiteStorage) Load(ctx context.Context, defaults model.State) (model.State, error) {
	if err := validateContext(ctx); err != nil {
		return defaults, err
	}

	values, err := s.readValues(ctx)
	if err != nil {
		return defaults, err
	}

	state := defaults.Clone()

	if raw, ok := values[service.KeyIncome]; ok {
		var income float64
		if decodeValue(service.KeyIncome, raw, &income) && finite(income) {
			state.Income = income
		}
	}
	if raw, ok := values[service.KeyCategories]; ok {
		var categories []model.Category
		if decodeValue(service.KeyCategories, raw, &categories) {
			state.Categories = categories
		}
	}
	if raw, ok := values[service.KeyTransactions]; ok {
		var transactions []model.Transaction
		if decodeValue(service.KeyTransactions, raw, &transactions) {
			state.Transactions = transactions
		}
	}
	if raw, ok := values[service.KeyGoals]; ok {
		var goals []model.Goal
		if decodeValue(service.KeyGoals, raw, &goals) {
			state.Goals = goals
		}
	}

	slog.Debug("loaded state",
		"stored_keys", len(values),
		"categories", len(state.Categories),
		"transactions", len(state.Transactions),
		"goals", len(state.Goals))
	return state, nil
}

// Save writes all parts of the state in a single database transaction.
func (s *SQLiteStorage) Save(ctx context.Context, state model.State) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateState(state); err != nil {
		return err
	}

	values, err := encodeState(state)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`

	now := time.Now()
	for _, key := range service.StateKeys {
		if _, err := tx.ExecContext(ctx, query, key, values[key], now); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}

	slog.Debug("saved state",
		"categories", len(state.Categories),
		"transactions", len(state.Transactions),
		"goals", len(state.Goals))
	return nil
}

func (s *SQLiteStorage) readValues(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to query state: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, len(service.StateKeys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan state value: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state values: %w", err)
	}
	return values, nil
}

func encodeState(state model.State) (map[string]string, error) {
	parts := map[string]any{
		service.KeyIncome:       state.Income,
		service.KeyCategories:   nonNil(state.Categories),
		service.KeyTransactions: nonNil(state.Transactions),
		service.KeyGoals:        nonNil(state.Goals),
	}

	values := make(map[string]string, len(parts))
	for key, part := range parts {
		data, err := json.Marshal(part)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		values[key] = string(data)
	}
	return values, nil
}

// decodeValue unmarshals a stored value, reporting false (and logging)
// when the value is null or malformed.
func decodeValue(key, raw string, dst any) bool {
	if raw == "" || raw == "null" {
		slog.Warn("stored value is empty, using default", "key", key)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("stored value is malformed, using default", "key", key, "error", err)
		return false
	}
	return true
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
