package model

import (
	"encoding/json"
	"time"
)

// TransactionType selects the sign applied to a transaction amount.
type TransactionType string

const (
	// TransactionExpense records money leaving a category.
	TransactionExpense TransactionType = "expense"
	// TransactionIncome records money entering a category.
	TransactionIncome TransactionType = "income"
)

// Transaction is a signed amount applied once to a category balance.
// CategoryID is a weak reference: it may be empty, or dangle after the
// category is deleted.
type Transaction struct {
	Date       time.Time `json:"date"`
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CategoryID string    `json:"categoryId"`
	Amount     float64   `json:"amount"`
}

// IsExpense reports whether the transaction took money out.
func (t Transaction) IsExpense() bool {
	return t.Amount < 0
}

// UnmarshalJSON decodes a transaction, coercing a non-numeric amount to 0.
// Dates that are neither RFC 3339 nor Unix milliseconds decode as the zero
// time.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date       json.RawMessage `json:"date"`
		ID         json.RawMessage `json:"id"`
		Title      json.RawMessage `json:"title"`
		CategoryID json.RawMessage `json:"categoryId"`
		Amount     json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Transaction{
		Date:       CoerceTime(raw.Date),
		ID:         CoerceString(raw.ID),
		Title:      CoerceString(raw.Title),
		CategoryID: CoerceString(raw.CategoryID),
		Amount:     CoerceNumber(raw.Amount),
	}
	return nil
}
