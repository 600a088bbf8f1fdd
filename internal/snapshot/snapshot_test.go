package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/allot/internal/model"
)

func sampleState() model.State {
	return model.State{
		Income: 50000,
		Categories: []model.Category{
			{ID: "c1", Name: "Essentials", Percent: 50, Balance: 25000},
			{ID: "c2", Name: "Savings", Percent: 20, Balance: 0},
			{ID: "c3", Name: "Wants", Percent: 30, Balance: 14987.5},
		},
		Transactions: []model.Transaction{
			{
				ID:         "t2",
				Title:      "Cinema",
				Amount:     -12.5,
				CategoryID: "c3",
				Date:       time.Date(2024, 3, 2, 20, 15, 0, 0, time.UTC),
			},
			{
				ID:         "t1",
				Title:      "Refund",
				Amount:     40,
				CategoryID: "deleted",
				Date:       time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		},
		Goals: []model.Goal{
			{ID: "g1", Name: "Trip", TargetAmount: 12000, Saved: 10000},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	states := map[string]model.State{
		"populated": sampleState(),
		"empty lists": {
			Income:       0,
			Categories:   []model.Category{},
			Transactions: []model.Transaction{},
			Goals:        []model.Goal{},
		},
		"fractional income": {
			Income:       1234.56,
			Categories:   []model.Category{{ID: "x", Name: "Only", Percent: -5, Balance: 0}},
			Transactions: []model.Transaction{},
			Goals:        []model.Goal{{ID: "g", Name: "Zero", TargetAmount: 0, Saved: 0}},
		},
	}

	for name, state := range states {
		t.Run(name, func(t *testing.T) {
			data, err := Marshal(state)
			require.NoError(t, err)

			got, err := Unmarshal(data, model.State{Income: 1})
			require.NoError(t, err)
			assert.Equal(t, state, got)
		})
	}
}

func TestMarshal_Document(t *testing.T) {
	data, err := Marshal(model.State{Income: 10})
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "10", string(doc["income"]))
	assert.Equal(t, "[]", string(doc["categories"]))
	assert.Equal(t, "[]", string(doc["transactions"]))
	assert.Equal(t, "[]", string(doc["goals"]))

	assert.Contains(t, string(data), "\n  \"income\": 10", "document is indented")
}

func TestMarshal_FieldNames(t *testing.T) {
	data, err := Marshal(sampleState())
	require.NoError(t, err)

	for _, key := range []string{`"targetAmount"`, `"saved"`, `"categoryId"`, `"percent"`, `"balance"`, `"title"`, `"date"`} {
		assert.Contains(t, string(data), key)
	}
}

func TestUnmarshal_PartialDocumentKeepsMissingFields(t *testing.T) {
	current := sampleState()

	tests := []struct {
		check func(t *testing.T, got model.State)
		name  string
		doc   string
	}{
		{
			name: "only income",
			doc:  `{"income": 900}`,
			check: func(t *testing.T, got model.State) {
				t.Helper()
				assert.Equal(t, float64(900), got.Income)
				assert.Equal(t, current.Categories, got.Categories)
				assert.Equal(t, current.Transactions, got.Transactions)
				assert.Equal(t, current.Goals, got.Goals)
			},
		},
		{
			name: "only goals",
			doc:  `{"goals": [{"id": "g9", "name": "Car", "targetAmount": 5000, "saved": 10}]}`,
			check: func(t *testing.T, got model.State) {
				t.Helper()
				assert.Equal(t, current.Income, got.Income)
				assert.Equal(t, []model.Goal{{ID: "g9", Name: "Car", TargetAmount: 5000, Saved: 10}}, got.Goals)
				assert.Equal(t, current.Categories, got.Categories)
			},
		},
		{
			name: "null fields are treated as absent",
			doc:  `{"income": null, "categories": null, "transactions": []}`,
			check: func(t *testing.T, got model.State) {
				t.Helper()
				assert.Equal(t, current.Income, got.Income)
				assert.Equal(t, current.Categories, got.Categories)
				assert.Empty(t, got.Transactions)
			},
		},
		{
			name: "empty object changes nothing",
			doc:  `{}`,
			check: func(t *testing.T, got model.State) {
				t.Helper()
				assert.Equal(t, current, got)
			},
		},
		{
			name: "unknown fields are ignored",
			doc:  `{"version": 3, "income": 1}`,
			check: func(t *testing.T, got model.State) {
				t.Helper()
				assert.Equal(t, float64(1), got.Income)
			},
		},
		{
			name: "numeric ids and loose dates are accepted",
			doc: `{"categories": [{"id": 1712345678901, "name": "Rent", "percent": 50}],
				"transactions": [
					{"id": 1712345678902, "title": "Pay", "categoryId": 1712345678901, "amount": 10, "date": 1712345678902},
					{"id": "t2", "title": "Tea", "amount": -2, "date": "3/2/2024, 8:15:00 PM"}
				]}`,
			check: func(t *testing.T, got model.State) {
				t.Helper()
				require.Len(t, got.Categories, 1)
				assert.Equal(t, "1712345678901", got.Categories[0].ID)
				require.Len(t, got.Transactions, 2)
				assert.Equal(t, "1712345678902", got.Transactions[0].ID)
				assert.Equal(t, "1712345678901", got.Transactions[0].CategoryID)
				assert.Equal(t, int64(1712345678902), got.Transactions[0].Date.UnixMilli())
				assert.True(t, got.Transactions[1].Date.IsZero())
			},
		},
		{
			name: "numbers are coerced",
			doc:  `{"income": "2500", "categories": [{"id": "a", "name": "A", "percent": "40", "balance": "lots"}]}`,
			check: func(t *testing.T, got model.State) {
				t.Helper()
				assert.Equal(t, float64(2500), got.Income)
				assert.Equal(t, []model.Category{{ID: "a", Name: "A", Percent: 40, Balance: 0}}, got.Categories)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tt.doc), current)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}

	assert.Equal(t, sampleState(), current, "current state is never modified")
}

func TestUnmarshal_InvalidFormat(t *testing.T) {
	current := sampleState()

	docs := map[string]string{
		"not json":              `income=5`,
		"truncated":             `{"income": 5,`,
		"top level array":       `[1, 2, 3]`,
		"categories not a list": `{"income": 5, "categories": {"id": "a"}}`,
		"goals not objects":     `{"goals": [1, 2]}`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			got, err := Unmarshal([]byte(doc), current)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
			assert.Equal(t, current, got)
		})
	}
}

func TestExportImport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleState()))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	got, err := Import(&buf, model.State{})
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExport_WriteError(t *testing.T) {
	err := Export(failingWriter{}, sampleState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
