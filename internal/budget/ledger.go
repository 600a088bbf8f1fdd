package budget

import (
	"math"
	"time"

	"github.com/Veraticus/allot/internal/model"
	"github.com/google/uuid"
)

// TransactionRequest describes a transaction to record. ID and Date are
// generated when left empty.
type TransactionRequest struct {
	Date       time.Time
	ID         string
	Title      string
	CategoryID string
	Type       model.TransactionType
	Amount     float64
}

// SignedAmount applies the sign of the transaction type to the absolute
// amount: expenses are negative, everything else positive.
func SignedAmount(amount float64, typ model.TransactionType) float64 {
	abs := math.Abs(model.Finite(amount))
	if typ == model.TransactionExpense {
		return -abs
	}
	return abs
}

// AddTransaction records a transaction at the front of the log and applies
// it to the referenced category. The category balance is floored at zero:
// an expense larger than the balance empties the category without error.
// An empty or unknown category ID records the transaction without touching
// any balance.
func AddTransaction(state model.State, req TransactionRequest) (model.Transaction, model.State) {
	txn := model.Transaction{
		ID:         req.ID,
		Title:      req.Title,
		Amount:     SignedAmount(req.Amount, req.Type),
		CategoryID: req.CategoryID,
		Date:       req.Date,
	}
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}

	next := state.Clone()
	next.Transactions = append([]model.Transaction{txn}, next.Transactions...)

	if txn.CategoryID != "" {
		if i := indexOfCategory(next.Categories, txn.CategoryID); i >= 0 {
			next.Categories[i].Balance = math.Max(0, next.Categories[i].Balance+txn.Amount)
		}
	}

	return txn, next
}
