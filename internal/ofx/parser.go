// Package ofx reads OFX/QFX bank and credit card statements into
// transaction requests for the ledger.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/model"
)

// namespace seeds the IDs derived from statement FITIDs, so importing the
// same statement twice yields the same transaction IDs.
var namespace = uuid.MustParse("6f1c2f0e-3b7a-4f5e-9d7c-0a4e2b9d8c11")

var (
	// ofxgo only accepts upper-case severities; SGML files omit the closing tag.
	severityRegex = regexp.MustCompile(`(?i)(<SEVERITY>)\s*(info|warn|error)\b`)
	// Opening tags at the end of a line that lost their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		parts := severityRegex.FindStringSubmatch(match)
		return parts[1] + strings.ToUpper(parts[2])
	})
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file. Requests are ordered oldest first so
// that recording them in order leaves the newest at the front of the log.
// Every request is assigned to categoryID, which may be empty. A FITID
// repeated within the file is imported once.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader, categoryID string) ([]budget.TransactionRequest, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var (
		requests           []budget.TransactionRequest
		bankStmts, ccStmts int
	)
	seen := make(map[string]bool)

	add := func(accountID string, list *ofxgo.TransactionList) {
		if list == nil {
			return
		}
		for _, tx := range list.Transactions {
			req := p.convertTransaction(tx, accountID, categoryID)
			if seen[req.ID] {
				slog.Debug("Skipping duplicate OFX transaction", "fitid", tx.FiTID, "account", accountID)
				continue
			}
			seen[req.ID] = true
			requests = append(requests, req)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			add(string(stmt.BankAcctFrom.AcctID), stmt.BankTranList)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			add(string(stmt.CCAcctFrom.AcctID), stmt.BankTranList)
		}
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].Date.Before(requests[j].Date)
	})

	slog.Info("Parsed OFX file",
		"total_transactions", len(requests),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return requests, nil
}

// convertTransaction converts an OFX transaction to a ledger request.
// OFX uses negative amounts for debits.
func (p *Parser) convertTransaction(tx ofxgo.Transaction, accountID, categoryID string) budget.TransactionRequest {
	amount, _ := tx.TrnAmt.Float64()

	typ := model.TransactionIncome
	if amount < 0 {
		typ = model.TransactionExpense
		amount = -amount
	}

	return budget.TransactionRequest{
		ID:         TransactionID(accountID, string(tx.FiTID)),
		Date:       tx.DtPosted.Time,
		Title:      p.extractMerchantName(tx),
		CategoryID: categoryID,
		Type:       typ,
		Amount:     amount,
	}
}

// TransactionID derives a stable transaction ID from an account and FITID.
func TransactionID(accountID, fitID string) string {
	return uuid.NewSHA1(namespace, []byte(accountID+"/"+fitID)).String()
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually cleaner than NAME.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// "MM/DD " date prefix
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
