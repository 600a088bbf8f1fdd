package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals, rounding half away
// from zero. Non-finite values render as 0.00.
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	s := decimal.NewFromFloat(amount).StringFixed(2)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// FormatPercent renders a percent without trailing zeros, e.g. "12.5%".
func FormatPercent(percent float64) string {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		percent = 0
	}
	return decimal.NewFromFloat(percent).Round(2).String() + "%"
}

// RenderTable lays out rows under headers with the table styles. An empty
// row set renders the headers with a single placeholder line.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	for _, r := range rows {
		t.Row(r...)
	}

	out := strings.TrimRight(t.Render(), "\n")
	if len(rows) == 0 {
		out += "\n" + SubtleStyle.Render("  (none)")
	}
	return out
}
