package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/allot/internal/budget"
	"github.com/Veraticus/allot/internal/cli"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	theme := m.config.Theme
	sections := []string{
		theme.Title.Render(cli.WalletIcon+" allot") + "  " +
			theme.Muted.Render("income ") + theme.Bold.Render(cli.FormatMoney(m.state.Income)),
		m.renderCategories(),
		m.renderGoals(),
		m.renderTransactions(),
		m.renderStatus(),
		m.help.View(m.keymap),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCategories() string {
	theme := m.config.Theme
	header := theme.Subtitle.Render("Categories")

	if len(m.state.Categories) == 0 {
		return theme.RoundedBox.Render(header + "\n" + theme.Muted.Render("No categories"))
	}

	total := budget.TotalPercent(m.state.Categories)
	footer := theme.Muted.Render(fmt.Sprintf("allocated %s of %s",
		cli.FormatMoney(budget.TotalBalance(m.state.Categories)),
		cli.FormatPercent(total)))

	return theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.categories.View(),
		footer,
	))
}

func (m Model) renderGoals() string {
	theme := m.config.Theme
	lines := []string{theme.Subtitle.Render(cli.GoalIcon + " Goals")}

	if len(m.state.Goals) == 0 {
		lines = append(lines, theme.Muted.Render("No goals"))
	}
	for _, g := range m.state.Goals {
		lines = append(lines, fmt.Sprintf("%-16s %s %s / %s",
			truncate(g.Name, 16),
			m.progress.ViewAs(budget.GoalProgress(g)),
			cli.FormatMoney(g.Saved),
			cli.FormatMoney(g.TargetAmount)))
	}

	return theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderTransactions() string {
	theme := m.config.Theme
	lines := []string{theme.Subtitle.Render("Latest transactions")}

	txns := m.state.Transactions
	if len(txns) > m.config.TransactionLimit {
		txns = txns[:m.config.TransactionLimit]
	}
	if len(txns) == 0 {
		lines = append(lines, theme.Muted.Render("No transactions"))
	}

	for _, t := range txns {
		amount := cli.FormatMoney(t.Amount)
		if t.IsExpense() {
			amount = theme.StatusError.Render(amount)
		} else {
			amount = theme.StatusSuccess.Render("+" + amount)
		}

		category := budget.CategoryLabel(m.state.Categories, t.CategoryID)
		lines = append(lines, fmt.Sprintf("%s  %-20s %-14s %s",
			t.Date.Format("2006-01-02"),
			truncate(t.Title, 20),
			truncate(category, 14),
			amount))
	}

	return theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	theme := m.config.Theme
	switch {
	case m.lastError != nil:
		return theme.StatusError.Render(cli.ErrorIcon + " " + m.lastError.Error())
	case m.status != "":
		return theme.StatusInfo.Render(m.status)
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
