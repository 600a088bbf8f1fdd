// Package tui implements the interactive budget dashboard.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/allot/internal/cli"
	"github.com/Veraticus/allot/internal/model"
)

// Budget is the part of the engine the dashboard drives.
type Budget interface {
	State() model.State
	Distribute(ctx context.Context) error
	Reload(ctx context.Context) error
}

// Model holds the dashboard state.
type Model struct {
	ctx        context.Context
	budget     Budget
	lastError  error
	keymap     KeyMap
	help       help.Model
	progress   progress.Model
	status     string
	categories table.Model
	state      model.State
	config     Config
	width      int
	height     int
	busy       bool
	quitting   bool
}

func newModel(ctx context.Context, b Budget, cfg Config) Model {
	m := Model{
		ctx:      ctx,
		budget:   b,
		config:   cfg,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:    cfg.Width,
		height:   cfg.Height,
		state:    b.State(),
	}

	styles := table.DefaultStyles()
	styles.Header = cfg.Theme.TableHeader
	styles.Selected = cfg.Theme.Selected

	m.categories = table.New(
		table.WithColumns(categoryColumns(cfg.Width)),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.categories.SetColumns(categoryColumns(msg.Width))
		m.refresh()
		return m, nil

	case actionDoneMsg:
		m.busy = false
		m.state = msg.state
		m.refresh()
		if msg.err != nil {
			slog.Error("Dashboard action failed", "action", msg.action, "error", msg.err)
			m.lastError = msg.err
			m.status = ""
			return m, nil
		}
		m.lastError = nil
		m.status = statusFor(msg.action)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Distribute):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Distributing..."
		return m, distributeCmd(m.ctx, m.budget)

	case key.Matches(msg, m.keymap.Reload):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Reloading..."
		return m, reloadCmd(m.ctx, m.budget)
	}

	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

// refresh rebuilds the table rows from the current state.
func (m *Model) refresh() {
	rows := make([]table.Row, 0, len(m.state.Categories))
	for _, c := range m.state.Categories {
		rows = append(rows, table.Row{c.Name, cli.FormatPercent(c.Percent), cli.FormatMoney(c.Balance)})
	}
	m.categories.SetRows(rows)

	height := len(rows) + 3
	if limit := m.height / 3; limit > 1 && height > limit {
		height = limit
	}
	m.categories.SetHeight(height)

	m.progress.Width = max(10, min(40, m.width/3))
}

func categoryColumns(width int) []table.Column {
	name := max(12, width/3)
	return []table.Column{
		{Title: "Category", Width: name},
		{Title: "Percent", Width: 9},
		{Title: "Balance", Width: 12},
	}
}

func statusFor(action string) string {
	switch action {
	case actionDistribute:
		return "Income distributed"
	case actionReload:
		return "Budget reloaded"
	}
	return ""
}
