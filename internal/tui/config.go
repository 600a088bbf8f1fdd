package tui

import "github.com/Veraticus/allot/internal/tui/themes"

// Config holds TUI configuration.
type Config struct {
	Theme            themes.Theme
	Width            int
	Height           int
	TransactionLimit int
	AltScreen        bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		Width:            80,
		Height:           24,
		TransactionLimit: 8,
		AltScreen:        true,
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size, used until the first resize.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTransactionLimit sets how many of the latest transactions are shown.
func WithTransactionLimit(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.TransactionLimit = n
		}
	}
}

// WithAltScreen toggles rendering in the terminal's alternate screen.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
