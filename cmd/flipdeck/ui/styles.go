// Package ui provides the visual styling for the flipdeck terminal UI,
// with light and dark palettes.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted by config (ui.theme) and FLIPDECK_THEME.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var (
	// Light mode
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#1d2433")
	LightPrimary    = lipgloss.Color("#3b4a6b")
	LightAccent     = lipgloss.Color("#d9822b") // card back
	LightMuted      = lipgloss.Color("#8a93a3")
	LightBorder     = lipgloss.Color("#c9ced6")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark mode
	DarkBackground = lipgloss.Color("#151a23")
	DarkForeground = lipgloss.Color("#eceff4")
	DarkPrimary    = lipgloss.Color("#88a0d0")
	DarkAccent     = lipgloss.Color("#e89b4c")
	DarkMuted      = lipgloss.Color("#5c6677")
	DarkBorder     = lipgloss.Color("#323b4a")
	DarkCard       = lipgloss.Color("#1f2633")

	// Semantic colors, same in both modes
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured theme name. "auto" and unknown names
// fall back to DetectTheme.
func ThemeFor(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeLight:
		return LightTheme()
	case ThemeDark:
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG and
// defaults to light mode.
func DetectTheme() Theme {
	// "foreground;background", sometimes with a middle field
	if v := os.Getenv("COLORFGBG"); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}
	return LightTheme()
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style

	// Cards
	CardFace    lipgloss.Style
	CardBack    lipgloss.Style
	CardFocused lipgloss.Style

	// Timer
	Clock     lipgloss.Style
	ClockDone lipgloss.Style

	// Status
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// CardWidth is the outer width of one card, borders included.
const CardWidth = 26

// NewStyles creates a Styles instance for theme.
func NewStyles(theme Theme) Styles {
	card := lipgloss.NewStyle().
		Width(CardWidth-2).
		Height(3).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		CardFace: card.
			Background(theme.Card).
			Foreground(theme.Foreground),

		CardBack: card.
			Foreground(theme.Accent).
			BorderForeground(theme.Accent).
			Align(lipgloss.Center),

		CardFocused: card.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary),

		Clock: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		ClockDone: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true).
			Padding(0, 1),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),
	}
}
