// Package deck is the interactive card table: a bubbletea model that routes
// key presses into game.Game and redraws from its cards and display flags.
package deck

import (
	"context"

	"flipdeck/cmd/flipdeck/ui"
	"flipdeck/internal/countdown"
	"flipdeck/internal/game"
	"flipdeck/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// Focus is the component receiving key presses.
type Focus int

const (
	FocusSentence Focus = iota // sentence input
	FocusCards                 // card table and game keys
	FocusMinutes               // custom duration input
)

func (f Focus) String() string {
	switch f {
	case FocusSentence:
		return "sentence"
	case FocusCards:
		return "cards"
	case FocusMinutes:
		return "minutes"
	default:
		return "unknown"
	}
}

// tickMsg carries one countdown second from the handle that produced it.
type tickMsg struct {
	handle *countdown.Handle
}

// ThemeMsg switches the palette, typically after a config reload.
type ThemeMsg struct {
	Theme string
}

// Config holds what the model needs beyond the game itself.
type Config struct {
	Theme string
}

// Model is the bubbletea model for the card table.
type Model struct {
	ctx  context.Context
	game *game.Game

	styles   ui.Styles
	theme    string
	renderer *glamour.TermRenderer

	sentence textinput.Model
	minutes  textinput.Model
	keys     keyMap
	help     help.Model

	focus    Focus
	cursor   int
	showHelp bool

	// handle is the live countdown; ticks from any other handle are stale.
	handle *countdown.Handle

	alert  string
	status string
	err    error

	width  int
	height int

	log *zap.Logger
}

// New builds the model. A countdown interrupted in an earlier session is
// resumed immediately.
func New(ctx context.Context, g *game.Game, cfg Config) Model {
	sentence := textinput.New()
	sentence.Placeholder = "Type a sentence and press enter"
	sentence.CharLimit = 280
	sentence.Width = 60
	sentence.Focus()

	minutes := textinput.New()
	minutes.Placeholder = "minutes"
	minutes.CharLimit = 4
	minutes.Width = 8
	minutes.Validate = digitsOnly

	m := Model{
		ctx:      ctx,
		game:     g,
		theme:    cfg.Theme,
		styles:   ui.NewStyles(ui.ThemeFor(cfg.Theme)),
		sentence: sentence,
		minutes:  minutes,
		keys:     newKeyMap(),
		help:     help.New(),
		focus:    FocusSentence,
		width:    80,
		log:      logging.Get(logging.CategoryUI),
	}
	m.renderer = newRenderer(m.styles.Theme, 72)

	h, err := g.Restore(ctx)
	if err != nil {
		m.err = err
	}
	if h != nil {
		m.handle = h
		m.setFocus(FocusCards)
		m.log.Info("resumed countdown")
	}
	return m
}

// Init starts the cursor blink and, when a countdown was resumed, its ticks.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.handle != nil {
		cmds = append(cmds, waitForTick(m.handle))
	}
	return tea.Batch(cmds...)
}

// Focus reports the focused component.
func (m Model) Focus() Focus { return m.focus }

// waitForTick blocks on the handle in a command goroutine. A stopped handle
// yields a nil message, which bubbletea drops.
func waitForTick(h *countdown.Handle) tea.Cmd {
	return func() tea.Msg {
		if !h.Wait() {
			return nil
		}
		return tickMsg{handle: h}
	}
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.sentence.Blur()
	m.minutes.Blur()
	switch f {
	case FocusSentence:
		m.sentence.Focus()
	case FocusMinutes:
		m.minutes.Focus()
	}
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return game.ErrInvalidDuration
		}
	}
	return nil
}

func newRenderer(theme ui.Theme, width int) *glamour.TermRenderer {
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}
