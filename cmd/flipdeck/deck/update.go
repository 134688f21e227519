package deck

import (
	"errors"
	"fmt"

	"flipdeck/cmd/flipdeck/ui"
	"flipdeck/internal/game"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		wrap := msg.Width - 8
		if wrap < 20 {
			wrap = 20
		}
		m.renderer = newRenderer(m.styles.Theme, wrap)
		return m, nil

	case ThemeMsg:
		m.theme = msg.Theme
		m.styles = ui.NewStyles(ui.ThemeFor(msg.Theme))
		m.renderer = newRenderer(m.styles.Theme, m.wrapWidth())
		m.status = fmt.Sprintf("theme: %s", msg.Theme)
		m.log.Debug("theme changed", zap.String("theme", msg.Theme))
		return m, nil

	case tickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		next, cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return next, cmd
		}
		m = next
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusSentence:
		m.sentence, cmd = m.sentence.Update(msg)
	case FocusMinutes:
		m.minutes, cmd = m.minutes.Update(msg)
	}
	return m, cmd
}

func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if m.handle == nil || msg.handle != m.handle {
		return m, nil
	}

	ev, err := m.game.Tick(m.ctx)
	if err != nil {
		m.err = err
	}
	if ev.Done {
		m.handle = nil
		if m.focus == FocusMinutes {
			m.setFocus(FocusCards)
		}
		return m, nil
	}
	return m, waitForTick(m.handle)
}

// handleKeyMsg processes keyboard input. handled=false means the key falls
// through to the focused text input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit, true
	}

	// Any key closes the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil, true
	}

	switch m.focus {
	case FocusSentence:
		switch {
		case key.Matches(msg, m.keys.Add):
			return m.addSentence()
		case key.Matches(msg, m.keys.NextFocus), key.Matches(msg, m.keys.Back):
			m.setFocus(FocusCards)
			return m, nil, true
		}
		return m, nil, false

	case FocusMinutes:
		switch {
		case msg.Type == tea.KeyEnter:
			return m.startTimer()
		case key.Matches(msg, m.keys.NextFocus):
			m.setFocus(FocusSentence)
			return m, nil, true
		case key.Matches(msg, m.keys.Back):
			m.setFocus(FocusCards)
			return m, nil, true
		}
		return m, nil, false
	}

	return m.handleCardKey(msg)
}

func (m Model) handleCardKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil, true

	case key.Matches(msg, m.keys.NextFocus):
		if m.game.Display().CustomEntryVisible && m.handle == nil {
			m.setFocus(FocusMinutes)
		} else {
			m.setFocus(FocusSentence)
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Start):
		m.err = m.game.StartRound(m.ctx)
		m.cursor = 0
		m.status = ""
		return m, nil, true

	case key.Matches(msg, m.keys.Reset):
		m.err = m.game.ResetAll(m.ctx)
		m.handle = nil
		m.cursor = 0
		m.alert = ""
		m.status = "deck cleared"
		m.minutes.Reset()
		return m, nil, true

	case key.Matches(msg, m.keys.PickTime):
		return m.pickTime()

	case key.Matches(msg, m.keys.StartTimer):
		return m.startTimer()

	case key.Matches(msg, m.keys.Reveal):
		cards := m.game.Cards()
		if m.cursor < len(cards) {
			m.err = m.game.Reveal(m.ctx, cards[m.cursor].Index)
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Remove):
		cards := m.game.Cards()
		if m.cursor < len(cards) && cards[m.cursor].Removable {
			m.err = m.game.Remove(m.ctx, cards[m.cursor].Index)
			m.clampCursor()
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
		return m, nil, true
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
		return m, nil, true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.columns())
		return m, nil, true
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.columns())
		return m, nil, true
	}

	// Swallow unbound keys so they never reach a blurred input.
	return m, nil, true
}

func (m Model) addSentence() (Model, tea.Cmd, bool) {
	added, err := m.game.AddSentence(m.ctx, m.sentence.Value())
	m.err = err
	if added {
		m.sentence.Reset()
		m.status = fmt.Sprintf("%d sentences", len(m.game.State().Sentences))
	}
	return m, nil, true
}

func (m Model) pickTime() (Model, tea.Cmd, bool) {
	choice, err := m.game.PickDuration(m.ctx)
	if errors.Is(err, game.ErrTimerBusy) {
		m.status = "timer is running"
		return m, nil, true
	}
	m.err = err
	m.alert = ""
	if choice.Custom {
		m.minutes.Reset()
		m.setFocus(FocusMinutes)
	}
	return m, nil, true
}

func (m Model) startTimer() (Model, tea.Cmd, bool) {
	h, err := m.game.StartTimer(m.ctx, m.minutes.Value())
	switch {
	case errors.Is(err, game.ErrInvalidDuration):
		m.alert = game.InvalidDurationAlert
		return m, nil, true
	case errors.Is(err, game.ErrTimerBusy):
		m.status = "timer is running"
		return m, nil, true
	}
	m.err = err
	if h == nil {
		return m, nil, true
	}

	m.handle = h
	m.alert = ""
	m.minutes.Reset()
	m.setFocus(FocusCards)
	return m, waitForTick(h), true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.game.Cards())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) columns() int {
	cols := (m.width - 4) / ui.CardWidth
	if cols < 1 {
		return 1
	}
	return cols
}

func (m Model) wrapWidth() int {
	if m.width-8 < 20 {
		return 20
	}
	return m.width - 8
}
