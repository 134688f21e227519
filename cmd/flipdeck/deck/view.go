package deck

import (
	"strings"

	"flipdeck/cmd/flipdeck/ui"
	"flipdeck/internal/countdown"
	"flipdeck/internal/game"

	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `# flipdeck

Add sentences, then **start a game** to shuffle them face-down.
Reveal cards one at a time and remove the ones you are done with.

| Key | Action |
|---|---|
| enter | add the typed sentence |
| tab / esc | move between the input and the cards |
| s | start a game (shuffle, all face-down) |
| enter / space | reveal the focused card |
| x | remove the focused card (revealed only) |
| arrows | move between cards |
| t | pick a random time |
| T | start the timer |
| R | reset everything |
| q / ctrl+c | quit |

The timer beeps at 3, 2 and 1 seconds and plays a final tone at zero.
It cannot be paused; reset clears it.
`

func (m Model) View() string {
	if m.showHelp {
		return m.styles.Content.Render(m.safeRenderMarkdown(helpMarkdown))
	}

	sections := []string{
		m.renderHeader(),
		m.renderInput(),
		m.renderTimer(),
		m.renderCards(),
		m.renderStatus(),
		m.styles.Footer.Render(m.help.View(m.keys)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil {
		if out, err := m.renderer.Render(content); err == nil {
			return out
		}
	}
	return content
}

func (m Model) renderHeader() string {
	return m.styles.Header.Render(" flipdeck ")
}

func (m Model) renderInput() string {
	prompt := m.styles.Muted.Render("› ")
	if m.focus == FocusSentence {
		prompt = m.styles.Prompt.Render("› ")
	}
	return m.styles.Content.Render(prompt + m.sentence.View())
}

func (m Model) renderTimer() string {
	d := m.game.Display()

	label := d.Time
	if label == "" {
		label = "--"
	}
	clock := m.styles.Clock.Render(label)
	if d.Time == countdown.DoneLabel {
		clock = m.styles.ClockDone.Render(label)
	}

	parts := []string{m.styles.Muted.Render("Time"), clock}
	if d.CustomEntryVisible && !d.Running {
		parts = append(parts, m.minutes.View())
	}
	if m.alert != "" {
		parts = append(parts, m.styles.Error.Render(m.alert))
	}
	if !d.ControlsEnabled {
		parts = append(parts, m.styles.Muted.Render("(running)"))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(parts, " "))
}

func (m Model) renderCards() string {
	cards := m.game.Cards()
	if len(cards) == 0 {
		return m.styles.Content.Render(m.styles.Muted.Render("No sentences yet."))
	}

	cols := m.columns()
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, m.renderCard(cards[i], i == m.cursor && m.focus == FocusCards))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderCard(c game.Card, focused bool) string {
	style := m.styles.CardFace
	body := c.Text
	if c.FaceDown() {
		style = m.styles.CardBack
		body = "?"
	}
	if c.Removable {
		body += "\n" + m.styles.Muted.Render("[x] remove")
	}
	if focused {
		style = m.styles.CardFocused.Foreground(style.GetForeground())
	}
	return style.Width(ui.CardWidth - 2).Render(body)
}

func (m Model) renderStatus() string {
	switch {
	case m.err != nil:
		return m.styles.Content.Render(m.styles.Error.Render(m.err.Error()))
	case m.status != "":
		return m.styles.Content.Render(m.styles.Muted.Render(m.status))
	}
	return ""
}
