package deck

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add        key.Binding
	Start      key.Binding
	Reset      key.Binding
	PickTime   key.Binding
	StartTimer key.Binding
	Reveal     key.Binding
	Remove     key.Binding
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	NextFocus  key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add sentence")),
		Start:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start game")),
		Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all")),
		PickTime:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "random time")),
		StartTimer: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "start timer")),
		Reveal:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "reveal")),
		Remove:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "move")),
		Right:      key.NewBinding(key.WithKeys("right", "l")),
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		NextFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to cards")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Reveal, k.Remove, k.PickTime, k.StartTimer, k.NextFocus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.NextFocus, k.Back},
		{k.Start, k.Reveal, k.Remove, k.Left},
		{k.PickTime, k.StartTimer, k.Reset},
		{k.Help, k.Quit},
	}
}
