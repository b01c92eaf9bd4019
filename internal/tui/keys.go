package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Reset    key.Binding
	Settings key.Binding
	Records  key.Binding
	Theme    key.Binding
	Quit     key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Clear    key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Reset:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "new text")),
		Settings: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "character set")),
		Records:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "records")),
		Theme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear records")),
		Confirm:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

// practiceHelp implements help.KeyMap for the practice view.
type practiceHelp struct{ k keyMap }

func (h practiceHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Reset, h.k.Settings, h.k.Records, h.k.Theme, h.k.Quit}
}

func (h practiceHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

type pickerHelp struct{ k keyMap }

func (h pickerHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Select, h.k.Back}
}

func (h pickerHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

type recordsHelp struct {
	k       keyMap
	confirm bool
}

func (h recordsHelp) ShortHelp() []key.Binding {
	if h.confirm {
		return []key.Binding{h.k.Confirm, h.k.Cancel}
	}
	return []key.Binding{h.k.Up, h.k.Down, h.k.Clear, h.k.Back}
}

func (h recordsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
