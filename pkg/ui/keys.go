package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the viewer.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Query     key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Open      key.Binding
	Copy      key.Binding
	Back      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next control"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous control"),
		),
		Query: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "change"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[/]", "page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
	}
}

type searchHelp struct {
	keys KeyMap
}

func (h searchHelp) ShortHelp() []key.Binding {
	return []key.Binding{
		h.keys.NextFocus, h.keys.Left, h.keys.Select, h.keys.PrevPage,
		h.keys.Open, h.keys.Copy, h.keys.Quit,
	}
}

func (h searchHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

type detailHelp struct {
	keys KeyMap
}

func (h detailHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Back, h.keys.Open, h.keys.Copy, h.keys.Quit}
}

func (h detailHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
