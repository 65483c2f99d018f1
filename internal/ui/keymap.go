package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings shown in the help bar
type keyMap struct {
	Submit  key.Binding
	Nav     key.Binding
	Dismiss key.Binding
	Clear   key.Binding
	Open    key.Binding
	Recent  key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search/pick")),
		Nav:     key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Clear:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
		Open:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open document")),
		Recent:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "recent")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Nav, k.Dismiss, k.Clear, k.Open, k.Recent, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Nav, k.Dismiss},
		{k.Clear, k.Open, k.Recent, k.Quit},
	}
}
