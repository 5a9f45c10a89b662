package main

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the list-view key bindings. Implements help.KeyMap so the
// bubbles help component can render the hint line.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	HalfUp     key.Binding
	HalfDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Expand     key.Binding
	Hide       key.Binding
	Restore    key.Binding
	RestoreAll key.Binding
	Search     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		HalfUp:     key.NewBinding(key.WithKeys("K", "ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		HalfDown:   key.NewBinding(key.WithKeys("J", "ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Expand:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "expand")),
		Hide:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide message")),
		Restore:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "restore run")),
		RestoreAll: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "restore all")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to uuid")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings for the one-line help hint.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Hide, k.Restore, k.Search, k.Help, k.Quit}
}

// FullHelp returns the bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.HalfDown, k.HalfUp, k.Top, k.Bottom},
		{k.Expand, k.Hide, k.Restore, k.RestoreAll, k.Search},
		{k.Help, k.Quit},
	}
}
