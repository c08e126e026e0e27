package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"startpage/internal/ui/input/types"
)

// keyMap describes the bindings for the help line. Dispatch itself happens
// in the input modes.
type keyMap struct {
	mode types.Mode

	Focus   key.Binding
	Move    key.Binding
	Submit  key.Binding
	Dismiss key.Binding
	Engine  key.Binding
	Choose  key.Binding
	Delete  key.Binding
	Clear   key.Binding
	History key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Focus:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Move:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Engine:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "engine")),
		Choose:  key.NewBinding(key.WithKeys("enter", "1-7"), key.WithHelp("enter/1-7", "select")),
		Delete:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete entry")),
		Clear:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear history")),
		History: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "history")),
		Help:    key.NewBinding(key.WithKeys("?", "f1"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch k.mode {
	case types.ModeSearch:
		return []key.Binding{k.Move, k.Submit, k.Engine, k.Delete, k.Clear, k.Dismiss}
	case types.ModeEngineMenu:
		return []key.Binding{k.Move, k.Choose, k.Dismiss}
	default:
		return []key.Binding{k.Focus, k.Engine, k.History, k.Help, k.Quit}
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
