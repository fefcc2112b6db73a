package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Submit    key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
	Interrupt key.Binding
	Back      key.Binding

	// Lists and settings
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Edit   key.Binding
	Save   key.Binding
	Reset  key.Binding

	// Provider error screen
	Retry    key.Binding
	Settings key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "interpret"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear selection"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	Save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rerun setup"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "settings"),
	),
}

// footerKeys adapts a fixed binding list to help.KeyMap.
type footerKeys []key.Binding

func (f footerKeys) ShortHelp() []key.Binding { return f }

func (f footerKeys) FullHelp() [][]key.Binding { return [][]key.Binding{f} }
