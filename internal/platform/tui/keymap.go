package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings for the calculator screen.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding
	Right     key.Binding
	Minus10   key.Binding
	Minus1    key.Binding
	Zero      key.Binding
	Plus1     key.Binding
	Plus10    key.Binding
	Calculate key.Binding
	Reset     key.Binding
	Save      key.Binding
	History   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Plus1, k.Minus1, k.Calculate, k.Save, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right},
		{k.Minus10, k.Minus1, k.Zero, k.Plus1, k.Plus10},
		{k.Calculate, k.Reset, k.Save, k.History},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
// Digits and separators are left free for the numeric fields.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/down", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab/up", "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "prev option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next option"),
		),
		Minus10: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "-10 candies"),
		),
		Minus1: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "-1 candy"),
		),
		Zero: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zero candies"),
		),
		Plus1: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "+1 candy"),
		),
		Plus10: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "+10 candies"),
		),
		Calculate: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter/c", "calculate"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// isFieldKey reports whether a key edits a numeric text field.
func isFieldKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyHome, tea.KeyEnd, tea.KeyCtrlA, tea.KeyCtrlE:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '.' && r != ',' {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}
