package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/dateprompt/internal/prompt"
)

// KeyMap lists the bindings the date prompt understands. Only Submit and
// Quit are matched here; the rest exist for the help footer since the widget
// interprets arrow keys itself.
type KeyMap struct {
	Move   key.Binding
	Adjust key.Binding
	Jump   key.Binding
	Clear  key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Move: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "field"),
		),
		Adjust: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "adjust"),
		),
		Jump: key.NewBinding(
			key.WithKeys("shift+up", "shift+down", "alt+shift+up", "alt+shift+down"),
			key.WithHelp("shift(+alt)+↑/↓", "±10 (±100)"),
		),
		Clear: key.NewBinding(
			key.WithKeys("delete", "backspace"),
			key.WithHelp("del", "clear"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Adjust, k.Submit, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Adjust, k.Jump},
		{k.Clear, k.Submit, k.Quit},
	}
}

// TranslateKey converts a bubbletea key message into the key the widget
// consumes. Shifted arrows set Shift, alt sets Meta.
func TranslateKey(msg tea.KeyMsg) prompt.Key {
	k := prompt.Key{Meta: msg.Alt}

	switch msg.Type {
	case tea.KeyUp:
		k.Name = "up"
	case tea.KeyDown:
		k.Name = "down"
	case tea.KeyLeft:
		k.Name = "left"
	case tea.KeyRight:
		k.Name = "right"
	case tea.KeyShiftUp:
		k.Name, k.Shift = "up", true
	case tea.KeyShiftDown:
		k.Name, k.Shift = "down", true
	case tea.KeyShiftLeft:
		k.Name, k.Shift = "left", true
	case tea.KeyShiftRight:
		k.Name, k.Shift = "right", true
	case tea.KeyCtrlShiftUp:
		k.Name, k.Shift, k.Ctrl = "up", true, true
	case tea.KeyCtrlShiftDown:
		k.Name, k.Shift, k.Ctrl = "down", true, true
	case tea.KeyDelete:
		k.Name = "delete"
	case tea.KeyBackspace:
		k.Name = "backspace"
	case tea.KeyRunes, tea.KeySpace:
		k.Name = string(msg.Runes)
	default:
		k.Name = msg.Type.String()
	}

	return k
}
