package dateprompt

import "github.com/charmbracelet/lipgloss"

// ClearHint is appended while a clearable prompt is being edited
const ClearHint = " (<delete> to clear) "

// Styles decorates the rendered prompt
type Styles struct {
	Final    lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns cyan for answered values, reverse video for the
// selected segment, and faint text for untouched values and hints.
func DefaultStyles() Styles {
	return Styles{
		Final:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Selected: lipgloss.NewStyle().Reverse(true),
		Dim:      lipgloss.NewStyle().Faint(true),
		Hint:     lipgloss.NewStyle().Faint(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
