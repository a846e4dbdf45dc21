// Package prompt holds the contracts between a single interactive question and
// the host that runs it: key events, the render sink, cursor visibility,
// validation and the session loop that ties them together.
package prompt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Key is a single keypress as delivered by the host's event source
type Key struct {
	Name  string
	Shift bool
	Meta  bool
	Ctrl  bool
}

// EventType distinguishes keypresses from line submissions
type EventType int

const (
	EventKeypress EventType = iota
	EventLine
)

// Event is one item of the host's event stream
type Event struct {
	Type EventType
	Key  Key
}

// Keypress builds a keypress event
func Keypress(name string) Event {
	return Event{Type: EventKeypress, Key: Key{Name: name}}
}

// Line builds a line-submitted event
func Line() Event {
	return Event{Type: EventLine}
}

// Screen is the render sink. Render redraws the prompt area with a main
// message and an optional bottom line; Done releases the area so later
// output starts below it.
type Screen interface {
	Render(content, bottom string)
	Done()
}

// Cursor toggles terminal cursor visibility
type Cursor interface {
	Hide()
	Show()
}

// Terminal is the line handle a prompt is constructed with
type Terminal interface {
	Screen
	Cursor
	Events() <-chan Event
}

// Answers are the values collected by earlier questions, keyed by question name
type Answers map[string]any

// Status is the lifecycle state of a prompt
type Status string

const (
	StatusEditing  Status = "editing"
	StatusAnswered Status = "answered"
)

// Question carries the fields every question type shares
type Question struct {
	Name    string
	Message string
	Prefix  string
	Suffix  string
}

var (
	prefixStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	messageStyle = lipgloss.NewStyle().Bold(true)
)

// Text renders the question line that precedes the answer: prefix, bold
// message, suffix and a trailing space.
func (q Question) Text() string {
	prefix := q.Prefix
	if prefix == "" {
		prefix = "?"
	}
	message := q.Message
	if message == "" {
		message = q.Name
	}

	var b strings.Builder
	b.WriteString(prefixStyle.Render(prefix))
	b.WriteString(" ")
	b.WriteString(messageStyle.Render(message))
	b.WriteString(q.Suffix)
	b.WriteString(" ")
	return b.String()
}
