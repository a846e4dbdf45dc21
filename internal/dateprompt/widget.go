// Package dateprompt implements an in-place date editor. The date is shown in
// a locale layout; left/right select a field, up/down adjust it.
package dateprompt

import (
	"strings"
	"time"

	"github.com/MikeBiancalana/dateprompt/internal/datefmt"
	"github.com/MikeBiancalana/dateprompt/internal/logger"
	"github.com/MikeBiancalana/dateprompt/internal/prompt"
)

// Flags describe the prompt state passed to a TransformFunc
type Flags struct {
	IsDirty   bool
	IsCleared bool
	IsFinal   bool
	// Value is the date currently under edit
	Value time.Time
}

// TransformFunc rewrites the rendered date text before it is displayed
type TransformFunc func(date string, answers prompt.Answers, flags Flags) string

// Question configures a date prompt
type Question struct {
	prompt.Question

	// Default must be a time.Time or *time.Time. Only nil (or a nil
	// *time.Time) means now; a zero time.Time is kept as is.
	Default   any
	Locale    string
	Format    datefmt.Options
	Clearable bool
	Transform TransformFunc
	Validate  prompt.Validator[*time.Time]
}

// Option customizes a Widget
type Option func(*Widget)

// WithStyles replaces the default styles
func WithStyles(s Styles) Option {
	return func(w *Widget) {
		w.styles = s
	}
}

// WithClock sets the source of "now" used when there is no default
func WithClock(now func() time.Time) Option {
	return func(w *Widget) {
		w.now = now
	}
}

// Widget is a date prompt. It is driven by a prompt.Session and is not safe
// for concurrent use.
type Widget struct {
	question Question
	term     prompt.Terminal
	answers  prompt.Answers
	styles   Styles
	now      func() time.Time

	layout *datefmt.Layout
	value  time.Time
	first  int
	last   int
	cursor int

	dirty   bool
	cleared bool
	status  prompt.Status
	answer  *time.Time
	started bool
}

// New validates the question and prepares the initial state. Nothing is
// rendered until Run or Start.
func New(q Question, term prompt.Terminal, answers prompt.Answers, opts ...Option) (*Widget, error) {
	w := &Widget{
		question: q,
		term:     term,
		answers:  answers,
		styles:   DefaultStyles(),
		now:      time.Now,
		status:   prompt.StatusEditing,
	}
	for _, opt := range opts {
		opt(w)
	}

	value, err := w.initialValue(q.Default)
	if err != nil {
		return nil, err
	}
	if err := q.Format.Validate(); err != nil {
		return nil, &ConfigError{Field: "format", Value: q.Format, Reason: err.Error()}
	}

	w.value = value
	w.layout = datefmt.NewLayout(q.Locale, q.Format)
	w.first, w.last = datefmt.EditableBounds(w.Segments())
	w.cursor = w.first

	logger.Debug("dateprompt: created",
		"name", q.Name,
		"locale", w.layout.Locale().String(),
		"first", w.first,
		"last", w.last)

	return w, nil
}

func (w *Widget) initialValue(def any) (time.Time, error) {
	switch v := def.(type) {
	case nil:
		return w.now(), nil
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return w.now(), nil
		}
		return *v, nil
	default:
		return time.Time{}, &ConfigError{
			Field:  "default",
			Value:  def,
			Reason: "the default value should be a time.Time",
		}
	}
}

// Run renders the prompt and processes events from the terminal until a
// valid answer is submitted. done receives nil when the prompt was cleared.
func (w *Widget) Run(done func(*time.Time)) error {
	s, err := w.Start(done)
	if err != nil {
		return err
	}
	return s.Loop(w.term.Events())
}

// Start renders the prompt and returns the session for hosts that deliver
// events themselves through Dispatch.
func (w *Widget) Start(done func(*time.Time)) (*prompt.Session[*time.Time], error) {
	if w.started {
		return nil, ErrAlreadyRun
	}
	w.started = true

	s := prompt.NewSession[*time.Time](w, w.term, w.term, w.question.Validate, w.answers, done)
	s.Start()
	return s, nil
}

// Segments derives the current segments from the value and layout
func (w *Widget) Segments() []datefmt.Segment {
	return w.layout.Segments(w.value)
}

// Keypress applies a single key. It is a no-op once the prompt is answered.
func (w *Widget) Keypress(key prompt.Key) {
	if w.status == prompt.StatusAnswered {
		return
	}

	w.cleared = false

	switch key.Name {
	case "right":
		w.moveCursor(1)
	case "left":
		w.moveCursor(-1)
	case "up":
		w.shiftValue(magnitude(key))
	case "down":
		w.shiftValue(-magnitude(key))
	case "delete", "backspace":
		if w.question.Clearable {
			w.cleared = true
		}
	}

	w.Render("")
}

func magnitude(key prompt.Key) int {
	if !key.Shift {
		return 1
	}
	if key.Meta {
		return 100
	}
	return 10
}

// moveCursor steps in dir until it lands on an editable segment, never
// leaving [first, last].
func (w *Widget) moveCursor(dir int) {
	if w.cursor < 0 {
		return
	}
	segs := w.Segments()
	for {
		next := w.cursor + dir
		if next < w.first || next > w.last {
			return
		}
		w.cursor = next
		if segs[w.cursor].Editable() {
			return
		}
	}
}

func (w *Widget) shiftValue(delta int) {
	w.dirty = true
	if w.cursor < 0 {
		return
	}
	kind := w.Segments()[w.cursor].Kind
	w.value = datefmt.Shift(w.value, kind, delta)
	logger.Debug("dateprompt: shifted", "kind", kind, "delta", delta, "value", w.value)
}

// Render projects the current state to the terminal
func (w *Widget) Render(errLine string) {
	final := w.status == prompt.StatusAnswered

	var b strings.Builder
	b.WriteString(w.question.Text())

	if !w.cleared {
		date := w.styledDate(final)
		if w.question.Transform != nil {
			date = w.question.Transform(date, w.answers, Flags{
				IsDirty:   w.dirty,
				IsCleared: w.cleared,
				IsFinal:   final,
				Value:     w.value,
			})
		}
		b.WriteString(date)
	}

	if w.question.Clearable && !final {
		b.WriteString(w.styles.Hint.Render(ClearHint))
	}

	bottom := ""
	if errLine != "" {
		bottom = w.styles.Error.Render(">> ") + errLine
	}

	w.term.Render(b.String(), bottom)
}

func (w *Widget) styledDate(final bool) string {
	var b strings.Builder
	for i, seg := range w.Segments() {
		switch {
		case final:
			b.WriteString(w.styles.Final.Render(seg.Text))
		case i == w.cursor:
			b.WriteString(w.styles.Selected.Render(seg.Text))
		case !w.dirty:
			b.WriteString(w.styles.Dim.Render(seg.Text))
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// Candidate is what a submission would produce: nil when cleared
func (w *Widget) Candidate() *time.Time {
	if w.cleared {
		return nil
	}
	v := w.value
	return &v
}

// Answer records the final value and renders the answered state
func (w *Widget) Answer(value *time.Time) {
	w.answer = value
	w.status = prompt.StatusAnswered
	w.Render("")
}

// Value returns the date under edit, even when cleared
func (w *Widget) Value() time.Time {
	return w.value
}

// FinalAnswer returns the submitted value; nil before submission or when cleared
func (w *Widget) FinalAnswer() *time.Time {
	return w.answer
}

// Cursor returns the selected segment index, -1 when nothing is editable
func (w *Widget) Cursor() int {
	return w.cursor
}

// EditableRange returns the first and last editable segment indices
func (w *Widget) EditableRange() (first, last int) {
	return w.first, w.last
}

func (w *Widget) Dirty() bool {
	return w.dirty
}

func (w *Widget) Cleared() bool {
	return w.cleared
}

func (w *Widget) Status() prompt.Status {
	return w.status
}

// Layout returns the resolved format configuration
func (w *Widget) Layout() *datefmt.Layout {
	return w.layout
}

var _ prompt.Interactive[*time.Time] = (*Widget)(nil)
