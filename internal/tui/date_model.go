// Package tui hosts a date prompt inside a bubbletea program. The program's
// renderer is the render sink and its key messages are the event stream.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/dateprompt/internal/dateprompt"
	"github.com/MikeBiancalana/dateprompt/internal/logger"
	"github.com/MikeBiancalana/dateprompt/internal/prompt"
)

// screen keeps the last frame for View. Events are delivered through Update,
// so the channel is never used.
type screen struct {
	content      string
	bottom       string
	released     bool
	cursorHidden bool
}

func (s *screen) Render(content, bottom string) {
	s.content = content
	s.bottom = bottom
}

func (s *screen) Done() {
	s.released = true
}

func (s *screen) Hide() {
	s.cursorHidden = true
}

func (s *screen) Show() {
	s.cursorHidden = false
}

func (s *screen) Events() <-chan prompt.Event {
	return nil
}

// Option configures a DateModel
type Option func(*settings)

type settings struct {
	keys        KeyMap
	showHelp    bool
	widgetOpts  []dateprompt.Option
	programOpts []tea.ProgramOption
}

// WithKeyMap replaces the default bindings
func WithKeyMap(k KeyMap) Option {
	return func(s *settings) {
		s.keys = k
	}
}

// WithHelp shows a key help footer while editing
func WithHelp(show bool) Option {
	return func(s *settings) {
		s.showHelp = show
	}
}

// WithWidgetOptions passes options through to the date widget
func WithWidgetOptions(opts ...dateprompt.Option) Option {
	return func(s *settings) {
		s.widgetOpts = append(s.widgetOpts, opts...)
	}
}

// WithProgramOptions passes options through to tea.NewProgram
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(s *settings) {
		s.programOpts = append(s.programOpts, opts...)
	}
}

// DateModel is a bubbletea model wrapping one date prompt
type DateModel struct {
	widget   *dateprompt.Widget
	session  *prompt.Session[*time.Time]
	screen   *screen
	keys     KeyMap
	help     help.Model
	showHelp bool

	answer   *time.Time
	answered bool
	aborted  bool
}

// NewDateModel builds the widget and starts its session. Configuration
// errors from the widget are returned before anything is drawn.
func NewDateModel(q dateprompt.Question, answers prompt.Answers, opts ...Option) (*DateModel, error) {
	cfg := settings{keys: DefaultKeyMap()}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &screen{}
	w, err := dateprompt.New(q, s, answers, cfg.widgetOpts...)
	if err != nil {
		return nil, err
	}

	m := &DateModel{
		widget:   w,
		screen:   s,
		keys:     cfg.keys,
		help:     help.New(),
		showHelp: cfg.showHelp,
	}

	m.session, err = w.Start(func(v *time.Time) {
		m.answer = v
		m.answered = true
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *DateModel) Init() tea.Cmd {
	return nil
}

func (m *DateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.answered || m.aborted {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			logger.Debug("tui: prompt cancelled", "key", msg.String())
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			if m.session.Dispatch(prompt.Line()) {
				return m, tea.Quit
			}
			return m, nil
		}

		m.session.Dispatch(prompt.Event{Type: prompt.EventKeypress, Key: TranslateKey(msg)})
	}

	return m, nil
}

func (m *DateModel) View() string {
	var b strings.Builder
	b.WriteString(m.screen.content)

	if m.screen.bottom != "" {
		b.WriteString("\n")
		b.WriteString(m.screen.bottom)
	}

	if m.showHelp && !m.answered && !m.aborted {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}

	b.WriteString("\n")
	return b.String()
}

// Answer returns the submitted date; nil when cleared or not yet answered
func (m *DateModel) Answer() *time.Time {
	return m.answer
}

func (m *DateModel) Answered() bool {
	return m.answered
}

func (m *DateModel) Aborted() bool {
	return m.aborted
}

// Widget exposes the underlying date prompt
func (m *DateModel) Widget() *dateprompt.Widget {
	return m.widget
}

// Run shows a date prompt and blocks until it is answered or cancelled.
// A cancelled prompt returns prompt.ErrInterrupted.
func Run(ctx context.Context, q dateprompt.Question, answers prompt.Answers, opts ...Option) (*time.Time, error) {
	cfg := settings{}
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := NewDateModel(q, answers, opts...)
	if err != nil {
		return nil, err
	}

	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, cfg.programOpts...)
	p := tea.NewProgram(m, programOpts...)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			return nil, prompt.ErrInterrupted
		}
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, fmt.Errorf("date prompt %q: %w", q.Name, ctx.Err())
		}
		return nil, fmt.Errorf("failed to run date prompt: %w", err)
	}

	result := final.(*DateModel)
	if result.Aborted() || !result.Answered() {
		return nil, prompt.ErrInterrupted
	}
	return result.Answer(), nil
}
