package prompt

import (
	"errors"
	"fmt"

	"github.com/MikeBiancalana/dateprompt/internal/logger"
)

// ErrInterrupted is returned by Loop when the event stream ends before an answer
var ErrInterrupted = errors.New("prompt interrupted before an answer was given")

// ValidationFailure wraps the reason a validator rejected a candidate answer
type ValidationFailure struct {
	Err error
}

func (e *ValidationFailure) Error() string {
	return e.Err.Error()
}

func (e *ValidationFailure) Unwrap() error {
	return e.Err
}

// Validator checks a candidate answer against the answers given so far.
// A nil Validator accepts everything.
type Validator[T any] func(value T, answers Answers) error

// Interactive is the capability a question exposes to the session
type Interactive[T any] interface {
	// Render redraws the question, with errLine shown below it when non-empty
	Render(errLine string)
	// Keypress applies one key and re-renders
	Keypress(key Key)
	// Candidate is the value a submission would produce right now
	Candidate() T
	// Answer moves the question to its final state and renders it
	Answer(value T)
}

// Session drives one Interactive from an event stream. It owns the lifecycle:
// hide the cursor, dispatch keys, validate on submit, finalize the screen and
// hand the answer to the completion callback exactly once.
type Session[T any] struct {
	prompt   Interactive[T]
	screen   Screen
	cursor   Cursor
	validate Validator[T]
	answers  Answers
	done     func(T)
	status   Status
}

// NewSession wires a prompt to its render sink. cursor and validate may be nil.
func NewSession[T any](p Interactive[T], screen Screen, cursor Cursor, validate Validator[T], answers Answers, done func(T)) *Session[T] {
	return &Session[T]{
		prompt:   p,
		screen:   screen,
		cursor:   cursor,
		validate: validate,
		answers:  answers,
		done:     done,
		status:   StatusEditing,
	}
}

// Start hides the cursor and draws the initial frame
func (s *Session[T]) Start() {
	if s.cursor != nil {
		s.cursor.Hide()
	}
	s.prompt.Render("")
}

// Status reports whether the session has been answered
func (s *Session[T]) Status() Status {
	return s.status
}

// Dispatch processes one event and reports whether the session is finished.
// Events arriving after a successful submission are ignored.
func (s *Session[T]) Dispatch(ev Event) bool {
	if s.status == StatusAnswered {
		return true
	}

	switch ev.Type {
	case EventKeypress:
		s.prompt.Keypress(ev.Key)
		return false
	case EventLine:
		return s.submit()
	}
	return false
}

func (s *Session[T]) submit() bool {
	candidate := s.prompt.Candidate()
	if s.validate != nil {
		if err := s.validate(candidate, s.answers); err != nil {
			failure := &ValidationFailure{Err: err}
			logger.Debug("prompt: validation failed", "error", failure)
			s.prompt.Render(failure.Error())
			return false
		}
	}

	s.status = StatusAnswered
	s.prompt.Answer(candidate)
	s.screen.Done()
	if s.cursor != nil {
		s.cursor.Show()
	}
	logger.Debug("prompt: answered", "value", fmt.Sprint(candidate))
	if s.done != nil {
		s.done(candidate)
	}
	return true
}

// Loop dispatches events until the session is answered. It returns
// ErrInterrupted if the stream closes first.
func (s *Session[T]) Loop(events <-chan Event) error {
	for ev := range events {
		if s.Dispatch(ev) {
			return nil
		}
	}
	if s.status == StatusAnswered {
		return nil
	}
	if s.cursor != nil {
		s.cursor.Show()
	}
	return ErrInterrupted
}
