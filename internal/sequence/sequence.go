// Package sequence asks the questions of a questionnaire in order. Every
// question sees the answers collected before it.
package sequence

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/MikeBiancalana/dateprompt/internal/config"
	"github.com/MikeBiancalana/dateprompt/internal/dateprompt"
	"github.com/MikeBiancalana/dateprompt/internal/logger"
	"github.com/MikeBiancalana/dateprompt/internal/perf"
	"github.com/MikeBiancalana/dateprompt/internal/prompt"
)

// Asker presents one question to the user
type Asker interface {
	AskDate(ctx context.Context, q dateprompt.Question, answers prompt.Answers) (*time.Time, error)
	AskInput(ctx context.Context, q Text) (string, error)
	AskConfirm(ctx context.Context, q Text) (bool, error)
	AskSelect(ctx context.Context, q Text) (string, error)
}

// Text describes a non-date question after its message has been resolved
type Text struct {
	Name     string
	Message  string
	Default  string
	Choices  []string
	Validate func(string) error
}

// Result holds the answers in the order they were asked
type Result struct {
	Answers prompt.Answers
	Names   []string
}

// Runner asks questionnaire questions through an Asker
type Runner struct {
	asker Asker
	now   func() time.Time
}

// NewRunner creates a runner. A nil now uses time.Now.
func NewRunner(asker Asker, now func() time.Time) *Runner {
	if now == nil {
		now = time.Now
	}
	return &Runner{asker: asker, now: now}
}

// Run asks every question. On error the answers gathered so far are
// returned with it.
func (r *Runner) Run(ctx context.Context, q *config.Questionnaire) (*Result, error) {
	res := &Result{Answers: prompt.Answers{}, Names: make([]string, 0, len(q.Questions))}
	thinking := perf.NewRecorder("sequence: answer time")
	defer thinking.Log()

	for i := range q.Questions {
		spec := q.Questions[i]
		if err := ctx.Err(); err != nil {
			return res, err
		}

		message, err := Message(spec, res.Answers)
		if err != nil {
			return res, err
		}

		logger.Debug("sequence: asking", "name", spec.Name, "type", string(spec.Type), "position", i)

		timer := perf.Start("sequence: answered", 0, "name", spec.Name)
		value, err := r.ask(ctx, spec, message, res.Answers)
		thinking.Record(timer.Stop())
		if err != nil {
			return res, fmt.Errorf("question %q: %w", spec.Name, err)
		}

		res.Answers[spec.Name] = value
		res.Names = append(res.Names, spec.Name)
	}

	return res, nil
}

func (r *Runner) ask(ctx context.Context, spec config.QuestionSpec, message string, answers prompt.Answers) (any, error) {
	text := Text{
		Name:    spec.Name,
		Message: message,
		Default: spec.Default,
		Choices: spec.Choices,
	}

	switch spec.Type {
	case config.TypeDate:
		return r.asker.AskDate(ctx, DateQuestion(spec, message, r.now), answers)
	case config.TypeInput:
		text.Validate = TextValidator(spec.Required)
		return r.asker.AskInput(ctx, text)
	case config.TypeConfirm:
		return r.asker.AskConfirm(ctx, text)
	case config.TypeSelect:
		return r.asker.AskSelect(ctx, text)
	default:
		return nil, fmt.Errorf("unknown question type %q", spec.Type)
	}
}

// DateQuestion converts a questionnaire entry into a widget question
func DateQuestion(spec config.QuestionSpec, message string, now func() time.Time) dateprompt.Question {
	q := dateprompt.Question{
		Question:  prompt.Question{Name: spec.Name, Message: message},
		Locale:    spec.Locale,
		Format:    spec.Format,
		Clearable: spec.Clearable,
		Transform: TransformFor(spec.Transform, now),
	}

	if d := spec.DefaultDate(); d != nil {
		q.Default = *d
	} else {
		q.Default = now()
	}

	earliest, latest := spec.Bounds()
	q.Validate = DateValidator(spec.Required, earliest, latest)

	return q
}

// Message expands the question message as a template over the answers so
// far, so later questions can refer to earlier ones ({{.name}}). A blank
// message falls back to the question name.
func Message(spec config.QuestionSpec, answers prompt.Answers) (string, error) {
	if spec.Message == "" {
		return spec.Name, nil
	}

	tmpl, err := template.New(spec.Name).Option("missingkey=zero").Parse(spec.Message)
	if err != nil {
		return "", fmt.Errorf("question %q: invalid message template: %w", spec.Name, err)
	}

	view := make(map[string]any, len(answers))
	for k, v := range answers {
		if t, ok := v.(*time.Time); ok {
			if t == nil {
				view[k] = ""
				continue
			}
			view[k] = t.Format(boundLayout)
			continue
		}
		view[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("question %q: %w", spec.Name, err)
	}
	return buf.String(), nil
}
