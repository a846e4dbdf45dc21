package sequence

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MikeBiancalana/dateprompt/internal/dateprompt"
	"github.com/MikeBiancalana/dateprompt/internal/prompt"
	"github.com/MikeBiancalana/dateprompt/internal/tui"
)

// Terminal asks questions interactively: dates through the tui date model
// and everything else through huh forms.
type Terminal struct {
	ShowHelp bool
	Input    io.Reader
	Output   io.Writer
}

func (t *Terminal) AskDate(ctx context.Context, q dateprompt.Question, answers prompt.Answers) (*time.Time, error) {
	opts := []tui.Option{tui.WithHelp(t.ShowHelp)}

	var programOpts []tea.ProgramOption
	if t.Input != nil {
		programOpts = append(programOpts, tea.WithInput(t.Input))
	}
	if t.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(t.Output))
	}
	if len(programOpts) > 0 {
		opts = append(opts, tui.WithProgramOptions(programOpts...))
	}

	return tui.Run(ctx, q, answers, opts...)
}

func (t *Terminal) AskInput(ctx context.Context, q Text) (string, error) {
	value := q.Default
	field := huh.NewInput().
		Title(q.Message).
		Value(&value)
	if q.Validate != nil {
		field = field.Validate(q.Validate)
	}

	if err := t.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

func (t *Terminal) AskConfirm(ctx context.Context, q Text) (bool, error) {
	value := q.Default == "true"
	field := huh.NewConfirm().
		Title(q.Message).
		Value(&value)

	if err := t.run(ctx, field); err != nil {
		return false, err
	}
	return value, nil
}

func (t *Terminal) AskSelect(ctx context.Context, q Text) (string, error) {
	value := q.Default
	field := huh.NewSelect[string]().
		Title(q.Message).
		Options(huh.NewOptions(q.Choices...)...).
		Value(&value)

	if err := t.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

func (t *Terminal) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithShowHelp(t.ShowHelp)
	if t.Input != nil {
		form = form.WithInput(t.Input)
	}
	if t.Output != nil {
		form = form.WithOutput(t.Output)
	}

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return prompt.ErrInterrupted
	}
	return err
}

var _ Asker = (*Terminal)(nil)
