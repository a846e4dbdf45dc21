package prompt_test

import (
	"errors"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/dateprompt/internal/prompt"
	"github.com/MikeBiancalana/dateprompt/internal/prompt/prompttest"
)

// echo is a minimal Interactive that collects typed characters
type echo struct {
	screen  prompt.Screen
	text    string
	answer  string
	answers int
}

func (e *echo) Render(errLine string) {
	e.screen.Render("> "+e.text, errLine)
}

func (e *echo) Keypress(key prompt.Key) {
	e.text += key.Name
	e.Render("")
}

func (e *echo) Candidate() string {
	return e.text
}

func (e *echo) Answer(v string) {
	e.answer = v
	e.answers++
	e.Render("")
}

func TestSession_SubmitRunsLifecycleOnce(t *testing.T) {
	rec := prompttest.NewRecorder(8)
	p := &echo{screen: rec}
	var got []string
	s := prompt.NewSession[string](p, rec, rec, nil, prompt.Answers{}, func(v string) {
		got = append(got, v)
	})

	s.Start()
	assert.True(t, rec.CursorHidden)
	require.Len(t, rec.Frames, 1)

	assert.False(t, s.Dispatch(prompt.Keypress("a")))
	assert.False(t, s.Dispatch(prompt.Keypress("b")))
	assert.True(t, s.Dispatch(prompt.Line()))
	assert.True(t, s.Dispatch(prompt.Line()))
	assert.True(t, s.Dispatch(prompt.Keypress("c")))

	assert.Equal(t, []string{"ab"}, got)
	assert.Equal(t, 1, p.answers)
	assert.Equal(t, 1, rec.DoneCalls)
	assert.False(t, rec.CursorHidden)
	assert.Equal(t, prompt.StatusAnswered, s.Status())
	assert.Equal(t, "> ab", rec.Last().Content)
}

func TestSession_ValidatorSeesAnswers(t *testing.T) {
	rec := prompttest.NewRecorder(8)
	p := &echo{screen: rec}
	answers := prompt.Answers{"min": 3}

	validate := func(v string, a prompt.Answers) error {
		if len(v) < a["min"].(int) {
			return errors.New("too short")
		}
		return nil
	}
	s := prompt.NewSession[string](p, rec, rec, validate, answers, nil)
	s.Start()

	s.Dispatch(prompt.Keypress("x"))
	assert.False(t, s.Dispatch(prompt.Line()))
	assert.Equal(t, "too short", rec.Last().Bottom)
	assert.Equal(t, prompt.StatusEditing, s.Status())
	assert.Zero(t, rec.DoneCalls)

	s.Dispatch(prompt.Keypress("yz"))
	assert.Empty(t, rec.Last().Bottom)
	assert.True(t, s.Dispatch(prompt.Line()))
	assert.Equal(t, "xyz", p.answer)
}

func TestSession_LoopInterrupted(t *testing.T) {
	rec := prompttest.NewRecorder(4)
	p := &echo{screen: rec}
	s := prompt.NewSession[string](p, rec, rec, nil, nil, nil)
	s.Start()

	rec.Send(prompt.Keypress("a"))
	rec.Close()

	err := s.Loop(rec.Events())
	assert.ErrorIs(t, err, prompt.ErrInterrupted)
	assert.False(t, rec.CursorHidden)
	assert.Zero(t, p.answers)
}

func TestSession_NilCursor(t *testing.T) {
	rec := prompttest.NewRecorder(2)
	p := &echo{screen: rec}
	s := prompt.NewSession[string](p, rec, nil, nil, nil, nil)

	s.Start()
	rec.Send(prompt.Line())
	rec.Close()

	require.NoError(t, s.Loop(rec.Events()))
	assert.Zero(t, rec.CursorToggles)
}

func TestValidationFailure_Unwrap(t *testing.T) {
	reason := errors.New("nope")
	err := error(&prompt.ValidationFailure{Err: reason})

	assert.ErrorIs(t, err, reason)
	assert.Equal(t, "nope", err.Error())
}

func TestQuestion_Text(t *testing.T) {
	tests := []struct {
		name     string
		q        prompt.Question
		expected string
	}{
		{"message", prompt.Question{Name: "when", Message: "When?"}, "? When? "},
		{"falls back to name", prompt.Question{Name: "when"}, "? when "},
		{"prefix and suffix", prompt.Question{Name: "n", Message: "Pick", Prefix: "!", Suffix: ":"}, "! Pick: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ansi.Strip(tt.q.Text()))
		})
	}
}
