package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/dateprompt/internal/datefmt"
)

// ErrInvalidQuestionnaire is wrapped by every validation error from Parse
var ErrInvalidQuestionnaire = errors.New("invalid questionnaire")

// QuestionType selects the prompt used for a question
type QuestionType string

const (
	TypeDate    QuestionType = "date"
	TypeInput   QuestionType = "input"
	TypeConfirm QuestionType = "confirm"
	TypeSelect  QuestionType = "select"
)

// TransformName selects a display transform for date questions
type TransformName string

const (
	TransformNone     TransformName = "none"
	TransformUpper    TransformName = "upper"
	TransformRelative TransformName = "relative"
	TransformISO      TransformName = "iso"
)

// QuestionSpec is one entry of a questionnaire file
type QuestionSpec struct {
	Type      QuestionType    `yaml:"type"`
	Name      string          `yaml:"name"`
	Message   string          `yaml:"message,omitempty"`
	Default   string          `yaml:"default,omitempty"`
	Locale    string          `yaml:"locale,omitempty"`
	Format    datefmt.Options `yaml:"format,omitempty"`
	Clearable bool            `yaml:"clearable,omitempty"`
	Required  bool            `yaml:"required,omitempty"`
	Min       string          `yaml:"min,omitempty"`
	Max       string          `yaml:"max,omitempty"`
	Choices   []string        `yaml:"choices,omitempty"`
	Transform TransformName   `yaml:"transform,omitempty"`

	// parsed at load time
	defaultDate *time.Time
	minDate     *time.Time
	maxDate     *time.Time
}

// DefaultDate returns the parsed default of a date question; nil means now
func (q QuestionSpec) DefaultDate() *time.Time {
	return q.defaultDate
}

// Bounds returns the parsed min and max of a date question; either may be nil
func (q QuestionSpec) Bounds() (earliest, latest *time.Time) {
	return q.minDate, q.maxDate
}

// DefaultBool returns the default of a confirm question
func (q QuestionSpec) DefaultBool() bool {
	v, _ := strconv.ParseBool(q.Default)
	return v
}

// Questionnaire is a sequence of questions asked in order
type Questionnaire struct {
	Title     string         `yaml:"title,omitempty"`
	Locale    string         `yaml:"locale,omitempty"`
	Questions []QuestionSpec `yaml:"questions"`
}

// dateLayouts are tried in order when decoding dates from a questionnaire
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate decodes a date written in a questionnaire file. "now" and the
// empty string yield nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "now") {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q (use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339)", s)
}

// LoadQuestionnaire reads and validates a questionnaire file
func LoadQuestionnaire(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questionnaire: %w", err)
	}

	q, err := ParseQuestionnaire(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}

// ParseQuestionnaire decodes YAML, applies defaults and validates the result.
// Unknown keys are rejected.
func ParseQuestionnaire(data []byte) (*Questionnaire, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var q Questionnaire
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("failed to parse questionnaire: %w", err)
	}

	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return &q, nil
}

// Normalize fills in defaults and validates every question. ParseQuestionnaire
// calls it; questionnaires built in code must call it before use.
func (q *Questionnaire) Normalize() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidQuestionnaire)
	}

	seen := make(map[string]bool, len(q.Questions))
	for i := range q.Questions {
		spec := &q.Questions[i]
		if spec.Type == "" {
			spec.Type = TypeDate
		}
		if spec.Transform == "" {
			spec.Transform = TransformNone
		}
		if spec.Locale == "" {
			spec.Locale = q.Locale
		}

		if spec.Name == "" {
			return fmt.Errorf("%w: question %d has no name", ErrInvalidQuestionnaire, i+1)
		}
		if seen[spec.Name] {
			return fmt.Errorf("%w: duplicate question name %q", ErrInvalidQuestionnaire, spec.Name)
		}
		seen[spec.Name] = true

		if err := spec.validate(); err != nil {
			return fmt.Errorf("%w: question %q: %v", ErrInvalidQuestionnaire, spec.Name, err)
		}
	}
	return nil
}

func (q *QuestionSpec) validate() error {
	switch q.Type {
	case TypeDate:
		return q.validateDate()
	case TypeInput:
	case TypeConfirm:
		if q.Default != "" {
			if _, err := strconv.ParseBool(q.Default); err != nil {
				return fmt.Errorf("confirm default must be true or false, got %q", q.Default)
			}
		}
	case TypeSelect:
		if len(q.Choices) == 0 {
			return errors.New("select needs at least one choice")
		}
		if q.Default != "" && !contains(q.Choices, q.Default) {
			return fmt.Errorf("default %q is not one of the choices", q.Default)
		}
	default:
		return fmt.Errorf("unknown type %q", q.Type)
	}

	if q.Min != "" || q.Max != "" {
		return errors.New("min and max only apply to date questions")
	}
	return nil
}

func (q *QuestionSpec) validateDate() error {
	switch q.Transform {
	case TransformNone, TransformUpper, TransformRelative, TransformISO:
	default:
		return fmt.Errorf("unknown transform %q", q.Transform)
	}

	if err := q.Format.Validate(); err != nil {
		return err
	}

	var err error
	if q.defaultDate, err = ParseDate(q.Default); err != nil {
		return fmt.Errorf("default: %w", err)
	}
	if q.minDate, err = ParseDate(q.Min); err != nil {
		return fmt.Errorf("min: %w", err)
	}
	if q.maxDate, err = ParseDate(q.Max); err != nil {
		return fmt.Errorf("max: %w", err)
	}
	if q.minDate != nil && q.maxDate != nil && q.maxDate.Before(*q.minDate) {
		return fmt.Errorf("min %s is after max %s", q.Min, q.Max)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
