package storage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/xid"
)

// Kind records how an answer value was encoded
type Kind string

const (
	KindDate Kind = "date"
	KindText Kind = "text"
	KindBool Kind = "bool"
)

// Answer is one stored response. A cleared date has Kind date and an empty Value.
type Answer struct {
	ID         string
	SessionID  string
	Name       string
	Kind       Kind
	Value      string
	Position   int
	AnsweredAt time.Time
}

// Date decodes a date answer; nil when it was cleared
func (a Answer) Date() (*time.Time, error) {
	if a.Kind != KindDate {
		return nil, fmt.Errorf("answer %q is %s, not a date", a.Name, a.Kind)
	}
	if a.Value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, a.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored date %q: %w", a.Value, err)
	}
	return &t, nil
}

// Session groups the answers of one prompt run
type Session struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Answers   []Answer
}

// NewSession starts an empty session. source names what was run, such as
// "ask" or a questionnaire path.
func NewSession(source string) *Session {
	return &Session{
		ID:        xid.New().String(),
		Source:    source,
		CreatedAt: time.Now(),
		Answers:   []Answer{},
	}
}

// Add appends an answer, encoding v by its type
func (s *Session) Add(name string, v any) {
	kind, value := encode(v)
	s.Answers = append(s.Answers, Answer{
		ID:         xid.New().String(),
		SessionID:  s.ID,
		Name:       name,
		Kind:       kind,
		Value:      value,
		Position:   len(s.Answers),
		AnsweredAt: time.Now(),
	})
}

// Values returns the answers keyed by name, with dates decoded
func (s *Session) Values() map[string]any {
	values := make(map[string]any, len(s.Answers))
	for _, a := range s.Answers {
		switch a.Kind {
		case KindDate:
			t, err := a.Date()
			if err != nil || t == nil {
				values[a.Name] = nil
				continue
			}
			values[a.Name] = *t
		case KindBool:
			b, _ := strconv.ParseBool(a.Value)
			values[a.Name] = b
		default:
			values[a.Name] = a.Value
		}
	}
	return values
}

func encode(v any) (Kind, string) {
	switch v := v.(type) {
	case *time.Time:
		if v == nil {
			return KindDate, ""
		}
		return KindDate, v.Format(time.RFC3339)
	case time.Time:
		return KindDate, v.Format(time.RFC3339)
	case bool:
		return KindBool, strconv.FormatBool(v)
	case string:
		return KindText, v
	case nil:
		return KindText, ""
	default:
		return KindText, fmt.Sprint(v)
	}
}
