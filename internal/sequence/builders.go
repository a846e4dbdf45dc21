package sequence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/MikeBiancalana/dateprompt/internal/config"
	"github.com/MikeBiancalana/dateprompt/internal/dateprompt"
	"github.com/MikeBiancalana/dateprompt/internal/prompt"
)

// ErrRequired is returned by validators when an answer is missing
var ErrRequired = errors.New("an answer is required")

const boundLayout = "2006-01-02 15:04"

// DateValidator builds a validator from the required flag and optional
// bounds. It returns nil when there is nothing to check.
func DateValidator(required bool, earliest, latest *time.Time) prompt.Validator[*time.Time] {
	if !required && earliest == nil && latest == nil {
		return nil
	}

	return func(v *time.Time, _ prompt.Answers) error {
		if v == nil {
			if required {
				return ErrRequired
			}
			return nil
		}
		if earliest != nil && v.Before(*earliest) {
			return fmt.Errorf("pick a date on or after %s", earliest.Format(boundLayout))
		}
		if latest != nil && v.After(*latest) {
			return fmt.Errorf("pick a date on or before %s", latest.Format(boundLayout))
		}
		return nil
	}
}

// TextValidator rejects blank input when required
func TextValidator(required bool) func(string) error {
	return func(s string) error {
		if required && strings.TrimSpace(s) == "" {
			return ErrRequired
		}
		return nil
	}
}

var relativeStyle = lipgloss.NewStyle().Faint(true)

// TransformFor returns the display transform registered under name. none
// and unknown names return nil.
func TransformFor(name config.TransformName, now func() time.Time) dateprompt.TransformFunc {
	switch name {
	case config.TransformUpper:
		return func(date string, _ prompt.Answers, _ dateprompt.Flags) string {
			return upperText(date)
		}
	case config.TransformRelative:
		return func(date string, _ prompt.Answers, flags dateprompt.Flags) string {
			return date + relativeStyle.Render(" ("+Describe(flags.Value, now())+")")
		}
	case config.TransformISO:
		return func(date string, _ prompt.Answers, flags dateprompt.Flags) string {
			if !flags.IsFinal {
				return date
			}
			return flags.Value.Format(time.RFC3339)
		}
	default:
		return nil
	}
}

// upperText upper-cases printable text and leaves escape sequences intact
func upperText(s string) string {
	var b strings.Builder
	var state byte
	for len(s) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(s, state, nil)
		if width > 0 {
			seq = strings.ToUpper(seq)
		}
		b.WriteString(seq)
		state = newState
		s = s[n:]
	}
	return b.String()
}

// Describe renders date relative to now: "today", "tomorrow", a weekday
// within the coming week, "in N weeks", or the equivalent in the past.
func Describe(date, now time.Time) string {
	nowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	days := int(dateStart.Sub(nowStart).Round(time.Hour).Hours() / 24)

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1 && days < 7:
		return date.Weekday().String()
	case days < -1 && days > -7:
		return "last " + date.Weekday().String()
	case days >= 7 && days < 28:
		return plural(days/7, "week", "in %s")
	case days <= -7 && days > -28:
		return plural(-days/7, "week", "%s ago")
	case days >= 28 && days < 365:
		return plural(days/30, "month", "in %s")
	case days <= -28 && days > -365:
		return plural(-days/30, "month", "%s ago")
	case days >= 365:
		return plural(days/365, "year", "in %s")
	default:
		return plural(-days/365, "year", "%s ago")
	}
}

func plural(n int, unit, format string) string {
	if n < 1 {
		n = 1
	}
	s := fmt.Sprintf("%d %s", n, unit)
	if n != 1 {
		s += "s"
	}
	return fmt.Sprintf(format, s)
}
