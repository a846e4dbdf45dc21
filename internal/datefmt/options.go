package datefmt

import "fmt"

// Style controls how a single date field is displayed
type Style string

const (
	StyleDefault  Style = ""
	StyleNumeric  Style = "numeric"
	StyleTwoDigit Style = "2-digit"
	StyleShort    Style = "short"
	StyleLong     Style = "long"
	StyleHidden   Style = "hidden"
)

// Options selects which fields are displayed and how.
// A zero Options shows numeric year, month, day, hour and minute.
type Options struct {
	Year    Style `yaml:"year,omitempty"`
	Month   Style `yaml:"month,omitempty"`
	Day     Style `yaml:"day,omitempty"`
	Weekday Style `yaml:"weekday,omitempty"`
	Hour    Style `yaml:"hour,omitempty"`
	Minute  Style `yaml:"minute,omitempty"`
	Second  Style `yaml:"second,omitempty"`
	Hour12  *bool `yaml:"hour12,omitempty"`
}

// DefaultOptions returns the options used when nothing is specified
func DefaultOptions() Options {
	return Options{
		Year:    StyleNumeric,
		Month:   StyleNumeric,
		Day:     StyleNumeric,
		Weekday: StyleHidden,
		Hour:    StyleNumeric,
		Minute:  StyleNumeric,
		Second:  StyleHidden,
	}
}

// Merge overlays the non-default styles of o on top of DefaultOptions
func (o Options) Merge() Options {
	merged := DefaultOptions()
	pick := func(dst *Style, src Style) {
		if src != StyleDefault {
			*dst = src
		}
	}
	pick(&merged.Year, o.Year)
	pick(&merged.Month, o.Month)
	pick(&merged.Day, o.Day)
	pick(&merged.Weekday, o.Weekday)
	pick(&merged.Hour, o.Hour)
	pick(&merged.Minute, o.Minute)
	pick(&merged.Second, o.Second)
	merged.Hour12 = o.Hour12
	return merged
}

// Validate reports styles that are not allowed for a field
func (o Options) Validate() error {
	checks := []struct {
		field   string
		style   Style
		allowed []Style
	}{
		{"year", o.Year, []Style{StyleNumeric, StyleTwoDigit}},
		{"month", o.Month, []Style{StyleNumeric, StyleTwoDigit, StyleShort, StyleLong}},
		{"day", o.Day, []Style{StyleNumeric, StyleTwoDigit}},
		{"weekday", o.Weekday, []Style{StyleShort, StyleLong}},
		{"hour", o.Hour, []Style{StyleNumeric, StyleTwoDigit}},
		{"minute", o.Minute, []Style{StyleNumeric, StyleTwoDigit}},
		{"second", o.Second, []Style{StyleNumeric, StyleTwoDigit}},
	}

	for _, c := range checks {
		if c.style == StyleDefault || c.style == StyleHidden {
			continue
		}
		ok := false
		for _, a := range c.allowed {
			if c.style == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("invalid %s style %q", c.field, c.style)
		}
	}
	return nil
}

func (o Options) style(k Kind) Style {
	switch k {
	case Year:
		return o.Year
	case Month:
		return o.Month
	case Day:
		return o.Day
	case Weekday:
		return o.Weekday
	case Hour, DayPeriod:
		return o.Hour
	case Minute:
		return o.Minute
	case Second:
		return o.Second
	}
	return StyleDefault
}
