package datefmt

import "time"

// Kind identifies what a segment displays
type Kind string

const (
	Literal   Kind = "literal"
	Year      Kind = "year"
	Month     Kind = "month"
	Day       Kind = "day"
	Weekday   Kind = "weekday"
	Hour      Kind = "hour"
	Minute    Kind = "minute"
	Second    Kind = "second"
	DayPeriod Kind = "dayPeriod"
)

// Field reads and writes one calendar field of a time.Time.
// Set goes through time.Date, so out-of-range values are normalized
// (month 13 becomes January of the next year, day 32 rolls into the next month).
type Field struct {
	Get func(t time.Time) int
	Set func(t time.Time, v int) time.Time
}

var fields = map[Kind]Field{
	Year: {
		Get: func(t time.Time) int { return t.Year() },
		Set: func(t time.Time, v int) time.Time {
			return time.Date(v, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		},
	},
	Month: {
		Get: func(t time.Time) int { return int(t.Month()) },
		Set: func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), time.Month(v), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		},
	},
	Day: {
		Get: func(t time.Time) int { return t.Day() },
		Set: func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), v, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		},
	},
	Hour: {
		Get: func(t time.Time) int { return t.Hour() },
		Set: func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), v, t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		},
	},
	Minute: {
		Get: func(t time.Time) int { return t.Minute() },
		Set: func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), v, t.Second(), t.Nanosecond(), t.Location())
		},
	},
	Second: {
		Get: func(t time.Time) int { return t.Second() },
		Set: func(t time.Time, v int) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), v, t.Nanosecond(), t.Location())
		},
	},
}

// FieldFor returns the accessor pair for an editable kind
func FieldFor(k Kind) (Field, bool) {
	f, ok := fields[k]
	return f, ok
}

// Editable reports whether segments of this kind can be adjusted
func (k Kind) Editable() bool {
	_, ok := fields[k]
	return ok
}

// Shift adds delta to the field of kind k. Kinds without a field leave t unchanged.
func Shift(t time.Time, k Kind, delta int) time.Time {
	f, ok := fields[k]
	if !ok {
		return t
	}
	return f.Set(t, f.Get(t)+delta)
}
