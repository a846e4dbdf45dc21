package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Segment is one formatted piece of a date: either literal text or the
// current text of a single field.
type Segment struct {
	Kind Kind
	Text string
}

// Editable reports whether the segment can be adjusted
func (s Segment) Editable() bool {
	return s.Kind.Editable()
}

type token struct {
	kind  Kind
	text  string
	group int
}

// Layout is an immutable locale + options pair. It turns a time into
// segments; it keeps no state between calls.
type Layout struct {
	locale  *localeData
	options Options
	hour12  bool
	tokens  []token
}

// NewLayout resolves the locale and merges opts with the defaults.
// Unknown locales fall back to en-US.
func NewLayout(locale string, opts Options) *Layout {
	loc, _ := resolve(locale)
	merged := opts.Merge()

	hour12 := loc.hour12
	if merged.Hour12 != nil {
		hour12 = *merged.Hour12
	}

	l := &Layout{
		locale:  loc,
		options: merged,
		hour12:  hour12,
	}
	l.tokens = l.compile()
	return l
}

// Locale returns the resolved locale tag
func (l *Layout) Locale() language.Tag {
	return l.locale.tag
}

// Options returns the merged options
func (l *Layout) Options() Options {
	return l.options
}

// Hour12 reports whether hours are shown on a 12 hour clock
func (l *Layout) Hour12() bool {
	return l.hour12
}

// Segments formats t into its ordered segments. Adjacent literals are merged,
// so segment positions depend only on the layout, never on t.
func (l *Layout) Segments(t time.Time) []Segment {
	segs := make([]Segment, 0, len(l.tokens))
	for _, tok := range l.tokens {
		if tok.kind == Literal {
			segs = append(segs, Segment{Kind: Literal, Text: tok.text})
			continue
		}
		segs = append(segs, Segment{Kind: tok.kind, Text: l.field(tok.kind, t)})
	}
	return segs
}

// Format returns the plain joined text of t
func (l *Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, s := range l.Segments(t) {
		b.WriteString(s.Text)
	}
	return b.String()
}

// EditableBounds returns the indices of the first and last editable segments,
// or -1, -1 when there are none.
func EditableBounds(segs []Segment) (first, last int) {
	first, last = -1, -1
	for i, s := range segs {
		if !s.Editable() {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last
}

// textual reports whether the month is spelled out
func (l *Layout) textual() bool {
	m := l.options.Month
	return m == StyleShort || m == StyleLong
}

func (l *Layout) compile() []token {
	dateLayout := l.locale.numeric
	if l.textual() {
		dateLayout = l.locale.textual
	}

	datePart := l.visible(dateLayout)
	timePart := l.visible(l.locale.clock)

	var toks []token
	toks = append(toks, datePart...)
	if hasField(datePart) && hasField(timePart) {
		toks = append(toks, token{kind: Literal, text: l.locale.joiner})
	}
	toks = append(toks, timePart...)
	return mergeLiterals(toks)
}

func (l *Layout) shown(k Kind) bool {
	if k == DayPeriod && !l.hour12 {
		return false
	}
	return l.options.style(k) != StyleHidden
}

// visible drops hidden fields. A bracketed group disappears with its field.
// An ungrouped field between two separators takes the one after it, so
// "March 5, 2024" loses ", " with the day. Otherwise it takes the separator
// before it, or the one after it when it leads. Separators left dangling at
// either end are trimmed unless they were at that end of the pattern to
// begin with.
func (l *Layout) visible(toks []token) []token {
	hiddenGroups := map[int]bool{}
	for _, tok := range toks {
		if tok.kind != Literal && tok.group != 0 && !l.shown(tok.kind) {
			hiddenGroups[tok.group] = true
		}
	}

	var (
		out      = make([]token, 0, len(toks))
		pos      = make([]int, 0, len(toks))
		dropNext = false
	)
	for i, tok := range toks {
		if hiddenGroups[tok.group] {
			continue
		}
		if tok.kind == Literal {
			if dropNext && tok.group == 0 {
				dropNext = false
				continue
			}
			out, pos = append(out, tok), append(pos, i)
			continue
		}
		if l.shown(tok.kind) {
			dropNext = false
			out, pos = append(out, tok), append(pos, i)
			continue
		}
		n := len(out)
		before := n > 0 && out[n-1].kind == Literal && out[n-1].group == 0
		after := i+1 < len(toks) && toks[i+1].kind == Literal && toks[i+1].group == 0
		if before && !after {
			out, pos = out[:n-1], pos[:n-1]
		} else {
			dropNext = true
		}
	}

	if !hasField(out) {
		return nil
	}
	for len(out) > 0 && out[0].kind == Literal && pos[0] != 0 {
		out, pos = out[1:], pos[1:]
	}
	for n := len(out); n > 0 && out[n-1].kind == Literal && pos[n-1] != len(toks)-1; n = len(out) {
		out, pos = out[:n-1], pos[:n-1]
	}
	return out
}

func (l *Layout) field(k Kind, t time.Time) string {
	style := l.options.style(k)
	switch k {
	case Year:
		if style == StyleTwoDigit {
			return pad2(t.Year() % 100)
		}
		return strconv.Itoa(t.Year())
	case Month:
		switch style {
		case StyleLong:
			return l.locale.tr.MonthWide(t.Month())
		case StyleShort:
			return l.locale.tr.MonthAbbreviated(t.Month())
		}
		return l.number(int(t.Month()), style, l.locale.padMonth)
	case Day:
		if l.textual() {
			return l.number(t.Day(), style, l.locale.padText)
		}
		return l.number(t.Day(), style, l.locale.padDay)
	case Weekday:
		if style == StyleLong {
			return l.locale.tr.WeekdayWide(t.Weekday())
		}
		return l.locale.tr.WeekdayAbbreviated(t.Weekday())
	case Hour:
		h := t.Hour()
		if l.hour12 {
			h %= 12
			if h == 0 {
				h = 12
			}
			return l.number(h, style, false)
		}
		return l.number(h, style, l.locale.padHour)
	case Minute:
		return pad2(t.Minute())
	case Second:
		return pad2(t.Second())
	case DayPeriod:
		if t.Hour() < 12 {
			return l.locale.am
		}
		return l.locale.pm
	}
	return ""
}

func (l *Layout) number(v int, style Style, pad bool) string {
	if style == StyleTwoDigit || pad {
		return pad2(v)
	}
	return strconv.Itoa(v)
}

func pad2(v int) string {
	return fmt.Sprintf("%02d", v)
}

var patternCodes = map[byte]Kind{
	'y': Year,
	'M': Month,
	'd': Day,
	'E': Weekday,
	'h': Hour,
	'm': Minute,
	's': Second,
	'a': DayPeriod,
}

// parsePattern splits a locale pattern into literal and field tokens
func parsePattern(p string) []token {
	var (
		toks   []token
		lit    strings.Builder
		group  int
		groups int
	)
	flush := func() {
		if lit.Len() > 0 {
			toks = append(toks, token{kind: Literal, text: lit.String(), group: group})
			lit.Reset()
		}
	}

	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '[':
			flush()
			groups++
			group = groups
		case c == ']':
			flush()
			group = 0
		case c == '{' && i+2 < len(p) && p[i+2] == '}':
			kind, ok := patternCodes[p[i+1]]
			if !ok {
				lit.WriteByte(c)
				continue
			}
			flush()
			toks = append(toks, token{kind: kind, group: group})
			i += 2
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return toks
}

func hasField(toks []token) bool {
	for _, t := range toks {
		if t.kind != Literal {
			return true
		}
	}
	return false
}

func mergeLiterals(toks []token) []token {
	out := make([]token, 0, len(toks))
	for _, t := range toks {
		if t.kind == Literal {
			if t.text == "" {
				continue
			}
			if n := len(out); n > 0 && out[n-1].kind == Literal {
				out[n-1].text += t.text
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
