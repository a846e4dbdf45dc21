package datefmt

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar_EG"
	"github.com/go-playground/locales/cs_CZ"
	"github.com/go-playground/locales/da_DK"
	"github.com/go-playground/locales/de_AT"
	"github.com/go-playground/locales/de_CH"
	"github.com/go-playground/locales/de_DE"
	"github.com/go-playground/locales/el_GR"
	"github.com/go-playground/locales/en_AU"
	"github.com/go-playground/locales/en_CA"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_IE"
	"github.com/go-playground/locales/en_IN"
	"github.com/go-playground/locales/en_NZ"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es_AR"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/es_MX"
	"github.com/go-playground/locales/fi_FI"
	"github.com/go-playground/locales/fr_BE"
	"github.com/go-playground/locales/fr_CA"
	"github.com/go-playground/locales/fr_CH"
	"github.com/go-playground/locales/fr_FR"
	"github.com/go-playground/locales/he_IL"
	"github.com/go-playground/locales/hi_IN"
	"github.com/go-playground/locales/hu_HU"
	"github.com/go-playground/locales/id_ID"
	"github.com/go-playground/locales/it_IT"
	"github.com/go-playground/locales/ja_JP"
	"github.com/go-playground/locales/ko_KR"
	"github.com/go-playground/locales/ms_MY"
	"github.com/go-playground/locales/nb_NO"
	"github.com/go-playground/locales/nl_BE"
	"github.com/go-playground/locales/nl_NL"
	"github.com/go-playground/locales/pl_PL"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/pt_PT"
	"github.com/go-playground/locales/ro_RO"
	"github.com/go-playground/locales/ru_RU"
	"github.com/go-playground/locales/sk_SK"
	"github.com/go-playground/locales/sv_SE"
	"github.com/go-playground/locales/th_TH"
	"github.com/go-playground/locales/tr_TR"
	"github.com/go-playground/locales/uk_UA"
	"github.com/go-playground/locales/vi_VN"
	"github.com/go-playground/locales/zh_Hans_CN"
	"github.com/go-playground/locales/zh_Hant_TW"
	"golang.org/x/text/language"
)

// translators are the CLDR locales with a layout. Every locale is its own
// package in go-playground/locales, so each one is registered here.
var translators = []func() locales.Translator{
	ar_EG.New, cs_CZ.New, da_DK.New, de_AT.New, de_CH.New, de_DE.New,
	el_GR.New, en_AU.New, en_CA.New, en_GB.New, en_IE.New, en_IN.New,
	en_NZ.New, en_US.New, es_AR.New, es_ES.New, es_MX.New, fi_FI.New,
	fr_BE.New, fr_CA.New, fr_CH.New, fr_FR.New, he_IL.New, hi_IN.New,
	hu_HU.New, id_ID.New, it_IT.New, ja_JP.New, ko_KR.New, ms_MY.New,
	nb_NO.New, nl_BE.New, nl_NL.New, pl_PL.New, pt_BR.New, pt_PT.New,
	ro_RO.New, ru_RU.New, sk_SK.New, sv_SE.New, th_TH.New, tr_TR.New,
	uk_UA.New, vi_VN.New, zh_Hans_CN.New, zh_Hant_TW.New,
}

// fallbackLocale is used when nothing matches the requested tag
const fallbackLocale = "en-US"

// dateTimeJoiners is the text between the date and the time. CLDR keeps it
// in the dateTimeFormats the translators do not expose. Other languages use
// ", ".
var dateTimeJoiners = map[string]string{
	"fi": " ",
	"fr": " ",
	"hu": " ",
	"ja": " ",
	"ko": " ",
	"sv": " ",
	"zh": " ",
}

// Fallback layouts for translators whose formats cannot be read back.
const (
	isoDate     = "{y}-{M}-{d}"
	clockLayout = "{h}:{m}[:{s}][ {a}]"
)

// Reference moments for reading layouts back from a translator. No two
// fields share a value: 2033 (or 33), January, the 5th, a Wednesday;
// 09:04 and 21:04:05.
var (
	sampleDay     = time.Date(2033, time.January, 5, 0, 0, 0, 0, time.UTC)
	sampleMorning = time.Date(2033, time.January, 5, 9, 4, 0, 0, time.UTC)
	sampleEvening = time.Date(2033, time.January, 5, 21, 4, 5, 0, time.UTC)
)

// localeData is the layout of one locale. Month and weekday names are
// looked up on the translator when formatting.
type localeData struct {
	tag        language.Tag
	tr         locales.Translator
	numeric    []token
	textual    []token
	clock      []token
	joiner     string
	hour12     bool
	padMonth   bool
	padDay     bool
	padText    bool
	padHour    bool
	am, pm     string
}

type catalog struct {
	all      []*localeData
	matcher  language.Matcher
	fallback *localeData
}

var loadCatalog = sync.OnceValue(func() *catalog {
	c := &catalog{}
	for _, newTranslator := range translators {
		c.all = append(c.all, newLocaleData(newTranslator()))
	}
	sort.Slice(c.all, func(i, j int) bool {
		return c.all[i].tag.String() < c.all[j].tag.String()
	})

	tags := make([]language.Tag, len(c.all))
	for i, l := range c.all {
		tags[i] = l.tag
		if l.tag.String() == fallbackLocale {
			c.fallback = l
		}
	}
	if c.fallback == nil {
		c.fallback = c.all[0]
	}
	c.matcher = language.NewMatcher(tags)
	return c
})

// Locales returns the tags of all supported locales in BCP 47 form, sorted
func Locales() []string {
	all := loadCatalog().all
	out := make([]string, len(all))
	for i, l := range all {
		out[i] = l.tag.String()
	}
	return out
}

// Resolve finds the supported locale closest to the requested one.
// An empty locale uses SystemLocale. The boolean is false when nothing
// matched and the fallback was used.
func Resolve(locale string) (language.Tag, bool) {
	l, ok := resolve(locale)
	return l.tag, ok
}

func resolve(locale string) (*localeData, bool) {
	c := loadCatalog()
	if locale == "" {
		locale = SystemLocale()
	}
	if locale == "" {
		return c.fallback, true
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return c.fallback, false
	}

	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return c.fallback, false
	}
	return c.all[idx], true
}

// SystemLocale reads the POSIX locale environment (LC_ALL, LC_TIME, LANG)
// and converts it to a BCP 47 tag. It returns "" for the C/POSIX locale.
func SystemLocale() string {
	for _, env := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "C" || v == "POSIX" || v == "" {
			return ""
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}

// newLocaleData reads the layouts of tr back from its own short, long and
// full date formats and its time formats.
func newLocaleData(tr locales.Translator) *localeData {
	tag := language.Make(strings.ReplaceAll(tr.Locale(), "_", "-"))
	base, _ := tag.Base()

	l := &localeData{tag: tag, tr: tr, joiner: ", "}
	if j, ok := dateTimeJoiners[base.String()]; ok {
		l.joiner = j
	}

	dateDigits := map[int]Kind{2033: Year, 33: Year, 1: Month, 5: Day}

	numeric, padded, ok := readLayout(tr.FmtDateShort(sampleDay), dateDigits, nil)
	if !ok || !hasKinds(numeric, Year, Month, Day) {
		numeric, padded = parsePattern(isoDate), map[Kind]bool{Month: true, Day: true}
	}
	l.numeric = numeric
	l.padMonth, l.padDay = padded[Month], padded[Day]

	// the month must be read by name here, or a numeric long format would
	// put the name next to its own suffix (2024年三月月5日)
	monthName := map[string]Kind{tr.MonthWide(sampleDay.Month()): Month}
	dayYear := map[int]Kind{2033: Year, 33: Year, 5: Day}
	textual, textPadded, ok := readLayout(tr.FmtDateLong(sampleDay), dayYear, monthName)
	if !ok || !hasKinds(textual, Year, Month, Day) {
		textual, textPadded = numeric, padded
	}
	l.padText = textPadded[Day]

	lead, sep := weekdayPlacement(tr)
	l.numeric = withWeekday(l.numeric, lead, sep)
	l.textual = withWeekday(textual, lead, sep)

	morning := tr.FmtTimeShort(sampleMorning)
	evening := tr.FmtTimeShort(sampleEvening)
	l.hour12 = !strings.Contains(evening, "21")
	l.padHour = strings.Contains(morning, "09")
	l.am, l.pm = "AM", "PM"
	if l.hour12 {
		if am, pm := dayPeriod(morning), dayPeriod(evening); am != "" && pm != "" && am != pm {
			l.am, l.pm = am, pm
		}
	}
	l.clock = readClock(tr, l.pm)
	return l
}

// readClock builds the time layout from the medium time format, which shows
// seconds. Seconds and the day period become optional groups.
func readClock(tr locales.Translator, pm string) []token {
	digits := map[int]Kind{21: Hour, 9: Hour, 4: Minute, 5: Second}
	toks, _, ok := readLayout(tr.FmtTimeMedium(sampleEvening), digits, map[string]Kind{pm: DayPeriod})
	if !ok || !hasKinds(toks, Hour, Minute) {
		return parsePattern(clockLayout)
	}

	if !hasKinds(toks, Second) {
		sep := token{kind: Literal, text: ":"}
		for i := 1; i < len(toks); i++ {
			if toks[i].kind == Minute && toks[i-1].kind == Literal {
				sep.text = toks[i-1].text
			}
		}
		toks = insertAfter(toks, Minute, sep, token{kind: Second})
	}
	if !hasKinds(toks, DayPeriod) {
		toks = append(toks, token{kind: Literal, text: " "}, token{kind: DayPeriod})
	}

	toks = groupField(toks, Second, 1)
	return groupField(toks, DayPeriod, 2)
}

// weekdayPlacement reports whether the weekday leads the full date and the
// text between them.
func weekdayPlacement(tr locales.Translator) (lead bool, sep string) {
	full := tr.FmtDateFull(sampleDay)
	long := tr.FmtDateLong(sampleDay)
	day := tr.WeekdayWide(sampleDay.Weekday())

	switch {
	case len(full) < len(day)+len(long):
	case strings.HasPrefix(full, day) && strings.HasSuffix(full, long):
		return true, full[len(day) : len(full)-len(long)]
	case strings.HasPrefix(full, long) && strings.HasSuffix(full, day):
		return false, full[len(long) : len(full)-len(day)]
	}
	return true, " "
}

// withWeekday adds the weekday and its separator as one optional group
func withWeekday(toks []token, lead bool, sep string) []token {
	const group = 1
	day := token{kind: Weekday, group: group}
	gap := token{kind: Literal, text: sep, group: group}

	out := make([]token, 0, len(toks)+2)
	if lead {
		out = append(out, day)
		if sep != "" {
			out = append(out, gap)
		}
		return append(out, toks...)
	}
	out = append(out, toks...)
	if sep != "" {
		out = append(out, gap)
	}
	return append(out, day)
}

// groupField puts the field of kind k and the literal joining it to the rest
// of the layout into group g.
func groupField(toks []token, k Kind, g int) []token {
	out := append([]token(nil), toks...)
	for i := range out {
		if out[i].kind != k {
			continue
		}
		out[i].group = g
		switch {
		case i == 0 && len(out) > 1 && out[1].kind == Literal:
			out[1].group = g
		case i > 0 && out[i-1].kind == Literal:
			out[i-1].group = g
		}
	}
	return out
}

func insertAfter(toks []token, k Kind, extra ...token) []token {
	for i, t := range toks {
		if t.kind == k {
			out := append([]token(nil), toks[:i+1]...)
			out = append(out, extra...)
			return append(out, toks[i+1:]...)
		}
	}
	return toks
}

// dayPeriod strips the clock digits and the separators between them from a
// formatted time, leaving the day period.
func dayPeriod(s string) string {
	first := strings.IndexAny(s, "0123456789")
	last := strings.LastIndexAny(s, "0123456789")
	if first < 0 {
		return ""
	}
	return strings.TrimSpace(s[:first] + s[last+1:])
}

// readLayout turns text formatted by a translator back into tokens. Digit
// runs are looked up by value in digits and names are matched before
// digits. padded reports which fields were written with a leading zero.
func readLayout(s string, digits map[int]Kind, names map[string]Kind) (toks []token, padded map[Kind]bool, ok bool) {
	padded = map[Kind]bool{}
	seen := map[Kind]bool{}
	var lit strings.Builder

	field := func(k Kind) bool {
		if seen[k] {
			return false
		}
		seen[k] = true
		if lit.Len() > 0 {
			toks = append(toks, token{kind: Literal, text: lit.String()})
			lit.Reset()
		}
		toks = append(toks, token{kind: k})
		return true
	}

	for i := 0; i < len(s); {
		if name, k := longestName(s[i:], names); name != "" {
			if !field(k) {
				return nil, nil, false
			}
			i += len(name)
			continue
		}

		if !isDigit(s[i]) {
			lit.WriteByte(s[i])
			i++
			continue
		}

		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		v, _ := strconv.Atoi(s[i:j])
		k, known := digits[v]
		if !known || !field(k) {
			return nil, nil, false
		}
		if s[i] == '0' && j-i == 2 {
			padded[k] = true
		}
		i = j
	}

	if lit.Len() > 0 {
		toks = append(toks, token{kind: Literal, text: lit.String()})
	}
	return toks, padded, true
}

func longestName(s string, names map[string]Kind) (string, Kind) {
	var (
		best string
		kind Kind
	)
	for name, k := range names {
		if name != "" && len(name) > len(best) && strings.HasPrefix(s, name) {
			best, kind = name, k
		}
	}
	return best, kind
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hasKinds(toks []token, kinds ...Kind) bool {
	for _, k := range kinds {
		found := false
		for _, t := range toks {
			if t.kind == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
