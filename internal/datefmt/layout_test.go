package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newYear = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

func TestLayout_FormatByLocale(t *testing.T) {
	afternoon := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		locale   string
		opts     Options
		at       time.Time
		expected string
	}{
		{"en-US", Options{}, newYear, "1/1/2023, 12:00 am"},
		{"en-US", Options{}, afternoon, "3/5/2024, 2:07 pm"},
		{"en-GB", Options{}, afternoon, "05/03/2024, 14:07"},
		{"de-DE", Options{}, afternoon, "05.03.2024, 14:07"},
		{"fr-FR", Options{}, afternoon, "05/03/2024 14:07"},
		{"es-ES", Options{}, afternoon, "5/3/2024, 14:07"},
		{"sv-SE", Options{}, newYear, "2023-01-01 00:00"},
		{"ja-JP", Options{}, afternoon, "2024/03/05 14:07"},
		{"zh-CN", Options{}, afternoon, "2024/3/5 下午2:07"},
		{"en-US", Options{Second: StyleNumeric}, afternoon, "3/5/2024, 2:07:09 pm"},
		{"en-US", Options{Hour12: boolPtr(false)}, afternoon, "3/5/2024, 14:07"},
		{"en-GB", Options{Hour12: boolPtr(true)}, afternoon, "05/03/2024, 2:07 PM"},
		{"en-US", Options{Weekday: StyleShort}, afternoon, "Tue, 3/5/2024, 2:07 pm"},
		{"en-US", Options{Month: StyleLong, Weekday: StyleLong}, afternoon, "Tuesday, March 5, 2024, 2:07 pm"},
		{"de-DE", Options{Month: StyleShort}, afternoon, "5. März 2024, 14:07"},
		{"de-DE", Options{Month: StyleLong, Weekday: StyleLong}, afternoon, "Dienstag, 5. März 2024, 14:07"},
		{"fr-FR", Options{Month: StyleLong, Hour: StyleHidden, Minute: StyleHidden}, afternoon, "5 mars 2024"},
		{"ja-JP", Options{Month: StyleLong, Hour: StyleHidden, Minute: StyleHidden}, afternoon, "2024年3月5日"},
		{"ja-JP", Options{Weekday: StyleShort, Hour: StyleHidden, Minute: StyleHidden}, afternoon, "2024/03/05火"},
		{"en-US", Options{Year: StyleTwoDigit, Month: StyleTwoDigit, Day: StyleTwoDigit}, afternoon, "03/05/24, 2:07 pm"},
		{"en-US", Options{Hour: StyleHidden, Minute: StyleHidden}, afternoon, "3/5/2024"},
		{"en-US", Options{Year: StyleHidden, Month: StyleHidden, Day: StyleHidden}, afternoon, "2:07 pm"},
		{"en-US", Options{Month: StyleHidden}, afternoon, "5/2024, 2:07 pm"},
		{"en-US", Options{Day: StyleHidden}, afternoon, "3/2024, 2:07 pm"},
		{"en-US", Options{Day: StyleHidden, Month: StyleLong}, afternoon, "March 2024, 2:07 pm"},
		{"en-US", Options{Year: StyleHidden, Month: StyleLong}, afternoon, "March 5, 2:07 pm"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.expected, func(t *testing.T) {
			l := NewLayout(tt.locale, tt.opts)
			assert.Equal(t, tt.expected, l.Format(tt.at))
		})
	}
}

func TestLayout_Segments(t *testing.T) {
	l := NewLayout("sv-SE", Options{})
	segs := l.Segments(newYear)

	expected := []Segment{
		{Year, "2023"},
		{Literal, "-"},
		{Month, "01"},
		{Literal, "-"},
		{Day, "01"},
		{Literal, " "},
		{Hour, "00"},
		{Literal, ":"},
		{Minute, "00"},
	}
	assert.Equal(t, expected, segs)
}

func TestLayout_SegmentPositionsAreStable(t *testing.T) {
	l := NewLayout("en-US", Options{Month: StyleLong, Weekday: StyleLong, Second: StyleNumeric})

	base := l.Segments(newYear)
	for _, at := range []time.Time{
		newYear.AddDate(0, 8, 12),
		newYear.Add(13*time.Hour + 59*time.Minute),
		time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC),
	} {
		segs := l.Segments(at)
		require.Len(t, segs, len(base))
		for i := range segs {
			assert.Equal(t, base[i].Kind, segs[i].Kind, "segment %d", i)
		}
	}
}

func TestEditableBounds(t *testing.T) {
	styles := []Style{StyleDefault, StyleHidden}
	for _, locale := range Locales() {
		for _, weekday := range []Style{StyleHidden, StyleShort} {
			for _, year := range styles {
				for _, minute := range styles {
					opts := Options{Weekday: weekday, Year: year, Minute: minute, Second: StyleNumeric}
					segs := NewLayout(locale, opts).Segments(newYear)

					first, last := EditableBounds(segs)
					require.GreaterOrEqual(t, first, 0, "%s %+v", locale, opts)
					assert.LessOrEqual(t, first, last)
					assert.True(t, segs[first].Editable())
					assert.True(t, segs[last].Editable())
				}
			}
		}
	}
}

func TestEditableBounds_NoEditableSegments(t *testing.T) {
	opts := Options{
		Year: StyleHidden, Month: StyleHidden, Day: StyleHidden,
		Hour: StyleHidden, Minute: StyleHidden, Weekday: StyleLong,
	}
	segs := NewLayout("en-US", opts).Segments(newYear)

	first, last := EditableBounds(segs)
	assert.Equal(t, -1, first)
	assert.Equal(t, -1, last)
	assert.Equal(t, []Segment{{Weekday, "Sunday"}}, segs)
}

func TestLayout_NoAdjacentLiterals(t *testing.T) {
	for _, locale := range Locales() {
		segs := NewLayout(locale, Options{Weekday: StyleShort, Month: StyleLong, Second: StyleNumeric}).Segments(newYear)
		for i := 1; i < len(segs); i++ {
			assert.False(t, segs[i].Kind == Literal && segs[i-1].Kind == Literal, "%s: adjacent literals at %d", locale, i)
		}
	}
}

func TestOptions_Merge(t *testing.T) {
	merged := Options{Second: StyleTwoDigit, Month: StyleShort}.Merge()

	assert.Equal(t, StyleNumeric, merged.Year)
	assert.Equal(t, StyleShort, merged.Month)
	assert.Equal(t, StyleNumeric, merged.Day)
	assert.Equal(t, StyleHidden, merged.Weekday)
	assert.Equal(t, StyleNumeric, merged.Hour)
	assert.Equal(t, StyleNumeric, merged.Minute)
	assert.Equal(t, StyleTwoDigit, merged.Second)
	assert.Nil(t, merged.Hour12)
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, Options{}.Validate())
	assert.NoError(t, Options{Month: StyleLong, Weekday: StyleShort, Year: StyleHidden}.Validate())

	err := Options{Day: StyleLong}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day")

	assert.Error(t, Options{Weekday: StyleNumeric}.Validate())
	assert.Error(t, Options{Hour: "sometimes"}.Validate())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		matched  bool
	}{
		{"en-US", "en-US", true},
		{"de", "de-DE", true},
		{"de-AT", "de-AT", true},
		{"ja", "ja-JP", true},
		{"zh-CN", "zh-Hans-CN", true},
		{"not a locale!", "en-US", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tag, ok := Resolve(tt.input)
			assert.Equal(t, tt.expected, tag.String())
			assert.Equal(t, tt.matched, ok)
		})
	}
}

func TestSystemLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "de_DE.UTF-8")
	t.Setenv("LANG", "en_US.UTF-8")
	assert.Equal(t, "de-DE", SystemLocale())

	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "C")
	assert.Equal(t, "", SystemLocale())

	t.Setenv("LANG", "fr_FR@euro")
	assert.Equal(t, "fr-FR", SystemLocale())

	tag, ok := Resolve("")
	assert.True(t, ok)
	assert.Equal(t, "fr-FR", tag.String())
}

func TestParsePattern_Groups(t *testing.T) {
	toks := parsePattern("{y}/{M}[({E})]")

	require.Len(t, toks, 6)
	assert.Equal(t, token{kind: Year}, toks[0])
	assert.Equal(t, token{kind: Literal, text: "/"}, toks[1])
	assert.Equal(t, token{kind: Month}, toks[2])
	assert.Equal(t, token{kind: Literal, text: "(", group: 1}, toks[3])
	assert.Equal(t, token{kind: Weekday, group: 1}, toks[4])
	assert.Equal(t, token{kind: Literal, text: ")", group: 1}, toks[5])
}

func TestLocales_ComeFromCLDR(t *testing.T) {
	all := Locales()
	assert.GreaterOrEqual(t, len(all), 40)
	for _, loc := range []string{"en-US", "pt-BR", "ko-KR", "zh-Hant-TW"} {
		assert.Contains(t, all, loc)
	}
	assert.IsIncreasing(t, all)
}

func TestLayout_NamesFromTranslator(t *testing.T) {
	march := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	opts := Options{Month: StyleLong, Weekday: StyleShort}

	tests := []struct {
		locale  string
		month   string
		weekday string
	}{
		{"en-US", "March", "Tue"},
		{"de-DE", "März", "Di."},
		{"fr-FR", "mars", "mar."},
		{"pt-BR", "março", "ter."},
		{"ja-JP", "3月", "火"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			segs := NewLayout(tt.locale, opts).Segments(march)
			got := map[Kind]string{}
			for _, s := range segs {
				got[s.Kind] = s.Text
			}
			assert.Equal(t, tt.month, got[Month])
			assert.Equal(t, tt.weekday, got[Weekday])
		})
	}
}

func TestLayout_DayPeriodFromTranslator(t *testing.T) {
	evening := time.Date(2024, time.March, 5, 21, 0, 0, 0, time.UTC)
	opts := Options{Year: StyleHidden, Month: StyleHidden, Day: StyleHidden}

	assert.Equal(t, "下午9:00", NewLayout("zh-CN", opts).Format(evening))
	assert.Equal(t, "PM 9:00", NewLayout("ko-KR", opts).Format(evening))
	assert.Equal(t, "9:00 pm", NewLayout("en-US", opts).Format(evening))
}

func TestLayout_HiddenFieldKeepsOneSeparator(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	l := NewLayout("en-US", Options{Day: StyleHidden, Month: StyleLong, Hour: StyleHidden, Minute: StyleHidden})

	assert.Equal(t, []Segment{
		{Month, "March"},
		{Literal, " "},
		{Year, "2024"},
	}, l.Segments(at))
}

func TestReadLayout(t *testing.T) {
	digits := map[int]Kind{2033: Year, 1: Month, 5: Day}

	toks, padded, ok := readLayout("05.01.2033", digits, nil)
	require.True(t, ok)
	assert.Equal(t, []token{
		{kind: Day}, {kind: Literal, text: "."}, {kind: Month}, {kind: Literal, text: "."}, {kind: Year},
	}, toks)
	assert.True(t, padded[Day])
	assert.True(t, padded[Month])
	assert.False(t, padded[Year])

	toks, _, ok = readLayout("5 de enero de 2033", digits, map[string]Kind{"enero": Month})
	require.True(t, ok)
	assert.Equal(t, []token{
		{kind: Day}, {kind: Literal, text: " de "}, {kind: Month}, {kind: Literal, text: " de "}, {kind: Year},
	}, toks)

	_, _, ok = readLayout("5/5/2033", digits, nil)
	assert.False(t, ok, "a field read twice")

	_, _, ok = readLayout("7/1/2033", digits, nil)
	assert.False(t, ok, "an unknown number")
}

func TestDayPeriod(t *testing.T) {
	assert.Equal(t, "pm", dayPeriod("9:04 pm"))
	assert.Equal(t, "下午", dayPeriod("下午9:04"))
	assert.Equal(t, "", dayPeriod("21:04"))
	assert.Equal(t, "", dayPeriod("no digits"))
}
