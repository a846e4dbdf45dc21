package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/dateprompt/internal/datefmt"
)

// sampleDate is shown next to each locale so layouts can be compared
var sampleDate = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

func newLocalesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locales [pattern]",
		Short: "List supported locales with a sample date",
		Long:  `Lists the locales with a built-in layout. An optional pattern filters them by fuzzy match.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locales := datefmt.Locales()
			if len(args) == 1 {
				locales = matchLocales(args[0], locales)
				if len(locales) == 0 {
					return fmt.Errorf("no locale matches %q", args[0])
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			for _, loc := range locales {
				numeric := datefmt.NewLayout(loc, datefmt.Options{})
				textual := datefmt.NewLayout(loc, datefmt.Options{Month: datefmt.StyleLong, Weekday: datefmt.StyleShort})
				fmt.Fprintf(tw, "%s\t%s\t%s\n", loc, numeric.Format(sampleDate), textual.Format(sampleDate))
			}
			return tw.Flush()
		},
	}
}

// matchLocales returns the locales matching pattern, best match first
func matchLocales(pattern string, locales []string) []string {
	matches := fuzzy.Find(pattern, locales)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

// warnUnknownLocale tells the user when a locale falls back to the default
// layout, suggesting the closest supported one.
func warnUnknownLocale(cmd *cobra.Command, locale string) {
	if locale == "" {
		return
	}
	if _, ok := datefmt.Resolve(locale); ok {
		return
	}

	tag, _ := datefmt.Resolve(locale)
	msg := fmt.Sprintf("unknown locale %q, using %s", locale, tag)
	if suggestions := matchLocales(locale, datefmt.Locales()); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", suggestions[0])
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
}
