package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/dateprompt/internal/config"
	"github.com/MikeBiancalana/dateprompt/internal/datefmt"
	"github.com/MikeBiancalana/dateprompt/internal/sequence"
)

type askOptions struct {
	name       string
	message    string
	locale     string
	def        string
	min        string
	max        string
	transform  string
	month      string
	weekday    string
	layout     string
	clearable  bool
	required   bool
	seconds    bool
	hour12     bool
	helpFooter bool
	noSave     bool
}

func newAskCommand() *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask for a single date",
		Long: `Shows one date prompt and prints the chosen date.

Keys: left/right select a field, up/down change it by 1, shift+up/down by 10,
shift+alt+up/down by 100. Delete clears the date when --clearable is set and
enter submits. A cleared answer prints an empty line.`,
		Example: `  dateprompt ask --message "Deadline?" --locale de-DE --default 2024-06-01
  dateprompt ask --weekday short --month long --seconds --layout 2006-01-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "date", "Answer name used in the history")
	f.StringVarP(&opts.message, "message", "m", "", "Question text (defaults to the name)")
	f.StringVarP(&opts.locale, "locale", "l", "", "BCP 47 locale for the layout (defaults to the system locale)")
	f.StringVarP(&opts.def, "default", "d", "", "Initial date: YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339 (defaults to now)")
	f.StringVar(&opts.min, "min", "", "Earliest accepted date")
	f.StringVar(&opts.max, "max", "", "Latest accepted date")
	f.StringVar(&opts.transform, "transform", "none", "Display transform: none, upper, relative, iso")
	f.StringVar(&opts.month, "month", "", "Month style: numeric, 2-digit, short, long")
	f.StringVar(&opts.weekday, "weekday", "", "Weekday style: short, long")
	f.StringVar(&opts.layout, "layout", time.RFC3339, "Go time layout used to print the answer")
	f.BoolVar(&opts.clearable, "clearable", false, "Allow clearing the date with delete")
	f.BoolVar(&opts.required, "required", false, "Reject a cleared answer")
	f.BoolVar(&opts.seconds, "seconds", false, "Show and edit seconds")
	f.BoolVar(&opts.hour12, "hour12", false, "Force a 12-hour (true) or 24-hour (false) clock")
	f.BoolVar(&opts.helpFooter, "help-footer", false, "Show key help below the prompt")
	f.BoolVar(&opts.noSave, "no-save", false, "Do not record the answer in the history")

	return cmd
}

// questionnaire turns the flags into a one-question questionnaire so ask goes
// through the same validation as run.
func (o *askOptions) questionnaire(cmd *cobra.Command) (*config.Questionnaire, error) {
	spec := config.QuestionSpec{
		Type:      config.TypeDate,
		Name:      o.name,
		Message:   o.message,
		Default:   o.def,
		Locale:    o.locale,
		Clearable: o.clearable,
		Required:  o.required,
		Min:       o.min,
		Max:       o.max,
		Transform: config.TransformName(o.transform),
		Format: datefmt.Options{
			Month:   datefmt.Style(o.month),
			Weekday: datefmt.Style(o.weekday),
		},
	}
	if o.seconds {
		spec.Format.Second = datefmt.StyleNumeric
	}
	if cmd.Flags().Changed("hour12") {
		hour12 := o.hour12
		spec.Format.Hour12 = &hour12
	}

	q := &config.Questionnaire{Questions: []config.QuestionSpec{spec}}
	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return q, nil
}

func runAsk(cmd *cobra.Command, opts *askOptions) error {
	q, err := opts.questionnaire(cmd)
	if err != nil {
		return err
	}

	warnUnknownLocale(cmd, opts.locale)

	if err := initTUILogging(); err != nil {
		return err
	}

	runner := sequence.NewRunner(newAsker(cmd, opts.helpFooter), clock)
	res, err := runner.Run(cmd.Context(), q)
	if err != nil {
		return err
	}

	answer, _ := res.Answers[opts.name].(*time.Time)
	if answer == nil {
		fmt.Fprintln(cmd.OutOrStdout())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), answer.Format(opts.layout))
	}

	if opts.noSave {
		return nil
	}
	_, err = saveResult("ask", res)
	return err
}
