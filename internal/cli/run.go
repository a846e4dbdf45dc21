package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MikeBiancalana/dateprompt/internal/config"
	"github.com/MikeBiancalana/dateprompt/internal/sequence"
	"github.com/MikeBiancalana/dateprompt/internal/storage"
)

var (
	runNoSave     bool
	runTranscript bool
	runHelpFooter bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <questionnaire.yaml>",
		Short: "Ask the questions of a questionnaire file",
		Long: `Asks every question of a YAML questionnaire in order and prints the answers
as YAML. Messages may refer to earlier answers, e.g. "When does {{.who}} leave?".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestionnaire(cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&runNoSave, "no-save", false, "Do not record the answers in the history")
	cmd.Flags().BoolVar(&runTranscript, "transcript", false, "Also write a YAML transcript to the sessions directory")
	cmd.Flags().BoolVar(&runHelpFooter, "help-footer", false, "Show key help below each prompt")

	return cmd
}

func runQuestionnaire(cmd *cobra.Command, path string) error {
	q, err := config.LoadQuestionnaire(path)
	if err != nil {
		return err
	}

	for _, spec := range q.Questions {
		if spec.Type == config.TypeDate {
			warnUnknownLocale(cmd, spec.Locale)
		}
	}

	if err := initTUILogging(); err != nil {
		return err
	}

	runner := sequence.NewRunner(newAsker(cmd, runHelpFooter), clock)
	res, err := runner.Run(cmd.Context(), q)
	if err != nil {
		return err
	}

	if err := writeAnswersYAML(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	if runNoSave {
		return nil
	}

	session, err := saveResult(path, res)
	if err != nil {
		return err
	}

	if runTranscript {
		file, err := storage.NewFileStore("").WriteTranscript(session)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "transcript written to %s\n", file)
	}
	return nil
}

// writeAnswersYAML prints the answers as a YAML mapping in question order
func writeAnswersYAML(w io.Writer, res *sequence.Result) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range res.Names {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		value := &yaml.Node{}
		if err := value.Encode(res.Answers[name]); err != nil {
			return fmt.Errorf("failed to encode answer %q: %w", name, err)
		}
		doc.Content = append(doc.Content, key, value)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write answers: %w", err)
	}
	return enc.Close()
}
