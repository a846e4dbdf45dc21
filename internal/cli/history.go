package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/dateprompt/internal/storage"
)

var (
	historyLimit  int
	historyName   string
	historyFormat string
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded answers",
		Long:  `Lists answers recorded by ask and run, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(historyFormat)
			if err != nil {
				return err
			}

			repo, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			var answers []storage.Answer
			if historyName != "" {
				answers, err = repo.ListAnswersByName(historyName, historyLimit)
			} else {
				answers, err = repo.ListAnswers(historyLimit)
			}
			if err != nil {
				return fmt.Errorf("failed to list answers: %w", err)
			}

			if len(answers) == 0 && format == FormatTSV {
				fmt.Fprintln(cmd.OutOrStdout(), "No answers recorded yet.")
				return nil
			}
			return formatAnswers(cmd.OutOrStdout(), answers, format)
		},
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of answers (0 for all)")
	cmd.Flags().StringVar(&historyName, "name", "", "Only show answers to this question")
	cmd.Flags().StringVarP(&historyFormat, "format", "f", "tsv", "Output format: tsv, json, csv")

	return cmd
}
