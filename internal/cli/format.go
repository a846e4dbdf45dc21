package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MikeBiancalana/dateprompt/internal/storage"
)

type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
	FormatCSV  OutputFormat = "csv"
)

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, tsv, csv)", s)
	}
}

type answerJSON struct {
	Session    string `json:"session"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Value      string `json:"value"`
	AnsweredAt string `json:"answered_at"`
}

func formatAnswers(w io.Writer, answers []storage.Answer, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return formatAnswersJSON(w, answers)
	case FormatCSV:
		return formatAnswersCSV(w, answers)
	default:
		return formatAnswersTSV(w, answers)
	}
}

func formatAnswersJSON(w io.Writer, answers []storage.Answer) error {
	out := make([]answerJSON, 0, len(answers))
	for _, a := range answers {
		out = append(out, answerJSON{
			Session:    a.SessionID,
			Name:       a.Name,
			Kind:       string(a.Kind),
			Value:      a.Value,
			AnsweredAt: a.AnsweredAt.Format(time.RFC3339),
		})
	}
	return json.NewEncoder(w).Encode(out)
}

func formatAnswersTSV(w io.Writer, answers []storage.Answer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "SESSION\tANSWERED\tNAME\tVALUE")
	for _, a := range answers {
		value := a.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(tw, "%.8s\t%s\t%s\t%s\n", a.SessionID, a.AnsweredAt.Format("2006-01-02 15:04"), a.Name, value)
	}
	return tw.Flush()
}

func formatAnswersCSV(w io.Writer, answers []storage.Answer) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"SESSION", "ANSWERED", "NAME", "KIND", "VALUE"})
	for _, a := range answers {
		cw.Write([]string{a.SessionID, a.AnsweredAt.Format(time.RFC3339), a.Name, string(a.Kind), a.Value})
	}
	cw.Flush()
	return cw.Error()
}
