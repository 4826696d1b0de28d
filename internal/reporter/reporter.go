package reporter

import (
	"fmt"
	"io"
	"strings"

	"DispositionSentinel/internal/model"
)

// WriteDates writes the disposition dates one per line, ascending, to w.
// This is the program's machine-readable output.
func WriteDates(w io.Writer, days []model.DispositionDay) error {
	for _, d := range days {
		if _, err := fmt.Fprintln(w, d.Date.Format("2006-01-02")); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// FormatSummary builds a human-readable run summary for the log.
func FormatSummary(sourceFile string, recordCount int, rep *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("evaluated %d trading days from %s: ", recordCount, sourceFile))
	b.WriteString(fmt.Sprintf("%d attention day(s), %d disposition day(s)", len(rep.Attention), len(rep.Dispositions)))

	for _, d := range rep.Dispositions {
		rules := make([]string, len(d.Rules))
		for i, r := range d.Rules {
			rules[i] = string(r)
		}
		b.WriteString(fmt.Sprintf("\n  %s 處置股 [%s]", d.Date.Format("2006-01-02"), strings.Join(rules, ", ")))
	}

	return b.String()
}
