package run

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteSummary prints the per-run outcome table shown at the end of a
// sweep: which simulation numbers succeeded, which failed and why.
func WriteSummary(out io.Writer, records []Record) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUM\tLABEL\tSTATUS\tDETAIL")

	succeeded := 0
	for _, rec := range records {
		detail := rec.OutputDir
		if rec.Err != nil {
			detail = rec.Err.Error()
		}
		if rec.Status == Success {
			succeeded++
		}
		fmt.Fprintf(w, "%03d\t%s\t%s\t%s\n", rec.Number, rec.Config.Label, rec.Status, detail)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d/%d runs succeeded\n", succeeded, len(records))
	return err
}
