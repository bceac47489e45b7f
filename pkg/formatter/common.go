package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// newTabWriter returns a tabwriter configured for kubectl style columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
}

// printScanHeader prints the scan timestamp and duration above a table.
func printScanHeader(w io.Writer, scanTime time.Time, scanDuration time.Duration) {
	fmt.Fprintf(w, "Scan time: %s (completed in %.2f seconds)\n",
		scanTime.Format("2006-01-02 15:04:05"),
		scanDuration.Seconds())
}

// orPlaceholder substitutes a dash for empty values so columns stay aligned.
func orPlaceholder(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
