package formatter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// PrintFunctionsTable prints a formatted table of Lambda functions
func PrintFunctionsTable(out io.Writer, functions []models.FunctionInfo, scanTime time.Time, scanDuration time.Duration) {
	if len(functions) == 0 {
		fmt.Fprintln(out, "No functions found.")
		return
	}

	sort.Slice(functions, func(i, j int) bool {
		return functions[i].Name < functions[j].Name
	})

	w := newTabWriter(out)
	printScanHeader(w, scanTime, scanDuration)

	fmt.Fprintln(w, "FUNCTION\tRUNTIME\tMEMORY\tTIMEOUT\tLAST MODIFIED")

	for _, fn := range functions {
		fmt.Fprintf(w, "%s\t%s\t%d MB\t%ds\t%s\n",
			fn.Name,
			orPlaceholder(fn.Runtime),
			fn.MemorySizeMB,
			fn.Timeout,
			fn.LastModified.Format("2006-01-02"),
		)
	}

	w.Flush()
}
