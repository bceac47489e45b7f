package formatter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// PrintLogGroupsTable prints a formatted table of CloudWatch log groups
func PrintLogGroupsTable(out io.Writer, groups []models.LogGroupInfo, scanTime time.Time, scanDuration time.Duration) {
	if len(groups) == 0 {
		fmt.Fprintln(out, "No log groups found.")
		return
	}

	// Largest first
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].StoredBytes > groups[j].StoredBytes
	})

	w := newTabWriter(out)
	printScanHeader(w, scanTime, scanDuration)

	fmt.Fprintln(w, "LOG GROUP\tRETENTION\tMETRIC FILTERS\tSTORED\tCREATED")

	for _, group := range groups {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			group.Name,
			formatRetention(group.RetentionInDays),
			group.MetricFilterCount,
			humanize.IBytes(uint64(group.StoredBytes)),
			group.CreationTime.Format("2006-01-02"),
		)
	}

	w.Flush()
}

// formatRetention renders retention days, with 0 meaning never expire
func formatRetention(days int32) string {
	if days == 0 {
		return "Never expire"
	}
	return fmt.Sprintf("%d days", days)
}
