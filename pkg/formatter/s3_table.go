package formatter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// PrintBucketsTable prints a formatted table of S3 buckets
func PrintBucketsTable(out io.Writer, buckets []models.BucketInfo, scanTime time.Time, scanDuration time.Duration) {
	if len(buckets) == 0 {
		fmt.Fprintln(out, "No buckets found.")
		return
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Name < buckets[j].Name
	})

	w := newTabWriter(out)
	printScanHeader(w, scanTime, scanDuration)

	fmt.Fprintln(w, "BUCKET\tREGION\tCREATED\tAGE")

	for _, bucket := range buckets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			bucket.Name,
			orPlaceholder(bucket.Region),
			bucket.CreationDate.Format("2006-01-02"),
			humanize.Time(bucket.CreationDate),
		)
	}

	w.Flush()
}
