package formatter

import (
	"fmt"
	"io"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// PrintReportSummary prints resource counts for a full inventory run, plus
// any per-type collection failures at the bottom.
func PrintReportSummary(out io.Writer, report *models.InventoryReport) {
	fmt.Fprintln(out, "\n## Inventory Summary")

	w := newTabWriter(out)
	fmt.Fprintln(w, "RESOURCE TYPE\tCOUNT\tSTATUS")

	rows := []struct {
		resourceType string
		count        int
	}{
		{"instances", len(report.Instances)},
		{"loadBalancers", len(report.LoadBalancers)},
		{"vpcs", len(report.VPCs)},
		{"logGroups", len(report.LogGroups)},
		{"buckets", len(report.Buckets)},
		{"functions", len(report.Functions)},
	}
	for _, row := range rows {
		status := "ok"
		if report.Failed(row.resourceType) {
			status = "partial"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", row.resourceType, row.count, status)
	}
	w.Flush()

	for _, failure := range report.Errors {
		fmt.Fprintf(out, "Error collecting %s: %s\n", failure.ResourceType, failure.Message)
	}
}
