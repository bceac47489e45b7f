package formatter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// PrintVPCsTable prints a formatted table of VPCs with their networking counts
func PrintVPCsTable(out io.Writer, vpcs []models.VPCInfo, scanTime time.Time, scanDuration time.Duration) {
	if len(vpcs) == 0 {
		fmt.Fprintln(out, "No VPCs found.")
		return
	}

	// Default VPC first, then by ID
	sort.Slice(vpcs, func(i, j int) bool {
		if vpcs[i].IsDefault != vpcs[j].IsDefault {
			return vpcs[i].IsDefault
		}
		return vpcs[i].VpcID < vpcs[j].VpcID
	})

	w := newTabWriter(out)
	printScanHeader(w, scanTime, scanDuration)

	fmt.Fprintln(w, "VPC ID\tNAME\tCIDR\tSTATE\tDEFAULT\tSUBNETS\tROUTE TABLES")

	for _, vpc := range vpcs {
		isDefault := ""
		if vpc.IsDefault {
			isDefault = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			vpc.VpcID,
			orPlaceholder(vpc.Tags["Name"]),
			vpc.CidrBlock,
			vpc.State,
			orPlaceholder(isDefault),
			len(vpc.Subnets),
			len(vpc.RouteTables),
		)
	}

	w.Flush()
}
