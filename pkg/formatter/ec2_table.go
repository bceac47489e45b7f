package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// PrintInstancesTable prints a formatted table of EC2 instances
func PrintInstancesTable(out io.Writer, instances []models.InstanceInfo, scanTime time.Time, scanDuration time.Duration) {
	if len(instances) == 0 {
		fmt.Fprintln(out, "No instances found.")
		return
	}

	// Sort instances by launch time (oldest first)
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].LaunchTime.Before(instances[j].LaunchTime)
	})

	w := newTabWriter(out)
	printScanHeader(w, scanTime, scanDuration)

	fmt.Fprintln(w, "INSTANCE ID\tNAME\tTYPE\tSTATE\tAZ\tPRIVATE IP\tPUBLIC IP\tVPC\tLAUNCHED")

	for _, instance := range instances {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			instance.InstanceID,
			getInstanceName(instance.Name),
			instance.InstanceType,
			instance.State,
			instance.AvailabilityZone,
			orPlaceholder(instance.PrivateIP),
			orPlaceholder(instance.PublicIP),
			orPlaceholder(instance.VpcID),
			instance.LaunchTime.Format("2006-01-02"),
		)
	}

	w.Flush()
}

// getInstanceName returns a formatted instance name or <unnamed> if empty
func getInstanceName(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return name
}

// PrintInstancesSummary displays instance counts grouped by state
func PrintInstancesSummary(out io.Writer, instances []models.InstanceInfo) {
	if len(instances) == 0 {
		return
	}

	stateCounts := map[string]int{}
	for _, instance := range instances {
		stateCounts[instance.State]++
	}

	states := make([]string, 0, len(stateCounts))
	for state := range stateCounts {
		states = append(states, state)
	}
	sort.Strings(states)

	fmt.Fprintln(out, "\n## EC2 Instances Summary")

	w := newTabWriter(out)
	fmt.Fprintln(w, "STATE\tINSTANCE COUNT")
	for _, state := range states {
		fmt.Fprintf(w, "%s\t%d\n", strings.ToUpper(state), stateCounts[state])
	}
	fmt.Fprintf(w, "Total:\t%d\n", len(instances))
	w.Flush()
}
