package formatter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/notpepejulian/aws-manager/internal/models"
)

// PrintLoadBalancersTable prints a formatted table of ELBv2 load balancers
func PrintLoadBalancersTable(out io.Writer, lbs []models.LoadBalancerInfo, scanTime time.Time, scanDuration time.Duration) {
	if len(lbs) == 0 {
		fmt.Fprintln(out, "No load balancers found.")
		return
	}

	sort.Slice(lbs, func(i, j int) bool {
		return lbs[i].Name < lbs[j].Name
	})

	w := newTabWriter(out)
	printScanHeader(w, scanTime, scanDuration)

	fmt.Fprintln(w, "NAME\tTYPE\tSCHEME\tSTATE\tVPC\tLISTENERS\tTARGET GROUPS\tCREATED")

	for _, lb := range lbs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			lb.Name,
			lb.Type,
			lb.Scheme,
			lb.State,
			orPlaceholder(lb.VpcID),
			listenerPorts(lb.Listeners),
			len(lb.TargetGroups),
			lb.CreatedTime.Format("2006-01-02"),
		)
	}

	w.Flush()
}

// listenerPorts renders listeners as "HTTP:80, HTTPS:443"
func listenerPorts(listeners []models.ListenerInfo) string {
	if len(listeners) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(listeners))
	for _, l := range listeners {
		parts = append(parts, l.Protocol+":"+strconv.Itoa(int(l.Port)))
	}
	return strings.Join(parts, ", ")
}
