package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/notpepejulian/aws-manager/internal/models"
)

func TestPrintInstancesTable(t *testing.T) {
	var buf bytes.Buffer
	instances := []models.InstanceInfo{
		{
			InstanceID:       "i-0abc",
			Name:             "web-1",
			InstanceType:     "t3.micro",
			State:            "running",
			AvailabilityZone: "us-east-1a",
			PrivateIP:        "10.0.1.5",
			VpcID:            "vpc-1",
			LaunchTime:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{InstanceID: "i-0def", State: "stopped"},
	}

	PrintInstancesTable(&buf, instances, time.Now(), time.Second)

	out := buf.String()
	assert.Contains(t, out, "INSTANCE ID")
	assert.Contains(t, out, "i-0abc")
	assert.Contains(t, out, "web-1")
	assert.Contains(t, out, "<unnamed>")
}

func TestPrintInstancesTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintInstancesTable(&buf, nil, time.Now(), time.Second)
	assert.Contains(t, buf.String(), "No instances found.")
}

func TestListenerPorts(t *testing.T) {
	listeners := []models.ListenerInfo{
		{Protocol: "HTTP", Port: 80},
		{Protocol: "HTTPS", Port: 443},
	}
	assert.Equal(t, "HTTP:80, HTTPS:443", listenerPorts(listeners))
	assert.Equal(t, "-", listenerPorts(nil))
}

func TestFormatRetention(t *testing.T) {
	assert.Equal(t, "Never expire", formatRetention(0))
	assert.Equal(t, "30 days", formatRetention(30))
}

func TestPrintReportSummaryMarksFailures(t *testing.T) {
	var buf bytes.Buffer
	report := &models.InventoryReport{
		Instances: []models.InstanceInfo{{InstanceID: "i-1"}},
		Errors: []models.CollectionFailure{
			{ResourceType: "loadBalancers", Message: "AccessDenied"},
		},
	}

	PrintReportSummary(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "instances")
	assert.Contains(t, out, "partial")
	assert.Contains(t, out, "Error collecting loadBalancers: AccessDenied")
}
