package models

import "time"

// LogGroupInfo holds information about a CloudWatch Log Group.
type LogGroupInfo struct {
	Name              string    `json:"name"`
	ARN               string    `json:"arn"`
	Region            string    `json:"region"`
	RetentionInDays   int32     `json:"retentionInDays,omitempty"` // 0 means never expire
	MetricFilterCount int32     `json:"metricFilterCount"`
	StoredBytes       int64     `json:"storedBytes"`
	CreationTime      time.Time `json:"creationTime"`
}

// LogStreamInfo holds information about one stream within a log group.
type LogStreamInfo struct {
	Name           string     `json:"name"`
	CreationTime   time.Time  `json:"creationTime"`
	FirstEventTime *time.Time `json:"firstEventTime,omitempty"`
	LastEventTime  *time.Time `json:"lastEventTime,omitempty"`
	StoredBytes    int64      `json:"storedBytes"`
}

// LogEventInfo is a single log event.
type LogEventInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Stream    string    `json:"stream"`
}
