package models

import "time"

// MetricStatistics is the result of one CloudWatch statistics query.
type MetricStatistics struct {
	Namespace  string            `json:"namespace"`
	MetricName string            `json:"metricName"`
	Dimensions map[string]string `json:"dimensions"`
	Datapoints []MetricDatapoint `json:"datapoints"`
}

// MetricDatapoint is a single aggregated datapoint.
type MetricDatapoint struct {
	Timestamp time.Time `json:"timestamp"`
	Average   float64   `json:"average"`
	Maximum   float64   `json:"maximum"`
	Minimum   float64   `json:"minimum"`
	Unit      string    `json:"unit"`
}
