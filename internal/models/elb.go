package models

import "time"

// LoadBalancerInfo holds information about one ELBv2 load balancer,
// enriched with its listeners and target groups
type LoadBalancerInfo struct {
	ARN               string            `json:"arn"`
	Name              string            `json:"name"`
	Type              string            `json:"type"`   // application, network, gateway
	Scheme            string            `json:"scheme"` // internet-facing, internal
	State             string            `json:"state"`
	VpcID             string            `json:"vpcId"`
	Region            string            `json:"region"`
	AvailabilityZones []string          `json:"availabilityZones"`
	CreatedTime       time.Time         `json:"createdTime"`
	Listeners         []ListenerInfo    `json:"listeners"`
	TargetGroups      []TargetGroupInfo `json:"targetGroups"`
}

// ListenerInfo is one listener attached to a load balancer
type ListenerInfo struct {
	ARN      string `json:"arn"`
	Port     int32  `json:"port"`
	Protocol string `json:"protocol"`
}

// TargetGroupInfo is one target group serving a load balancer
type TargetGroupInfo struct {
	ARN      string `json:"arn"`
	Name     string `json:"name"`
	Protocol string `json:"protocol"`
	Port     int32  `json:"port"`
	VpcID    string `json:"vpcId"`
}
