package models

import "time"

// InstanceInfo represents EC2 instance information
type InstanceInfo struct {
	InstanceID       string            `json:"instanceId"`
	Name             string            `json:"name"`
	InstanceType     string            `json:"instanceType"`
	State            string            `json:"state"`
	PublicIP         string            `json:"publicIp,omitempty"`
	PrivateIP        string            `json:"privateIp,omitempty"`
	VpcID            string            `json:"vpcId"`
	SubnetID         string            `json:"subnetId"`
	SecurityGroups   []string          `json:"securityGroups"`
	AvailabilityZone string            `json:"availabilityZone"`
	Region           string            `json:"region"`
	Tags             map[string]string `json:"tags"`
	LaunchTime       time.Time         `json:"launchTime"`
}
