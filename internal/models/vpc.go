package models

// VPCInfo represents a virtual network with its subnets and route tables
type VPCInfo struct {
	VpcID       string            `json:"vpcId"`
	CidrBlock   string            `json:"cidrBlock"`
	State       string            `json:"state"`
	IsDefault   bool              `json:"isDefault"`
	Region      string            `json:"region"`
	Tags        map[string]string `json:"tags"`
	Subnets     []SubnetInfo      `json:"subnets"`
	RouteTables []RouteTableInfo  `json:"routeTables"`
}

// SubnetInfo represents one subnet of a VPC
type SubnetInfo struct {
	SubnetID         string `json:"subnetId"`
	VpcID            string `json:"vpcId"`
	CidrBlock        string `json:"cidrBlock"`
	AvailabilityZone string `json:"availabilityZone"`
	State            string `json:"state"`
}

// RouteTableInfo represents one route table of a VPC
type RouteTableInfo struct {
	RouteTableID string                  `json:"routeTableId"`
	VpcID        string                  `json:"vpcId"`
	Routes       []RouteInfo             `json:"routes"`
	Associations []RouteTableAssociation `json:"associations"`
}

// RouteInfo is a single route entry
type RouteInfo struct {
	Destination string `json:"destination"`
	Target      string `json:"target"`
	State       string `json:"state"`
}

// RouteTableAssociation links a route table to a subnet or gateway
type RouteTableAssociation struct {
	AssociationID string `json:"associationId"`
	SubnetID      string `json:"subnetId,omitempty"`
	GatewayID     string `json:"gatewayId,omitempty"`
}
