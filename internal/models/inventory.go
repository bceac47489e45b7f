package models

// InventoryReport is the aggregate result of one inventory run. Each slot is
// independently populated; a failed slot holds whatever partial items were
// collected before the failure, plus an entry in Errors naming the type.
type InventoryReport struct {
	Instances     []InstanceInfo      `json:"instances"`
	LoadBalancers []LoadBalancerInfo  `json:"loadBalancers"`
	VPCs          []VPCInfo           `json:"vpcs"`
	LogGroups     []LogGroupInfo      `json:"logGroups"`
	Buckets       []BucketInfo        `json:"buckets"`
	Functions     []FunctionInfo      `json:"functions"`
	Errors        []CollectionFailure `json:"errors,omitempty"`
}

// CollectionFailure records the failure of one resource-type collection.
type CollectionFailure struct {
	ResourceType string `json:"resourceType"`
	Message      string `json:"message"`
}

// Failed reports whether a given resource type has an error entry.
func (r *InventoryReport) Failed(resourceType string) bool {
	for _, e := range r.Errors {
		if e.ResourceType == resourceType {
			return true
		}
	}
	return false
}
