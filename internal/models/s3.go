package models

import "time"

// BucketInfo represents one S3 bucket owned by the account.
type BucketInfo struct {
	Name         string    `json:"name"`
	Region       string    `json:"region"`
	CreationDate time.Time `json:"creationDate"`
}
