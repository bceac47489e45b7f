package models

import "time"

// FunctionInfo represents one Lambda function in the account.
type FunctionInfo struct {
	Name         string    `json:"name"`
	ARN          string    `json:"arn"`
	Runtime      string    `json:"runtime"`
	MemorySizeMB int32     `json:"memorySizeMb"`
	Timeout      int32     `json:"timeout"`
	Region       string    `json:"region"`
	LastModified time.Time `json:"lastModified"`
}
