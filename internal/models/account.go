package models

import "time"

// Account represents a user's registration of one AWS account.
type Account struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	AccountID     string     `json:"accountId"` // 12-digit AWS account number
	AccountName   string     `json:"accountName"`
	RoleARN       string     `json:"roleArn"`
	Description   string     `json:"description,omitempty"`
	Region        string     `json:"region"`
	IsActive      bool       `json:"isActive"`
	LastAssumedAt *time.Time `json:"lastAssumedAt,omitempty"`
	LastError     *string    `json:"lastError,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// AccountUpdate carries a partial update of a registration. Empty strings
// and a nil IsActive leave the stored values unchanged.
type AccountUpdate struct {
	ID          string
	UserID      string
	AccountName string
	RoleARN     string
	Description string
	Region      string
	IsActive    *bool
}
