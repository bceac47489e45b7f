package models

import "time"

// ResolvedCredentials is the ephemeral outcome of resolving an account's
// credential configuration. It is owned by the request that produced it and
// must never be persisted or logged.
type ResolvedCredentials struct {
	AccessKeyID     string     `json:"accessKeyId"`
	SecretAccessKey string     `json:"secretAccessKey"`
	SessionToken    string     `json:"sessionToken,omitempty"`
	Expiration      *time.Time `json:"expiration,omitempty"`
	Region          string     `json:"region"`
}

// Temporary reports whether the credentials carry a session token.
func (c ResolvedCredentials) Temporary() bool {
	return c.SessionToken != ""
}

// Expired reports whether the credentials are past their expiration.
// Credentials without an expiration never expire.
func (c ResolvedCredentials) Expired(now time.Time) bool {
	return c.Expiration != nil && !now.Before(*c.Expiration)
}

// Identity is the result of a caller-identity check against resolved
// credentials.
type Identity struct {
	AccountID string `json:"accountId"`
	UserID    string `json:"userId"`
	ARN       string `json:"arn"`
}
