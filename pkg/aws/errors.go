package aws

import "fmt"

// ConfigError reports malformed input (bad ARN shape, unknown region).
// It is never retried and is surfaced to the caller immediately.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AssumeRoleError reports an STS rejection (trust policy denial, invalid or
// missing MFA, expired role). Not retried automatically: MFA codes are
// single-use, so a blind retry would fail identically.
type AssumeRoleError struct {
	RoleARN string
	Reason  string
	Err     error
}

func (e *AssumeRoleError) Error() string {
	return fmt.Sprintf("assume role %s: %s", e.RoleARN, e.Reason)
}

func (e *AssumeRoleError) Unwrap() error { return e.Err }

// CollectionError reports that one paginated listing failed mid-stream.
// Partial is how many items were gathered before the failing page; the items
// themselves are returned alongside the error by the collector.
type CollectionError struct {
	ResourceType string
	Partial      int
	Err          error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collecting %s (%d partial items): %v", e.ResourceType, e.Partial, e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }

// PaginationLimitExceeded is the defensive page-cap error. It is a
// CollectionError variant: errors.As against *CollectionError matches it.
type PaginationLimitExceeded struct {
	CollectionError
	Pages int
}

func (e *PaginationLimitExceeded) Error() string {
	return fmt.Sprintf("collecting %s: pagination did not terminate after %d pages", e.ResourceType, e.Pages)
}

// As allows a *PaginationLimitExceeded to satisfy errors.As for
// **CollectionError targets, so callers report both through one path.
func (e *PaginationLimitExceeded) As(target any) bool {
	if t, ok := target.(**CollectionError); ok {
		*t = &e.CollectionError
		return true
	}
	return false
}
