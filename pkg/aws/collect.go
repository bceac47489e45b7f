package aws

import (
	"context"
	"errors"
	"time"

	"github.com/aws/smithy-go"
)

const (
	// maxPages caps one paginated collection so a misbehaving API that keeps
	// returning a continuation token cannot loop forever.
	maxPages = 1000

	// maxPageAttempts bounds retries of a single throttled page fetch.
	maxPageAttempts = 3

	retryBaseDelay = 500 * time.Millisecond
)

// pageFunc fetches one page: it receives the continuation token from the
// previous page (nil on the first call) and returns the page's items plus
// the next token, or nil when there are no more pages.
type pageFunc[T any] func(ctx context.Context, token *string) ([]T, *string, error)

// collectPages drains a paginated list API into a flat slice. Pages are
// fetched strictly in sequence. The requested page size is the fetch
// function's business; the collector never assumes the service honors it.
//
// On a page failure the items gathered so far are returned together with a
// *CollectionError, so the caller can still report partial results. Throttled
// pages are retried with exponential backoff before counting as a failure.
func collectPages[T any](ctx context.Context, resourceType string, fetch pageFunc[T]) ([]T, error) {
	var items []T
	var token *string

	for page := 0; ; page++ {
		if page >= maxPages {
			return items, &PaginationLimitExceeded{
				CollectionError: CollectionError{ResourceType: resourceType, Partial: len(items)},
				Pages:           maxPages,
			}
		}

		pageItems, next, err := fetchWithRetry(ctx, token, fetch)
		if err != nil {
			return items, &CollectionError{ResourceType: resourceType, Partial: len(items), Err: err}
		}

		items = append(items, pageItems...)
		if next == nil || *next == "" {
			return items, nil
		}
		token = next
	}
}

func fetchWithRetry[T any](ctx context.Context, token *string, fetch pageFunc[T]) ([]T, *string, error) {
	var lastErr error
	for attempt := 0; attempt < maxPageAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		items, next, err := fetch(callCtx, token)
		cancel()
		if err == nil {
			return items, next, nil
		}
		lastErr = err
		if !isThrottle(err) {
			return nil, nil, err
		}
	}
	return nil, nil, lastErr
}

// isThrottle reports whether the error is an upstream rate-limit rejection.
func isThrottle(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "Throttling", "ThrottlingException", "RequestLimitExceeded", "TooManyRequestsException":
		return true
	}
	return false
}
