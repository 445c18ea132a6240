// Package httputil provides HTTP client helpers for remote content such as
// the vlog feed.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only for errors
// wrapped in [RetryableError]:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    body, err = httputil.Fetch(ctx, client, url)
//	    return err
//	})
//
// # Fetch
//
// [Fetch] performs a GET and classifies failures: network errors, 5xx and
// 429 responses come back as [RetryableError]; other non-2xx statuses are
// returned as [StatusError] and are not retried. Bodies over [MaxBodySize]
// fail with [ErrTooLarge] instead of being truncated.
//
// Requests and responses are reported to observability.HTTP().
package httputil
