package crawl

import (
	"context"
	"fmt"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// RetryPolicy controls how failed fetches are retried.
// Every fetch error is treated as transient.
type RetryPolicy struct {
	// Delay is the fixed wait between attempts.
	Delay time.Duration

	// MaxAttempts caps the number of attempts. Zero retries until the
	// fetch succeeds or the context is canceled.
	MaxAttempts int
}

// DefaultRetryPolicy retries every second without limit.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Delay: time.Second}
}

// FetchWithRetry fetches a URL, retrying failures according to policy.
// The context is checked between attempts, so canceling it is the only way
// to stop an unbounded policy against an unreachable URL.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, policy RetryPolicy) (string, error) {
	for attempt := 1; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if policy.MaxAttempts > 0 && attempt >= policy.MaxAttempts {
			return "", fmt.Errorf("giving up on %s after %d attempts: %w", url, attempt, err)
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(policy.Delay):
		}
	}
}
