package tailoring

import (
	"context"
	"errors"
	"time"
)

const (
	// maxAttempts bounds how many times one tailoring request hits the API.
	maxAttempts = 3

	// initialBackoff is the delay before the first retry. It doubles after
	// every failed attempt.
	initialBackoff = time.Second
)

// generateWithRetry calls fn up to maxAttempts times, sleeping between
// attempts. Context errors stop the loop immediately; every other error is
// treated as transient.
func generateWithRetry(ctx context.Context, backoff time.Duration, fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := fn()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return "", lastErr
}
