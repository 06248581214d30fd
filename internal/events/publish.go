package events

import (
	"context"
	"log/slog"
	"time"
)

// retryBaseDelay is the first backoff step; each further attempt doubles it
var retryBaseDelay = 50 * time.Millisecond

// DeliverWithRetry hands an event to sink, making up to maxAttempts attempts with
// exponential backoff. Permanent errors and context cancellation stop the loop early.
// Returns the error from the final attempt if every attempt fails.
func DeliverWithRetry(ctx context.Context, sink Sink, event Event, maxAttempts int) error {
	if sink == nil {
		return ErrNoSink
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := sink.Deliver(ctx, event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event delivered after retry",
					"attempt", attempt+1,
					"event_id", event.ID,
					"event_type", event.Type)
			}
			return nil
		}

		lastErr = err
		if IsPermanent(err) {
			break
		}

		// Don't sleep after the last attempt
		if attempt < maxAttempts-1 {
			delay := retryBaseDelay * (1 << attempt)
			slog.Debug("event delivery failed, retrying",
				"attempt", attempt+1,
				"max_attempts", maxAttempts,
				"retry_delay", delay,
				"error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	slog.Warn("event delivery failed",
		"event_id", event.ID,
		"event_type", event.Type,
		"project_id", event.ProjectID,
		"error", lastErr)

	return lastErr
}
