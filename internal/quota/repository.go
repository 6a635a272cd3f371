package quota

import (
	"context"
	"time"
)

// Repository tracks per-user daily analysis counters. Day boundaries are
// computed by the caller (UTC calendar days).
type Repository interface {
	// Used returns the number of analyses recorded for the user on the
	// given day. A missing row counts as zero.
	Used(ctx context.Context, userID string, day time.Time) (int, error)

	// Increment adds one to the user's counter for the day, creating the
	// row if it does not exist. The upsert is atomic at the storage layer
	// so concurrent requests cannot lose increments.
	Increment(ctx context.Context, userID string, day time.Time) error
}
