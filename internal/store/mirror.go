package store

import (
	"context"
	"time"
)

// Strategy decides how many times a remote mirror operation is attempted.
// Mirror failures never propagate to the editor either way; the strategy only
// controls persistence of effort.
type Strategy interface {
	// Run invokes op until it succeeds or the strategy gives up, and returns
	// the number of attempts made together with the final error.
	Run(ctx context.Context, op func(context.Context) error) (int, error)
}

// BestEffort attempts each mirror operation exactly once. This is the default
// policy: a failed remote write is logged and dropped.
type BestEffort struct{}

func (BestEffort) Run(ctx context.Context, op func(context.Context) error) (int, error) {
	return 1, op(ctx)
}

// QueuedRetry re-attempts failed mirror operations a bounded number of times
// with a fixed interval between attempts.
type QueuedRetry struct {
	Interval   time.Duration
	MaxRetries int
}

func (q QueuedRetry) Run(ctx context.Context, op func(context.Context) error) (int, error) {
	attempts := 0
	var err error

	for attempts <= q.MaxRetries {
		attempts++
		if err = op(ctx); err == nil {
			return attempts, nil
		}
		if attempts > q.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return attempts, err
		case <-time.After(q.Interval):
		}
	}
	return attempts, err
}

// Outcome reports the result of one supervised mirror task.
type Outcome struct {
	Op       string // "create", "update" or "delete"
	ID       string
	Attempts int
	Err      error // nil on success
}
