package testutil

import (
	"context"
	"sync"
)

// WelcomeEnqueuer records welcome-email enqueues instead of talking to Redis.
//
// With Hang set it behaves like an unreachable Redis and returns only when
// ctx is done.
type WelcomeEnqueuer struct {
	mu       sync.Mutex
	Err      error
	Hang     bool
	Enqueued []int64
}

func (e *WelcomeEnqueuer) EnqueueWelcomeEmail(ctx context.Context, userID int64, _ string) error {
	if e.Hang {
		<-ctx.Done()
		return ctx.Err()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Err != nil {
		return e.Err
	}
	e.Enqueued = append(e.Enqueued, userID)
	return nil
}
