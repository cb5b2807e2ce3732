package automation

import (
	"context"
	"fmt"
	"time"
)

// Condition reports whether the external application has reached the
// awaited state. A non-nil error aborts the wait.
type Condition func() (bool, error)

// WaitUntil polls cond every interval until it reports true, the timeout
// elapses, or the context is cancelled. The timeout is the ceiling that
// replaces the fixed sleeps of naive UI scripting: a driver that cannot
// observe readiness just passes a cond that stays false and gets the old
// fixed-delay behavior back as the timeout.
func WaitUntil(ctx context.Context, timeout, interval time.Duration, cond Condition) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("condition not met within %s", timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
