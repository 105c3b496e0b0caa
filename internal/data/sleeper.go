package data

import (
	"context"
	"time"

	"github.com/jobhawk/jobhawk/internal/core"
)

// TimerSleeper blocks on a timer while honoring context cancellation. It is
// the production core.Sleeper; tests substitute a recording fake so pacing
// tests never really sleep.
type TimerSleeper struct{}

var _ core.Sleeper = (*TimerSleeper)(nil)

// Sleep waits for d or until ctx is done, whichever comes first.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
