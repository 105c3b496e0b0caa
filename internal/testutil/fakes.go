package testutil

import (
	"context"
	"time"
)

// FakeSleeper records requested delays and returns immediately, so pacing
// tests never really sleep.
type FakeSleeper struct {
	Delays []time.Duration
	Err    error
}

// Sleep records d and returns the configured error, if any.
func (s *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.Delays = append(s.Delays, d)
	if s.Err != nil {
		return s.Err
	}
	return ctx.Err()
}

// Total returns the sum of all recorded delays.
func (s *FakeSleeper) Total() time.Duration {
	var total time.Duration
	for _, d := range s.Delays {
		total += d
	}
	return total
}
