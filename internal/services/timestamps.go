package services

import (
	"context"
	"math/rand/v2"
	"time"
)

// Clock supplies wall-clock time to the commit loop
type Clock interface {
	Now() time.Time
	// Sleep waits for d or until ctx is done
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// SystemClock returns the local wall clock
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewRand returns a randomly seeded generator
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// CommitCount draws a count uniformly from [lo, hi]. Callers normalize
// the bounds first; lo > hi panics. The span is computed in uint64 so
// [0, math.MaxInt] does not overflow.
func CommitCount(rng *rand.Rand, lo, hi int) int {
	span := uint64(hi) - uint64(lo) + 1
	return lo + int(rng.Uint64N(span))
}

// RandomTimeOfDay returns a moment on the calendar day of now with hour,
// minute and second drawn independently and uniformly
func RandomTimeOfDay(rng *rand.Rand, now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, rng.IntN(24), rng.IntN(60), rng.IntN(60), 0, now.Location())
}
