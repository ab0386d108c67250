package dispatch

import (
	"context"
	"math/rand"
	"time"
)

// PickDelay returns a whole number of minutes in [0, max).
func PickDelay(max time.Duration, rng *rand.Rand) time.Duration {
	minutes := int64(max / time.Minute)
	if minutes <= 0 {
		return 0
	}
	return time.Duration(rng.Int63n(minutes)) * time.Minute
}

// RandomDelay sleeps for PickDelay(max, rng) before a scan so scheduled
// posts do not land on the exact minute every day. Only ctx ends it early.
func RandomDelay(ctx context.Context, max time.Duration, rng *rand.Rand) (time.Duration, error) {
	d := PickDelay(max, rng)
	if d == 0 {
		return 0, nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return d, nil
	case <-ctx.Done():
		return d, ctx.Err()
	}
}
