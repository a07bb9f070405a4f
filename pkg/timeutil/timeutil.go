package timeutil

import (
	"context"
	"math"
	"time"
)

// MaxDuration returns the largest duration of the slice, or zero when empty.
func MaxDuration(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	max := durations[0]
	for _, d := range durations[1:] {
		if d > max {
			max = d
		}
	}
	return max
}

// ExponentialBackoffDelay computes initial * multiplier^(count-1), capped at
// the param's max duration. A count below 1 is treated as the first backoff.
func ExponentialBackoffDelay(backoffCount int, param BackoffParam) time.Duration {
	if backoffCount < 1 {
		backoffCount = 1
	}
	exponent := float64(backoffCount - 1)
	delay := float64(param.InitialDuration()) * math.Pow(param.Multiplier(), exponent)
	if max := float64(param.MaxDuration()); max > 0 && delay > max {
		delay = max
	}
	if delay < 0 {
		return 0
	}
	return time.Duration(delay)
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
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

// Measure runs fn on input once and reports its answer with the time it took.
// It is meant for timing puzzle solutions against a resolved input.
func Measure(fn func(string) int64, input string) Timed {
	start := time.Now()
	value := fn(input)
	return Timed{
		value:   value,
		elapsed: time.Since(start),
	}
}
