package limiter

import "time"

// timing-related data used to pace requests to one host
type hostTiming struct {
	lastFetchAt  time.Time
	backoffDelay time.Duration
	backoffCount int
}

func (h *hostTiming) BackOffDelay() time.Duration {
	return h.backoffDelay
}

func (h *hostTiming) LastFetchAt() time.Time {
	return h.lastFetchAt
}

func (h *hostTiming) BackoffCount() int {
	return h.backoffCount
}
