package limiter

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rohmanhakim/rudolf/pkg/timeutil"
)

// RateLimiter
// Keeps outgoing requests polite towards the puzzle host.
// Responsibilities:
// - Bookkeep each hostname's last fetch timestamp
// - Compute the remaining wait before the next request to a hostname
// - Grow the wait after throttling or server errors, shrink it after success
//
// It never re-issues requests; callers wait ResolveDelay and then make exactly
// one attempt.
type RateLimiter interface {
	SetBaseDelay(baseDelay time.Duration)
	SetJitter(jitter time.Duration)
	SetRandomSeed(randomSeed int64)
	SetBackoffParam(param timeutil.BackoffParam)
	Backoff(host string)
	ResetBackoff(host string)
	MarkLastFetchAsNow(host string)
	ResolveDelay(host string) time.Duration
}

type ConcurrentRateLimiter struct {
	mu           sync.RWMutex
	rngMu        sync.Mutex
	baseDelay    time.Duration
	jitter       time.Duration
	backoffParam timeutil.BackoffParam
	hostTimings  map[string]hostTiming
	rng          *rand.Rand
}

func NewConcurrentRateLimiter() *ConcurrentRateLimiter {
	return &ConcurrentRateLimiter{
		hostTimings:  make(map[string]hostTiming),
		backoffParam: timeutil.NewBackoffParam(time.Second, 2.0, 30*time.Second),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ConcurrentRateLimiter) SetBaseDelay(baseDelay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.baseDelay = baseDelay
}

func (r *ConcurrentRateLimiter) SetJitter(jitter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jitter = jitter
}

func (r *ConcurrentRateLimiter) SetRandomSeed(randomSeed int64) {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()

	r.rng = rand.New(rand.NewSource(randomSeed))
}

func (r *ConcurrentRateLimiter) SetBackoffParam(param timeutil.BackoffParam) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backoffParam = param
}

// Backoff increments the host's backoff counter and recomputes its delay.
func (r *ConcurrentRateLimiter) Backoff(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.hostTimings[host]
	current.backoffCount++
	current.backoffDelay = timeutil.ExponentialBackoffDelay(current.backoffCount, r.backoffParam)
	r.hostTimings[host] = current
}

// ResetBackoff clears the backoff state after a successful request.
func (r *ConcurrentRateLimiter) ResetBackoff(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.hostTimings[host]
	if exists {
		current.backoffCount = 0
		current.backoffDelay = 0
		r.hostTimings[host] = current
	}
}

// Mark the given host lastFetch to time.Now()
func (r *ConcurrentRateLimiter) MarkLastFetchAsNow(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.hostTimings[host]
	current.lastFetchAt = time.Now()
	r.hostTimings[host] = current
}

// Returns a pseudo-random duration in [0, max)
func (r *ConcurrentRateLimiter) computeJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}

	r.rngMu.Lock()
	defer r.rngMu.Unlock()

	return time.Duration(r.rng.Int63n(int64(max)))
}

// ResolveDelay returns how long the caller still has to wait before hitting host.
// FinalDelay = max(BaseDelay, BackoffDelay) + Jitter, minus the time already
// elapsed since the last fetch. Hosts never fetched before are not delayed.
func (r *ConcurrentRateLimiter) ResolveDelay(host string) time.Duration {
	r.mu.RLock()
	current, exists := r.hostTimings[host]
	base := r.baseDelay
	jitter := r.jitter
	r.mu.RUnlock()

	if !exists || current.lastFetchAt.IsZero() {
		return 0
	}

	finalDelay := timeutil.MaxDuration([]time.Duration{base, current.backoffDelay})
	finalDelay += r.computeJitter(jitter)

	elapsed := time.Since(current.lastFetchAt)
	if elapsed < finalDelay {
		return finalDelay - elapsed
	}

	return 0
}

func (r *ConcurrentRateLimiter) BaseDelay() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.baseDelay
}

func (r *ConcurrentRateLimiter) Jitter() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.jitter
}

// HostTimings returns a copy of the per-host bookkeeping.
func (r *ConcurrentRateLimiter) HostTimings() map[string]hostTiming {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copyMap := make(map[string]hostTiming, len(r.hostTimings))
	for k, v := range r.hostTimings {
		copyMap[k] = v
	}
	return copyMap
}
