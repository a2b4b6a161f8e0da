package crawler

import (
	"context"
	"math"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter provides per-host rate limiting using token buckets, so many
// links to one host do not trip its abuse protection while other hosts
// proceed at full speed. A nil or zero-rate HostLimiter never waits.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second per
// host. rps <= 0 disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the limiter for host allows a request or ctx is done.
// It is safe to call Wait from multiple goroutines concurrently.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	if h == nil || h.rps <= 0 {
		return nil
	}
	return h.limiter(host).Wait(ctx)
}

func (h *HostLimiter) limiter(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	limiter, ok := h.limiters[host]
	if !ok {
		burst := max(1, int(math.Ceil(h.rps)))
		limiter = rate.NewLimiter(rate.Limit(h.rps), burst)
		h.limiters[host] = limiter
	}
	return limiter
}

// Hosts returns the number of hosts seen so far.
func (h *HostLimiter) Hosts() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.limiters)
}
