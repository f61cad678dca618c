package api

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdle is how long a client bucket may go unused before it is swept.
const limiterIdle = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// ipLimiter keeps one token bucket per client IP. A zero rate disables it.
type ipLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*limiterEntry
	rps      float64
	burst    int
	now      func() time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rps,
		burst:    max(burst, 1),
		now:      time.Now,
	}
}

func (l *ipLimiter) getLimiter(ip string) *limiterEntry {
	l.mu.RLock()
	entry, exists := l.limiters[ip]
	l.mu.RUnlock()

	if exists {
		return entry
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, exists := l.limiters[ip]; exists {
		return entry
	}

	entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
	l.limiters[ip] = entry
	return entry
}

func (l *ipLimiter) Allow(ip string) bool {
	if l == nil || l.rps <= 0 {
		return true
	}
	entry := l.getLimiter(ip)
	entry.lastSeen.Store(l.now().UnixNano())
	return entry.limiter.Allow()
}

// Sweep drops buckets unused for longer than idle and reports how many
// were dropped.
func (l *ipLimiter) Sweep(idle time.Duration) int {
	if l == nil {
		return 0
	}

	cutoff := l.now().Add(-idle).UnixNano()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, entry := range l.limiters {
		if entry.lastSeen.Load() < cutoff {
			delete(l.limiters, ip)
			removed++
		}
	}
	return removed
}

func (l *ipLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.limiters)
}
