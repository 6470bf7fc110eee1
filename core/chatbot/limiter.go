package chatbot

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter rate-limits messages per client (session).
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLimiter allows perSecond messages per client with bursts of burst.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[clientID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[clientID] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// Forget drops the limiter of clientID (closed session).
func (l *Limiter) Forget(clientID string) {
	l.mu.Lock()
	delete(l.limiters, clientID)
	l.mu.Unlock()
}
