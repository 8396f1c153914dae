package auth

import (
	"sync"
	"time"
)

// LoginLimiter counts failed login attempts per client key (IP address)
// inside a fixed window anchored at the first failure. State is process
// local and lost on restart; with several instances each keeps its own
// counters.
type LoginLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	entries     map[string]*attemptEntry

	now func() time.Time
}

type attemptEntry struct {
	count       int
	windowStart time.Time
}

func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		entries:     make(map[string]*attemptEntry),
		now:         time.Now,
	}
}

// Allow reports whether a login attempt from key may proceed. An entry
// whose window has elapsed is discarded, so the next failure starts a
// fresh window.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return true
	}
	if l.now().Sub(e.windowStart) >= l.window {
		delete(l.entries, key)
		return true
	}
	return e.count < l.maxAttempts
}

// RecordFailure increments the counter for key. The window start is set
// on the first failure only; it does not slide on later attempts.
func (l *LoginLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[key]; ok {
		e.count++
		return
	}
	l.entries[key] = &attemptEntry{count: 1, windowStart: l.now()}
}

// Reset drops all recorded failures for key (successful login).
func (l *LoginLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}
