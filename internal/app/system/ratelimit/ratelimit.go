// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter counts failures per key inside a fixed window and reports a key as
// blocked once it reaches the limit. It is safe for concurrent use.
// A nil *Limiter never blocks.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int           // failures allowed per window
	duration time.Duration // window length
	now      func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit failures per duration.
// A limit <= 0 returns nil, which disables limiting.
func New(limit int, duration time.Duration) *Limiter {
	if limit <= 0 || duration <= 0 {
		return nil
	}
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

// Blocked reports whether key has used up its failures for the current window.
func (l *Limiter) Blocked(key string) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().After(w.expiresAt) {
		return false
	}
	return w.count >= l.limit
}

// Fail records one failure for key. The window starts at the first failure.
func (l *Limiter) Fail(key string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return
	}
	w.count++
}

// sweep drops expired windows so the map does not grow without bound.
// Caller holds l.mu.
func (l *Limiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
}

// ClientIP returns the host part of r.RemoteAddr. The router runs chi's
// RealIP middleware first, so RemoteAddr already reflects the proxy's view of
// the client; forwarding headers are not read again here because a client can
// set them freely.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
