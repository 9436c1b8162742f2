package ratelimit

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func newTestLimiter(limit int, d time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	l := New(limit, d)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_BlocksAtLimit(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if l.Blocked("1.2.3.4") {
			t.Fatalf("blocked after %d failures", i)
		}
		l.Fail("1.2.3.4")
	}
	if !l.Blocked("1.2.3.4") {
		t.Error("expected block after 3 failures")
	}
	if l.Blocked("5.6.7.8") {
		t.Error("other keys must not be blocked")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)

	l.Fail("k")
	if !l.Blocked("k") {
		t.Fatal("expected block")
	}
	*now = now.Add(time.Minute + time.Second)
	if l.Blocked("k") {
		t.Error("block should lapse after the window")
	}
	l.Fail("other")
	if _, ok := l.windows["k"]; ok {
		t.Error("expired window should be swept")
	}
}

func TestLimiter_NilDisabled(t *testing.T) {
	var l *Limiter
	l.Fail("k")
	if l.Blocked("k") {
		t.Error("nil limiter must never block")
	}
	if New(0, time.Minute) != nil {
		t.Error("New with limit 0 should return nil")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l := New(1000, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				l.Fail("k")
				_ = l.Blocked("k")
			}
		}()
	}
	wg.Wait()
	if got := l.windows["k"].count; got != 500 {
		t.Errorf("count = %d, want 500", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{"forwarded header ignored", "10.0.0.1, 10.0.0.2", "", "127.0.0.1:1234", "127.0.0.1"},
		{"real ip header ignored", "", " 10.0.0.3 ", "127.0.0.1:1234", "127.0.0.1"},
		{"ipv6", "", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"remote with port", "", "", "192.168.1.5:5555", "192.168.1.5"},
		{"remote without port", "", "", "192.168.1.6", "192.168.1.6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
