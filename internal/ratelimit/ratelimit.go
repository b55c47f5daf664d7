// Package ratelimit throttles HTTP clients with per-IP token buckets.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	remaining float64
	updated   time.Time
}

// Limiter hands out request tokens per client IP. Buckets refill
// continuously at the configured rate up to the burst capacity; buckets
// idle longer than idleAfter are swept so the map cannot grow without
// bound.
type Limiter struct {
	refillPerSec float64
	capacity     float64
	idleAfter    time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return NewLimiterIdle(requestsPerSecond, burst, 10*time.Minute)
}

// NewLimiterIdle builds a Limiter that forgets clients idle for the
// given duration.
func NewLimiterIdle(requestsPerSecond float64, burst int, idleAfter time.Duration) *Limiter {
	l := &Limiter{
		refillPerSec: requestsPerSecond,
		capacity:     float64(burst),
		idleAfter:    idleAfter,
		buckets:      make(map[string]*bucket),
	}
	go l.sweep()
	return l
}

// take consumes one token from the client's bucket, reporting whether
// one was available at the given instant.
func (l *Limiter) take(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[client]
	if !ok {
		b = &bucket{remaining: l.capacity, updated: now}
		l.buckets[client] = b
	} else {
		b.remaining += now.Sub(b.updated).Seconds() * l.refillPerSec
		if b.remaining > l.capacity {
			b.remaining = l.capacity
		}
		b.updated = now
	}

	if b.remaining < 1 {
		return false
	}
	b.remaining--
	return true
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.idleAfter)
	defer ticker.Stop()

	for now := range ticker.C {
		l.mu.Lock()
		for client, b := range l.buckets {
			if now.Sub(b.updated) > l.idleAfter {
				delete(l.buckets, client)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP picks the throttling key: the first address in
// X-Forwarded-For when a proxy set one, otherwise the peer address with
// its port stripped.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.take(clientIP(r), time.Now()) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "10")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
