package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTake_AllowsBurstThenRejects(t *testing.T) {
	l := NewLimiter(0.001, 3)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if !l.take("1.2.3.4", now) {
			t.Fatalf("request %d within burst was rejected", i+1)
		}
	}
	if l.take("1.2.3.4", now) {
		t.Error("request beyond burst was allowed")
	}
}

func TestTake_RefillsOverTime(t *testing.T) {
	l := NewLimiter(1, 2)
	now := time.Now()

	if !l.take("1.2.3.4", now) || !l.take("1.2.3.4", now) {
		t.Fatal("burst rejected")
	}
	if l.take("1.2.3.4", now) {
		t.Fatal("empty bucket granted a token")
	}

	if !l.take("1.2.3.4", now.Add(1500*time.Millisecond)) {
		t.Error("bucket did not refill at the configured rate")
	}
	// 0.5 tokens left after the refill spend.
	if l.take("1.2.3.4", now.Add(1500*time.Millisecond)) {
		t.Error("partial token granted a request")
	}
}

func TestTake_CapsAtBurst(t *testing.T) {
	l := NewLimiter(10, 2)
	now := time.Now()

	if !l.take("1.2.3.4", now) {
		t.Fatal("first request rejected")
	}
	// A long idle stretch must not bank more than the burst.
	later := now.Add(time.Hour)
	for i := 0; i < 2; i++ {
		if !l.take("1.2.3.4", later) {
			t.Fatalf("request %d after idle was rejected", i+1)
		}
	}
	if l.take("1.2.3.4", later) {
		t.Error("bucket banked tokens beyond the burst capacity")
	}
}

func TestTake_TracksClientsSeparately(t *testing.T) {
	l := NewLimiter(0.001, 1)
	now := time.Now()

	if !l.take("1.2.3.4", now) {
		t.Fatal("first client rejected")
	}
	if l.take("1.2.3.4", now) {
		t.Error("first client not limited after burst")
	}
	if !l.take("5.6.7.8", now) {
		t.Error("second client limited by first client's usage")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"peer with port", "10.0.0.1:4321", "", "10.0.0.1"},
		{"peer without port", "10.0.0.1", "", "10.0.0.1"},
		{"single forwarded", "10.0.0.1:4321", "203.0.113.9", "203.0.113.9"},
		{"forwarded chain uses first hop", "10.0.0.1:4321", "203.0.113.9, 198.51.100.7", "203.0.113.9"},
		{"forwarded with spaces", "10.0.0.1:4321", "  203.0.113.9  ", "203.0.113.9"},
		{"empty forwarded falls back", "10.0.0.1:4321", "", "10.0.0.1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := clientIP(req); got != tc.want {
				t.Errorf("clientIP = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	l := NewLimiter(0.001, 1)
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "1.2.3.4:5678"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", rec.Code)
	}

	// Same client on a new source port shares the bucket.
	req = httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "1.2.3.4:9999"

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on rejection")
	}
}

func TestMiddleware_UsesForwardedFor(t *testing.T) {
	l := NewLimiter(0.001, 1)
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	first.RemoteAddr = "10.0.0.1:1111"
	first.Header.Set("X-Forwarded-For", "203.0.113.9")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatal("forwarded client not limited")
	}

	// Same proxy, different forwarded client.
	second := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	second.RemoteAddr = "10.0.0.1:1111"
	second.Header.Set("X-Forwarded-For", "198.51.100.7")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusOK {
		t.Errorf("distinct forwarded client rejected: %d", rec.Code)
	}
}
