package server

import (
	"log/slog"
	"net/http"
	"time"
)

// responseMeta captures what the handler wrote so the request log can
// report it after the fact.
type responseMeta struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *responseMeta) WriteHeader(code int) {
	if m.status == 0 {
		m.status = code
	}
	m.ResponseWriter.WriteHeader(code)
}

func (m *responseMeta) Write(p []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(p)
	m.bytes += n
	return n, err
}

func (m *responseMeta) Unwrap() http.ResponseWriter { return m.ResponseWriter }

// requestLogger emits one line per request. The quiet paths are exempt
// so liveness probes do not flood the log.
func requestLogger(quiet ...string) func(http.Handler) http.Handler {
	exempt := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		exempt[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exempt[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			meta := &responseMeta{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(meta, r)

			status := meta.status
			if status == 0 {
				status = http.StatusOK
			}
			slog.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", meta.bytes),
				slog.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
