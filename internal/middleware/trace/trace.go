// Package trace assigns request IDs and logs one structured line per
// request.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

type ContextKey string

const RequestIDKey ContextKey = "request_id"

// Metrics tracks coarse request counters.
type Metrics struct {
	TotalRequests       int64
	AverageResponseTime int64 // microseconds
}

type Middleware struct {
	metrics *Metrics
}

func NewMiddleware() *Middleware {
	return &Middleware{metrics: &Metrics{}}
}

func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := GenerateRequestID()

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		r = r.WithContext(ctx)

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		m.record(elapsed)

		slog.InfoContext(ctx, "Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", rw.status,
			"duration_ms", elapsed.Milliseconds())
	})
}

func (m *Middleware) record(elapsed time.Duration) {
	total := atomic.AddInt64(&m.metrics.TotalRequests, 1)
	// Rolling average; precision loss over many requests is acceptable.
	prev := atomic.LoadInt64(&m.metrics.AverageResponseTime)
	atomic.StoreInt64(&m.metrics.AverageResponseTime, prev+(elapsed.Microseconds()-prev)/total)
}

// Snapshot returns the current metric values.
func (m *Middleware) Snapshot() Metrics {
	return Metrics{
		TotalRequests:       atomic.LoadInt64(&m.metrics.TotalRequests),
		AverageResponseTime: atomic.LoadInt64(&m.metrics.AverageResponseTime),
	}
}

// GenerateRequestID returns a random 16-hex-char ID, falling back to a
// timestamp when the system RNG is unavailable.
func GenerateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("ts-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
