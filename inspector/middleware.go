package inspector

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/leeforge/modkit/metrics"
	"go.uber.org/zap"
)

type contextKey string

const (
	traceIDKey   contextKey = "trace_id"
	startTimeKey contextKey = "start_time"

	// TraceIDHeader carries the request trace ID in and out.
	TraceIDHeader = "X-Trace-ID"
)

// traceID reuses the caller's trace ID or generates one, and records the
// request start time.
func traceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(TraceIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(TraceIDHeader, id)

		ctx := context.WithValue(r.Context(), traceIDKey, id)
		ctx = context.WithValue(ctx, startTimeKey, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTraceID retrieves the trace ID from context.
func GetTraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}

// requestDuration returns milliseconds since the request started.
func requestDuration(ctx context.Context) int64 {
	if start, ok := ctx.Value(startTimeKey).(time.Time); ok {
		return time.Since(start).Milliseconds()
	}
	return 0
}

// routePattern is the matched chi route, or the raw path when none matched.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func accessLog(logger *zap.Logger, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			collector.RecordRequest(r.Method, routePattern(r), ww.Status(), time.Since(start))
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int64("took_ms", requestDuration(r.Context())),
				zap.String("trace_id", GetTraceID(r.Context())),
			)
		})
	}
}
