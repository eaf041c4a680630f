// internal/httpapi/middleware.go
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"mergington-activities/internal/common/metrics"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RequestIDHeader is read from the request and echoed on the response.
const RequestIDHeader = "X-Request-ID"

// requestID assigns every request a uuid, or propagates the caller's.
func (a *API) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// requestLogger logs one line per request with status and latency.
func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		a.logger.Info("request completed", map[string]interface{}{
			"requestId": requestIDFrom(r.Context()),
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"bytes":     ww.BytesWritten(),
			"remote":    r.RemoteAddr,
			"duration":  time.Since(start).String(),
		})
	})
}

// requestMetrics records the prometheus vectors and the otel instruments for
// every request, labelled by matched route pattern rather than raw path.
func (a *API) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(start)

		metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(duration.Seconds())

		if a.obs != nil {
			a.obs.RecordRequestProcessed(r.Context(), route, ww.Status())
			a.obs.RecordRequestDuration(r.Context(), route, duration, ww.Status())
		}
	})
}

// recoverer converts panics into 500s with the standard detail body.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				// net/http aborts the connection by panicking with
				// ErrAbortHandler; it must keep propagating.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				a.logger.Error("panic recovered", map[string]interface{}{
					"requestId": requestIDFrom(r.Context()),
					"panic":     fmt.Sprintf("%v", rec),
					"stack":     string(debug.Stack()),
					"method":    r.Method,
					"path":      r.URL.Path,
				})
				a.responder.Respond(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
