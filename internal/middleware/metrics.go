package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Siddarth2230/base62/pkg/metrics"
)

// MetricsMiddleware tracks HTTP request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := wrap(w)
		next.ServeHTTP(ww, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.statusCode)

		metrics.RequestDuration.WithLabelValues(r.Method, status).Observe(duration)
		metrics.RequestTotal.WithLabelValues(r.Method, status).Inc()
	})
}

// AccessLog logs one line per request at debug level, or warn for 5xx.
func AccessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := wrap(w)
			next.ServeHTTP(ww, r)

			kv := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"bytes", ww.bytes,
				"latency_ms", time.Since(start).Milliseconds(),
			}
			if ww.statusCode >= http.StatusInternalServerError {
				logger.Warn("access", kv...)
				return
			}
			logger.Debug("access", kv...)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}
