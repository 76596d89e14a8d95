package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type HTTPRequestLogger struct {
	logger      *logrus.Logger
	debug       bool
	errorStatus int
}

// NewHTTPRequestLogger logs completed requests. Requests that finish at or
// above errorStatus are logged as errors; the rest only when debug is on.
func NewHTTPRequestLogger(logger *logrus.Logger, debug bool, errorStatus int) *HTTPRequestLogger {
	return &HTTPRequestLogger{
		logger:      logger,
		debug:       debug,
		errorStatus: errorStatus,
	}
}

func (l *HTTPRequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		entry := l.logger.WithContext(r.Context()).WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   sw.status,
			"duration": time.Since(start).String(),
		})

		if sw.status >= l.errorStatus {
			entry.Error()
			return
		}

		if l.debug {
			entry.Info()
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
