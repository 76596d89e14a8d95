package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-Id"

// HTTPResponseTraceInjection stamps every response with a trace identifier,
// reusing the caller's when one is supplied.
func HTTPResponseTraceInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		w.Header().Set(TraceHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
