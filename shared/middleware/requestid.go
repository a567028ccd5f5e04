package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/kindboard/shared/logger"
)

const RequestIdHeader = "X-Request-Id"

// RequestLogger passes through or generates a request id, attaches a
// request-scoped logger to the context and logs every completed request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rid := r.Header.Get(RequestIdHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(RequestIdHeader, rid)

		log := logger.Log.With("request_id", rid)
		ctx := logger.WithContext(r.Context(), log)

		wrapped := newStatusRecorder(w)
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		log.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{w, http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
