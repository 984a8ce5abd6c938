package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"hrpay/internal/platform/metrics"
	"hrpay/internal/requestctx"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger logs one line per request at a level chosen by the response status
// and feeds the collector when one is given.
func Logger(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			duration := time.Since(start)

			if collector != nil {
				collector.Record(recorder.status, duration)
			}

			logger := requestctx.Logger(r.Context())
			var event *zerolog.Event
			switch {
			case recorder.status >= 500:
				event = logger.Error()
			case recorder.status >= 400:
				event = logger.Warn()
			default:
				event = logger.Info()
			}
			event.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.status).
				Int64("duration_ms", duration.Milliseconds()).
				Str("client_ip", ClientIP(r)).
				Msg("request")
		})
	}
}
