package middleware

import (
	"net/http"
	"time"
)

// Logging пишет строку на каждый запрос; ставится после RequestID
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			format := "%s %s - status=%d duration=%s request_id=%s"
			args := []interface{}{r.Method, r.URL.Path, rec.status, time.Since(start), GetRequestID(r.Context())}
			if rec.status >= http.StatusInternalServerError {
				log.Error(format, args...)
				return
			}
			log.Info(format, args...)
		})
	}
}
