package middleware

import (
	"net/http"
	"strings"
	"time"

	"combatlog/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests taking at least Slow at warn, 0 disables it
	Slow time.Duration
	// Quiet path suffixes log at trace, meant for health polling
	Quiet []string
	// Log overrides the request scoped logger
	Log *logger.Logger
}

// statusWriter records the status and body size of a response
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// AccessLogZerolog logs one line per request with its route, status, size and latency
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			log := opt.Log
			if log == nil {
				log = logger.C(r.Context())
			}
			evt := log.Debug()
			switch {
			case sw.status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			case sw.status >= http.StatusBadRequest:
				evt = log.Info()
			case quiet(r.URL.Path, opt.Quiet):
				evt = log.Trace()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					evt = evt.Str("route", p)
				}
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Int("bytes", sw.size).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}

func quiet(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
