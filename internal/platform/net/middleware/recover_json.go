package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "combatlog/internal/platform/errors"
	"combatlog/internal/platform/logger"
	pnet "combatlog/internal/platform/net"
	phttp "combatlog/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 envelope and logs the stack with request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())

			lines := strings.Split(string(debug.Stack()), "\n")
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Msgf("panic recovered\n%s", strings.Join(lines, "\n\t"))

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
