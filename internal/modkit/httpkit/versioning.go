package httpkit

import (
	"net/http"
	"strings"
	"time"

	"combatlog/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	SlowRequest time.Duration
}

// CommonStack returns the baseline middleware for api routes
// CORS is only added when origins are configured
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	mw := middleware.Defaults(middleware.AccessLogOptions{Slow: o.SlowRequest, Quiet: []string{"/health"}})
	if len(o.CORSOrigins) > 0 {
		mw = append(mw, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return mw
}

// MountAPI mounts a subrouter under /{version}, applies mw, then calls mount
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	prefix := "/" + strings.Trim(version, "/")
	MountUnder(r, prefix, mw, mount)
}

// MountAPIV1 is MountAPI with version v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}

// MountUnder mounts a subrouter at prefix and applies per module middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
