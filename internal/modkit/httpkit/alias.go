// Package httpkit provides handler and routing helpers that alias the platform http package
// modules use these so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "combatlog/internal/platform/net/http"
	"combatlog/internal/platform/net/http/bind"
)

type (
	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Get mounts a no body JSON handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// GetParams mounts a GET handler with bound path and query params
func GetParams[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetParams(r, path, h)
}

// DeleteParams mounts a DELETE handler with bound path params
func DeleteParams[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.DeleteParams(r, path, h)
}

// PostOptional mounts a POST handler whose JSON body may be empty
func PostOptional[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h, bind.JSONOptions{MaxBytes: 1 << 16, DisallowUnknown: true, AllowEmptyBody: true})
}
