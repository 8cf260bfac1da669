package http

import (
	"net/http"

	"combatlog/internal/platform/net/http/bind"
)

// GetJSON mounts a pure JSON handler for GET
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// GetParams mounts a GET handler whose path and query params bind into T
func GetParams[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Get(path, ParamsHandler(h))
}

// DeleteParams mounts a DELETE handler whose path params bind into T
func DeleteParams[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Delete(path, ParamsHandler(h))
}

// PostJSON mounts a pure JSON handler for POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...bind.JSONOptions) {
	r.Post(path, JSONHandler(h, opts...))
}
