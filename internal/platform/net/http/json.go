package http

import (
	"net/http"

	"combatlog/internal/platform/net/http/bind"
)

// JSONHandler adapts a pure JSON handler to a platform Handler
// a nil result with no error is written as 204
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// ParamsHandler binds path and query params into T before calling fn
func ParamsHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.Params[T](r)
		if err != nil {
			return Error(err)
		}
		return result(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without parsing a request body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return result(fn(r))
	})
}

func result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if out == nil {
		return NoContent()
	}
	return OK(out)
}
