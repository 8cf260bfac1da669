package http_test

import "combatlog/internal/platform/net/http/bind"

func bindAllowEmpty() bind.JSONOptions {
	return bind.JSONOptions{AllowEmptyBody: true, DisallowUnknown: true, MaxBytes: 1 << 16}
}
