package modkit

import (
	"net/http"

	"combatlog/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies Option funcs and returns a plain struct, Register defaults to a no op
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}
