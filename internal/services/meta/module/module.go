// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"combatlog/internal/core/version"
	"combatlog/internal/modkit"
	"combatlog/internal/modkit/httpkit"
	str "combatlog/internal/platform/strings"

	metahttp "combatlog/internal/services/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	startedAt time.Time
}

// New constructs a meta module, overlay may be nil when no ingest client runs
func New(deps modkit.Deps, overlay func() bool, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{b: b, startedAt: time.Now()}
	external := b.Register

	var kv any
	if deps.HasStore() {
		kv = deps.KV
	}
	m.b.Register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Store:       kv,
			Overlay:     overlay,
		})
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, str.MustPrefix(m.b.Prefix), m.b.Mw, m.b.Register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
