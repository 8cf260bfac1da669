// Package module implements the history service module
package module

import (
	"context"

	"combatlog/internal/modkit"
	"combatlog/internal/modkit/httpkit"
	"combatlog/internal/modkit/module"
	str "combatlog/internal/platform/strings"
	"combatlog/internal/services/history/domain"
	historyhttp "combatlog/internal/services/history/http"
	"combatlog/internal/services/history/service"
)

// Ports exposed by the history module
type Ports struct {
	Recorder domain.RecorderPort
	Query    domain.QueryPort
	Admin    domain.AdminPort
}

// Module implements the history service module
type Module struct {
	b        modkit.Built
	engine   *service.Engine
	recorder *service.Recorder
	ports    Ports
}

// New opens the engine over deps.KV and starts the recorder loop
func New(ctx context.Context, deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	o := FromConfig(deps.Cfg)
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("history"),
		modkit.WithPrefix("/history"),
	}, opts...)...)

	engine, err := service.New(ctx, deps.KV, o.Engine(), deps.Log)
	if err != nil {
		return nil, err
	}
	rec := service.NewRecorder(engine, deps.Log, service.RecorderConfig{})

	m := &Module{b: b, engine: engine, recorder: rec}
	m.ports = Ports{
		Recorder: rec,
		Query:    service.NewQuery(engine),
		Admin:    engine,
	}
	module.Register(m.Name(), m.ports)
	return m, nil
}

// Shutdown flushes and stops the recorder
func (m *Module) Shutdown(ctx context.Context) error { return m.recorder.Shutdown(ctx) }

// Name satisfies modkit.Module
func (m *Module) Name() string { return str.MustString(m.b.Name, "history") }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, str.MustPrefix(m.b.Prefix), m.b.Mw, func(rr httpkit.Router) {
		historyhttp.Register(rr, historyhttp.Deps{Query: m.ports.Query, Recorder: m.recorder})
		m.b.Register(rr)
	})
}
