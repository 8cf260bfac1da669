// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"combatlog/internal/core/version"
	"combatlog/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Store is pinged by health, nil reports skipped
	Store any
	// Overlay reports whether the ingest client is connected, nil reports skipped
	Overlay func() bool
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
}

// Check describes a single dependency check
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped unknown
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the health payload
type HealthResponse struct {
	Status  string  `json:"status"` // ok degraded fail
	Service string  `json:"service"`
	Started string  `json:"started"`
	Uptime  int64   `json:"uptime"`
	Now     string  `json:"now"`
	Checks  []Check `json:"checks"`
}

// GET /meta/health
func (h *handlers) health(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	store := Check{Name: "store", Status: "skipped"}
	if h.deps.Store != nil {
		store.Status = "unknown"
		if p, ok := h.deps.Store.(Pinger); ok {
			store.Status = "ok"
			if err := p.Ping(ctx); err != nil {
				store.Status, store.Error = "fail", err.Error()
			}
		}
	}

	overlay := Check{Name: "overlay", Status: "skipped"}
	if h.deps.Overlay != nil {
		overlay.Status = "ok"
		if !h.deps.Overlay() {
			overlay.Status, overlay.Error = "fail", "not connected"
		}
	}

	overall := "ok"
	switch {
	case store.Status == "fail":
		overall = "fail"
	case overlay.Status == "fail" || store.Status == "unknown":
		overall = "degraded"
	}

	now := h.now()
	return HealthResponse{
		Status:  overall,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
		Now:     now.UTC().Format(time.RFC3339),
		Checks:  []Check{store, overlay},
	}, nil
}

// GET /meta/version
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
