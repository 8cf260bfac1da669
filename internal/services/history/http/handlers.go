// Package http provides the read only history endpoints
package http

import (
	"encoding/hex"
	stdhttp "net/http"

	"combatlog/internal/modkit/httpkit"
	perr "combatlog/internal/platform/errors"
	"combatlog/internal/services/history/domain"
)

// Flusher forces the recorder to finish the current encounter
type Flusher interface {
	Flush()
}

// Deps are the handler dependencies, Recorder is nil in read only processes
type Deps struct {
	Query    domain.QueryPort
	Recorder Flusher
}

// DayParams selects one day bucket
type DayParams struct {
	Date string `path:"date" validate:"required,date_id"`
}

// KeyParams selects one encounter by hex key
type KeyParams struct {
	Key string `path:"key" validate:"required,hex_key"`
}

// FlushRequest is the optional flush body
type FlushRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=64"`
}

type handlers struct{ deps Deps }

// Register mounts the history routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/dates", h.dates)
	httpkit.GetParams(r, "/dates/{date}/encounters", h.encounters)
	httpkit.GetParams(r, "/encounters/{key}", h.encounter)
	httpkit.PostOptional(r, "/flush", h.flush)
}

// GET /history/dates
func (h *handlers) dates(r *stdhttp.Request) (any, error) {
	return h.deps.Query.Dates(r.Context())
}

// GET /history/dates/{date}/encounters
func (h *handlers) encounters(r *stdhttp.Request, p DayParams) (any, error) {
	return h.deps.Query.Encounters(r.Context(), p.Date)
}

// GET /history/encounters/{key}
func (h *handlers) encounter(r *stdhttp.Request, p KeyParams) (any, error) {
	key, err := hex.DecodeString(p.Key)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("key must be hex"), "key")
	}
	return h.deps.Query.Encounter(r.Context(), key)
}

// POST /history/flush
func (h *handlers) flush(_ *stdhttp.Request, _ FlushRequest) (any, error) {
	if h.deps.Recorder == nil {
		return nil, perr.Unavailablef("recorder is not running in this process")
	}
	h.deps.Recorder.Flush()
	return nil, nil
}
