package service

import (
	"encoding/json"

	"combatlog/internal/core/combat"
	"combatlog/internal/services/history/domain"
)

// active is the in progress encounter, touched only by the recorder loop
type active struct {
	firstSeenMs uint64
	lastSeenMs  uint64
	latest      domain.EncounterSummary
	rows        []domain.CombatantRow
	lastRaw     json.RawMessage
	sawActive   bool
	frames      []domain.Frame
}

func newActive(s domain.Snapshot) *active {
	return &active{
		firstSeenMs: s.ReceivedMs,
		lastSeenMs:  s.ReceivedMs,
		latest:      s.Encounter,
		rows:        s.Rows,
		lastRaw:     s.Raw,
		sawActive:   s.Encounter.IsActive,
		frames:      []domain.Frame{frameOf(s)},
	}
}

func frameOf(s domain.Snapshot) domain.Frame {
	return domain.Frame{ReceivedMs: s.ReceivedMs, Encounter: s.Encounter, Rows: s.Rows, Raw: s.Raw}
}

func (a *active) fold(s domain.Snapshot) {
	a.frames = append(a.frames, frameOf(s))
	a.lastSeenMs = s.ReceivedMs
	a.latest = s.Encounter
	a.rows = s.Rows
	a.lastRaw = s.Raw
	a.sawActive = a.sawActive || s.Encounter.IsActive
}

func (a *active) record(storedMs uint64) domain.EncounterRecord {
	raw := a.lastRaw
	if n := len(a.frames); n > 0 {
		raw = a.frames[n-1].Raw
	}
	return domain.EncounterRecord{
		Version:     domain.SchemaVersion,
		StoredMs:    storedMs,
		FirstSeenMs: a.firstSeenMs,
		LastSeenMs:  a.lastSeenMs,
		Encounter:   a.latest,
		Rows:        a.rows,
		RawLast:     raw,
		Snapshots:   uint32(len(a.frames)),
		SawActive:   a.sawActive,
		Frames:      a.frames,
	}
}

// shouldRollover decides whether an active snapshot starts a new encounter
// inactive snapshots never roll over
func shouldRollover(a *active, next domain.Snapshot) bool {
	if !next.Encounter.IsActive {
		return false
	}
	if !a.sawActive {
		return true
	}
	prev := a.latest
	ps, pok := combat.ParseDurationSecs(prev.Duration)
	ns, nok := combat.ParseDurationSecs(next.Encounter.Duration)
	if pok && nok {
		if ns+2 < ps {
			return true
		}
		if ps > 10 && ns == 0 {
			return true
		}
	}
	return combat.ParseNumber(next.Encounter.Damage)+1.0 < combat.ParseNumber(prev.Damage)
}
