package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"combatlog/internal/core/combat"
	perr "combatlog/internal/platform/errors"
	"combatlog/internal/platform/logger"
	"combatlog/internal/platform/trace"
	"combatlog/internal/services/history/domain"

	"go.opentelemetry.io/otel/attribute"
)

// Appender persists a finished encounter
type Appender interface {
	Append(ctx context.Context, rec domain.EncounterRecord) ([]byte, error)
}

// RecorderConfig tunes the recorder loop
type RecorderConfig struct {
	// Now is the clock for arrival and store stamps, default time.Now
	Now func() time.Time
}

type msgKind uint8

const (
	msgSnapshot msgKind = iota
	msgFlush
	msgShutdown
)

type message struct {
	kind msgKind
	snap domain.Snapshot
}

// Recorder segments the snapshot stream into encounters
// one goroutine owns the active encounter, producers only touch the mailbox
// the mailbox is unbounded, a producer outrunning storage grows it without limit
type Recorder struct {
	app Appender
	log logger.Logger
	now func() time.Time

	mu      sync.Mutex
	queue   []message
	stopped bool
	wake    chan struct{}

	stopOnce sync.Once
	done     chan struct{}

	// loop owned
	cur *active
}

// NewRecorder starts the recorder loop
func NewRecorder(app Appender, log logger.Logger, cfg RecorderConfig) *Recorder {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	r := &Recorder{
		app:  app,
		log:  log.With().Str("component", "recorder").Logger(),
		now:  cfg.Now,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues a snapshot and returns immediately
func (r *Recorder) Record(s domain.Snapshot) {
	if s.ReceivedMs == 0 {
		s.ReceivedMs = uint64(r.now().UnixMilli())
	}
	r.enqueue(message{kind: msgSnapshot, snap: s})
}

// RecordComponents builds a snapshot stamped now and enqueues it
func (r *Recorder) RecordComponents(enc domain.EncounterSummary, rows []domain.CombatantRow, raw json.RawMessage) {
	r.Record(domain.Snapshot{Encounter: enc, Rows: rows, Raw: raw})
}

// Flush asks the loop to finish the current encounter
func (r *Recorder) Flush() { r.enqueue(message{kind: msgFlush}) }

// Shutdown flushes, stops the loop and waits for it
// every caller waits on the same completion, ctx bounds the wait only
func (r *Recorder) Shutdown(ctx context.Context) error {
	r.stopOnce.Do(func() { r.enqueue(message{kind: msgShutdown}) })
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the loop has exited
func (r *Recorder) Done() <-chan struct{} { return r.done }

func (r *Recorder) enqueue(m message) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	if m.kind == msgShutdown {
		r.stopped = true
	}
	r.queue = append(r.queue, m)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Recorder) drain() []message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.queue
	r.queue = nil
	return out
}

func (r *Recorder) run() {
	defer close(r.done)

	for range r.wake {
		for _, m := range r.drain() {
			switch m.kind {
			case msgSnapshot:
				r.onSnapshot(m.snap)
			case msgFlush:
				r.flush("manual")
			case msgShutdown:
				r.flush("shutdown")
				return
			}
		}
	}
}

func (r *Recorder) onSnapshot(s domain.Snapshot) {
	if r.cur == nil && (!s.Encounter.IsActive || !combat.HasActivity(s.Encounter, s.Rows)) {
		return
	}
	if r.cur != nil && shouldRollover(r.cur, s) {
		r.flush("rollover")
	}
	if r.cur == nil {
		r.cur = newActive(s)
	} else {
		r.cur.fold(s)
	}
	if !r.cur.latest.IsActive {
		r.flush("inactive")
	}
}

// flush moves the active encounter into a record and appends it on this goroutine
// append failures are logged and the record is dropped
func (r *Recorder) flush(reason string) {
	a := r.cur
	if a == nil {
		return
	}
	r.cur = nil

	rec := a.record(uint64(r.now().UnixMilli()))
	if !rec.SawActive && len(rec.Rows) == 0 {
		r.log.Debug().Str("reason", reason).Int("frames", len(rec.Frames)).Msg("discarding idle encounter")
		return
	}

	ctx, span := trace.Start(context.Background(), "history.recorder.flush",
		attribute.String("reason", reason),
		attribute.Int("frames", len(rec.Frames)),
	)
	key, err := r.app.Append(ctx, rec)
	trace.End(span, err)
	if err != nil {
		r.log.Error().Err(err).
			Stringer("kind", perr.KindOf(err)).
			Bool("retryable", perr.IsRetryable(err)).
			Str("reason", reason).
			Str("title", rec.Encounter.Title).
			Uint64("last_seen_ms", rec.LastSeenMs).
			Int("frames", len(rec.Frames)).
			Msg("encounter not saved")
		return
	}
	r.log.Info().
		Str("key", domain.HexKey(key).String()).
		Str("title", rec.Encounter.Title).
		Int("frames", len(rec.Frames)).
		Str("reason", reason).
		Msg("encounter saved")
}
