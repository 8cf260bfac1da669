// Package service provides the history engine, recorder and query facade
package service

import (
	"bytes"
	"cmp"
	"context"
	"encoding/binary"
	"path/filepath"
	"slices"
	"time"
	"unicode/utf8"

	"combatlog/internal/core/histkey"
	"combatlog/internal/modkit/repokit"
	perr "combatlog/internal/platform/errors"
	"combatlog/internal/platform/logger"
	"combatlog/internal/platform/store"
	"combatlog/internal/platform/trace"
	"combatlog/internal/services/history/domain"
	"combatlog/internal/services/history/repo"

	"go.opentelemetry.io/otel/attribute"
)

// DBFile is the database file name inside the storage root
const DBFile = "history.db"

// Config for the history engine
type Config struct {
	// Root is the storage directory, created on first use
	Root string
	// NodeID seeds the discriminator source, 0 through 1023
	NodeID      int64
	LogSQL      bool
	SlowMs      int
	BusyTimeout time.Duration
	Synchronous string
	// Location decides local date buckets and labels, default time.Local
	Location *time.Location
}

// Engine owns the four history collections and keeps them consistent
type Engine struct {
	kv     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	ids    *repo.IDs
	loc    *time.Location
	log    logger.Logger
	closer func(context.Context) error
}

// DBPath is the database file for a storage root
func DBPath(root string) string { return filepath.Join(root, DBFile) }

// Open opens or creates the database under cfg.Root and initializes the schema
func Open(ctx context.Context, cfg Config, log logger.Logger) (*Engine, error) {
	st, err := store.Open(ctx, store.Config{
		AppName: "combatlog",
		SQLite: store.SQLiteConfig{
			Enabled:     true,
			Path:        DBPath(cfg.Root),
			LogSQL:      cfg.LogSQL,
			SlowQueryMs: cfg.SlowMs,
			BusyTimeout: cfg.BusyTimeout,
			Synchronous: cfg.Synchronous,
		},
	}, store.WithLogger(log))
	if err != nil {
		return nil, perr.FromSQLitef(err, "open history at %s", cfg.Root)
	}
	e, err := New(ctx, st.KV, cfg, log)
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	e.closer = st.Close
	return e, nil
}

// New builds an engine over an already open kv seam and initializes the schema
func New(ctx context.Context, kv repokit.TxRunner, cfg Config, log logger.Logger) (*Engine, error) {
	if kv == nil {
		return nil, perr.New(perr.ErrorCodeUnavailable, "history engine needs a kv store")
	}
	ids, err := repo.NewIDs(cfg.NodeID)
	if err != nil {
		return nil, err
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	e := &Engine{
		kv:     kv,
		binder: repo.NewKV(),
		ids:    ids,
		loc:    loc,
		log:    log.With().Str("component", "history").Logger(),
	}
	if err := e.initSchema(ctx); err != nil {
		return nil, err
	}
	n, err := e.repo().CountRecords(ctx)
	if err != nil {
		return nil, perr.WithOp(err, "history.open")
	}
	e.log.Info().Int64("encounters", n).Msg("history ready")
	return e, nil
}

// Close releases the database when the engine opened it
func (e *Engine) Close(ctx context.Context) error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer(ctx)
}

// initSchema writes the schema version on a fresh store and warns on any mismatch
func (e *Engine) initSchema(ctx context.Context) error {
	r := repokit.MustBind(e.binder, e.kv)
	raw, ok, err := r.SchemaVersion(ctx)
	if err != nil {
		return perr.WithOp(err, "history.schema")
	}
	switch {
	case !ok:
		return perr.WithOp(r.PutSchemaVersion(ctx, domain.SchemaVersion), "history.schema")
	case len(raw) != 4:
		e.log.Warn().Int("bytes", len(raw)).Msg("history schema version entry had unexpected size")
	default:
		if v := binary.BigEndian.Uint32(raw); v != domain.SchemaVersion {
			e.log.Warn().
				Uint32("stored", v).
				Uint32("expected", domain.SchemaVersion).
				Msg("history schema version mismatch")
		}
	}
	return nil
}

// Append stores rec under a fresh key together with its summary and date bucket entry
// the three writes share one transaction
func (e *Engine) Append(ctx context.Context, rec domain.EncounterRecord) (_ []byte, err error) {
	ctx, span := trace.Start(ctx, "history.append",
		attribute.Int64("last_seen_ms", int64(rec.LastSeenMs)),
		attribute.Int("frames", len(rec.Frames)),
	)
	defer func() { trace.End(span, err) }()

	key, err := histkey.Encode(histkey.NamespaceEncounter, rec.LastSeenMs, e.ids.Next())
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "history key")
	}
	sum := summarize(key, rec, e.loc)

	err = repokit.BindTx(ctx, e.kv, e.binder, func(r repo.Storage) error {
		if err := r.PutRecord(ctx, key, rec); err != nil {
			return err
		}
		if err := r.PutSummary(ctx, sum); err != nil {
			return err
		}
		bucket, ok, err := r.GetDate(ctx, sum.DateID)
		if err != nil {
			return err
		}
		return r.PutDate(ctx, mergeDate(bucket, ok, sum))
	})
	if err != nil {
		return nil, perr.WithOp(perr.FromSQLite(err, "append encounter"), "history.append")
	}
	return key, nil
}

// LoadDates lists every day bucket, newest date first
func (e *Engine) LoadDates(ctx context.Context) ([]domain.DateInfo, error) {
	entries, err := e.repo().ScanDates(ctx)
	if err != nil {
		return nil, perr.WithOp(err, "history.dates")
	}
	out := make([]domain.DateInfo, 0, len(entries))
	for _, en := range entries {
		iso := en.Record.DateID
		if utf8.Valid(en.Key) {
			iso = string(en.Key)
		}
		ids := make([]domain.HexKey, len(en.Record.EncounterIDs))
		for i, k := range en.Record.EncounterIDs {
			ids[i] = domain.HexKey(k)
		}
		out = append(out, domain.DateInfo{
			ISODate:        iso,
			Label:          dateLabel(iso, len(ids)),
			EncounterCount: len(ids),
			EncounterIDs:   ids,
		})
	}
	slices.SortStableFunc(out, func(a, b domain.DateInfo) int { return cmp.Compare(b.ISODate, a.ISODate) })
	return out, nil
}

// LoadEncounterSummaries lists one day's encounters newest first with display titles
// a missing day is an empty list, keys without a summary are skipped
func (e *Engine) LoadEncounterSummaries(ctx context.Context, dateID string) ([]domain.EncounterSummaryItem, error) {
	r := e.repo()
	bucket, ok, err := r.GetDate(ctx, dateID)
	if err != nil {
		return nil, perr.WithOp(err, "history.encounters")
	}
	if !ok {
		return []domain.EncounterSummaryItem{}, nil
	}

	sums := make([]domain.EncounterSummaryRecord, 0, len(bucket.EncounterIDs))
	for _, k := range bucket.EncounterIDs {
		s, ok, err := r.GetSummary(ctx, k)
		if err != nil {
			return nil, perr.WithOp(err, "history.encounters")
		}
		if ok {
			sums = append(sums, s)
		}
	}
	slices.SortStableFunc(sums, func(a, b domain.EncounterSummaryRecord) int {
		if c := cmp.Compare(b.LastSeenMs, a.LastSeenMs); c != 0 {
			return c
		}
		return bytes.Compare(b.Key, a.Key)
	})
	return disambiguate(sums), nil
}

// LoadEncounterRecord reads one record, a missing or unreadable record is not found
func (e *Engine) LoadEncounterRecord(ctx context.Context, key []byte) (domain.EncounterRecord, error) {
	rec, ok, err := e.repo().GetRecord(ctx, key)
	switch {
	case perr.IsCode(err, perr.ErrorCodeCodec):
		return domain.EncounterRecord{}, perr.Wrap(err, perr.ErrorCodeNotFound, "encounter record unreadable")
	case err != nil:
		return domain.EncounterRecord{}, perr.WithOp(err, "history.encounter")
	case !ok:
		return domain.EncounterRecord{}, perr.NotFoundf("encounter record not found")
	}
	return rec, nil
}

// Remove deletes a record, its summary and its day bucket reference
// a bucket left empty is dropped
func (e *Engine) Remove(ctx context.Context, key []byte) error {
	err := repokit.BindTx(ctx, e.kv, e.binder, func(r repo.Storage) error {
		day := ""
		if s, ok, err := r.GetSummary(ctx, key); err != nil {
			return err
		} else if ok {
			day = s.DateID
		}

		if day == "" {
			rec, ok, err := r.GetRecord(ctx, key)
			if err != nil && !perr.IsCode(err, perr.ErrorCodeCodec) {
				return err
			}
			if ok {
				day = dateID(rec.LastSeenMs, e.loc)
			}
		}

		removed, err := r.DeleteRecord(ctx, key)
		if err != nil {
			return err
		}
		hadSummary, err := r.DeleteSummary(ctx, key)
		if err != nil {
			return err
		}
		if !removed && !hadSummary {
			return perr.NotFoundf("encounter record not found")
		}
		if day == "" {
			return nil
		}

		bucket, ok, err := r.GetDate(ctx, day)
		if err != nil || !ok {
			return err
		}
		bucket.EncounterIDs = slices.DeleteFunc(bucket.EncounterIDs, func(k []byte) bool { return bytes.Equal(k, key) })
		if len(bucket.EncounterIDs) == 0 {
			return r.DeleteDate(ctx, day)
		}
		return r.PutDate(ctx, bucket)
	})
	if err != nil {
		return perr.WithOp(perr.FromSQLite(err, "remove encounter"), "history.remove")
	}
	e.log.Info().Str("key", domain.HexKey(key).String()).Msg("encounter removed")
	return nil
}

func (e *Engine) repo() repo.Storage { return repokit.MustBind(e.binder, e.kv) }
