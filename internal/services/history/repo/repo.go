// Package repo provides the history collections over the ordered kv store
package repo

import (
	"context"
	"encoding/binary"

	"combatlog/internal/modkit/repokit"
	perr "combatlog/internal/platform/errors"
	"combatlog/internal/platform/store"
	"combatlog/internal/services/history/domain"
)

// Tree names, one per logical collection
const (
	TreeEncounters = "encounters"
	TreeSummaries  = "encounter_summaries"
	TreeDates      = "date_index"
	TreeMeta       = "meta"
)

// MetaSchemaVersion is the meta key holding the 4 byte big endian schema version
var MetaSchemaVersion = []byte("schema/version")

type (
	kv     struct{ q repokit.Queryer }
	binder struct{}
)

// NewKV constructs a repo binder for the sqlite kv table
func NewKV() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &kv{q: q} }

// DateEntry is one date bucket with the raw key it was stored under
type DateEntry struct {
	Key    []byte
	Record domain.DateSummaryRecord
}

// Storage defines the history collections
// Get methods report ok=false for a missing key, a blob that fails to decode is an error
type Storage interface {
	PutRecord(ctx context.Context, key []byte, rec domain.EncounterRecord) error
	GetRecord(ctx context.Context, key []byte) (domain.EncounterRecord, bool, error)
	DeleteRecord(ctx context.Context, key []byte) (bool, error)
	CountRecords(ctx context.Context) (int64, error)

	PutSummary(ctx context.Context, s domain.EncounterSummaryRecord) error
	GetSummary(ctx context.Context, key []byte) (domain.EncounterSummaryRecord, bool, error)
	DeleteSummary(ctx context.Context, key []byte) (bool, error)

	PutDate(ctx context.Context, d domain.DateSummaryRecord) error
	GetDate(ctx context.Context, dateID string) (domain.DateSummaryRecord, bool, error)
	DeleteDate(ctx context.Context, dateID string) error
	ScanDates(ctx context.Context) ([]DateEntry, error)

	SchemaVersion(ctx context.Context) (raw []byte, ok bool, err error)
	PutSchemaVersion(ctx context.Context, v uint32) error
}

// PutRecord implements Storage
func (s *kv) PutRecord(ctx context.Context, key []byte, rec domain.EncounterRecord) error {
	b, err := encode("encounter record", rec)
	if err != nil {
		return err
	}
	return store.Put(ctx, s.q, TreeEncounters, key, b)
}

// GetRecord implements Storage
func (s *kv) GetRecord(ctx context.Context, key []byte) (domain.EncounterRecord, bool, error) {
	var rec domain.EncounterRecord
	ok, err := s.get(ctx, TreeEncounters, key, "encounter record", &rec)
	return rec, ok, err
}

// DeleteRecord implements Storage
func (s *kv) DeleteRecord(ctx context.Context, key []byte) (bool, error) {
	return store.Delete(ctx, s.q, TreeEncounters, key)
}

// CountRecords implements Storage
func (s *kv) CountRecords(ctx context.Context) (int64, error) {
	return store.Count(ctx, s.q, TreeEncounters)
}

// PutSummary implements Storage
func (s *kv) PutSummary(ctx context.Context, sum domain.EncounterSummaryRecord) error {
	b, err := encode("encounter summary", sum)
	if err != nil {
		return err
	}
	return store.Put(ctx, s.q, TreeSummaries, sum.Key, b)
}

// GetSummary implements Storage
func (s *kv) GetSummary(ctx context.Context, key []byte) (domain.EncounterSummaryRecord, bool, error) {
	var sum domain.EncounterSummaryRecord
	ok, err := s.get(ctx, TreeSummaries, key, "encounter summary", &sum)
	return sum, ok, err
}

// DeleteSummary implements Storage
func (s *kv) DeleteSummary(ctx context.Context, key []byte) (bool, error) {
	return store.Delete(ctx, s.q, TreeSummaries, key)
}

// PutDate implements Storage
func (s *kv) PutDate(ctx context.Context, d domain.DateSummaryRecord) error {
	b, err := encode("date summary", d)
	if err != nil {
		return err
	}
	return store.Put(ctx, s.q, TreeDates, []byte(d.DateID), b)
}

// GetDate implements Storage
func (s *kv) GetDate(ctx context.Context, dateID string) (domain.DateSummaryRecord, bool, error) {
	var d domain.DateSummaryRecord
	ok, err := s.get(ctx, TreeDates, []byte(dateID), "date summary", &d)
	return d, ok, err
}

// DeleteDate implements Storage
func (s *kv) DeleteDate(ctx context.Context, dateID string) error {
	_, err := store.Delete(ctx, s.q, TreeDates, []byte(dateID))
	return err
}

// ScanDates implements Storage, entries come back in ascending key order
func (s *kv) ScanDates(ctx context.Context) ([]DateEntry, error) {
	pairs, err := store.Scan(ctx, s.q, TreeDates)
	if err != nil {
		return nil, err
	}
	out := make([]DateEntry, 0, len(pairs))
	for _, p := range pairs {
		var d domain.DateSummaryRecord
		if err := decode("date summary", p.Value, &d); err != nil {
			return nil, perr.WithField(err, string(p.Key))
		}
		out = append(out, DateEntry{Key: p.Key, Record: d})
	}
	return out, nil
}

// SchemaVersion implements Storage
func (s *kv) SchemaVersion(ctx context.Context) ([]byte, bool, error) {
	return store.Get(ctx, s.q, TreeMeta, MetaSchemaVersion)
}

// PutSchemaVersion implements Storage
func (s *kv) PutSchemaVersion(ctx context.Context, v uint32) error {
	return store.Put(ctx, s.q, TreeMeta, MetaSchemaVersion, binary.BigEndian.AppendUint32(nil, v))
}

func (s *kv) get(ctx context.Context, tree string, key []byte, what string, out any) (bool, error) {
	b, ok, err := store.Get(ctx, s.q, tree, key)
	if err != nil || !ok {
		return false, err
	}
	if err := decode(what, b, out); err != nil {
		return false, err
	}
	return true, nil
}
