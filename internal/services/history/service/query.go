package service

import (
	"context"
	"time"

	perr "combatlog/internal/platform/errors"
	"combatlog/internal/services/history/domain"
)

// Reader is the read half of the engine
type Reader interface {
	LoadDates(ctx context.Context) ([]domain.DateInfo, error)
	LoadEncounterSummaries(ctx context.Context, dateID string) ([]domain.EncounterSummaryItem, error)
	LoadEncounterRecord(ctx context.Context, key []byte) (domain.EncounterRecord, error)
}

// Query implements domain.QueryPort over a Reader, it holds no state of its own
type Query struct {
	r Reader
}

// NewQuery constructs a query facade
func NewQuery(r Reader) *Query { return &Query{r: r} }

// Dates implements domain.QueryPort
func (q *Query) Dates(ctx context.Context) ([]domain.DateInfo, error) {
	return q.r.LoadDates(ctx)
}

// Encounters implements domain.QueryPort
func (q *Query) Encounters(ctx context.Context, dateID string) ([]domain.EncounterSummaryItem, error) {
	if !ValidDateID(dateID) {
		return nil, perr.WithField(perr.InvalidArgf("date must be YYYY-MM-DD, got %q", dateID), "date")
	}
	return q.r.LoadEncounterSummaries(ctx, dateID)
}

// Encounter implements domain.QueryPort
func (q *Query) Encounter(ctx context.Context, key []byte) (domain.EncounterRecord, error) {
	if len(key) == 0 {
		return domain.EncounterRecord{}, perr.WithField(perr.InvalidArgf("key is required"), "key")
	}
	return q.r.LoadEncounterRecord(ctx, key)
}

// ValidDateID reports whether s is a YYYY-MM-DD calendar date
func ValidDateID(s string) bool {
	if len(s) != len(time.DateOnly) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
