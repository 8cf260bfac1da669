package domain

import (
	"context"
	"encoding/json"
)

// RecorderPort accepts snapshots from producers, every call returns without blocking
type RecorderPort interface {
	Record(s Snapshot)
	RecordComponents(enc EncounterSummary, rows []CombatantRow, raw json.RawMessage)
	Flush()
}

// QueryPort reads stored history for browsing
type QueryPort interface {
	Dates(ctx context.Context) ([]DateInfo, error)
	Encounters(ctx context.Context, dateID string) ([]EncounterSummaryItem, error)
	Encounter(ctx context.Context, key []byte) (EncounterRecord, error)
}

// AdminPort holds the mutating operations outside the recorder path
type AdminPort interface {
	Remove(ctx context.Context, key []byte) error
}
