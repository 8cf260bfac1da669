// Package domain defines the types and interfaces for the history service
package domain

import (
	"encoding/hex"
	"encoding/json"

	"combatlog/internal/core/combat"
)

// SchemaVersion is the persisted layout version written under meta schema/version
const SchemaVersion uint32 = 2

// UnknownEncounter is the base title used when neither title nor zone is set
const UnknownEncounter = "Unknown Encounter"

type (
	// EncounterSummary is the encounter level view of a snapshot
	EncounterSummary = combat.EncounterSummary

	// CombatantRow is one party member's stats
	CombatantRow = combat.CombatantRow
)

// Snapshot is one arrival of combat data from the producer, never persisted standalone
type Snapshot struct {
	Encounter  EncounterSummary
	Rows       []CombatantRow
	Raw        json.RawMessage
	ReceivedMs uint64
}

// Frame is one accepted snapshot inside an encounter
type Frame struct {
	ReceivedMs uint64           `json:"received_ms" msgpack:"received_ms"`
	Encounter  EncounterSummary `json:"encounter" msgpack:"encounter"`
	Rows       []CombatantRow   `json:"rows" msgpack:"rows"`
	Raw        json.RawMessage  `json:"raw,omitempty" msgpack:"raw"`
}

// EncounterRecord is a finished encounter, immutable once stored
type EncounterRecord struct {
	Version     uint32           `json:"version" msgpack:"version"`
	StoredMs    uint64           `json:"stored_ms" msgpack:"stored_ms"`
	FirstSeenMs uint64           `json:"first_seen_ms" msgpack:"first_seen_ms"`
	LastSeenMs  uint64           `json:"last_seen_ms" msgpack:"last_seen_ms"`
	Encounter   EncounterSummary `json:"encounter" msgpack:"encounter"`
	Rows        []CombatantRow   `json:"rows" msgpack:"rows"`
	RawLast     json.RawMessage  `json:"raw_last,omitempty" msgpack:"raw_last"`
	Snapshots   uint32           `json:"snapshots" msgpack:"snapshots"`
	SawActive   bool             `json:"saw_active" msgpack:"saw_active"`
	Frames      []Frame          `json:"frames" msgpack:"frames"`
}

// EncounterSummaryRecord is the per record projection stored under the same key
type EncounterSummaryRecord struct {
	Key            []byte `json:"key" msgpack:"key"`
	DateID         string `json:"date_id" msgpack:"date_id"`
	BaseTitle      string `json:"base_title" msgpack:"base_title"`
	EncounterTitle string `json:"encounter_title" msgpack:"encounter_title"`
	TimeLabel      string `json:"time_label" msgpack:"time_label"`
	TimestampLabel string `json:"timestamp_label" msgpack:"timestamp_label"`
	LastSeenMs     uint64 `json:"last_seen_ms" msgpack:"last_seen_ms"`
	Duration       string `json:"duration" msgpack:"duration"`
	EncDPS         string `json:"encdps" msgpack:"encdps"`
	Damage         string `json:"damage" msgpack:"damage"`
	Zone           string `json:"zone" msgpack:"zone"`
	Snapshots      uint32 `json:"snapshots" msgpack:"snapshots"`
	Frames         uint32 `json:"frames" msgpack:"frames"`
}

// DateSummaryRecord is one local calendar day bucket, newest key first
type DateSummaryRecord struct {
	DateID       string   `json:"date_id" msgpack:"date_id"`
	LastSeenMs   uint64   `json:"last_seen_ms" msgpack:"last_seen_ms"`
	EncounterIDs [][]byte `json:"encounter_ids" msgpack:"encounter_ids"`
}

// HexKey is a raw history key that renders as hex text
type HexKey []byte

// MarshalText implements encoding.TextMarshaler
func (k HexKey) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(k)))
	hex.Encode(out, k)
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *HexKey) UnmarshalText(b []byte) error {
	out := make([]byte, hex.DecodedLen(len(b)))
	n, err := hex.Decode(out, b)
	if err != nil {
		return err
	}
	*k = out[:n]
	return nil
}

// String returns the hex form
func (k HexKey) String() string { return hex.EncodeToString(k) }

// DateInfo is the browse model for one day
type DateInfo struct {
	ISODate        string   `json:"iso_date"`
	Label          string   `json:"label"`
	EncounterCount int      `json:"encounter_count"`
	EncounterIDs   []HexKey `json:"encounter_ids"`
	Loaded         bool     `json:"loaded"`
}

// EncounterSummaryItem is the browse model for one encounter in a day
type EncounterSummaryItem struct {
	Key            HexKey `json:"key"`
	DisplayTitle   string `json:"display_title"`
	BaseTitle      string `json:"base_title"`
	Occurrence     uint32 `json:"occurrence"`
	TimeLabel      string `json:"time_label"`
	LastSeenMs     uint64 `json:"last_seen_ms"`
	TimestampLabel string `json:"timestamp_label"`
}
