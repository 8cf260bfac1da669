package service

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"time"

	pstrings "combatlog/internal/platform/strings"
	"combatlog/internal/services/history/domain"
)

// local time labels, with their fallbacks when a timestamp has no local form
const (
	unknownDate  = "unknown"
	unknownTime  = "--:--"
	timeLabelFmt = "15:04"
	stampFmt     = "2006-01-02 15:04:05"
)

// localTime converts epoch millis into loc, ok is false past the int64 range
func localTime(ms uint64, loc *time.Location) (time.Time, bool) {
	if ms > math.MaxInt64 {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).In(loc), true
}

// dateID is the local calendar day bucket for ms
func dateID(ms uint64, loc *time.Location) string {
	t, ok := localTime(ms, loc)
	if !ok {
		return unknownDate
	}
	return t.Format(time.DateOnly)
}

// baseTitle is the title, else the zone, else a fixed placeholder
func baseTitle(enc domain.EncounterSummary) string {
	if t := pstrings.FirstNonBlank(enc.Title, enc.Zone); t != "" {
		return t
	}
	return domain.UnknownEncounter
}

// summarize derives the browse projection stored next to a record
func summarize(key []byte, rec domain.EncounterRecord, loc *time.Location) domain.EncounterSummaryRecord {
	day, clock, stamp := unknownDate, unknownTime, unknownDate
	if t, ok := localTime(rec.LastSeenMs, loc); ok {
		day, clock, stamp = t.Format(time.DateOnly), t.Format(timeLabelFmt), t.Format(stampFmt)
	}
	return domain.EncounterSummaryRecord{
		Key:            append([]byte(nil), key...),
		DateID:         day,
		BaseTitle:      baseTitle(rec.Encounter),
		EncounterTitle: rec.Encounter.Title,
		TimeLabel:      clock,
		TimestampLabel: stamp,
		LastSeenMs:     rec.LastSeenMs,
		Duration:       rec.Encounter.Duration,
		EncDPS:         rec.Encounter.EncDPS,
		Damage:         rec.Encounter.Damage,
		Zone:           rec.Encounter.Zone,
		Snapshots:      rec.Snapshots,
		Frames:         uint32(len(rec.Frames)),
	}
}

// mergeDate folds a new summary into its day bucket
// the key is prepended only when absent so re-running the merge is a no op
func mergeDate(bucket domain.DateSummaryRecord, exists bool, s domain.EncounterSummaryRecord) domain.DateSummaryRecord {
	if !exists {
		return domain.DateSummaryRecord{
			DateID:       s.DateID,
			LastSeenMs:   s.LastSeenMs,
			EncounterIDs: [][]byte{append([]byte(nil), s.Key...)},
		}
	}
	if !slices.ContainsFunc(bucket.EncounterIDs, func(k []byte) bool { return bytes.Equal(k, s.Key) }) {
		ids := make([][]byte, 0, len(bucket.EncounterIDs)+1)
		ids = append(ids, append([]byte(nil), s.Key...))
		bucket.EncounterIDs = append(ids, bucket.EncounterIDs...)
	}
	if s.LastSeenMs > bucket.LastSeenMs {
		bucket.LastSeenMs = s.LastSeenMs
	}
	return bucket
}

// dateLabel renders "2006-01-02 (Mon) · N encounters"
func dateLabel(iso string, n int) string {
	if len(iso) == len(time.DateOnly) {
		if d, err := time.Parse(time.DateOnly, iso); err == nil {
			return fmt.Sprintf("%s (%s) · %d encounters", iso, d.Format("Mon"), n)
		}
	}
	return fmt.Sprintf("%s · %d encounters", iso, n)
}

// disambiguate numbers repeated base titles by chronology and keeps the input order
// occurrence 1 is the oldest encounter of a title, ties break on key bytes
func disambiguate(sums []domain.EncounterSummaryRecord) []domain.EncounterSummaryItem {
	groups := make(map[string][]domain.EncounterSummaryRecord, len(sums))
	for _, s := range sums {
		groups[s.BaseTitle] = append(groups[s.BaseTitle], s)
	}

	occurrence := make(map[string]uint32, len(sums))
	for _, g := range groups {
		slices.SortStableFunc(g, func(a, b domain.EncounterSummaryRecord) int {
			if a.LastSeenMs != b.LastSeenMs {
				if a.LastSeenMs < b.LastSeenMs {
					return -1
				}
				return 1
			}
			return bytes.Compare(a.Key, b.Key)
		})
		for i, s := range g {
			occurrence[string(s.Key)] = uint32(i + 1)
		}
	}

	out := make([]domain.EncounterSummaryItem, 0, len(sums))
	for _, s := range sums {
		n := occurrence[string(s.Key)]
		title := s.BaseTitle
		if len(groups[s.BaseTitle]) > 1 {
			title = fmt.Sprintf("%s (%d)", s.BaseTitle, n)
		}
		out = append(out, domain.EncounterSummaryItem{
			Key:            domain.HexKey(s.Key),
			DisplayTitle:   title,
			BaseTitle:      s.BaseTitle,
			Occurrence:     n,
			TimeLabel:      s.TimeLabel,
			LastSeenMs:     s.LastSeenMs,
			TimestampLabel: s.TimestampLabel,
		})
	}
	return out
}
