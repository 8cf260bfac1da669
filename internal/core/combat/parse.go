package combat

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// EventCombatData is the overlay event type carrying encounter data
const EventCombatData = "CombatData"

// object is a decoded JSON object with case insensitive lookup
type object struct {
	m    map[string]any
	fold cases.Caser
}

// get tries the exact key first, then a case folded match
func (o object) get(key string) (any, bool) {
	if v, ok := o.m[key]; ok {
		return v, true
	}
	want := o.fold.String(key)
	for k, v := range o.m {
		if o.fold.String(k) == want {
			return v, true
		}
	}
	return nil, false
}

// str returns the first present key as text, or def
func (o object) str(def string, keys ...string) string {
	for _, k := range keys {
		if v, ok := o.get(k); ok {
			return text(v)
		}
	}
	return def
}

func (o object) child(key string) object {
	m, _ := o.m[key].(map[string]any)
	return object{m: m, fold: o.fold}
}

// text renders a JSON value the way the overlay meant it to be read
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// ParseCombatData decodes one overlay message
// ok is false unless the payload is a JSON object with type CombatData
func ParseCombatData(raw []byte) (EncounterSummary, []CombatantRow, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return EncounterSummary{}, nil, false
	}
	if typ, _ := m["type"].(string); typ != EventCombatData {
		return EncounterSummary{}, nil, false
	}

	root := object{m: m, fold: cases.Fold()}
	enc := parseEncounter(root)
	rows := parseRows(root.child("Combatant"))
	return enc, rows, true
}

func parseEncounter(root object) EncounterSummary {
	e := root.child("Encounter")

	title := text(e.m["title"])
	if _, ok := e.m["title"]; !ok {
		title = e.str("", "Encounter")
	}

	return EncounterSummary{
		Title:    title,
		Zone:     e.str("", "CurrentZoneName"),
		Duration: e.str("", "duration"),
		EncDPS:   e.str("", "encdps", "ENCDPS", "DPS"),
		Damage:   e.str("", "damage", "damageTotal"),
		EncHPS:   e.str("", "enchps", "ENCHPS"),
		Healed:   e.str("", "healed"),
		IsActive: isActive(root.m["isActive"]),
	}
}

func isActive(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	}
	return false
}

func parseRows(comb object) []CombatantRow {
	rows := make([]CombatantRow, 0, len(comb.m))
	for name, v := range comb.m {
		sm, ok := v.(map[string]any)
		if !ok {
			continue
		}
		s := object{m: sm, fold: comb.fold}
		job := upper(s.str("", "Job"))
		if !IsKnownJob(job) {
			continue
		}

		encdps := s.str("0", "encdps", "ENCDPS", "dps")
		damage := s.str("", "damage")
		share := s.str("", "damage%")
		enchps := s.str("", "enchps")
		healed := s.str("", "healed")
		healShare := s.str("", "healed%")

		rows = append(rows, CombatantRow{
			Name:         name,
			Job:          job,
			EncDPS:       ParseNumber(encdps),
			EncDPSStr:    encdps,
			Damage:       ParseNumber(damage),
			DamageStr:    damage,
			Share:        ratio(share),
			ShareStr:     share,
			EncHPS:       ParseNumber(enchps),
			EncHPSStr:    enchps,
			Healed:       ParseNumber(healed),
			HealedStr:    healed,
			HealShare:    ratio(healShare),
			HealShareStr: healShare,
			OverhealPct:  s.str("", "OverHealPct"),
			Crit:         s.str("", "crithit%", "Crit%", "crithit"),
			DH:           s.str("", "DirectHitPct", "DirectHit%", "DirectHit", "Direct%", "DH%"),
			Deaths:       s.str("0", "deaths"),
		})
	}

	slices.SortFunc(rows, func(a, b CombatantRow) int {
		if c := cmp.Compare(b.EncDPS, a.EncDPS); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return rows
}
