// Package combat holds the live combat model and its lenient parsers
package combat

// EncounterSummary is the encounter level view of one CombatData event
// the numeric fields stay as the text the overlay sent
type EncounterSummary struct {
	Title    string `json:"title" msgpack:"title"`
	Zone     string `json:"zone" msgpack:"zone"`
	Duration string `json:"duration" msgpack:"duration"`
	EncDPS   string `json:"encdps" msgpack:"encdps"`
	Damage   string `json:"damage" msgpack:"damage"`
	EncHPS   string `json:"enchps" msgpack:"enchps"`
	Healed   string `json:"healed" msgpack:"healed"`
	IsActive bool   `json:"is_active" msgpack:"is_active"`
}

// CombatantRow is one party member's stats, numeric and display forms side by side
type CombatantRow struct {
	Name         string  `json:"name" msgpack:"name"`
	Job          string  `json:"job" msgpack:"job"`
	EncDPS       float64 `json:"encdps" msgpack:"encdps"`
	EncDPSStr    string  `json:"encdps_str" msgpack:"encdps_str"`
	Damage       float64 `json:"damage" msgpack:"damage"`
	DamageStr    string  `json:"damage_str" msgpack:"damage_str"`
	Share        float64 `json:"share" msgpack:"share"`
	ShareStr     string  `json:"share_str" msgpack:"share_str"`
	EncHPS       float64 `json:"enchps" msgpack:"enchps"`
	EncHPSStr    string  `json:"enchps_str" msgpack:"enchps_str"`
	Healed       float64 `json:"healed" msgpack:"healed"`
	HealedStr    string  `json:"healed_str" msgpack:"healed_str"`
	HealShare    float64 `json:"heal_share" msgpack:"heal_share"`
	HealShareStr string  `json:"heal_share_str" msgpack:"heal_share_str"`
	OverhealPct  string  `json:"overheal_pct" msgpack:"overheal_pct"`
	Crit         string  `json:"crit" msgpack:"crit"`
	DH           string  `json:"dh" msgpack:"dh"`
	Deaths       string  `json:"deaths" msgpack:"deaths"`
}

// knownJobs are the job codes kept when building party rows
var knownJobs = map[string]struct{}{
	"PLD": {}, "WAR": {}, "DRK": {}, "GNB": {},
	"WHM": {}, "SCH": {}, "AST": {}, "SGE": {},
	"MNK": {}, "DRG": {}, "NIN": {}, "SAM": {}, "RPR": {}, "VPR": {},
	"BRD": {}, "MCH": {}, "DNC": {},
	"BLM": {}, "SMN": {}, "RDM": {}, "PCT": {}, "BLU": {},
}

// IsKnownJob reports whether job is a party job code, case insensitive
func IsKnownJob(job string) bool {
	_, ok := knownJobs[upper(job)]
	return ok
}
