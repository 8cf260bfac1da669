package combat

import (
	"strconv"
	"strings"
)

// ParseNumber reads a lenient number such as "1,234.5" or "23.4%"
// every rune other than digits, dot, plus and minus is dropped, failures read as 0
func ParseNumber(s string) float64 {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseDurationSecs reads "ss", "mm:ss" or "h:mm:ss" into total seconds
// blank input, more than three fields, empty or negative fields all fail
func ParseDurationSecs(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, false
	}
	var total, mult uint64 = 0, 1
	for i := len(parts) - 1; i >= 0; i-- {
		p := strings.TrimSpace(parts[i])
		if p == "" || strings.Contains(p, "-") {
			return 0, false
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return 0, false
		}
		total += n * mult
		mult *= 60
	}
	return total, true
}

// HasActivity reports whether any encounter or row metric is above zero
func HasActivity(enc EncounterSummary, rows []CombatantRow) bool {
	if ParseNumber(enc.Damage) > 0 ||
		ParseNumber(enc.Healed) > 0 ||
		ParseNumber(enc.EncDPS) > 0 ||
		ParseNumber(enc.EncHPS) > 0 {
		return true
	}
	for _, r := range rows {
		if r.Damage > 0 || r.Healed > 0 || r.EncDPS > 0 || r.EncHPS > 0 {
			return true
		}
	}
	return false
}

// ratio turns a percent string into a fraction, "23.4%" is 0.234
func ratio(s string) float64 {
	return ParseNumber(s) / 100
}
