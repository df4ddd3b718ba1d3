package pipeline

import "strings"

// NormalizeName maps sportsbook spellings and roster spellings onto one
// key: surrounding whitespace trimmed, ASCII lowercased, literal periods
// removed ("J.J. Watt" and "jj watt" normalize identically, as do
// "St. Louis" and "St Louis"). Idempotent.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, ".", "")))
}
