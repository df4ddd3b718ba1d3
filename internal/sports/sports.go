// Package sports holds the per-sport configuration objects that
// parameterize the one generic pipeline: market tables, store queries,
// alias tables and analysis endpoints. Adding a sport means adding a
// file here, not copying pipeline code.
package sports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bestbet-labs/daily-bets/pkg/config"
)

// PlayerAlias injects an extra index key for a known sportsbook-vs-
// roster naming divergence. Alias resolves to the same identity as
// Canonical on the given team; if the canonical key is absent from the
// store the alias is skipped.
type PlayerAlias struct {
	Canonical string
	Alias     string
	TeamAbv   string
}

type Config struct {
	// Name is the CLI-facing identifier ("nba", "nfl", ...).
	Name string
	// SportKey is the odds provider's sport identifier.
	SportKey string
	Region   string

	// MarketToStat maps odds provider market keys to the analysis
	// service's stat labels. Unknown keys are skipped with a warning.
	MarketToStat map[string]string
	// HasAlternateMarkets marks sports whose market table carries
	// "_alternate" keys that are only fetched when enabled in config.
	HasAlternateMarkets bool

	// TeamAliases are historical or alternate franchise names merged
	// into the team index when the store has no entry for them.
	TeamAliases   map[string]string
	PlayerAliases []PlayerAlias

	PlayerQuery string
	TeamQuery   string

	AnalysisURL string
	BetsTable   string
	// BackupTable enables post-insert backup maintenance when set.
	BackupTable string

	// EventWindowDays bounds how far ahead events are swept.
	EventWindowDays int
}

// ForName returns the configuration for one recognized sport name,
// wired with the process config's analysis endpoint.
func ForName(name string, cfg *config.Config) (Config, error) {
	switch strings.ToLower(name) {
	case "nba":
		return newNBA(cfg), nil
	case "wnba":
		return newWNBA(cfg), nil
	case "nfl":
		return newNFL(cfg), nil
	case "mlb":
		return newMLB(cfg), nil
	default:
		return Config{}, fmt.Errorf("unrecognized sport %q (valid: %s)", name, strings.Join(ValidNames(), ", "))
	}
}

func ValidNames() []string {
	names := []string{"mlb", "nba", "nfl", "wnba"}
	sort.Strings(names)
	return names
}

// FetchMarkets is the market-key list sent to the odds provider,
// excluding alternate markets unless enabled.
func (c Config) FetchMarkets(includeAlternate bool) []string {
	markets := make([]string, 0, len(c.MarketToStat))
	for key := range c.MarketToStat {
		if !includeAlternate && strings.HasSuffix(key, "_alternate") {
			continue
		}
		markets = append(markets, key)
	}
	sort.Strings(markets)
	return markets
}
