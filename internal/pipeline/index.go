package pipeline

import (
	"github.com/bestbet-labs/daily-bets/internal/sports"
	"github.com/bestbet-labs/daily-bets/internal/store"
)

type playerKey struct {
	Name    string
	TeamAbv string
}

// SportMap is the per-run identity index for one sport: normalized
// (player name, team abbreviation) pairs to player ids, and normalized
// full team names to abbreviations. Built once at the start of a run
// and read-only afterwards, so it is shared across concurrent analysis
// calls without locking.
type SportMap struct {
	players       map[playerKey]int64
	teamNameToAbv map[string]string
}

// BuildSportMap materializes the index from store rows. A duplicate
// (normalized name, team abbreviation) key pointing at a different id
// makes the index ambiguous; construction fails with DuplicateKeyError
// rather than silently keeping one row.
//
// Static team aliases fill gaps the store does not cover yet and never
// override a store-provided entry. Player aliases are applied last and
// point their alias key at the canonical player's id.
func BuildSportMap(
	players []store.PlayerRow,
	teams []store.TeamRow,
	teamAliases map[string]string,
	playerAliases []sports.PlayerAlias,
) (*SportMap, error) {
	playerIndex := make(map[playerKey]int64, len(players))
	for _, p := range players {
		key := playerKey{Name: NormalizeName(p.Name), TeamAbv: p.TeamAbv}
		if existing, ok := playerIndex[key]; ok && existing != p.PlayerID {
			return nil, &DuplicateKeyError{
				Name:     key.Name,
				TeamAbv:  key.TeamAbv,
				Existing: existing,
				Conflict: p.PlayerID,
			}
		}
		playerIndex[key] = p.PlayerID
	}

	teamIndex := make(map[string]string, len(teams)+len(teamAliases))
	for _, t := range teams {
		teamIndex[NormalizeName(t.FullName())] = t.TeamAbv
	}
	for name, abv := range teamAliases {
		key := NormalizeName(name)
		if _, ok := teamIndex[key]; !ok {
			teamIndex[key] = abv
		}
	}

	for _, alias := range playerAliases {
		canonical := playerKey{Name: NormalizeName(alias.Canonical), TeamAbv: alias.TeamAbv}
		if id, ok := playerIndex[canonical]; ok {
			playerIndex[playerKey{Name: NormalizeName(alias.Alias), TeamAbv: alias.TeamAbv}] = id
		}
	}

	return &SportMap{
		players:       playerIndex,
		teamNameToAbv: teamIndex,
	}, nil
}

// ResolvePlayer looks up a player by exact normalized name and team
// abbreviation. An unmatched name is a resolution failure, never a
// best-effort guess.
func (m *SportMap) ResolvePlayer(name, teamAbv string) (int64, bool) {
	id, ok := m.players[playerKey{Name: NormalizeName(name), TeamAbv: teamAbv}]
	return id, ok
}

// ResolveTeam looks up a team abbreviation by exact normalized full
// name.
func (m *SportMap) ResolveTeam(fullName string) (string, bool) {
	abv, ok := m.teamNameToAbv[NormalizeName(fullName)]
	return abv, ok
}
