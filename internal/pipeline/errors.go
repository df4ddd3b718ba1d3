package pipeline

import "fmt"

// TeamNotFoundError means one or both of an event's team names did not
// resolve to a known abbreviation. Carries both raw names for
// diagnostics.
type TeamNotFoundError struct {
	HomeTeam string
	AwayTeam string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("not able to find team %q or %q", e.HomeTeam, e.AwayTeam)
}

// PlayerNotFoundError means the outcome's player description matched
// neither roster of the game.
type PlayerNotFoundError struct {
	Player  string
	HomeAbv string
	AwayAbv string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("no player found for %q on team %s or %s", e.Player, e.HomeAbv, e.AwayAbv)
}

// DuplicateKeyError reports two player rows collapsing onto the same
// (normalized name, team abbreviation) key with different ids. The index
// would be ambiguous, so construction fails instead of keeping either.
type DuplicateKeyError struct {
	Name     string
	TeamAbv  string
	Existing int64
	Conflict int64
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate player key (%q, %q): ids %d and %d", e.Name, e.TeamAbv, e.Existing, e.Conflict)
}

// SideMismatchError marks a bet whose analysis came back scored for the
// opposite side of the line. The bet is dropped rather than surfaced
// with a contradictory label.
type SideMismatchError struct {
	Player   string
	Stat     string
	Outcome  string
	Analysis string
}

func (e *SideMismatchError) Error() string {
	return fmt.Sprintf("analysis side %q does not match outcome side %q for %s %s", e.Analysis, e.Outcome, e.Player, e.Stat)
}
