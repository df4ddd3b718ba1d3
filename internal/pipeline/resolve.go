package pipeline

import (
	"fmt"
	"strings"

	"github.com/bestbet-labs/daily-bets/internal/oddsapi"
)

// ResolvedBet is the fully-identified input to one analysis call.
type ResolvedBet struct {
	PlayerID    int64
	TeamAbv     string
	OpponentAbv string
	Stat        string
	Line        float64
	GameTag     string
}

// Resolve maps one market outcome onto internal identities. Both event
// team names must resolve to abbreviations; the player description is
// then tried against the home roster first, and the away roster second.
// Home before away is deliberate and deterministic, so a player listed
// on both rosters (trade windows, bad data) always resolves the same
// way. The opponent is whichever side did not match.
func (m *SportMap) Resolve(event oddsapi.Event, outcome oddsapi.Outcome, stat string) (ResolvedBet, error) {
	homeAbv, homeOK := m.ResolveTeam(event.HomeTeam)
	awayAbv, awayOK := m.ResolveTeam(event.AwayTeam)
	if !homeOK || !awayOK {
		return ResolvedBet{}, &TeamNotFoundError{HomeTeam: event.HomeTeam, AwayTeam: event.AwayTeam}
	}

	playerID, ok := m.ResolvePlayer(outcome.Description, homeAbv)
	teamAbv, opponentAbv := homeAbv, awayAbv
	if !ok {
		playerID, ok = m.ResolvePlayer(outcome.Description, awayAbv)
		if !ok {
			return ResolvedBet{}, &PlayerNotFoundError{
				Player:  outcome.Description,
				HomeAbv: homeAbv,
				AwayAbv: awayAbv,
			}
		}
		teamAbv, opponentAbv = awayAbv, homeAbv
	}

	return ResolvedBet{
		PlayerID:    playerID,
		TeamAbv:     teamAbv,
		OpponentAbv: opponentAbv,
		Stat:        stat,
		Line:        outcome.Point,
		GameTag:     fmt.Sprintf("%s@%s", awayAbv, homeAbv),
	}, nil
}

// lineKey identifies one logical line regardless of side: the over and
// the under of the same (player, stat, line) are one bet to us.
type lineKey struct {
	Player string
	Stat   string
	Line   float64
}

// lineDeduper tracks lines already claimed by an earlier outcome. The
// analysis call is costly and scores one side authoritatively, so the
// second, opposite-side outcome of a pair never gets its own call.
type lineDeduper struct {
	seen map[lineKey]string // key -> side label of the first outcome
}

func newLineDeduper() *lineDeduper {
	return &lineDeduper{seen: make(map[lineKey]string)}
}

// Claim registers an outcome's line. The first outcome for a key wins;
// any later outcome for the same key reports the side that claimed it
// and is treated as a duplicate.
func (d *lineDeduper) Claim(outcome oddsapi.Outcome, stat string) (firstSide string, duplicate bool) {
	key := lineKey{Player: outcome.Description, Stat: stat, Line: outcome.Point}
	if side, ok := d.seen[key]; ok {
		return side, true
	}
	d.seen[key] = outcome.Name
	return outcome.Name, false
}

// sideMatches reports whether the analysis service's inferred side
// agrees with the sportsbook's side label for the outcome.
func sideMatches(outcomeSide, analysisSide string) bool {
	return strings.EqualFold(strings.TrimSpace(outcomeSide), strings.TrimSpace(analysisSide))
}
