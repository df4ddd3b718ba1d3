package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestbet-labs/daily-bets/internal/sports"
	"github.com/bestbet-labs/daily-bets/internal/store"
)

func TestBuildSportMapResolvesEveryPlayer(t *testing.T) {
	players := []store.PlayerRow{
		{PlayerID: 1, Name: "LeBron James", TeamAbv: "LAL"},
		{PlayerID: 2, Name: "Stephen Curry", TeamAbv: "GSW"},
		{PlayerID: 3, Name: "Harry Giles III", TeamAbv: "CHA"},
		{PlayerID: 4, Name: "Jaren Jackson Jr.", TeamAbv: "MEM"},
	}

	m, err := BuildSportMap(players, nil, nil, nil)
	require.NoError(t, err)

	for _, p := range players {
		id, ok := m.ResolvePlayer(p.Name, p.TeamAbv)
		require.True(t, ok, "player %s not resolvable", p.Name)
		assert.Equal(t, p.PlayerID, id)
	}

	// Sportsbook spelling variants land on the same identity.
	id, ok := m.ResolvePlayer("jaren jackson jr", "MEM")
	require.True(t, ok)
	assert.Equal(t, int64(4), id)
}

func TestBuildSportMapDuplicateKeyIsFatal(t *testing.T) {
	players := []store.PlayerRow{
		{PlayerID: 10, Name: "Josh Allen", TeamAbv: "BUF"},
		{PlayerID: 11, Name: "Josh Allen", TeamAbv: "BUF"},
	}

	_, err := BuildSportMap(players, nil, nil, nil)
	require.Error(t, err)

	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "josh allen", dup.Name)
	assert.Equal(t, "BUF", dup.TeamAbv)
	assert.Equal(t, int64(10), dup.Existing)
	assert.Equal(t, int64(11), dup.Conflict)
}

func TestBuildSportMapSameIDTwiceIsAllowed(t *testing.T) {
	players := []store.PlayerRow{
		{PlayerID: 10, Name: "Josh Allen", TeamAbv: "BUF"},
		{PlayerID: 10, Name: "Josh Allen", TeamAbv: "BUF"},
	}

	_, err := BuildSportMap(players, nil, nil, nil)
	assert.NoError(t, err)
}

func TestResolveTeamStaticFallback(t *testing.T) {
	teams := []store.TeamRow{
		{TeamCity: "Oakland", Name: "Athletics", TeamAbv: "OAK"},
	}
	aliases := map[string]string{
		"Athletics":         "OAK",
		"Oakland Athletics": "XXX", // store entry must win over this
	}

	m, err := BuildSportMap(nil, teams, aliases, nil)
	require.NoError(t, err)

	abv, ok := m.ResolveTeam("Oakland Athletics")
	require.True(t, ok)
	assert.Equal(t, "OAK", abv)

	abv, ok = m.ResolveTeam("Athletics")
	require.True(t, ok)
	assert.Equal(t, "OAK", abv)

	_, ok = m.ResolveTeam("Montreal Expos")
	assert.False(t, ok)
}

func TestBuildSportMapPlayerAliases(t *testing.T) {
	players := []store.PlayerRow{
		{PlayerID: 7, Name: "Skylar Diggins", TeamAbv: "SEA"},
	}
	aliases := []sports.PlayerAlias{
		{Canonical: "Skylar Diggins", Alias: "Skylar Diggins-Smith", TeamAbv: "SEA"},
		{Canonical: "No Such Player", Alias: "Also No Such Player", TeamAbv: "SEA"},
	}

	m, err := BuildSportMap(players, nil, nil, aliases)
	require.NoError(t, err)

	id, ok := m.ResolvePlayer("Skylar Diggins-Smith", "SEA")
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	// Alias with no canonical entry is skipped, not invented.
	_, ok = m.ResolvePlayer("Also No Such Player", "SEA")
	assert.False(t, ok)
}
