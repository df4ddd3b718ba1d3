package sports

import "github.com/bestbet-labs/daily-bets/pkg/config"

var wnbaMarketToStat = map[string]string{
	"player_assists":                 "assists",
	"player_blocks":                  "blocks",
	"player_blocks_steals":           "blocks + steals",
	"player_points":                  "points",
	"player_points_assists":          "points + assists",
	"player_points_rebounds":         "points + rebounds",
	"player_points_rebounds_assists": "points + rebounds + assists",
	"player_rebounds":                "rebounds",
	"player_rebounds_assists":        "rebounds + assists",
	"player_steals":                  "steals",
	"player_threes":                  "threes",
	"player_turnovers":               "turnovers",
}

func newWNBA(cfg *config.Config) Config {
	return Config{
		Name:         "wnba",
		SportKey:     "basketball_wnba",
		Region:       cfg.OddsRegion,
		MarketToStat: wnbaMarketToStat,
		// Sportsbooks still list her under her pre-2024 hyphenated name.
		PlayerAliases: []PlayerAlias{
			{Canonical: "Skylar Diggins", Alias: "Skylar Diggins-Smith", TeamAbv: "SEA"},
		},
		PlayerQuery: `
			SELECT p.player_id AS player_id, p.name AS name, t.team_abv AS team_abv
			FROM wnba_players p
			LEFT JOIN wnba_teams t ON p.team_id = t.id`,
		TeamQuery: `
			SELECT team_city, name, team_abv
			FROM wnba_teams`,
		AnalysisURL:     cfg.WNBAAnalysisURL,
		BetsTable:       "v2_wnba_daily_bets",
		EventWindowDays: 2,
	}
}
