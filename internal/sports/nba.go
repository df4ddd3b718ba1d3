package sports

import "github.com/bestbet-labs/daily-bets/pkg/config"

var nbaMarketToStat = map[string]string{
	"player_assists":                           "assists",
	"player_assists_alternate":                 "assists",
	"player_points":                            "points",
	"player_points_alternate":                  "points",
	"player_points_assists":                    "points + assists",
	"player_points_assists_alternate":          "points + assists",
	"player_rebounds":                          "rebounds",
	"player_rebounds_alternate":                "rebounds",
	"player_points_rebounds":                   "points + rebounds",
	"player_points_rebounds_alternate":         "points + rebounds",
	"player_points_rebounds_assists":           "points + rebounds + assists",
	"player_points_rebounds_assists_alternate": "points + rebounds + assists",
	"player_rebounds_assists":                  "rebounds + assists",
	"player_rebounds_assists_alternate":        "rebounds + assists",
	"player_threes":                            "threes",
	"player_threes_alternate":                  "threes",
	"player_blocks":                            "blocks",
	"player_blocks_alternate":                  "blocks",
	"player_steals":                            "steals",
	"player_steals_alternate":                  "steals",
	"player_turnovers":                         "turnovers",
	"player_turnovers_alternate":               "turnovers",
}

func newNBA(cfg *config.Config) Config {
	return Config{
		Name:                "nba",
		SportKey:            "basketball_nba",
		Region:              cfg.OddsRegion,
		MarketToStat:        nbaMarketToStat,
		HasAlternateMarkets: true,
		PlayerQuery: `
			SELECT p.player_id AS player_id, p.name AS name, t.team_abv AS team_abv
			FROM nba_players p
			LEFT JOIN nba_teams t ON p.team_id = t.id`,
		TeamQuery: `
			SELECT team_city, name, team_abv
			FROM nba_teams`,
		AnalysisURL:     cfg.NBAAnalysisURL,
		BetsTable:       "v2_nba_daily_bets",
		EventWindowDays: 2,
	}
}
