package sports

import "github.com/bestbet-labs/daily-bets/pkg/config"

var nflMarketToStat = map[string]string{
	"player_field_goals":                  "field goals",
	"player_kicking_points":               "kicking points",
	"player_pass_attempts":                "pass attempts",
	"player_pass_attempts_alternate":      "pass attempts",
	"player_pass_interceptions":           "pass ints",
	"player_pass_interceptions_alternate": "pass ints",
	"player_pass_tds":                     "pass tds",
	"player_pass_tds_alternate":           "pass tds",
	"player_pass_yds":                     "pass yards",
	"player_pass_yds_alternate":           "pass yards",
	"player_pats":                         "extra points",
	"player_pats_alternate":               "extra points",
	"player_reception_yds":                "rec yards",
	"player_reception_yds_alternate":      "rec yards",
	"player_receptions":                   "receptions",
	"player_rush_attempts":                "rush carries",
	"player_rush_attempts_alternate":      "rush carries",
	"player_rush_reception_tds":           "rush + rec tds",
	"player_rush_reception_tds_alternate": "rush + rec tds",
	"player_rush_reception_yds":           "rush + rec yards",
	"player_rush_reception_yds_alternate": "rush + rec yards",
	"player_rush_yds":                     "rush yards",
	"player_rush_yds_alternate":           "rush yards",
	"player_sacks":                        "sacks",
	"player_tds_over":                     "pass + rush + rec tds",
	"player_anytime_td":                   "pass + rush + rec tds",
}

func newNFL(cfg *config.Config) Config {
	return Config{
		Name:                "nfl",
		SportKey:            "americanfootball_nfl",
		Region:              cfg.OddsRegion,
		MarketToStat:        nflMarketToStat,
		HasAlternateMarkets: true,
		// nfl_teams stores the full franchise name in one column.
		PlayerQuery: `
			SELECT p.id AS player_id, p.name AS name, t.team_code AS team_abv
			FROM nfl_players p
			LEFT JOIN nfl_teams t ON p.team_id = t.id`,
		TeamQuery: `
			SELECT '' AS team_city, name, team_code AS team_abv
			FROM nfl_teams`,
		AnalysisURL:     cfg.NFLAnalysisURL,
		BetsTable:       "v2_nfl_daily_bets",
		BackupTable:     "v2_nfl_daily_bets_backup",
		EventWindowDays: 2,
	}
}
