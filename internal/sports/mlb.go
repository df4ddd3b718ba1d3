package sports

import "github.com/bestbet-labs/daily-bets/pkg/config"

var mlbMarketToStat = map[string]string{
	"batter_home_runs":      "home runs",
	"batter_hits":           "hits",
	"batter_rbis":           "rbi",
	"batter_hits_runs_rbis": "hits + rbi",
}

// mlbTeamAliases backfills franchise names the store may not carry:
// relocations, rebrands and legacy names still used by sportsbooks.
// Store rows always win over these.
var mlbTeamAliases = map[string]string{
	"Arizona Diamondbacks":  "ARI",
	"Atlanta Braves":        "ATL",
	"Baltimore Orioles":     "BAL",
	"Boston Red Sox":        "BOS",
	"Chicago Cubs":          "CHC",
	"Chicago White Sox":     "CHW",
	"Cincinnati Reds":       "CIN",
	"Cleveland Guardians":   "CLE",
	"Cleveland Indians":     "CLE",
	"Colorado Rockies":      "COL",
	"Detroit Tigers":        "DET",
	"Houston Astros":        "HOU",
	"Kansas City Royals":    "KC",
	"Los Angeles Angels":    "LAA",
	"Los Angeles Dodgers":   "LAD",
	"Miami Marlins":         "MIA",
	"Milwaukee Brewers":     "MIL",
	"Minnesota Twins":       "MIN",
	"New York Mets":         "NYM",
	"New York Yankees":      "NYY",
	"Oakland Athletics":     "OAK",
	"Athletics":             "OAK",
	"Philadelphia Phillies": "PHI",
	"Pittsburgh Pirates":    "PIT",
	"San Diego Padres":      "SD",
	"San Francisco Giants":  "SF",
	"Seattle Mariners":      "SEA",
	"St. Louis Cardinals":   "STL",
	"Tampa Bay Rays":        "TB",
	"Texas Rangers":         "TEX",
	"Toronto Blue Jays":     "TOR",
	"Washington Nationals":  "WAS",
}

func newMLB(cfg *config.Config) Config {
	return Config{
		Name:         "mlb",
		SportKey:     "baseball_mlb",
		Region:       cfg.OddsRegion,
		MarketToStat: mlbMarketToStat,
		TeamAliases:  mlbTeamAliases,
		PlayerQuery: `
			SELECT player_id, long_name AS name, team_abv
			FROM mlb_players`,
		TeamQuery: `
			SELECT team_city, team_name AS name, team_abv
			FROM mlb_teams`,
		AnalysisURL:     cfg.MLBAnalysisURL,
		BetsTable:       "v2_mlb_daily_bets",
		EventWindowDays: 2,
	}
}
