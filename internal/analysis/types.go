package analysis

// BetRequest is the request body for one analysis call.
type BetRequest struct {
	PlayerID    int64   `json:"player_id"`
	TeamCode    string  `json:"team_code"`
	OpponentAbv string  `json:"opponent_abv"`
	Stat        string  `json:"stat"`
	Line        float64 `json:"line"`
}

// Injury dates use the service's YYYYMMDD format, e.g. "20240805".
type Injury struct {
	InjDate       string `json:"injDate"`
	Description   string `json:"description"`
	Designation   string `json:"designation"`
	InjReturnDate string `json:"injReturnDate"`
}

type GraphPoint struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Date  string  `json:"date"`
}

type Graph struct {
	Version   int          `json:"version"`
	Title     string       `json:"title"`
	Data      []GraphPoint `json:"data"`
	Threshold *float64     `json:"threshold"`
}

// BetAnalysis is the scored payload returned by the analysis service.
// OverUnder is the side the service itself concluded ("over"/"under");
// it may be empty when the service could not pick a side.
type BetAnalysis struct {
	OverUnder      string     `json:"over_under"`
	Grade          int        `json:"grade"`
	League         string     `json:"league"`
	Injury         *Injury    `json:"injury"`
	Insights       []string   `json:"insights"`
	Input          BetRequest `json:"input"`
	ShortAnswer    string     `json:"short_answer"`
	LongAnswer     string     `json:"long_answer"`
	PlayerPosition string     `json:"player_position"`
	Graphs         []Graph    `json:"graphs"`
}
