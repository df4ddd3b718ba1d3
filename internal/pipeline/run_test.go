package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestbet-labs/daily-bets/internal/analysis"
	"github.com/bestbet-labs/daily-bets/internal/oddsapi"
	"github.com/bestbet-labs/daily-bets/internal/sports"
	"github.com/bestbet-labs/daily-bets/internal/store"
	"github.com/bestbet-labs/daily-bets/pkg/config"
)

type fakeOdds struct {
	events   []oddsapi.Event
	games    map[string]*oddsapi.Game
	gameErr  error
	listErr  error
	fetched  []string
	markets  [][]string
}

func (f *fakeOdds) ListEvents(_ context.Context, _ string, _, _ time.Time) ([]oddsapi.Event, error) {
	return f.events, f.listErr
}

func (f *fakeOdds) FetchGame(_ context.Context, _, eventID, _ string, markets []string) (*oddsapi.Game, error) {
	f.fetched = append(f.fetched, eventID)
	f.markets = append(f.markets, markets)
	if f.gameErr != nil {
		return nil, f.gameErr
	}
	return f.games[eventID], nil
}

type fakeAnalyzer struct {
	mu       sync.Mutex
	requests []analysis.BetRequest
	respond  func(analysis.BetRequest) (*analysis.BetAnalysis, error)
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req analysis.BetRequest) (*analysis.BetAnalysis, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.respond(req)
}

type fakeStore struct {
	players []store.PlayerRow
	teams   []store.TeamRow

	inserted      []store.BetRecord
	insertedTable string
	insertCalled  bool
	backupCalls   int
	backupErr     error
}

func (f *fakeStore) LoadPlayers(_ context.Context, _ string) ([]store.PlayerRow, error) {
	return f.players, nil
}

func (f *fakeStore) LoadTeams(_ context.Context, _ string) ([]store.TeamRow, error) {
	return f.teams, nil
}

func (f *fakeStore) InsertBets(_ context.Context, table string, records []store.BetRecord) (int64, error) {
	f.insertCalled = true
	f.insertedTable = table
	f.inserted = records
	return int64(len(records)), nil
}

func (f *fakeStore) RunBackupMaintenance(_ context.Context, _, _ string, _ int) (int64, error) {
	f.backupCalls++
	return 0, f.backupErr
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testSportConfig() sports.Config {
	return sports.Config{
		Name:     "nba",
		SportKey: "basketball_nba",
		Region:   "us_dfs",
		MarketToStat: map[string]string{
			"player_points": "points",
		},
		PlayerQuery:     "SELECT 1",
		TeamQuery:       "SELECT 1",
		BetsTable:       "v2_nba_daily_bets",
		EventWindowDays: 2,
	}
}

func testAppConfig() *config.Config {
	return &config.Config{BatchSize: 2, BackupSyncDays: 14}
}

func celticsKnicksFixture(overPrice, underPrice float64) (*fakeOdds, *fakeStore) {
	event := oddsapi.Event{
		ID:           "evt-1",
		SportKey:     "basketball_nba",
		CommenceTime: time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
		HomeTeam:     "Boston Celtics",
		AwayTeam:     "New York Knicks",
	}
	odds := &fakeOdds{
		events: []oddsapi.Event{event},
		games: map[string]*oddsapi.Game{
			"evt-1": {
				ID:           "evt-1",
				CommenceTime: event.CommenceTime,
				HomeTeam:     event.HomeTeam,
				AwayTeam:     event.AwayTeam,
				Bookmakers: []oddsapi.Bookmaker{{
					Key: "underdog",
					Markets: []oddsapi.Market{{
						Key: "player_points",
						Outcomes: []oddsapi.Outcome{
							{Name: "Over", Description: "Jayson Tatum", Price: overPrice, Point: 24.5},
							{Name: "Under", Description: "Jayson Tatum", Price: underPrice, Point: 24.5},
						},
					}},
				}},
			},
		},
	}
	st := &fakeStore{
		players: []store.PlayerRow{{PlayerID: 1, Name: "Jayson Tatum", TeamAbv: "BOS"}},
		teams: []store.TeamRow{
			{TeamCity: "Boston", Name: "Celtics", TeamAbv: "BOS"},
			{TeamCity: "New York", Name: "Knicks", TeamAbv: "NYK"},
		},
	}
	return odds, st
}

func TestRunRoundTripDeduplicatesOverUnderPair(t *testing.T) {
	odds, st := celticsKnicksFixture(1.9, 1.9)
	analyzer := &fakeAnalyzer{
		respond: func(req analysis.BetRequest) (*analysis.BetAnalysis, error) {
			return &analysis.BetAnalysis{OverUnder: "over", Grade: 82, Input: req}, nil
		},
	}

	p := New(testSportConfig(), odds, analyzer, st, testAppConfig(), testLogger())
	require.NoError(t, p.Run(context.Background()))

	// The under of the same line never got its own call.
	require.Len(t, analyzer.requests, 1)
	req := analyzer.requests[0]
	assert.Equal(t, int64(1), req.PlayerID)
	assert.Equal(t, "BOS", req.TeamCode)
	assert.Equal(t, "NYK", req.OpponentAbv)
	assert.Equal(t, "points", req.Stat)
	assert.Equal(t, 24.5, req.Line)

	require.Len(t, st.inserted, 1)
	record := st.inserted[0]
	assert.Equal(t, "v2_nba_daily_bets", st.insertedTable)
	assert.Equal(t, 1.9, record.Price)
	assert.Equal(t, "NYK@BOS", record.GameTag)
	assert.False(t, record.GameTime.IsZero())
	assert.Contains(t, string(record.Analysis), `"grade":82`)
}

func TestRunDiscardsSideMismatch(t *testing.T) {
	odds, st := celticsKnicksFixture(1.9, 1.9)
	analyzer := &fakeAnalyzer{
		respond: func(req analysis.BetRequest) (*analysis.BetAnalysis, error) {
			// The service disagrees with the sportsbook's side.
			return &analysis.BetAnalysis{OverUnder: "under", Input: req}, nil
		},
	}

	p := New(testSportConfig(), odds, analyzer, st, testAppConfig(), testLogger())
	require.NoError(t, p.Run(context.Background()))

	require.Len(t, analyzer.requests, 1)
	assert.Empty(t, st.inserted)
}

func TestRunContainsResolutionFailures(t *testing.T) {
	odds, st := celticsKnicksFixture(1.9, 1.9)
	game := odds.games["evt-1"]
	game.Bookmakers[0].Markets[0].Outcomes = append(game.Bookmakers[0].Markets[0].Outcomes,
		oddsapi.Outcome{Name: "Over", Description: "Nobody Inparticular", Price: 2.1, Point: 9.5},
	)
	analyzer := &fakeAnalyzer{
		respond: func(req analysis.BetRequest) (*analysis.BetAnalysis, error) {
			return &analysis.BetAnalysis{OverUnder: "over", Input: req}, nil
		},
	}

	p := New(testSportConfig(), odds, analyzer, st, testAppConfig(), testLogger())
	require.NoError(t, p.Run(context.Background()))

	// The unknown player degraded the output set without aborting it.
	require.Len(t, analyzer.requests, 1)
	assert.Len(t, st.inserted, 1)
}

func TestRunAbortsSweepOnGameFetchFailure(t *testing.T) {
	odds, st := celticsKnicksFixture(1.9, 1.9)
	odds.gameErr = errors.New("connection reset")
	analyzer := &fakeAnalyzer{
		respond: func(req analysis.BetRequest) (*analysis.BetAnalysis, error) {
			t.Fatal("no analysis call expected after a failed sweep")
			return nil, nil
		},
	}

	p := New(testSportConfig(), odds, analyzer, st, testAppConfig(), testLogger())
	err := p.Run(context.Background())
	require.Error(t, err)

	assert.False(t, st.insertCalled, "a failed sweep must not insert a partial set")
}

func TestRunSurfacesIndexInvariantViolation(t *testing.T) {
	odds, st := celticsKnicksFixture(1.9, 1.9)
	st.players = append(st.players, store.PlayerRow{PlayerID: 99, Name: "Jayson Tatum", TeamAbv: "BOS"})
	analyzer := &fakeAnalyzer{
		respond: func(req analysis.BetRequest) (*analysis.BetAnalysis, error) {
			return nil, nil
		},
	}

	p := New(testSportConfig(), odds, analyzer, st, testAppConfig(), testLogger())
	err := p.Run(context.Background())
	require.Error(t, err)

	var dup *DuplicateKeyError
	assert.ErrorAs(t, err, &dup)
	assert.False(t, st.insertCalled)
}

func TestRunSkipsUnknownMarkets(t *testing.T) {
	odds, st := celticsKnicksFixture(1.9, 1.9)
	game := odds.games["evt-1"]
	game.Bookmakers[0].Markets = append(game.Bookmakers[0].Markets, oddsapi.Market{
		Key: "player_triple_double",
		Outcomes: []oddsapi.Outcome{
			{Name: "Over", Description: "Jayson Tatum", Price: 3.0, Point: 0.5},
		},
	})
	analyzer := &fakeAnalyzer{
		respond: func(req analysis.BetRequest) (*analysis.BetAnalysis, error) {
			return &analysis.BetAnalysis{OverUnder: "over", Input: req}, nil
		},
	}

	p := New(testSportConfig(), odds, analyzer, st, testAppConfig(), testLogger())
	require.NoError(t, p.Run(context.Background()))

	require.Len(t, analyzer.requests, 1)
	assert.Equal(t, "points", analyzer.requests[0].Stat)
}

func TestRunNoEventsIsANoOp(t *testing.T) {
	odds := &fakeOdds{}
	st := &fakeStore{}
	analyzer := &fakeAnalyzer{respond: func(analysis.BetRequest) (*analysis.BetAnalysis, error) { return nil, nil }}

	p := New(testSportConfig(), odds, analyzer, st, testAppConfig(), testLogger())
	require.NoError(t, p.Run(context.Background()))
	assert.False(t, st.insertCalled)
}

func TestRunBackupMaintenanceFailureDoesNotFailRun(t *testing.T) {
	odds, st := celticsKnicksFixture(1.9, 1.9)
	st.backupErr = errors.New("backup table missing")
	analyzer := &fakeAnalyzer{
		respond: func(req analysis.BetRequest) (*analysis.BetAnalysis, error) {
			return &analysis.BetAnalysis{OverUnder: "over", Input: req}, nil
		},
	}

	sport := testSportConfig()
	sport.BackupTable = "v2_nba_daily_bets_backup"

	p := New(sport, odds, analyzer, st, testAppConfig(), testLogger())
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, 1, st.backupCalls)
	assert.Len(t, st.inserted, 1)
}
