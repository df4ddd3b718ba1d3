package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bestbet-labs/daily-bets/internal/analysis"
	"github.com/bestbet-labs/daily-bets/internal/oddsapi"
	"github.com/bestbet-labs/daily-bets/internal/sports"
	"github.com/bestbet-labs/daily-bets/internal/store"
	"github.com/bestbet-labs/daily-bets/pkg/config"
)

// OddsSource lists events and fetches per-event market odds.
type OddsSource interface {
	ListEvents(ctx context.Context, sportKey string, from, to time.Time) ([]oddsapi.Event, error)
	FetchGame(ctx context.Context, sportKey, eventID, region string, markets []string) (*oddsapi.Game, error)
}

// Analyzer scores one resolved bet.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.BetRequest) (*analysis.BetAnalysis, error)
}

// BetStore loads identity rows and persists the aggregated results.
type BetStore interface {
	LoadPlayers(ctx context.Context, query string) ([]store.PlayerRow, error)
	LoadTeams(ctx context.Context, query string) ([]store.TeamRow, error)
	InsertBets(ctx context.Context, table string, records []store.BetRecord) (int64, error)
	RunBackupMaintenance(ctx context.Context, table, backupTable string, days int) (int64, error)
}

// Pipeline is one sport's resolution + batched analysis run. Sports
// never share a pipeline or an index; multiple sports run as
// independent pipelines.
type Pipeline struct {
	sport            sports.Config
	odds             OddsSource
	analyzer         Analyzer
	store            BetStore
	batchSize        int
	includeAlternate bool
	backupDays       int
	logger           *logrus.Logger
	runID            string
}

func New(sport sports.Config, odds OddsSource, analyzer Analyzer, betStore BetStore, cfg *config.Config, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		sport:            sport,
		odds:             odds,
		analyzer:         analyzer,
		store:            betStore,
		batchSize:        cfg.BatchSize,
		includeAlternate: cfg.IncludeAlternateMarkets,
		backupDays:       cfg.BackupSyncDays,
		logger:           logger,
		runID:            uuid.NewString(),
	}
}

// betParam is one deduplicated (event, outcome, stat) triple awaiting
// resolution and analysis.
type betParam struct {
	Event   oddsapi.Event
	Outcome oddsapi.Outcome
	Stat    string
}

type paramKey struct {
	EventID string
	Outcome oddsapi.Outcome
	Stat    string
}

// Run executes one full sweep for the pipeline's sport. Per-outcome
// failures degrade the output set but never abort the run; odds fetch
// failures abort this sport's sweep before anything is inserted. The
// returned error is informational for the caller except for the index
// construction invariant, which must stop the process.
func (p *Pipeline) Run(ctx context.Context) error {
	log := p.logger.WithFields(logrus.Fields{
		"sport":  p.sport.Name,
		"run_id": p.runID,
	})

	now := time.Now().UTC()
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, p.sport.EventWindowDays).Add(-time.Second)

	log.WithFields(logrus.Fields{
		"from": windowStart.Format(time.RFC3339),
		"to":   windowEnd.Format(time.RFC3339),
	}).Info("Starting daily bets run")

	events, err := p.odds.ListEvents(ctx, p.sport.SportKey, windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	if len(events) == 0 {
		log.Warn("No events in window, nothing to do")
		return nil
	}

	sportMap, err := p.buildSportMap(ctx)
	if err != nil {
		return err
	}

	params, err := p.collectParams(ctx, log, events, windowEnd)
	if err != nil {
		return err
	}

	params, duplicates := p.dedupeLines(log, params)
	log.WithFields(logrus.Fields{
		"outcomes":   len(params),
		"duplicates": duplicates,
	}).Info("Running analysis")

	results := RunBatched(ctx, params, func(ctx context.Context, param betParam) (store.BetRecord, error) {
		return p.analyzeOne(ctx, log, sportMap, param)
	}, p.batchSize)

	records := make([]store.BetRecord, 0, len(results))
	var failed int
	for i, res := range results {
		if res.Err != nil {
			failed++
			p.logResultError(log, params[i], res.Err)
			continue
		}
		records = append(records, res.Value)
	}

	inserted, err := p.store.InsertBets(ctx, p.sport.BetsTable, records)
	if err != nil {
		return fmt.Errorf("failed to persist analyses: %w", err)
	}

	if p.sport.BackupTable != "" {
		synced, err := p.store.RunBackupMaintenance(ctx, p.sport.BetsTable, p.sport.BackupTable, p.backupDays)
		if err != nil {
			log.WithError(err).Error("Backup maintenance failed")
		} else {
			log.WithField("synced", synced).Info("Backup maintenance complete")
		}
	}

	log.WithFields(logrus.Fields{
		"events":   len(events),
		"analyzed": len(params),
		"failed":   failed,
		"inserted": inserted,
	}).Info("Daily bets run complete")

	return nil
}

// buildSportMap loads the sport's roster and team rows and constructs
// the identity index. A DuplicateKeyError here is fatal for the
// process: the run must not proceed with an inconsistent index.
func (p *Pipeline) buildSportMap(ctx context.Context) (*SportMap, error) {
	players, err := p.store.LoadPlayers(ctx, p.sport.PlayerQuery)
	if err != nil {
		return nil, err
	}
	teams, err := p.store.LoadTeams(ctx, p.sport.TeamQuery)
	if err != nil {
		return nil, err
	}
	sportMap, err := BuildSportMap(players, teams, p.sport.TeamAliases, p.sport.PlayerAliases)
	if err != nil {
		return nil, fmt.Errorf("failed to build identity index: %w", err)
	}
	return sportMap, nil
}

// collectParams sweeps every event's bookmakers, markets and outcomes
// into a deduplicated, order-preserving parameter list. Any odds fetch
// failure aborts the sweep so the sport never inserts a partial set.
func (p *Pipeline) collectParams(ctx context.Context, log *logrus.Entry, events []oddsapi.Event, windowEnd time.Time) ([]betParam, error) {
	markets := p.sport.FetchMarkets(p.includeAlternate)

	var params []betParam
	seen := make(map[paramKey]struct{})

	for _, event := range events {
		commence, err := parseCommenceTime(event.CommenceTime)
		if err != nil {
			log.WithFields(logrus.Fields{
				"event_id":      event.ID,
				"commence_time": event.CommenceTime,
			}).Warn("Skipping event with unparseable commence time")
			continue
		}
		if commence.After(windowEnd) {
			continue
		}

		game, err := p.odds.FetchGame(ctx, p.sport.SportKey, event.ID, p.sport.Region, markets)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch game %s: %w", event.ID, err)
		}
		log.WithFields(logrus.Fields{
			"home":       game.HomeTeam,
			"away":       game.AwayTeam,
			"bookmakers": len(game.Bookmakers),
		}).Debug("Fetched game")

		for _, bookmaker := range game.Bookmakers {
			for _, market := range bookmaker.Markets {
				if !p.includeAlternate && strings.HasSuffix(market.Key, "_alternate") {
					continue
				}
				stat, ok := p.sport.MarketToStat[market.Key]
				if !ok {
					log.WithField("market_key", market.Key).Warn("Unknown market key")
					continue
				}
				for _, outcome := range market.Outcomes {
					key := paramKey{EventID: event.ID, Outcome: outcome, Stat: stat}
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					params = append(params, betParam{Event: event, Outcome: outcome, Stat: stat})
				}
			}
		}
	}

	return params, nil
}

// dedupeLines drops the second side of each over/under pair: both sides
// of one (player, stat, line) are one logical bet and the analysis call
// is authoritative for only one side.
func (p *Pipeline) dedupeLines(log *logrus.Entry, params []betParam) ([]betParam, int) {
	deduper := newLineDeduper()
	kept := params[:0]
	var duplicates int
	for _, param := range params {
		firstSide, dup := deduper.Claim(param.Outcome, param.Stat)
		if dup {
			duplicates++
			log.WithFields(logrus.Fields{
				"player":     param.Outcome.Description,
				"stat":       param.Stat,
				"line":       param.Outcome.Point,
				"side":       param.Outcome.Name,
				"first_side": firstSide,
			}).Debug("Skipping duplicate side of existing line")
			continue
		}
		kept = append(kept, param)
	}
	return kept, duplicates
}

// analyzeOne resolves a single outcome and requests its analysis. Every
// error is contained to this outcome's slot.
func (p *Pipeline) analyzeOne(ctx context.Context, log *logrus.Entry, sportMap *SportMap, param betParam) (store.BetRecord, error) {
	resolved, err := sportMap.Resolve(param.Event, param.Outcome, param.Stat)
	if err != nil {
		return store.BetRecord{}, err
	}

	log.WithFields(logrus.Fields{
		"player":    param.Outcome.Description,
		"player_id": resolved.PlayerID,
		"stat":      resolved.Stat,
		"line":      resolved.Line,
		"game_tag":  resolved.GameTag,
	}).Info("Requesting analysis")

	result, err := p.analyzer.Analyze(ctx, analysis.BetRequest{
		PlayerID:    resolved.PlayerID,
		TeamCode:    resolved.TeamAbv,
		OpponentAbv: resolved.OpponentAbv,
		Stat:        resolved.Stat,
		Line:        resolved.Line,
	})
	if err != nil {
		return store.BetRecord{}, err
	}

	// Never surface a bet whose advertised side contradicts its own
	// analysis.
	if !sideMatches(param.Outcome.Name, result.OverUnder) {
		return store.BetRecord{}, &SideMismatchError{
			Player:   param.Outcome.Description,
			Stat:     resolved.Stat,
			Outcome:  param.Outcome.Name,
			Analysis: result.OverUnder,
		}
	}

	gameTime, err := parseCommenceTime(param.Event.CommenceTime)
	if err != nil {
		return store.BetRecord{}, fmt.Errorf("failed to parse commence time %q: %w", param.Event.CommenceTime, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return store.BetRecord{}, fmt.Errorf("failed to encode analysis: %w", err)
	}

	return store.BetRecord{
		Analysis: payload,
		Price:    param.Outcome.Price,
		GameTime: gameTime,
		GameTag:  resolved.GameTag,
	}, nil
}

func (p *Pipeline) logResultError(log *logrus.Entry, param betParam, err error) {
	fields := logrus.Fields{
		"player": param.Outcome.Description,
		"stat":   param.Stat,
		"line":   param.Outcome.Point,
		"side":   param.Outcome.Name,
	}

	var mismatch *SideMismatchError
	if errors.As(err, &mismatch) {
		log.WithFields(fields).WithField("analysis_side", mismatch.Analysis).Debug("Dropping bet with mismatched analysis side")
		return
	}
	log.WithFields(fields).WithError(err).Error("Failed to analyze outcome")
}

// parseCommenceTime parses the odds provider's ISO-ish timestamps,
// which may carry a trailing "Z" or a numeric offset.
func parseCommenceTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(value))
}
