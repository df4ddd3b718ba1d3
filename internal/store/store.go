// Package store is the pipeline's view of the relational store: the
// player and team rows an index is built from, and the bulk-insert sink
// the aggregated analyses land in.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/bestbet-labs/daily-bets/pkg/database"
)

// PlayerRow is one roster entry. Queries alias their columns onto this
// shape so every sport loads the same way.
type PlayerRow struct {
	PlayerID int64  `gorm:"column:player_id"`
	Name     string `gorm:"column:name"`
	TeamAbv  string `gorm:"column:team_abv"`
}

type TeamRow struct {
	TeamCity string `gorm:"column:team_city"`
	Name     string `gorm:"column:name"`
	TeamAbv  string `gorm:"column:team_abv"`
}

// FullName is the display name sportsbooks use for the team.
func (t TeamRow) FullName() string {
	return strings.TrimSpace(t.TeamCity + " " + t.Name)
}

// BetRecord is one insertion-ready analysis row.
type BetRecord struct {
	Analysis datatypes.JSON `gorm:"column:analysis"`
	Price    float64        `gorm:"column:price"`
	GameTime time.Time      `gorm:"column:game_time"`
	GameTag  string         `gorm:"column:game_tag"`
}

type Store struct {
	db     *database.DB
	logger *logrus.Logger
}

func New(db *database.DB, logger *logrus.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) LoadPlayers(ctx context.Context, query string) ([]PlayerRow, error) {
	var rows []PlayerRow
	if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	s.logger.WithField("players", len(rows)).Debug("Loaded player rows")
	return rows, nil
}

func (s *Store) LoadTeams(ctx context.Context, query string) ([]TeamRow, error) {
	var rows []TeamRow
	if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	s.logger.WithField("teams", len(rows)).Debug("Loaded team rows")
	return rows, nil
}

// InsertBets writes the run's record set into the sport's bets table as
// one batched insert. Returns the number of rows written.
func (s *Store) InsertBets(ctx context.Context, table string, records []BetRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	result := s.db.WithContext(ctx).Table(table).CreateInBatches(records, 100)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert bets into %s: %w", table, result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteOldBets removes rows older than one day from a sport's bets
// table. Stale lines are worthless once the games have started.
func (s *Store) DeleteOldBets(ctx context.Context, table string) (int64, error) {
	result := s.db.WithContext(ctx).Exec(
		fmt.Sprintf("DELETE FROM %s WHERE created_at < NOW() - INTERVAL '1 day'", table),
	)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old bets from %s: %w", table, result.Error)
	}
	return result.RowsAffected, nil
}
