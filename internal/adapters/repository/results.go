package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okian/gridiron/internal/domain/ruleset"
	"github.com/okian/gridiron/internal/domain/types"
	"github.com/okian/gridiron/pkg/metrics"
)

// SeasonRow is one saved season. A season number is saved once; saving it
// again replaces the earlier rows.
type SeasonRow struct {
	Season    int    `gorm:"primaryKey;autoIncrement:false"`
	Seed      string `gorm:"size:16"`
	Teams     int
	Games     int
	CreatedAt time.Time
}

// GameRow is one final score.
type GameRow struct {
	ID        uint   `gorm:"primaryKey"`
	Season    int    `gorm:"index"`
	Week      int    `gorm:"index"`
	GameID    string `gorm:"size:36"`
	Seed      string `gorm:"size:16"`
	HomeID    string
	AwayID    string
	HomeScore int
	AwayScore int
	Overtime  bool
	Plays     int
	Drives    int
}

// StandingRow is a team's final row for a season.
type StandingRow struct {
	ID            uint `gorm:"primaryKey"`
	Season        int  `gorm:"index"`
	Rank          int
	TeamID        string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     int
	PointsAgainst int
}

// InjuryRow is one injury reported during a season.
type InjuryRow struct {
	ID        uint   `gorm:"primaryKey"`
	Season    int    `gorm:"index"`
	GameID    string `gorm:"size:36"`
	TeamID    string
	PlayerID  string
	Severity  string
	Quarter   int
	PlayIndex int
	OutPlays  int
	OutGames  int
	OutWeeks  int
}

var tables = []any{&SeasonRow{}, &GameRow{}, &StandingRow{}, &InjuryRow{}}

// SeasonRecord is what SaveSeason writes.
type SeasonRecord struct {
	Season    int
	Seed      uint64
	Teams     int
	Weeks     []int
	Games     []ruleset.GameResult
	Standings []types.Standing
}

// ResultStore persists seasons in SQLite through gorm.
type ResultStore struct {
	db   *gorm.DB
	opts storeOptions
}

// OpenResultStore opens or creates the database at path and migrates it.
// An empty path opens a private in-memory database.
func OpenResultStore(path string, opts ...StoreOption) (*ResultStore, error) {
	o := storeOptions{batchSize: 500, logLevel: logger.Silent}
	for _, opt := range opts {
		opt(&o)
	}

	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        o.batchSize,
		Logger:                 logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", ErrStore, path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	// One connection keeps an in-memory database alive and serializes
	// writers on a file.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(tables...); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: migrate: %w", ErrStore, err)
	}
	return &ResultStore{db: db, opts: o}, nil
}

// Close releases the database.
func (s *ResultStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveSeason writes a season in one transaction.
func (s *ResultStore) SaveSeason(ctx context.Context, rec SeasonRecord) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency("save_season", float64(time.Since(start).Microseconds())/1000)
	}()

	games := make([]GameRow, len(rec.Games))
	var injuries []InjuryRow
	for i, g := range rec.Games {
		week := 0
		if i < len(rec.Weeks) {
			week = rec.Weeks[i]
		}
		games[i] = GameRow{
			Season: rec.Season, Week: week, GameID: g.GameID, Seed: seedHex(g.Seed),
			HomeID: g.HomeID, AwayID: g.AwayID, HomeScore: g.HomeScore, AwayScore: g.AwayScore,
			Overtime: g.Overtime, Plays: g.PlayCount, Drives: len(g.Drives),
		}
		for _, inj := range g.Injuries {
			injuries = append(injuries, InjuryRow{
				Season: rec.Season, GameID: g.GameID, TeamID: inj.TeamID, PlayerID: inj.PlayerID,
				Severity: string(inj.Severity), Quarter: inj.Quarter, PlayIndex: inj.PlayIndex,
				OutPlays: inj.OutPlays, OutGames: inj.OutGames, OutWeeks: inj.OutWeeks,
			})
		}
	}
	standings := make([]StandingRow, len(rec.Standings))
	for i, st := range rec.Standings {
		standings[i] = StandingRow{
			Season: rec.Season, Rank: st.Rank, TeamID: st.TeamID,
			Wins: st.Wins, Losses: st.Losses, Ties: st.Ties,
			PointsFor: st.PointsFor, PointsAgainst: st.PointsAgainst,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range []any{&GameRow{}, &StandingRow{}, &InjuryRow{}} {
			if err := tx.Where("season = ?", rec.Season).Delete(t).Error; err != nil {
				return err
			}
		}
		if err := tx.Save(&SeasonRow{Season: rec.Season, Seed: seedHex(rec.Seed), Teams: rec.Teams, Games: len(games)}).Error; err != nil {
			return err
		}
		if len(games) > 0 {
			if err := tx.CreateInBatches(games, s.opts.batchSize).Error; err != nil {
				return err
			}
		}
		if len(standings) > 0 {
			if err := tx.CreateInBatches(standings, s.opts.batchSize).Error; err != nil {
				return err
			}
		}
		if len(injuries) > 0 {
			if err := tx.CreateInBatches(injuries, s.opts.batchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordErrorByComponent("repository", "save_season")
		return fmt.Errorf("%w: save season %d: %w", ErrStore, rec.Season, err)
	}
	return nil
}

// Seasons lists saved seasons in order.
func (s *ResultStore) Seasons(ctx context.Context) ([]SeasonRow, error) {
	var out []SeasonRow
	if err := s.db.WithContext(ctx).Order("season").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: seasons: %w", ErrStore, err)
	}
	return out, nil
}

// Games returns a season's games in schedule order.
func (s *ResultStore) Games(ctx context.Context, season int) ([]GameRow, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreLatency("games", float64(time.Since(start).Microseconds())/1000)
	}()

	var out []GameRow
	if err := s.db.WithContext(ctx).Where("season = ?", season).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: games of season %d: %w", ErrStore, season, err)
	}
	return out, nil
}

// Standings returns a season's final table.
func (s *ResultStore) Standings(ctx context.Context, season int) ([]types.Standing, error) {
	var rows []StandingRow
	if err := s.db.WithContext(ctx).Where("season = ?", season).Order("rank, team_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: standings of season %d: %w", ErrStore, season, err)
	}
	out := make([]types.Standing, len(rows))
	for i, r := range rows {
		out[i] = types.Standing{
			Rank: r.Rank, TeamID: r.TeamID, Wins: r.Wins, Losses: r.Losses, Ties: r.Ties,
			PointsFor: r.PointsFor, PointsAgainst: r.PointsAgainst,
		}
	}
	return out, nil
}

// Injuries returns a season's injuries in the order they happened.
func (s *ResultStore) Injuries(ctx context.Context, season int) ([]InjuryRow, error) {
	var out []InjuryRow
	if err := s.db.WithContext(ctx).Where("season = ?", season).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: injuries of season %d: %w", ErrStore, season, err)
	}
	return out, nil
}

// seedHex formats a seed for storage. SQLite integers are signed and
// database/sql rejects uint64 values with the high bit set.
func seedHex(s uint64) string { return strconv.FormatUint(s, 16) }

// ParseSeed reads a stored seed back.
func ParseSeed(hex string) (uint64, error) { return strconv.ParseUint(hex, 16, 64) }
