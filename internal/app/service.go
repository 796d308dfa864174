// Package service runs seasons and calibration batches on the worker pool
// and implements the dependencies of the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/okian/gridiron/internal/adapters/http/api"
	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/domain/calibration"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ruleset"
	"github.com/okian/gridiron/internal/domain/tuning"
	"github.com/okian/gridiron/internal/domain/types"
	"github.com/okian/gridiron/pkg/logger"
)

const defaultCalibrationParallel = 2

// ErrNotStarted is returned by StartSeason before Start.
var ErrNotStarted = errors.New("service not started")

// Service owns the simulation settings and the latest standings.
type Service struct {
	mu sync.RWMutex

	workerCount int
	queueSize   int
	parallel    int
	rules       ruleset.Rules
	tuning      tuning.Parameters
	bands       []calibration.Band
	teams       []model.Team
	seed        uint64

	// current is the table of the last finished season.
	current atomic.Pointer[repository.Standings]
	last    atomic.Pointer[SeasonResult]
	running atomic.Bool

	seasonsRun atomic.Int64
	gamesRun   atomic.Int64

	started bool
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of simulation workers per season.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the job queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCalibrationParallel sets how many seasons a calibration batch runs at
// once.
func WithCalibrationParallel(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallel = n
		}
	}
}

// WithRules sets the game rules.
func WithRules(r ruleset.Rules) Option {
	return func(s *Service) { s.rules = r }
}

// WithTuning sets the default tuning snapshot.
func WithTuning(p tuning.Parameters) Option {
	return func(s *Service) { s.tuning = p }
}

// WithBands replaces the calibration bands.
func WithBands(b []calibration.Band) Option {
	return func(s *Service) {
		if len(b) > 0 {
			s.bands = b
		}
	}
}

// WithTeams sets the league StartSeason plays.
func WithTeams(teams []model.Team) Option {
	return func(s *Service) { s.teams = teams }
}

// WithSeed sets the base seed mixed into every schedule and game seed.
func WithSeed(seed uint64) Option {
	return func(s *Service) { s.seed = seed }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   64,
		parallel:    defaultCalibrationParallel,
		rules:       ruleset.DefaultRules(),
		tuning:      tuning.Defaults(),
		bands:       calibration.DefaultBands(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.current.Store(repository.NewStandings())
	return s
}

// Validate checks the settings a season needs.
func (s *Service) Validate() error {
	if err := s.rules.Validate(); err != nil {
		return err
	}
	if _, err := tuning.FromMap(s.tuning.Map()); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}

// Start lets StartSeason run seasons in the background until Stop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if err := s.Validate(); err != nil {
		return err
	}
	s.baseCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("teams", len(s.teams)),
	)
	return nil
}

// Stop cancels a running background season and waits for it.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "service stopped")
}

// StartSeason implements api.SeasonStarter. The season runs on the
// service's own context, not the caller's.
func (s *Service) StartSeason(ctx context.Context, season int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	if !s.running.CompareAndSwap(false, true) {
		return api.ErrBusy
	}

	in := s.Input(season)
	base := s.baseCtx
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)
		if _, err := s.RunSeason(base, in); err != nil {
			s.logger.Error(base, "season failed", logger.Int("season", season), logger.Error(err))
		}
	}()
	s.logger.Info(ctx, "season started", logger.Int("season", season))
	return nil
}

// Input is the season the service plays with its own league, tuning and seed.
func (s *Service) Input(season int) SeasonInput {
	return SeasonInput{Season: season, Teams: s.teams, Tuning: s.tuning, Seed: s.seed}
}

// Running reports whether a background season is in progress.
func (s *Service) Running() bool { return s.running.Load() }

// Last returns the most recent finished season.
func (s *Service) Last() (SeasonResult, bool) {
	r := s.last.Load()
	if r == nil {
		return SeasonResult{}, false
	}
	return *r, true
}

// TopN returns the first n rows of the latest table.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Standing, error) {
	return s.current.Load().TopN(ctx, n)
}

// Rank returns a team's row in the latest table.
func (s *Service) Rank(ctx context.Context, teamID string) (types.Standing, error) {
	return s.current.Load().Rank(ctx, teamID)
}

// PlayGame simulates one game with the service rules and tuning.
func (s *Service) PlayGame(ctx context.Context, home, away model.Team, gameSeed uint64) (ruleset.GameResult, error) {
	if err := ctx.Err(); err != nil {
		return ruleset.GameResult{}, err
	}
	return ruleset.SimulateGame(home, away, gameSeed, s.gameOptions(s.tuning)...)
}

func (s *Service) gameOptions(p tuning.Parameters) []ruleset.Option {
	return []ruleset.Option{
		ruleset.WithRules(s.rules),
		ruleset.WithTuning(p),
		ruleset.WithLogger(s.logger.Named("game")),
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":        s.started,
		"running":        s.running.Load(),
		"workers":        s.workerCount,
		"queue_size":     s.queueSize,
		"teams":          len(s.teams),
		"seasons_run":    s.seasonsRun.Load(),
		"games_run":      s.gamesRun.Load(),
		"standings_rows": s.current.Load().Count(context.Background()),
	}
	if last := s.last.Load(); last != nil {
		stats["last_season"] = last.Season
		stats["last_run_id"] = last.RunID
	}
	return stats
}
