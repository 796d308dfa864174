package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gridiron/internal/adapters/export"
	"github.com/okian/gridiron/internal/adapters/mq/queue"
	"github.com/okian/gridiron/internal/adapters/mq/worker"
	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/domain/dedupe"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ruleset"
	"github.com/okian/gridiron/internal/domain/schedule"
	"github.com/okian/gridiron/internal/domain/seed"
	"github.com/okian/gridiron/internal/domain/statbook"
	"github.com/okian/gridiron/internal/domain/tuning"
	"github.com/okian/gridiron/internal/domain/types"
	"github.com/okian/gridiron/pkg/logger"
	"github.com/okian/gridiron/pkg/metrics"
)

// runNamespace scopes season run ids.
var runNamespace = uuid.MustParse("5b0e4f3a-6c1d-4d2e-9a57-3f1c8e2b7d40") //nolint:gochecknoglobals // constant namespace

// SeasonInput is one season to play.
type SeasonInput struct {
	Season int
	Teams  []model.Team
	Tuning tuning.Parameters
	// Seed is mixed into the schedule and every game seed. Two runs with
	// equal inputs produce equal results.
	Seed uint64
}

// SeasonResult is a finished season. Games are in schedule order no matter
// which worker played them.
type SeasonResult struct {
	RunID     string
	Season    int
	Seed      uint64
	Schedule  schedule.Schedule
	Games     []ruleset.GameResult
	Standings []types.Standing
	Book      *statbook.Book
	Injuries  []export.InjuryEntry
}

// Record converts the result for the result store.
func (r SeasonResult) Record() repository.SeasonRecord {
	weeks := make([]int, len(r.Schedule))
	for i, f := range r.Schedule {
		weeks[i] = f.Week
	}
	return repository.SeasonRecord{
		Season:    r.Season,
		Seed:      r.Seed,
		Teams:     len(r.Standings),
		Weeks:     weeks,
		Games:     r.Games,
		Standings: r.Standings,
	}
}

// Export converts the result for the export writers.
func (r SeasonResult) Export() export.Season {
	return export.Season{
		Standings: r.Standings,
		Boxscore:  r.Book.Boxscore(),
		Injuries:  r.Injuries,
	}
}

// GameSeed is the seed of one scheduled game.
func GameSeed(season, week int, homeID, awayID string, base uint64) uint64 {
	return seed.Game(season, week, homeID, awayID) ^ base
}

// RunID names a season run by its inputs.
func RunID(in SeasonInput) string {
	key := strconv.Itoa(in.Season) + ":" + strconv.FormatUint(in.Seed, 10)
	for _, t := range in.Teams {
		key += ":" + t.ID
	}
	return uuid.NewSHA1(runNamespace, []byte(key)).String()
}

// RunSeason plays a double round robin on the worker pool and folds the
// results in schedule order. The first failed game fails the season. The
// finished season becomes the one Standings and Last report.
func (s *Service) RunSeason(ctx context.Context, in SeasonInput) (SeasonResult, error) {
	res, table, err := s.playSeason(ctx, in)
	if err != nil {
		return SeasonResult{}, err
	}
	s.current.Store(table)
	s.last.Store(&res)
	return res, nil
}

// playSeason is RunSeason without publishing the result.
func (s *Service) playSeason(ctx context.Context, in SeasonInput) (SeasonResult, *repository.Standings, error) {
	start := time.Now()
	if in.Season < 1 {
		return SeasonResult{}, nil, model.NewConfigurationError("season", "must be positive, got %d", in.Season)
	}
	byID := make(map[string]model.Team, len(in.Teams))
	ids := make([]string, len(in.Teams))
	for i, t := range in.Teams {
		if _, dup := byID[t.ID]; dup {
			return SeasonResult{}, nil, model.NewConfigurationError("teams", "duplicate team id %q", t.ID)
		}
		byID[t.ID] = t
		ids[i] = t.ID
	}

	sched, err := schedule.RoundRobin(ids, seed.Stream(in.Seed, in.Season, "schedule"))
	if err != nil {
		return SeasonResult{}, nil, fmt.Errorf("season %d: %w", in.Season, err)
	}

	runID := RunID(in)
	log := s.logger.Named("season")
	log.Info(ctx, "season starting",
		logger.Int("season", in.Season),
		logger.String("run_id", runID),
		logger.Int("teams", len(ids)),
		logger.Int("games", len(sched)),
		logger.Int("weeks", sched.Weeks()),
	)

	outcomes, err := s.play(ctx, log, in, sched, byID)
	if err != nil {
		return SeasonResult{}, nil, err
	}

	res := SeasonResult{
		RunID:    runID,
		Season:   in.Season,
		Seed:     in.Seed,
		Schedule: sched,
		Games:    make([]ruleset.GameResult, len(outcomes)),
		Book:     statbook.New(),
	}
	table := repository.NewStandings()
	if err := table.Register(ctx, ids...); err != nil {
		return SeasonResult{}, nil, err
	}
	folded := dedupe.NewInMemoryDeduper()
	for i, o := range outcomes {
		if o.Err != nil {
			return SeasonResult{}, nil, fmt.Errorf("season %d: %w", in.Season, o.Err)
		}
		g := o.Result
		if folded.SeenAndRecord(ctx, g.GameID) {
			return SeasonResult{}, nil, model.NewInvariantViolation("unique_game_id",
				"season %d game %d repeats id %s", in.Season, i, g.GameID)
		}
		res.Games[i] = g
		if err := table.Record(ctx, repository.Game{
			HomeID: g.HomeID, AwayID: g.AwayID, HomeScore: g.HomeScore, AwayScore: g.AwayScore,
		}); err != nil {
			return SeasonResult{}, nil, fmt.Errorf("season %d game %d: %w", in.Season, i, err)
		}
		res.Book.Merge(g.Book)
		for _, inj := range g.Injuries {
			res.Injuries = append(res.Injuries, export.InjuryEntry{Week: sched[i].Week, GameID: g.GameID, InjuryReport: inj})
		}
	}
	res.Standings = table.All(ctx)

	s.seasonsRun.Add(1)
	s.gamesRun.Add(int64(len(res.Games)))

	elapsed := time.Since(start)
	metrics.RecordSeason(elapsed.Seconds())
	log.Info(ctx, "season finished",
		logger.Int("season", in.Season),
		logger.String("run_id", runID),
		logger.Int("games", len(res.Games)),
		logger.Int("injuries", len(res.Injuries)),
		logger.String("leader", leader(res.Standings)),
		logger.Float64("seconds", elapsed.Seconds()),
	)
	return res, table, nil
}

// play runs every fixture through the queue and returns outcomes indexed by
// schedule position.
func (s *Service) play(ctx context.Context, log logger.Logger, in SeasonInput, sched schedule.Schedule,
	byID map[string]model.Team,
) ([]worker.Outcome, error) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))

	var mu sync.Mutex
	outcomes := make([]worker.Outcome, len(sched))
	collect := worker.CollectorFunc(func(_ context.Context, o worker.Outcome) {
		mu.Lock()
		outcomes[o.Job.Index] = o
		mu.Unlock()
	})

	pool := worker.NewPool(s.workerCount, q, collect,
		worker.WithName("season-"+strconv.Itoa(in.Season)),
		worker.WithLogger(log),
	)
	pool.Start(ctx)

	opts := s.gameOptions(in.Tuning)
	var enqueueErr error
	for i, f := range sched {
		job := queue.GameJob{
			Index:   i,
			Week:    f.Week,
			Home:    byID[f.Home],
			Away:    byID[f.Away],
			Seed:    GameSeed(in.Season, f.Week, f.Home, f.Away, in.Seed),
			Options: opts,
		}
		if err := q.Enqueue(ctx, job); err != nil {
			enqueueErr = err
			break
		}
	}
	_ = q.Close()
	pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("season %d: %w", in.Season, err)
	}
	if enqueueErr != nil {
		return nil, fmt.Errorf("season %d: %w", in.Season, enqueueErr)
	}
	return outcomes, nil
}

func leader(rows []types.Standing) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[0].TeamID
}
