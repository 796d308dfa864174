package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/okian/gridiron/internal/adapters/export"
	"github.com/okian/gridiron/internal/adapters/http/api"
	"github.com/okian/gridiron/internal/adapters/http/swagger"
	"github.com/okian/gridiron/internal/adapters/repository"
	service "github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/domain/calibration"
	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ruleset"
	"github.com/okian/gridiron/internal/domain/statbook"
	"github.com/okian/gridiron/internal/domain/types"
	"github.com/okian/gridiron/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newFlagSet(name string, env *environment) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	return nil
}

// newService builds the service from the loaded configuration.
func newService(env *environment) (*service.Service, error) {
	cfg := env.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := cfg.TuningParameters()
	if err != nil {
		return nil, err
	}
	return service.New(
		service.WithLogger(env.log),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithCalibrationParallel(cfg.Calibration.Parallel),
		service.WithRules(cfg.Rules),
		service.WithTuning(p),
		service.WithBands(cfg.Calibration.Bands),
		service.WithTeams(league.Teams(cfg.Teams, cfg.LeagueSeed)),
		service.WithSeed(cfg.Seed),
	), nil
}

func runSeason(ctx context.Context, env *environment, args []string) error {
	cfg := env.cfg
	fs := newFlagSet("season", env)
	fs.IntVar(&cfg.Season, "season", cfg.Season, "season number")
	fs.IntVar(&cfg.Teams, "teams", cfg.Teams, "number of generated teams")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "base seed mixed into the schedule and every game")
	fs.StringVar(&cfg.Export.Dir, "export-dir", cfg.Export.Dir, "write standings, stats and injuries into this directory")
	fs.StringVar(&cfg.Store.Path, "store", cfg.Store.Path, "save the season into this SQLite database")
	asJSON := fs.Bool("json", false, "print the standings as JSON")
	if err := parse(fs, args); err != nil {
		return err
	}

	svc, err := newService(env)
	if err != nil {
		return err
	}
	res, err := svc.RunSeason(ctx, svc.Input(cfg.Season))
	if err != nil {
		return err
	}

	if cfg.Export.Dir != "" {
		if err := export.Dir(cfg.Export.Dir, res.Export()); err != nil {
			return err
		}
		env.log.Info(ctx, "season exported", logger.String("dir", cfg.Export.Dir))
	}
	if cfg.Store.Path != "" {
		if err := saveSeason(ctx, env, res); err != nil {
			return err
		}
	}

	if *asJSON {
		return writeJSON(env.stdout, struct {
			RunID     string           `json:"run_id"`
			Season    int              `json:"season"`
			Seed      uint64           `json:"seed"`
			Games     int              `json:"games"`
			Standings []types.Standing `json:"standings"`
		}{res.RunID, res.Season, res.Seed, len(res.Games), res.Standings})
	}
	return writeStandings(env.stdout, res.Standings)
}

func saveSeason(ctx context.Context, env *environment, res service.SeasonResult) (err error) {
	store, err := repository.OpenResultStore(env.cfg.Store.Path, repository.WithBatchSize(env.cfg.Store.BatchSize))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := store.SaveSeason(ctx, res.Record()); err != nil {
		return err
	}
	env.log.Info(ctx, "season saved", logger.String("path", env.cfg.Store.Path), logger.Int("season", res.Season))
	return nil
}

func writeStandings(w io.Writer, rows []types.Standing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "RANK\tTEAM\tW\tL\tT\tPCT\tPF\tPA\tDIFF\t")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.3f\t%d\t%d\t%+d\t\n",
			r.Rank, r.TeamID, r.Wins, r.Losses, r.Ties, r.WinPct(), r.PointsFor, r.PointsAgainst, r.PointDiff())
	}
	return tw.Flush()
}

func runCalibrate(ctx context.Context, env *environment, args []string) error {
	cfg := env.cfg
	fs := newFlagSet("calibrate", env)
	fs.IntVar(&cfg.Calibration.Seasons, "seasons", cfg.Calibration.Seasons, "seasons to play")
	fs.IntVar(&cfg.Calibration.Parallel, "parallel", cfg.Calibration.Parallel, "seasons played at once")
	fs.IntVar(&cfg.Teams, "teams", cfg.Teams, "number of generated teams")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "base seed")
	apply := fs.Bool("apply", false, "also print the tuning with every suggestion applied")
	if err := parse(fs, args); err != nil {
		return err
	}

	svc, err := newService(env)
	if err != nil {
		return err
	}
	in := svc.Input(0)
	report, err := svc.Calibrate(ctx, service.CalibrationInput{
		Teams:   in.Teams,
		Tuning:  in.Tuning,
		Seasons: cfg.Calibration.Seasons,
		Seed:    in.Seed,
	})
	if err != nil {
		return err
	}

	out := struct {
		Report    calibration.Report `json:"report"`
		Tuning    map[string]float64 `json:"tuning"`
		Suggested map[string]float64 `json:"suggested,omitempty"`
	}{Report: report, Tuning: in.Tuning.Map()}
	if *apply {
		next, err := report.Apply(in.Tuning)
		if err != nil {
			return err
		}
		out.Suggested = next.Map()
	}
	return writeJSON(env.stdout, out)
}

func runGame(ctx context.Context, env *environment, args []string) error {
	cfg := env.cfg
	fs := newFlagSet("game", env)
	home := fs.String("home", "T01", "home team id")
	away := fs.String("away", "T02", "away team id")
	gameSeed := fs.Uint64("seed", 1, "game seed")
	fs.IntVar(&cfg.Teams, "teams", cfg.Teams, "number of generated teams")
	withPlays := fs.Bool("plays", false, "include the play log")
	if err := parse(fs, args); err != nil {
		return err
	}

	svc, err := newService(env)
	if err != nil {
		return err
	}
	teams := svc.Input(0).Teams
	h, err := findTeam(teams, *home)
	if err != nil {
		return err
	}
	a, err := findTeam(teams, *away)
	if err != nil {
		return err
	}
	res, err := svc.PlayGame(ctx, h, a, *gameSeed)
	if err != nil {
		return err
	}

	out := struct {
		GameID    string                 `json:"game_id"`
		Seed      uint64                 `json:"seed"`
		Home      string                 `json:"home"`
		Away      string                 `json:"away"`
		HomeScore int                    `json:"home_score"`
		AwayScore int                    `json:"away_score"`
		Overtime  bool                   `json:"overtime"`
		PlayCount int                    `json:"play_count"`
		Drives    []ruleset.Drive        `json:"drives"`
		Injuries  []ruleset.InjuryReport `json:"injuries,omitempty"`
		Rates     statbook.Advanced      `json:"rates"`
		Plays     []ruleset.PlayLog      `json:"plays,omitempty"`
	}{
		GameID: res.GameID, Seed: res.Seed, Home: res.HomeID, Away: res.AwayID,
		HomeScore: res.HomeScore, AwayScore: res.AwayScore, Overtime: res.Overtime,
		PlayCount: res.PlayCount, Drives: res.Drives, Injuries: res.Injuries, Rates: res.Rates,
	}
	if *withPlays {
		out.Plays = res.Plays
	}
	return writeJSON(env.stdout, out)
}

func findTeam(teams []model.Team, id string) (model.Team, error) {
	for _, t := range teams {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Team{}, fmt.Errorf("%w: unknown team %q (league has T01..T%02d)", errUsage, id, len(teams))
}

func runServe(ctx context.Context, env *environment, args []string) error {
	cfg := env.cfg
	fs := newFlagSet("serve", env)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	startSeason := fs.Bool("start-season", false, "start a season as soon as the server is up")
	if err := parse(fs, args); err != nil {
		return err
	}

	svc, err := newService(env)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(mux)
	api.NewServer(svc, api.WithMaxLimit(cfg.MaxStandingsLimit)).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		env.log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if *startSeason {
		if err := svc.StartSeason(ctx, cfg.Season); err != nil {
			env.log.Warn(ctx, "could not start season", logger.Int("season", cfg.Season), logger.Error(err))
		}
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	env.log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		env.log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	env.log.Info(ctx, "server stopped", logger.Any("seasons_run", svc.GetStats()["seasons_run"]))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
