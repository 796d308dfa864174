package ruleset

import (
	"context"
	"fmt"

	"github.com/okian/gridiron/internal/domain/engine"
	"github.com/okian/gridiron/internal/domain/fatigue"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/seed"
	"github.com/okian/gridiron/internal/domain/statbook"
	"github.com/okian/gridiron/internal/domain/tuning"
	"github.com/okian/gridiron/pkg/logger"
)

// Field spots.
const (
	firstDownYards = 10.0
	safetyKickSpot = 20.0
	touchbackSpot  = 20.0
	patSpot        = 85.0
	overtimeTOs    = 2
	saltToss       = "toss"
)

// game is one game in progress. It is owned by a single goroutine.
type game struct {
	set   settings
	rules Rules
	seed  uint64
	id    string
	ctx   context.Context
	log   logger.Logger

	sides   [2]*side
	state   GameState
	fatigue *fatigue.Tracker
	book    *statbook.Book

	// idx numbers engine calls; it seeds every play.
	idx int
	// snaps counts scrimmage downs against MaxPlays.
	snaps int

	firstReceiver int
	kicker        int
	kickFrom      float64
	resume        Phase
	warned        bool
	warnPending   bool

	ot overtimeState

	drive    *Drive
	drives   []Drive
	plays    []PlayLog
	injuries []InjuryReport

	lastQuarter int
	lastClock   float64
}

type overtimeState struct {
	first       int
	possessions [2]int
}

// SimulateGame plays a full game between home and away. The same teams,
// seed and options always give the same result. Malformed teams or rules
// are reported as a *model.ConfigurationError before the opening kickoff;
// a state contradiction mid-game aborts with a *model.InvariantViolation.
func SimulateGame(homeTeam, awayTeam model.Team, gameSeed uint64, opts ...Option) (GameResult, error) {
	set := settings{rules: DefaultRules(), tuning: tuning.Defaults(), logger: logger.Nop()}
	for _, opt := range opts {
		opt(&set)
	}
	if err := set.rules.Validate(); err != nil {
		return GameResult{}, err
	}
	g, err := newGame(homeTeam, awayTeam, gameSeed, set)
	if err != nil {
		return GameResult{}, err
	}
	if err := g.run(); err != nil {
		return GameResult{}, fmt.Errorf("game %s: %w", g.id, err)
	}
	return g.result()
}

func newGame(homeTeam, awayTeam model.Team, gameSeed uint64, set settings) (*game, error) {
	if homeTeam.ID == awayTeam.ID {
		return nil, model.NewConfigurationError("game.teams", "team %q cannot play itself", homeTeam.ID)
	}
	h, err := newSide(homeTeam)
	if err != nil {
		return nil, err
	}
	a, err := newSide(awayTeam)
	if err != nil {
		return nil, err
	}
	for id := range a.roster {
		if _, dup := h.roster[id]; dup {
			return nil, model.NewConfigurationError("game.players", "player %q is on both rosters", id)
		}
	}
	id := set.gameID
	if id == "" {
		id = GameID(gameSeed, homeTeam.ID, awayTeam.ID)
	}
	g := &game{
		set:     set,
		rules:   set.rules,
		seed:    gameSeed,
		id:      id,
		ctx:     context.Background(),
		log:     set.logger.Named("game"),
		sides:   [2]*side{h, a},
		fatigue: fatigue.NewTracker(),
		book:    statbook.New(),
	}
	g.firstReceiver = g.toss(0)
	g.kicker = 1 - g.firstReceiver
	g.kickFrom = g.rules.KickoffSpot
	g.state = GameState{
		Phase:      PhasePreKickoff,
		Quarter:    1,
		Clock:      g.rules.QuarterLength,
		Possession: g.kicker,
		Down:       1,
		Distance:   firstDownYards,
		Yardline:   g.rules.KickoffSpot,
		Timeouts:   [2]int{g.rules.TimeoutsPerHalf, g.rules.TimeoutsPerHalf},
	}
	g.lastQuarter, g.lastClock = 1, g.rules.QuarterLength
	return g, nil
}

// toss returns the side that receives.
func (g *game) toss(n int) int {
	if seed.New(seed.Stream(g.seed, n, saltToss)).Bernoulli(0.5) {
		return home
	}
	return away
}

func (g *game) run() error {
	for g.state.Phase != PhaseFinal {
		var err error
		switch g.state.Phase {
		case PhasePreKickoff:
			err = g.kickoff()
		case PhaseBetweenDowns:
			g.betweenDowns()
		case PhaseLiveDown:
			err = g.snap()
		case PhaseTwoMinuteWarning:
			g.twoMinuteWarning()
		case PhaseQuarterEnd:
			g.endQuarter()
		case PhaseOvertime:
			g.startOvertime()
		default:
			err = model.NewInvariantViolation("phase", "unknown phase %q", g.state.Phase)
		}
		if err != nil {
			return err
		}
		if err := g.check(); err != nil {
			return err
		}
	}
	return nil
}

// check verifies the state after every transition.
func (g *game) check() error {
	if err := g.state.check(g.period()); err != nil {
		return err
	}
	if g.state.Quarter == g.lastQuarter && g.state.Clock > g.lastClock {
		return model.NewInvariantViolation("clock", "clock rose from %.2f to %.2f in quarter %d",
			g.lastClock, g.state.Clock, g.state.Quarter)
	}
	if g.state.Quarter < g.lastQuarter {
		return model.NewInvariantViolation("quarter", "quarter went back from %d to %d", g.lastQuarter, g.state.Quarter)
	}
	g.lastQuarter, g.lastClock = g.state.Quarter, g.state.Clock
	return nil
}

// period is the length of the current quarter.
func (g *game) period() float64 {
	if g.state.Overtime {
		return g.rules.OvertimeLength
	}
	return g.rules.QuarterLength
}

// advance moves to next unless the clock or the two-minute warning
// interrupts first.
func (g *game) advance(next Phase) {
	switch {
	case g.state.Clock <= 0:
		g.resume = next
		g.state.Phase = PhaseQuarterEnd
	case g.warnPending:
		g.resume = next
		g.state.Phase = PhaseTwoMinuteWarning
	default:
		g.state.Phase = next
	}
}

func (g *game) betweenDowns() {
	if g.snaps >= g.rules.MaxPlays {
		g.log.Warn(g.ctx, "play limit reached", logger.String("game_id", g.id), logger.Int("snaps", g.snaps))
		g.endDrive(DriveMaxPlaysLimit)
		g.state.Phase = PhaseFinal
		return
	}
	g.state.Phase = PhaseLiveDown
}

func (g *game) twoMinuteWarning() {
	g.warned, g.warnPending = true, false
	g.log.Debug(g.ctx, "two-minute warning", logger.Int("quarter", g.state.Quarter))
	g.state.Phase = g.resume
}

func (g *game) endQuarter() {
	st := &g.state
	half := g.rules.Quarters / 2
	switch {
	case st.Overtime:
		g.endDrive(DriveEndOfGame)
		st.Phase = PhaseFinal
	case st.Quarter == g.rules.Quarters:
		if g.rules.Overtime == OvertimeNone || st.Score[home] != st.Score[away] {
			g.endDrive(DriveEndOfGame)
			st.Phase = PhaseFinal
			return
		}
		g.endDrive(DriveEndOfHalf)
		st.Phase = PhaseOvertime
	case st.Quarter == half:
		g.endDrive(DriveEndOfHalf)
		st.Quarter++
		st.Clock = g.rules.QuarterLength
		st.Timeouts = [2]int{g.rules.TimeoutsPerHalf, g.rules.TimeoutsPerHalf}
		g.warned, g.warnPending = false, false
		rest(g.fatigue, halftimeRest, g.sides[:]...)
		g.kicker = g.firstReceiver
		g.kickFrom = g.rules.KickoffSpot
		st.Phase = PhasePreKickoff
	default:
		st.Quarter++
		st.Clock = g.rules.QuarterLength
		st.Phase = g.resume
	}
}

func (g *game) startOvertime() {
	st := &g.state
	st.Overtime = true
	st.Quarter++
	st.Clock = g.rules.OvertimeLength
	tos := min(overtimeTOs, g.rules.TimeoutsPerHalf)
	st.Timeouts = [2]int{tos, tos}
	g.warned, g.warnPending = false, false
	g.ot = overtimeState{first: g.toss(1)}
	g.kicker = 1 - g.ot.first
	g.kickFrom = g.rules.KickoffSpot
	g.log.Debug(g.ctx, "overtime", logger.String("game_id", g.id), logger.String("mode", string(g.rules.Overtime)))
	st.Phase = PhasePreKickoff
}

func (g *game) startDrive(offense int) {
	g.drive = &Drive{
		Offense:       g.sides[offense].team.ID,
		Quarter:       g.state.Quarter,
		StartYardline: g.state.Yardline,
	}
	if g.state.Overtime {
		g.ot.possessions[offense]++
	}
}

// endDrive closes the open drive and reports whether that settled an
// overtime game.
func (g *game) endDrive(r DriveResult) bool {
	if g.drive == nil {
		return false
	}
	d := *g.drive
	d.EndYardline = g.state.Yardline
	d.Result = r
	g.drives = append(g.drives, d)
	g.drive = nil
	g.log.Debug(g.ctx, "drive",
		logger.String("offense", d.Offense),
		logger.String("result", string(r)),
		logger.Int("plays", d.Plays),
		logger.Float64("yards", d.Yards))
	if g.overtimeOver(r, d.Offense) {
		g.state.Phase = PhaseFinal
		return true
	}
	return false
}

// overtimeOver applies the overtime rules after a possession ends.
func (g *game) overtimeOver(r DriveResult, offenseID string) bool {
	st := g.state
	if !st.Overtime || st.Score[home] == st.Score[away] {
		return false
	}
	if g.rules.Overtime != OvertimeModified {
		return true
	}
	first := g.ot.first
	if offenseID == g.sides[first].team.ID && g.ot.possessions[1-first] == 0 {
		return r == DriveTouchdown || r == DriveSafety
	}
	return g.ot.possessions[1-first] > 0
}

// play runs one engine call for the side with the ball.
func (g *game) play(offense int, o, d model.Play, sit engine.Situation) (engine.Output, error) {
	off, def := g.sides[offense], g.sides[1-offense]
	out, err := engine.SimulatePlay(engine.Input{
		Offense:       o,
		Defense:       d,
		OffenseRoster: off.roster,
		DefenseRoster: def.roster,
		Fatigue:       g.fatigue.Snapshot(),
		Tuning:        g.set.tuning,
		Seed:          seed.Play(g.seed, g.idx),
		Situation:     sit,
	})
	if err != nil {
		return engine.Output{}, fmt.Errorf("play %d: %w", g.idx, err)
	}
	return out, nil
}

// note records a resolved play and advances the play index.
func (g *game) note(offense int, sit engine.Situation, call string, out engine.Output, events []model.Event, nullified bool) {
	off, def := g.sides[offense], g.sides[1-offense]
	g.book.NotePlay(statbook.Context{
		GameID:    g.id,
		PlayIndex: g.idx,
		Offense:   off.team.ID,
		Defense:   def.team.ID,
		Down:      sit.Down,
		Distance:  sit.Distance,
		Yardline:  sit.Yardline,
	}, events)
	g.plays = append(g.plays, PlayLog{
		Index:     g.idx,
		Quarter:   g.state.Quarter,
		Clock:     g.state.Clock,
		Offense:   off.team.ID,
		Down:      sit.Down,
		Distance:  sit.Distance,
		Yardline:  sit.Yardline,
		Call:      call,
		Result:    out.Result,
		Nullified: nullified,
	})
	for _, inj := range out.Result.Injuries {
		hurt := def
		if _, ok := off.roster[inj.PlayerID]; ok {
			hurt = off
		}
		hurt.injure(inj, g.idx)
		g.injuries = append(g.injuries, InjuryReport{Injury: inj, TeamID: hurt.team.ID, Quarter: g.state.Quarter, PlayIndex: g.idx})
		g.log.Debug(g.ctx, "injury", logger.String("player", inj.PlayerID), logger.String("severity", string(inj.Severity)))
	}
	g.idx++
}

func (g *game) result() (GameResult, error) {
	bx := g.book.Boxscore()
	if err := bx.Reconcile(); err != nil {
		return GameResult{}, fmt.Errorf("game %s: %w", g.id, err)
	}
	r := GameResult{
		GameID:    g.id,
		Seed:      g.seed,
		HomeID:    g.sides[home].team.ID,
		AwayID:    g.sides[away].team.ID,
		HomeScore: g.state.Score[home],
		AwayScore: g.state.Score[away],
		Overtime:  g.state.Overtime,
		PlayCount: g.snaps,
		Drives:    g.drives,
		Plays:     g.plays,
		Injuries:  g.injuries,
		Boxscore:  bx,
		Rates:     statbook.AdvancedOf(bx),
		Book:      g.book,
	}
	g.log.Debug(g.ctx, "final",
		logger.String("game_id", g.id),
		logger.String("home", r.HomeID),
		logger.Int("home_score", r.HomeScore),
		logger.String("away", r.AwayID),
		logger.Int("away_score", r.AwayScore))
	return r, nil
}
