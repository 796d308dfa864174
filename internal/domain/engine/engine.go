// Package engine resolves one play as a fixed-step simulation of every
// participant. Probabilistic outcomes are drawn from the outcome models at
// decision points; kinematics decide who is where when they are drawn. The
// engine is pure: identical inputs give a byte-identical event stream.
package engine

import (
	"github.com/okian/gridiron/internal/domain/fatigue"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/seed"
	"github.com/okian/gridiron/internal/domain/tuning"
)

// Tick configuration.
const (
	TickRate = 20
	Budget   = 8.0

	dt          = 1.0 / TickRate
	maxTicks    = int(Budget * TickRate)
	handoffTick = int(handoffAt * TickRate)
)

// Contact and timing constants.
const (
	contactRadius    = 1.8
	handoffAt        = 0.5
	shedSeconds      = 0.8
	brokenSlowdown   = 0.6
	catchSlowdown    = 0.3
	fumbleLostRate   = 0.5
	defaultTouchback = 25.0
)

// Situation is the game state a play is run in.
type Situation struct {
	// Yardline is the offense's distance from its own goal line.
	Yardline float64
	Down     int
	Distance float64
	// HurryUp sends ball carriers toward the sideline.
	HurryUp bool
	// TouchbackSpot is where a kickoff touchback is placed; 0 means 25.
	TouchbackSpot float64
}

// Input is everything SimulatePlay needs.
type Input struct {
	Offense       model.Play
	Defense       model.Play
	OffenseRoster model.Roster
	DefenseRoster model.Roster
	// Fatigue holds pre-snap fatigue levels; missing players are fresh.
	Fatigue   map[string]float64
	Tuning    tuning.Parameters
	Seed      uint64
	Situation Situation
}

// Output is the resolved play.
type Output struct {
	Result model.PlayResult
	Events []model.Event
	Loads  []fatigue.Load
}

type phase int

const (
	phasePocket phase = iota
	phaseAir
	phaseCarry
)

type sim struct {
	in   Input
	g    *seed.RNG
	tp   tuning.Parameters
	ents []*entity
	off  []int
	def  []int
	log  model.Stream
	t    float64
	toGo float64

	phase  phase
	snap   bool
	done   bool
	run    bool
	qb     int
	ball   int
	target int

	receivers []int
	routeEnd  float64

	thrownAt  float64
	arriveAt  float64
	catchPt   vec
	onTarget  bool
	hurried   bool
	caught    bool
	catchY    float64
	scored    bool
	foul      *model.Penalty
	throwMade bool
}

// SimulatePlay runs one play. Invalid input is reported as a
// *model.ConfigurationError before any simulation starts.
func SimulatePlay(in Input) (Output, error) {
	if err := validate(in); err != nil {
		return Output{}, err
	}
	s := newSim(in)
	if in.Offense.Type == model.SpecialTeams {
		s.kickPlay()
	} else {
		s.scrimmage()
	}
	return s.output(), nil
}

func newSim(in Input) *sim {
	s := &sim{
		in:     in,
		g:      seed.New(in.Seed),
		tp:     in.Tuning,
		toGo:   100 - in.Situation.Yardline,
		qb:     -1,
		ball:   -1,
		target: -1,
	}
	for _, a := range in.Offense.Assignments {
		s.off = append(s.off, len(s.ents))
		s.ents = append(s.ents, newEntity(a, model.SideOffense, in.OffenseRoster[a.PlayerID], in.Fatigue[a.PlayerID]))
	}
	for _, a := range in.Defense.Assignments {
		s.def = append(s.def, len(s.ents))
		s.ents = append(s.ents, newEntity(a, model.SideDefense, in.DefenseRoster[a.PlayerID], in.Fatigue[a.PlayerID]))
	}
	return s
}

func (s *sim) emit(t model.EventType, p model.Payload, actors ...string) {
	s.log.Append(t, s.t, p, actors...)
}

// end closes the play at yards gained. Yards after the catch are scaled by
// the YAC knob; a scaled gain that reaches the goal line scores.
func (s *sim) end(yards float64) {
	if s.caught && !s.scored && yards > s.catchY {
		yards = s.catchY + (yards-s.catchY)*s.tp.YAC()
		if yards >= s.toGo && s.ball >= 0 {
			s.scored = true
			s.emit(model.EventTouchdown, model.Payload{Y: s.toGo}, s.ents[s.ball].id)
		}
	}
	if s.scored || yards > s.toGo {
		yards = s.toGo
	}
	if s.foul != nil {
		s.callFoul()
	}
	s.emit(model.EventPlayEnd, model.Payload{Yards: yards})
	s.done = true
}

func (s *sim) output() Output {
	events := s.log.Events()
	out := Output{
		Result: model.Reduce(events),
		Events: events,
	}
	if !s.snap {
		return out
	}
	out.Loads = make([]fatigue.Load, 0, len(s.ents))
	for _, e := range s.ents {
		out.Loads = append(out.Loads, fatigue.Load{
			PlayerID:   e.id,
			Distance:   e.travelled,
			Duration:   s.t,
			Durability: e.attrs.Durability,
		})
	}
	return out
}

func (s *sim) indexes(side []int, roles ...model.Role) []int {
	var out []int
	for _, i := range side {
		for _, r := range roles {
			if s.ents[i].role == r {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func (s *sim) mean(idx []int, f func(model.Attributes) float64) float64 {
	if len(idx) == 0 {
		return model.LeagueAverageRating
	}
	sum := 0.0
	for _, i := range idx {
		sum += f(s.ents[i].attrs)
	}
	return sum / float64(len(idx))
}

func (s *sim) pick(idx []int) *entity {
	if len(idx) == 0 {
		return nil
	}
	return s.ents[idx[s.g.IntRange(0, len(idx)-1)]]
}
