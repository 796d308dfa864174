package engine

import (
	"math"

	"github.com/okian/gridiron/internal/domain/fatigue"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/outcome"
)

// Throw constants.
const (
	ballSpeedBase  = 20.0
	ballSpeedSlope = 0.25
	endZoneDepth   = 9.0
	targetNoise    = 1.5
	impactScale    = 8.0
)

// scrimmage runs an offensive snap.
func (s *sim) scrimmage() {
	s.align()
	carriers := s.indexes(s.off, model.RoleCarry)
	s.run = len(carriers) > 0 && (s.qb < 0 || s.in.Offense.Concept.IsRun())

	if outcome.Draw(s.g, outcome.PenaltyIncidence(s.tp)) {
		foul := outcome.PenaltyKind(s.g, !s.run)
		if foul.PreSnap {
			s.foul = &foul
			s.end(0)
			return
		}
		s.foul = &foul
	}

	s.snap = true
	snapper := s.ents[s.off[0]].id
	if s.qb >= 0 {
		snapper = s.ents[s.qb].id
	}
	s.emit(model.EventSnap, model.Payload{}, snapper)

	if s.run {
		s.runPlay(carriers[0])
		return
	}
	s.passPlay()
}

func (s *sim) passPlay() {
	qb := s.ents[s.qb]
	rushers := s.indexes(s.def, model.RoleRush)
	blockers := s.indexes(s.off, model.RoleBlock)

	release := outcome.ReleaseTime(qb.attrs.Awareness, s.g)
	winner, pressureAt := -1, 0.0
	if len(rushers) > 0 {
		in := outcome.PressureInput{
			PassRush: s.mean(rushers, func(a model.Attributes) float64 { return a.PassRush }),
			Blocking: s.mean(blockers, func(a model.Attributes) float64 { return a.Blocking }),
			Rushers:  len(rushers),
			Blockers: len(blockers),
		}
		if outcome.Draw(s.g, outcome.Pressure(in, s.tp)) {
			weights := make([]float64, len(rushers))
			for k, i := range rushers {
				weights[k] = math.Max(s.ents[i].attrs.PassRush, 1)
			}
			winner = rushers[s.g.Choose(weights)]
			pressureAt = release * s.g.Uniform(0.55, 0.95)
		}
	}
	s.protect(blockers, rushers, winner)

	for tick := 1; tick <= maxTicks && !s.done; tick++ {
		s.t = float64(tick) * dt
		s.move()
		switch s.phase {
		case phasePocket:
			if winner >= 0 && s.t >= pressureAt {
				s.pressure(winner)
				continue
			}
			if s.t >= release {
				s.throw(false)
			}
		case phaseAir:
			if s.t >= s.arriveAt {
				s.arrive()
			}
		case phaseCarry:
			s.contact()
		}
	}
	if !s.done {
		s.expire()
	}
}

// protect pairs every rusher but the winner with the nearest free blocker.
// Paired rushers stay engaged until the ball is out.
func (s *sim) protect(blockers, rushers []int, winner int) {
	used := make(map[int]bool, len(blockers))
	for _, r := range rushers {
		if r == winner {
			continue
		}
		s.ents[r].engagedUntil = Budget + 1
		best, bestDist := -1, math.Inf(1)
		for _, b := range blockers {
			if used[b] {
				continue
			}
			if d := s.ents[b].pos.dist(s.ents[r].pos); d < bestDist {
				best, bestDist = b, d
			}
		}
		if best >= 0 {
			used[best] = true
			s.ents[best].blockTarget = r
		}
	}
}

// pressure fires when the winning rusher gets home: either a sack or a
// hurried throw.
func (s *sim) pressure(winner int) {
	r, qb := s.ents[winner], s.ents[s.qb]
	s.hurried = true
	s.emit(model.EventPressure, model.Payload{Distance: r.pos.dist(qb.pos), Pressured: true}, r.id, qb.id)
	escape := (qb.attrs.Agility + qb.attrs.Awareness) / 2
	if outcome.Draw(s.g, outcome.Sack(outcome.SackInput{PassRush: r.attrs.PassRush, Escape: escape}, s.tp)) {
		s.sack(r, qb)
		return
	}
	s.throw(true)
}

func (s *sim) sack(r, qb *entity) {
	y := qb.pos.y
	impact := r.vel.sub(qb.vel).len() / impactScale
	s.emit(model.EventSack, model.Payload{Yards: y, X: qb.pos.x, Y: y}, r.id, qb.id)
	s.emit(model.EventTackle, model.Payload{Yards: y, X: qb.pos.x, Y: y, Impact: impact}, r.id, qb.id)
	s.injure(model.EventSack, qb, impact)
	if s.in.Situation.Yardline+y <= 0 {
		s.emit(model.EventSafety, model.Payload{Y: y}, qb.id)
	}
	s.end(y)
}

// throw picks the most open receiver, leads him, and puts the ball in the
// air. With nobody to throw to the quarterback runs.
func (s *sim) throw(pressured bool) {
	qb := s.ents[s.qb]
	tgt := s.pickTarget()
	for _, i := range s.def {
		if s.ents[i].role == model.RoleRush {
			s.ents[i].engagedUntil = s.t
		}
	}
	if tgt < 0 {
		s.ball = s.qb
		s.phase = phaseCarry
		s.emit(model.EventRushAttempt, model.Payload{X: qb.pos.x, Y: qb.pos.y}, qb.id)
		return
	}
	r := s.ents[tgt]
	speed := clamp(ballSpeedBase+(qb.attrs.ThrowPower-model.LeagueAverageRating)*ballSpeedSlope, 14, 30)
	pt := r.pos
	for k := 0; k < 3; k++ {
		pt = s.project(r, s.t+qb.pos.dist(pt)/speed)
	}
	pt.x = clamp(pt.x, -laneLimit, laneLimit)
	pt.y = math.Min(pt.y, s.toGo+endZoneDepth)
	dist := qb.pos.dist(pt)

	s.target = tgt
	s.catchPt = pt
	s.thrownAt = s.t
	s.arriveAt = s.t + dist/speed
	s.throwMade = true
	s.phase = phaseAir
	s.emit(model.EventPassAttempt, model.Payload{
		AirYards:  pt.y,
		X:         pt.x,
		Y:         pt.y,
		Distance:  dist,
		Pressured: pressured,
	}, qb.id, r.id)
	s.onTarget = outcome.Draw(s.g, outcome.PassOnTarget(outcome.PassInput{
		Accuracy:  qb.attrs.Accuracy,
		Catching:  r.attrs.Catching,
		Distance:  dist,
		Pressured: pressured,
	}))
}

// project predicts where a receiver will be at time at, keeping his current
// offset from the designed route.
func (s *sim) project(r *entity, at float64) vec {
	ideal, ok := r.routeAt(at)
	if !ok {
		return r.pos.add(r.vel.scale(at - s.t))
	}
	now, _ := r.routeAt(s.t)
	return ideal.add(r.pos.sub(now))
}

func (s *sim) pickTarget() int {
	qb := s.ents[s.qb]
	noise := (100 - qb.attrs.Awareness) / 100 * targetNoise
	best, bestScore := -1, math.Inf(-1)
	for _, i := range s.receivers {
		r := s.ents[i]
		_, sep := s.nearestDefender(r.pos)
		score := math.Min(sep, 5) + s.depthPreference(r) + s.g.Normal(0, noise)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (s *sim) depthPreference(r *entity) float64 {
	switch s.in.Offense.Concept {
	case model.PassDeep:
		return 0.08 * r.pos.y
	case model.PassShort:
		return -0.05 * math.Abs(r.pos.y-6)
	case model.PassSideline:
		return 0.05 * math.Abs(r.pos.x)
	}
	return 0
}

// arrive resolves the ball reaching the catch point.
func (s *sim) arrive() {
	qb, r := s.ents[s.qb], s.ents[s.target]
	near, sep := s.nearestDefender(r.pos)
	coverage := float64(model.LeagueAverageRating)
	if near >= 0 {
		coverage = s.ents[near].attrs.Coverage
	}
	if s.onTarget && outcome.Draw(s.g, outcome.CatchContest(outcome.CatchInput{
		Catching:   r.attrs.Catching,
		Coverage:   coverage,
		Separation: sep,
	}, s.tp)) {
		s.caught = true
		s.catchY = r.pos.y
		r.vel = r.vel.scale(catchSlowdown)
		s.ball = s.target
		s.phase = phaseCarry
		s.emit(model.EventCompletion, model.Payload{AirYards: s.catchPt.y, X: r.pos.x, Y: r.pos.y}, r.id, qb.id)
		if r.pos.y >= s.toGo {
			s.scored = true
			s.emit(model.EventTouchdown, model.Payload{Y: s.toGo}, r.id)
			s.end(s.toGo)
		}
		return
	}
	if near >= 0 && outcome.Draw(s.g, outcome.Interception(outcome.InterceptionInput{
		Coverage:   coverage,
		Accuracy:   qb.attrs.Accuracy,
		Separation: sep,
		Pressured:  s.hurried,
	}, s.tp)) {
		s.emit(model.EventInterception, model.Payload{X: s.catchPt.x, Y: s.catchPt.y}, s.ents[near].id, qb.id)
		s.end(0)
		return
	}
	s.emit(model.EventIncompletion, model.Payload{X: s.catchPt.x, Y: s.catchPt.y}, qb.id, r.id)
	s.end(0)
}

func (s *sim) injure(kind model.EventType, e *entity, impact float64) {
	if inj, ok := fatigue.CheckInjury(kind, e.id, e.attrs, impact, s.g); ok {
		s.emit(model.EventInjury, model.Payload{Impact: impact, Injury: &inj}, e.id)
	}
}
