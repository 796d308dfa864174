package engine

import (
	"math"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/outcome"
)

// blockReach is how far a run blocker looks for a defender to engage.
const blockReach = 10.0

func (s *sim) runPlay(carrier int) {
	s.ball = carrier
	s.phase = phaseCarry
	s.engageRunBlocks()
	c := s.ents[carrier]
	if s.qb < 0 {
		s.emit(model.EventRushAttempt, model.Payload{X: c.pos.x, Y: c.pos.y}, c.id)
	}
	for tick := 1; tick <= maxTicks && !s.done; tick++ {
		s.t = float64(tick) * dt
		s.move()
		if s.qb >= 0 && tick == handoffTick {
			s.emit(model.EventHandoff, model.Payload{X: c.pos.x, Y: c.pos.y}, s.ents[s.qb].id, c.id)
			s.emit(model.EventRushAttempt, model.Payload{X: c.pos.x, Y: c.pos.y}, c.id)
		}
		s.contact()
	}
	if !s.done {
		s.expire()
	}
}

// engageRunBlocks pairs each blocker, in play order, with the nearest
// unclaimed defender in reach and draws how long the block holds.
func (s *sim) engageRunBlocks() {
	claimed := make(map[int]bool, len(s.def))
	for _, b := range s.indexes(s.off, model.RoleBlock) {
		if b == s.qb {
			continue
		}
		blocker := s.ents[b]
		best, bestDist := -1, blockReach
		for _, d := range s.def {
			if claimed[d] {
				continue
			}
			if dist := s.ents[d].pos.dist(blocker.pos); dist < bestDist {
				best, bestDist = d, dist
			}
		}
		if best < 0 {
			continue
		}
		claimed[best] = true
		blocker.blockTarget = best
		d := s.ents[best]
		d.blockedBy = b
		d.engagedUntil = outcome.BlockHold(blocker.attrs.Blocking, d.attrs.Strength, s.tp, s.g)
	}
}

// contact checks the ball carrier against the field edges, the goal line
// and every free defender within reach. At most one tackle is attempted per
// tick.
func (s *sim) contact() {
	if s.done || s.ball < 0 {
		return
	}
	c := s.ents[s.ball]
	if c.pos.y >= s.toGo {
		s.scored = true
		s.emit(model.EventTouchdown, model.Payload{X: c.pos.x, Y: s.toGo}, c.id)
		s.end(s.toGo)
		return
	}
	if math.Abs(c.pos.x) > model.FieldHalfWidth {
		s.emit(model.EventOutOfBounds, model.Payload{X: c.pos.x, Y: c.pos.y}, c.id)
		s.downAt(c)
		return
	}
	for _, i := range s.def {
		d := s.ents[i]
		if s.t < d.engagedUntil || s.t < d.shedUntil || d.pos.dist(c.pos) > contactRadius {
			continue
		}
		s.tackle(d, c)
		return
	}
}

func (s *sim) tackle(d, c *entity) {
	y := c.pos.y
	impact := d.vel.sub(c.vel).len() / impactScale
	p := outcome.TackleSuccess(outcome.TackleInput{
		Tackling:     d.attrs.Tackling,
		BreakTackle:  c.attrs.BreakTackle,
		Angle:        angleBetween(c.heading(), d.pos.sub(c.pos)),
		TacklerSpeed: d.vel.len(),
		CarrierSpeed: c.vel.len(),
	})
	if !outcome.Draw(s.g, p) {
		s.emit(model.EventBrokenTackle, model.Payload{Yards: y, X: c.pos.x, Y: y, Impact: impact / 2}, d.id, c.id)
		s.injure(model.EventBrokenTackle, c, impact/2)
		d.shedUntil = s.t + shedSeconds
		c.vel = c.vel.scale(brokenSlowdown)
		return
	}
	s.emit(model.EventTackle, model.Payload{Yards: y, X: c.pos.x, Y: y, Impact: impact}, d.id, c.id)
	s.injure(model.EventTackle, c, impact)
	s.injure(model.EventTackle, d, impact*0.6)
	if outcome.Draw(s.g, outcome.Fumble(d.attrs.Strength, c.attrs.Strength)) {
		s.emit(model.EventFumble, model.Payload{Yards: y, X: c.pos.x, Y: y}, c.id, d.id)
		lost := s.g.Bernoulli(fumbleLostRate)
		recoverer := c.id
		if lost {
			recoverer = d.id
		}
		s.emit(model.EventFumbleRecovery, model.Payload{Y: y, Lost: lost}, recoverer)
		if lost {
			s.end(y)
			return
		}
	}
	s.downAt(c)
}

// downAt ends the play where the carrier is, scoring a safety when that is
// behind his own goal line.
func (s *sim) downAt(c *entity) {
	y := c.pos.y
	if s.in.Situation.Yardline+y <= 0 {
		s.emit(model.EventSafety, model.Payload{Y: y}, c.id)
	}
	s.end(y)
}

// expire ends a play that ran out of ticks.
func (s *sim) expire() {
	switch s.phase {
	case phaseCarry:
		if s.ball >= 0 {
			s.downAt(s.ents[s.ball])
			return
		}
	case phaseAir:
		s.emit(model.EventIncompletion, model.Payload{X: s.catchPt.x, Y: s.catchPt.y}, s.ents[s.qb].id, s.ents[s.target].id)
	}
	s.end(0)
}

// callFoul records an in-play foul just before the play ends. Pass
// interference is marked at the catch point and needs an incomplete throw;
// otherwise it is called as holding.
func (s *sim) callFoul() {
	foul := *s.foul
	if foul.Type == model.PassInterference {
		if s.throwMade && !s.caught {
			foul.Yards = math.Max(1, math.Round(s.catchPt.y))
		} else {
			foul = model.Penalty{Type: model.DefensiveHolding, Side: model.SideDefense, Yards: 5, AutoFirst: true}
		}
	}
	var who *entity
	switch {
	case foul.PreSnap && foul.Side == model.SideOffense:
		who = s.pick(s.indexes(s.off, model.RoleBlock, model.RoleRoute))
	case foul.Side == model.SideOffense:
		who = s.pick(s.indexes(s.off, model.RoleBlock))
	case foul.Type == model.PassInterference && s.target >= 0:
		if near, _ := s.nearestDefender(s.ents[s.target].pos); near >= 0 {
			who = s.ents[near]
		}
	default:
		who = s.pick(s.def)
	}
	s.foul = nil
	if who == nil {
		s.emit(model.EventPenalty, model.Payload{Penalty: &foul})
		return
	}
	s.emit(model.EventPenalty, model.Payload{Penalty: &foul}, who.id)
}
