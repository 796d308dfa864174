package engine

import (
	"math"

	"github.com/okian/gridiron/internal/domain/model"
)

// Carrier steering.
const (
	avoidRange   = 6.0
	avoidStep    = 3.0
	upfieldStep  = 8.0
	sidelineMark = model.FieldHalfWidth + 2
	laneLimit    = model.FieldHalfWidth - 1.5
	// pursuers aim at most this many seconds ahead of the carrier.
	maxPursuitLead = 2.0
	// breakRange is how close a defender must be to the catch point to
	// break on a thrown ball.
	breakRange = 25.0
	// runReadDelay is added to a coverage defender's reaction time before
	// he leaves his drop to chase a run.
	runReadDelay = 0.2
)

// move advances every entity one tick in slice order.
func (s *sim) move() {
	for _, i := range s.off {
		e := s.ents[i]
		switch {
		case i == s.ball && s.phase == phaseCarry:
			e.steer(s.carrierGoal(e), carrySpeed)
		case i == s.target && s.phase == phaseAir:
			e.steer(s.catchPt, 1)
		case i == s.qb && s.phase == phaseAir:
			e.steer(e.pos, 0)
		case e.blockTarget >= 0:
			t := s.ents[e.blockTarget].pos
			e.steer(vec{t.x, t.y - blockDepth}, 1)
		case len(e.route) > 0:
			p, _ := e.routeAt(s.t + routeLookahead)
			e.steer(p, 1)
		default:
			e.steer(e.pos, 0)
		}
	}
	for _, i := range s.def {
		d := s.ents[i]
		switch {
		case s.t < d.engagedUntil && d.blockedBy >= 0:
			b := s.ents[d.blockedBy]
			d.steer(vec{b.pos.x, b.pos.y + blockDepth}, 1)
		case s.t < d.engagedUntil:
			d.steer(s.focus(), engagedSpeed)
		case s.phase == phaseCarry && s.ball >= 0 && s.reading(d):
			d.steer(s.coverTarget(d), 1)
		case s.phase == phaseCarry && s.ball >= 0:
			d.steer(s.pursuit(d), 1)
		case s.phase == phaseAir && s.t-s.thrownAt >= d.react && d.pos.dist(s.catchPt) < breakRange:
			d.steer(s.catchPt, 1)
		case d.role == model.RoleRush:
			d.steer(s.focus(), 1)
		default:
			d.steer(s.coverTarget(d), 1)
		}
	}
}

// focus is where the ball is: the carrier, or the passer before the throw.
func (s *sim) focus() vec {
	switch {
	case s.ball >= 0:
		return s.ents[s.ball].pos
	case s.qb >= 0:
		return s.ents[s.qb].pos
	}
	return vec{}
}

// reading reports whether a coverage defender is still diagnosing a run.
func (s *sim) reading(d *entity) bool {
	return s.run && d.role == model.RoleDefend && s.t < runReadDelay+d.react
}

// pursuit aims at the point where the defender, running flat out, would
// meet the carrier on his current velocity. With no meeting point, or one
// too far off, it leads by maxPursuitLead.
func (s *sim) pursuit(d *entity) vec {
	c := s.ents[s.ball]
	return c.pos.add(c.vel.scale(interceptTime(c.pos.sub(d.pos), c.vel, d.speed)))
}

// interceptTime solves |r + v t| = speed t for the smallest positive t.
func interceptTime(r, v vec, speed float64) float64 {
	speed = math.Max(speed, 0.1)
	a := v.dot(v) - speed*speed
	b := 2 * r.dot(v)
	c := r.dot(r)
	t := math.Inf(1)
	switch {
	case math.Abs(a) < 1e-9:
		if b < 0 {
			t = -c / b
		}
	default:
		if disc := b*b - 4*a*c; disc >= 0 {
			sq := math.Sqrt(disc)
			for _, root := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
				if root > 0 && root < t {
					t = root
				}
			}
		}
	}
	return math.Min(t, maxPursuitLead)
}

// carrierGoal follows a designed run until its last waypoint, then heads
// upfield away from the nearest defender in front. In hurry-up the carrier
// makes for the closer sideline.
func (s *sim) carrierGoal(c *entity) vec {
	if s.run && len(c.route) > 0 && s.t < c.routeT[len(c.routeT)-1] {
		p, _ := c.routeAt(s.t + routeLookahead)
		return p
	}
	if s.in.Situation.HurryUp {
		side := 1.0
		if c.pos.x < 0 {
			side = -1
		}
		return vec{side * sidelineMark, c.pos.y + 4}
	}
	lateral := 0.0
	best := avoidRange
	for _, i := range s.def {
		d := s.ents[i]
		dy := d.pos.y - c.pos.y
		if dy < -1 || s.t < d.engagedUntil {
			continue
		}
		if dist := d.pos.dist(c.pos); dist < best {
			best = dist
			lateral = avoidStep
			if d.pos.x > c.pos.x {
				lateral = -avoidStep
			}
		}
	}
	x := clamp(c.pos.x+lateral, -laneLimit, laneLimit)
	return vec{x, c.pos.y + upfieldStep}
}
