package engine

import (
	"math"

	"github.com/okian/gridiron/internal/domain/fatigue"
	"github.com/okian/gridiron/internal/domain/model"
)

// Kinematics constants.
const (
	baseSpeedFloor  = 4.0
	baseSpeedRange  = 6.5
	maxAccel        = 7.5
	routeLookahead  = 0.15
	routeExtendSecs = 3.0
	engagedSpeed    = 0.15
	carrySpeed      = 0.8
	// a run-blocked defender is held this far in front of his blocker.
	blockDepth = 0.8
)

type vec struct{ x, y float64 }

func (a vec) add(b vec) vec        { return vec{a.x + b.x, a.y + b.y} }
func (a vec) sub(b vec) vec        { return vec{a.x - b.x, a.y - b.y} }
func (a vec) scale(k float64) vec  { return vec{a.x * k, a.y * k} }
func (a vec) len() float64         { return math.Hypot(a.x, a.y) }
func (a vec) dist(b vec) float64   { return a.sub(b).len() }
func (a vec) dot(b vec) float64    { return a.x*b.x + a.y*b.y }
func lerp(a, b vec, f float64) vec { return a.add(b.sub(a).scale(f)) }

func angleBetween(a, b vec) float64 {
	la, lb := a.len(), b.len()
	if la < 1e-9 || lb < 1e-9 {
		return math.Pi / 2
	}
	c := a.dot(b) / (la * lb)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// entity is one live actor. It exists only for the duration of one
// SimulatePlay call.
type entity struct {
	id    string
	side  model.Side
	role  model.Role
	attrs model.Attributes

	pos, vel vec
	route    []vec
	routeT   []float64
	extend   bool

	mult      float64
	speed     float64
	travelled float64

	// run blocking: a blocked defender is held until engagedUntil.
	engagedUntil float64
	blockTarget  int
	blockedBy    int
	// a defender who missed a tackle cannot try again until shedUntil.
	shedUntil float64
	// man coverage receiver index, -1 when playing zone.
	cover    int
	landmark vec
	zone     bool
	// reaction time to a thrown ball.
	react float64
}

func newEntity(a model.Assignment, side model.Side, p model.Player, level float64) *entity {
	e := &entity{
		id:          a.PlayerID,
		side:        side,
		role:        a.Role,
		attrs:       p.Attributes,
		mult:        fatigue.Multiplier(level),
		blockTarget: -1,
		blockedBy:   -1,
		cover:       -1,
		extend:      a.Role.RouteBearing(),
	}
	e.speed = (baseSpeedFloor + e.attrs.Speed/100*baseSpeedRange) * e.mult
	e.react = 0.25 + (100-e.attrs.Awareness)*0.005
	for _, w := range a.Route {
		e.route = append(e.route, vec{w.X, w.Y - model.DesignLineOfScrimmage})
		e.routeT = append(e.routeT, w.T)
	}
	if len(e.route) > 0 {
		e.pos = e.route[0]
	}
	return e
}

// routeAt returns the ideal route position at time t. Past the last
// waypoint a receiver or carrier keeps the last segment's velocity for a few
// seconds; everyone else holds the final point.
func (e *entity) routeAt(t float64) (vec, bool) {
	n := len(e.route)
	if n == 0 {
		return vec{}, false
	}
	if n == 1 || t <= e.routeT[0] {
		return e.route[0], true
	}
	for i := 1; i < n; i++ {
		if t <= e.routeT[i] {
			f := (t - e.routeT[i-1]) / (e.routeT[i] - e.routeT[i-1])
			return lerp(e.route[i-1], e.route[i], f), true
		}
	}
	last, prev := e.route[n-1], e.route[n-2]
	if !e.extend {
		return last, true
	}
	span := e.routeT[n-1] - e.routeT[n-2]
	v := last.sub(prev).scale(1 / span)
	extra := math.Min(t-e.routeT[n-1], routeExtendSecs)
	return last.add(v.scale(extra)), true
}

// steer moves the entity one tick toward target. Speed is capped by the
// entity's top speed times frac, and the velocity change by the
// acceleration limit scaled by fatigue.
func (e *entity) steer(target vec, frac float64) {
	desired := target.sub(e.pos)
	d := desired.len()
	var want vec
	if d > 1e-9 {
		top := e.speed * frac
		want = desired.scale(math.Min(top, d/dt) / d)
	}
	dv := want.sub(e.vel)
	limit := maxAccel * dt * e.mult
	if l := dv.len(); l > limit {
		dv = dv.scale(limit / l)
	}
	e.vel = e.vel.add(dv)
	step := e.vel.scale(dt)
	e.pos = e.pos.add(step)
	e.travelled += step.len()
}

func (e *entity) heading() vec {
	if e.vel.len() < 0.1 {
		if e.side == model.SideOffense {
			return vec{0, 1}
		}
		return vec{0, -1}
	}
	return e.vel
}
