package engine

import (
	"math"

	"github.com/okian/gridiron/internal/domain/model"
)

// Default alignment when a play leaves a player without waypoints.
const (
	blockerSpacing = 1.4
	rusherSpacing  = 2.0
	manCushion     = 6.0
	zoneReach      = 7.0
	// deep zones take receivers this wide of the landmark and no more
	// than deepUnder short of it, and stay deepOverTop beyond them.
	deepLine    = 12.0
	deepReach   = 14.0
	deepUnder   = 10.0
	deepOverTop = 5.0
)

// zoneSpots are the default landmarks handed out in order to zone
// defenders without a drop: deep halves, hooks, flats, then the middle.
var zoneSpots = []vec{ //nolint:gochecknoglobals // fixed landmark table
	{-10, 15}, {10, 15}, {-8, 7}, {8, 7}, {0, 8}, {-18, 4}, {18, 4}, {0, 18},
}

func (s *sim) align() {
	if qbs := s.indexes(s.off, model.RolePass); len(qbs) > 0 {
		s.qb = qbs[0]
		qb := s.ents[s.qb]
		if len(qb.route) == 0 {
			qb.route = []vec{{0, -5}, {0, -7}}
			qb.routeT = []float64{0, 1.0}
			qb.pos = qb.route[0]
		}
	}

	var line []int
	for _, i := range s.indexes(s.off, model.RoleBlock) {
		if len(s.ents[i].route) == 0 {
			line = append(line, i)
		}
	}
	for k, i := range line {
		s.ents[i].pos = vec{(float64(k) - float64(len(line)-1)/2) * blockerSpacing, -1}
	}
	for _, i := range s.off {
		if e := s.ents[i]; len(e.route) > 0 {
			s.routeEnd = max(s.routeEnd, e.routeT[len(e.routeT)-1])
		}
	}

	rushers := s.indexes(s.def, model.RoleRush)
	for k, i := range rushers {
		e := s.ents[i]
		if len(e.route) == 0 {
			e.pos = vec{(float64(k) - float64(len(rushers)-1)/2) * rusherSpacing, 1}
		}
	}

	s.receivers = s.indexes(s.off, model.RoleRoute, model.RoleCarry)
	defenders := s.indexes(s.def, model.RoleDefend)
	next := 0
	for k, i := range defenders {
		d := s.ents[i]
		if s.in.Defense.Coverage == model.Man && k < len(s.receivers) {
			d.cover = s.receivers[k]
			if len(d.route) == 0 {
				r := s.ents[d.cover]
				d.pos = vec{r.pos.x, max(r.pos.y, 0) + manCushion}
				if r.pos.y < -1 {
					d.pos.y = 4
				}
			}
			continue
		}
		d.zone = true
		switch {
		case len(d.route) > 0:
			d.landmark = d.route[len(d.route)-1]
		default:
			d.landmark = zoneSpots[next%len(zoneSpots)]
			next++
			d.pos = d.landmark
		}
	}
}

// coverTarget is where a defender wants to be before the ball is out.
func (s *sim) coverTarget(d *entity) vec {
	if len(d.route) > 0 && s.t < d.routeT[len(d.routeT)-1] {
		p, _ := d.routeAt(s.t + routeLookahead)
		return p
	}
	if d.cover >= 0 {
		r := s.ents[d.cover]
		cushion := clamp(1.5+(r.attrs.Speed-d.attrs.Speed)/20, 0.5, 3)
		t := r.pos.add(vec{0, cushion})
		// a defender already on top of a receiver going vertical keeps
		// his depth
		if d.pos.y > r.pos.y && r.vel.y > 1 {
			t.y = math.Max(t.y, d.pos.y)
		}
		return t
	}
	if d.landmark.y >= deepLine {
		return s.deepTarget(d)
	}
	best, bestDist := -1, zoneReach
	for _, i := range s.receivers {
		if dd := s.ents[i].pos.dist(d.landmark); dd < bestDist {
			best, bestDist = i, dd
		}
	}
	if best < 0 {
		return d.landmark
	}
	return lerp(d.landmark, s.ents[best].pos.add(vec{0, 1}), 0.7)
}

// deepTarget keeps a deep zone defender over the top of the widest threat
// in his half of the field.
func (s *sim) deepTarget(d *entity) vec {
	best, bestDist := -1, deepReach
	for _, i := range s.receivers {
		r := s.ents[i]
		if r.pos.y < d.landmark.y-deepUnder {
			continue
		}
		if dx := math.Abs(r.pos.x - d.landmark.x); dx < bestDist {
			best, bestDist = i, dx
		}
	}
	if best < 0 {
		return d.landmark
	}
	r := s.ents[best].pos
	return vec{d.landmark.x + (r.x-d.landmark.x)*0.7, math.Max(d.landmark.y, r.y+deepOverTop)}
}

// nearestDefender returns the closest defender to p and the distance, or
// -1 and a wide-open separation when there is none.
func (s *sim) nearestDefender(p vec) (int, float64) {
	best, bestDist := -1, 5.0
	for _, i := range s.def {
		if d := s.ents[i].pos.dist(p); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
