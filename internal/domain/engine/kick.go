package engine

import (
	"math"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/outcome"
	"github.com/okian/gridiron/internal/domain/seed"
)

// Kicking geometry and durations.
const (
	snapAndHold     = 7.0
	endZoneLength   = 10.0
	missedFGFloor   = 20.0
	puntTouchback   = 20.0
	fairCatchRate   = 0.35
	fieldGoalTime   = 4.0
	extraPointTime  = 3.0
	puntTime        = 8.0
	kickoffTime     = 6.0
	returnTimeScale = 0.12
)

// kickPlay resolves a special-teams snap from its formation.
func (s *sim) kickPlay() {
	s.snap = true
	k := s.ents[s.indexes(s.off, model.RoleKick)[0]]
	yl := s.in.Situation.Yardline
	switch s.in.Offense.Formation {
	case model.FormationFieldGoal:
		dist := s.toGo + snapAndHold + endZoneLength
		made := outcome.Draw(s.g, outcome.FieldGoal(outcome.KickInput{
			Distance:     dist,
			KickPower:    k.attrs.KickPower,
			KickAccuracy: k.attrs.KickAccuracy,
		}))
		p := model.Payload{Distance: dist, Made: made}
		if !made {
			p.Spot = math.Max(missedFGFloor, 100-(yl-snapAndHold))
		}
		s.t = fieldGoalTime
		s.emit(model.EventFieldGoal, p, k.id)
	case model.FormationExtraPoint:
		made := outcome.Draw(s.g, outcome.ExtraPoint(k.attrs.KickAccuracy))
		s.t = extraPointTime
		s.emit(model.EventExtraPoint, model.Payload{Distance: s.toGo + snapAndHold + endZoneLength, Made: made}, k.id)
	case model.FormationPunt:
		gross := outcome.PuntGross(k.attrs.KickPower, s.g)
		p := s.landing(yl+gross, puntTouchback, s.g.Bernoulli(fairCatchRate), outcome.PuntReturn)
		p.Distance = gross
		s.t = puntTime
		s.emit(model.EventPunt, p, s.kickActors(k)...)
	case model.FormationKickoff:
		tb := s.in.Situation.TouchbackSpot
		if tb <= 0 {
			tb = defaultTouchback
		}
		dist := outcome.KickoffDistance(k.attrs.KickPower, s.g)
		p := s.landing(yl+dist, tb, false, outcome.KickoffReturn)
		p.Distance = dist
		s.t = kickoffTime + p.Yards*returnTimeScale
		s.emit(model.EventKickoff, p, s.kickActors(k)...)
	}
	s.end(0)
}

// landing places a kick that comes down at landing yards from the kicking
// team's goal. Yards on the payload is the return.
func (s *sim) landing(landing, touchback float64, fairCatch bool, ret func(*seed.RNG) float64) model.Payload {
	if landing >= 100 {
		return model.Payload{Spot: touchback, Touchback: true}
	}
	back := 0.0
	if !fairCatch {
		back = ret(s.g)
	}
	return model.Payload{Spot: clamp(100-landing+back, 1, 99), Yards: back}
}

// kickActors lists the kicker and the returner: the receiving unit's
// carrier, or its first defender.
func (s *sim) kickActors(k *entity) []string {
	if ret := s.indexes(s.def, model.RoleCarry); len(ret) > 0 {
		return []string{k.id, s.ents[ret[0]].id}
	}
	if ret := s.indexes(s.def, model.RoleDefend); len(ret) > 0 {
		return []string{k.id, s.ents[ret[0]].id}
	}
	return []string{k.id}
}
