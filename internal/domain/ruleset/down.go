package ruleset

import (
	"math"

	"github.com/okian/gridiron/internal/domain/engine"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/playcall"
	"github.com/okian/gridiron/internal/domain/seed"
)

// snap runs one scrimmage down, including fourth-down kicks.
func (g *game) snap() error {
	st := &g.state
	offense := st.Offense()
	off, def := g.sides[offense], g.sides[st.Defense()]
	od, dd := off.depth(g.idx, g.fatigue), def.depth(g.idx, g.fatigue)
	sit := g.callSituation()
	g.snaps++
	if g.drive == nil {
		g.startDrive(offense)
	}

	if st.Down == 4 {
		switch playcall.FourthDown(sit, kicker(od)) {
		case playcall.DecisionPunt:
			return g.punt(od, dd)
		case playcall.DecisionFieldGoal:
			return g.fieldGoal(od, dd)
		case playcall.DecisionGo:
		}
	}

	rng := seed.New(seed.Stream(g.seed, g.idx, seed.SaltPlaycall))
	concept := playcall.CallOffenseWith(sit, off.plan, g.set.offense, rng)
	call := playcall.CallDefense(sit, def.plan, rng)
	o, err := playcall.BuildOffense(concept, od)
	if err != nil {
		return err
	}
	d, err := playcall.BuildDefense(call, dd)
	if err != nil {
		return err
	}
	esit := engine.Situation{
		Yardline: st.Yardline,
		Down:     st.Down,
		Distance: st.Distance,
		HurryUp:  g.hurryUp(),
	}
	out, err := g.play(offense, o, d, esit)
	if err != nil {
		return err
	}
	return g.resolve(esit, string(concept), out)
}

// callSituation is what both playcallers see.
func (g *game) callSituation() playcall.Situation {
	st := g.state
	return playcall.Situation{
		Down:      st.Down,
		Distance:  st.Distance,
		Yardline:  st.Yardline,
		HalfClock: g.halfClock(),
		ScoreDiff: st.ScoreDiff(),
		Quarter:   st.Quarter,
	}
}

// resolve applies a scrimmage result to the game state.
func (g *game) resolve(sit engine.Situation, call string, out engine.Output) error {
	st := &g.state
	r := out.Result
	offense, defense := st.Offense(), st.Defense()

	events := out.Events
	accepted := false
	if p := r.Penalty; p != nil {
		accepted = accepts(p, r, st.Distance)
		switch {
		case !accepted:
			events = without(events, model.EventPenalty)
		case !p.PreSnap:
			events = nullify(events)
		}
	}
	nullified := accepted && !r.Penalty.PreSnap
	g.note(offense, sit, call, out, events, nullified)
	g.drive.Plays++

	stops := r.Touchdown || r.Safety || r.Turnover || (r.Kind == model.KindPass && !r.Completed) ||
		((accepted || r.OutOfBounds) && g.finalMinutes())
	elapsed := g.tick(r.Duration, stops)
	wear(g.fatigue, out.Loads, elapsed, g.sides[:]...)

	switch {
	case accepted:
		g.enforce(r.Penalty)
		g.advance(PhaseBetweenDowns)
	case r.Safety:
		g.drive.Yards += r.Yards
		st.Yardline = 0
		st.Score[defense] += model.PointsSafety
		if g.endDrive(DriveSafety) {
			return nil
		}
		g.kicker, g.kickFrom = offense, safetyKickSpot
		g.advance(PhasePreKickoff)
	case r.Touchdown:
		g.drive.Yards += r.Yards
		st.Yardline = 100
		st.Score[offense] += model.PointsTouchdown
		if g.endDrive(DriveTouchdown) {
			return nil
		}
		if err := g.extraPoint(offense); err != nil {
			return err
		}
		g.kicker, g.kickFrom = offense, g.rules.KickoffSpot
		g.advance(PhasePreKickoff)
	case r.Turnover:
		spot := turnoverSpot(st.Yardline, r, out.Events)
		result := DriveFumble
		if r.Interception {
			result = DriveInterception
		} else {
			g.drive.Yards += r.Yards
			st.Yardline = clampField(st.Yardline + r.Yards)
		}
		if g.endDrive(result) {
			return nil
		}
		g.changePossession(spot)
		g.advance(PhaseBetweenDowns)
	default:
		g.drive.Yards += r.Yards
		st.Yardline = clampField(st.Yardline + r.Yards)
		st.Distance -= r.Yards
		switch {
		case st.Distance <= 0:
			g.firstDown()
		case st.Down == 4:
			if g.endDrive(DriveDowns) {
				return nil
			}
			g.changePossession(clampField(100 - st.Yardline))
		default:
			st.Down++
		}
		g.advance(PhaseBetweenDowns)
	}
	return nil
}

// accepts reports whether the side that did not foul takes the penalty.
// A foul is declined when the play already did better for that side.
func accepts(p *model.Penalty, r model.PlayResult, distance float64) bool {
	if p.PreSnap {
		return true
	}
	if p.Side == model.SideOffense {
		return !r.Turnover && !r.Safety && r.Yards > -p.Yards
	}
	if r.Touchdown {
		return false
	}
	if r.Turnover {
		return true
	}
	gained := r.Yards >= p.Yards
	converted := r.Yards >= distance
	return !(gained && (converted || !p.AutoFirst))
}

// enforce walks off an accepted foul. Fouls near a goal line are half the
// distance to it, pass interference is spotted no closer than the 1.
func (g *game) enforce(p *model.Penalty) {
	st := &g.state
	if p.Side == model.SideOffense {
		y := math.Min(p.Yards, st.Yardline/2)
		st.Yardline -= y
		st.Distance += y
		g.drive.Yards -= y
		return
	}
	toGo := 100 - st.Yardline
	y := math.Min(p.Yards, toGo/2)
	if p.Type == model.PassInterference && toGo > 1 {
		y = math.Min(p.Yards, toGo-1)
	}
	st.Yardline += y
	st.Distance -= y
	g.drive.Yards += y
	if p.AutoFirst || st.Distance <= 0 {
		g.firstDown()
	}
}

func (g *game) firstDown() {
	g.state.Down = 1
	g.state.Distance = math.Min(firstDownYards, 100-g.state.Yardline)
}

// changePossession hands the ball over at spot, measured from the new
// offense's goal line, and opens its drive.
func (g *game) changePossession(spot float64) {
	st := &g.state
	st.Possession = st.Defense()
	st.Yardline = spot
	g.firstDown()
	g.startDrive(st.Possession)
}

// turnoverSpot is where the defense takes over, from its own goal line.
// A takeaway in its own end zone is a touchback.
func turnoverSpot(yardline float64, r model.PlayResult, events []model.Event) float64 {
	at := yardline + r.Yards
	if r.Interception {
		for _, e := range events {
			if e.Type == model.EventInterception {
				at = yardline + e.Payload.Y
			}
		}
	}
	if at >= 100 {
		return touchbackSpot
	}
	return clampField(100 - at)
}

// without drops every event of type t.
func without(events []model.Event, t model.EventType) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Type != t {
			out = append(out, e)
		}
	}
	return out
}

// nullify keeps what survives a play wiped out by a foul.
func nullify(events []model.Event) []model.Event {
	out := make([]model.Event, 0, 3)
	for _, e := range events {
		switch e.Type {
		case model.EventPenalty, model.EventInjury, model.EventPlayEnd:
			out = append(out, e)
		}
	}
	return out
}

// clampField keeps a spot in the field of play.
func clampField(v float64) float64 {
	return math.Max(1, math.Min(99, v))
}
