package ruleset

import (
	"github.com/okian/gridiron/internal/domain/engine"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/playcall"
)

// Play-log call names for kicks.
const (
	callKickoff    = "kickoff"
	callPunt       = "punt"
	callFieldGoal  = "field_goal"
	callExtraPoint = "extra_point"
)

// kickoff puts the ball in play for the receiving side.
func (g *game) kickoff() error {
	st := &g.state
	k, r := g.kicker, 1-g.kicker
	kd, rd := g.sides[k].depth(g.idx, g.fatigue), g.sides[r].depth(g.idx, g.fatigue)
	kick, err := playcall.Kickoff(kd)
	if err != nil {
		return err
	}
	ret, err := playcall.ReturnUnit(rd)
	if err != nil {
		return err
	}
	sit := engine.Situation{
		Yardline:      g.kickFrom,
		Down:          1,
		Distance:      firstDownYards,
		TouchbackSpot: g.rules.KickoffTouchback,
	}
	out, err := g.play(k, kick, ret, sit)
	if err != nil {
		return err
	}
	g.note(k, sit, callKickoff, out, out.Events, false)
	elapsed := g.tick(out.Result.Duration, true)
	wear(g.fatigue, out.Loads, elapsed, g.sides[:]...)

	st.Possession = k
	g.changePossession(clampField(out.Result.NextSpot))
	g.kickFrom = g.rules.KickoffSpot
	g.advance(PhaseBetweenDowns)
	return nil
}

// punt is a fourth-down punt.
func (g *game) punt(od, dd playcall.Depth) error {
	st := &g.state
	offense := st.Offense()
	o, err := playcall.Punt(od)
	if err != nil {
		return err
	}
	d, err := playcall.ReturnUnit(dd)
	if err != nil {
		return err
	}
	sit := engine.Situation{Yardline: st.Yardline, Down: st.Down, Distance: st.Distance}
	out, err := g.play(offense, o, d, sit)
	if err != nil {
		return err
	}
	g.note(offense, sit, callPunt, out, out.Events, false)
	g.drive.Plays++
	elapsed := g.tick(out.Result.Duration, true)
	wear(g.fatigue, out.Loads, elapsed, g.sides[:]...)

	if g.endDrive(DrivePunt) {
		return nil
	}
	g.changePossession(clampField(out.Result.NextSpot))
	g.advance(PhaseBetweenDowns)
	return nil
}

// fieldGoal is a fourth-down field goal try. A miss gives the defense the
// ball at the spot of the kick, never inside its own 20.
func (g *game) fieldGoal(od, dd playcall.Depth) error {
	st := &g.state
	offense := st.Offense()
	o, err := playcall.FieldGoal(od)
	if err != nil {
		return err
	}
	d, err := playcall.ReturnUnit(dd)
	if err != nil {
		return err
	}
	sit := engine.Situation{Yardline: st.Yardline, Down: st.Down, Distance: st.Distance}
	out, err := g.play(offense, o, d, sit)
	if err != nil {
		return err
	}
	g.note(offense, sit, callFieldGoal, out, out.Events, false)
	g.drive.Plays++
	elapsed := g.tick(out.Result.Duration, true)
	wear(g.fatigue, out.Loads, elapsed, g.sides[:]...)

	if out.Result.KickMade {
		st.Score[offense] += model.PointsFieldGoal
		if g.endDrive(DriveFieldGoal) {
			return nil
		}
		g.kicker, g.kickFrom = offense, g.rules.KickoffSpot
		g.advance(PhasePreKickoff)
		return nil
	}
	if g.endDrive(DriveMissedFG) {
		return nil
	}
	g.changePossession(clampField(out.Result.NextSpot))
	g.advance(PhaseBetweenDowns)
	return nil
}

// extraPoint is the untimed try after a touchdown.
func (g *game) extraPoint(offense int) error {
	od := g.sides[offense].depth(g.idx, g.fatigue)
	dd := g.sides[1-offense].depth(g.idx, g.fatigue)
	o, err := playcall.ExtraPoint(od)
	if err != nil {
		return err
	}
	d, err := playcall.ReturnUnit(dd)
	if err != nil {
		return err
	}
	sit := engine.Situation{Yardline: patSpot, Down: 1, Distance: 100 - patSpot}
	out, err := g.play(offense, o, d, sit)
	if err != nil {
		return err
	}
	g.note(offense, sit, callExtraPoint, out, out.Events, false)
	wear(g.fatigue, out.Loads, 0, g.sides[:]...)
	if out.Result.KickMade {
		g.state.Score[offense] += model.PointsExtraPoint
	}
	return nil
}
