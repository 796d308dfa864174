package engine_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/gridiron/internal/domain/engine"
	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/playcall"
	"github.com/okian/gridiron/internal/domain/seed"
	"github.com/okian/gridiron/internal/domain/tuning"
	. "github.com/smartystreets/goconvey/convey"
)

type matchup struct {
	off, def   model.Team
	offD, defD playcall.Depth
}

func newMatchup() matchup {
	off := league.Uniform("OFF", "Offense", model.LeagueAverageRating)
	def := league.Uniform("DEF", "Defense", model.LeagueAverageRating)
	return matchup{off: off, def: def, offD: playcall.NewDepth(off, nil), defD: playcall.NewDepth(def, nil)}
}

func (m matchup) input(offense, defense model.Play, s uint64) engine.Input {
	return engine.Input{
		Offense:       offense,
		Defense:       defense,
		OffenseRoster: model.RosterOf(m.off),
		DefenseRoster: model.RosterOf(m.def),
		Tuning:        tuning.Defaults(),
		Seed:          s,
		Situation:     engine.Situation{Yardline: 30, Down: 1, Distance: 10},
	}
}

func (m matchup) slantFlat(i int) engine.Input {
	offense, err := playcall.SlantFlat(m.offD)
	So(err, ShouldBeNil)
	cov := model.Zone
	if i%2 == 1 {
		cov = model.Man
	}
	defense, err := playcall.BuildDefense(playcall.DefenseCall{Front: playcall.FrontBase, Coverage: cov}, m.defD)
	So(err, ShouldBeNil)
	return m.input(offense, defense, seed.Play(42, i))
}

func TestSimulatePlayDeterminism(t *testing.T) {
	Convey("Given a slant-flat snap", t, func() {
		m := newMatchup()
		in := m.slantFlat(7)

		Convey("When it is simulated twice with the same seed", func() {
			a, err := engine.SimulatePlay(in)
			So(err, ShouldBeNil)
			b, err := engine.SimulatePlay(in)
			So(err, ShouldBeNil)

			Convey("Then the event streams are byte-identical", func() {
				ja, _ := json.Marshal(a.Events)
				jb, _ := json.Marshal(b.Events)
				So(string(ja), ShouldEqual, string(jb))
				So(a.Result, ShouldResemble, b.Result)
			})
		})

		Convey("When the seed changes", func() {
			streams := map[string]bool{}
			for s := uint64(0); s < 20; s++ {
				in.Seed = s
				out, err := engine.SimulatePlay(in)
				So(err, ShouldBeNil)
				j, _ := json.Marshal(out.Events)
				streams[string(j)] = true
			}

			Convey("Then the plays differ", func() {
				So(len(streams), ShouldBeGreaterThan, 1)
			})
		})
	})
}

func TestSimulatePlayStream(t *testing.T) {
	Convey("Given many slant-flat snaps against league-average defenses", t, func() {
		m := newMatchup()
		var attempts, completions, incompletions, interceptions, sacks, dropbacks, touchdowns int
		var dropbackYards, afterCatch float64
		for i := 0; i < 1000; i++ {
			out, err := engine.SimulatePlay(m.slantFlat(i))
			So(err, ShouldBeNil)
			ev := out.Events
			So(len(ev), ShouldBeGreaterThan, 0)
			So(ev[len(ev)-1].Type, ShouldEqual, model.EventPlayEnd)
			for k := 1; k < len(ev); k++ {
				So(ev[k].Seq, ShouldEqual, ev[k-1].Seq+1)
				So(ev[k].Time, ShouldBeGreaterThanOrEqualTo, ev[k-1].Time)
			}

			a := model.Count(ev, model.EventPassAttempt)
			terminal := model.Count(ev, model.EventCompletion) +
				model.Count(ev, model.EventIncompletion) +
				model.Count(ev, model.EventInterception)
			So(a, ShouldEqual, terminal)
			So(a, ShouldBeLessThanOrEqualTo, 1)
			if out.Result.Sack {
				So(a, ShouldEqual, 0)
			}

			attempts += a
			completions += model.Count(ev, model.EventCompletion)
			incompletions += model.Count(ev, model.EventIncompletion)
			interceptions += model.Count(ev, model.EventInterception)
			sacks += model.Count(ev, model.EventSack)
			if out.Result.Kind == model.KindPass || out.Result.Kind == model.KindSack {
				dropbacks++
				dropbackYards += out.Result.Yards
			}
			if out.Result.Completed {
				afterCatch += out.Result.YardsAfterCatch
			}
			if out.Result.Touchdown {
				touchdowns++
			}
		}

		Convey("Then attempts reconcile with terminal pass events", func() {
			So(attempts, ShouldEqual, completions+incompletions+interceptions)
		})

		Convey("Then the rates land in the realistic bands", func() {
			So(float64(completions)/float64(attempts), ShouldBeBetweenOrEqual, 0.50, 0.72)
			So(float64(interceptions)/float64(attempts), ShouldBeBetweenOrEqual, 0.01, 0.05)
			So(float64(sacks)/float64(dropbacks), ShouldBeBetweenOrEqual, 0.03, 0.09)
		})

		Convey("Then a short pass gains short-pass yardage", func() {
			So(dropbackYards/float64(dropbacks), ShouldBeBetween, 3.0, 8.0)
			So(afterCatch/float64(completions), ShouldBeBetween, 1.5, 7.0)
			So(float64(touchdowns)/float64(dropbacks), ShouldBeLessThan, 0.03)
		})
	})
}

func TestSimulatePlayConfiguration(t *testing.T) {
	Convey("Given a malformed offense", t, func() {
		m := newMatchup()
		in := m.slantFlat(0)

		Convey("When a player is assigned twice", func() {
			in.Offense.Assignments = append(in.Offense.Assignments, in.Offense.Assignments[1])
			out, err := engine.SimulatePlay(in)

			Convey("Then nothing is simulated and the field is named", func() {
				So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
				var ce *model.ConfigurationError
				So(errors.As(err, &ce), ShouldBeTrue)
				So(ce.Field, ShouldContainSubstring, "player_id")
				So(out.Events, ShouldBeEmpty)
			})
		})

		Convey("When an assigned player is not on the roster", func() {
			delete(in.OffenseRoster, in.Offense.Assignments[0].PlayerID)
			_, err := engine.SimulatePlay(in)

			Convey("Then it is a configuration error", func() {
				So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
			})
		})

		Convey("When the defense is handed an offensive play", func() {
			in.Defense = in.Offense
			in.DefenseRoster = in.OffenseRoster
			_, err := engine.SimulatePlay(in)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
			})
		})

		Convey("When the yardline is off the field", func() {
			in.Situation.Yardline = 100
			_, err := engine.SimulatePlay(in)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
			})
		})
	})
}

func TestSimulatePlayRun(t *testing.T) {
	for _, concept := range []model.Concept{model.RunInside, model.RunOutside} {
		Convey("Given "+string(concept)+" runs against a base zone front", t, func() {
			m := newMatchup()
			offense, err := playcall.BuildOffense(concept, m.offD)
			So(err, ShouldBeNil)
			defense, err := playcall.BuildDefense(playcall.DefenseCall{Front: playcall.FrontBase, Coverage: model.Zone}, m.defD)
			So(err, ShouldBeNil)

			Convey("When they are simulated", func() {
				runs, yards, losses := 0, 0.0, 0
				for i := 0; i < 200; i++ {
					out, err := engine.SimulatePlay(m.input(offense, defense, seed.Play(9, i)))
					So(err, ShouldBeNil)
					if out.Result.Kind != model.KindRun {
						continue
					}
					runs++
					yards += out.Result.Yards
					if out.Result.Yards < 0 {
						losses++
					}
					So(model.Count(out.Events, model.EventHandoff), ShouldEqual, 1)
					So(model.Count(out.Events, model.EventPassAttempt), ShouldEqual, 0)
					So(len(out.Loads), ShouldEqual, len(offense.Assignments)+len(defense.Assignments))
				}

				Convey("Then the carrier averages a realistic gain", func() {
					So(runs, ShouldBeGreaterThan, 150)
					So(yards/float64(runs), ShouldBeBetween, 3.0, 6.0)
				})

				Convey("Then most carries are not stopped behind the line", func() {
					So(float64(losses)/float64(runs), ShouldBeLessThan, 0.3)
				})
			})
		})
	}
}

func TestSimulatePlayKicks(t *testing.T) {
	Convey("Given the special-teams units", t, func() {
		m := newMatchup()
		ret, err := playcall.ReturnUnit(m.defD)
		So(err, ShouldBeNil)

		Convey("When a short field goal is tried", func() {
			fg, err := playcall.FieldGoal(m.offD)
			So(err, ShouldBeNil)
			made := 0
			for i := 0; i < 200; i++ {
				in := m.input(fg, ret, seed.Play(3, i))
				in.Situation.Yardline = 85
				out, err := engine.SimulatePlay(in)
				So(err, ShouldBeNil)
				So(out.Result.FieldGoal, ShouldBeTrue)
				if out.Result.KickMade {
					made++
					So(out.Result.Points, ShouldEqual, model.PointsFieldGoal)
				} else {
					So(out.Result.NextSpot, ShouldBeGreaterThanOrEqualTo, 20)
				}
			}

			Convey("Then most are good", func() {
				So(made, ShouldBeGreaterThan, 140)
			})
		})

		Convey("When the offense punts from its own 30", func() {
			punt, err := playcall.Punt(m.offD)
			So(err, ShouldBeNil)
			for i := 0; i < 200; i++ {
				out, err := engine.SimulatePlay(m.input(punt, ret, seed.Play(4, i)))
				So(err, ShouldBeNil)

				So(out.Result.Punt, ShouldBeTrue)
				So(out.Result.NextSpot, ShouldBeBetweenOrEqual, 1, 99)
				So(out.Result.Points, ShouldEqual, 0)
			}
		})

		Convey("When the ball is kicked off", func() {
			ko, err := playcall.Kickoff(m.offD)
			So(err, ShouldBeNil)
			in := m.input(ko, ret, 5)
			in.Situation.Yardline = 35
			out, err := engine.SimulatePlay(in)

			Convey("Then the receiving team gets a spot", func() {
				So(err, ShouldBeNil)
				So(out.Result.Kickoff, ShouldBeTrue)
				So(out.Result.NextSpot, ShouldBeBetweenOrEqual, 1, 99)
			})
		})
	})
}
