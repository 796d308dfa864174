package statbook_test

import (
	"testing"

	"github.com/okian/gridiron/internal/domain/engine"
	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/playcall"
	"github.com/okian/gridiron/internal/domain/seed"
	"github.com/okian/gridiron/internal/domain/statbook"
	"github.com/okian/gridiron/internal/domain/tuning"
	. "github.com/smartystreets/goconvey/convey"
)

func ctx(i int) statbook.Context {
	return statbook.Context{GameID: "g1", PlayIndex: i, Offense: "A", Defense: "B", Down: 1, Distance: 10, Yardline: 25}
}

func completion() []model.Event {
	var s model.Stream
	s.Append(model.EventSnap, 0, model.Payload{}, "qb")
	s.Append(model.EventPassAttempt, 2, model.Payload{AirYards: 9}, "qb", "wr")
	s.Append(model.EventCompletion, 2.5, model.Payload{AirYards: 9, Y: 9}, "wr", "qb")
	s.Append(model.EventTackle, 3.4, model.Payload{Yards: 12}, "cb", "wr")
	s.Append(model.EventPlayEnd, 3.4, model.Payload{Yards: 12})
	return s.Events()
}

func sack() []model.Event {
	var s model.Stream
	s.Append(model.EventSnap, 0, model.Payload{}, "qb")
	s.Append(model.EventPressure, 1.8, model.Payload{}, "dl", "qb")
	s.Append(model.EventSack, 1.9, model.Payload{Yards: -6}, "dl", "qb")
	s.Append(model.EventTackle, 1.9, model.Payload{Yards: -6}, "dl", "qb")
	s.Append(model.EventPlayEnd, 1.9, model.Payload{Yards: -6})
	return s.Events()
}

func run(yards float64) []model.Event {
	var s model.Stream
	s.Append(model.EventSnap, 0, model.Payload{}, "qb")
	s.Append(model.EventHandoff, 0.5, model.Payload{}, "qb", "rb")
	s.Append(model.EventRushAttempt, 0.5, model.Payload{}, "rb")
	s.Append(model.EventTackle, 2, model.Payload{Yards: yards}, "lb", "rb")
	s.Append(model.EventPlayEnd, 2, model.Payload{Yards: yards})
	return s.Events()
}

func holding() []model.Event {
	var s model.Stream
	s.Append(model.EventPenalty, 0, model.Payload{Penalty: &model.Penalty{Type: model.FalseStart, Side: model.SideOffense, Yards: 5, PreSnap: true}}, "ol")
	s.Append(model.EventPlayEnd, 0, model.Payload{})
	return s.Events()
}

func TestBoxscore(t *testing.T) {
	Convey("Given a book with a completion, a sack, a run and a false start", t, func() {
		b := statbook.New()
		b.NotePlay(ctx(0), completion())
		b.NotePlay(ctx(1), sack())
		b.NotePlay(ctx(2), run(4))
		b.NotePlay(ctx(3), holding())

		Convey("When it is reduced", func() {
			bx := b.Boxscore()
			a := bx.Teams["A"]

			Convey("Then team lines count snaps, not fouls", func() {
				So(a.Plays, ShouldEqual, 3)
				So(a.Yards, ShouldEqual, 10)
				So(a.PassAttempts, ShouldEqual, 1)
				So(a.Completions, ShouldEqual, 1)
				So(a.SacksTaken, ShouldEqual, 1)
				So(a.RushAttempts, ShouldEqual, 1)
				So(a.RushYards, ShouldEqual, 4)
				So(a.Penalties, ShouldEqual, 1)
				So(a.PenaltyYards, ShouldEqual, 5)
				So(bx.Teams["B"].Sacks, ShouldEqual, 1)
			})

			Convey("Then player lines are credited from the actors", func() {
				So(bx.Players["qb"].PassAttempts, ShouldEqual, 1)
				So(bx.Players["qb"].Completions, ShouldEqual, 1)
				So(bx.Players["qb"].PassYards, ShouldEqual, 12)
				So(bx.Players["wr"].Targets, ShouldEqual, 1)
				So(bx.Players["wr"].RecYards, ShouldEqual, 12)
				So(bx.Players["dl"].Sacks, ShouldEqual, 1)
				So(bx.Players["dl"].Pressures, ShouldEqual, 1)
				So(bx.Players["dl"].TeamID, ShouldEqual, "B")
				So(bx.Players["cb"].Tackles, ShouldEqual, 1)
				So(bx.Players["ol"].Penalties, ShouldEqual, 1)
			})

			Convey("Then the attempts reconcile", func() {
				So(bx.Reconcile(), ShouldBeNil)
			})
		})

		Convey("When rates are derived", func() {
			r := b.AdvancedRates().Teams["A"]

			Convey("Then they follow the counts", func() {
				So(r.CompletionPct, ShouldEqual, 1)
				So(r.SackRate, ShouldEqual, 0.5)
				So(r.PressureRate, ShouldEqual, 0.5)
				So(r.YardsPerAttempt, ShouldEqual, 12)
				So(r.YardsPerCarry, ShouldEqual, 4)
				So(r.SuccessRate, ShouldAlmostEqual, 2.0/3.0)
				So(r.EPAPerPlay, ShouldNotEqual, 0)
			})
		})
	})

	Convey("Given two per-game books", t, func() {
		g1, g2 := statbook.New(), statbook.New()
		g1.NotePlay(ctx(0), run(3))
		c := ctx(0)
		c.GameID = "g2"
		g2.NotePlay(c, run(5))

		Convey("When they are merged", func() {
			all := statbook.New()
			all.Merge(g1)
			all.Merge(g2)

			Convey("Then the league book sums both", func() {
				So(all.Games(), ShouldEqual, 2)
				So(all.Len(), ShouldEqual, g1.Len()+g2.Len())
				So(all.Boxscore().League().RushYards, ShouldEqual, 8)
			})
		})
	})
}

func TestReconciliationFromEngine(t *testing.T) {
	Convey("Given many simulated passes noted into a book", t, func() {
		off := league.Generate("A", "A", 1)
		def := league.Generate("B", "B", 2)
		offD, defD := playcall.NewDepth(off, nil), playcall.NewDepth(def, nil)
		b := statbook.New()
		for i := 0; i < 300; i++ {
			concept := playcall.Concepts[i%len(playcall.Concepts)]
			o, err := playcall.BuildOffense(concept, offD)
			So(err, ShouldBeNil)
			d, err := playcall.BuildDefense(playcall.DefenseCall{Front: playcall.FrontNickel, Coverage: model.Zone, Blitz: i%4 == 0}, defD)
			So(err, ShouldBeNil)
			out, err := engine.SimulatePlay(engine.Input{
				Offense: o, Defense: d,
				OffenseRoster: model.RosterOf(off), DefenseRoster: model.RosterOf(def),
				Tuning: tuning.Defaults(), Seed: seed.Play(77, i),
				Situation: engine.Situation{Yardline: 35, Down: 1, Distance: 10},
			})
			So(err, ShouldBeNil)
			c := ctx(i)
			c.Yardline = 35
			b.NotePlay(c, out.Events)
		}

		Convey("Then attempts equal completions plus incompletions plus interceptions", func() {
			bx := b.Boxscore()
			a := bx.Teams["A"]
			So(a.AttemptEvents, ShouldBeGreaterThan, 0)
			So(a.AttemptEvents, ShouldEqual, a.Completions+a.Incompletions+a.Interceptions)
			So(bx.Reconcile(), ShouldBeNil)
		})
	})
}
