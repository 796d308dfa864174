package fatigue_test

import (
	"testing"

	"github.com/okian/gridiron/internal/domain/fatigue"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/seed"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTracker(t *testing.T) {
	Convey("Given a fresh tracker", t, func() {
		tr := fatigue.NewTracker()

		Convey("When a player runs a long route", func() {
			tr.Apply(fatigue.Load{PlayerID: "wr1", Distance: 30, Duration: 5, Durability: 70})
			after := tr.Level("wr1")

			Convey("Then fatigue accumulates", func() {
				So(after, ShouldBeGreaterThan, 0)
				So(fatigue.Multiplier(after), ShouldBeLessThan, 1)
			})

			Convey("Then rest recovers it", func() {
				tr.Recover("wr1", 10)
				So(tr.Level("wr1"), ShouldBeLessThan, after)
				tr.Recover("wr1", 10_000)
				So(tr.Level("wr1"), ShouldEqual, 0)
			})
		})

		Convey("When a durable and a fragile player do the same work", func() {
			tr.Apply(fatigue.Load{PlayerID: "iron", Distance: 20, Duration: 4, Durability: 95})
			tr.Apply(fatigue.Load{PlayerID: "glass", Distance: 20, Duration: 4, Durability: 30})

			Convey("Then the durable one tires less", func() {
				So(tr.Level("iron"), ShouldBeLessThan, tr.Level("glass"))
			})
		})

		Convey("When loads pile up", func() {
			for i := 0; i < 1000; i++ {
				tr.Apply(fatigue.Load{PlayerID: "rb", Distance: 40, Duration: 8})
			}

			Convey("Then fatigue saturates at 1 and the multiplier bottoms out", func() {
				So(tr.Level("rb"), ShouldEqual, 1)
				So(fatigue.Multiplier(1), ShouldAlmostEqual, 0.65, 1e-9)
			})
		})

		Convey("When choosing a substitute", func() {
			tr.Apply(fatigue.Load{PlayerID: "a", Distance: 40, Duration: 8})
			p, ok := tr.Freshest([]model.Player{{ID: "a"}, {ID: "b"}})

			Convey("Then the least tired player is picked", func() {
				So(ok, ShouldBeTrue)
				So(p.ID, ShouldEqual, "b")
			})
		})
	})
}

func TestCheckInjury(t *testing.T) {
	Convey("Given many routine impacts", t, func() {
		g := seed.New(2024)
		attrs := model.LeagueAverage()
		const trials = 20000
		hurt := 0
		tiers := map[model.Severity]int{}
		for i := 0; i < trials; i++ {
			if inj, ok := fatigue.CheckInjury(model.EventTackle, "p", attrs, 1, g); ok {
				hurt++
				tiers[inj.Severity]++
				switch inj.Severity {
				case model.Minor:
					So(inj.OutPlays, ShouldBeBetweenOrEqual, 3, 10)
				case model.Moderate:
					So(inj.OutGames, ShouldBeBetweenOrEqual, 1, 3)
				case model.Severe:
					So(inj.OutWeeks, ShouldBeBetweenOrEqual, 2, 8)
				}
			}
		}

		Convey("Then the injury rate stays small", func() {
			rate := float64(hurt) / trials
			So(rate, ShouldBeBetween, 0.0015, 0.0070)
		})

		Convey("Then minor injuries are the most common tier", func() {
			So(tiers[model.Minor], ShouldBeGreaterThan, tiers[model.Severe])
		})
	})

	Convey("Given durability", t, func() {
		Convey("Then tougher players are injured less often", func() {
			So(fatigue.InjuryRate(1, 95), ShouldBeLessThan, fatigue.InjuryRate(1, 40))
			So(fatigue.InjuryRate(2, 70), ShouldBeGreaterThan, fatigue.InjuryRate(1, 70))
		})

		Convey("Then zero impact never injures", func() {
			_, ok := fatigue.CheckInjury(model.EventTackle, "p", model.LeagueAverage(), 0, seed.New(1))
			So(ok, ShouldBeFalse)
		})
	})
}
