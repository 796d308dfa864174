package league_test

import (
	"testing"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generated team", t, func() {
		team := league.Generate("T01", "Team 01", 99)

		Convey("Then the roster is full and valid", func() {
			So(team.Validate(), ShouldBeNil)
			So(team.Players, ShouldHaveLength, league.RosterSize)
			So(team.ByPosition(model.QB), ShouldHaveLength, 2)
			So(team.ByPosition(model.K), ShouldHaveLength, 1)
		})

		Convey("Then the same seed gives the same roster", func() {
			So(league.Generate("T01", "Team 01", 99), ShouldResemble, team)
		})

		Convey("Then a different seed gives different ratings", func() {
			other := league.Generate("T01", "Team 01", 100)
			So(other.Players[0].ID, ShouldEqual, team.Players[0].ID)
			So(other.Players[0].Attributes, ShouldNotResemble, team.Players[0].Attributes)
		})

		Convey("Then position archetypes show through the noise", func() {
			ol := team.ByPosition(model.OL)
			cb := team.ByPosition(model.CB)
			So(mean(ol, func(a model.Attributes) float64 { return a.Strength }), ShouldBeGreaterThan,
				mean(cb, func(a model.Attributes) float64 { return a.Strength }))
			So(mean(cb, func(a model.Attributes) float64 { return a.Speed }), ShouldBeGreaterThan,
				mean(ol, func(a model.Attributes) float64 { return a.Speed }))
		})
	})
}

func TestTeams(t *testing.T) {
	Convey("Given a generated league", t, func() {
		teams := league.Teams(4, 7)

		Convey("Then ids are sequential and every team validates", func() {
			So(teams, ShouldHaveLength, 4)
			for i, tm := range teams {
				So(tm.Validate(), ShouldBeNil)
				So(tm.ID, ShouldEqual, []string{"T01", "T02", "T03", "T04"}[i])
			}
		})

		Convey("Then teams differ from one another", func() {
			So(teams[0].Players[0].Attributes, ShouldNotResemble, teams[1].Players[0].Attributes)
		})
	})

	Convey("Given a uniform team", t, func() {
		team := league.Uniform("U", "Uniform", 70)

		Convey("Then every rating is the given value", func() {
			for _, p := range team.Players {
				So(p.Attributes, ShouldResemble, model.Uniform(70))
			}
		})
	})
}

func mean(ps []model.Player, f func(model.Attributes) float64) float64 {
	sum := 0.0
	for _, p := range ps {
		sum += f(p.Attributes)
	}
	return sum / float64(len(ps))
}
