package model_test

import (
	"errors"
	"testing"

	"github.com/okian/gridiron/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func quickGame() model.Play {
	return model.Play{
		ID:        "quick",
		Name:      "quick",
		Formation: "shotgun",
		Personnel: "11",
		Type:      model.Offense,
		Concept:   model.PassShort,
		Assignments: []model.Assignment{
			{PlayerID: "qb", Role: model.RolePass},
			{PlayerID: "wr", Role: model.RoleRoute, Route: []model.Waypoint{{T: 0, X: -20, Y: 15}, {T: 1, X: -18, Y: 22}}},
			{PlayerID: "ol", Role: model.RoleBlock},
		},
	}
}

func TestPlayValidate(t *testing.T) {
	Convey("Given a well-formed play", t, func() {
		p := quickGame()

		Convey("Then it validates", func() {
			So(p.Validate(), ShouldBeNil)
		})

		cases := []struct {
			name  string
			mut   func(*model.Play)
			field string
		}{
			{"empty id", func(p *model.Play) { p.ID = " " }, "play.id"},
			{"unknown type", func(p *model.Play) { p.Type = "trick" }, ".type"},
			{"empty formation", func(p *model.Play) { p.Formation = "" }, ".formation"},
			{"no assignments", func(p *model.Play) { p.Assignments = nil }, ".assignments"},
			{"duplicate player", func(p *model.Play) { p.Assignments[2].PlayerID = "qb" }, ".player_id"},
			{"role not allowed", func(p *model.Play) { p.Assignments[2].Role = model.RoleRush }, ".role"},
			{"route missing", func(p *model.Play) { p.Assignments[1].Route = nil }, ".route"},
			{"time goes backward", func(p *model.Play) { p.Assignments[1].Route[1].T = 0 }, ".t"},
			{"off the field", func(p *model.Play) { p.Assignments[1].Route[1].X = 30 }, ".x"},
			{"two passers", func(p *model.Play) { p.Assignments[2].Role = model.RolePass }, ".assignments"},
		}
		for _, c := range cases {
			c := c
			Convey("When it has "+c.name, func() {
				bad := quickGame()
				c.mut(&bad)
				err := bad.Validate()

				Convey("Then the field is named", func() {
					var ce *model.ConfigurationError
					So(errors.As(err, &ce), ShouldBeTrue)
					So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
					So(ce.Field, ShouldContainSubstring, c.field)
				})
			})
		}

		Convey("When a special-teams play has no kicker", func() {
			st := model.Play{ID: "fg", Formation: model.FormationFieldGoal, Personnel: "special", Type: model.SpecialTeams,
				Assignments: []model.Assignment{{PlayerID: "h", Role: model.RoleHold}}}

			Convey("Then it is rejected", func() {
				So(errors.Is(st.Validate(), model.ErrConfiguration), ShouldBeTrue)
			})
		})

		Convey("When a player is missing from the roster", func() {
			r := model.Roster{"qb": {ID: "qb"}, "wr": {ID: "wr"}}

			Convey("Then the roster check names the player", func() {
				err := p.ValidateAgainst(r)
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, `"ol"`)
			})
		})
	})
}

func TestTeamValidate(t *testing.T) {
	Convey("Given a team", t, func() {
		team := model.Team{ID: "T", Players: []model.Player{
			{ID: "a", Position: model.QB, Jersey: 1, Attributes: model.LeagueAverage()},
			{ID: "b", Position: model.WR, Jersey: 11, Attributes: model.LeagueAverage()},
		}}

		Convey("Then it validates", func() {
			So(team.Validate(), ShouldBeNil)
			So(model.RosterOf(team), ShouldHaveLength, 2)
		})

		Convey("When a rating is out of range", func() {
			team.Players[1].Attributes.Speed = 120

			Convey("Then the attribute is named", func() {
				err := team.Validate()
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "player.b.speed")
			})
		})

		Convey("When ids repeat", func() {
			team.Players[1].ID = "a"

			Convey("Then it is rejected", func() {
				So(errors.Is(team.Validate(), model.ErrConfiguration), ShouldBeTrue)
			})
		})
	})
}

func TestReduce(t *testing.T) {
	Convey("Given a completed pass with a tackle", t, func() {
		var s model.Stream
		s.Append(model.EventSnap, 0, model.Payload{})
		s.Append(model.EventPassAttempt, 2.1, model.Payload{AirYards: 8}, "qb", "wr")
		s.Append(model.EventCompletion, 2.6, model.Payload{AirYards: 8, Y: 8}, "wr", "qb")
		s.Append(model.EventTackle, 3.5, model.Payload{Yards: 12}, "cb", "wr")
		s.Append(model.EventPlayEnd, 3.5, model.Payload{Yards: 14})
		r := model.Reduce(s.Events())

		Convey("Then the result splits the yards", func() {
			So(r.Kind, ShouldEqual, model.KindPass)
			So(r.Completed, ShouldBeTrue)
			So(r.Yards, ShouldEqual, 14)
			So(r.AirYards, ShouldEqual, 8)
			So(r.YardsAfterCatch, ShouldEqual, 6)
			So(r.YardsAfterContact, ShouldEqual, 2)
			So(r.Duration, ShouldEqual, 3.5)
			So(r.Turnover, ShouldBeFalse)
		})
	})

	Convey("Given a sack for a safety", t, func() {
		var s model.Stream
		s.Append(model.EventSnap, 0, model.Payload{})
		s.Append(model.EventPressure, 1.5, model.Payload{}, "dl")
		s.Append(model.EventSack, 1.6, model.Payload{Yards: -7}, "dl", "qb")
		s.Append(model.EventSafety, 1.6, model.Payload{Y: -7}, "qb")
		s.Append(model.EventPlayEnd, 1.6, model.Payload{Yards: -7})
		r := model.Reduce(s.Events())

		Convey("Then the defense scores", func() {
			So(r.Kind, ShouldEqual, model.KindSack)
			So(r.Sack, ShouldBeTrue)
			So(r.Pressure, ShouldBeTrue)
			So(r.DefensePoints, ShouldEqual, model.PointsSafety)
			So(r.Points, ShouldEqual, 0)
		})
	})

	Convey("Given a pre-snap foul", t, func() {
		var s model.Stream
		s.Append(model.EventPenalty, 0, model.Payload{Penalty: &model.Penalty{Type: model.FalseStart, Side: model.SideOffense, Yards: 5, PreSnap: true}}, "ol")
		s.Append(model.EventPlayEnd, 0, model.Payload{})
		r := model.Reduce(s.Events())

		Convey("Then no play is recorded", func() {
			So(r.Kind, ShouldEqual, model.KindNoPlay)
			So(r.Penalty.Type, ShouldEqual, model.FalseStart)
		})
	})
}
