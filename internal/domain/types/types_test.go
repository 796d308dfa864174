package types_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	types "github.com/okian/gridiron/internal/domain/types"
)

func TestStanding(t *testing.T) {
	Convey("Given a standings row", t, func() {
		s := types.Standing{TeamID: "T01", Wins: 3, Losses: 1, Ties: 1, PointsFor: 110, PointsAgainst: 84}

		Convey("Then ties count as half a win", func() {
			So(s.Games(), ShouldEqual, 5)
			So(s.WinPct(), ShouldAlmostEqual, 0.7)
			So(s.PointDiff(), ShouldEqual, 26)
		})

		Convey("Then a team without games has a zero percentage", func() {
			So(types.Standing{}.WinPct(), ShouldEqual, 0)
		})
	})

	Convey("Given rows to order", t, func() {
		half := types.Standing{Wins: 1, Losses: 1}
		halfAgain := types.Standing{Wins: 2, Losses: 2}
		tied := types.Standing{Ties: 2}
		better := types.Standing{Wins: 2, Losses: 1}
		fresh := types.Standing{}

		Convey("Then equal percentages fall back to point difference", func() {
			So(half.Level(halfAgain), ShouldBeTrue)
			So(half.Level(tied), ShouldBeTrue)
			halfAgain.PointsFor = 3
			So(halfAgain.Ahead(half), ShouldBeTrue)
		})

		Convey("Then a higher percentage wins regardless of points", func() {
			half.PointsFor = 100
			So(better.Ahead(half), ShouldBeTrue)
			So(half.Ahead(better), ShouldBeFalse)
		})

		Convey("Then any win beats no games", func() {
			So(better.Ahead(fresh), ShouldBeTrue)
			So(fresh.Level(types.Standing{Losses: 3}), ShouldBeTrue)
		})
	})
}
