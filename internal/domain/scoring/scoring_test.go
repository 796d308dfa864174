package scoring_test

import (
	"testing"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExpectedPoints(t *testing.T) {
	Convey("Given first and ten", t, func() {
		Convey("Then expected points rise with field position", func() {
			prev := scoring.ExpectedPoints(scoring.State{Down: 1, Distance: 10, Yardline: 1})
			for yl := 5.0; yl <= 89; yl += 4 {
				ep := scoring.ExpectedPoints(scoring.State{Down: 1, Distance: 10, Yardline: yl})
				So(ep, ShouldBeGreaterThan, prev)
				prev = ep
			}
		})

		Convey("Then backed up is negative and the red zone is worth more than a field goal", func() {
			So(scoring.ExpectedPoints(scoring.State{Down: 1, Distance: 10, Yardline: 2}), ShouldBeLessThan, 0)
			So(scoring.ExpectedPoints(scoring.State{Down: 1, Distance: 10, Yardline: 85}), ShouldBeGreaterThan, 3)
		})

		Convey("Then later downs and longer distances are worth less", func() {
			first := scoring.ExpectedPoints(scoring.State{Down: 1, Distance: 10, Yardline: 50})
			third := scoring.ExpectedPoints(scoring.State{Down: 3, Distance: 10, Yardline: 50})
			long := scoring.ExpectedPoints(scoring.State{Down: 1, Distance: 20, Yardline: 50})
			So(third, ShouldBeLessThan, first)
			So(long, ShouldBeLessThan, first)
		})
	})
}

func TestAdded(t *testing.T) {
	Convey("Given first and ten at the 25", t, func() {
		s := scoring.State{Down: 1, Distance: 10, Yardline: 25}

		Convey("Then a touchdown is worth seven less the starting value", func() {
			epa := scoring.Added(s, model.PlayResult{Touchdown: true, Yards: 75})
			So(epa, ShouldAlmostEqual, 7-scoring.ExpectedPoints(s), 1e-9)
		})

		Convey("Then a big gain beats a short one, which beats a loss", func() {
			big := scoring.Added(s, model.PlayResult{Yards: 20})
			short := scoring.Added(s, model.PlayResult{Yards: 3})
			loss := scoring.Added(s, model.PlayResult{Yards: -5})
			So(big, ShouldBeGreaterThan, short)
			So(short, ShouldBeGreaterThan, loss)
		})

		Convey("Then an interception costs points", func() {
			So(scoring.Added(s, model.PlayResult{Turnover: true, Interception: true}), ShouldBeLessThan, -1)
		})
	})

	Convey("Given fourth and two", t, func() {
		s := scoring.State{Down: 4, Distance: 2, Yardline: 60}

		Convey("When the offense comes up short", func() {
			next, flipped := scoring.Next(s, 1)

			Convey("Then the ball turns over on downs", func() {
				So(flipped, ShouldBeTrue)
				So(next.Yardline, ShouldEqual, 39)
				So(scoring.Added(s, model.PlayResult{Yards: 1}), ShouldBeLessThan, 0)
			})
		})
	})
}

func TestSuccess(t *testing.T) {
	Convey("Given the down-specific thresholds", t, func() {
		So(scoring.Success(scoring.State{Down: 1, Distance: 10}, 4), ShouldBeTrue)
		So(scoring.Success(scoring.State{Down: 1, Distance: 10}, 3.9), ShouldBeFalse)
		So(scoring.Success(scoring.State{Down: 2, Distance: 5}, 3), ShouldBeTrue)
		So(scoring.Success(scoring.State{Down: 3, Distance: 5}, 4), ShouldBeFalse)
		So(scoring.Success(scoring.State{Down: 4, Distance: 1}, 1), ShouldBeTrue)
	})
}
