package seed_test

import (
	"testing"

	"github.com/okian/gridiron/internal/domain/seed"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGameSeed(t *testing.T) {
	Convey("Given a fixture", t, func() {
		a := seed.Game(2026, 3, "bears", "lions")

		Convey("When derived twice", func() {
			b := seed.Game(2026, 3, "bears", "lions")

			Convey("Then the seed is identical", func() {
				So(b, ShouldEqual, a)
			})
		})

		Convey("When any component changes", func() {
			Convey("Then the seed changes", func() {
				So(seed.Game(2027, 3, "bears", "lions"), ShouldNotEqual, a)
				So(seed.Game(2026, 4, "bears", "lions"), ShouldNotEqual, a)
				So(seed.Game(2026, 3, "lions", "bears"), ShouldNotEqual, a)
				So(seed.Game(2026, 3, "bear", "slions"), ShouldNotEqual, a)
			})
		})
	})
}

func TestPlaySeed(t *testing.T) {
	Convey("Given a game seed", t, func() {
		g := seed.Game(1, 1, "a", "b")

		Convey("Then each play index gets its own sub-seed", func() {
			seen := map[uint64]bool{}
			for i := 0; i < 500; i++ {
				s := seed.Play(g, i)
				So(seen[s], ShouldBeFalse)
				seen[s] = true
			}
		})

		Convey("Then salts separate streams for the same index", func() {
			So(seed.Stream(g, 7, seed.SaltPlaycall), ShouldNotEqual, seed.Play(g, 7))
			So(seed.Stream(g, 7, seed.SaltClock), ShouldNotEqual, seed.Stream(g, 7, seed.SaltPlaycall))
		})
	})
}

func TestRNG(t *testing.T) {
	Convey("Given two generators with the same seed", t, func() {
		a, b := seed.New(42), seed.New(42)

		Convey("Then they produce the same sequence", func() {
			for i := 0; i < 100; i++ {
				So(a.Float64(), ShouldEqual, b.Float64())
				So(a.Normal(0, 1), ShouldEqual, b.Normal(0, 1))
			}
		})
	})

	Convey("Given weighted choices", t, func() {
		g := seed.New(7)

		Convey("Then zero weights are never chosen", func() {
			for i := 0; i < 1000; i++ {
				So(g.Choose([]float64{0, 1, 0, 2}), ShouldBeIn, 1, 3)
			}
		})

		Convey("Then all-zero weights return -1", func() {
			So(g.Choose([]float64{0, 0}), ShouldEqual, -1)
		})

		Convey("Then IntRange stays inside its bounds", func() {
			for i := 0; i < 1000; i++ {
				v := g.IntRange(3, 10)
				So(v, ShouldBeBetweenOrEqual, 3, 10)
			}
		})
	})
}
