package tuning_test

import (
	"errors"
	"testing"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/tuning"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParameters(t *testing.T) {
	Convey("Given the default snapshot", t, func() {
		p := tuning.Defaults()

		Convey("Then every multiplier is neutral", func() {
			for _, name := range p.Names() {
				if name == tuning.SackDistance {
					So(p.Get(name), ShouldEqual, tuning.DefaultSackDistance)
					continue
				}
				So(p.Get(name), ShouldEqual, 1.0)
			}
			So(p.Names(), ShouldContain, tuning.CompletionMod)
		})

		Convey("When a knob is changed", func() {
			next, err := p.With(tuning.CompletionMod, 1.2)
			So(err, ShouldBeNil)

			Convey("Then only the copy changes", func() {
				So(next.Completion(), ShouldEqual, 1.2)
				So(p.Completion(), ShouldEqual, 1.0)
			})

			Convey("Then scaling multiplies the current value", func() {
				scaled, err := next.Scale(tuning.CompletionMod, 0.5)
				So(err, ShouldBeNil)
				So(scaled.Completion(), ShouldAlmostEqual, 0.6)
			})
		})

		Convey("When an unknown knob is set", func() {
			_, err := p.With("warp_mod", 2)

			Convey("Then it is a configuration error", func() {
				So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
			})
		})

		Convey("When a knob is set to zero", func() {
			_, err := p.With(tuning.PressureMod, 0)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
			})
		})
	})

	Convey("Given overrides from a config file", t, func() {
		Convey("When they are valid", func() {
			p, err := tuning.FromMap(map[string]float64{tuning.YACMod: 1.1, tuning.IntMod: 0.9})
			So(err, ShouldBeNil)

			Convey("Then they overlay the defaults", func() {
				So(p.YAC(), ShouldEqual, 1.1)
				So(p.Interception(), ShouldEqual, 0.9)
				So(p.Pressure(), ShouldEqual, 1.0)
				So(p.Map(), ShouldHaveLength, len(tuning.Defaults().Names()))
			})
		})

		Convey("When one is unknown", func() {
			_, err := tuning.FromMap(map[string]float64{"bogus": 1})

			Convey("Then the whole set is rejected", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
