package schedule_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/schedule"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("T%02d", i+1)
	}
	return out
}

func TestRoundRobin(t *testing.T) {
	for _, n := range []int{2, 5, 8} {
		Convey(fmt.Sprintf("Given a %d-team league", n), t, func() {
			teams := ids(n)
			s, err := schedule.RoundRobin(teams, 7)
			So(err, ShouldBeNil)

			slots := n
			if n%2 == 1 {
				slots++
			}

			Convey("Then every ordered pair meets exactly once", func() {
				pairs := map[[2]string]int{}
				for _, f := range s {
					So(f.Home, ShouldNotEqual, f.Away)
					pairs[[2]string{f.Home, f.Away}]++
				}
				So(pairs, ShouldHaveLength, n*(n-1))
				for _, c := range pairs {
					So(c, ShouldEqual, 1)
				}
			})

			Convey("Then nobody plays twice in a week", func() {
				So(s.Weeks(), ShouldEqual, 2*(slots-1))
				for w := 1; w <= s.Weeks(); w++ {
					busy := map[string]bool{}
					for _, f := range s.Week(w) {
						So(busy[f.Home], ShouldBeFalse)
						So(busy[f.Away], ShouldBeFalse)
						busy[f.Home], busy[f.Away] = true, true
					}
					want := n
					if n%2 == 1 {
						want = n - 1
					}
					So(busy, ShouldHaveLength, want)
				}
			})

			Convey("Then the second half mirrors the first", func() {
				half := slots - 1
				for _, f := range s {
					if f.Week > half {
						continue
					}
					found := false
					for _, g := range s.Week(f.Week + half) {
						if g.Home == f.Away && g.Away == f.Home {
							found = true
						}
					}
					So(found, ShouldBeTrue)
				}
			})

			Convey("Then the same seed gives the same schedule", func() {
				again, err := schedule.RoundRobin(teams, 7)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, s)
			})
		})
	}

	Convey("Given bad team lists", t, func() {
		_, err := schedule.RoundRobin([]string{"T01"}, 1)
		So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)

		_, err = schedule.RoundRobin([]string{"T01", "T01"}, 1)
		So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
	})
}
