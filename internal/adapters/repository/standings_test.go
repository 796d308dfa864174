package repository_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/domain/types"
)

func TestStandings(t *testing.T) {
	ctx := context.Background()

	Convey("Given a table with a few results", t, func() {
		s := repository.NewStandings()
		So(s.Register(ctx, "T01", "T02", "T03", "T04"), ShouldBeNil)
		So(s.Record(ctx, repository.Game{HomeID: "T01", AwayID: "T02", HomeScore: 24, AwayScore: 17}), ShouldBeNil)
		So(s.Record(ctx, repository.Game{HomeID: "T03", AwayID: "T04", HomeScore: 10, AwayScore: 10}), ShouldBeNil)

		Convey("Then the winner leads and the tie is split", func() {
			top, err := s.TopN(ctx, 4)
			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 4)
			So(top[0].TeamID, ShouldEqual, "T01")
			So(top[0].Rank, ShouldEqual, 1)

			// T03 and T04 are level at .500 and +0; id breaks the order
			// but not the rank.
			So(top[1].TeamID, ShouldEqual, "T03")
			So(top[2].TeamID, ShouldEqual, "T04")
			So(top[1].Rank, ShouldEqual, 2)
			So(top[2].Rank, ShouldEqual, 2)
			So(top[1].Ties, ShouldEqual, 1)

			So(top[3].TeamID, ShouldEqual, "T02")
			So(top[3].Rank, ShouldEqual, 4)
		})

		Convey("Then Rank agrees with TopN", func() {
			r, err := s.Rank(ctx, "T04")
			So(err, ShouldBeNil)
			So(r.Rank, ShouldEqual, 2)
			So(r.PointsFor, ShouldEqual, 10)

			r, err = s.Rank(ctx, "T02")
			So(err, ShouldBeNil)
			So(r.Rank, ShouldEqual, 4)
			So(r.Losses, ShouldEqual, 1)
		})

		Convey("Then registering again keeps the records", func() {
			So(s.Register(ctx, "T01"), ShouldBeNil)
			r, _ := s.Rank(ctx, "T01")
			So(r.Wins, ShouldEqual, 1)
			So(s.Count(ctx), ShouldEqual, 4)
		})

		Convey("Then point difference separates equal records", func() {
			So(s.Record(ctx, repository.Game{HomeID: "T04", AwayID: "T02", HomeScore: 3, AwayScore: 0}), ShouldBeNil)
			So(s.Record(ctx, repository.Game{HomeID: "T01", AwayID: "T03", HomeScore: 0, AwayScore: 30}), ShouldBeNil)
			all := s.All(ctx)
			// T03 1-0-1 +30, T04 1-0-1 +3, T01 1-1 -23, T02 0-2 -10.
			So(all[0].TeamID, ShouldEqual, "T03")
			So(all[1].TeamID, ShouldEqual, "T04")
			So(all[2].TeamID, ShouldEqual, "T01")
			So(all[3].TeamID, ShouldEqual, "T02")
		})
	})

	Convey("Given bad input", t, func() {
		s := repository.NewStandings()

		So(errors.Is(s.Record(ctx, repository.Game{HomeID: "T01", AwayID: "T01"}), repository.ErrInvalidGame), ShouldBeTrue)
		So(errors.Is(s.Record(ctx, repository.Game{HomeID: "T01", AwayID: "T02", HomeScore: -1}), repository.ErrInvalidGame), ShouldBeTrue)
		_, err := s.Rank(ctx, "nobody")
		So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		_, err = s.TopN(ctx, 0)
		So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
	})
}

func TestStandingsMatchesSort(t *testing.T) {
	Convey("Given many random results recorded concurrently", t, func() {
		ctx := context.Background()
		s := repository.NewStandings()
		rng := rand.New(rand.NewPCG(1, 2))

		games := make([]repository.Game, 400)
		for i := range games {
			h := rng.IntN(12)
			a := (h + 1 + rng.IntN(11)) % 12
			games[i] = repository.Game{
				HomeID: fmt.Sprintf("T%02d", h), AwayID: fmt.Sprintf("T%02d", a),
				HomeScore: rng.IntN(5) * 7, AwayScore: rng.IntN(5) * 7,
			}
		}

		var wg sync.WaitGroup
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := w; i < len(games); i += 4 {
					_ = s.Record(ctx, games[i])
				}
			}(w)
		}
		wg.Wait()

		Convey("Then the treap order equals a plain sort", func() {
			rows := map[string]types.Standing{}
			for _, g := range games {
				h, a := rows[g.HomeID], rows[g.AwayID]
				h.TeamID, a.TeamID = g.HomeID, g.AwayID
				h.PointsFor += g.HomeScore
				h.PointsAgainst += g.AwayScore
				a.PointsFor += g.AwayScore
				a.PointsAgainst += g.HomeScore
				switch {
				case g.HomeScore > g.AwayScore:
					h.Wins++
					a.Losses++
				case g.HomeScore < g.AwayScore:
					h.Losses++
					a.Wins++
				default:
					h.Ties++
					a.Ties++
				}
				rows[g.HomeID], rows[g.AwayID] = h, a
			}
			want := make([]types.Standing, 0, len(rows))
			for _, r := range rows {
				want = append(want, r)
			}
			sort.Slice(want, func(i, j int) bool {
				if want[i].Ahead(want[j]) {
					return true
				}
				if want[j].Ahead(want[i]) {
					return false
				}
				return want[i].TeamID < want[j].TeamID
			})

			got := s.All(ctx)
			So(got, ShouldHaveLength, len(want))
			for i := range want {
				So(got[i].TeamID, ShouldEqual, want[i].TeamID)
				So(got[i].Wins, ShouldEqual, want[i].Wins)
				r, err := s.Rank(ctx, got[i].TeamID)
				So(err, ShouldBeNil)
				So(r.Rank, ShouldEqual, got[i].Rank)
			}
		})
	})
}
