package service_test

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/adapters/http/api"
	"github.com/okian/gridiron/internal/adapters/repository"
	service "github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/domain/calibration"
	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/tuning"
	"github.com/okian/gridiron/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func scores(res service.SeasonResult) [][2]int {
	out := make([][2]int, len(res.Games))
	for i, g := range res.Games {
		out[i] = [2]int{g.HomeScore, g.AwayScore}
	}
	return out
}

func TestRunSeason(t *testing.T) {
	Convey("Given an eight team league", t, func() {
		ctx := context.Background()
		teams := league.Teams(8, 11)
		in := service.SeasonInput{Season: 1, Teams: teams, Tuning: tuning.Defaults(), Seed: 7}
		svc := service.New(service.WithWorkerCount(4), service.WithQueueSize(8))

		Convey("When a season is played", func() {
			res, err := svc.RunSeason(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then every pair meets home and away", func() {
				So(res.Games, ShouldHaveLength, 56)
				So(res.Book.Games(), ShouldEqual, 56)
				So(res.Schedule, ShouldHaveLength, 56)
				for i, g := range res.Games {
					So(g.HomeID, ShouldEqual, res.Schedule[i].Home)
					So(g.AwayID, ShouldEqual, res.Schedule[i].Away)
				}
			})

			Convey("Then the standings add up", func() {
				So(res.Standings, ShouldHaveLength, 8)
				decided, ties, pf, pa := 0, 0, 0, 0
				for _, row := range res.Standings {
					So(row.Games(), ShouldEqual, 14)
					decided += row.Wins
					ties += row.Ties
					pf += row.PointsFor
					pa += row.PointsAgainst
				}
				So(decided+ties/2, ShouldEqual, 56)
				So(pf, ShouldEqual, pa)
				So(res.Standings[0].Rank, ShouldEqual, 1)
			})

			Convey("Then the service serves the new table", func() {
				top, err := svc.TopN(ctx, 3)
				So(err, ShouldBeNil)
				So(top, ShouldHaveLength, 3)
				So(top[0].TeamID, ShouldEqual, res.Standings[0].TeamID)

				last, ok := svc.Last()
				So(ok, ShouldBeTrue)
				So(last.RunID, ShouldEqual, res.RunID)
			})

			Convey("Then the record carries every game with its week", func() {
				rec := res.Record()
				So(rec.Games, ShouldHaveLength, 56)
				So(rec.Weeks, ShouldHaveLength, 56)
				So(rec.Weeks[0], ShouldEqual, 1)
				So(rec.Teams, ShouldEqual, 8)
			})

			Convey("And it is replayed with one worker", func() {
				again, err := service.New(service.WithWorkerCount(1)).RunSeason(ctx, in)
				So(err, ShouldBeNil)

				Convey("Then the results are identical", func() {
					So(again.RunID, ShouldEqual, res.RunID)
					So(scores(again), ShouldResemble, scores(res))
					So(again.Standings, ShouldResemble, res.Standings)
				})
			})

			Convey("And it is replayed with another seed", func() {
				other := in
				other.Seed = 8
				again, err := svc.RunSeason(ctx, other)
				So(err, ShouldBeNil)

				Convey("Then the run id differs", func() {
					So(again.RunID, ShouldNotEqual, res.RunID)
				})
			})
		})
	})

	Convey("Given invalid input", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("Then a zero season is a configuration error", func() {
			_, err := svc.RunSeason(ctx, service.SeasonInput{Teams: league.Teams(4, 1), Tuning: tuning.Defaults()})
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
		})

		Convey("Then duplicate team ids are rejected", func() {
			teams := league.Teams(2, 1)
			teams = append(teams, teams[0])
			_, err := svc.RunSeason(ctx, service.SeasonInput{Season: 1, Teams: teams, Tuning: tuning.Defaults()})
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		svc := service.New(service.WithWorkerCount(2))

		Convey("Then the season stops with the context error", func() {
			_, err := svc.RunSeason(ctx, service.SeasonInput{Season: 1, Teams: league.Teams(4, 1), Tuning: tuning.Defaults()})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestCalibrate(t *testing.T) {
	Convey("Given a small league and two seasons", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithCalibrationParallel(2))
		in := service.CalibrationInput{Teams: league.Teams(4, 5), Tuning: tuning.Defaults(), Seasons: 2, Seed: 3}

		Convey("When the batch is calibrated", func() {
			r, err := svc.Calibrate(context.Background(), in)
			So(err, ShouldBeNil)

			Convey("Then every band is reported", func() {
				So(r.Seasons, ShouldEqual, 2)
				So(r.Games, ShouldEqual, 24)
				So(r.Lines, ShouldNotBeEmpty)
				for _, l := range r.Lines {
					So(l.Spread.Min, ShouldBeLessThanOrEqualTo, l.Spread.Max)
				}
			})

			Convey("Then a second run reports the same values", func() {
				again, err := svc.Calibrate(context.Background(), in)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, r)
			})
		})

		Convey("When a season has been published first", func() {
			ctx := context.Background()
			res, err := svc.RunSeason(ctx, service.SeasonInput{Season: 1, Teams: in.Teams, Tuning: in.Tuning, Seed: 99})
			So(err, ShouldBeNil)
			before, err := svc.TopN(ctx, 4)
			So(err, ShouldBeNil)

			_, err = svc.Calibrate(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then calibration leaves the published season alone", func() {
				last, ok := svc.Last()
				So(ok, ShouldBeTrue)
				So(last.RunID, ShouldEqual, res.RunID)
				after, err := svc.TopN(ctx, 4)
				So(err, ShouldBeNil)
				So(after, ShouldResemble, before)
			})
		})

		Convey("When a fresh service only calibrates", func() {
			fresh := service.New(service.WithWorkerCount(2))
			_, err := fresh.Calibrate(context.Background(), in)
			So(err, ShouldBeNil)

			Convey("Then it has no last season", func() {
				_, ok := fresh.Last()
				So(ok, ShouldBeFalse)
			})
		})

		Convey("Then zero seasons is rejected", func() {
			in.Seasons = 0
			_, err := svc.Calibrate(context.Background(), in)
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
		})
	})
}

func TestStartSeason(t *testing.T) {
	Convey("Given a service that has not started", t, func() {
		svc := service.New(service.WithTeams(league.Teams(4, 2)))

		Convey("Then StartSeason refuses", func() {
			So(svc.StartSeason(context.Background(), 1), ShouldEqual, service.ErrNotStarted)
		})
	})

	Convey("Given a started service", t, func() {
		svc := service.New(service.WithTeams(league.Teams(8, 2)), service.WithWorkerCount(2), service.WithSeed(9))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a season is started twice", func() {
			first := svc.StartSeason(ctx, 1)
			second := svc.StartSeason(ctx, 2)

			Convey("Then the second is busy", func() {
				So(first, ShouldBeNil)
				So(second, ShouldEqual, api.ErrBusy)
			})

			Convey("Then the table fills once the season ends", func() {
				for svc.Running() && ctx.Err() == nil {
					time.Sleep(10 * time.Millisecond)
				}
				So(svc.Running(), ShouldBeFalse)

				row, err := svc.Rank(ctx, "T01")
				So(err, ShouldBeNil)
				So(row.Games(), ShouldEqual, 14)

				_, err = svc.Rank(ctx, "T99")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["seasons_run"], ShouldEqual, int64(1))
				So(stats["standings_rows"], ShouldEqual, 8)
				So(stats["last_season"], ShouldEqual, 1)
			})
		})
	})
}

func TestPlayGame(t *testing.T) {
	Convey("Given two teams", t, func() {
		svc := service.New()
		teams := league.Teams(2, 4)

		Convey("Then a game is reproducible by seed", func() {
			a, err := svc.PlayGame(context.Background(), teams[0], teams[1], 42)
			So(err, ShouldBeNil)
			b, err := svc.PlayGame(context.Background(), teams[0], teams[1], 42)
			So(err, ShouldBeNil)
			So(a.HomeScore, ShouldEqual, b.HomeScore)
			So(a.AwayScore, ShouldEqual, b.AwayScore)
			So(a.PlayCount, ShouldEqual, b.PlayCount)
		})
	})
}

func TestCalibrateConverges(t *testing.T) {
	Convey("Given completions tuned far below the league band", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(4), service.WithCalibrationParallel(2))
		low, err := tuning.Defaults().With(tuning.CompletionMod, 0.6)
		So(err, ShouldBeNil)
		in := service.CalibrationInput{Teams: league.Teams(4, 5), Tuning: low, Seasons: 5, Seed: 3}

		Convey("When a report is applied and the batch is calibrated again", func() {
			first, err := svc.Calibrate(ctx, in)
			So(err, ShouldBeNil)
			before, ok := first.Line(calibration.CompletionPct)
			So(ok, ShouldBeTrue)
			So(before.InBand, ShouldBeFalse)
			So(before.Suggestion, ShouldNotBeNil)

			next, err := first.Apply(in.Tuning)
			So(err, ShouldBeNil)
			So(next.Get(tuning.CompletionMod), ShouldAlmostEqual, 0.66)
			in.Tuning = next
			second, err := svc.Calibrate(ctx, in)
			So(err, ShouldBeNil)
			after, _ := second.Line(calibration.CompletionPct)

			Convey("Then the completion rate moves toward its band", func() {
				mid := before.Band.Midpoint()
				So(after.Observed, ShouldBeGreaterThan, before.Observed)
				So(math.Abs(after.Observed-mid), ShouldBeLessThan, math.Abs(before.Observed-mid))
			})
		})
	})
}
