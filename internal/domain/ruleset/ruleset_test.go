package ruleset_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gridiron/internal/domain/league"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ruleset"
	"github.com/okian/gridiron/pkg/logger"
)

// lateWindowSeconds is how close to the end a regulation game's last
// snap must come.
const lateWindowSeconds = 300.0

func teams() (model.Team, model.Team) {
	return league.Generate("T01", "Home", 11), league.Generate("T02", "Away", 22)
}

func TestSimulateGame(t *testing.T) {
	Convey("Given two generated teams", t, func() {
		h, a := teams()

		Convey("When a game is played twice with one seed", func() {
			r1, err1 := ruleset.SimulateGame(h, a, 42)
			r2, err2 := ruleset.SimulateGame(h, a, 42)
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)

			Convey("Then both runs are identical", func() {
				So(r2.HomeScore, ShouldEqual, r1.HomeScore)
				So(r2.AwayScore, ShouldEqual, r1.AwayScore)
				So(r2.Drives, ShouldResemble, r1.Drives)
				So(r2.Plays, ShouldResemble, r1.Plays)
				So(r2.Book.Entries(), ShouldResemble, r1.Book.Entries())
			})

			Convey("Then the game id is a stable name-based uuid", func() {
				So(r1.GameID, ShouldEqual, ruleset.GameID(42, "T01", "T02"))
				id, err := uuid.Parse(r1.GameID)
				So(err, ShouldBeNil)
				So(id.Version(), ShouldEqual, uuid.Version(5))
				So(ruleset.GameID(43, "T01", "T02"), ShouldNotEqual, r1.GameID)
			})
		})

		Convey("When several games are played", func() {
			var results []ruleset.GameResult
			for s := uint64(1); s <= 4; s++ {
				r, err := ruleset.SimulateGame(h, a, s)
				So(err, ShouldBeNil)
				results = append(results, r)
			}

			Convey("Then the clock never runs backward within a quarter", func() {
				for _, r := range results {
					lastQ, lastClock := 0, 0.0
					for _, p := range r.Plays {
						if p.Quarter == lastQ {
							So(p.Clock, ShouldBeLessThanOrEqualTo, lastClock)
						}
						So(p.Quarter, ShouldBeGreaterThanOrEqualTo, lastQ)
						So(p.Yardline, ShouldBeBetweenOrEqual, 0, 100)
						lastQ, lastClock = p.Quarter, p.Clock
					}
				}
			})

			Convey("Then the final score is the sum of the scoring plays", func() {
				for _, r := range results {
					points := map[string]int{}
					for _, p := range r.Plays {
						if p.Nullified {
							continue
						}
						other := r.AwayID
						if p.Offense == r.AwayID {
							other = r.HomeID
						}
						points[p.Offense] += p.Result.Points
						points[other] += p.Result.DefensePoints
					}
					So(points[r.HomeID], ShouldEqual, r.HomeScore)
					So(points[r.AwayID], ShouldEqual, r.AwayScore)
				}
			})

			Convey("Then every game runs out its clock in a realistic number of snaps", func() {
				for _, r := range results {
					So(r.PlayCount, ShouldBeBetweenOrEqual, 100, 155)
					last := r.Plays[len(r.Plays)-1]
					So(last.Quarter, ShouldBeGreaterThanOrEqualTo, ruleset.DefaultRules().Quarters)
					if !r.Overtime {
						So(last.Clock, ShouldBeLessThanOrEqualTo, lateWindowSeconds)
					}
					for _, d := range r.Drives {
						So(d.Result, ShouldNotEqual, ruleset.DriveMaxPlaysLimit)
					}
				}
			})

			Convey("Then every game has a realistic shape", func() {
				for _, r := range results {
					So(len(r.Drives), ShouldBeGreaterThan, 10)
					So(r.Boxscore.Reconcile(), ShouldBeNil)
					So(r.Rates.Teams, ShouldContainKey, "T01")
					So(r.Rates.Teams, ShouldContainKey, "T02")
					So(r.Book.Games(), ShouldEqual, 1)
				}
			})
		})

		Convey("When players are hurt for the game", func() {
			for s := uint64(10); s < 16; s++ {
				r, err := ruleset.SimulateGame(h, a, s)
				So(err, ShouldBeNil)
				for _, inj := range r.Injuries {
					if inj.Severity == model.Minor {
						continue
					}
					for _, e := range r.Book.Entries() {
						if e.PlayIndex > inj.PlayIndex {
							So(e.Event.Actors, ShouldNotContain, inj.PlayerID)
						}
					}
				}
			}
		})
	})
}

func TestOvertime(t *testing.T) {
	short := ruleset.DefaultRules()
	short.Quarters = 2
	short.QuarterLength = 30
	short.TwoMinuteWarning = 10

	Convey("Given games too short for anyone to score in regulation", t, func() {
		h, a := teams()

		Convey("When overtime is modified", func() {
			var ot []ruleset.GameResult
			for s := uint64(1); s <= 12; s++ {
				r, err := ruleset.SimulateGame(h, a, s, ruleset.WithRules(short))
				So(err, ShouldBeNil)
				if r.Overtime {
					ot = append(ot, r)
				}
			}

			Convey("Then ties in regulation are played off", func() {
				So(ot, ShouldNotBeEmpty)
				for _, r := range ot {
					var drives []ruleset.Drive
					for _, d := range r.Drives {
						if d.Quarter > short.Quarters {
							drives = append(drives, d)
						}
					}
					So(drives, ShouldNotBeEmpty)
					switch drives[0].Result {
					case ruleset.DriveTouchdown:
						So(drives, ShouldHaveLength, 1)
					case ruleset.DriveFieldGoal:
						So(len(drives), ShouldBeGreaterThan, 1)
					}
					if !r.Tie() {
						So([]string{"T01", "T02"}, ShouldContain, r.Winner())
					}
				}
			})
		})

		Convey("When overtime is disabled", func() {
			none := short
			none.Overtime = ruleset.OvertimeNone
			for s := uint64(1); s <= 4; s++ {
				r, err := ruleset.SimulateGame(h, a, s, ruleset.WithRules(none))
				So(err, ShouldBeNil)
				So(r.Overtime, ShouldBeFalse)
			}
		})

		Convey("When overtime is sudden death", func() {
			sd := short
			sd.Overtime = ruleset.OvertimeSuddenDeath
			for s := uint64(1); s <= 6; s++ {
				r, err := ruleset.SimulateGame(h, a, s, ruleset.WithRules(sd))
				So(err, ShouldBeNil)
				if !r.Overtime || r.Tie() {
					continue
				}
				last := r.Drives[len(r.Drives)-1]
				So([]ruleset.DriveResult{ruleset.DriveTouchdown, ruleset.DriveFieldGoal, ruleset.DriveSafety}, ShouldContain, last.Result)
			}
		})
	})
}

func TestConfiguration(t *testing.T) {
	Convey("Given bad game settings", t, func() {
		h, a := teams()

		Convey("Then a non-positive quarter is rejected before kickoff", func() {
			r := ruleset.DefaultRules()
			r.QuarterLength = 0
			_, err := ruleset.SimulateGame(h, a, 1, ruleset.WithRules(r))
			var ce *model.ConfigurationError
			So(errors.As(err, &ce), ShouldBeTrue)
			So(ce.Field, ShouldEqual, "rules.quarter_length")
		})

		Convey("Then an unknown overtime mode is rejected", func() {
			r := ruleset.DefaultRules()
			r.Overtime = "shootout"
			_, err := ruleset.SimulateGame(h, a, 1, ruleset.WithRules(r))
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
		})

		Convey("Then a team cannot play itself", func() {
			_, err := ruleset.SimulateGame(h, h, 1)
			So(errors.Is(err, model.ErrConfiguration), ShouldBeTrue)
		})

		Convey("Then a bad gameplan names the team", func() {
			bad := a
			bad.Tendencies.RunRate = 2
			_, err := ruleset.SimulateGame(h, bad, 1)
			var ce *model.ConfigurationError
			So(errors.As(err, &ce), ShouldBeTrue)
			So(ce.Field, ShouldEqual, "team.T02.gameplan.run_rate")
		})
	})
}

func TestLogging(t *testing.T) {
	Convey("Given a debug logger", t, func() {
		var buf bytes.Buffer
		l, err := logger.New(&buf, logger.FormatText, slog.LevelDebug)
		So(err, ShouldBeNil)
		h, a := teams()

		Convey("When a game is played", func() {
			_, err := ruleset.SimulateGame(h, a, 5, ruleset.WithLogger(l), ruleset.WithGameID("g-5"))
			So(err, ShouldBeNil)

			Convey("Then drives and the final score are logged", func() {
				So(buf.String(), ShouldContainSubstring, "msg=drive")
				So(buf.String(), ShouldContainSubstring, "msg=final")
				So(buf.String(), ShouldContainSubstring, "game_id=g-5")
			})
		})
	})
}
