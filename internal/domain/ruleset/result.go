package ruleset

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/statbook"
)

// gameNamespace scopes derived game ids.
var gameNamespace = uuid.MustParse("6f1c9a52-3d0e-5b8a-9c47-1e2f3a4b5c6d") //nolint:gochecknoglobals // fixed namespace

// GameID derives a stable UUIDv5 from the seed and the two team ids.
func GameID(seed uint64, homeID, awayID string) string {
	return uuid.NewSHA1(gameNamespace, []byte(fmt.Sprintf("%d/%s/%s", seed, homeID, awayID))).String()
}

// DriveResult is how a possession ended.
type DriveResult string

// Drive results.
const (
	DriveTouchdown     DriveResult = "touchdown"
	DriveFieldGoal     DriveResult = "field_goal"
	DriveMissedFG      DriveResult = "missed_field_goal"
	DrivePunt          DriveResult = "punt"
	DriveInterception  DriveResult = "interception"
	DriveFumble        DriveResult = "fumble"
	DriveDowns         DriveResult = "downs"
	DriveSafety        DriveResult = "safety"
	DriveEndOfHalf     DriveResult = "end_of_half"
	DriveEndOfGame     DriveResult = "end_of_game"
	DriveMaxPlaysLimit DriveResult = "max_plays"
)

// Drive is one possession.
type Drive struct {
	Offense       string      `json:"offense"`
	Quarter       int         `json:"quarter"`
	Plays         int         `json:"plays"`
	Yards         float64     `json:"yards"`
	Duration      float64     `json:"duration"`
	StartYardline float64     `json:"start_yardline"`
	EndYardline   float64     `json:"end_yardline"`
	Result        DriveResult `json:"result"`
}

// PlayLog is the pre-snap situation and result of one engine call.
type PlayLog struct {
	Index    int              `json:"index"`
	Quarter  int              `json:"quarter"`
	Clock    float64          `json:"clock"`
	Offense  string           `json:"offense"`
	Down     int              `json:"down"`
	Distance float64          `json:"distance"`
	Yardline float64          `json:"yardline"`
	Call     string           `json:"call"`
	Result   model.PlayResult `json:"result"`
	// Nullified is set when an accepted penalty wiped out the play.
	Nullified bool `json:"nullified,omitempty"`
}

// InjuryReport is an in-game injury.
type InjuryReport struct {
	model.Injury
	TeamID    string `json:"team_id"`
	Quarter   int    `json:"quarter"`
	PlayIndex int    `json:"play_index"`
}

// GameResult is everything a finished game produced.
type GameResult struct {
	GameID    string            `json:"game_id"`
	Seed      uint64            `json:"seed"`
	HomeID    string            `json:"home_id"`
	AwayID    string            `json:"away_id"`
	HomeScore int               `json:"home_score"`
	AwayScore int               `json:"away_score"`
	Overtime  bool              `json:"overtime"`
	PlayCount int               `json:"play_count"`
	Drives    []Drive           `json:"drives"`
	Plays     []PlayLog         `json:"plays"`
	Injuries  []InjuryReport    `json:"injuries,omitempty"`
	Boxscore  statbook.Boxscore `json:"boxscore"`
	Rates     statbook.Advanced `json:"rates"`
	Book      *statbook.Book    `json:"-"`
}

// Winner returns the winning team id, or "" for a tie.
func (r GameResult) Winner() string {
	switch {
	case r.HomeScore > r.AwayScore:
		return r.HomeID
	case r.AwayScore > r.HomeScore:
		return r.AwayID
	}
	return ""
}

// Tie reports whether the game ended level.
func (r GameResult) Tie() bool { return r.HomeScore == r.AwayScore }
