// Package export writes season results as CSV and JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/gridiron/internal/domain/ruleset"
	"github.com/okian/gridiron/internal/domain/statbook"
	"github.com/okian/gridiron/internal/domain/types"
)

// ErrExport wraps every failure of this package.
var ErrExport = errors.New("export")

// File names written by Season.
const (
	StandingsFile   = "standings.csv"
	TeamStatsFile   = "team_stats.csv"
	PlayerStatsFile = "player_stats.csv"
	InjuriesFile    = "injuries.json"
)

// WriteStandingsCSV writes the table in the order given.
func WriteStandingsCSV(w io.Writer, rows []types.Standing) error {
	out := [][]string{{"rank", "team_id", "wins", "losses", "ties", "win_pct", "points_for", "points_against", "point_diff"}}
	for _, r := range rows {
		out = append(out, []string{
			itoa(r.Rank), r.TeamID, itoa(r.Wins), itoa(r.Losses), itoa(r.Ties),
			ftoa(r.WinPct(), 3), itoa(r.PointsFor), itoa(r.PointsAgainst), itoa(r.PointDiff()),
		})
	}
	return writeCSV(w, out)
}

// WriteTeamStatsCSV writes one row per team plus a league row, with the
// advanced rates alongside the counting stats.
func WriteTeamStatsCSV(w io.Writer, bx statbook.Boxscore) error {
	out := [][]string{{
		"team_id", "plays", "yards", "epa_per_play", "success_rate",
		"pass_attempts", "completions", "completion_pct", "pass_yards", "yards_per_attempt",
		"sacks_taken", "sack_rate", "interceptions", "int_rate", "pressure_rate",
		"rush_attempts", "rush_yards", "yards_per_carry",
		"touchdowns", "turnovers", "penalties", "penalty_yards", "fg_made", "fg_attempts", "punts", "sacks",
	}}
	row := func(id string, t statbook.TeamLine) []string {
		r := statbook.RatesOf(t)
		return []string{
			id, itoa(t.Plays), ftoa(t.Yards, 1), ftoa(r.EPAPerPlay, 3), ftoa(r.SuccessRate, 3),
			itoa(t.PassAttempts), itoa(t.Completions), ftoa(r.CompletionPct, 3), ftoa(t.PassYards, 1), ftoa(r.YardsPerAttempt, 2),
			itoa(t.SacksTaken), ftoa(r.SackRate, 3), itoa(t.Interceptions), ftoa(r.IntRate, 3), ftoa(r.PressureRate, 3),
			itoa(t.RushAttempts), ftoa(t.RushYards, 1), ftoa(r.YardsPerCarry, 2),
			itoa(t.Touchdowns), itoa(t.Turnovers), itoa(t.Penalties), ftoa(t.PenaltyYards, 1),
			itoa(t.FGMade), itoa(t.FGAttempts), itoa(t.Punts), itoa(t.Sacks),
		}
	}
	for _, id := range bx.TeamIDs() {
		out = append(out, row(id, *bx.Teams[id]))
	}
	out = append(out, row("LEAGUE", bx.League()))
	return writeCSV(w, out)
}

// WritePlayerStatsCSV writes one row per player that recorded anything.
func WritePlayerStatsCSV(w io.Writer, bx statbook.Boxscore) error {
	out := [][]string{{
		"player_id", "team_id",
		"pass_attempts", "completions", "pass_yards", "pass_td", "interceptions", "sacks_taken",
		"rush_attempts", "rush_yards", "rush_td",
		"targets", "receptions", "rec_yards", "rec_td",
		"tackles", "sacks", "def_interceptions", "pressures",
		"fumbles", "fumbles_lost", "penalties",
		"fg_made", "fg_attempts", "xp_made", "xp_attempts", "punts", "punt_yards",
	}}
	for _, id := range bx.PlayerIDs() {
		p := bx.Players[id]
		out = append(out, []string{
			p.PlayerID, p.TeamID,
			itoa(p.PassAttempts), itoa(p.Completions), ftoa(p.PassYards, 1), itoa(p.PassTD), itoa(p.Interceptions), itoa(p.SacksTaken),
			itoa(p.RushAttempts), ftoa(p.RushYards, 1), itoa(p.RushTD),
			itoa(p.Targets), itoa(p.Receptions), ftoa(p.RecYards, 1), itoa(p.RecTD),
			itoa(p.Tackles), itoa(p.Sacks), itoa(p.DefInterceptions), itoa(p.Pressures),
			itoa(p.Fumbles), itoa(p.FumblesLost), itoa(p.Penalties),
			itoa(p.FGMade), itoa(p.FGAttempts), itoa(p.XPMade), itoa(p.XPAttempts), itoa(p.Punts), ftoa(p.PuntYards, 1),
		})
	}
	return writeCSV(w, out)
}

// InjuryEntry is one line of the injury report.
type InjuryEntry struct {
	Week   int    `json:"week"`
	GameID string `json:"game_id"`
	ruleset.InjuryReport
}

// WriteInjuriesJSON writes the season's injuries as an indented array.
func WriteInjuriesJSON(w io.Writer, injuries []InjuryEntry) error {
	if injuries == nil {
		injuries = []InjuryEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(injuries); err != nil {
		return fmt.Errorf("%w: injuries: %w", ErrExport, err)
	}
	return nil
}

// Season is everything Dir writes.
type Season struct {
	Standings []types.Standing
	Boxscore  statbook.Boxscore
	Injuries  []InjuryEntry
}

// Dir writes every export file of a season into dir, creating it.
func Dir(dir string, s Season) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{StandingsFile, func(w io.Writer) error { return WriteStandingsCSV(w, s.Standings) }},
		{TeamStatsFile, func(w io.Writer) error { return WriteTeamStatsCSV(w, s.Boxscore) }},
		{PlayerStatsFile, func(w io.Writer) error { return WritePlayerStatsCSV(w, s.Boxscore) }},
		{InjuriesFile, func(w io.Writer) error { return WriteInjuriesJSON(w, s.Injuries) }},
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrExport, cerr)
		}
	}()
	return write(f)
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("%w: csv: %w", ErrExport, err)
	}
	return nil
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) }
