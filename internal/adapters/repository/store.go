// Package repository keeps league standings in memory and season results
// on disk.
package repository

import (
	"context"

	"github.com/okian/gridiron/internal/domain/types"
)

// Game is the part of a result the standings need.
type Game struct {
	HomeID    string
	AwayID    string
	HomeScore int
	AwayScore int
}

// Table provides read/write access to the standings.
type Table interface {
	// Register adds teams with an empty record. Known teams are left alone.
	Register(ctx context.Context, teamIDs ...string) error

	// Record applies one final score to both teams.
	Record(ctx context.Context, g Game) error

	// Rank returns a team's current row. Returns ErrNotFound for an
	// unknown team.
	Rank(ctx context.Context, teamID string) (types.Standing, error)

	// TopN returns the first n rows in table order.
	TopN(ctx context.Context, n int) ([]types.Standing, error)

	// Count returns the number of teams in the table.
	Count(ctx context.Context) int
}
