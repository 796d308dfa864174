package repository

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/gridiron/internal/domain/types"
	"github.com/okian/gridiron/pkg/metrics"
)

// Treap-based, in-memory standings table.
//
// Ordering: win percentage DESC, point difference DESC, team id ASC.
// "less" means ranks earlier, so an in-order walk yields the table from
// first to last. Priorities are a hash of the team id, so the tree shape
// depends only on the set of teams.

type node struct {
	row   types.Standing
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

func less(a, b types.Standing) bool {
	if a.Ahead(b) {
		return true
	}
	if b.Ahead(a) {
		return false
	}
	return a.TeamID < b.TeamID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, row types.Standing) *node {
	if n == nil {
		return &node{row: row, prio: xxhash.Sum64String(row.TeamID), size: 1}
	}
	if less(row, n.row) {
		n.left = insert(n.left, row)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, row)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, row types.Standing) *node {
	if n == nil {
		return nil
	}
	switch {
	case n.row.TeamID == row.TeamID:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, row)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, row)
		}
	case less(row, n.row):
		n.left = deleteNode(n.left, row)
	default:
		n.right = deleteNode(n.right, row)
	}
	fix(n)
	return n
}

// ahead counts rows that rank strictly above row on the record alone.
func ahead(n *node, row types.Standing) int {
	count := 0
	for n != nil {
		if n.row.Ahead(row) {
			count += nsize(n.left) + 1
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

func collectTopN(n *node, limit int, out *[]types.Standing) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n.row)
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

// Standings is a Table. Teams level on win percentage and point
// difference share a rank and the next rank skips past them.
type Standings struct {
	mu   sync.RWMutex
	root *node
	byID map[string]types.Standing
}

// NewStandings returns an empty table.
func NewStandings() *Standings {
	return &Standings{byID: make(map[string]types.Standing)}
}

// Register implements Table.
func (s *Standings) Register(_ context.Context, teamIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range teamIDs {
		if id == "" {
			return ErrInvalidGame
		}
		if _, ok := s.byID[id]; ok {
			continue
		}
		row := types.Standing{TeamID: id}
		s.byID[id] = row
		s.root = insert(s.root, row)
	}
	metrics.UpdateStandingsTeams(len(s.byID))
	return nil
}

// Record implements Table. Unknown teams are registered on the fly.
func (s *Standings) Record(_ context.Context, g Game) error {
	if g.HomeID == "" || g.AwayID == "" || g.HomeID == g.AwayID || g.HomeScore < 0 || g.AwayScore < 0 {
		metrics.RecordErrorByComponent("repository", "invalid_game")
		return ErrInvalidGame
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(g.HomeID, g.HomeScore, g.AwayScore)
	s.apply(g.AwayID, g.AwayScore, g.HomeScore)
	metrics.UpdateStandingsTeams(len(s.byID))
	return nil
}

func (s *Standings) apply(id string, pf, pa int) {
	row, ok := s.byID[id]
	if ok {
		s.root = deleteNode(s.root, row)
	} else {
		row.TeamID = id
	}
	row.PointsFor += pf
	row.PointsAgainst += pa
	switch {
	case pf > pa:
		row.Wins++
	case pf < pa:
		row.Losses++
	default:
		row.Ties++
	}
	s.byID[id] = row
	s.root = insert(s.root, row)
}

// Rank implements Table in O(log n).
func (s *Standings) Rank(_ context.Context, teamID string) (types.Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.byID[teamID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return types.Standing{}, ErrNotFound
	}
	row.Rank = ahead(s.root, row) + 1
	return row, nil
}

// TopN implements Table.
func (s *Standings) TopN(_ context.Context, n int) ([]types.Standing, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Standing, 0, min(n, len(s.byID)))
	collectTopN(s.root, n, &out)
	assignRanks(out)
	return out, nil
}

// All returns the whole table in order.
func (s *Standings) All(ctx context.Context) []types.Standing {
	out, _ := s.TopN(ctx, max(s.Count(ctx), 1))
	return out
}

// Count implements Table.
func (s *Standings) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// assignRanks gives level rows the same rank, starting from the top.
func assignRanks(rows []types.Standing) {
	for i := range rows {
		if i > 0 && rows[i].Level(rows[i-1]) {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}
}
