// Package api serves the simulator's read API and season trigger over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/gridiron/internal/domain/types"
)

const defaultMaxLimit = 100

// Standings is the read side of the league table.
type Standings interface {
	TopN(ctx context.Context, n int) ([]types.Standing, error)
	Rank(ctx context.Context, teamID string) (types.Standing, error)
}

// SeasonStarter runs a season in the background. It returns ErrBusy while
// another season is running.
type SeasonStarter interface {
	StartSeason(ctx context.Context, season int) error
}

// Dependencies required by the handlers.
type Dependencies interface {
	Standings
	SeasonStarter
	StatsProvider
}

// Server wires HTTP routes.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	standingsHandler *StandingsHandler
	seasonsHandler   *SeasonsHandler
}

// ServerOption configures NewServer.
type ServerOption func(*serverOptions)

type serverOptions struct {
	maxLimit int
}

// WithMaxLimit caps GET /standings?limit.
func WithMaxLimit(n int) ServerOption {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxLimit = n
		}
	}
}

// NewServer creates a server with every handler.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	o := serverOptions{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		standingsHandler: NewStandingsHandler(deps, o.maxLimit),
		seasonsHandler:   NewSeasonsHandler(deps),
	}
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.Metrics())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleTable, "standings"))
	mux.HandleFunc("/standings/", MetricsMiddleware(s.standingsHandler.HandleTeam, "standings_team"))
	mux.HandleFunc("/seasons", MetricsMiddleware(s.seasonsHandler.HandleStart, "seasons"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
