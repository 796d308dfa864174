package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type seasonRequest struct {
	Season int `json:"season"`
}

type ackResponse struct {
	Status string `json:"status"`
	Season int    `json:"season"`
}

// SeasonsHandler starts seasons.
type SeasonsHandler struct {
	deps SeasonStarter
}

// NewSeasonsHandler creates a seasons handler.
func NewSeasonsHandler(deps SeasonStarter) *SeasonsHandler {
	return &SeasonsHandler{deps: deps}
}

// HandleStart handles POST /seasons with {"season": n}. The season runs in
// the background; the table is replaced when it finishes.
func (h *SeasonsHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req seasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if req.Season < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: season must be at least 1", ErrBadRequest))
		return
	}
	if err := h.deps.StartSeason(r.Context(), req.Season); err != nil {
		if errors.Is(err, ErrBusy) {
			writeError(w, http.StatusConflict, "busy", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Season: req.Season})
}
