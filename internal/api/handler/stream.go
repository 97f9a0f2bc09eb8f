package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mcoot/hockeytracker/internal/dependencies/clock"
	"github.com/mcoot/hockeytracker/internal/services/match"
	"github.com/mcoot/hockeytracker/internal/sse"
)

// StreamHandler serves live match updates over server-sent events
type StreamHandler struct {
	matches match.ControllerInterface
	hubs    *sse.HubManager
	clock   clock.Clock
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(matches match.ControllerInterface, hubs *sse.HubManager, clk clock.Clock) *StreamHandler {
	return &StreamHandler{matches: matches, hubs: hubs, clock: clk}
}

// Stream handles GET /api/v1/matches/{match_id}/stream
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	m, err := h.matches.GetMatch(r.Context(), matchID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	initial, err := sse.SnapshotFrame(*m, clock.NowMs(h.clock))
	if err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubs.GetOrCreateHub(m.ID)
	sse.ServeSSE(w, r, hub, uuid.NewString(), initial)
}
