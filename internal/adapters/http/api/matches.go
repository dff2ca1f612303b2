package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	service "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/domain/sport"
)

// MatchesHandler serves match lifecycle and read routes.
type MatchesHandler struct {
	deps Dependencies
	live LiveServer
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies, live LiveServer) *MatchesHandler {
	return &MatchesHandler{deps: deps, live: live}
}

type listResponse struct {
	Matches []service.Summary `json:"matches"`
}

type regionsResponse struct {
	MatchID string         `json:"match_id"`
	Regions []sport.Region `json:"regions"`
}

// HandleCreate handles POST /matches requests.
func (h *MatchesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	view, err := h.deps.CreateMatch(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleList handles GET /matches requests.
func (h *MatchesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []service.Summary{}
	}
	writeJSON(w, http.StatusOK, listResponse{Matches: list})
}

// HandleGet handles GET /matches/{id} requests.
func (h *MatchesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.View(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleDelete handles DELETE /matches/{id} requests.
func (h *MatchesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRegions handles GET /matches/{id}/regions requests.
func (h *MatchesHandler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	regions, err := h.deps.Regions(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if regions == nil {
		regions = []sport.Region{}
	}
	writeJSON(w, http.StatusOK, regionsResponse{MatchID: id, Regions: regions})
}

// HandleSports handles GET /sports requests.
func (h *MatchesHandler) HandleSports(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sports": h.deps.Sports()})
}

// HandleLive handles GET /matches/{id}/live websocket upgrades.
func (h *MatchesHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	if h.live == nil {
		writeError(w, http.StatusNotFound, "not_found", ErrLiveDisabled)
		return
	}
	id := r.PathValue("id")
	view, err := h.deps.View(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.live.Serve(w, r, id, view)
}
