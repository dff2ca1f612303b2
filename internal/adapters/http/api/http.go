// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/sport"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateMatch(ctx context.Context, req service.CreateRequest) (match.View, error)
	View(ctx context.Context, id string) (match.View, error)
	Apply(ctx context.Context, id string, cmd service.Command) (service.Outcome, error)
	Regions(ctx context.Context, id string) ([]sport.Region, error)
	List(ctx context.Context) ([]service.Summary, error)
	Delete(ctx context.Context, id string) error
	Sports() []string
}

// LiveServer upgrades a request into a live feed of one match.
type LiveServer interface {
	Serve(w http.ResponseWriter, r *http.Request, matchID string, initial match.View)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	matchesHandler  *MatchesHandler
	commandsHandler *CommandsHandler
}

// NewServer creates a new API server with all handlers. live may be nil.
func NewServer(deps Dependencies, statsProvider StatsProvider, live LiveServer) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		matchesHandler:  NewMatchesHandler(deps, live),
		commandsHandler: NewCommandsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /sports", MetricsMiddleware(s.matchesHandler.HandleSports, "sports"))

	mux.HandleFunc("POST /matches", MetricsMiddleware(s.matchesHandler.HandleCreate, "matches"))
	mux.HandleFunc("GET /matches", MetricsMiddleware(s.matchesHandler.HandleList, "matches"))
	mux.HandleFunc("GET /matches/{id}", MetricsMiddleware(s.matchesHandler.HandleGet, "match"))
	mux.HandleFunc("DELETE /matches/{id}", MetricsMiddleware(s.matchesHandler.HandleDelete, "match"))
	mux.HandleFunc("GET /matches/{id}/regions", MetricsMiddleware(s.matchesHandler.HandleRegions, "regions"))
	mux.HandleFunc("POST /matches/{id}/commands", MetricsMiddleware(s.commandsHandler.HandlePostCommand, "commands"))
	// The live route bypasses MetricsMiddleware: its wrapper cannot hijack.
	mux.HandleFunc("GET /matches/{id}/live", s.matchesHandler.HandleLive)
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

// writeServiceError maps service and domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrMatchExists):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, service.ErrInvalidMatch),
		errors.Is(err, match.ErrInvalidTransition),
		errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
