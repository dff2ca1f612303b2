package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	service "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/model"
)

// commandRequest is the body of POST /matches/{id}/commands. Type names the
// event; the remaining fields are read according to it.
type commandRequest struct {
	CommandID  string                  `json:"command_id"`
	Type       string                  `json:"type"`
	Team       model.Side              `json:"team,omitempty"`
	Category   model.Category          `json:"category,omitempty"`
	Action     model.ActionKind        `json:"action,omitempty"`
	Descriptor *model.ActionDescriptor `json:"descriptor,omitempty"`
	X          *float64                `json:"x,omitempty"`
	Y          *float64                `json:"y,omitempty"`
	PlayerID   string                  `json:"player_id,omitempty"`
	Rating     model.Rating            `json:"rating,omitempty"`
	Roster     []model.Player          `json:"roster,omitempty"`
}

// event converts the request into an engine event.
func (c commandRequest) event() (match.Event, error) { //nolint:gocritic // hugeParam: request is a value
	switch strings.TrimSpace(c.Type) {
	case "select_action":
		return match.SelectAction{Team: c.Team, Category: c.Category, Action: c.Action, Descriptor: c.Descriptor}, nil
	case "cancel_selection":
		return match.CancelSelection{}, nil
	case "place_on_court":
		if c.X == nil || c.Y == nil {
			return nil, fmt.Errorf("%w: place_on_court needs x and y", ErrBadRequest)
		}
		return match.PlaceOnCourt{X: *c.X, Y: *c.Y}, nil
	case "undo":
		return match.Undo{}, nil
	case "end_set":
		return match.EndSet{}, nil
	case "start_new_set":
		return match.StartNewSet{}, nil
	case "finish_match":
		return match.FinishMatch{}, nil
	case "resolve_attribution":
		if c.PlayerID == "" {
			return nil, fmt.Errorf("%w: resolve_attribution needs player_id", ErrBadRequest)
		}
		return match.ResolveAttribution{PlayerID: c.PlayerID}, nil
	case "skip_attribution":
		return match.SkipAttribution{}, nil
	case "set_quality_rating":
		return match.SetQualityRating{Rating: c.Rating}, nil
	case "swap_sides":
		return match.SwapSides{}, nil
	case "set_roster":
		return match.SetRoster{Roster: c.Roster}, nil
	case "discard_empty_sets":
		return match.DiscardEmptySets{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, c.Type)
	}
}

// CommandsHandler applies commands to matches.
type CommandsHandler struct {
	deps Dependencies
}

// NewCommandsHandler creates a new commands handler.
func NewCommandsHandler(deps Dependencies) *CommandsHandler {
	return &CommandsHandler{deps: deps}
}

// HandlePostCommand handles POST /matches/{id}/commands requests. Ignored
// and rejected commands answer 200 with their outcome; the engine state is
// unchanged by them.
func (h *CommandsHandler) HandlePostCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	ev, err := req.event()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	out, err := h.deps.Apply(r.Context(), r.PathValue("id"), service.Command{ID: req.CommandID, Event: ev})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
