// Package match implements the point recording state machine.
//
// Reduce is a pure transition function over State. Engine owns one State,
// stamps events with time and identifiers, drives the match clock and
// exposes the operations and derived views used by the application.
package match

import (
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pointlog"
)

// Phase is the orchestrator's position in the selection flow.
type Phase string

// Phases.
const (
	PhaseIdle                 Phase = "idle"
	PhaseActionSelected       Phase = "action_selected"
	PhaseDirectionOrigin      Phase = "direction_origin"
	PhaseDirectionDestination Phase = "direction_destination"
	PhaseAttributionPending   Phase = "attribution_pending"
	PhaseRatingPending        Phase = "rating_pending"
)

// placing reports whether the phase accepts court placements.
func (p Phase) placing() bool {
	return p == PhaseActionSelected || p == PhaseDirectionOrigin || p == PhaseDirectionDestination
}

// Coord is a canonical court coordinate.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pending is an action waiting for attribution or rating before commit.
type Pending struct {
	Action model.RallyAction
	// Concludes is true when committing the action appends a point.
	Concludes   bool
	NeedsRating bool
}

// State is the complete orchestrator state. Values are never mutated in
// place by Reduce; slices are replaced, not appended to.
type State struct {
	MatchID   string
	Config    model.MatchConfig
	TeamNames model.TeamNames

	Phase      Phase
	Selection  model.Selection
	Origin     *Coord
	Pending    *Pending
	Candidates []model.Player

	Log          pointlog.Log
	Sets         []model.Set
	SetNumber    int
	SetOver      bool
	Finished     bool
	SidesSwapped bool

	Roster []model.Player
	// Known keeps every player ever seen on the roster.
	Known        []model.Player
	ClockRunning bool
}

// NewState returns the state of a fresh match.
func NewState(matchID string, cfg model.MatchConfig, names model.TeamNames, roster []model.Player) State {
	st := State{
		MatchID:   matchID,
		Config:    cfg,
		TeamNames: names,
		Phase:     PhaseIdle,
		SetNumber: 1,
	}
	return withRoster(st, roster)
}

// FromSnapshot rebuilds a state from a persisted snapshot. An open rally or
// pending selection is never persisted, so the result is always Idle.
func FromSnapshot(s model.Snapshot) State {
	st := State{
		MatchID:      s.MatchID,
		Config:       s.Config,
		TeamNames:    s.TeamNames,
		Phase:        PhaseIdle,
		Log:          pointlog.New(s.Points),
		Sets:         append([]model.Set(nil), s.CompletedSets...),
		SetNumber:    s.CurrentSetNumber,
		Finished:     s.Finished,
		SidesSwapped: s.SidesSwapped,
	}
	if st.SetNumber < 1 {
		st.SetNumber = len(st.Sets) + 1
	}
	if n := len(st.Sets); n > 0 && st.Sets[n-1].Number == st.SetNumber && st.Log.Len() == 0 {
		st.SetOver = true
	}
	var active []model.Player
	for _, p := range s.Roster {
		p.Ghost = false
		st.Known = append(st.Known, p)
	}
	for _, p := range s.Roster {
		if !p.Ghost {
			active = append(active, p)
		}
	}
	st.Roster = active
	return st
}

// withRoster replaces the roster and remembers every player on it.
func withRoster(st State, roster []model.Player) State {
	active := make([]model.Player, 0, len(roster))
	known := append([]model.Player(nil), st.Known...)
	index := make(map[string]int, len(known))
	for i, p := range known {
		index[p.ID] = i
	}
	for _, p := range roster {
		if p.ID == "" || p.Ghost {
			continue
		}
		active = append(active, p)
		if i, ok := index[p.ID]; ok {
			known[i] = p
			continue
		}
		index[p.ID] = len(known)
		known = append(known, p)
	}
	st.Roster = active
	st.Known = known
	return st
}

// idle drops every pending part of the selection.
func idle(st State) State {
	st.Phase = PhaseIdle
	st.Selection = model.Selection{}
	st.Origin = nil
	st.Pending = nil
	st.Candidates = nil
	return st
}
