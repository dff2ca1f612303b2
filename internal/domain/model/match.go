package model

import "time"

// Player is a roster entry. Ghost marks a player kept only because
// committed points still reference it.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number *int   `json:"number,omitempty"`
	Ghost  bool   `json:"ghost,omitempty"`
}

// TeamNames holds the display names of both sides.
type TeamNames struct {
	A string `json:"a"`
	B string `json:"b"`
}

// SetScore is the final score snapshot of a set.
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Set is an immutable record of a finished set.
type Set struct {
	ID       string        `json:"id"`
	Number   int           `json:"number"`
	Points   []Point       `json:"points"`
	Score    SetScore      `json:"score"`
	Winner   Side          `json:"winner,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Format tunes per-match set rules; zero fields fall back to sport defaults.
type Format struct {
	SetsToWin         int `json:"sets_to_win,omitempty" koanf:"sets_to_win"`
	PointsPerSet      int `json:"points_per_set,omitempty" koanf:"points_per_set"`
	DecidingSetPoints int `json:"deciding_set_points,omitempty" koanf:"deciding_set_points"`
}

// MatchConfig is the configuration supplied when a match is created.
type MatchConfig struct {
	Sport           string `json:"sport"`
	PerformanceMode bool   `json:"performance_mode"`
	HasCourt        bool   `json:"has_court"`
	InitialServer   Side   `json:"initial_server,omitempty"`
	// PrimarySide is the side whose roster is tracked for attribution.
	PrimarySide Side   `json:"primary_side,omitempty"`
	Format      Format `json:"format"`
}

// Snapshot is the persisted shape of a match session.
type Snapshot struct {
	MatchID          string      `json:"match_id"`
	Config           MatchConfig `json:"config"`
	Points           []Point     `json:"points"`
	CompletedSets    []Set       `json:"completed_sets"`
	CurrentSetNumber int         `json:"current_set_number"`
	TeamNames        TeamNames   `json:"team_names"`
	SidesSwapped     bool        `json:"sides_swapped"`
	ChronoSeconds    int64       `json:"chrono_seconds"`
	Roster           []Player    `json:"roster"`
	Finished         bool        `json:"finished,omitempty"`
	SavedAt          time.Time   `json:"saved_at"`
}

// RetainReferencedPlayers returns roster plus every known player that is no
// longer on the roster but is still referenced by a committed point.
func RetainReferencedPlayers(roster, known []Player, sets []Set, points []Point) []Player {
	referenced := make(map[string]struct{})
	mark := func(ps []Point) {
		for _, p := range ps {
			if p.PlayerID != "" {
				referenced[p.PlayerID] = struct{}{}
			}
			for _, a := range p.RallyActions {
				if a.PlayerID != "" {
					referenced[a.PlayerID] = struct{}{}
				}
			}
		}
	}
	for _, s := range sets {
		mark(s.Points)
	}
	mark(points)

	out := make([]Player, 0, len(roster))
	present := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		present[p.ID] = struct{}{}
		out = append(out, p)
	}
	for _, p := range known {
		if _, ok := present[p.ID]; ok {
			continue
		}
		if _, ok := referenced[p.ID]; !ok {
			continue
		}
		p.Ghost = true
		present[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
