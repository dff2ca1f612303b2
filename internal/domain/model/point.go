// Package model contains domain models passed between layers.
package model

import "time"

// Side identifies one of the two teams of a match.
type Side string

// Sides. SideA always occupies the left half of the canonical court.
const (
	SideNone Side = ""
	SideA    Side = "a"
	SideB    Side = "b"
)

// Opponent returns the other side; SideNone has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return SideNone
	}
}

// Valid reports whether s names a team.
func (s Side) Valid() bool { return s == SideA || s == SideB }

// Category classifies the outcome of an action.
type Category string

// Point categories.
const (
	CategoryScored  Category = "scored"
	CategoryFault   Category = "fault"
	CategoryNeutral Category = "neutral"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryScored || c == CategoryFault || c == CategoryNeutral
}

// Concludes reports whether an action of this category ends a rally.
func (c Category) Concludes() bool { return c == CategoryScored || c == CategoryFault }

// Rating is the optional quality grade of an action.
type Rating string

// Quality ratings.
const (
	RatingNone     Rating = ""
	RatingNegative Rating = "negative"
	RatingNeutral  Rating = "neutral"
	RatingPositive Rating = "positive"
)

// Valid reports whether r is a selectable rating.
func (r Rating) Valid() bool {
	return r == RatingNegative || r == RatingNeutral || r == RatingPositive
}

// ActionKind names a sport-specific action such as "attack" or "ace".
type ActionKind string

// Midpoint is the sentinel coordinate used for actions committed without placement.
const Midpoint = 0.5

// Direction holds the origin and destination of a two-touch action.
type Direction struct {
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

// RallyAction is one touch within a multi-touch rally.
type RallyAction struct {
	ID          string     `json:"id"`
	Team        Side       `json:"team"`
	Category    Category   `json:"category"`
	Action      ActionKind `json:"action"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	CreatedAt   time.Time  `json:"created_at"`
	PlayerID    string     `json:"player_id,omitempty"`
	Rating      Rating     `json:"rating,omitempty"`
	Label       string     `json:"label,omitempty"`
	Symbol      string     `json:"symbol,omitempty"`
	HideOnCourt bool       `json:"hide_on_court,omitempty"`
	Value       int        `json:"value,omitempty"`
	Direction   *Direction `json:"direction,omitempty"`
}

// Point is a committed entry of the point log.
//
// Team is the side that performed the action. A scored point credits Team,
// a fault credits Team's opponent and a neutral point credits nobody.
type Point struct {
	ID           string        `json:"id"`
	Team         Side          `json:"team"`
	Category     Category      `json:"category"`
	Action       ActionKind    `json:"action"`
	X            float64       `json:"x"`
	Y            float64       `json:"y"`
	CreatedAt    time.Time     `json:"created_at"`
	RallyActions []RallyAction `json:"rally_actions,omitempty"`
	Direction    *Direction    `json:"direction,omitempty"`
	PlayerID     string        `json:"player_id,omitempty"`
	Rating       Rating        `json:"rating,omitempty"`
	Label        string        `json:"label,omitempty"`
	Symbol       string        `json:"symbol,omitempty"`
	HideOnCourt  bool          `json:"hide_on_court,omitempty"`
	Value        int           `json:"value,omitempty"`
}

// Winner returns the side credited with the point.
func (p Point) Winner() Side {
	switch p.Category {
	case CategoryScored:
		return p.Team
	case CategoryFault:
		return p.Team.Opponent()
	default:
		return SideNone
	}
}

// Worth returns the point value, defaulting to one when unset.
func (p Point) Worth() int {
	if p.Value > 0 {
		return p.Value
	}
	return 1
}

// AsRallyAction converts the point into a single rally action.
func (p Point) AsRallyAction() RallyAction {
	return RallyAction{
		ID:          p.ID,
		Team:        p.Team,
		Category:    p.Category,
		Action:      p.Action,
		X:           p.X,
		Y:           p.Y,
		CreatedAt:   p.CreatedAt,
		PlayerID:    p.PlayerID,
		Rating:      p.Rating,
		Label:       p.Label,
		Symbol:      p.Symbol,
		HideOnCourt: p.HideOnCourt,
		Value:       p.Value,
		Direction:   p.Direction,
	}
}

// PointFromAction builds a point whose own fields mirror a concluding action.
func PointFromAction(a RallyAction) Point {
	return Point{
		ID:          a.ID,
		Team:        a.Team,
		Category:    a.Category,
		Action:      a.Action,
		X:           a.X,
		Y:           a.Y,
		CreatedAt:   a.CreatedAt,
		PlayerID:    a.PlayerID,
		Rating:      a.Rating,
		Label:       a.Label,
		Symbol:      a.Symbol,
		HideOnCourt: a.HideOnCourt,
		Value:       a.Value,
		Direction:   a.Direction,
	}
}

// ActionDescriptor carries the per-action flags chosen with a selection.
type ActionDescriptor struct {
	Label             string `json:"label,omitempty"`
	Symbol            string `json:"symbol,omitempty"`
	HideOnCourt       bool   `json:"hide_on_court,omitempty"`
	RequiresDirection bool   `json:"requires_direction,omitempty"`
	RequiresRating    bool   `json:"requires_rating,omitempty"`
	// NoAttribution disables the player prompt for this action.
	NoAttribution bool `json:"no_attribution,omitempty"`
	// CourtIndependent commits the action without placement.
	CourtIndependent bool `json:"court_independent,omitempty"`
	// ServeClass narrows attribution to the serving side.
	ServeClass  bool   `json:"serve_class,omitempty"`
	PausesClock bool   `json:"pauses_clock,omitempty"`
	Value       int    `json:"value,omitempty"`
	Rating      Rating `json:"rating,omitempty"`
}

// Selection is the operator's in-progress choice.
type Selection struct {
	Team       Side             `json:"team"`
	Category   Category         `json:"category"`
	Action     ActionKind       `json:"action"`
	Descriptor ActionDescriptor `json:"descriptor"`
}
