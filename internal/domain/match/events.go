package match

import (
	"time"

	"github.com/okian/courtside/internal/domain/model"
)

// Event is an operator or collaborator input to Reduce.
type Event interface {
	// Name identifies the event kind in logs and metrics.
	Name() string
}

// SelectAction chooses team, category and action. A nil Descriptor uses the
// catalog default; actions missing from the catalog require one.
type SelectAction struct {
	Team       model.Side
	Category   model.Category
	Action     model.ActionKind
	Descriptor *model.ActionDescriptor
}

// CancelSelection abandons the pending selection.
type CancelSelection struct{}

// PlaceOnCourt places the selected action at physical coordinates.
type PlaceOnCourt struct {
	X float64
	Y float64
}

// Undo reverts the most recent committed entry.
type Undo struct{}

// EndSet archives the current point log as a finished set.
type EndSet struct {
	Elapsed time.Duration
}

// StartNewSet opens the next set after EndSet.
type StartNewSet struct{}

// FinishMatch archives any points still in play and closes the match.
type FinishMatch struct {
	Elapsed time.Duration
}

// ResolveAttribution assigns the pending point to a candidate player.
type ResolveAttribution struct {
	PlayerID string
}

// SkipAttribution commits the pending point without a player.
type SkipAttribution struct{}

// SetQualityRating rates the pending action, or pre-selects a rating for
// the current selection.
type SetQualityRating struct {
	Rating model.Rating
}

// SwapSides flips the physical sides the teams occupy.
type SwapSides struct{}

// SetRoster replaces the tracked roster.
type SetRoster struct {
	Roster []model.Player
}

// DiscardEmptySets drops finished sets that hold no points.
type DiscardEmptySets struct{}

func (SelectAction) Name() string       { return "select_action" }
func (CancelSelection) Name() string    { return "cancel_selection" }
func (PlaceOnCourt) Name() string       { return "place_on_court" }
func (Undo) Name() string               { return "undo" }
func (EndSet) Name() string             { return "end_set" }
func (StartNewSet) Name() string        { return "start_new_set" }
func (FinishMatch) Name() string        { return "finish_match" }
func (ResolveAttribution) Name() string { return "resolve_attribution" }
func (SkipAttribution) Name() string    { return "skip_attribution" }
func (SetQualityRating) Name() string   { return "set_quality_rating" }
func (SwapSides) Name() string          { return "swap_sides" }
func (SetRoster) Name() string          { return "set_roster" }
func (DiscardEmptySets) Name() string   { return "discard_empty_sets" }

// Stamp carries the identifier and time given to anything an event creates.
type Stamp struct {
	ID string
	At time.Time
}

// Outcome classifies how Reduce handled an event.
type Outcome int

// Outcomes.
const (
	// Applied means the state changed.
	Applied Outcome = iota
	// Ignored means the event was not valid in the current state.
	Ignored
	// Rejected means a placement fell outside the permitted zones.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Rejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// Effect is a side effect the owner of the state must carry out.
type Effect int

// Effects.
const (
	// EffectChanged marks a change worth persisting and broadcasting.
	EffectChanged Effect = iota + 1
	EffectClockStart
	EffectClockPause
	EffectClockReset
)

// Result describes what one transition did.
type Result struct {
	Outcome Outcome
	Effects []Effect
	// Committed holds the point appended by the transition, if any.
	Committed *model.Point
}

// Has reports whether the result carries effect e.
func (r Result) Has(e Effect) bool {
	for _, x := range r.Effects {
		if x == e {
			return true
		}
	}
	return false
}

// Err maps the outcome onto a sentinel error; nil when applied.
func (r Result) Err() error {
	switch r.Outcome {
	case Applied:
		return nil
	case Rejected:
		return ErrZoneRejected
	default:
		return ErrInvalidTransition
	}
}

var (
	ignored  = Result{Outcome: Ignored}
	rejected = Result{Outcome: Rejected}
)

func applied(effects ...Effect) Result {
	return Result{Outcome: Applied, Effects: effects}
}
