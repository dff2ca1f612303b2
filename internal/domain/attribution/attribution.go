// Package attribution decides whether a concluding point needs the operator
// to pick the roster player who performed it.
package attribution

import "github.com/okian/courtside/internal/domain/model"

// Input is everything the gate looks at for one point.
type Input struct {
	Point      model.Point
	Descriptor model.ActionDescriptor
	Roster     []model.Player
	// ServingSide is the side serving when the point was played. When it is
	// unknown the acting side is taken as the server.
	ServingSide model.Side
	// Primary is the tracked side the roster belongs to. Defaults to SideA.
	Primary model.Side
}

// Decision is the gate's verdict.
type Decision struct {
	// Required is true when the operator must choose among Candidates.
	Required   bool
	Candidates []model.Player
	// AutoPlayer is set when exactly one candidate qualified.
	AutoPlayer string
}

// Evaluate applies the attribution rules:
//   - nothing is asked for an empty roster or an action that disables it;
//   - scored and fault points qualify when the primary side performed them;
//   - neutral points always qualify;
//   - serve-class actions qualify, but only the serving side's players are
//     candidates, so an opponent serve yields none.
//
// Zero candidates skip attribution and one candidate is assigned directly.
func Evaluate(in Input) Decision {
	if in.Descriptor.NoAttribution {
		return Decision{}
	}
	primary := in.Primary
	if !primary.Valid() {
		primary = model.SideA
	}

	relevant := in.Point.Category == model.CategoryNeutral ||
		(in.Point.Category.Concludes() && in.Point.Team == primary) ||
		in.Descriptor.ServeClass
	if !relevant {
		return Decision{}
	}

	candidates := Candidates(in.Roster)
	if in.Descriptor.ServeClass && server(in) != primary {
		candidates = nil
	}

	switch len(candidates) {
	case 0:
		return Decision{}
	case 1:
		return Decision{AutoPlayer: candidates[0].ID}
	default:
		return Decision{Required: true, Candidates: candidates}
	}
}

// server is the side that performed a serve-class action.
func server(in Input) model.Side {
	if in.ServingSide.Valid() {
		return in.ServingSide
	}
	return in.Point.Team
}

// Candidates returns the selectable players of roster. Ghost players only
// exist to keep history readable and are never offered.
func Candidates(roster []model.Player) []model.Player {
	out := make([]model.Player, 0, len(roster))
	for _, p := range roster {
		if p.Ghost || p.ID == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Contains reports whether id is one of candidates.
func Contains(candidates []model.Player, id string) bool {
	for _, p := range candidates {
		if p.ID == id {
			return true
		}
	}
	return false
}
