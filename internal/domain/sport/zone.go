package sport

import "github.com/okian/courtside/internal/domain/model"

// Area is the side-independent part of a zone.
type Area string

// Areas shared by the court partitions.
const (
	AreaNearNet    Area = "near_net"
	AreaBackCourt  Area = "back_court"
	AreaOut        Area = "out"
	AreaInsideArc  Area = "inside_arc"
	AreaOutsideArc Area = "outside_arc"
	AreaServiceBox Area = "service_box"
	AreaAlley      Area = "alley"
)

// Zone is a named court region owned by one side.
type Zone struct {
	Side model.Side `json:"side"`
	Area Area       `json:"area"`
}

// Relative names the side a placement rule refers to, seen from the actor.
type Relative int

// Placement references.
const (
	AnySide Relative = iota
	OwnSide
	OpponentSide
)

// Placement describes where an action may legally be placed.
type Placement struct {
	// None marks actions committed without placement.
	None  bool
	Side  Relative
	Areas []Area
}

func (p Placement) allows(zone Zone, actor model.Side) bool {
	if p.None {
		return true
	}
	switch p.Side {
	case OwnSide:
		if zone.Side != actor {
			return false
		}
	case OpponentSide:
		if zone.Side != actor.Opponent() {
			return false
		}
	}
	if len(p.Areas) == 0 {
		return true
	}
	for _, a := range p.Areas {
		if a == zone.Area {
			return true
		}
	}
	return false
}

func place(side Relative, areas ...Area) Placement { return Placement{Side: side, Areas: areas} }

var noPlacement = Placement{None: true}

// Context is the input to legality checks. Coordinates are canonical.
type Context struct {
	Sport    string
	Action   model.ActionKind
	Category model.Category
	Team     model.Side
	Swapped  bool
	X        float64
	Y        float64
}
