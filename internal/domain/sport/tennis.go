package sport

import "github.com/okian/courtside/internal/domain/model"

// Tennis action kinds.
const (
	ActionServiceWinner model.ActionKind = "service-winner"
	ActionWinner        model.ActionKind = "winner"
	ActionDropShot      model.ActionKind = "drop-shot"
	ActionVolleyWinner  model.ActionKind = "volley-winner"
	ActionDoubleFault   model.ActionKind = "double-fault"
	ActionUnforcedError model.ActionKind = "unforced-error"
	ActionForcedError   model.ActionKind = "forced-error"
	ActionNetError      model.ActionKind = "net-error"
	ActionFirstServeOut model.ActionKind = "first-serve-out"
	ActionGroundstroke  model.ActionKind = "groundstroke"
)

// Doubles court on the central 80%; singles sidelines leave a tenth of the
// surface per alley. The service line is 6.40m from the net on an 11.885m half.
const (
	tennisCourtMin  = 0.1
	tennisSingles   = 0.2
	tennisServiceDX = 0.4 * 6.40 / 11.885
)

func tennisRegions() []Region {
	court := Rect{MinX: tennisCourtMin, MinY: tennisCourtMin, MaxX: 1 - tennisCourtMin, MaxY: 1 - tennisCourtMin}
	serviceLine := 0.5 - tennisServiceDX
	left := []Region{
		{Zone: Zone{Side: model.SideA, Area: AreaServiceBox}, Rect: Rect{MinX: serviceLine, MinY: tennisSingles, MaxX: 0.5, MaxY: 1 - tennisSingles}},
		{Zone: Zone{Side: model.SideA, Area: AreaBackCourt}, Rect: Rect{MinX: court.MinX, MinY: tennisSingles, MaxX: serviceLine, MaxY: 1 - tennisSingles}},
		{Zone: Zone{Side: model.SideA, Area: AreaAlley}, Rect: Rect{MinX: court.MinX, MinY: court.MinY, MaxX: 0.5, MaxY: tennisSingles}},
		{Zone: Zone{Side: model.SideA, Area: AreaAlley}, Rect: Rect{MinX: court.MinX, MinY: 1 - tennisSingles, MaxX: 0.5, MaxY: court.MaxY}},
	}
	for _, r := range outStrips(court) {
		left = append(left, Region{Zone: Zone{Side: model.SideA, Area: AreaOut}, Rect: r})
	}
	return mirrored(left)
}

// Tennis returns the singles tennis rule set: games to four points with
// deuce, sets to six games and a seven point tie-break at six all.
func Tennis() *RuleSet {
	singles := []Area{AreaServiceBox, AreaBackCourt}
	serve := model.ActionDescriptor{ServeClass: true}
	return newRuleSet(TennisID, "Tennis",
		tennisRegions(),
		ScoreRules{Mode: Nested, SetsToWin: 2, GamesPerSet: 6, TieBreakAt: 6, TieBreakPoints: 7, HasServe: true},
		ActionRule{Kind: ActionAce, Category: model.CategoryScored, Placement: place(OpponentSide, AreaServiceBox), Descriptor: serve},
		ActionRule{Kind: ActionServiceWinner, Category: model.CategoryScored, Placement: place(OpponentSide, AreaServiceBox), Descriptor: serve},
		ActionRule{Kind: ActionWinner, Category: model.CategoryScored, Placement: place(OpponentSide, singles...)},
		ActionRule{Kind: ActionDropShot, Category: model.CategoryScored, Placement: place(OpponentSide, AreaServiceBox)},
		ActionRule{Kind: ActionVolleyWinner, Category: model.CategoryScored, Placement: place(OpponentSide, singles...)},
		ActionRule{Kind: ActionDoubleFault, Category: model.CategoryFault, Placement: noPlacement, Descriptor: serve},
		ActionRule{Kind: ActionUnforcedError, Category: model.CategoryFault, Placement: place(OpponentSide, AreaOut, AreaAlley)},
		ActionRule{Kind: ActionForcedError, Category: model.CategoryFault, Placement: noPlacement},
		ActionRule{Kind: ActionNetError, Category: model.CategoryFault, Placement: place(OwnSide, AreaServiceBox)},
		ActionRule{Kind: ActionFirstServeOut, Category: model.CategoryNeutral, Placement: noPlacement, Descriptor: model.ActionDescriptor{ServeClass: true, NoAttribution: true}},
		ActionRule{Kind: ActionGroundstroke, Category: model.CategoryNeutral, Placement: place(OpponentSide, singles...), Descriptor: model.ActionDescriptor{RequiresDirection: true, RequiresRating: true}},
		timeout,
	)
}
