package sport

import "github.com/okian/courtside/internal/domain/model"

// Sport identifiers.
const (
	VolleyballID = "volleyball"
	BadmintonID  = "badminton"
	BasketballID = "basketball"
	TennisID     = "tennis"
)

// Volleyball action kinds.
const (
	ActionAttack       model.ActionKind = "attack"
	ActionAce          model.ActionKind = "ace"
	ActionBlock        model.ActionKind = "block"
	ActionTip          model.ActionKind = "tip"
	ActionAttackOut    model.ActionKind = "attack-out"
	ActionServeOut     model.ActionKind = "serve-out"
	ActionServeNet     model.ActionKind = "serve-net"
	ActionNetTouch     model.ActionKind = "net-touch"
	ActionBallHandling model.ActionKind = "ball-handling"
	ActionRotation     model.ActionKind = "rotation"
	ActionServe        model.ActionKind = "serve"
	ActionReception    model.ActionKind = "reception"
	ActionSet          model.ActionKind = "set"
	ActionDig          model.ActionKind = "dig"
	ActionFreeBall     model.ActionKind = "free-ball"
	ActionTimeout      model.ActionKind = "timeout"
)

// netCourt builds the partition shared by net sports: a near-net band and
// a back court per side, out of bounds everywhere else.
func netCourt(court Rect, frontDepth float64) []Region {
	left := []Region{
		{Zone: Zone{Side: model.SideA, Area: AreaNearNet}, Rect: Rect{MinX: 0.5 - frontDepth, MinY: court.MinY, MaxX: 0.5, MaxY: court.MaxY}},
		{Zone: Zone{Side: model.SideA, Area: AreaBackCourt}, Rect: Rect{MinX: court.MinX, MinY: court.MinY, MaxX: 0.5 - frontDepth, MaxY: court.MaxY}},
	}
	for _, r := range outStrips(court) {
		left = append(left, Region{Zone: Zone{Side: model.SideA, Area: AreaOut}, Rect: r})
	}
	return mirrored(left)
}

var (
	inCourt  = []Area{AreaNearNet, AreaBackCourt}
	timeout  = ActionRule{Kind: ActionTimeout, Category: model.CategoryNeutral, Placement: noPlacement, Descriptor: model.ActionDescriptor{NoAttribution: true, PausesClock: true}}
	netInner = Rect{MinX: 0.1, MinY: 0.1, MaxX: 0.9, MaxY: 0.9}
)

// Volleyball returns the indoor volleyball rule set. The court spans the
// central 80% of the surface; the attack line sits a third of the half deep.
func Volleyball() *RuleSet {
	return newRuleSet(VolleyballID, "Volleyball",
		netCourt(netInner, 0.4/3),
		ScoreRules{Mode: RallyPoint, PointsPerSet: 25, DecidingSetPoints: 15, WinBy: 2, SetsToWin: 3, HasServe: true},
		ActionRule{Kind: ActionAttack, Category: model.CategoryScored, Placement: place(OpponentSide, inCourt...)},
		ActionRule{Kind: ActionAce, Category: model.CategoryScored, Placement: place(OpponentSide, inCourt...), Descriptor: model.ActionDescriptor{ServeClass: true}},
		ActionRule{Kind: ActionBlock, Category: model.CategoryScored, Placement: place(OpponentSide, AreaNearNet)},
		ActionRule{Kind: ActionTip, Category: model.CategoryScored, Placement: place(OpponentSide, inCourt...)},
		ActionRule{Kind: ActionAttackOut, Category: model.CategoryFault, Placement: place(OpponentSide, AreaOut)},
		ActionRule{Kind: ActionServeOut, Category: model.CategoryFault, Placement: place(OpponentSide, AreaOut), Descriptor: model.ActionDescriptor{ServeClass: true}},
		ActionRule{Kind: ActionServeNet, Category: model.CategoryFault, Placement: noPlacement, Descriptor: model.ActionDescriptor{ServeClass: true}},
		ActionRule{Kind: ActionNetTouch, Category: model.CategoryFault, Placement: place(OwnSide, AreaNearNet)},
		ActionRule{Kind: ActionBallHandling, Category: model.CategoryFault, Placement: noPlacement},
		ActionRule{Kind: ActionRotation, Category: model.CategoryFault, Placement: noPlacement, Descriptor: model.ActionDescriptor{NoAttribution: true}},
		ActionRule{Kind: ActionServe, Category: model.CategoryNeutral, Placement: place(OpponentSide, inCourt...), Descriptor: model.ActionDescriptor{RequiresDirection: true, ServeClass: true}},
		ActionRule{Kind: ActionReception, Category: model.CategoryNeutral, Placement: place(OwnSide), Descriptor: model.ActionDescriptor{RequiresRating: true}},
		ActionRule{Kind: ActionSet, Category: model.CategoryNeutral, Placement: place(OwnSide)},
		ActionRule{Kind: ActionDig, Category: model.CategoryNeutral, Placement: place(OwnSide)},
		ActionRule{Kind: ActionFreeBall, Category: model.CategoryNeutral, Placement: place(OpponentSide), Descriptor: model.ActionDescriptor{RequiresDirection: true}},
		timeout,
	)
}

// Badminton action kinds.
const (
	ActionSmash        model.ActionKind = "smash"
	ActionDrop         model.ActionKind = "drop"
	ActionClearWinner  model.ActionKind = "clear-winner"
	ActionNetKill      model.ActionKind = "net-kill"
	ActionServiceFault model.ActionKind = "service-fault"
	ActionShotOut      model.ActionKind = "shot-out"
	ActionIntoNet      model.ActionKind = "into-net"
	ActionClear        model.ActionKind = "clear"
	ActionLift         model.ActionKind = "lift"
)

// Badminton returns the badminton rule set: rally point to 21, win by two,
// capped at 30. The winner of a game serves first in the next. The front band ends at the short service line.
func Badminton() *RuleSet {
	return newRuleSet(BadmintonID, "Badminton",
		netCourt(netInner, 0.4*1.98/6.7),
		ScoreRules{Mode: RallyPoint, PointsPerSet: 21, WinBy: 2, Cap: 30, SetsToWin: 2, HasServe: true, WinnerServesNextSet: true},
		ActionRule{Kind: ActionSmash, Category: model.CategoryScored, Placement: place(OpponentSide, inCourt...)},
		ActionRule{Kind: ActionDrop, Category: model.CategoryScored, Placement: place(OpponentSide, AreaNearNet)},
		ActionRule{Kind: ActionClearWinner, Category: model.CategoryScored, Placement: place(OpponentSide, AreaBackCourt)},
		ActionRule{Kind: ActionNetKill, Category: model.CategoryScored, Placement: place(OpponentSide, AreaNearNet)},
		ActionRule{Kind: ActionServiceFault, Category: model.CategoryFault, Placement: noPlacement, Descriptor: model.ActionDescriptor{ServeClass: true}},
		ActionRule{Kind: ActionShotOut, Category: model.CategoryFault, Placement: place(OpponentSide, AreaOut)},
		ActionRule{Kind: ActionIntoNet, Category: model.CategoryFault, Placement: place(OwnSide, AreaNearNet)},
		ActionRule{Kind: ActionServe, Category: model.CategoryNeutral, Placement: place(OpponentSide, inCourt...), Descriptor: model.ActionDescriptor{RequiresDirection: true, ServeClass: true}},
		ActionRule{Kind: ActionClear, Category: model.CategoryNeutral, Placement: place(OpponentSide, AreaBackCourt), Descriptor: model.ActionDescriptor{RequiresDirection: true}},
		ActionRule{Kind: ActionLift, Category: model.CategoryNeutral, Placement: place(OpponentSide, inCourt...)},
		timeout,
	)
}
