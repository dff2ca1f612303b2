package sport

import "github.com/okian/courtside/internal/domain/model"

// Basketball action kinds.
const (
	ActionJumpShot     model.ActionKind = "jump-shot"
	ActionThreePointer model.ActionKind = "three-pointer"
	ActionLayup        model.ActionKind = "layup"
	ActionDunk         model.ActionKind = "dunk"
	ActionFreeThrow    model.ActionKind = "free-throw"
	ActionTurnover     model.ActionKind = "turnover"
	ActionFoul         model.ActionKind = "foul"
	ActionTravel       model.ActionKind = "travel"
	ActionOutOfBounds  model.ActionKind = "out-of-bounds"
	ActionRebound      model.ActionKind = "rebound"
	ActionAssist       model.ActionKind = "assist"
	ActionSteal        model.ActionKind = "steal"
	ActionMissedShot   model.ActionKind = "missed-shot"
)

// Court geometry for a 28m x 15m court drawn on the central 90% of the surface.
const (
	basketballMargin = 0.05
	basketballSpan   = 0.9
	basketOffset     = basketballSpan * 1.575 / 28
	threePointRX     = basketballSpan * 6.75 / 28
	threePointRY     = basketballSpan * 6.75 / 15
)

func basketballRegions() []Region {
	court := Rect{MinX: basketballMargin, MinY: basketballMargin, MaxX: 1 - basketballMargin, MaxY: 1 - basketballMargin}
	half := Rect{MinX: court.MinX, MinY: court.MinY, MaxX: 0.5, MaxY: court.MaxY}
	basketX := basketballMargin + basketOffset
	left := []Region{
		{Zone: Zone{Side: model.SideA, Area: AreaInsideArc}, Rect: half, Arc: &Arc{CX: basketX, CY: 0.5, RX: threePointRX, RY: threePointRY, Inside: true}},
		{Zone: Zone{Side: model.SideA, Area: AreaOutsideArc}, Rect: half, Arc: &Arc{CX: basketX, CY: 0.5, RX: threePointRX, RY: threePointRY, Inside: false}},
	}
	for _, r := range outStrips(court) {
		left = append(left, Region{Zone: Zone{Side: model.SideA, Area: AreaOut}, Rect: r})
	}
	return mirrored(left)
}

// Basketball returns the basketball rule set. Side A defends the left
// basket, so its shots land on the right half. Periods end explicitly.
func Basketball() *RuleSet {
	shotAreas := []Area{AreaInsideArc, AreaOutsideArc}
	return newRuleSet(BasketballID, "Basketball",
		basketballRegions(),
		ScoreRules{Mode: Weighted},
		ActionRule{Kind: ActionJumpShot, Category: model.CategoryScored, Placement: place(OpponentSide, shotAreas...), Descriptor: model.ActionDescriptor{Value: 2}, ValueByArea: map[Area]int{AreaInsideArc: 2, AreaOutsideArc: 3}},
		ActionRule{Kind: ActionThreePointer, Category: model.CategoryScored, Placement: place(OpponentSide, AreaOutsideArc), Descriptor: model.ActionDescriptor{Value: 3}},
		ActionRule{Kind: ActionLayup, Category: model.CategoryScored, Placement: place(OpponentSide, AreaInsideArc), Descriptor: model.ActionDescriptor{Value: 2}},
		ActionRule{Kind: ActionDunk, Category: model.CategoryScored, Placement: place(OpponentSide, AreaInsideArc), Descriptor: model.ActionDescriptor{Value: 2}},
		ActionRule{Kind: ActionFreeThrow, Category: model.CategoryScored, Placement: noPlacement, Descriptor: model.ActionDescriptor{Value: 1}},
		ActionRule{Kind: ActionTurnover, Category: model.CategoryFault, Placement: noPlacement},
		ActionRule{Kind: ActionFoul, Category: model.CategoryFault, Placement: place(AnySide, shotAreas...)},
		ActionRule{Kind: ActionTravel, Category: model.CategoryFault, Placement: noPlacement},
		ActionRule{Kind: ActionOutOfBounds, Category: model.CategoryFault, Placement: place(AnySide, AreaOut)},
		ActionRule{Kind: ActionRebound, Category: model.CategoryNeutral, Placement: place(AnySide, shotAreas...)},
		ActionRule{Kind: ActionAssist, Category: model.CategoryNeutral, Placement: noPlacement},
		ActionRule{Kind: ActionSteal, Category: model.CategoryNeutral, Placement: place(AnySide, shotAreas...)},
		ActionRule{Kind: ActionMissedShot, Category: model.CategoryNeutral, Placement: place(OpponentSide, shotAreas...), Descriptor: model.ActionDescriptor{RequiresRating: true}},
		timeout,
	)
}
