package match

import (
	"time"

	"github.com/okian/courtside/internal/domain/attribution"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pointlog"
	"github.com/okian/courtside/internal/domain/scoring"
	"github.com/okian/courtside/internal/domain/sport"
)

// Reduce applies ev to st and returns the next state. Invalid events leave
// the state untouched and report Ignored; illegal placements report Rejected.
func Reduce(reg *sport.Registry, st State, ev Event, stamp Stamp) (State, Result) {
	rs, ok := reg.Lookup(st.Config.Sport)
	if !ok {
		return st, ignored
	}
	r := reducer{rs: rs, rules: rs.Score.WithFormat(st.Config.Format), stamp: stamp}

	switch e := ev.(type) {
	case SelectAction:
		return r.selectAction(st, e)
	case CancelSelection:
		if st.Phase == PhaseIdle {
			return st, ignored
		}
		return idle(st), applied()
	case PlaceOnCourt:
		return r.placeOnCourt(st, e)
	case ResolveAttribution:
		return r.resolveAttribution(st, e.PlayerID, true)
	case SkipAttribution:
		return r.resolveAttribution(st, "", false)
	case SetQualityRating:
		return r.setQualityRating(st, e.Rating)
	case Undo:
		return r.undo(st)
	case EndSet:
		return r.endSet(st, e)
	case StartNewSet:
		if !st.SetOver || st.Finished {
			return st, ignored
		}
		st.SetNumber++
		st.SetOver = false
		return st, applied(EffectChanged, EffectClockReset)
	case FinishMatch:
		return r.finishMatch(st, e)
	case SwapSides:
		st.SidesSwapped = !st.SidesSwapped
		return st, applied(EffectChanged)
	case SetRoster:
		return r.setRoster(st, e.Roster)
	case DiscardEmptySets:
		return discardEmptySets(st)
	}
	return st, ignored
}

type reducer struct {
	rs    *sport.RuleSet
	rules sport.ScoreRules
	stamp Stamp
}

func (r reducer) selectAction(st State, e SelectAction) (State, Result) {
	if st.Finished || st.SetOver || !(st.Phase == PhaseIdle || st.Phase.placing()) {
		return st, ignored
	}
	if !e.Team.Valid() || !e.Category.Valid() || e.Action == "" {
		return st, ignored
	}
	desc, ok := r.descriptor(e)
	if !ok {
		return st, ignored
	}

	st = idle(st)
	st.Selection = model.Selection{Team: e.Team, Category: e.Category, Action: e.Action, Descriptor: desc}
	if !r.placementRequired(st) {
		return r.commit(st, r.newAction(st.Selection, model.Midpoint, model.Midpoint, nil, desc.Value))
	}
	if desc.RequiresDirection {
		st.Phase = PhaseDirectionOrigin
	} else {
		st.Phase = PhaseActionSelected
	}
	return st, applied()
}

// descriptor resolves the flags for a selection. Catalog actions must match
// their category; a caller descriptor overrides the display fields and rating
// while the catalog's behavioural flags and default value still apply.
func (r reducer) descriptor(e SelectAction) (model.ActionDescriptor, bool) {
	rule, known := r.rs.Action(e.Action)
	if !known {
		if e.Descriptor == nil {
			return model.ActionDescriptor{}, false
		}
		return *e.Descriptor, true
	}
	if rule.Category != e.Category {
		return model.ActionDescriptor{}, false
	}
	if e.Descriptor == nil {
		return rule.Descriptor, true
	}
	d := *e.Descriptor
	c := rule.Descriptor
	d.RequiresDirection = d.RequiresDirection || c.RequiresDirection
	d.RequiresRating = d.RequiresRating || c.RequiresRating
	d.NoAttribution = d.NoAttribution || c.NoAttribution
	d.CourtIndependent = d.CourtIndependent || c.CourtIndependent
	d.ServeClass = d.ServeClass || c.ServeClass
	d.PausesClock = d.PausesClock || c.PausesClock
	if d.Value == 0 {
		d.Value = c.Value
	}
	return d, true
}

func (r reducer) placementRequired(st State) bool {
	return st.Config.HasCourt && !st.Selection.Descriptor.CourtIndependent && r.rs.RequiresPlacement(st.Selection.Action)
}

func (r reducer) newAction(sel model.Selection, x, y float64, dir *model.Direction, value int) model.RallyAction {
	return model.RallyAction{
		ID:          r.stamp.ID,
		Team:        sel.Team,
		Category:    sel.Category,
		Action:      sel.Action,
		X:           x,
		Y:           y,
		CreatedAt:   r.stamp.At,
		Label:       sel.Descriptor.Label,
		Symbol:      sel.Descriptor.Symbol,
		HideOnCourt: sel.Descriptor.HideOnCourt,
		Value:       value,
		Direction:   dir,
	}
}

func (r reducer) placeOnCourt(st State, e PlaceOnCourt) (State, Result) {
	if !st.Phase.placing() {
		return st, ignored
	}
	if !sport.InSurface(e.X, e.Y) {
		return st, rejected
	}
	x, y := sport.Canonicalize(e.X, e.Y, st.SidesSwapped)
	if st.Phase == PhaseDirectionOrigin {
		st.Origin = &Coord{X: x, Y: y}
		st.Phase = PhaseDirectionDestination
		return st, applied()
	}

	sel := st.Selection
	zone := r.rs.Classify(x, y)
	ctx := sport.Context{
		Sport:    r.rs.ID,
		Action:   sel.Action,
		Category: sel.Category,
		Team:     sel.Team,
		Swapped:  st.SidesSwapped,
		X:        x,
		Y:        y,
	}
	if !r.rs.IsLegal(zone, ctx) {
		return st, rejected
	}

	var dir *model.Direction
	if st.Phase == PhaseDirectionDestination && st.Origin != nil {
		dir = &model.Direction{StartX: st.Origin.X, StartY: st.Origin.Y, EndX: x, EndY: y}
	}
	value := r.rs.PointValue(sel.Action, zone, sel.Descriptor.Value)
	return r.commit(st, r.newAction(sel, x, y, dir, value))
}

// commit routes a finished action through attribution and rating before
// appending it. Ratings only attach to concluding or direction actions.
func (r reducer) commit(st State, action model.RallyAction) (State, Result) {
	desc := st.Selection.Descriptor
	concludes := action.Category.Concludes() || !st.Config.PerformanceMode
	rateable := concludes || action.Direction != nil
	if rateable && desc.Rating.Valid() {
		action.Rating = desc.Rating
	}
	pend := Pending{
		Action:      action,
		Concludes:   concludes,
		NeedsRating: rateable && desc.RequiresRating && action.Rating == model.RatingNone,
	}
	st.Origin = nil

	if concludes {
		dec := attribution.Evaluate(attribution.Input{
			Point:       model.PointFromAction(action),
			Descriptor:  desc,
			Roster:      st.Roster,
			ServingSide: servingSide(st, r.rules),
			Primary:     st.Config.PrimarySide,
		})
		if dec.AutoPlayer != "" {
			pend.Action.PlayerID = dec.AutoPlayer
		}
		if dec.Required {
			st.Phase = PhaseAttributionPending
			st.Pending = &pend
			st.Candidates = dec.Candidates
			return st, applied()
		}
	}
	if pend.NeedsRating {
		st.Phase = PhaseRatingPending
		st.Pending = &pend
		return st, applied()
	}
	return r.finalize(st, pend)
}

func (r reducer) finalize(st State, pend Pending) (State, Result) {
	res := applied(EffectChanged)
	switch {
	case pend.Concludes && st.Config.PerformanceMode:
		log, rr := st.Log.StartOrContinueRally(pend.Action)
		if rr.Concluded {
			st.Log = log.AppendPoint(rr.Point)
			p := rr.Point
			res.Committed = &p
		} else {
			st.Log = log
		}
	case pend.Concludes:
		p := model.PointFromAction(pend.Action)
		st.Log = st.Log.AppendPoint(p)
		res.Committed = &p
	default:
		st.Log, _ = st.Log.StartOrContinueRally(pend.Action)
	}

	if st.Selection.Descriptor.PausesClock {
		if st.ClockRunning {
			st.ClockRunning = false
			res.Effects = append(res.Effects, EffectClockPause)
		}
	} else if !st.ClockRunning {
		st.ClockRunning = true
		res.Effects = append(res.Effects, EffectClockStart)
	}
	return idle(st), res
}

func (r reducer) resolveAttribution(st State, playerID string, assign bool) (State, Result) {
	if st.Phase != PhaseAttributionPending || st.Pending == nil {
		return st, ignored
	}
	if assign && !attribution.Contains(st.Candidates, playerID) {
		return st, ignored
	}
	pend := *st.Pending
	pend.Action.PlayerID = playerID
	st.Candidates = nil
	if pend.NeedsRating {
		st.Phase = PhaseRatingPending
		st.Pending = &pend
		return st, applied()
	}
	return r.finalize(st, pend)
}

func (r reducer) setQualityRating(st State, rating model.Rating) (State, Result) {
	if !rating.Valid() {
		return st, ignored
	}
	switch {
	case st.Phase == PhaseRatingPending && st.Pending != nil:
		pend := *st.Pending
		pend.Action.Rating = rating
		pend.NeedsRating = false
		return r.finalize(st, pend)
	case st.Phase == PhaseAttributionPending && st.Pending != nil:
		pend := *st.Pending
		if !pend.Concludes && pend.Action.Direction == nil {
			return st, ignored
		}
		pend.Action.Rating = rating
		pend.NeedsRating = false
		st.Pending = &pend
		return st, applied()
	case st.Phase.placing():
		st.Selection.Descriptor.Rating = rating
		return st, applied()
	}
	return st, ignored
}

// undo drops any pending selection, then removes the latest log entry.
func (r reducer) undo(st State) (State, Result) {
	pending := st.Phase != PhaseIdle
	log, kind := st.Log.Undo()
	if kind == pointlog.UndoNone {
		if pending {
			return idle(st), applied()
		}
		return st, ignored
	}
	st = idle(st)
	st.Log = log
	return st, applied(EffectChanged)
}

func (r reducer) endSet(st State, e EndSet) (State, Result) {
	if st.Phase != PhaseIdle || st.Log.RallyOpen() || st.SetOver || st.Finished {
		return st, ignored
	}
	st = r.archive(st, e.Elapsed)
	st.SetOver = true
	res := applied(EffectChanged)
	if st.ClockRunning {
		st.ClockRunning = false
		res.Effects = append(res.Effects, EffectClockPause)
	}
	return st, res
}

func (r reducer) finishMatch(st State, e FinishMatch) (State, Result) {
	if st.Finished || st.Phase != PhaseIdle || st.Log.RallyOpen() {
		return st, ignored
	}
	if !st.SetOver && st.Log.Len() > 0 {
		st = r.archive(st, e.Elapsed)
		st.SetOver = true
	}
	st.Finished = true
	res := applied(EffectChanged)
	if st.ClockRunning {
		st.ClockRunning = false
		res.Effects = append(res.Effects, EffectClockPause)
	}
	return st, res
}

// archive turns the current log into a finished set and empties the log.
func (r reducer) archive(st State, elapsed time.Duration) State {
	points := st.Log.Points()
	score := scoring.Derive(points, r.rules)
	final := model.SetScore{A: score.A, B: score.B}
	if score.Games != nil {
		final = model.SetScore{A: score.Games.A, B: score.Games.B}
	}
	set := model.Set{
		ID:       r.stamp.ID,
		Number:   st.SetNumber,
		Points:   points,
		Score:    final,
		Winner:   scoring.SetWinner(score),
		Duration: elapsed,
	}
	sets := make([]model.Set, 0, len(st.Sets)+1)
	sets = append(sets, st.Sets...)
	st.Sets = append(sets, set)
	st.Log = pointlog.Log{}
	return st
}

func discardEmptySets(st State) (State, Result) {
	kept := make([]model.Set, 0, len(st.Sets))
	for _, s := range st.Sets {
		if len(s.Points) > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(st.Sets) {
		return st, ignored
	}
	for i := range kept {
		kept[i].Number = i + 1
	}
	st.Sets = kept
	switch {
	case st.SetOver && len(kept) > 0:
		st.SetNumber = len(kept)
	case st.SetOver:
		st.SetOver = false
		st.SetNumber = 1
	default:
		st.SetNumber = len(kept) + 1
	}
	return st, applied(EffectChanged)
}

// setRoster replaces the roster. A pending prompt keeps only the candidates
// still on it and settles on its own once one or none remain.
func (r reducer) setRoster(st State, roster []model.Player) (State, Result) {
	st = withRoster(st, roster)
	if st.Phase != PhaseAttributionPending || st.Pending == nil {
		return st, applied(EffectChanged)
	}
	st.Candidates = keepCandidates(st.Candidates, st.Roster)
	var res Result
	switch len(st.Candidates) {
	case 0:
		st, res = r.resolveAttribution(st, "", false)
	case 1:
		st, res = r.resolveAttribution(st, st.Candidates[0].ID, true)
	default:
		return st, applied(EffectChanged)
	}
	if !res.Has(EffectChanged) {
		res.Effects = append(res.Effects, EffectChanged)
	}
	return st, res
}

func keepCandidates(candidates, roster []model.Player) []model.Player {
	var out []model.Player
	for _, c := range candidates {
		if attribution.Contains(roster, c.ID) {
			out = append(out, c)
		}
	}
	return out
}
