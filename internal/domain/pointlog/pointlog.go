// Package pointlog holds the append-only point history of the active set and
// the buffer of an in-progress rally.
//
// Log is a value type: every mutating method returns a new Log and leaves the
// receiver untouched, so callers can keep earlier states around.
package pointlog

import "github.com/okian/courtside/internal/domain/model"

// Log is the point history plus the open rally buffer.
type Log struct {
	points []model.Point
	rally  []model.RallyAction
}

// New builds a log from previously committed points.
func New(points []model.Point) Log {
	return Log{points: clonePoints(points)}
}

// Points returns a copy of the committed points.
func (l Log) Points() []model.Point { return clonePoints(l.points) }

// Rally returns a copy of the open rally buffer.
func (l Log) Rally() []model.RallyAction { return cloneActions(l.rally) }

// Len returns the number of committed points.
func (l Log) Len() int { return len(l.points) }

// RallyLen returns the number of buffered rally actions.
func (l Log) RallyLen() int { return len(l.rally) }

// RallyOpen reports whether a rally is in progress.
func (l Log) RallyOpen() bool { return len(l.rally) > 0 }

// Last returns the most recent point.
func (l Log) Last() (model.Point, bool) {
	if len(l.points) == 0 {
		return model.Point{}, false
	}
	return l.points[len(l.points)-1], true
}

// AppendPoint appends p and clears the rally buffer.
func (l Log) AppendPoint(p model.Point) Log {
	points := make([]model.Point, len(l.points), len(l.points)+1)
	copy(points, l.points)
	return Log{points: append(points, p)}
}

// RallyResult reports what StartOrContinueRally did with an action.
type RallyResult struct {
	// Concluded is true when the action closed the rally; Point then holds
	// the point to append.
	Concluded bool
	Point     model.Point
}

// StartOrContinueRally buffers a neutral action, or builds the point that a
// scored or fault action concludes. A concluded rally is not appended here:
// the buffer stays intact until AppendPoint so an abandoned commit leaves the
// rally as it was. Actions with an unknown category are ignored.
func (l Log) StartOrContinueRally(a model.RallyAction) (Log, RallyResult) {
	switch {
	case a.Category == model.CategoryNeutral:
		rally := make([]model.RallyAction, len(l.rally), len(l.rally)+1)
		copy(rally, l.rally)
		return Log{points: l.points, rally: append(rally, a)}, RallyResult{}
	case a.Category.Concludes():
		seq := make([]model.RallyAction, 0, len(l.rally)+1)
		seq = append(seq, l.rally...)
		seq = append(seq, a)
		p := model.PointFromAction(a)
		p.RallyActions = seq
		return l, RallyResult{Concluded: true, Point: p}
	default:
		return l, RallyResult{}
	}
}

// ReconstructRally rebuilds the rally implied by neutral points that
// preceded a concluding point in logs written without rally sequences.
// Non-neutral entries in priorNeutrals are skipped.
func ReconstructRally(priorNeutrals []model.Point, concluding model.Point) []model.RallyAction {
	if len(concluding.RallyActions) > 0 {
		return cloneActions(concluding.RallyActions)
	}
	out := make([]model.RallyAction, 0, len(priorNeutrals)+1)
	for _, p := range priorNeutrals {
		if p.Category == model.CategoryNeutral {
			out = append(out, p.AsRallyAction())
		}
	}
	return append(out, concluding.AsRallyAction())
}

// History returns the rally sequence of every concluding point of points, in
// order. Points carrying an explicit sequence keep it; others are rebuilt
// from the run of neutral points immediately before them.
func History(points []model.Point) [][]model.RallyAction {
	var (
		out [][]model.RallyAction
		run int
	)
	for i, p := range points {
		if p.Category == model.CategoryNeutral {
			run++
			continue
		}
		out = append(out, ReconstructRally(points[i-run:i], p))
		run = 0
	}
	return out
}

func clonePoints(in []model.Point) []model.Point {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.Point, len(in))
	copy(out, in)
	return out
}

func cloneActions(in []model.RallyAction) []model.RallyAction {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.RallyAction, len(in))
	copy(out, in)
	return out
}
