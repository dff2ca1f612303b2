package pointlog

// CanUndo reports whether Undo would change anything.
func (l Log) CanUndo() bool { return len(l.points) > 0 || len(l.rally) > 0 }

// UndoKind reports which tier an undo applied.
type UndoKind int

// Undo tiers, in precedence order.
const (
	UndoNone UndoKind = iota
	UndoRallyAction
	UndoReopenRally
	UndoPoint
)

// Undo reverts the most recent entry:
//  1. an open rally loses its last buffered action;
//  2. a last point that concluded a rally of two or more actions is removed
//     and its rally reopened without the concluding action;
//  3. otherwise the last point is removed.
//
// An empty log is returned unchanged with UndoNone.
func (l Log) Undo() (Log, UndoKind) {
	if n := len(l.rally); n > 0 {
		return Log{points: l.points, rally: cloneActions(l.rally[:n-1])}, UndoRallyAction
	}
	n := len(l.points)
	if n == 0 {
		return l, UndoNone
	}
	last := l.points[n-1]
	points := clonePoints(l.points[:n-1])
	if m := len(last.RallyActions); m > 1 {
		return Log{points: points, rally: cloneActions(last.RallyActions[:m-1])}, UndoReopenRally
	}
	return Log{points: points}, UndoPoint
}
