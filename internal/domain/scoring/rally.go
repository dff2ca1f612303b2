package scoring

import (
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/sport"
)

// rally implements rally-point scoring: one point per concluded rally.
type rally struct {
	rules sport.ScoreRules
}

func (r rally) Derive(points []model.Point) Score {
	var s Score
	for _, p := range points {
		credit(&s, p.Winner(), 1)
	}
	return s
}

func (r rally) target(setNumber int) int {
	if r.rules.DecidingSetPoints > 0 && r.rules.SetsToWin > 0 && setNumber == 2*r.rules.SetsToWin-1 {
		return r.rules.DecidingSetPoints
	}
	return r.rules.PointsPerSet
}

func (r rally) SetComplete(points []model.Point, setNumber int) bool {
	target := r.target(setNumber)
	if target <= 0 {
		return false
	}
	s := r.Derive(points)
	hi, lo := s.A, s.B
	if lo > hi {
		hi, lo = lo, hi
	}
	if r.rules.Cap > 0 && hi >= r.rules.Cap {
		return true
	}
	return hi >= target && hi-lo >= r.rules.WinBy
}

func (r rally) ServingSide(points []model.Point, initial model.Side) model.Side {
	if w := lastWinner(points); w.Valid() {
		return w
	}
	return initial
}

// weighted sums the value of scored points; faults carry no value.
type weighted struct {
	rules sport.ScoreRules
}

func (w weighted) Derive(points []model.Point) Score {
	var s Score
	for _, p := range points {
		if p.Category == model.CategoryScored {
			credit(&s, p.Team, p.Worth())
		}
	}
	return s
}

// SetComplete is false: weighted sports end periods explicitly.
func (w weighted) SetComplete([]model.Point, int) bool { return false }

func (w weighted) ServingSide([]model.Point, model.Side) model.Side { return model.SideNone }
