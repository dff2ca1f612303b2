// Package scoring derives scores, set completion and the serving side from
// a point log. Every function is pure and ignores neutral points.
package scoring

import (
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/sport"
)

// Default rule constants.
const (
	defaultWinBy          = 2
	gamePointsToWin       = 4
	defaultTieBreakPoints = 7
)

// Score is the derived score of one set. A and B count points credited to
// each side (weighted by value for weighted sports).
type Score struct {
	A     int        `json:"a"`
	B     int        `json:"b"`
	Games *GameScore `json:"games,omitempty"`
}

// GameScore is the nested part of the score for game-based sports.
type GameScore struct {
	A        int    `json:"a"`
	B        int    `json:"b"`
	TieBreak bool   `json:"tie_break"`
	PointA   string `json:"point_a"`
	PointB   string `json:"point_b"`
	// Winner is set once the set has been decided on games.
	Winner model.Side `json:"winner,omitempty"`
}

// Get returns the score of side s.
func (s Score) Get(side model.Side) int {
	switch side {
	case model.SideA:
		return s.A
	case model.SideB:
		return s.B
	default:
		return 0
	}
}

// Scorer applies one sport's score rules.
type Scorer interface {
	// Derive computes the score of points.
	Derive(points []model.Point) Score
	// SetComplete reports whether points decide set number setNumber.
	SetComplete(points []model.Point, setNumber int) bool
	// ServingSide returns the side expected to serve next.
	ServingSide(points []model.Point, initial model.Side) model.Side
}

// New returns the Scorer for rules.
func New(rules sport.ScoreRules) Scorer {
	if rules.WinBy <= 0 {
		rules.WinBy = defaultWinBy
	}
	switch rules.Mode {
	case sport.Weighted:
		return weighted{rules: rules}
	case sport.Nested:
		if rules.TieBreakPoints <= 0 {
			rules.TieBreakPoints = defaultTieBreakPoints
		}
		return nested{rules: rules}
	default:
		return rally{rules: rules}
	}
}

// Derive computes the score of points under rules.
func Derive(points []model.Point, rules sport.ScoreRules) Score {
	return New(rules).Derive(points)
}

// SetComplete reports whether points decide the set under rules.
func SetComplete(points []model.Point, rules sport.ScoreRules, setNumber int) bool {
	return New(rules).SetComplete(points, setNumber)
}

// ServingSide returns the side expected to serve next under rules.
func ServingSide(points []model.Point, rules sport.ScoreRules, initial model.Side) model.Side {
	return New(rules).ServingSide(points, initial)
}

// SetWinner returns the side leading score, or SideNone on a tie.
func SetWinner(score Score) model.Side {
	if score.Games != nil && score.Games.Winner.Valid() {
		return score.Games.Winner
	}
	switch {
	case score.A > score.B:
		return model.SideA
	case score.B > score.A:
		return model.SideB
	default:
		return model.SideNone
	}
}

// SetsWon counts finished sets won by each side.
func SetsWon(sets []model.Set) (a, b int) {
	for _, s := range sets {
		switch s.Winner {
		case model.SideA:
			a++
		case model.SideB:
			b++
		}
	}
	return a, b
}

// MatchWinner returns the side that reached rules.SetsToWin, if any.
func MatchWinner(sets []model.Set, rules sport.ScoreRules) model.Side {
	if rules.SetsToWin <= 0 {
		return model.SideNone
	}
	a, b := SetsWon(sets)
	switch {
	case a >= rules.SetsToWin:
		return model.SideA
	case b >= rules.SetsToWin:
		return model.SideB
	default:
		return model.SideNone
	}
}

// lastWinner returns the side credited with the latest non-neutral point.
func lastWinner(points []model.Point) model.Side {
	for i := len(points) - 1; i >= 0; i-- {
		if w := points[i].Winner(); w.Valid() {
			return w
		}
	}
	return model.SideNone
}

func credit(s *Score, side model.Side, n int) {
	switch side {
	case model.SideA:
		s.A += n
	case model.SideB:
		s.B += n
	}
}
