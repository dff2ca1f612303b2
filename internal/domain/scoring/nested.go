package scoring

import (
	"strconv"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/sport"
)

var gameCalls = [...]string{"0", "15", "30", "40"}

// nested implements point -> game -> set scoring with a tie-break.
type nested struct {
	rules sport.ScoreRules
}

// gameState walks the point sequence of one set.
type gameState struct {
	games    [2]int
	points   [2]int
	tieBreak bool
	// tbPlayed counts points played in the current tie-break.
	tbPlayed int
	winner   model.Side
}

func index(side model.Side) int {
	if side == model.SideB {
		return 1
	}
	return 0
}

func (n nested) play(points []model.Point) (gameState, Score) {
	var (
		st gameState
		s  Score
	)
	for _, p := range points {
		w := p.Winner()
		if !w.Valid() {
			continue
		}
		credit(&s, w, 1)
		if st.winner.Valid() {
			continue
		}
		wi, oi := index(w), 1-index(w)
		st.points[wi]++
		if st.tieBreak {
			st.tbPlayed++
			if st.points[wi] >= n.rules.TieBreakPoints && st.points[wi]-st.points[oi] >= defaultWinBy {
				st.games[wi]++
				st.points = [2]int{}
				st.tieBreak = false
				st.winner = w
			}
			continue
		}
		if st.points[wi] >= gamePointsToWin && st.points[wi]-st.points[oi] >= defaultWinBy {
			st.games[wi]++
			st.points = [2]int{}
			if n.rules.GamesPerSet > 0 && st.games[wi] >= n.rules.GamesPerSet && st.games[wi]-st.games[oi] >= defaultWinBy {
				st.winner = w
				continue
			}
			if n.rules.TieBreakAt > 0 && st.games[0] == n.rules.TieBreakAt && st.games[1] == n.rules.TieBreakAt {
				st.tieBreak = true
				st.tbPlayed = 0
			}
		}
	}
	return st, s
}

func (n nested) Derive(points []model.Point) Score {
	st, s := n.play(points)
	g := &GameScore{A: st.games[0], B: st.games[1], TieBreak: st.tieBreak, Winner: st.winner}
	g.PointA, g.PointB = calls(st)
	s.Games = g
	return s
}

func calls(st gameState) (string, string) {
	a, b := st.points[0], st.points[1]
	if st.tieBreak {
		return strconv.Itoa(a), strconv.Itoa(b)
	}
	if a >= 3 && b >= 3 {
		switch {
		case a > b:
			return "AD", "40"
		case b > a:
			return "40", "AD"
		default:
			return "40", "40"
		}
	}
	return gameCalls[min(a, 3)], gameCalls[min(b, 3)]
}

func (n nested) SetComplete(points []model.Point, _ int) bool {
	st, _ := n.play(points)
	return st.winner.Valid()
}

// ServingSide alternates the server every game from initial; inside a
// tie-break the server changes after the first point and then every two.
func (n nested) ServingSide(points []model.Point, initial model.Side) model.Side {
	if !initial.Valid() {
		initial = model.SideA
	}
	st, _ := n.play(points)
	server := initial
	if (st.games[0]+st.games[1])%2 == 1 {
		server = initial.Opponent()
	}
	if st.tieBreak && ((st.tbPlayed+1)/2)%2 == 1 {
		server = server.Opponent()
	}
	return server
}
