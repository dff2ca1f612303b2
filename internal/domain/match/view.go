package match

import (
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pointlog"
	"github.com/okian/courtside/internal/domain/scoring"
	"github.com/okian/courtside/internal/domain/sport"
)

// SetsWon is the count of finished sets per side.
type SetsWon struct {
	A int `json:"a"`
	B int `json:"b"`
}

// View is the read-only projection of a match exposed to collaborators.
type View struct {
	MatchID         string                `json:"match_id"`
	Sport           string                `json:"sport"`
	TeamNames       model.TeamNames       `json:"team_names"`
	Phase           Phase                 `json:"phase"`
	Selection       *model.Selection      `json:"selection,omitempty"`
	Candidates      []model.Player        `json:"candidates,omitempty"`
	Score           scoring.Score         `json:"score"`
	SetsWon         SetsWon               `json:"sets_won"`
	SetNumber       int                   `json:"set_number"`
	SetComplete     bool                  `json:"set_complete"`
	SetOver         bool                  `json:"set_over"`
	Finished        bool                  `json:"finished"`
	MatchWinner     model.Side            `json:"match_winner,omitempty"`
	ServingSide     model.Side            `json:"serving_side,omitempty"`
	SidesSwapped    bool                  `json:"sides_swapped"`
	CanUndo         bool                  `json:"can_undo"`
	RallyInProgress bool                  `json:"rally_in_progress"`
	RallyCount      int                   `json:"rally_count"`
	Rally           []model.RallyAction   `json:"rally,omitempty"`
	Points          []model.Point         `json:"points"`
	Sets            []model.Set           `json:"sets"`
	Roster          []model.Player        `json:"roster,omitempty"`
}

// rules returns the effective score rules of st.
func rules(reg *sport.Registry, st State) (*sport.RuleSet, sport.ScoreRules, bool) {
	rs, ok := reg.Lookup(st.Config.Sport)
	if !ok {
		return nil, sport.ScoreRules{}, false
	}
	return rs, rs.Score.WithFormat(st.Config.Format), true
}

// Score derives the score of the current set.
func Score(reg *sport.Registry, st State) scoring.Score {
	_, r, ok := rules(reg, st)
	if !ok {
		return scoring.Score{}
	}
	return scoring.Derive(st.Log.Points(), r)
}

// ServingSide derives the side expected to serve the next point.
func ServingSide(reg *sport.Registry, st State) model.Side {
	_, r, ok := rules(reg, st)
	if !ok {
		return model.SideNone
	}
	return servingSide(st, r)
}

// servingSide carries the serve across sets. Rally sports alternate the
// first server of each set; nested sports continue the game rotation.
func servingSide(st State, r sport.ScoreRules) model.Side {
	if !r.HasServe {
		return model.SideNone
	}
	initial := st.Config.InitialServer
	switch r.Mode {
	case sport.Nested:
		for _, s := range st.Sets {
			initial = scoring.ServingSide(s.Points, r, initial)
		}
	default:
		if r.WinnerServesNextSet {
			if n := len(st.Sets); n > 0 && st.Sets[n-1].Winner.Valid() {
				initial = st.Sets[n-1].Winner
			}
		} else if initial.Valid() && st.SetNumber%2 == 0 {
			initial = initial.Opponent()
		}
	}
	return scoring.ServingSide(st.Log.Points(), r, initial)
}

// SetComplete reports whether the current set has been decided.
func SetComplete(reg *sport.Registry, st State) bool {
	_, r, ok := rules(reg, st)
	if !ok {
		return false
	}
	return scoring.SetComplete(st.Log.Points(), r, st.SetNumber)
}

// CanUndo reports whether Undo would apply.
func CanUndo(st State) bool {
	return st.Phase != PhaseIdle || st.Log.CanUndo()
}

// PermittedRegions returns where the current selection may be placed, in
// the physical orientation. It is empty when nothing awaits placement.
func PermittedRegions(reg *sport.Registry, st State) []sport.Region {
	if !st.Phase.placing() || st.Phase == PhaseDirectionOrigin {
		return nil
	}
	rs, ok := reg.Lookup(st.Config.Sport)
	if !ok {
		return nil
	}
	return rs.PhysicalRegions(sport.Context{
		Sport:    rs.ID,
		Action:   st.Selection.Action,
		Category: st.Selection.Category,
		Team:     st.Selection.Team,
		Swapped:  st.SidesSwapped,
	})
}

// History returns the rally of every concluding point of the current set,
// rebuilding sequences for points stored without one.
func History(st State) [][]model.RallyAction {
	return pointlog.History(st.Log.Points())
}

// BuildView projects st into a View.
func BuildView(reg *sport.Registry, st State) View {
	v := View{
		MatchID:         st.MatchID,
		Sport:           st.Config.Sport,
		TeamNames:       st.TeamNames,
		Phase:           st.Phase,
		Candidates:      st.Candidates,
		SetNumber:       st.SetNumber,
		SetOver:         st.SetOver,
		Finished:        st.Finished,
		SidesSwapped:    st.SidesSwapped,
		CanUndo:         CanUndo(st),
		RallyInProgress: st.Log.RallyOpen(),
		RallyCount:      st.Log.RallyLen(),
		Rally:           st.Log.Rally(),
		Points:          st.Log.Points(),
		Sets:            append([]model.Set(nil), st.Sets...),
		Roster:          st.Roster,
	}
	if st.Phase != PhaseIdle {
		sel := st.Selection
		v.Selection = &sel
	}
	if _, r, ok := rules(reg, st); ok {
		v.Score = scoring.Derive(v.Points, r)
		v.SetComplete = scoring.SetComplete(v.Points, r, st.SetNumber)
		v.ServingSide = servingSide(st, r)
		v.MatchWinner = scoring.MatchWinner(st.Sets, r)
	}
	v.SetsWon.A, v.SetsWon.B = scoring.SetsWon(st.Sets)
	return v
}
