package match

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/scoring"
	"github.com/okian/courtside/internal/domain/sport"
)

// Engine owns the state of one match. It is not safe for concurrent use:
// callers deliver one event at a time.
type Engine struct {
	reg   *sport.Registry
	state State
	clock Clock
	now   func() time.Time
	newID func() string
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRegistry sets the sport registry. Defaults to sport.Default().
func WithRegistry(reg *sport.Registry) Option {
	return func(e *Engine) {
		if reg != nil {
			e.reg = reg
		}
	}
}

// WithClock sets the match clock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithNow sets the time source used to stamp points.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator sets the identifier source for points and sets.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

func newEngine(opts []Option, offset time.Duration) *Engine {
	e := &Engine{
		reg:   sport.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = NewStopwatch(e.now, offset)
	}
	return e
}

// New creates an engine for a fresh match.
func New(matchID string, cfg model.MatchConfig, names model.TeamNames, roster []model.Player, opts ...Option) (*Engine, error) {
	e := newEngine(opts, 0)
	if _, ok := e.reg.Lookup(cfg.Sport); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, cfg.Sport)
	}
	e.state = NewState(matchID, cfg, names, roster)
	return e, nil
}

// Restore creates an engine from a snapshot. The default stopwatch resumes
// from the snapshot's elapsed time; a clock supplied through WithClock is
// used as is.
func Restore(snap model.Snapshot, opts ...Option) (*Engine, error) {
	e := newEngine(opts, time.Duration(snap.ChronoSeconds)*time.Second)
	if _, ok := e.reg.Lookup(snap.Config.Sport); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, snap.Config.Sport)
	}
	e.state = FromSnapshot(snap)
	return e, nil
}

// Apply runs one event through Reduce and carries out its clock effects.
func (e *Engine) Apply(ev Event) Result {
	switch x := ev.(type) {
	case EndSet:
		if x.Elapsed == 0 {
			x.Elapsed = e.clock.Elapsed()
		}
		ev = x
	case FinishMatch:
		if x.Elapsed == 0 {
			x.Elapsed = e.clock.Elapsed()
		}
		ev = x
	}
	next, res := Reduce(e.reg, e.state, ev, Stamp{ID: e.newID(), At: e.now()})
	e.state = next
	for _, eff := range res.Effects {
		switch eff {
		case EffectClockStart:
			e.clock.Start()
		case EffectClockPause:
			e.clock.Pause()
		case EffectClockReset:
			e.clock.Reset()
		}
	}
	return res
}

// SelectAction chooses the action to record next.
func (e *Engine) SelectAction(team model.Side, category model.Category, action model.ActionKind, desc *model.ActionDescriptor) Result {
	return e.Apply(SelectAction{Team: team, Category: category, Action: action, Descriptor: desc})
}

// CancelSelection abandons the pending selection.
func (e *Engine) CancelSelection() Result { return e.Apply(CancelSelection{}) }

// PlaceOnCourt places the selection at physical coordinates.
func (e *Engine) PlaceOnCourt(x, y float64) Result { return e.Apply(PlaceOnCourt{X: x, Y: y}) }

// Undo reverts the latest entry.
func (e *Engine) Undo() Result { return e.Apply(Undo{}) }

// EndSet archives the current set.
func (e *Engine) EndSet() Result { return e.Apply(EndSet{}) }

// StartNewSet opens the next set.
func (e *Engine) StartNewSet() Result { return e.Apply(StartNewSet{}) }

// FinishMatch closes the match.
func (e *Engine) FinishMatch() Result { return e.Apply(FinishMatch{}) }

// ResolveAttribution assigns the pending point to playerID.
func (e *Engine) ResolveAttribution(playerID string) Result {
	return e.Apply(ResolveAttribution{PlayerID: playerID})
}

// SkipAttribution commits the pending point without a player.
func (e *Engine) SkipAttribution() Result { return e.Apply(SkipAttribution{}) }

// SetQualityRating rates the pending action.
func (e *Engine) SetQualityRating(r model.Rating) Result {
	return e.Apply(SetQualityRating{Rating: r})
}

// SwapSides flips the physical sides.
func (e *Engine) SwapSides() Result { return e.Apply(SwapSides{}) }

// SetRoster replaces the roster.
func (e *Engine) SetRoster(roster []model.Player) Result {
	return e.Apply(SetRoster{Roster: roster})
}

// DiscardEmptySets removes finished sets without points.
func (e *Engine) DiscardEmptySets() Result { return e.Apply(DiscardEmptySets{}) }

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.state.Phase }

// View returns the read-only projection of the match.
func (e *Engine) View() View { return BuildView(e.reg, e.state) }

// Score returns the score of the current set.
func (e *Engine) Score() scoring.Score { return Score(e.reg, e.state) }

// ServingSide returns the side expected to serve next.
func (e *Engine) ServingSide() model.Side { return ServingSide(e.reg, e.state) }

// SetComplete reports whether the current set is decided.
func (e *Engine) SetComplete() bool { return SetComplete(e.reg, e.state) }

// Sets returns the finished sets.
func (e *Engine) Sets() []model.Set { return append([]model.Set(nil), e.state.Sets...) }

// Points returns the point log of the current set.
func (e *Engine) Points() []model.Point { return e.state.Log.Points() }

// CanUndo reports whether Undo would apply.
func (e *Engine) CanUndo() bool { return CanUndo(e.state) }

// History returns committed rallies as action lists, oldest first.
func (e *Engine) History() [][]model.RallyAction { return History(e.state) }

// RallyInProgress reports whether a rally is open.
func (e *Engine) RallyInProgress() bool { return e.state.Log.RallyOpen() }

// RallyCount returns the number of buffered rally actions.
func (e *Engine) RallyCount() int { return e.state.Log.RallyLen() }

// PermittedRegions returns where the current selection may be placed.
func (e *Engine) PermittedRegions() []sport.Region { return PermittedRegions(e.reg, e.state) }

// Elapsed returns the match clock reading.
func (e *Engine) Elapsed() time.Duration { return e.clock.Elapsed() }

// Snapshot returns the persistable state. Players no longer on the roster
// are kept as ghosts while committed points reference them.
func (e *Engine) Snapshot() model.Snapshot {
	st := e.state
	points := st.Log.Points()
	return model.Snapshot{
		MatchID:          st.MatchID,
		Config:           st.Config,
		Points:           points,
		CompletedSets:    append([]model.Set(nil), st.Sets...),
		CurrentSetNumber: st.SetNumber,
		TeamNames:        st.TeamNames,
		SidesSwapped:     st.SidesSwapped,
		ChronoSeconds:    int64(e.clock.Elapsed() / time.Second),
		Roster:           model.RetainReferencedPlayers(st.Roster, st.Known, st.Sets, points),
		Finished:         st.Finished,
		SavedAt:          e.now(),
	}
}
