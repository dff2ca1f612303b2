// Package sport holds the per-sport rule sets: court partition and
// placement legality, action catalog and score rules.
package sport

import (
	"sort"
	"sync"

	"github.com/okian/courtside/internal/domain/model"
)

// ScoreMode selects how points turn into a score.
type ScoreMode int

// Score modes.
const (
	// RallyPoint credits one point per rally to the winning side.
	RallyPoint ScoreMode = iota
	// Weighted sums the value of scored actions.
	Weighted
	// Nested groups points into games and games into sets.
	Nested
)

// ScoreRules is a sport's score rule table.
type ScoreRules struct {
	Mode ScoreMode
	// PointsPerSet is the rally-point target; zero disables automatic completion.
	PointsPerSet      int
	DecidingSetPoints int
	WinBy             int
	// Cap ends a set outright when either side reaches it.
	Cap       int
	SetsToWin int
	// Nested scoring.
	GamesPerSet    int
	TieBreakAt     int
	TieBreakPoints int
	// HasServe reports whether a serving side is meaningful.
	HasServe bool
	// WinnerServesNextSet gives the first serve of a set to the previous
	// set's winner instead of alternating the initial server.
	WinnerServesNextSet bool
}

// WithFormat overlays non-zero match format fields.
func (r ScoreRules) WithFormat(f model.Format) ScoreRules {
	if f.SetsToWin > 0 {
		r.SetsToWin = f.SetsToWin
	}
	if f.PointsPerSet > 0 {
		r.PointsPerSet = f.PointsPerSet
	}
	if f.DecidingSetPoints > 0 {
		r.DecidingSetPoints = f.DecidingSetPoints
	}
	return r
}

// ActionRule is one catalog entry.
type ActionRule struct {
	Kind       model.ActionKind
	Category   model.Category
	Placement  Placement
	Descriptor model.ActionDescriptor
	// ValueByArea overrides the point value by landing area.
	ValueByArea map[Area]int
}

// RuleSet bundles everything sport specific.
type RuleSet struct {
	ID      string
	Name    string
	Regions []Region
	Score   ScoreRules
	actions map[model.ActionKind]ActionRule
	order   []model.ActionKind
}

func newRuleSet(id, name string, regions []Region, score ScoreRules, rules ...ActionRule) *RuleSet {
	rs := &RuleSet{
		ID:      id,
		Name:    name,
		Regions: regions,
		Score:   score,
		actions: make(map[model.ActionKind]ActionRule, len(rules)),
	}
	for _, s := range rules {
		rs.actions[s.Kind] = s
		rs.order = append(rs.order, s.Kind)
	}
	return rs
}

// Action returns the catalog entry for kind.
func (rs *RuleSet) Action(kind model.ActionKind) (ActionRule, bool) {
	s, ok := rs.actions[kind]
	return s, ok
}

// Catalog returns the catalog in declaration order.
func (rs *RuleSet) Catalog() []ActionRule {
	out := make([]ActionRule, 0, len(rs.order))
	for _, k := range rs.order {
		out = append(out, rs.actions[k])
	}
	return out
}

// Classify maps canonical coordinates to a zone. Points outside every
// declared region fall back to the out-of-bounds zone of their half.
func (rs *RuleSet) Classify(x, y float64) Zone {
	for _, r := range rs.Regions {
		if r.Contains(x, y) {
			return r.Zone
		}
	}
	if x < 0.5 {
		return Zone{Side: model.SideA, Area: AreaOut}
	}
	return Zone{Side: model.SideB, Area: AreaOut}
}

// placement returns the rule for the context's action. Actions missing from
// the catalog (custom actions) may be placed anywhere.
func (rs *RuleSet) placement(kind model.ActionKind) Placement {
	if s, ok := rs.actions[kind]; ok {
		return s.Placement
	}
	return Placement{Side: AnySide}
}

// RequiresPlacement reports whether the action must be placed on court.
func (rs *RuleSet) RequiresPlacement(kind model.ActionKind) bool {
	return !rs.placement(kind).None
}

// IsLegal reports whether zone is a legal landing spot in ctx.
func (rs *RuleSet) IsLegal(zone Zone, ctx Context) bool {
	if !ctx.Team.Valid() {
		return false
	}
	return rs.placement(ctx.Action).allows(zone, ctx.Team)
}

// PermittedRegions lists the regions where the context's action may be
// placed, in canonical orientation.
func (rs *RuleSet) PermittedRegions(ctx Context) []Region {
	if !ctx.Team.Valid() {
		return nil
	}
	p := rs.placement(ctx.Action)
	if p.None {
		return nil
	}
	var out []Region
	for _, r := range rs.Regions {
		if p.allows(r.Zone, ctx.Team) {
			out = append(out, r)
		}
	}
	return out
}

// PhysicalRegions returns PermittedRegions in the presentation orientation.
func (rs *RuleSet) PhysicalRegions(ctx Context) []Region {
	regions := rs.PermittedRegions(ctx)
	if !ctx.Swapped {
		return regions
	}
	for i := range regions {
		regions[i] = regions[i].Mirror()
	}
	return regions
}

// PointValue returns the value of kind landing in zone; fallback is used
// when the catalog has no area-specific value.
func (rs *RuleSet) PointValue(kind model.ActionKind, zone Zone, fallback int) int {
	if s, ok := rs.actions[kind]; ok {
		if v, ok := s.ValueByArea[zone.Area]; ok {
			return v
		}
	}
	return fallback
}

// Registry maps sport identifiers to rule sets.
type Registry struct {
	mu   sync.RWMutex
	sets map[string]*RuleSet
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]*RuleSet)}
}

// Register adds or replaces a rule set.
func (r *Registry) Register(rs *RuleSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[rs.ID] = rs
}

// Lookup returns the rule set for id.
func (r *Registry) Lookup(id string) (*RuleSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rs, ok := r.sets[id]
	return rs, ok
}

// IDs lists registered sport identifiers, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sets))
	for id := range r.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsLegal classifies the context's coordinates and checks legality in one step.
func (r *Registry) IsLegal(ctx Context) bool {
	rs, ok := r.Lookup(ctx.Sport)
	if !ok {
		return false
	}
	return rs.IsLegal(rs.Classify(ctx.X, ctx.Y), ctx)
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry with every built-in sport.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		defaultReg.Register(Volleyball())
		defaultReg.Register(Badminton())
		defaultReg.Register(Basketball())
		defaultReg.Register(Tennis())
	})
	return defaultReg
}
