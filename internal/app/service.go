// Package service hosts live matches: it routes commands to their engines,
// restores matches from the snapshot store and fans changes out to the
// save queue and live subscribers.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/courtside/internal/adapters/mq/queue"
	"github.com/okian/courtside/internal/adapters/mq/worker"
	"github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/dedupe"
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/sport"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Publisher receives the view of a match after every change.
type Publisher interface {
	Publish(matchID string, view match.View)
}

// CreateRequest describes a new match. Nil or empty fields take the
// service defaults.
type CreateRequest struct {
	MatchID         string          `json:"match_id,omitempty"`
	Sport           string          `json:"sport,omitempty"`
	PerformanceMode *bool           `json:"performance_mode,omitempty"`
	HasCourt        *bool           `json:"has_court,omitempty"`
	InitialServer   model.Side      `json:"initial_server,omitempty"`
	PrimarySide     model.Side      `json:"primary_side,omitempty"`
	Format          *model.Format   `json:"format,omitempty"`
	TeamNames       model.TeamNames `json:"team_names"`
	Roster          []model.Player  `json:"roster,omitempty"`
}

// Command is one event addressed to a match. ID makes retries idempotent;
// an empty ID disables the duplicate check.
type Command struct {
	ID    string
	Event match.Event
}

// Outcome reports what a command did.
type Outcome struct {
	Outcome   string       `json:"outcome"`
	Duplicate bool         `json:"duplicate,omitempty"`
	Committed *model.Point `json:"committed,omitempty"`
	View      match.View   `json:"view"`
}

// Summary is a listing row.
type Summary struct {
	MatchID  string    `json:"match_id"`
	Sport    string    `json:"sport"`
	Finished bool      `json:"finished"`
	Active   bool      `json:"active"`
	SavedAt  time.Time `json:"saved_at,omitempty"`
}

type session struct {
	mu     sync.Mutex
	engine *match.Engine
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, match.View) {}

// Service owns every live match of the process.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session

	store      repository.Store
	publisher  Publisher
	registry   *sport.Registry
	deduper    dedupe.Deduper
	saveQueue  *queue.InMemoryQueue
	saver      *worker.Saver
	defaults   model.MatchConfig
	engineOpts []match.Option

	queueSize      int
	saveDebounceMS int
	dedupeSize     int

	started bool
	logger  logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessions:       make(map[string]*session),
		publisher:      nopPublisher{},
		registry:       sport.Default(),
		queueSize:      1024,
		saveDebounceMS: 500,
		dedupeSize:     10000,
		defaults: model.MatchConfig{
			Sport:         "volleyball",
			HasCourt:      true,
			InitialServer: model.SideA,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	return s
}

// Start creates the save pipeline and launches the save worker.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.saveQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.saver = worker.NewSaver(s.saveQueue, s.store,
		worker.WithDebounce(time.Duration(s.saveDebounceMS)*time.Millisecond),
		worker.WithLogger(s.logger.Named("saver")),
	)
	go s.saver.Run(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "match service started",
		logger.Int("queueSize", s.queueSize),
		logger.Int("saveDebounceMs", s.saveDebounceMS),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.String("defaultSport", s.defaults.Sport),
	)
	return nil
}

// Stop queues a final snapshot of every live match, then waits for the save
// worker to flush.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.mu.Lock()
		snap := sess.engine.Snapshot()
		sess.mu.Unlock()
		s.enqueueSave(ctx, snap)
	}
	_ = s.saveQueue.Close()
	err := s.saver.Shutdown(ctx)
	s.logger.Info(ctx, "match service stopped", logger.Int("matches", len(sessions)))
	return err
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) config(req CreateRequest) model.MatchConfig {
	cfg := s.defaults
	if req.Sport != "" {
		cfg.Sport = strings.ToLower(strings.TrimSpace(req.Sport))
	}
	if req.PerformanceMode != nil {
		cfg.PerformanceMode = *req.PerformanceMode
	}
	if req.HasCourt != nil {
		cfg.HasCourt = *req.HasCourt
	}
	if req.InitialServer != model.SideNone {
		cfg.InitialServer = req.InitialServer
	}
	if req.PrimarySide != model.SideNone {
		cfg.PrimarySide = req.PrimarySide
	}
	if req.Format != nil {
		cfg.Format = *req.Format
	}
	return cfg
}

func (s *Service) engineOptions() []match.Option {
	return append([]match.Option{match.WithRegistry(s.registry)}, s.engineOpts...)
}

// CreateMatch starts a new match and returns its first view.
func (s *Service) CreateMatch(ctx context.Context, req CreateRequest) (match.View, error) {
	if !s.isStarted() {
		return match.View{}, ErrNotStarted
	}
	id := strings.TrimSpace(req.MatchID)
	if id == "" {
		id = uuid.NewString()
	}
	cfg := s.config(req)
	if cfg.InitialServer != model.SideNone && !cfg.InitialServer.Valid() {
		return match.View{}, fmt.Errorf("%w: initial server %q", ErrInvalidMatch, cfg.InitialServer)
	}
	if cfg.PrimarySide != model.SideNone && !cfg.PrimarySide.Valid() {
		return match.View{}, fmt.Errorf("%w: primary side %q", ErrInvalidMatch, cfg.PrimarySide)
	}

	if _, err := s.store.Load(ctx, id); err == nil {
		return match.View{}, fmt.Errorf("%w: %s", ErrMatchExists, id)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return match.View{}, fmt.Errorf("check match %s: %w", id, err)
	}

	eng, err := match.New(id, cfg, req.TeamNames, req.Roster, s.engineOptions()...)
	if err != nil {
		return match.View{}, fmt.Errorf("%w: %w", ErrInvalidMatch, err)
	}

	s.mu.Lock()
	if _, ok := s.sessions[id]; ok {
		s.mu.Unlock()
		return match.View{}, fmt.Errorf("%w: %s", ErrMatchExists, id)
	}
	s.sessions[id] = &session{engine: eng}
	active := len(s.sessions)
	s.mu.Unlock()

	metrics.UpdateActiveMatches(active)
	view := eng.View()
	s.enqueueSave(ctx, eng.Snapshot())
	s.publisher.Publish(id, view)
	s.logger.Info(ctx, "match created",
		logger.MatchID(id),
		logger.String("sport", cfg.Sport),
		logger.Bool("hasCourt", cfg.HasCourt),
		logger.Bool("performanceMode", cfg.PerformanceMode),
	)
	return view, nil
}

// session returns the live session of id, restoring it from the store on
// first access.
func (s *Service) session(ctx context.Context, id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}
	if ok {
		return sess, nil
	}

	snap, err := s.store.Load(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	eng, err := match.Restore(snap, s.engineOptions()...)
	if err != nil {
		return nil, fmt.Errorf("restore match %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		return existing, nil
	}
	sess = &session{engine: eng}
	s.sessions[id] = sess
	metrics.UpdateActiveMatches(len(s.sessions))
	s.logger.Info(ctx, "match restored",
		logger.MatchID(id),
		logger.Int("points", len(snap.Points)),
		logger.Int("sets", len(snap.CompletedSets)),
	)
	return sess, nil
}

// View returns the current view of a match.
func (s *Service) View(ctx context.Context, id string) (match.View, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return match.View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.View(), nil
}

// Regions returns where the current selection may be placed, in the
// physical orientation of the court.
func (s *Service) Regions(ctx context.Context, id string) ([]sport.Region, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.PermittedRegions(), nil
}

// Apply delivers one command to a match. Commands that the engine ignores
// or rejects are not errors; the outcome says what happened.
func (s *Service) Apply(ctx context.Context, id string, cmd Command) (Outcome, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if cmd.Event == nil {
		return Outcome{}, fmt.Errorf("%w: empty command", match.ErrInvalidTransition)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	eng := sess.engine

	if cmd.ID != "" && s.deduper.SeenAndRecord(ctx, id, cmd.ID) {
		metrics.RecordDuplicateCommand()
		s.logger.Debug(ctx, "duplicate command skipped", logger.MatchID(id), logger.String("commandID", cmd.ID))
		return Outcome{Outcome: "duplicate", Duplicate: true, View: eng.View()}, nil
	}

	before := eng.State()
	res := eng.Apply(cmd.Event)
	after := eng.State()
	s.observe(ctx, id, cmd.Event, before, after, res)

	view := eng.View()
	if res.Has(match.EffectChanged) {
		s.enqueueSave(ctx, eng.Snapshot())
		s.publisher.Publish(id, view)
	}
	return Outcome{Outcome: res.Outcome.String(), Committed: res.Committed, View: view}, nil
}

// observe logs and counts a transition.
func (s *Service) observe(ctx context.Context, id string, ev match.Event, before, after match.State, res match.Result) { //nolint:gocritic // hugeParam: states are values
	sportID := after.Config.Sport
	metrics.RecordTransition(ev.Name(), res.Outcome.String())

	switch res.Outcome {
	case match.Rejected:
		metrics.RecordPlacementRejected(sportID, string(before.Selection.Action))
		s.logger.Debug(ctx, "placement rejected",
			logger.MatchID(id),
			logger.String("action", string(before.Selection.Action)),
			logger.String("team", string(before.Selection.Team)),
		)
		return
	case match.Ignored:
		s.logger.Debug(ctx, "command ignored",
			logger.MatchID(id),
			logger.String("event", ev.Name()),
			logger.String("phase", string(before.Phase)),
		)
		return
	}

	if res.Committed != nil {
		metrics.RecordPointCommitted(sportID, string(res.Committed.Category))
		s.logger.Debug(ctx, "point committed",
			logger.MatchID(id),
			logger.String("team", string(res.Committed.Team)),
			logger.String("category", string(res.Committed.Category)),
			logger.String("action", string(res.Committed.Action)),
		)
	}
	if _, ok := ev.(match.Undo); ok {
		metrics.RecordUndo()
	}
	if after.Phase == match.PhaseAttributionPending && before.Phase != match.PhaseAttributionPending {
		metrics.RecordAttributionPrompt()
	}
	switch ev.(type) {
	case match.EndSet, match.FinishMatch, match.StartNewSet:
		s.logger.Info(ctx, "set transition",
			logger.MatchID(id),
			logger.String("event", ev.Name()),
			logger.Int("set", after.SetNumber),
			logger.Bool("finished", after.Finished),
		)
	}
}

func (s *Service) enqueueSave(ctx context.Context, snap model.Snapshot) { //nolint:gocritic // hugeParam: snapshots travel by value
	err := s.saveQueue.Enqueue(ctx, queue.Job{MatchID: snap.MatchID, Snapshot: snap})
	if err != nil {
		s.logger.Warn(ctx, "snapshot save dropped", logger.MatchID(snap.MatchID), logger.Error(err))
	}
}

// List returns live and stored matches, most recently saved first.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	s.mu.RLock()
	live := make(map[string]*session, len(s.sessions))
	for id, sess := range s.sessions {
		live[id] = sess
	}
	s.mu.RUnlock()

	out := make([]Summary, 0, len(stored)+len(live))
	seen := make(map[string]struct{}, len(stored))
	for _, st := range stored {
		_, active := live[st.MatchID]
		seen[st.MatchID] = struct{}{}
		out = append(out, Summary{MatchID: st.MatchID, Sport: st.Sport, Finished: st.Finished, Active: active, SavedAt: st.SavedAt})
	}
	var unsaved []Summary
	for id, sess := range live {
		if _, ok := seen[id]; ok {
			continue
		}
		sess.mu.Lock()
		st := sess.engine.State()
		sess.mu.Unlock()
		unsaved = append(unsaved, Summary{MatchID: id, Sport: st.Config.Sport, Finished: st.Finished, Active: true})
	}
	sort.Slice(unsaved, func(i, j int) bool { return unsaved[i].MatchID < unsaved[j].MatchID })
	return append(unsaved, out...), nil
}

// Delete drops a match from memory and from the store.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !s.isStarted() {
		return ErrNotStarted
	}
	s.mu.Lock()
	_, live := s.sessions[id]
	delete(s.sessions, id)
	active := len(s.sessions)
	s.mu.Unlock()
	metrics.UpdateActiveMatches(active)

	err := s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		if live {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("delete match %s: %w", id, err)
	}
	s.logger.Info(ctx, "match deleted", logger.MatchID(id))
	return nil
}

// Sports returns the registered sport identifiers.
func (s *Service) Sports() []string { return s.registry.IDs() }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":       s.started,
		"activeMatches": len(s.sessions),
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"sports":        s.registry.IDs(),
	}
	if s.started {
		stats["queueLength"] = s.saveQueue.Len()
		stats["dedupeEntries"] = s.deduper.Size()
	}
	return stats
}
