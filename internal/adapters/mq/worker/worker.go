// Package worker persists match snapshots in the background.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/courtside/internal/adapters/mq/queue"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

const (
	defaultDebounce = 500 * time.Millisecond
	minTick         = 10 * time.Millisecond
	flushTimeout    = 5 * time.Second
)

// Store is the persistence the worker writes to.
type Store interface {
	Save(ctx context.Context, snap model.Snapshot) error
}

// Queue defines how the worker receives jobs.
type Queue interface {
	Dequeue() <-chan queue.Job
}

type pending struct {
	snap model.Snapshot
	due  time.Time
}

// Saver coalesces save jobs per match and writes the newest snapshot once
// the match has been dirty for the debounce interval. Failures are logged
// and counted; they are never reported back to the engine.
type Saver struct {
	queue    Queue
	store    Store
	name     string
	debounce time.Duration
	logger   logger.Logger

	dirty    map[string]pending
	shutdown chan struct{}
	done     chan struct{}
}

// NewSaver creates a save worker.
func NewSaver(q Queue, store Store, opts ...Option) *Saver {
	w := &Saver{
		queue:    q,
		store:    store,
		name:     "saver",
		debounce: defaultDebounce,
		dirty:    make(map[string]pending),
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

func (w *Saver) tick() time.Duration {
	if t := w.debounce / 2; t > minTick {
		return t
	}
	return minTick
}

// Run consumes jobs until ctx is cancelled, Shutdown is called or the queue
// is closed. Dirty matches are flushed before it returns.
func (w *Saver) Run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	jobs := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			w.flushAll(context.WithoutCancel(ctx))
			return
		case <-w.shutdown:
			w.drain(jobs)
			w.flushAll(ctx)
			return
		case j, ok := <-jobs:
			if !ok {
				w.flushAll(ctx)
				return
			}
			w.accept(ctx, j)
		case now := <-ticker.C:
			w.flushDue(ctx, now)
		}
	}
}

// Shutdown stops the worker after it has flushed pending saves.
func (w *Saver) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *Saver) accept(ctx context.Context, j queue.Job) { //nolint:gocritic // hugeParam: jobs travel by value
	if w.debounce == 0 {
		w.save(ctx, j.Snapshot)
		return
	}
	p, ok := w.dirty[j.MatchID]
	if !ok {
		p.due = time.Now().Add(w.debounce)
	}
	p.snap = j.Snapshot
	w.dirty[j.MatchID] = p
}

// drain moves already-buffered jobs into the dirty set.
func (w *Saver) drain(jobs <-chan queue.Job) {
	for {
		select {
		case j, ok := <-jobs:
			if !ok {
				return
			}
			p := w.dirty[j.MatchID]
			p.snap = j.Snapshot
			w.dirty[j.MatchID] = p
		default:
			return
		}
	}
}

func (w *Saver) flushDue(ctx context.Context, now time.Time) {
	for id, p := range w.dirty {
		if now.Before(p.due) {
			continue
		}
		delete(w.dirty, id)
		w.save(ctx, p.snap)
	}
}

func (w *Saver) flushAll(ctx context.Context) {
	if len(w.dirty) == 0 {
		return
	}
	fctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	for id, p := range w.dirty {
		delete(w.dirty, id)
		w.save(fctx, p.snap)
	}
}

func (w *Saver) save(ctx context.Context, snap model.Snapshot) { //nolint:gocritic // hugeParam: snapshots travel by value
	start := time.Now()
	err := w.store.Save(ctx, snap)
	if err != nil {
		metrics.RecordSaveError()
		w.logger.Error(ctx, "snapshot save failed", logger.MatchID(snap.MatchID), logger.Error(err))
		return
	}
	metrics.RecordSave(float64(time.Since(start).Milliseconds()))
	w.logger.Debug(ctx, "snapshot saved",
		logger.MatchID(snap.MatchID),
		logger.Int("points", len(snap.Points)),
		logger.Int("sets", len(snap.CompletedSets)),
	)
}
