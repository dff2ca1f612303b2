package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/okian/courtside/internal/domain/model"
)

// MemoryStore keeps snapshots in process memory. Snapshots are stored
// encoded so callers never share slices with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	index   map[string]Summary
	closed  bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
		index:   make(map[string]Summary),
	}
}

// Save stores snap.
func (s *MemoryStore) Save(ctx context.Context, snap model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(snap.MatchID) == "" {
		return ErrInvalidMatchID
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.records[snap.MatchID] = payload
	s.index[snap.MatchID] = summarize(snap)
	return nil
}

// Load returns the snapshot of matchID.
func (s *MemoryStore) Load(ctx context.Context, matchID string) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}
	s.mu.RLock()
	payload, ok := s.records[matchID]
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return model.Snapshot{}, ErrStoreClosed
	}
	if !ok {
		return model.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// List returns every stored match, most recent first.
func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]Summary, 0, len(s.index))
	for _, sum := range s.index {
		out = append(out, sum)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].MatchID < out[j].MatchID
		}
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

// Delete removes matchID.
func (s *MemoryStore) Delete(ctx context.Context, matchID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[matchID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	delete(s.records, matchID)
	delete(s.index, matchID)
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
