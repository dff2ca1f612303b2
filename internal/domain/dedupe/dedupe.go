// Package dedupe remembers recently applied command ids so a retried command
// is applied at most once.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen command ids per match.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded for matchID and
	// records it when it was not.
	SeenAndRecord(ctx context.Context, matchID, id string) bool
	// Forget removes a recorded id so the command can be retried.
	Forget(ctx context.Context, matchID, id string)
	// Size returns the number of remembered ids.
	Size() int
}

type entry struct {
	key string
	seq uint64
}

// ringDeduper keeps the newest maxSize ids and evicts the oldest first.
type ringDeduper struct {
	mu      sync.Mutex
	maxSize int
	seen    map[string]uint64
	ring    []entry
	next    int
	seq     uint64
}

const defaultMaxSize = 10_000

// NewInMemoryDeduper creates a bounded in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]uint64, d.maxSize)
	d.ring = make([]entry, d.maxSize)
	return d
}

func key(matchID, id string) string { return matchID + "/" + id }

func (d *ringDeduper) SeenAndRecord(_ context.Context, matchID, id string) bool {
	if id == "" {
		return false
	}
	k := key(matchID, id)
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[k]; ok {
		return true
	}
	// The slot may hold a forgotten id; only evict it while still current.
	old := d.ring[d.next]
	if old.key != "" && d.seen[old.key] == old.seq {
		delete(d.seen, old.key)
	}
	d.seq++
	d.ring[d.next] = entry{key: k, seq: d.seq}
	d.seen[k] = d.seq
	d.next = (d.next + 1) % d.maxSize
	return false
}

func (d *ringDeduper) Forget(_ context.Context, matchID, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, key(matchID, id))
}

func (d *ringDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
