// Package repository persists match snapshots.
package repository

import (
	"context"
	"time"

	"github.com/okian/courtside/internal/domain/model"
)

// Summary is the listing row of a stored match.
type Summary struct {
	MatchID  string    `json:"match_id"`
	Sport    string    `json:"sport"`
	Finished bool      `json:"finished"`
	SavedAt  time.Time `json:"saved_at"`
}

// Store provides read/write access to match snapshots.
type Store interface {
	// Save inserts or replaces the snapshot of snap.MatchID.
	Save(ctx context.Context, snap model.Snapshot) error
	// Load returns the snapshot of matchID or ErrNotFound.
	Load(ctx context.Context, matchID string) (model.Snapshot, error)
	// List returns stored matches, most recently saved first.
	List(ctx context.Context) ([]Summary, error)
	// Delete removes a match; deleting an unknown match returns ErrNotFound.
	Delete(ctx context.Context, matchID string) error
	Close() error
}

func summarize(s model.Snapshot) Summary {
	return Summary{MatchID: s.MatchID, Sport: s.Config.Sport, Finished: s.Finished, SavedAt: s.SavedAt}
}
