package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/courtside/internal/domain/model"
)

const schema = `CREATE TABLE IF NOT EXISTS match_snapshots (
	match_id   TEXT PRIMARY KEY,
	sport      TEXT NOT NULL,
	finished   INTEGER NOT NULL DEFAULT 0,
	payload    TEXT NOT NULL,
	saved_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS match_snapshots_saved_at ON match_snapshots (saved_at DESC);`

// SQLiteStore persists snapshots as JSON documents in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// OpenSQLite opens or creates the database at path. ":memory:" opens a
// private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := ":memory:"
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save inserts or replaces snap.
func (s *SQLiteStore) Save(ctx context.Context, snap model.Snapshot) error {
	if strings.TrimSpace(snap.MatchID) == "" {
		return ErrInvalidMatchID
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO match_snapshots (match_id, sport, finished, payload, saved_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(match_id) DO UPDATE SET
		   sport = excluded.sport,
		   finished = excluded.finished,
		   payload = excluded.payload,
		   saved_at = excluded.saved_at`,
		snap.MatchID, snap.Config.Sport, snap.Finished, string(payload), toMillis(snap.SavedAt),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.MatchID, err)
	}
	return nil
}

// Load returns the snapshot of matchID.
func (s *SQLiteStore) Load(ctx context.Context, matchID string) (model.Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM match_snapshots WHERE match_id = ?`, matchID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load snapshot %s: %w", matchID, err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", matchID, err)
	}
	return snap, nil
}

// List returns every stored match, most recent first.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT match_id, sport, finished, saved_at FROM match_snapshots ORDER BY saved_at DESC, match_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			savedAt int64
		)
		if err := rows.Scan(&sum.MatchID, &sum.Sport, &sum.Finished, &savedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		sum.SavedAt = fromMillis(savedAt)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

// Delete removes matchID.
func (s *SQLiteStore) Delete(ctx context.Context, matchID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM match_snapshots WHERE match_id = ?`, matchID)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", matchID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", matchID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	return nil
}
