// ABOUTME: SQLite-backed store of the last successfully fetched releases, keyed by repository.
// ABOUTME: SnapshotFetcher records every good fetch and serves the newest snapshot when upstream fails.
package releases

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// ErrNoSnapshot is returned when no snapshot exists for a repository.
var ErrNoSnapshot = errors.New("no release snapshot")

// DefaultSnapshotKeep is how many snapshots per repository survive pruning.
const DefaultSnapshotKeep = 20

// Snapshot is a stored release together with when it was fetched.
type Snapshot struct {
	ID        string
	Repo      string
	Release   *Release
	FetchedAt time.Time
}

// SnapshotStore persists release payloads. It is a cache of upstream data,
// never the source of truth.
type SnapshotStore struct {
	db   *sql.DB
	keep int
}

// OpenSnapshotStore opens or creates the SQLite database at path.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS release_snapshots (
			snapshot_id TEXT PRIMARY KEY,
			repo TEXT NOT NULL,
			tag_name TEXT NOT NULL,
			payload TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_release_snapshots_repo
			ON release_snapshots (repo, snapshot_id);`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SnapshotStore{db: db, keep: DefaultSnapshotKeep}, nil
}

// Close closes the database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Save records rel as the newest snapshot for repo and prunes old rows.
func (s *SnapshotStore) Save(ctx context.Context, repo string, rel *Release) (*Snapshot, error) {
	if rel == nil {
		return nil, fmt.Errorf("save snapshot: nil release")
	}
	payload, err := json.Marshal(rel)
	if err != nil {
		return nil, fmt.Errorf("encode release: %w", err)
	}

	snap := &Snapshot{
		ID:        ulid.Make().String(),
		Repo:      repo,
		Release:   rel,
		FetchedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO release_snapshots (snapshot_id, repo, tag_name, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		snap.ID,
		repo,
		rel.TagName,
		string(payload),
		snap.FetchedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM release_snapshots
		 WHERE repo = ? AND snapshot_id NOT IN (
			SELECT snapshot_id FROM release_snapshots
			WHERE repo = ? ORDER BY snapshot_id DESC LIMIT ?
		 )`,
		repo, repo, s.keep,
	)
	if err != nil {
		return nil, fmt.Errorf("prune snapshots: %w", err)
	}

	return snap, nil
}

// Latest returns the newest snapshot for repo, or ErrNoSnapshot.
func (s *SnapshotStore) Latest(ctx context.Context, repo string) (*Snapshot, error) {
	var (
		snap      Snapshot
		payload   string
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot_id, repo, payload, fetched_at FROM release_snapshots
		 WHERE repo = ? ORDER BY snapshot_id DESC LIMIT 1`,
		repo,
	).Scan(&snap.ID, &snap.Repo, &payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", repo, ErrNoSnapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	var rel Release
	if err := json.Unmarshal([]byte(payload), &rel); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
	}
	snap.Release = &rel
	if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
		snap.FetchedAt = t
	}
	return &snap, nil
}

// Count returns the number of snapshots stored for repo.
func (s *SnapshotStore) Count(ctx context.Context, repo string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM release_snapshots WHERE repo = ?`, repo,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

// SnapshotFetcher saves each successful upstream fetch and falls back to
// the newest snapshot when the upstream call fails.
type SnapshotFetcher struct {
	next  Fetcher
	store *SnapshotStore
	repo  string
}

// NewSnapshotFetcher wraps next with snapshot persistence for repo.
func NewSnapshotFetcher(next Fetcher, store *SnapshotStore, repo string) *SnapshotFetcher {
	return &SnapshotFetcher{next: next, store: store, repo: repo}
}

// Latest implements Fetcher.
func (f *SnapshotFetcher) Latest(ctx context.Context) (*Release, error) {
	rel, err := f.next.Latest(ctx)
	if err == nil {
		if _, saveErr := f.store.Save(ctx, f.repo, rel); saveErr != nil {
			log.Printf("releases: snapshot save failed repo=%s err=%v", f.repo, saveErr)
		}
		return rel, nil
	}

	snap, snapErr := f.store.Latest(ctx, f.repo)
	if snapErr != nil {
		return nil, err
	}
	log.Printf("releases: upstream failed, serving snapshot repo=%s id=%s tag=%s err=%v",
		f.repo, snap.ID, snap.Release.TagName, err)
	return snap.Release, nil
}
