// Package store persists opaque game snapshots keyed by
// "scenario-<id>-<gameId>" (spec §6). The format is opaque to the
// decision core; this package is the only thing that ever reads it back.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// migrations returns the snapshot store's schema migration statements.
// Matches the style of NikeGunn-tutu's internal/infra/sqlite package:
// one statement per string, executed in order.
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS game_snapshots (
			snapshot_key TEXT PRIMARY KEY,
			scenario_id  INTEGER NOT NULL,
			game_id      TEXT NOT NULL,
			status       TEXT NOT NULL,
			admitted     INTEGER NOT NULL,
			rejected     INTEGER NOT NULL,
			payload      TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_game_snapshots_scenario ON game_snapshots(scenario_id)`,
	}
}

// Snapshot is the persisted state for one game: running totals plus an
// opaque JSON blob of whatever the caller wants recorded (constraint
// progress, final risk assessment, and the like).
type Snapshot struct {
	ScenarioID int
	GameID     string
	Status     string
	Admitted   int
	Rejected   int
	Payload    map[string]interface{}
}

// SnapshotStore wraps a *sql.DB over modernc.org/sqlite.
type SnapshotStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and runs
// migrations.
func Open(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: migrate: %w", err)
		}
	}
	return &SnapshotStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error { return s.db.Close() }

// snapshotKey builds the "scenario-<id>-<gameId>" key from spec §6.
func snapshotKey(scenarioID int, gameID string) string {
	return fmt.Sprintf("scenario-%d-%s", scenarioID, gameID)
}

// Save upserts a snapshot.
func (s *SnapshotStore) Save(snap Snapshot) error {
	payload, err := json.Marshal(snap.Payload)
	if err != nil {
		return fmt.Errorf("store: marshal payload: %w", err)
	}
	key := snapshotKey(snap.ScenarioID, snap.GameID)
	_, err = s.db.Exec(`
		INSERT INTO game_snapshots (snapshot_key, scenario_id, game_id, status, admitted, rejected, payload, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(snapshot_key) DO UPDATE SET
			status = excluded.status,
			admitted = excluded.admitted,
			rejected = excluded.rejected,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, key, snap.ScenarioID, snap.GameID, snap.Status, snap.Admitted, snap.Rejected, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	return nil
}

// Load fetches a previously saved snapshot by scenario id and game id.
func (s *SnapshotStore) Load(scenarioID int, gameID string) (Snapshot, error) {
	key := snapshotKey(scenarioID, gameID)
	row := s.db.QueryRow(`
		SELECT scenario_id, game_id, status, admitted, rejected, payload
		FROM game_snapshots WHERE snapshot_key = ?
	`, key)

	var snap Snapshot
	var payload string
	if err := row.Scan(&snap.ScenarioID, &snap.GameID, &snap.Status, &snap.Admitted, &snap.Rejected, &payload); err != nil {
		return Snapshot{}, fmt.Errorf("store: load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), &snap.Payload); err != nil {
		return Snapshot{}, fmt.Errorf("store: unmarshal payload for %s: %w", key, err)
	}
	return snap, nil
}
