package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_SaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venuegate.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	snap := Snapshot{
		ScenarioID: 1,
		GameID:     "game-abc",
		Status:     "completed",
		Admitted:   1000,
		Rejected:   3200,
		Payload:    map[string]interface{}{"total_progress": 1.0},
	}
	require.NoError(t, s.Save(snap))

	loaded, err := s.Load(1, "game-abc")
	require.NoError(t, err)
	assert.Equal(t, snap.Status, loaded.Status)
	assert.Equal(t, snap.Admitted, loaded.Admitted)
	assert.Equal(t, snap.Rejected, loaded.Rejected)
	assert.Equal(t, 1.0, loaded.Payload["total_progress"])
}

func TestSnapshotStore_Save_Upserts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venuegate.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	snap := Snapshot{ScenarioID: 2, GameID: "g", Status: "running", Admitted: 10, Rejected: 5, Payload: map[string]interface{}{}}
	require.NoError(t, s.Save(snap))

	snap.Status = "completed"
	snap.Admitted = 1000
	require.NoError(t, s.Save(snap))

	loaded, err := s.Load(2, "g")
	require.NoError(t, err)
	assert.Equal(t, "completed", loaded.Status)
	assert.Equal(t, 1000, loaded.Admitted)
}

func TestSnapshotStore_Load_Missing_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venuegate.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(99, "nope")
	assert.Error(t, err)
}
