package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/models"
)

// TestStore_Integration runs against a real server.
// Example: POSTBOARD_TEST_POSTGRES="postgres://planner:pw@localhost:5432/postboard_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv(constants.TestPostgresEnvVar)
	if connStr == "" {
		t.Skip(constants.TestPostgresEnvVar + " not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	now := time.Now().Truncate(time.Second)
	snap := models.Snapshot{
		ID:          uuid.NewString(),
		Month:       time.March,
		Year:        2025,
		GeneratedAt: now,
		Posts: []models.Post{
			{ID: "pet-3", Type: models.PostTypePet, Title: "Pet of the Week", ScheduledDate: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)},
		},
		Progress: map[string]models.PostProgress{
			"pet-3": {PostID: "pet-3", Steps: []models.Step{{ID: "a", Text: "Shoot", Completed: true}}, Status: models.StatusInProgress},
		},
	}

	rows, err := store.WriteSnapshot(snap)
	if err != nil {
		t.Fatalf("WriteSnapshot() failed: %v", err)
	}
	if rows != 4 {
		t.Errorf("WriteSnapshot() rows = %d, want 4", rows)
	}

	infos, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() failed: %v", err)
	}
	for _, info := range infos {
		if info.ID == snap.ID {
			if info.Posts != 1 || info.Ready != 0 {
				t.Errorf("snapshot counts = %+v, want 1 post, 0 ready", info)
			}
			return
		}
	}
	t.Errorf("snapshot %s not listed", snap.ID)
}
