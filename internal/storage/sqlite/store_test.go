package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/storage"
)

func testSnapshot(id string, generated time.Time) models.Snapshot {
	jan := func(day int) time.Time { return time.Date(2025, time.January, day, 0, 0, 0, 0, time.Local) }
	return models.Snapshot{
		ID:          id,
		Month:       time.January,
		Year:        2025,
		GeneratedAt: generated,
		Posts: []models.Post{
			{ID: "pet-6", Type: models.PostTypePet, Title: "Pet of the Week", Description: "Feature a pet", ScheduledDate: jan(6)},
			{ID: "podcast-1", Type: models.PostTypePodcast, Title: "Podcast Episode", Description: "New episode", ScheduledDate: jan(15)},
		},
		Progress: map[string]models.PostProgress{
			"pet-6": {
				PostID:      "pet-6",
				HasCreative: true,
				Caption:     "Meet Biscuit",
				Steps: []models.Step{
					{ID: "s1", Text: "Shoot photo", Completed: true},
					{ID: "s2", Text: "Write caption", Completed: true},
				},
				Status: models.StatusReady,
			},
		},
		Ideas: []models.ContentIdea{
			{ID: "idea-1", Category: models.IdeaCategoryVideo, Title: "Office tour", CreatedAt: generated},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "exports.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitCreatesSchema(t *testing.T) {
	store := newTestStore(t)

	for _, table := range []string{"snapshots", "posts", "post_progress", "progress_steps", "ideas", "schema_version"} {
		exists, err := store.tableExists(table)
		if err != nil {
			t.Fatalf("tableExists(%s) error: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s missing after Init", table)
		}
	}

	exists, err := store.tableExists("SNAPSHOTS")
	if err != nil || !exists {
		t.Errorf("tableExists should be case-insensitive, got %v, %v", exists, err)
	}
}

func TestWriteSnapshot(t *testing.T) {
	store := newTestStore(t)
	generated := time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC)

	rows, err := store.WriteSnapshot(testSnapshot("snap-1", generated))
	if err != nil {
		t.Fatalf("WriteSnapshot() failed: %v", err)
	}
	// snapshot + 2 posts + 1 progress + 2 steps + 1 idea
	if rows != 7 {
		t.Errorf("WriteSnapshot() rows = %d, want 7", rows)
	}

	var status, date string
	err = store.db.QueryRow("SELECT status, scheduled_date FROM posts WHERE snapshot_id = ? AND id = ?", "snap-1", "podcast-1").Scan(&status, &date)
	if err != nil {
		t.Fatalf("query post: %v", err)
	}
	if status != string(models.StatusNotStarted) {
		t.Errorf("post without progress status = %q, want %q", status, models.StatusNotStarted)
	}
	if date != "2025-01-15" {
		t.Errorf("scheduled_date = %q, want 2025-01-15", date)
	}

	var steps []string
	q, err := store.db.Query("SELECT text FROM progress_steps WHERE post_id = ? ORDER BY position", "pet-6")
	if err != nil {
		t.Fatalf("query steps: %v", err)
	}
	defer q.Close()
	for q.Next() {
		var text string
		if err := q.Scan(&text); err != nil {
			t.Fatal(err)
		}
		steps = append(steps, text)
	}
	if diff := cmp.Diff([]string{"Shoot photo", "Write caption"}, steps); diff != "" {
		t.Errorf("step order mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSnapshotIsAtomic(t *testing.T) {
	store := newTestStore(t)
	snap := testSnapshot("snap-1", time.Now())

	if _, err := store.WriteSnapshot(snap); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	// Same id again violates the primary key; nothing from it may remain.
	snap.Ideas = append(snap.Ideas, models.ContentIdea{ID: "idea-2", Category: models.IdeaCategoryCopy, Title: "Tips", CreatedAt: time.Now()})
	if _, err := store.WriteSnapshot(snap); err == nil {
		t.Fatal("duplicate snapshot write should fail")
	}

	var ideas int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM ideas").Scan(&ideas); err != nil {
		t.Fatal(err)
	}
	if ideas != 1 {
		t.Errorf("ideas after failed write = %d, want 1", ideas)
	}
}

func TestListSnapshots(t *testing.T) {
	store := newTestStore(t)
	older := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	for _, snap := range []models.Snapshot{testSnapshot("old", older), testSnapshot("new", newer)} {
		if _, err := store.WriteSnapshot(snap); err != nil {
			t.Fatalf("WriteSnapshot(%s) failed: %v", snap.ID, err)
		}
	}

	got, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() failed: %v", err)
	}
	want := []storage.SnapshotInfo{
		{ID: "new", Month: time.January, Year: 2025, GeneratedAt: newer, Posts: 2, Ready: 1, Ideas: 1},
		{ID: "old", Month: time.January, Year: 2025, GeneratedAt: older, Posts: 2, Ready: 1, Ideas: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListSnapshots() mismatch (-want +got):\n%s", diff)
	}
}

func TestUninitializedStore(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "exports.db"))

	if _, err := store.WriteSnapshot(models.Snapshot{}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("WriteSnapshot() before Init = %v, want ErrNotInitialized", err)
	}
	if _, err := store.ListSnapshots(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ListSnapshots() before Init = %v, want ErrNotInitialized", err)
	}
}

func TestInitBacksUpExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports.db")

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("first Init() failed: %v", err)
	}
	if _, err := first.WriteSnapshot(testSnapshot("snap-1", time.Now())); err != nil {
		t.Fatalf("WriteSnapshot() failed: %v", err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
	defer second.Close()

	entries, err := os.ReadDir(filepath.Join(dir, constants.BackupDirName))
	if err != nil {
		t.Fatalf("reading backup dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("backups after reopening = %d, want 1", len(entries))
	}

	if got := second.Describe(); got != path {
		t.Errorf("Describe() = %q, want %q", got, path)
	}
}
