// Package sqlite writes month snapshots to a local SQLite export database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/postboard/internal/backup"
	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/logger"
	"github.com/julianstephens/postboard/internal/migration"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/storage"
	"github.com/julianstephens/postboard/migrations"
)

// ErrNotInitialized is returned when the store is used before Init
var ErrNotInitialized = errors.New("export database not initialized")

type Store struct {
	path string
	db   *sql.DB
}

var _ storage.Sink = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init opens the database, creating it if needed, and applies pending
// migrations. An existing file is backed up first.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if _, err := backup.NewManager(s.path).CreateBackup(); err != nil {
			logger.Warn("Failed to back up export database before writing", "path", s.path, "error", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) Describe() string {
	return s.path
}

// tableExists checks if a table exists in the export database.
// The check is case-insensitive to match SQLite's behavior.
func (s *Store) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.SQLite)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "database", s.path)
	})
	return err
}

// WriteSnapshot stores the snapshot in a single transaction and returns
// the number of rows written.
func (s *Store) WriteSnapshot(snap models.Snapshot) (int64, error) {
	if s.db == nil {
		return 0, ErrNotInitialized
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var rows int64
	if _, err := tx.Exec(
		"INSERT INTO snapshots (id, month, year, generated_at) VALUES (?, ?, ?, ?)",
		snap.ID, int(snap.Month), snap.Year, snap.GeneratedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	rows++

	for _, p := range snap.Posts {
		if _, err := tx.Exec(
			`INSERT INTO posts (snapshot_id, id, type, title, description, scheduled_date, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snap.ID, p.ID, string(p.Type), p.Title, p.Description,
			p.ScheduledDate.Format(constants.DateFormat), string(snap.StatusOf(p.ID)),
		); err != nil {
			return 0, fmt.Errorf("failed to insert post %s: %w", p.ID, err)
		}
		rows++
	}

	for _, id := range sortedKeys(snap.Progress) {
		pr := snap.Progress[id]
		if _, err := tx.Exec(
			`INSERT INTO post_progress (snapshot_id, post_id, has_creative, creative_description, caption, status)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, id, boolToInt(pr.HasCreative), pr.CreativeDescription, pr.Caption, string(snap.StatusOf(id)),
		); err != nil {
			return 0, fmt.Errorf("failed to insert progress for %s: %w", id, err)
		}
		rows++

		for i, step := range pr.Steps {
			if _, err := tx.Exec(
				`INSERT INTO progress_steps (snapshot_id, post_id, position, step_id, text, completed)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				snap.ID, id, i, step.ID, step.Text, boolToInt(step.Completed),
			); err != nil {
				return 0, fmt.Errorf("failed to insert step %s: %w", step.ID, err)
			}
			rows++
		}
	}

	for _, idea := range snap.Ideas {
		if _, err := tx.Exec(
			`INSERT INTO ideas (snapshot_id, id, category, title, description, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, idea.ID, string(idea.Category), idea.Title, idea.Description,
			idea.CreatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return 0, fmt.Errorf("failed to insert idea %s: %w", idea.ID, err)
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return rows, nil
}

// ListSnapshots returns stored snapshots, newest first
func (s *Store) ListSnapshots() ([]storage.SnapshotInfo, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	rows, err := s.db.Query(`
		SELECT s.id, s.month, s.year, s.generated_at,
			(SELECT COUNT(*) FROM posts p WHERE p.snapshot_id = s.id),
			(SELECT COUNT(*) FROM posts p WHERE p.snapshot_id = s.id AND p.status = 'ready'),
			(SELECT COUNT(*) FROM ideas i WHERE i.snapshot_id = s.id)
		FROM snapshots s
		ORDER BY s.generated_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var out []storage.SnapshotInfo
	for rows.Next() {
		var (
			info      storage.SnapshotInfo
			month     int
			generated string
		)
		if err := rows.Scan(&info.ID, &month, &info.Year, &generated, &info.Posts, &info.Ready, &info.Ideas); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		info.Month = time.Month(month)
		if info.GeneratedAt, err = time.Parse(time.RFC3339, generated); err != nil {
			return nil, fmt.Errorf("invalid generated_at for snapshot %s: %w", info.ID, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func sortedKeys(m map[string]models.PostProgress) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
