// Package postgres writes month snapshots to a shared PostgreSQL database.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"sort"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/logger"
	"github.com/julianstephens/postboard/internal/migration"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/storage"
	"github.com/julianstephens/postboard/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var _ storage.Sink = (*Store)(nil)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
	ErrNotInitialized          = errors.New("export database not initialized")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath points unqualified table names at the postboard schema
func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if !hasSearchPathParam(s.connStr) {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

// hasSearchPathParam reports whether a DSN-style connection string has a
// search_path key (case-insensitive).
func hasSearchPathParam(connStr string) bool {
	return hasDSNKey(connStr, "search_path")
}

// hasSSLMode reports whether a URL- or DSN-style connection string has an
// sslmode key (case-insensitive).
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasDSNKey(connStr, "sslmode")
}

func hasDSNKey(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr is a well-formed PostgreSQL URI or
// DSN without an embedded password. Passwords belong in the OS keyring.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if hasDSNKey(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
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

// Describe returns a non-sensitive identifier instead of the connection string
func (s *Store) Describe() string {
	return "postgresql"
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS, migration.Postgres)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "database", "postgresql")
	})
	return err
}

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
		"INSERT INTO snapshots (id, month, year, generated_at) VALUES ($1, $2, $3, $4)",
		snap.ID, int(snap.Month), snap.Year, snap.GeneratedAt.UTC(),
	); err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	rows++

	for _, p := range snap.Posts {
		if _, err := tx.Exec(
			`INSERT INTO posts (snapshot_id, id, type, title, description, scheduled_date, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			snap.ID, p.ID, string(p.Type), p.Title, p.Description,
			p.ScheduledDate.Format(constants.DateFormat), string(snap.StatusOf(p.ID)),
		); err != nil {
			return 0, fmt.Errorf("failed to insert post %s: %w", p.ID, err)
		}
		rows++
	}

	ids := make([]string, 0, len(snap.Progress))
	for id := range snap.Progress {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		pr := snap.Progress[id]
		if _, err := tx.Exec(
			`INSERT INTO post_progress (snapshot_id, post_id, has_creative, creative_description, caption, status)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			snap.ID, id, pr.HasCreative, pr.CreativeDescription, pr.Caption, string(snap.StatusOf(id)),
		); err != nil {
			return 0, fmt.Errorf("failed to insert progress for %s: %w", id, err)
		}
		rows++

		for i, step := range pr.Steps {
			if _, err := tx.Exec(
				`INSERT INTO progress_steps (snapshot_id, post_id, position, step_id, text, completed)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				snap.ID, id, i, step.ID, step.Text, step.Completed,
			); err != nil {
				return 0, fmt.Errorf("failed to insert step %s: %w", step.ID, err)
			}
			rows++
		}
	}

	for _, idea := range snap.Ideas {
		if _, err := tx.Exec(
			`INSERT INTO ideas (snapshot_id, id, category, title, description, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			snap.ID, idea.ID, string(idea.Category), idea.Title, idea.Description, idea.CreatedAt.UTC(),
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
			info  storage.SnapshotInfo
			month int
		)
		if err := rows.Scan(&info.ID, &month, &info.Year, &info.GeneratedAt, &info.Posts, &info.Ready, &info.Ideas); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		info.Month = time.Month(month)
		out = append(out, info)
	}
	return out, rows.Err()
}
