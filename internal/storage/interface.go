// Package storage defines the export sinks a month snapshot can be written to.
package storage

import (
	"strings"
	"time"

	"github.com/julianstephens/postboard/internal/models"
)

// SnapshotInfo summarizes one stored snapshot
type SnapshotInfo struct {
	ID          string
	Month       time.Month
	Year        int
	GeneratedAt time.Time
	Posts       int
	Ready       int
	Ideas       int
}

// Sink persists exported snapshots. Implementations must write a snapshot
// atomically: either every row lands or none do.
type Sink interface {
	Init() error
	WriteSnapshot(snap models.Snapshot) (int64, error)
	ListSnapshots() ([]SnapshotInfo, error)
	Close() error
	// Describe returns a non-sensitive name for the target, safe to print
	Describe() string
}

// IsPostgresURL reports whether target looks like a PostgreSQL connection
// string rather than a file path.
func IsPostgresURL(target string) bool {
	t := strings.TrimSpace(target)
	if strings.HasPrefix(t, "postgres://") || strings.HasPrefix(t, "postgresql://") {
		return true
	}
	// DSN form: host=... dbname=...
	return strings.Contains(t, "host=") || strings.Contains(t, "dbname=")
}
