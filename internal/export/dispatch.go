package export

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/postboard/internal/config"
	"github.com/julianstephens/postboard/internal/keyring"
	"github.com/julianstephens/postboard/internal/logger"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/storage"
	"github.com/julianstephens/postboard/internal/storage/postgres"
	"github.com/julianstephens/postboard/internal/storage/sqlite"
)

const (
	FormatSQLite   = "sqlite"
	FormatPostgres = "postgres"
)

// Target says where a snapshot goes
type Target struct {
	Format string
	// Dir receives md/html files named by Filename; Path overrides it
	Dir  string
	Path string
	// Database is a sqlite path, or for postgres an optional connection string
	Database string
}

// Result describes a finished export
type Result struct {
	Format   string
	Location string
	Rows     int64
}

// Run writes snap to the target
func Run(snap models.Snapshot, t Target) (Result, error) {
	if IsFileFormat(t.Format) {
		path := t.Path
		if path == "" {
			path = filepath.Join(config.ExpandPath(t.Dir), Filename(snap, t.Format))
		}
		if err := Write(snap, t.Format, path); err != nil {
			return Result{}, err
		}
		logger.Info("Snapshot exported", "format", t.Format, "path", path, "posts", len(snap.Posts))
		return Result{Format: t.Format, Location: path}, nil
	}

	sink, err := OpenSink(t.Format, t.Database)
	if err != nil {
		return Result{}, err
	}
	defer sink.Close()

	if err := sink.Init(); err != nil {
		return Result{}, err
	}
	rows, err := sink.WriteSnapshot(snap)
	if err != nil {
		return Result{}, err
	}
	logger.Info("Snapshot exported", "format", t.Format, "target", sink.Describe(), "rows", rows)
	return Result{Format: t.Format, Location: sink.Describe(), Rows: rows}, nil
}

// OpenSink returns an uninitialized database sink. For postgres the
// connection string comes from database, POSTBOARD_DB_CONNECTION or the OS
// keyring, in that order; only the keyring and environment may carry a
// password.
func OpenSink(format, database string) (storage.Sink, error) {
	switch format {
	case FormatSQLite:
		if database == "" || storage.IsPostgresURL(database) {
			return nil, errors.New("sqlite export needs a database file path")
		}
		return sqlite.NewStore(config.ExpandPath(database)), nil
	case FormatPostgres:
		explicit := ""
		if storage.IsPostgresURL(database) {
			explicit = database
		}
		connStr, source, err := keyring.Resolve(explicit)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no PostgreSQL connection configured: pass one, set POSTBOARD_DB_CONNECTION or run 'postboard keyring set'")
			}
			return nil, err
		}
		if source == keyring.SourceFlag {
			if _, err := postgres.ValidateConnString(connStr); err != nil {
				return nil, err
			}
		}
		logger.Debug("Using PostgreSQL connection", "source", source, "conn", keyring.Mask(connStr))
		return postgres.New(connStr), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
