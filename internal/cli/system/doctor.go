package system

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/postboard/internal/backup"
	"github.com/julianstephens/postboard/internal/cli"
	"github.com/julianstephens/postboard/internal/config"
	"github.com/julianstephens/postboard/internal/keyring"
	"github.com/julianstephens/postboard/internal/migration"
	"github.com/julianstephens/postboard/internal/storage"
	"github.com/julianstephens/postboard/internal/validation"
	"github.com/julianstephens/postboard/migrations"
)

// errNotCreated marks an export database that has never been written
var errNotCreated = errors.New("export database has not been created yet")

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(ctx *cli.Context) error
	warning bool
	needsDB bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []check{
		{name: "Config file", run: checkConfig},
		{name: "Reference tables", run: checkCatalog},
		{name: "Configured month", run: checkMonth},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
		{name: "Export database reachable", run: checkDBReachable, warning: true},
		{name: "Schema version", run: checkSchemaVersion, needsDB: true},
		{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
		{name: "Backups present", run: checkBackupsPresent, warning: true, needsDB: true},
		{name: "OS keyring", run: checkKeyring, warning: true},
	}

	hasError := false
	dbReachable := false
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (export database not available)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
			if c.name == "Export database reachable" {
				dbReachable = true
			}
		case c.warning:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkConfig(ctx *cli.Context) error {
	path := config.ExpandPath(ctx.ConfigPath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	_, err := config.Load(path)
	return err
}

func checkCatalog(ctx *cli.Context) error {
	_, year, err := ctx.ResolveMonth("")
	if err != nil {
		return err
	}
	result := validation.New().ValidateCatalog(year)
	if result.HasConflicts() {
		return errors.New(result.Summary())
	}
	return nil
}

func checkMonth(ctx *cli.Context) error {
	month, year, err := ctx.ResolveMonth("")
	if err != nil {
		return err
	}
	ctrl := ctx.NewController(month, year)
	result := validation.New().ValidateMonth(ctrl.Posts(), month, year, ctrl.MaxPostsPerDay())
	if result.HasConflicts() {
		return errors.New(result.Summary())
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// exportDBPath returns the configured SQLite export database, or "" when
// exports go to PostgreSQL.
func exportDBPath(ctx *cli.Context) string {
	if storage.IsPostgresURL(ctx.Config.Export.Database) {
		return ""
	}
	return config.ExpandPath(ctx.Config.Export.Database)
}

func openExportDB(ctx *cli.Context) (*sql.DB, error) {
	path := exportDBPath(ctx)
	if path == "" {
		return nil, errors.New("export database is PostgreSQL; only SQLite export databases are checked")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", errNotCreated, path)
	}
	return sql.Open("sqlite", path)
}

func exportRunner(db *sql.DB) (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(db, subFS, migration.SQLite), nil
}

func checkDBReachable(ctx *cli.Context) error {
	db, err := openExportDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func schemaVersions(ctx *cli.Context) (current, latest int, err error) {
	db, err := openExportDB(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer db.Close()

	runner, err := exportRunner(db)
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run an export to migrate)", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(exportDBPath(ctx))
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups in %s - create one with 'postboard backup create'", mgr.GetBackupDir())
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
