package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	AppName            = "postboard"
	DefaultKeyringUser = "export-connection"
	DefaultConfigPath  = "~/.config/postboard/config.yaml"
	DefaultExportPath  = "~/.config/postboard/exports.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the format used for month arguments and config values (YYYY-MM)
	MonthFormat = "2006-01"

	// Calendar limits
	MaxPostsPerDay      = 4
	CaptionSoftLimit    = 280
	DefaultStartMonth   = "2025-01"
	StartMonthCurrent   = "current"
	DefaultExportFormat = "md"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "postboard-exports-"
	BackupFileSuffix = ".db"

	// Session lock
	LockfileName     = "postboard.lock"
	LockReadAttempts = 3
	LockRetryDelay   = 50 * time.Millisecond

	// Environment
	ConnectionEnvVar   = "POSTBOARD_DB_CONNECTION"
	TestPostgresEnvVar = "POSTBOARD_TEST_POSTGRES"

	// Conflict Types
	ConflictDuplicatePostID     ConflictType = "duplicate_post_id"
	ConflictPostOutsideMonth    ConflictType = "post_outside_month"
	ConflictUnknownPostType     ConflictType = "unknown_post_type"
	ConflictDayOverCap          ConflictType = "day_over_cap"
	ConflictDuplicateSpecialDay ConflictType = "duplicate_special_day"
	ConflictInvalidSpecialDay   ConflictType = "invalid_special_day"
	ConflictMissingDescriptor   ConflictType = "missing_descriptor"
)

// Session States
const (
	StateCalendar SessionState = iota
	StateIdeas
	StateLegend
	StateProgress
	StateAddPost
	StateAddIdea
	StateAddStep
	StateEditCaption
	StateConfirmDelete
)
