package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/postboard/internal/cli"
	"github.com/julianstephens/postboard/internal/cli/exports"
	"github.com/julianstephens/postboard/internal/cli/months"
	"github.com/julianstephens/postboard/internal/cli/system"
	"github.com/julianstephens/postboard/internal/config"
	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/errors"
	"github.com/julianstephens/postboard/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd     `cmd:"" help:"Write a default config file."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive calendar." default:"withargs"`
	Month    months.MonthCmd    `cmd:"" help:"Print the posts of a month."`
	Specials months.SpecialsCmd `cmd:"" help:"List special days."`
	Types    months.TypesCmd    `cmd:"" help:"List post types."`
	Validate system.ValidateCmd `cmd:"" help:"Check reference data and generated months for conflicts."`
	Export   exports.ExportCmd  `cmd:"" help:"Export a month as Markdown, HTML, SQLite or PostgreSQL."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`

	Snapshots exports.SnapshotsCmd `cmd:"" help:"List snapshots stored in an export database."`
	Backup    struct {
		Create  exports.BackupCreateCmd  `cmd:"" help:"Back up the SQLite export database." default:"1"`
		List    exports.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore exports.BackupRestoreCmd `cmd:"" help:"Restore the export database from a backup."`
	} `cmd:"" help:"Manage export database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether the OS keyring is usable."`
	} `cmd:"" help:"Manage the export connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Monthly social media content calendar"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	command := ctx.Command()
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		if command != "init" {
			errors.Fatal(errors.WithHint(err, "fix the file or recreate it with 'postboard init --force'"))
		}
		cfg = config.Default()
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Debug,
		ConfigDir: config.Dir(CLI.Config),
		NoStderr:  command == "tui" || command == "tui <month>",
	}); err != nil {
		errors.Fatal(err)
	}
	logger.Debug("Starting", "command", command, "config", CLI.Config)

	errors.Fatal(ctx.Run(cli.NewContext(cfg, CLI.Config)))
}
