package exports

import (
	"fmt"

	"github.com/julianstephens/postboard/internal/cli"
	"github.com/julianstephens/postboard/internal/export"
)

// ExportCmd exports the generated schedule of a month
type ExportCmd struct {
	Month  string `arg:"" optional:"" help:"Month to export (YYYY-MM). Defaults to the configured start month."`
	Format string `help:"Export format: md, html, sqlite or postgres. Defaults to export.format."`
	Out    string `help:"Output file for md/html, database path for sqlite, or connection string for postgres."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	month, year, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return err
	}

	target := ctx.ExportTarget(c.Format)
	if c.Out != "" {
		if export.IsFileFormat(target.Format) {
			target.Path = c.Out
		} else {
			target.Database = c.Out
		}
	}

	snap := ctx.NewController(month, year).Snapshot(nil)
	res, err := export.Run(snap, target)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if res.Rows > 0 {
		fmt.Printf("✓ Exported %d posts from %s %d to %s (%d rows)\n", len(snap.Posts), month, year, res.Location, res.Rows)
	} else {
		fmt.Printf("✓ Exported %d posts from %s %d to %s\n", len(snap.Posts), month, year, res.Location)
	}
	return nil
}

// SnapshotsCmd lists snapshots stored in an export database
type SnapshotsCmd struct {
	Format   string `help:"Database type." enum:"sqlite,postgres" default:"sqlite"`
	Database string `help:"Database path or connection string. Defaults to export.database."`
}

func (c *SnapshotsCmd) Run(ctx *cli.Context) error {
	database := c.Database
	if database == "" {
		database = ctx.Config.Export.Database
	}

	sink, err := export.OpenSink(c.Format, database)
	if err != nil {
		return err
	}
	defer sink.Close()

	if err := sink.Init(); err != nil {
		return err
	}
	infos, err := sink.ListSnapshots()
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Printf("No snapshots in %s\n", sink.Describe())
		return nil
	}

	fmt.Printf("Snapshots in %s (%d):\n\n", sink.Describe(), len(infos))
	for _, info := range infos {
		fmt.Printf("  %s  %-14s %2d posts, %2d ready, %2d ideas  %s\n",
			info.GeneratedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%s %d", info.Month, info.Year),
			info.Posts, info.Ready, info.Ideas, info.ID)
	}
	return nil
}
