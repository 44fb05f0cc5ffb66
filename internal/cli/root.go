package cli

import (
	"time"

	"github.com/julianstephens/postboard/internal/calendar"
	"github.com/julianstephens/postboard/internal/config"
	"github.com/julianstephens/postboard/internal/export"
)

// Context is passed to every command's Run method
type Context struct {
	Config     *config.Config
	ConfigPath string
	Now        func() time.Time
}

// NewContext builds a context around a loaded configuration
func NewContext(cfg *config.Config, configPath string) *Context {
	return &Context{
		Config:     cfg,
		ConfigPath: configPath,
		Now:        time.Now,
	}
}

// ResolveMonth parses a YYYY-MM argument, falling back to the configured
// start month when arg is empty.
func (c *Context) ResolveMonth(arg string) (time.Month, int, error) {
	if arg == "" {
		return c.Config.InitialMonth(c.Now())
	}
	return config.ParseMonth(arg, c.Now())
}

// NewController creates a calendar controller honoring the configured limits
func (c *Context) NewController(month time.Month, year int) *calendar.Controller {
	return calendar.New(month, year,
		calendar.WithMaxPostsPerDay(c.Config.MaxPostsPerDay),
		calendar.WithMoveCap(c.Config.EnforceMoveCap),
		calendar.WithCaptionLimit(c.Config.CaptionLimit),
		calendar.WithClock(c.Now),
	)
}

// ExportTarget returns the configured export destination for format,
// or the default format when format is empty.
func (c *Context) ExportTarget(format string) export.Target {
	if format == "" {
		format = c.Config.Export.Format
	}
	return export.Target{
		Format:   format,
		Dir:      c.Config.Export.Dir,
		Database: c.Config.Export.Database,
	}
}

// ConfigDir is where logs and the session lock live
func (c *Context) ConfigDir() string {
	return config.Dir(c.ConfigPath)
}
