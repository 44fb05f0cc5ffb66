package cli

import (
	"testing"
	"time"

	"github.com/julianstephens/postboard/internal/config"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext(config.Default(), t.TempDir()+"/config.yaml")
	ctx.Now = func() time.Time { return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.Local) }
	return ctx
}

func TestResolveMonth(t *testing.T) {
	tests := []struct {
		name       string
		start      string
		arg        string
		wantMonth  time.Month
		wantYear   int
		wantErr    bool
	}{
		{"configured default", "2025-01", "", time.January, 2025, false},
		{"current", "current", "", time.March, 2026, false},
		{"explicit argument", "2025-01", "2025-07", time.July, 2025, false},
		{"bad argument", "2025-01", "July", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			ctx.Config.StartMonth = tt.start

			month, year, err := ctx.ResolveMonth(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveMonth() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (month != tt.wantMonth || year != tt.wantYear) {
				t.Errorf("ResolveMonth() = %s %d, want %s %d", month, year, tt.wantMonth, tt.wantYear)
			}
		})
	}
}

func TestNewControllerUsesConfig(t *testing.T) {
	ctx := testContext(t)
	ctx.Config.MaxPostsPerDay = 2

	ctrl := ctx.NewController(time.January, 2025)
	if ctrl.MaxPostsPerDay() != 2 {
		t.Errorf("MaxPostsPerDay() = %d, want 2", ctrl.MaxPostsPerDay())
	}
	if got := ctrl.Snapshot(nil).GeneratedAt; !got.Equal(ctx.Now()) {
		t.Errorf("snapshot clock = %v, want %v", got, ctx.Now())
	}
}

func TestExportTarget(t *testing.T) {
	ctx := testContext(t)
	ctx.Config.Export.Format = "html"

	if got := ctx.ExportTarget("").Format; got != "html" {
		t.Errorf("default format = %q, want html", got)
	}
	if got := ctx.ExportTarget("sqlite").Format; got != "sqlite" {
		t.Errorf("override format = %q, want sqlite", got)
	}
}
