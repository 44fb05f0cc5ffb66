package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/postboard/internal/cli"
	"github.com/julianstephens/postboard/internal/validation"
)

// ValidateCmd checks the built-in tables and every generated month of a year
type ValidateCmd struct {
	Year int `help:"Year to check. Defaults to the year of the configured start month."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	year := c.Year
	if year == 0 {
		_, y, err := ctx.ResolveMonth("")
		if err != nil {
			return err
		}
		year = y
	}

	v := validation.New()
	failed := false

	catalogResult := v.ValidateCatalog(year)
	if catalogResult.HasConflicts() {
		failed = true
		fmt.Printf("❌ Reference tables (%d)\n", year)
		fmt.Print(indent(catalogResult.FormatReport()))
	} else {
		fmt.Printf("✓ Reference tables (%d)\n", year)
	}

	for m := 1; m <= 12; m++ {
		ctrl := ctx.NewController(time.Month(m), year)
		result := v.ValidateMonth(ctrl.Posts(), ctrl.Month(), ctrl.Year(), ctrl.MaxPostsPerDay())
		if result.HasConflicts() {
			failed = true
			fmt.Printf("❌ %s\n", ctrl.MonthTitle())
			fmt.Print(indent(result.FormatReport()))
			continue
		}
		fmt.Printf("✓ %s: %d posts\n", ctrl.MonthTitle(), len(ctrl.Posts()))
	}

	if failed {
		return errors.New("validation found conflicts")
	}
	return nil
}

func indent(report string) string {
	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "   " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
