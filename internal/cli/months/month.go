package months

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/cli"
)

// MonthCmd prints the generated schedule of one month
type MonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the configured start month."`
	Day   int    `help:"Only show this day of the month."`
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	month, year, err := ctx.ResolveMonth(c.Month)
	if err != nil {
		return err
	}
	ctrl := ctx.NewController(month, year)

	if c.Day != 0 && (c.Day < 1 || c.Day > ctrl.DaysInMonth()) {
		return fmt.Errorf("day %d is outside %s", c.Day, ctrl.MonthTitle())
	}

	fmt.Printf("📅 %s\n\n", ctrl.MonthTitle())

	for day := 1; day <= ctrl.DaysInMonth(); day++ {
		if c.Day != 0 && day != c.Day {
			continue
		}
		posts := ctrl.PostsOnDay(day)
		special, hasSpecial := ctrl.SpecialDayOn(day)
		if len(posts) == 0 && !hasSpecial {
			continue
		}

		weekday := time.Date(year, month, day, 0, 0, 0, 0, time.Local).Weekday()
		header := fmt.Sprintf("%s %2d", strings.ToUpper(weekday.String()[:3]), day)
		if hasSpecial {
			header += fmt.Sprintf("  %s %s", special.Emoji, special.Name)
		}
		fmt.Println(header)

		for _, p := range posts {
			desc, _ := catalog.Describe(p.Type)
			fmt.Printf("    %s %-28s %s\n", desc.Icon, p.Title, p.ID)
		}
	}

	if c.Day == 0 {
		printSummary(ctrl.CountByType(), len(ctrl.Posts()))
	}
	return nil
}
