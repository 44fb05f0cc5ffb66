package months

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/cli"
	"github.com/julianstephens/postboard/internal/config"
	"github.com/julianstephens/postboard/internal/models"
)

// SpecialsCmd lists the special days of one month, or of the whole year
type SpecialsCmd struct {
	Month string `help:"Only list this month (YYYY-MM or month number)."`
}

func (c *SpecialsCmd) Run(ctx *cli.Context) error {
	var days []models.SpecialDay
	if c.Month == "" {
		days = catalog.SpecialDays()
	} else {
		month, err := parseMonthOnly(c.Month, ctx)
		if err != nil {
			return err
		}
		days = catalog.SpecialDaysIn(month)
	}

	if len(days) == 0 {
		fmt.Println("No special days.")
		return nil
	}

	var current time.Month
	for _, sd := range days {
		if sd.Month != current {
			if current != 0 {
				fmt.Println()
			}
			current = sd.Month
			fmt.Println(current)
		}
		fmt.Printf("  %2d  %s %-34s %s\n", sd.Day, sd.Emoji, sd.Name, catalog.SpecialDayKindLabel(sd.Kind))
	}
	return nil
}

func parseMonthOnly(s string, ctx *cli.Context) (time.Month, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month must be between 1 and 12, got %d", n)
		}
		return time.Month(n), nil
	}
	month, _, err := config.ParseMonth(s, ctx.Now())
	return month, err
}

// TypesCmd prints the post type legend
type TypesCmd struct{}

func (c *TypesCmd) Run(ctx *cli.Context) error {
	for _, entry := range catalog.PostTypes() {
		fmt.Printf("%s  %-22s %-20s %s\n", entry.Icon, entry.Label, entry.Type, entry.Color)
	}
	return nil
}

func printSummary(counts map[models.PostType]int, total int) {
	type row struct {
		label string
		icon  string
		n     int
	}
	var rows []row
	for _, entry := range catalog.PostTypes() {
		if n := counts[entry.Type]; n > 0 {
			rows = append(rows, row{entry.Label, entry.Icon, n})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].n > rows[j].n })

	fmt.Println()
	fmt.Printf("Monthly summary: %d posts\n", total)
	for _, r := range rows {
		fmt.Printf("  %s %-22s %d\n", r.icon, r.label, r.n)
	}
}
