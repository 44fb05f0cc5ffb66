package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/models"
)

// Conflict represents a detected problem in the catalog or a month's posts
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Names or titles involved
	PostIDs     []string // IDs of posts involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Summary returns a one-line description suitable for a banner
func (vr *ValidationResult) Summary() string {
	switch len(vr.Conflicts) {
	case 0:
		return ""
	case 1:
		return vr.Conflicts[0].Description
	default:
		return fmt.Sprintf("%s (+%d more)", vr.Conflicts[0].Description, len(vr.Conflicts)-1)
	}
}

// Validator checks the reference data and month plans for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateCatalog checks the built-in tables against a given year. Special
// days are year-agnostic, so February 29 is only flagged for common years.
func (v *Validator) ValidateCatalog(year int) ValidationResult {
	return v.validateTables(catalog.SpecialDays(), models.AllPostTypes, catalog.Describe, year)
}

func (v *Validator) validateTables(
	days []models.SpecialDay,
	types []models.PostType,
	describe func(models.PostType) (models.PostTypeDescriptor, bool),
	year int,
) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string][]string)
	var keys []string
	for _, sd := range days {
		if sd.Month < time.January || sd.Month > time.December || sd.Day < 1 || sd.Day > daysIn(sd.Month, year) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidSpecialDay,
				Description: fmt.Sprintf("Special day \"%s\" falls on an impossible date: month %d, day %d", sd.Name, sd.Month, sd.Day),
				Items:       []string{sd.Name},
			})
			continue
		}
		key := fmt.Sprintf("%02d-%02d", sd.Month, sd.Day)
		if _, ok := seen[key]; !ok {
			keys = append(keys, key)
		}
		seen[key] = append(seen[key], sd.Name)
	}

	sort.Strings(keys)
	for _, key := range keys {
		names := seen[key]
		if len(names) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateSpecialDay,
				Description: fmt.Sprintf("Multiple special days on %s: %v (only the first is shown)", key, names),
				Date:        fmt.Sprintf("%04d-%s", year, key),
				Items:       names,
			})
		}
	}

	for _, pt := range types {
		if desc, ok := describe(pt); !ok || desc.Label == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictMissingDescriptor,
				Description: fmt.Sprintf("Post type \"%s\" has no display descriptor", pt),
				Items:       []string{string(pt)},
			})
		}
	}

	return result
}

// ValidateMonth checks a month's post list for duplicate ids, posts dated
// outside the month, unknown types and days above maxPerDay.
func (v *Validator) ValidateMonth(posts []models.Post, month time.Month, year int, maxPerDay int) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	idCount := make(map[string]int)
	var idOrder []string
	for _, p := range posts {
		if idCount[p.ID] == 0 {
			idOrder = append(idOrder, p.ID)
		}
		idCount[p.ID]++
	}
	for _, id := range idOrder {
		if idCount[id] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicatePostID,
				Description: fmt.Sprintf("Duplicate post ID: \"%s\" (%d posts)", id, idCount[id]),
				PostIDs:     []string{id},
			})
		}
	}

	perDay := make(map[int][]string)
	for _, p := range posts {
		if !p.Type.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictUnknownPostType,
				Description: fmt.Sprintf("Post \"%s\" has unknown type \"%s\"", p.Title, p.Type),
				Items:       []string{p.Title},
				PostIDs:     []string{p.ID},
			})
		}
		if !p.InMonth(month, year) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictPostOutsideMonth,
				Description: fmt.Sprintf("Post \"%s\" is scheduled on %s, outside %s %d", p.Title, p.ScheduledDate.Format(constants.DateFormat), month, year),
				Date:        p.ScheduledDate.Format(constants.DateFormat),
				Items:       []string{p.Title},
				PostIDs:     []string{p.ID},
			})
			continue
		}
		perDay[p.Day()] = append(perDay[p.Day()], p.ID)
	}

	if maxPerDay > 0 {
		days := make([]int, 0, len(perDay))
		for day := range perDay {
			days = append(days, day)
		}
		sort.Ints(days)
		for _, day := range days {
			ids := perDay[day]
			if len(ids) > maxPerDay {
				date := time.Date(year, month, day, 0, 0, 0, 0, time.Local).Format(constants.DateFormat)
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictDayOverCap,
					Description: fmt.Sprintf("%s has %d posts (limit %d)", date, len(ids), maxPerDay),
					Date:        date,
					PostIDs:     ids,
				})
			}
		}
	}

	return result
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
