// Package export renders a month snapshot as Markdown or sanitized HTML.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/julianstephens/postboard/internal/catalog"
	"github.com/julianstephens/postboard/internal/constants"
	"github.com/julianstephens/postboard/internal/models"
	"github.com/julianstephens/postboard/internal/progress"
)

const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// ErrUnknownFormat is returned for a file format other than md or html
var ErrUnknownFormat = errors.New("unknown export format")

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()

	mdEscaper = strings.NewReplacer(
		`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
		"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
		"#", `\#`, "|", `\|`,
	)
)

// IsFileFormat reports whether format is rendered to a file by this package
func IsFileFormat(format string) bool {
	return format == FormatMarkdown || format == FormatHTML
}

// Filename returns the default file name for a snapshot export
func Filename(snap models.Snapshot, format string) string {
	return fmt.Sprintf("%s-%04d-%02d.%s", constants.AppName, snap.Year, int(snap.Month), format)
}

// Markdown renders the snapshot: a summary table, one section per day that
// has posts or a special day, then the idea bank.
func Markdown(snap models.Snapshot) []byte {
	var b strings.Builder
	title := fmt.Sprintf("%s %d", snap.Month, snap.Year)

	fmt.Fprintf(&b, "# Content Calendar: %s\n\n", title)
	if !snap.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s_\n\n", snap.GeneratedAt.Format("2006-01-02 15:04"))
	}

	writeSummary(&b, snap)
	writeSchedule(&b, snap)
	writeIdeas(&b, snap)

	return []byte(b.String())
}

func writeSummary(b *strings.Builder, snap models.Snapshot) {
	counts := make(map[models.PostType]int)
	ready := 0
	for _, p := range snap.Posts {
		counts[p.Type]++
		if snap.StatusOf(p.ID) == models.StatusReady {
			ready++
		}
	}

	b.WriteString("## Monthly Summary\n\n")
	b.WriteString("| Type | Posts |\n|---|---:|\n")
	for _, entry := range catalog.PostTypes() {
		if n := counts[entry.Type]; n > 0 {
			fmt.Fprintf(b, "| %s %s | %d |\n", entry.Icon, entry.Label, n)
		}
	}
	fmt.Fprintf(b, "\n**%d** of **%d** posts ready to post.\n\n", ready, len(snap.Posts))
}

func writeSchedule(b *strings.Builder, snap models.Snapshot) {
	byDay := make(map[int][]models.Post)
	for _, p := range snap.Posts {
		byDay[p.Day()] = append(byDay[p.Day()], p)
	}

	days := make(map[int]bool)
	for d := range byDay {
		days[d] = true
	}
	for _, sd := range catalog.SpecialDaysIn(snap.Month) {
		days[sd.Day] = true
	}
	ordered := make([]int, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Ints(ordered)

	b.WriteString("## Schedule\n\n")
	for _, day := range ordered {
		date := dateOf(snap, day)
		fmt.Fprintf(b, "### %s\n\n", date)

		if sd, ok := catalog.SpecialDayOn(snap.Month, day); ok {
			fmt.Fprintf(b, "> %s %s (%s)\n\n", sd.Emoji, mdEscaper.Replace(sd.Name), catalog.SpecialDayKindLabel(sd.Kind))
		}

		for _, p := range byDay[day] {
			writePost(b, snap, p)
		}
		if len(byDay[day]) > 0 {
			b.WriteString("\n")
		}
	}
}

func writePost(b *strings.Builder, snap models.Snapshot, p models.Post) {
	desc, _ := catalog.Describe(p.Type)
	status := snap.StatusOf(p.ID)
	mark := " "
	if status == models.StatusReady {
		mark = "x"
	}

	fmt.Fprintf(b, "- [%s] %s **%s** (%s): %s\n", mark, desc.Icon, mdEscaper.Replace(p.Title), desc.Label, progress.StatusLabel(status))
	if p.Description != "" {
		fmt.Fprintf(b, "  - %s\n", mdEscaper.Replace(p.Description))
	}

	pr, ok := snap.Progress[p.ID]
	if !ok {
		return
	}
	if len(pr.Steps) > 0 {
		fmt.Fprintf(b, "  - Steps: %d/%d complete\n", pr.CompletedSteps(), len(pr.Steps))
	}
	if pr.HasCreative {
		line := "Creative ready"
		if pr.CreativeDescription != "" {
			line += ": " + mdEscaper.Replace(pr.CreativeDescription)
		}
		fmt.Fprintf(b, "  - %s\n", line)
	}
	if caption := strings.TrimSpace(pr.Caption); caption != "" {
		fmt.Fprintf(b, "  - Caption: %s\n", mdEscaper.Replace(strings.ReplaceAll(caption, "\n", " ")))
	}
}

func writeIdeas(b *strings.Builder, snap models.Snapshot) {
	b.WriteString("## Idea Bank\n\n")
	if len(snap.Ideas) == 0 {
		b.WriteString("_No ideas yet._\n")
		return
	}
	for _, cat := range catalog.IdeaCategories() {
		var group []models.ContentIdea
		for _, idea := range snap.Ideas {
			if idea.Category == cat {
				group = append(group, idea)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(b, "### %s (%d)\n\n", catalog.IdeaCategoryLabel(cat), len(group))
		for _, idea := range group {
			fmt.Fprintf(b, "- **%s**: %s\n", mdEscaper.Replace(idea.Title), mdEscaper.Replace(idea.Description))
		}
		b.WriteString("\n")
	}
}

func dateOf(snap models.Snapshot, day int) string {
	return time.Date(snap.Year, snap.Month, day, 0, 0, 0, 0, time.Local).Format("Monday, January 2")
}

// HTML renders the Markdown export as a standalone, sanitized HTML page
func HTML(snap models.Snapshot) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownEngine.Convert(Markdown(snap), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	safe := sanitizer.SanitizeBytes(body.Bytes())

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(fmt.Sprintf("Content Calendar: %s %d", snap.Month, snap.Year)))
	page.WriteString("</head>\n<body>\n")
	page.Write(safe)
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Render returns the snapshot in the given file format
func Render(snap models.Snapshot, format string) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(snap), nil
	case FormatHTML:
		return HTML(snap)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Write renders the snapshot and writes it to path, creating parent directories
func Write(snap models.Snapshot, format, path string) error {
	data, err := Render(snap, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
