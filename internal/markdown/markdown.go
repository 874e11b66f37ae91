// Package markdown renders the merged command list as a Markdown cheat sheet.
package markdown

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-ports/sebas/internal/models"
)

// RenderSection produces the block for a single resolved command: an index,
// hash and optional comment line followed by a fenced sh block.
func RenderSection(e models.ResolvedCommand) string {
	var sb strings.Builder
	sb.WriteString("**")
	sb.WriteString(strconv.Itoa(e.Index))
	sb.WriteString(".** `")
	sb.WriteString(e.Command.Hash)
	sb.WriteString("`")
	if e.Command.Comment != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Command.Comment)
	}
	sb.WriteString("\n\n```sh\n")
	sb.WriteString(e.Command.Command)
	sb.WriteString("\n```")
	return sb.String()
}

// Render produces the full cheat sheet for entries in merge order: YAML
// front-matter, one ## heading per store root and one ### heading per group.
// roots lists every discovered store root, including empty ones.
func Render(entries []models.ResolvedCommand, roots []string, generated time.Time) string {
	var sb strings.Builder
	sb.WriteString(renderFrontmatter(roots, generated))
	sb.WriteString("\n# Sebas Commands\n")

	if len(entries) == 0 {
		sb.WriteString("\n_No commands saved._\n")
		return sb.String()
	}

	var lastRoot, lastGroup string
	for i, e := range entries {
		if i == 0 || e.StoreRoot != lastRoot {
			sb.WriteString("\n## ")
			sb.WriteString(e.StoreRoot)
			sb.WriteString("\n")
			lastRoot, lastGroup = e.StoreRoot, ""
		}
		if e.Group != lastGroup {
			sb.WriteString("\n### ")
			sb.WriteString(e.Group)
			sb.WriteString("\n")
			lastGroup = e.Group
		}
		sb.WriteString("\n")
		sb.WriteString(RenderSection(e))
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteFile renders entries and writes the cheat sheet to path.
func WriteFile(path string, entries []models.ResolvedCommand, roots []string, generated time.Time) error {
	content := Render(entries, roots, generated)
	return os.WriteFile(path, []byte(content), 0o644) // #nosec G306 -- comments are redacted before they are stored
}

// ---------------------------------------------------------------------------
// Front-matter
// ---------------------------------------------------------------------------

func renderFrontmatter(roots []string, generated time.Time) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString("generated: ")
	sb.WriteString(generated.UTC().Format(time.RFC3339))
	sb.WriteString("\n")
	sb.WriteString("roots: [")
	sb.WriteString(strings.Join(roots, ", "))
	sb.WriteString("]\n")
	sb.WriteString("---\n")
	return sb.String()
}
