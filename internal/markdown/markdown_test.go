package markdown_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/sebas/internal/markdown"
	"github.com/go-ports/sebas/internal/models"
)

func resolved(text, comment, group, root string, idx int) models.ResolvedCommand {
	return models.ResolvedCommand{
		Command:   models.NewCommand(text, comment),
		Group:     group,
		StoreRoot: root,
		Index:     idx,
	}
}

var generated = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// RenderSection
// ---------------------------------------------------------------------------

func TestRenderSection_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name  string
		entry models.ResolvedCommand
		want  string
	}{
		{
			name:  "without comment",
			entry: resolved("git status", "", "dev", "/w/.sebas", 2),
			want:  "**2.** `e62b04aa`\n\n```sh\ngit status\n```",
		},
		{
			name:  "with comment",
			entry: resolved("kubectl get pods", "list pods", "ops", "/w/.sebas", 3),
			want:  "**3.** `65fc12be` list pods\n\n```sh\nkubectl get pods\n```",
		},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(markdown.RenderSection(tc.entry), qt.Equals, tc.want)
		})
	}
}

// ---------------------------------------------------------------------------
// Render
// ---------------------------------------------------------------------------

func TestRender_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("empty list", func(c *qt.C) {
		got := markdown.Render(nil, nil, generated)
		c.Assert(got, qt.Equals, "---\ngenerated: 2024-05-01T10:00:00Z\nroots: []\n---\n\n# Sebas Commands\n\n_No commands saved._\n")
	})

	c.Run("roots and groups get headings in merge order", func(c *qt.C) {
		entries := []models.ResolvedCommand{
			resolved("git pull", "", "dev", "/work/app/.sebas", 1),
			resolved("git status", "", "dev", "/work/app/.sebas", 2),
			resolved("kubectl get pods", "", "ops", "/work/.sebas", 3),
		}
		roots := []string{"/work/app/.sebas", "/work/.sebas"}

		want := "---\n" +
			"generated: 2024-05-01T10:00:00Z\n" +
			"roots: [/work/app/.sebas, /work/.sebas]\n" +
			"---\n" +
			"\n# Sebas Commands\n" +
			"\n## /work/app/.sebas\n" +
			"\n### dev\n" +
			"\n**1.** `b3244c57`\n\n```sh\ngit pull\n```\n" +
			"\n**2.** `e62b04aa`\n\n```sh\ngit status\n```\n" +
			"\n## /work/.sebas\n" +
			"\n### ops\n" +
			"\n**3.** `65fc12be`\n\n```sh\nkubectl get pods\n```\n"
		c.Assert(markdown.Render(entries, roots, generated), qt.Equals, want)
	})

	c.Run("same group name in two roots gets two headings", func(c *qt.C) {
		entries := []models.ResolvedCommand{
			resolved("ls -la", "", "misc", "/a/.sebas", 1),
			resolved("docker ps", "", "misc", "/.sebas", 2),
		}
		got := markdown.Render(entries, nil, generated)
		c.Assert(got, qt.Contains, "## /a/.sebas\n\n### misc\n")
		c.Assert(got, qt.Contains, "## /.sebas\n\n### misc\n")
	})
}

func TestWriteFile_HappyPath(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "commands.md")
	entries := []models.ResolvedCommand{resolved("make test", "", "build", "/w/.sebas", 1)}

	c.Assert(markdown.WriteFile(path, entries, []string{"/w/.sebas"}, generated), qt.IsNil)
	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, markdown.Render(entries, []string{"/w/.sebas"}, generated))
	c.Assert(string(data), qt.Contains, "`22cc66aa`")
}
