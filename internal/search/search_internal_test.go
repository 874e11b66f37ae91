package search

// White-box testing required: per-field scoring and normalization are
// unexported and only their combined effect is visible through Rank.

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

// ---------------------------------------------------------------------------
// normalizeHits
// ---------------------------------------------------------------------------

func TestNormalizeHits_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("empty slice is a no-op", func(c *qt.C) {
		hits := make([]hit, 0)
		normalizeHits(hits) // must not panic
		c.Assert(hits, qt.HasLen, 0)
	})

	c.Run("single hit becomes score 1.0", func(c *qt.C) {
		hits := []hit{{pos: 0, score: 5}}
		normalizeHits(hits)
		c.Assert(hits[0].score, qt.Equals, 1.0)
	})

	c.Run("multiple hits divided by max", func(c *qt.C) {
		hits := []hit{{pos: 0, score: 4}, {pos: 1, score: 2}}
		normalizeHits(hits)
		c.Assert(hits[0].score, qt.Equals, 1.0)
		c.Assert(hits[1].score, qt.Equals, 0.5)
	})

	c.Run("zero max leaves scores at zero", func(c *qt.C) {
		hits := []hit{{pos: 0, score: 0}}
		normalizeHits(hits)
		c.Assert(hits[0].score, qt.Equals, 0.0)
	})
}

// ---------------------------------------------------------------------------
// fieldScore
// ---------------------------------------------------------------------------

func TestFieldScore(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name  string
		field string
		query string
		want  float64
	}{
		{name: "empty field", field: "", query: "git", want: 0},
		{name: "single term match", field: "git status", query: "git", want: 1},
		{name: "case-insensitive", field: "Git Status", query: "STATUS", want: 1},
		{name: "two terms without phrase", field: "status of git", query: "git status", want: 2},
		{name: "phrase bonus", field: "git status -s", query: "git status", want: 3},
		{name: "partial terms", field: "git pull", query: "git status", want: 1},
		{name: "no match", field: "docker ps", query: "git", want: 0},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			got := fieldScore(tt.field, Terms(tt.query), tt.query)
			c.Assert(got, qt.Equals, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// clamp
// ---------------------------------------------------------------------------

func TestClamp(t *testing.T) {
	c := qt.New(t)
	c.Assert(clamp(0, 5), qt.Equals, 5)
	c.Assert(clamp(-1, 5), qt.Equals, 5)
	c.Assert(clamp(3, 5), qt.Equals, 3)
	c.Assert(clamp(10, 5), qt.Equals, 5)
}
