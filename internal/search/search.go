// Package search ranks resolved commands against a free-text query.
package search

import (
	"sort"
	"strings"

	"github.com/go-ports/sebas/internal/models"
)

// Default weights for command-text and comment matches.
const (
	TextWeight    = 0.7
	CommentWeight = 0.3
)

// Result is a single search hit with a combined relevance score.
type Result struct {
	Entry models.ResolvedCommand
	Score float64
}

// hit is a raw per-field score for the entry at position pos of the merged list.
type hit struct {
	pos   int
	score float64
}

// Rank matches query case-insensitively against command text and comments and
// returns the hits ordered by descending score. Equal scores keep merge order.
// A blank query matches nothing. limit <= 0 returns every hit.
func Rank(entries []models.ResolvedCommand, query string, limit int) []Result {
	terms := Terms(query)
	if len(terms) == 0 {
		return nil
	}
	phrase := strings.ToLower(strings.TrimSpace(query))

	var text, comment []hit
	for i, e := range entries {
		if s := fieldScore(e.Command.Command, terms, phrase); s > 0 {
			text = append(text, hit{pos: i, score: s})
		}
		if s := fieldScore(e.Command.Comment, terms, phrase); s > 0 {
			comment = append(comment, hit{pos: i, score: s})
		}
	}
	return mergeResults(entries, text, comment, TextWeight, CommentWeight, limit)
}

// mergeResults combines text and comment hits with weighted scoring.
func mergeResults(entries []models.ResolvedCommand, text, comment []hit, textWeight, commentWeight float64, limit int) []Result {
	normalizeHits(text)
	normalizeHits(comment)

	// Combined map keyed by merge position.
	combined := make(map[int]float64, len(text)+len(comment))
	for _, h := range text {
		combined[h.pos] += textWeight * h.score
	}
	for _, h := range comment {
		combined[h.pos] += commentWeight * h.score
	}

	positions := make([]int, 0, len(combined))
	for pos := range combined {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	results := make([]Result, 0, len(positions))
	for _, pos := range positions {
		results = append(results, Result{Entry: entries[pos], Score: combined[pos]})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results[:clamp(limit, len(results))]
}

// Terms splits query into lower-cased whitespace-separated terms.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// fieldScore counts the terms contained in field, plus one when the whole
// multi-term phrase appears verbatim.
func fieldScore(field string, terms []string, phrase string) float64 {
	if field == "" {
		return 0
	}
	lower := strings.ToLower(field)
	var s float64
	for _, t := range terms {
		if strings.Contains(lower, t) {
			s++
		}
	}
	if s > 0 && len(terms) > 1 && strings.Contains(lower, phrase) {
		s++
	}
	return s
}

// normalizeHits divides each hit's score by the maximum score, producing [0, 1].
func normalizeHits(hits []hit) {
	if len(hits) == 0 {
		return
	}
	var maxScore float64
	for _, h := range hits {
		if h.score > maxScore {
			maxScore = h.score
		}
	}
	if maxScore <= 0 {
		maxScore = 1.0
	}
	for i := range hits {
		hits[i].score /= maxScore
	}
}

func clamp(limit, n int) int {
	if limit <= 0 {
		return n
	}
	if limit < n {
		return limit
	}
	return n
}
