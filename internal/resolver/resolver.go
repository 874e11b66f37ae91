// Package resolver merges the groups of every discovered store root into one
// addressable, stably indexed list.
package resolver

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/store"
)

// Resolver builds ResolvedCommand listings over a fixed, ordered set of store
// roots.
type Resolver struct {
	fs    afero.Fs
	roots []string
}

// New returns a Resolver over roots, which must already be in merge order
// (nearest first).
func New(fs afero.Fs, roots []string) *Resolver {
	return &Resolver{fs: fs, roots: roots}
}

// Roots returns the store roots in merge order.
func (r *Resolver) Roots() []string { return r.roots }

// ResolveAll loads every group of every root and returns the merged list:
// roots nearest first, groups by name, commands by text. Index is the 1-based
// position in the result. A group file that fails to parse aborts the pass.
func (r *Resolver) ResolveAll() ([]models.ResolvedCommand, error) {
	var out []models.ResolvedCommand
	for _, root := range r.roots {
		s := store.New(r.fs, root)
		names, err := s.ListGroups()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			g, err := s.Load(name)
			if err != nil {
				return nil, err
			}
			cmds := make([]models.Command, len(g.Commands))
			copy(cmds, g.Commands)
			sort.SliceStable(cmds, func(i, j int) bool {
				return cmds[i].Command < cmds[j].Command
			})
			for _, c := range cmds {
				out = append(out, models.ResolvedCommand{
					Command:   c,
					Group:     name,
					StoreRoot: root,
					Index:     len(out) + 1,
				})
			}
		}
	}
	return out, nil
}

// ResolveByIdentifier resolves id against a fresh ResolveAll pass.
func (r *Resolver) ResolveByIdentifier(id string) (models.ResolvedCommand, error) {
	all, err := r.ResolveAll()
	if err != nil {
		return models.ResolvedCommand{}, err
	}
	return Lookup(all, id)
}

// Lookup finds id in a merged list. A positive integer shorter than a full
// hash addresses Index; anything else is a hash prefix and the first entry in
// merge order whose hash starts with it wins.
func Lookup(entries []models.ResolvedCommand, id string) (models.ResolvedCommand, error) {
	id = strings.TrimSpace(id)
	if n, ok := parseIndex(id); ok {
		if n > len(entries) {
			return models.ResolvedCommand{}, fmt.Errorf("command %s: %w", id, models.ErrNotFound)
		}
		return entries[n-1], nil
	}

	id = strings.ToLower(id)
	for _, e := range entries {
		if strings.HasPrefix(e.Command.Hash, id) {
			return e, nil
		}
	}
	return models.ResolvedCommand{}, fmt.Errorf("command %s: %w", id, models.ErrNotFound)
}

// parseIndex reports whether id is a positional index. Digit strings of
// HashLen or more characters are treated as hashes.
func parseIndex(id string) (int, bool) {
	if id == "" || len(id) >= models.HashLen {
		return 0, false
	}
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Filter returns the entries belonging to group, keeping their indexes.
func Filter(entries []models.ResolvedCommand, group string) []models.ResolvedCommand {
	if group == "" {
		return entries
	}
	out := make([]models.ResolvedCommand, 0, len(entries))
	for _, e := range entries {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}
