// Package store persists command groups as one YAML file per group inside a
// store root directory.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/sebas/internal/models"
)

// Ext is the file extension of a group file.
const Ext = ".yaml"

// Store reads and writes the group files of a single store root.
type Store struct {
	fs   afero.Fs
	root string
}

// New returns a Store for root on fs.
func New(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Root returns the store root directory.
func (s *Store) Root() string { return s.root }

// Path returns the file path backing group name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name+Ext)
}

// Exists reports whether group name has a file.
func (s *Store) Exists(name string) (bool, error) {
	return afero.Exists(s.fs, s.Path(name))
}

// Load returns the persisted group, or a fresh empty group when its file does
// not exist. A file that does not decode is ErrParse.
func (s *Store) Load(name string) (*models.Group, error) {
	path := s.Path(name)
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return models.NewGroup(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.Load %s: %w", path, err)
	}

	var g models.Group
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("store.Load %s: %w: %v", path, models.ErrParse, err)
	}
	// The file name is the group's identity; a stale or hand-edited group
	// key must not redirect writes to another file.
	g.Name = name
	if g.Commands == nil {
		g.Commands = make([]models.Command, 0)
	}
	return &g, nil
}

// Save overwrites the file of g. The write goes through a temporary file in
// the same directory so a failed write never leaves a truncated group.
func (s *Store) Save(g *models.Group) error {
	if g.Commands == nil {
		g.Commands = make([]models.Command, 0)
	}
	data, err := yaml.Marshal(g)
	if err != nil {
		return fmt.Errorf("store.Save %s: %w", g.Name, err)
	}

	tmp, err := afero.TempFile(s.fs, s.root, "."+g.Name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("store.Save %s: %w", g.Name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("store.Save %s: %w", g.Name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("store.Save %s: %w", g.Name, err)
	}
	if err := s.fs.Rename(tmpName, s.Path(g.Name)); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("store.Save %s: %w", g.Name, err)
	}
	return nil
}

// ListGroups returns the names of every group file at the root, sorted.
// A missing root lists nothing.
func (s *Store) ListGroups() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if errors.Is(err, os.ErrNotExist) {
		return make([]string, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.ListGroups %s: %w", s.root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if filepath.Ext(n) != Ext || strings.HasPrefix(n, ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(n, Ext))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the file of group name. A missing file is ErrNotFound.
func (s *Store) Delete(name string) error {
	ok, err := s.Exists(name)
	if err != nil {
		return fmt.Errorf("store.Delete %s: %w", name, err)
	}
	if !ok {
		return fmt.Errorf("store.Delete: group %q: %w", name, models.ErrNotFound)
	}
	if err := s.fs.Remove(s.Path(name)); err != nil {
		return fmt.Errorf("store.Delete %s: %w", name, err)
	}
	return nil
}

// Rename moves group oldName to newName. The source must exist (ErrNotFound)
// and the destination must not (ErrAlreadyExists); on either failure nothing
// is written.
func (s *Store) Rename(oldName, newName string) error {
	ok, err := s.Exists(oldName)
	if err != nil {
		return fmt.Errorf("store.Rename: %w", err)
	}
	if !ok {
		return fmt.Errorf("store.Rename: group %q: %w", oldName, models.ErrNotFound)
	}
	ok, err = s.Exists(newName)
	if err != nil {
		return fmt.Errorf("store.Rename: %w", err)
	}
	if ok {
		return fmt.Errorf("store.Rename: group %q: %w", newName, models.ErrAlreadyExists)
	}

	g, err := s.Load(oldName)
	if err != nil {
		return err
	}
	if err := s.fs.Rename(s.Path(oldName), s.Path(newName)); err != nil {
		return fmt.Errorf("store.Rename %s -> %s: %w", oldName, newName, err)
	}
	g.Name = newName
	return s.Save(g)
}
