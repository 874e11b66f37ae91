package service

import (
	"fmt"

	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/store"
)

// GroupInfo describes one group file.
type GroupInfo struct {
	Name      string `json:"name"`
	StoreRoot string `json:"store_root"`
	Commands  int    `json:"commands"`
}

// Groups lists the groups of every discovered root in merge order.
func (s *Service) Groups() ([]GroupInfo, error) {
	roots, err := s.Roots()
	if err != nil {
		return nil, err
	}
	var out []GroupInfo
	for _, root := range roots {
		st := store.New(s.fs, root)
		names, err := st.ListGroups()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			g, err := st.Load(name)
			if err != nil {
				return nil, err
			}
			out = append(out, GroupInfo{Name: name, StoreRoot: root, Commands: len(g.Commands)})
		}
	}
	return out, nil
}

// AddGroup creates an empty group file in the nearest root and returns the
// sanitized name.
func (s *Service) AddGroup(name string) (string, error) {
	clean, err := models.SanitizeGroupName(name)
	if err != nil {
		return "", err
	}
	st, err := s.nearest()
	if err != nil {
		return "", err
	}
	ok, err := st.Exists(clean)
	if err != nil {
		return "", err
	}
	if ok {
		return "", fmt.Errorf("service.AddGroup: group %q: %w", clean, models.ErrAlreadyExists)
	}
	return clean, st.Save(models.NewGroup(clean))
}

// RenameGroup renames a group of the nearest root and returns the sanitized
// new name. Collisions leave both groups untouched.
func (s *Service) RenameGroup(oldName, newName string) (string, error) {
	from, err := models.SanitizeGroupName(oldName)
	if err != nil {
		return "", err
	}
	to, err := models.SanitizeGroupName(newName)
	if err != nil {
		return "", err
	}
	st, err := s.nearest()
	if err != nil {
		return "", err
	}
	if from == to {
		ok, err := st.Exists(from)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("service.RenameGroup: group %q: %w", from, models.ErrNotFound)
		}
		return to, nil
	}
	return to, st.Rename(from, to)
}

// RemoveGroup deletes a group file of the nearest root with all its commands
// and returns how many commands it held.
func (s *Service) RemoveGroup(name string) (int, error) {
	clean, err := models.SanitizeGroupName(name)
	if err != nil {
		return 0, err
	}
	st, err := s.nearest()
	if err != nil {
		return 0, err
	}
	ok, err := st.Exists(clean)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("service.RemoveGroup: group %q: %w", clean, models.ErrNotFound)
	}
	g, err := st.Load(clean)
	if err != nil {
		return 0, err
	}
	return len(g.Commands), st.Delete(clean)
}
