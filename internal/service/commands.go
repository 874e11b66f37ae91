package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/redaction"
	"github.com/go-ports/sebas/internal/store"
)

// AddInput is the raw input of Add.
type AddInput struct {
	Command string
	Group   string // Config.DefaultGroup when empty
	Comment string
}

// AddResult describes a stored command.
type AddResult struct {
	Entry    models.ResolvedCommand
	NewGroup bool     // the group file did not exist before
	Warnings []string // secret-looking content in the command text
}

// EditInput carries the fields to change; nil leaves a field as it is.
type EditInput struct {
	Command *string
	Group   *string
	Comment *string
}

// EditResult holds an entry before and after an edit. After.Index is zero
// because the merged listing has changed.
type EditResult struct {
	Before   models.ResolvedCommand
	After    models.ResolvedCommand
	Warnings []string
}

// TargetGroup returns the sanitized group Add would write to for group.
func (s *Service) TargetGroup(group string) (string, error) {
	if strings.TrimSpace(group) == "" {
		group = s.Config.DefaultGroup
	}
	return models.SanitizeGroupName(group)
}

// GroupExists reports whether group has a file in the nearest store root.
func (s *Service) GroupExists(group string) (bool, error) {
	name, err := s.TargetGroup(group)
	if err != nil {
		return false, err
	}
	st, err := s.nearest()
	if err != nil {
		return false, err
	}
	return st.Exists(name)
}

// Add stores a new command in the nearest store root. The comment is
// redacted; command text is kept verbatim and only produces warnings.
func (s *Service) Add(in AddInput) (*AddResult, error) {
	text := strings.TrimSpace(in.Command)
	if text == "" {
		return nil, models.ErrEmptyCommand
	}
	name, err := s.TargetGroup(in.Group)
	if err != nil {
		return nil, err
	}
	st, err := s.nearest()
	if err != nil {
		return nil, err
	}

	existed, err := st.Exists(name)
	if err != nil {
		return nil, err
	}
	g, err := st.Load(name)
	if err != nil {
		return nil, err
	}
	if g.HasText(text) {
		return nil, fmt.Errorf("service.Add: %q in group %q: %w", text, name, models.ErrAlreadyExists)
	}

	patterns := s.getIgnorePatterns()
	cmd := models.NewCommand(text, redaction.Redact(strings.TrimSpace(in.Comment), patterns))
	g.Commands = append(g.Commands, cmd)
	if err := st.Save(g); err != nil {
		return nil, err
	}

	return &AddResult{
		Entry:    models.ResolvedCommand{Command: cmd, Group: name, StoreRoot: st.Root()},
		NewGroup: !existed,
		Warnings: secretWarnings(text, patterns),
	}, nil
}

// Edit changes the entry addressed by id inside its own store root. A text
// change produces a new hash. Moving to another group removes the command
// from the source group first and deletes the source file when it empties.
func (s *Service) Edit(id string, in EditInput) (*EditResult, error) {
	before, err := s.Resolve(id)
	if err != nil {
		return nil, err
	}
	st := store.New(s.fs, before.StoreRoot)

	src, err := st.Load(before.Group)
	if err != nil {
		return nil, err
	}
	if src.IndexOf(before.Command.Hash) < 0 {
		return nil, fmt.Errorf("service.Edit: %s changed on disk: %w", st.Path(before.Group), models.ErrNotFound)
	}

	cmd := before.Command
	if in.Command != nil {
		text := strings.TrimSpace(*in.Command)
		if text == "" {
			return nil, models.ErrEmptyCommand
		}
		if text != cmd.Command {
			cmd = cmd.WithText(text)
		}
	}
	if in.Comment != nil {
		cmd.Comment = redaction.Redact(strings.TrimSpace(*in.Comment), s.getIgnorePatterns())
	}
	target := before.Group
	if in.Group != nil {
		if target, err = models.SanitizeGroupName(*in.Group); err != nil {
			return nil, err
		}
	}

	if target == before.Group {
		src.RemoveHash(before.Command.Hash)
		if src.HasText(cmd.Command) {
			return nil, fmt.Errorf("service.Edit: %q in group %q: %w", cmd.Command, target, models.ErrAlreadyExists)
		}
		src.Commands = append(src.Commands, cmd)
		if err := st.Save(src); err != nil {
			return nil, err
		}
	} else {
		dst, err := st.Load(target)
		if err != nil {
			return nil, err
		}
		if dst.HasText(cmd.Command) {
			return nil, fmt.Errorf("service.Edit: %q in group %q: %w", cmd.Command, target, models.ErrAlreadyExists)
		}
		dst.Commands = append(dst.Commands, cmd)
		// Write the destination first: a failure in between duplicates the
		// command rather than losing it.
		if err := st.Save(dst); err != nil {
			return nil, err
		}
		src.RemoveHash(before.Command.Hash)
		if err := s.saveOrDelete(st, src); err != nil {
			return nil, err
		}
	}

	res := &EditResult{
		Before: before,
		After:  models.ResolvedCommand{Command: cmd, Group: target, StoreRoot: before.StoreRoot},
	}
	if cmd.Hash != before.Command.Hash {
		res.Warnings = secretWarnings(cmd.Command, s.getIgnorePatterns())
	}
	return res, nil
}

// Remove deletes the entry addressed by id. Removing the last command of a
// group deletes the group file.
func (s *Service) Remove(id string) (models.ResolvedCommand, error) {
	e, err := s.Resolve(id)
	if err != nil {
		return models.ResolvedCommand{}, err
	}
	st := store.New(s.fs, e.StoreRoot)
	g, err := st.Load(e.Group)
	if err != nil {
		return models.ResolvedCommand{}, err
	}
	if !g.RemoveHash(e.Command.Hash) {
		return models.ResolvedCommand{}, fmt.Errorf("service.Remove: %s changed on disk: %w", st.Path(e.Group), models.ErrNotFound)
	}
	if err := s.saveOrDelete(st, g); err != nil {
		return models.ResolvedCommand{}, err
	}
	return e, nil
}

// saveOrDelete persists g, or removes its file when it holds no commands.
func (s *Service) saveOrDelete(st *store.Store, g *models.Group) error {
	if len(g.Commands) > 0 {
		return st.Save(g)
	}
	return st.Delete(g.Name)
}

// secretWarnings turns redaction findings for a command text into messages.
func secretWarnings(text string, patterns []*regexp.Regexp) []string {
	found := redaction.Findings(text, patterns)
	if len(found) == 0 {
		return nil
	}
	warnings := make([]string, 0, len(found))
	for _, f := range found {
		warnings = append(warnings, "command text looks like it contains a "+f)
	}
	return warnings
}
