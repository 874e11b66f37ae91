// Package models defines the core data types for the command bookmark store.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// HashLen is the number of hex characters kept from the command fingerprint.
const HashLen = 8

// DefaultGroup is the group used when the caller does not name one.
const DefaultGroup = "miscellaneous"

// Command is a single bookmarked shell command as persisted in a group file.
type Command struct {
	Command   string `yaml:"command"`
	Comment   string `yaml:"comment,omitempty"`
	Hash      string `yaml:"hash"`
	CreatedAt string `yaml:"created_at"`
}

// NewCommand builds a Command from text, deriving its hash and stamping the
// creation time.
func NewCommand(text, comment string) Command {
	return Command{
		Command:   text,
		Comment:   comment,
		Hash:      Hash(text),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// WithText returns a copy of c carrying new text. The hash is recomputed, so
// the result is a new identity.
func (c Command) WithText(text string) Command {
	c.Command = text
	c.Hash = Hash(text)
	return c
}

// Group is a named bucket of commands persisted as one file per store root.
type Group struct {
	Name     string    `yaml:"group"`
	Commands []Command `yaml:"commands"`
}

// NewGroup returns an empty group called name.
func NewGroup(name string) *Group {
	return &Group{Name: name, Commands: make([]Command, 0)}
}

// IndexOf returns the position of the command with the given hash, or -1.
func (g *Group) IndexOf(hash string) int {
	for i, c := range g.Commands {
		if c.Hash == hash {
			return i
		}
	}
	return -1
}

// HasText reports whether the group already holds a command with exactly text.
func (g *Group) HasText(text string) bool {
	for _, c := range g.Commands {
		if c.Command == text {
			return true
		}
	}
	return false
}

// RemoveHash drops every command with the given hash and reports whether
// anything was removed.
func (g *Group) RemoveHash(hash string) bool {
	kept := g.Commands[:0]
	removed := false
	for _, c := range g.Commands {
		if c.Hash == hash {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	g.Commands = kept
	return removed
}

// ResolvedCommand joins a command to the group and store root it came from.
// Index is its 1-based position in the merged listing of one invocation and
// is never persisted.
type ResolvedCommand struct {
	Command   Command
	Group     string
	StoreRoot string
	Index     int
}

// Hash returns the stable fingerprint of a command text: the first HashLen
// hex characters of its SHA-256 digest.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:HashLen]
}

var invalidGroupChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// SanitizeGroupName lower-cases name and collapses every run of characters
// outside [a-z0-9_-] into a single '-'. Leading and trailing dashes are
// trimmed. An empty result is ErrInvalidGroup.
func SanitizeGroupName(name string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = invalidGroupChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "", ErrInvalidGroup
	}
	return s, nil
}
