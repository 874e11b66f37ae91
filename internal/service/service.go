// Package service implements the Service orchestrator that wires together
// configuration, directory discovery, the group store, the resolver,
// redaction, search and the usage log.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/go-ports/sebas/internal/config"
	"github.com/go-ports/sebas/internal/discovery"
	"github.com/go-ports/sebas/internal/markdown"
	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/redaction"
	"github.com/go-ports/sebas/internal/resolver"
	"github.com/go-ports/sebas/internal/search"
	"github.com/go-ports/sebas/internal/store"
	"github.com/go-ports/sebas/internal/usage"
)

// ErrUsageDisabled is returned by Recent when usage.enabled is false.
var ErrUsageDisabled = errors.New("usage log is disabled (set usage.enabled: true)")

// Options configures New. Zero values select the defaults.
type Options struct {
	Home string   // sebas home; config.GetHome() when empty
	Dir  string   // discovery start directory; os.Getwd() when empty
	Fs   afero.Fs // filesystem holding the store roots; the OS filesystem when nil
}

// Service orchestrates all bookmark operations for one invocation.
type Service struct {
	Home   string
	Dir    string
	Config *config.Config

	fs             afero.Fs
	finder         *discovery.Finder
	now            func() time.Time
	usageLog       *usage.Log
	ignorePatterns []*regexp.Regexp
	mu             sync.Mutex
}

// New initialises a Service. The store roots are discovered lazily on every
// operation so a long-lived Service (the MCP server) sees new roots.
func New(opts Options) (*Service, error) {
	home := opts.Home
	if home == "" {
		home = config.GetHome()
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("service.New: working directory: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("service.New: %w", err)
	}

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &Service{
		Home:   home,
		Dir:    dir,
		Config: cfg,
		fs:     fs,
		finder: discovery.New(fs, cfg.StoreDir),
		now:    time.Now,
	}, nil
}

// Close releases all resources held by the service.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usageLog == nil {
		return nil
	}
	err := s.usageLog.Close()
	s.usageLog = nil
	return err
}

// ---------------------------------------------------------------------------
// Lazy helpers
// ---------------------------------------------------------------------------

// usage returns the usage log, opening it on first use (thread-safe).
func (s *Service) usage() (*usage.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usageLog != nil {
		return s.usageLog, nil
	}
	l, err := usage.Open(filepath.Join(s.Home, usage.FileName))
	if err != nil {
		return nil, err
	}
	s.usageLog = l
	return l, nil
}

// getIgnorePatterns returns redaction patterns, lazily loaded from the home ignore file.
func (s *Service) getIgnorePatterns() []*regexp.Regexp {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ignorePatterns != nil {
		return s.ignorePatterns
	}
	patterns, err := redaction.LoadIgnore(filepath.Join(s.Home, redaction.IgnoreFile))
	if err != nil {
		slog.Warn("failed to load ignore file", "file", redaction.IgnoreFile, "err", err)
	}
	if patterns == nil {
		patterns = make([]*regexp.Regexp, 0)
	}
	s.ignorePatterns = patterns
	return patterns
}

// ---------------------------------------------------------------------------
// Discovery
// ---------------------------------------------------------------------------

// Roots returns the store roots visible from Dir, nearest first.
func (s *Service) Roots() ([]string, error) {
	return s.finder.Roots(s.Dir)
}

// nearest returns the store of the closest root, or ErrNoStoreRoot.
func (s *Service) nearest() (*store.Store, error) {
	root, ok, err := s.finder.Nearest(s.Dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrNoStoreRoot
	}
	return store.New(s.fs, root), nil
}

func (s *Service) resolver() (*resolver.Resolver, error) {
	roots, err := s.Roots()
	if err != nil {
		return nil, err
	}
	return resolver.New(s.fs, roots), nil
}

// RootInfo summarises one discovered store root.
type RootInfo struct {
	Root     string `json:"root"`
	Groups   int    `json:"groups"`
	Commands int    `json:"commands"`
}

// RootStats reports every discovered root with its group and command counts.
func (s *Service) RootStats() ([]RootInfo, error) {
	roots, err := s.Roots()
	if err != nil {
		return nil, err
	}
	out := make([]RootInfo, 0, len(roots))
	for _, root := range roots {
		st := store.New(s.fs, root)
		names, err := st.ListGroups()
		if err != nil {
			return nil, err
		}
		info := RootInfo{Root: root, Groups: len(names)}
		for _, name := range names {
			g, err := st.Load(name)
			if err != nil {
				return nil, err
			}
			info.Commands += len(g.Commands)
		}
		out = append(out, info)
	}
	return out, nil
}

// Init creates a store root inside path, which is relative to Dir. created
// is false when the root already existed.
func (s *Service) Init(path string) (root string, created bool, err error) {
	switch {
	case path == "":
		path = s.Dir
	case !filepath.IsAbs(path):
		path = filepath.Join(s.Dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("service.Init: %w", err)
	}
	root = filepath.Join(abs, s.Config.StoreDir)
	exists, err := afero.DirExists(s.fs, root)
	if err != nil {
		return "", false, fmt.Errorf("service.Init: %w", err)
	}
	if exists {
		return root, false, nil
	}
	if err := s.fs.MkdirAll(root, 0o755); err != nil {
		return "", false, fmt.Errorf("service.Init: %w", err)
	}
	return root, true, nil
}

// ---------------------------------------------------------------------------
// Listing and lookup
// ---------------------------------------------------------------------------

// List returns the merged listing, optionally restricted to group. Indexes
// always refer to the unfiltered listing.
func (s *Service) List(group string) ([]models.ResolvedCommand, error) {
	r, err := s.resolver()
	if err != nil {
		return nil, err
	}
	all, err := r.ResolveAll()
	if err != nil {
		return nil, err
	}
	if group == "" {
		return all, nil
	}
	name, err := models.SanitizeGroupName(group)
	if err != nil {
		return nil, err
	}
	return resolver.Filter(all, name), nil
}

// Resolve looks up a single entry by index or hash prefix.
func (s *Service) Resolve(id string) (models.ResolvedCommand, error) {
	r, err := s.resolver()
	if err != nil {
		return models.ResolvedCommand{}, err
	}
	return r.ResolveByIdentifier(id)
}

// Search ranks the merged listing against query.
func (s *Service) Search(query string, limit int) ([]search.Result, error) {
	all, err := s.List("")
	if err != nil {
		return nil, err
	}
	return search.Rank(all, query, limit), nil
}

// Export renders the merged listing as a Markdown cheat sheet.
func (s *Service) Export() (string, error) {
	roots, all, err := s.merged()
	if err != nil {
		return "", err
	}
	return markdown.Render(all, roots, s.now()), nil
}

// ExportFile writes the cheat sheet to path.
func (s *Service) ExportFile(path string) error {
	roots, all, err := s.merged()
	if err != nil {
		return err
	}
	if err := markdown.WriteFile(path, all, roots, s.now()); err != nil {
		return fmt.Errorf("service.ExportFile: %w", err)
	}
	return nil
}

func (s *Service) merged() ([]string, []models.ResolvedCommand, error) {
	roots, err := s.Roots()
	if err != nil {
		return nil, nil, err
	}
	all, err := resolver.New(s.fs, roots).ResolveAll()
	if err != nil {
		return nil, nil, err
	}
	return roots, all, nil
}
