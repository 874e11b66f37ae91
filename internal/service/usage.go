package service

import (
	"log/slog"

	"github.com/go-ports/sebas/internal/models"
	"github.com/go-ports/sebas/internal/usage"
)

// Obtain records e in the usage log and returns it. Recording failures are
// logged and never fail the pick.
func (s *Service) Obtain(e models.ResolvedCommand) models.ResolvedCommand {
	if !s.Config.Usage.Enabled {
		return e
	}
	l, err := s.usage()
	if err != nil {
		slog.Warn("usage log unavailable", "err", err)
		return e
	}
	err = l.Record(usage.Pick{
		Hash:      e.Command.Hash,
		Command:   e.Command.Command,
		Group:     e.Group,
		StoreRoot: e.StoreRoot,
		PickedAt:  s.now(),
	})
	if err != nil {
		slog.Warn("failed to record pick", "hash", e.Command.Hash, "err", err)
	}
	return e
}

// Recent returns the most recently obtained commands, newest first.
func (s *Service) Recent(limit int) ([]usage.Pick, error) {
	if !s.Config.Usage.Enabled {
		return nil, ErrUsageDisabled
	}
	l, err := s.usage()
	if err != nil {
		return nil, err
	}
	return l.Recent(limit)
}

// PickCounts returns how often each hash has been obtained. It is empty when
// the usage log is disabled or cannot be opened.
func (s *Service) PickCounts() map[string]int {
	if !s.Config.Usage.Enabled {
		return map[string]int{}
	}
	l, err := s.usage()
	if err != nil {
		slog.Warn("usage log unavailable", "err", err)
		return map[string]int{}
	}
	counts, err := l.Counts()
	if err != nil {
		slog.Warn("failed to read pick counts", "err", err)
		return map[string]int{}
	}
	return counts
}

// Forget drops the usage history of hash.
func (s *Service) Forget(hash string) (int, error) {
	if !s.Config.Usage.Enabled {
		return 0, ErrUsageDisabled
	}
	l, err := s.usage()
	if err != nil {
		return 0, err
	}
	return l.Forget(hash)
}
