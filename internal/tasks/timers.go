package tasks

import (
	"context"
	"time"
)

// Run drives the background work until ctx is cancelled: the season re-check, periodic
// auto-save and, when library.watch is set, rescans after folder changes.
func (s *Session) Run(ctx context.Context) error {
	season := time.NewTicker(s.cfg.Timers.SeasonCheck.Duration)
	defer season.Stop()

	autosave := time.NewTicker(s.cfg.Timers.Autosave.Duration)
	defer autosave.Stop()

	var changes <-chan struct{}
	if s.cfg.Library.Watch {
		w, err := NewWatcher(s.store.Folders(), s.cfg.Library.RescanInterval.Duration, s.logger)
		if err != nil {
			s.logger.Warn("library watching disabled", "error", err)
		} else {
			go w.Run(ctx)
			changes = w.Changes()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-season.C:
			s.CheckSeasons()
		case <-autosave.C:
			s.Save()
		case <-changes:
			if _, err := s.Scan(ctx, nil, ReasonWatch); err != nil {
				s.logger.Warn("rescan failed", "error", err)
			}
		}
	}
}

// CheckSeasons re-derives the view when a seasonal playlist enters or leaves its window.
// It reports whether the set of active seasons changed.
func (s *Session) CheckSeasons() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, changed := s.engine.RecheckSeasons(s.seasons)
	s.seasons = active
	if changed && s.engine.Filters().HolidayMode {
		s.notify("Seasonal playlists updated", s.engine.HolidayStatus())
	}
	return changed
}
