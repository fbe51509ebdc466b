package tasks

import (
	"errors"
	"time"

	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/player"
	"github.com/desertthunder/nmp/internal/shared"
)

// onChange persists each engine change. It runs with the session lock held.
func (s *Session) onChange(c engine.Change) {
	switch c.Kind {
	case engine.ChangePlaylist, engine.ChangePlaylistCreated:
		s.writePlaylist(c.Playlist)
	case engine.ChangePlaylistDeleted:
		if err := s.store.DeletePlaylist(c.Playlist); err != nil && !errors.Is(err, shared.ErrPlaylistNotFound) {
			s.logger.Warn("failed to delete playlist file", "playlist", c.Playlist, "error", err)
		}
	}

	if c.AffectsSettings() {
		s.scheduleSave()
	}
	s.publish(Event{Kind: EventChange, Change: c})
}

func (s *Session) writePlaylist(name string) {
	if err := s.store.WritePlaylist(name, s.engine.RawMembers(name)); err != nil {
		s.logger.Warn("failed to write playlist", "playlist", name, "error", err)
		s.publish(Event{Kind: EventError, Err: err})
	}
}

// scheduleSave marks the settings dirty and saves once changes stop for the debounce interval.
func (s *Session) scheduleSave() {
	s.dirty = true

	delay := s.cfg.Timers.SaveDebounce.Duration
	if delay <= 0 {
		s.saveLocked()
		return
	}

	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dirty && !s.closed {
			s.saveLocked()
		}
	})
}

// saveLocked writes the settings document. Failures are logged and returned.
func (s *Session) saveLocked() error {
	s.engine.Snapshot(&s.settings)
	s.settings.Volume = s.volume.Persisted()
	s.settings.Equalizer = s.eq.Settings()

	if err := s.store.SaveSettings(s.settings); err != nil {
		s.logger.Warn("failed to save settings", "error", err)
		return err
	}
	s.dirty = false
	return nil
}

// Save writes the settings document now.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// Settings returns the settings as they would be saved now.
func (s *Session) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.settings
	s.engine.Snapshot(&settings)
	settings.Volume = s.volume.Persisted()
	settings.Equalizer = s.eq.Settings()
	return settings
}

// ResetSettings deletes the settings document and restores defaults.
func (s *Session) ResetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(s.engine.Stop())
	settings, err := s.store.ResetSettings()
	if err != nil {
		return settings, err
	}
	s.restoreLocked(settings)
	return settings, nil
}

// restoreLocked applies a settings document to the engine and audio state.
func (s *Session) restoreLocked(settings models.Settings) {
	s.settings = settings
	s.engine.Restore(settings)
	s.volume = player.NewVolume(settings.Volume)
	s.eq = player.EqualizerFromSettings(settings.Equalizer)
	s.applyVolume()
	s.applyEqualizer()
	s.dirty = false
}
