package tasks

import (
	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
)

// ShowSection switches the view to a section.
func (s *Session) ShowSection(sec models.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ShowSection(sec)
}

// OpenPlaylist switches the view to a named playlist.
func (s *Session) OpenPlaylist(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.OpenPlaylist(name)
}

// SetHolidayMode toggles seasonal gating.
func (s *Session) SetHolidayMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetHolidayMode(on)
}

// ToggleArtist flips one artist in the selection.
func (s *Session) ToggleArtist(a models.Artist) engine.ArtistSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ToggleArtist(a)
}

// SetArtists replaces the artist selection.
func (s *Session) SetArtists(set engine.ArtistSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetArtists(set)
}

// SortBy toggles the sort projection of the current view.
func (s *Session) SortBy(field engine.SortField) engine.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SortBy(field)
}

// Search filters the current view by title or artist.
func (s *Session) Search(query string) []models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Search(query)
}

// CreatePlaylist creates an empty custom playlist and returns its normalized name.
func (s *Session) CreatePlaylist(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CreatePlaylist(name)
}

// DeletePlaylist removes a custom playlist and its file.
func (s *Session) DeletePlaylist(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.DeletePlaylist(name)
}

// AddToPlaylist adds a song to a playlist.
func (s *Session) AddToPlaylist(name, filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.AddToPlaylist(name, filename)
}

// RemoveFromPlaylist removes a song from a playlist.
func (s *Session) RemoveFromPlaylist(name, filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.RemoveFromPlaylist(name, filename)
}

// ToggleFavorite flips the song's favorites membership and returns the new state.
func (s *Session) ToggleFavorite(filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ToggleFavorite(filename)
}

// ToggleBlocked flips the song's blocked membership and returns the new state.
func (s *Session) ToggleBlocked(filename string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ToggleBlocked(filename)
}

// SetMemberships applies a batch of playlist memberships for one song.
func (s *Session) SetMemberships(filename string, want map[string]bool) (added, removed int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetMemberships(filename, want)
}

// SetVolume sets the 0-100 volume and returns the clamped level.
func (s *Session) SetVolume(level int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	level = s.volume.Set(level)
	s.applyVolume()
	s.scheduleSave()
	return level
}

// ToggleMute mutes or restores the previous volume and returns whether it is now muted.
func (s *Session) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	muted := s.volume.ToggleMute()
	s.applyVolume()
	s.scheduleSave()
	return muted
}

// ApplyPreset loads a named equalizer preset.
func (s *Session) ApplyPreset(name string) error {
	return s.equalize(func() error { return s.eq.ApplyPreset(name) })
}

// SetBand sets one equalizer band, switching to the custom preset.
func (s *Session) SetBand(hz int, db float64) error {
	return s.equalize(func() error { return s.eq.SetBand(hz, db) })
}

// SetEqualizerEnabled turns the equalizer on or off, keeping its bands.
func (s *Session) SetEqualizerEnabled(on bool) {
	s.equalize(func() error { s.eq.SetEnabled(on); return nil })
}

// ResetEqualizer returns every band to 0 dB.
func (s *Session) ResetEqualizer() {
	s.equalize(func() error { s.eq.Reset(); return nil })
}

// Equalizer returns the equalizer state.
func (s *Session) Equalizer() models.EqualizerSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eq.Settings()
}

func (s *Session) equalize(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	s.applyEqualizer()
	s.scheduleSave()
	return nil
}

func (s *Session) applyVolume() {
	if err := s.sink.SetVolume(s.volume.Gain()); err != nil {
		s.logger.Warn("failed to set volume", "error", err)
	}
}

func (s *Session) applyEqualizer() {
	if s.eqSink != nil {
		s.eq.Apply(s.eqSink)
	}
}
