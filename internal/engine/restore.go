package engine

import (
	"github.com/desertthunder/nmp/internal/models"
	"github.com/samber/lo"
)

// Restore applies persisted settings without emitting changes.
//
// The view falls back to the library when the saved playlist name is invalid. The current
// song is found by path, then by filename; failing both, only the saved index is kept.
// Playback always restores stopped.
func (e *Engine) Restore(s models.Settings) {
	e.restoring = true
	defer func() { e.restoring = false }()

	e.filters = Filters{HolidayMode: s.HolidayMode, Artists: NewArtistSet(s.Artists()...)}
	e.pb = playback{repeat: s.Playback.RepeatMode.Valid(), state: models.Stopped}
	e.shuffled = nil

	view := models.ViewFromSettings(s.CurrentView, s.Playback.LastPlaylist)
	if view.IsPlaylist() {
		if _, err := models.ValidatePlaylistName(view.Playlist); err != nil {
			e.logger.Warn("ignoring saved view", "playlist", view.Playlist, "error", err)
			view = models.SectionView(models.SectionLibrary)
		}
	}
	e.setView(view)

	if ref := s.Playback.CurrentSong; ref != nil {
		if song, ok := e.findRef(ref); ok {
			e.pb.current = &song
		}
	}
	if e.pb.current != nil {
		e.relocate()
	} else {
		e.pb.index = max(0, s.Playback.LastSongIndex)
		e.clampIndex()
	}

	e.SetShuffle(s.Playback.Shuffled)
	e.logger.Debug("restored settings", "view", e.view, "index", e.pb.index, "shuffled", e.pb.shuffled)
}

func (e *Engine) findRef(ref *models.SongRef) (models.Song, bool) {
	if song, ok := lo.Find(e.viewList, func(s models.Song) bool { return s.Path == ref.Path }); ok {
		return song, true
	}
	if song, ok := lo.Find(e.viewList, func(s models.Song) bool { return s.Filename == ref.Filename }); ok {
		return song, true
	}
	return models.Song{}, false
}

// Snapshot writes the engine-owned fields of s. Volume and equalizer are left untouched.
func (e *Engine) Snapshot(s *models.Settings) {
	s.HolidayMode = e.filters.HolidayMode
	s.SelectedArtists = lo.Map(e.filters.Artists.Artists(), func(a models.Artist, _ int) string { return a.String() })
	s.CurrentView = e.view.Settings()

	s.Playback.RepeatMode = e.pb.repeat
	s.Playback.Shuffled = e.pb.shuffled
	s.Playback.LastSongIndex = e.pb.index
	if e.view.IsPlaylist() {
		s.Playback.LastPlaylist = e.view.Playlist
	} else {
		s.Playback.LastPlaylist = string(e.view.Section)
	}
	s.Playback.CurrentSong = nil
	if e.pb.current != nil {
		s.Playback.CurrentSong = e.pb.current.Ref()
	}
}
