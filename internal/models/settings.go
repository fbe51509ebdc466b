package models

// Settings is the JSON document persisted between runs.
type Settings struct {
	HolidayMode     bool              `json:"holidayMode"`
	Volume          int               `json:"volume"`
	Playback        PlaybackSettings  `json:"playback"`
	Equalizer       EqualizerSettings `json:"equalizer"`
	SelectedArtists []string          `json:"selectedArtists"`
	CurrentView     *ViewSettings     `json:"currentView,omitempty"`
}

// PlaybackSettings restores the transport on start.
type PlaybackSettings struct {
	RepeatMode    RepeatMode `json:"repeatMode"`
	Shuffled      bool       `json:"shuffled"`
	LastSongIndex int        `json:"lastSongIndex"`
	LastPlaylist  string     `json:"lastPlaylist"`
	CurrentSong   *SongRef   `json:"currentSong"`
}

// EqualizerSettings maps band frequency (as a string, e.g. "60") to gain in dB.
type EqualizerSettings struct {
	Enabled bool               `json:"enabled"`
	Preset  string             `json:"preset"`
	Bands   map[string]float64 `json:"bands"`
}

// ViewSettings holds exactly one non-nil field.
type ViewSettings struct {
	Section  *string `json:"section"`
	Playlist *string `json:"playlist"`
}

// DefaultVolume is the volume used for fresh installs.
const DefaultVolume = 70

// DefaultSettings returns the settings written on first run and by a reset.
func DefaultSettings() Settings {
	artists := make([]string, 0, len(SelectableArtists))
	for _, a := range SelectableArtists {
		artists = append(artists, a.String())
	}

	return Settings{
		HolidayMode: false,
		Volume:      DefaultVolume,
		Playback: PlaybackSettings{
			RepeatMode:   RepeatOff,
			LastPlaylist: string(SectionLibrary),
		},
		Equalizer: EqualizerSettings{
			Enabled: true,
			Preset:  "flat",
			Bands:   map[string]float64{},
		},
		SelectedArtists: artists,
	}
}

// Artists parses SelectedArtists, ignoring names it does not recognize.
func (s Settings) Artists() []Artist {
	artists := make([]Artist, 0, len(s.SelectedArtists))
	for _, name := range s.SelectedArtists {
		if a, ok := ParseArtist(name); ok && a != Unknown {
			artists = append(artists, a)
		}
	}
	return artists
}

// ClampVolume keeps v within 0-100.
func ClampVolume(v int) int {
	return max(0, min(100, v))
}
