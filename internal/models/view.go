package models

// Section is one of the fixed navigation sections.
type Section string

const (
	SectionLibrary   Section = "library"
	SectionFavorites Section = "favorites"
	SectionBlocked   Section = "blocked"
	SectionPlaylists Section = "playlists"
	SectionSettings  Section = "settings"
)

// Sections lists every section in display order.
var Sections = []Section{SectionLibrary, SectionFavorites, SectionBlocked, SectionPlaylists, SectionSettings}

// ParseSection validates a section name.
func ParseSection(s string) (Section, bool) {
	for _, section := range Sections {
		if string(section) == s {
			return section, true
		}
	}
	return "", false
}

// HasSongs reports whether the section renders a song list.
func (s Section) HasSongs() bool {
	return s == SectionLibrary || s == SectionFavorites || s == SectionBlocked
}

// View is exactly one of a section or a named playlist.
type View struct {
	Section  Section
	Playlist string
}

// SectionView returns a view of section s.
func SectionView(s Section) View { return View{Section: s} }

// PlaylistView returns a view of the named playlist.
func PlaylistView(name string) View { return View{Playlist: name} }

// IsPlaylist reports whether the view shows a named playlist.
func (v View) IsPlaylist() bool { return v.Playlist != "" }

func (v View) String() string {
	if v.IsPlaylist() {
		return "playlist:" + v.Playlist
	}
	return string(v.Section)
}

// Settings converts the view into its persisted form.
func (v View) Settings() *ViewSettings {
	if v.IsPlaylist() {
		name := v.Playlist
		return &ViewSettings{Playlist: &name}
	}
	section := string(v.Section)
	return &ViewSettings{Section: &section}
}

// ViewFromSettings restores a view, falling back to lastPlaylist and then the library.
//
// lastPlaylist may hold a section name as well as a playlist name.
func ViewFromSettings(vs *ViewSettings, lastPlaylist string) View {
	if vs != nil {
		if vs.Playlist != nil && *vs.Playlist != "" {
			return PlaylistView(*vs.Playlist)
		}
		if vs.Section != nil {
			if section, ok := ParseSection(*vs.Section); ok {
				return SectionView(section)
			}
		}
	}

	if lastPlaylist != "" {
		if section, ok := ParseSection(lastPlaylist); ok {
			return SectionView(section)
		}
		return PlaylistView(lastPlaylist)
	}
	return SectionView(SectionLibrary)
}
