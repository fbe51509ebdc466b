package models

import (
	"fmt"
	"strings"
	"time"
)

// Artist identifies who performs a song.
type Artist int

const (
	Unknown Artist = iota
	Neuro
	Evil
	Duet
)

// SelectableArtists is the full artist set used by the artist filter.
var SelectableArtists = []Artist{Neuro, Evil, Duet}

func (a Artist) String() string {
	switch a {
	case Neuro:
		return "Neuro"
	case Evil:
		return "Evil"
	case Duet:
		return "Duet"
	default:
		return "Unknown"
	}
}

// ParseArtist maps a folder hint or display name to an [Artist], case-insensitively.
func ParseArtist(s string) (Artist, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "neuro":
		return Neuro, true
	case "evil":
		return Evil, true
	case "duet":
		return Duet, true
	case "unknown":
		return Unknown, true
	default:
		return Unknown, false
	}
}

// MarshalText implements [encoding.TextMarshaler] so artists serialize by name.
func (a Artist) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Artist) UnmarshalText(text []byte) error {
	parsed, ok := ParseArtist(string(text))
	if !ok {
		return fmt.Errorf("unknown artist %q", text)
	}
	*a = parsed
	return nil
}

// Song is one audio file in the library. Values are immutable once parsed.
type Song struct {
	Title        string    `json:"title"`
	Artist       Artist    `json:"artist"`
	Date         time.Time `json:"date,omitzero"` // zero when the filename carries no date tag
	Filename     string    `json:"filename"`
	Path         string    `json:"path"`
	IsEvilTagged bool      `json:"isEvilTagged"`
	Album        string    `json:"album,omitempty"`
	Genre        string    `json:"genre,omitempty"`
}

// HasDate reports whether a date tag was parsed from the filename.
func (s Song) HasDate() bool { return !s.Date.IsZero() }

// DateLabel formats the date as D/M/YYYY, or "" when absent.
func (s Song) DateLabel() string {
	if !s.HasDate() {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", s.Date.Day(), int(s.Date.Month()), s.Date.Year())
}

// Ref returns the reference stored in the settings document.
func (s Song) Ref() *SongRef {
	return &SongRef{Path: s.Path, Filename: s.Filename, Title: s.Title, Artist: s.Artist.String()}
}

// SongRef identifies the last played song in the settings document.
type SongRef struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
}
