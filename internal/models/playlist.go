package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/nmp/internal/shared"
)

// Reserved and seasonal playlist names.
const (
	Favorites      = "favorites"
	Blocked        = "blocked"
	WinterMusic    = "winter_music"
	HalloweenMusic = "halloween_music"
	ChristmasMusic = "christmas_music"
)

// SeasonalPlaylists lists the playlists gated by holiday mode.
var SeasonalPlaylists = []string{WinterMusic, HalloweenMusic, ChristmasMusic}

// PlaylistKind classifies a playlist name.
type PlaylistKind int

const (
	CustomPlaylist PlaylistKind = iota
	ReservedPlaylist
	SeasonalPlaylist
)

func (k PlaylistKind) String() string {
	switch k {
	case ReservedPlaylist:
		return "reserved"
	case SeasonalPlaylist:
		return "seasonal"
	default:
		return "custom"
	}
}

// KindOf classifies a playlist name.
func KindOf(name string) PlaylistKind {
	switch {
	case name == Favorites || name == Blocked:
		return ReservedPlaylist
	case slices.Contains(SeasonalPlaylists, name):
		return SeasonalPlaylist
	default:
		return CustomPlaylist
	}
}

// IsCustom reports whether name is a user-created playlist.
func IsCustom(name string) bool { return KindOf(name) == CustomPlaylist }

const maxPlaylistName = 100

// ValidatePlaylistName trims name and rejects empty, over-long or path-like names.
func ValidatePlaylistName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", fmt.Errorf("%w: name is empty", shared.ErrInvalidPlaylistName)
	case len(name) > maxPlaylistName:
		return "", fmt.Errorf("%w: name longer than %d characters", shared.ErrInvalidPlaylistName, maxPlaylistName)
	case name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return "", fmt.Errorf("%w: %q is not a valid file name", shared.ErrInvalidPlaylistName, name)
	}
	return name, nil
}
