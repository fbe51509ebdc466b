package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
)

var (
	_ list.Item = songItem{}
	_ list.Item = playlistItem{}
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song     models.Song
	playing  bool
	favorite bool
}

func (i songItem) FilterValue() string { return i.song.Title + " " + i.song.Artist.String() }

func (i songItem) Title() string {
	var b strings.Builder
	if i.playing {
		b.WriteString("▶ ")
	}
	b.WriteString(i.song.Title)
	if i.favorite {
		b.WriteString(" ♥")
	}
	if i.playing {
		return styles.playing.Render(b.String())
	}
	return b.String()
}

func (i songItem) Description() string {
	parts := []string{artistStyle(i.song.Artist.String()).Render(i.song.Artist.String())}
	if label := i.song.DateLabel(); label != "" {
		parts = append(parts, label)
	}
	if i.song.Album != "" {
		parts = append(parts, i.song.Album)
	}
	return strings.Join(parts, " • ")
}

// playlistItem wraps [engine.PlaylistSummary] to implement [list.Item].
type playlistItem struct {
	summary engine.PlaylistSummary
}

func (i playlistItem) FilterValue() string { return i.summary.Name }
func (i playlistItem) Title() string       { return i.summary.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d songs • %s", i.summary.Songs, i.summary.Kind)
	if i.summary.Kind == models.SeasonalPlaylist {
		if i.summary.InSeason {
			desc += " • in season"
		} else {
			desc += " • out of season"
		}
	}
	return desc
}

func songItems(songs []models.Song, current string, favorites map[string]bool) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s, playing: s.Path == current, favorite: favorites[s.Filename]}
	}
	return items
}

func playlistItems(overview []engine.PlaylistSummary) []list.Item {
	items := make([]list.Item, len(overview))
	for i, p := range overview {
		items[i] = playlistItem{summary: p}
	}
	return items
}
