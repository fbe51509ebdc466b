package engine

import (
	"time"

	"github.com/desertthunder/nmp/internal/models"
)

// Members resolves the filename list behind a playlist name.
// winter_music includes christmas_music without duplicates.
func (m Memberships) Members(name string) []string {
	if name == models.WinterMusic {
		return m.Union(models.WinterMusic, models.ChristmasMusic)
	}
	return m[name]
}

// LoadNamed resolves a named playlist to songs in membership order and filters them.
//
// Filenames missing from the library are omitted. winter_music and halloween_music skip
// the holiday step, blocked skips the blocked step, and every other name runs the full pipeline.
// A missing playlist resolves to an empty list; creating it is left to the caller.
func LoadNamed(name string, lib *Library, m Memberships, f Filters, now time.Time) []models.Song {
	members := m.Members(name)
	songs := make([]models.Song, 0, len(members))
	for _, filename := range members {
		if song, ok := lib.Lookup(filename); ok {
			songs = append(songs, song)
		}
	}

	return newPipeline(m, f, now).run(songs, stagesFor(name)...)
}

func stagesFor(name string) []stage {
	switch name {
	case models.WinterMusic, models.HalloweenMusic:
		return []stage{stageBlocked, stageArtist}
	case models.Blocked:
		return []stage{stageSeasonal, stageArtist}
	default:
		return []stage{stageSeasonal, stageBlocked, stageArtist}
	}
}
