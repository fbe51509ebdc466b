package engine

import (
	"strings"
	"time"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/samber/lo"
)

// ArtistSet is a set of selectable artists.
type ArtistSet uint8

// NewArtistSet returns a set holding artists.
func NewArtistSet(artists ...models.Artist) ArtistSet {
	var s ArtistSet
	for _, a := range artists {
		s = s.With(a)
	}
	return s
}

// AllArtists returns the full selectable set.
func AllArtists() ArtistSet { return NewArtistSet(models.SelectableArtists...) }

func (s ArtistSet) With(a models.Artist) ArtistSet    { return s | 1<<uint(a) }
func (s ArtistSet) Without(a models.Artist) ArtistSet { return s &^ (1 << uint(a)) }
func (s ArtistSet) Has(a models.Artist) bool          { return s&(1<<uint(a)) != 0 }
func (s ArtistSet) IsEmpty() bool                     { return s == 0 }
func (s ArtistSet) IsFull() bool                      { return s&AllArtists() == AllArtists() }

// Len counts the selectable artists in the set.
func (s ArtistSet) Len() int { return len(s.Artists()) }

// Artists lists the members in display order.
func (s ArtistSet) Artists() []models.Artist {
	return lo.Filter(models.SelectableArtists, func(a models.Artist, _ int) bool { return s.Has(a) })
}

func (s ArtistSet) String() string {
	return strings.Join(lo.Map(s.Artists(), func(a models.Artist, _ int) string { return a.String() }), ",")
}

// Filters is the global filter state applied to every derived view.
type Filters struct {
	HolidayMode bool
	Artists     ArtistSet
}

// DefaultFilters has holiday mode off and every artist selected.
func DefaultFilters() Filters {
	return Filters{Artists: AllArtists()}
}

// InSeason reports whether a seasonal playlist's window contains now.
// Christmas songs share the winter window. Non-seasonal names are always in season.
func InSeason(playlist string, now time.Time) bool {
	month := now.Month()
	switch playlist {
	case models.WinterMusic, models.ChristmasMusic:
		return month == time.December || month == time.January || month == time.February
	case models.HalloweenMusic:
		return month == time.October
	default:
		return true
	}
}

// ActiveSeasons lists the seasonal playlists whose window contains now.
func ActiveSeasons(now time.Time) []string {
	return lo.Filter(models.SeasonalPlaylists, func(name string, _ int) bool { return InSeason(name, now) })
}

type stage int

const (
	stageSeasonal stage = iota
	stageBlocked
	stageArtist
)

// pipeline holds the precomputed predicates for one derivation.
type pipeline struct {
	outOfSeason map[string]bool
	blocked     map[string]bool
	filters     Filters
}

func newPipeline(m Memberships, f Filters, now time.Time) pipeline {
	p := pipeline{outOfSeason: map[string]bool{}, blocked: map[string]bool{}, filters: f}
	if f.HolidayMode {
		for _, name := range models.SeasonalPlaylists {
			if InSeason(name, now) {
				continue
			}
			for _, filename := range m[name] {
				p.outOfSeason[filename] = true
			}
		}
	}
	for _, filename := range m[models.Blocked] {
		p.blocked[filename] = true
	}
	return p
}

func (p pipeline) keep(st stage, s models.Song) bool {
	switch st {
	case stageSeasonal:
		return !p.outOfSeason[s.Filename]
	case stageBlocked:
		return !p.blocked[s.Filename]
	default:
		switch {
		case p.filters.Artists.IsEmpty():
			return false
		case p.filters.Artists.IsFull():
			return true
		default:
			return p.filters.Artists.Has(s.Artist)
		}
	}
}

func (p pipeline) run(songs []models.Song, stages ...stage) []models.Song {
	out := songs
	for _, st := range stages {
		out = lo.Filter(out, func(s models.Song, _ int) bool { return p.keep(st, s) })
	}
	return out
}

// DeriveView applies holiday gating, then the blocked list, then the artist selection.
// The result preserves library order and depends only on its arguments.
func DeriveView(library []models.Song, m Memberships, f Filters, now time.Time) []models.Song {
	return newPipeline(m, f, now).run(library, stageSeasonal, stageBlocked, stageArtist)
}

// FilterReport counts how many songs each pipeline step removed, in pipeline order.
type FilterReport struct {
	Total     int
	Seasonal  int
	Blocked   int
	Artist    int
	Remaining int
}

// Filtered is the number of songs hidden by any step.
func (r FilterReport) Filtered() int { return r.Total - r.Remaining }

// Report runs the same pipeline as [DeriveView] and records each step's exclusions.
// A song removed by an earlier step is never counted again by a later one.
func Report(library []models.Song, m Memberships, f Filters, now time.Time) FilterReport {
	p := newPipeline(m, f, now)
	r := FilterReport{Total: len(library)}

	afterSeason := p.run(library, stageSeasonal)
	r.Seasonal = len(library) - len(afterSeason)

	afterBlocked := p.run(afterSeason, stageBlocked)
	r.Blocked = len(afterSeason) - len(afterBlocked)

	remaining := p.run(afterBlocked, stageArtist)
	r.Artist = len(afterBlocked) - len(remaining)
	r.Remaining = len(remaining)
	return r
}
