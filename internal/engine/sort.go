package engine

import (
	"slices"
	"strings"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField selects the column a view is ordered by.
type SortField int

const (
	SortNone SortField = iota
	SortTitle
	SortDate
)

func (f SortField) String() string {
	switch f {
	case SortTitle:
		return "title"
	case SortDate:
		return "date"
	default:
		return "none"
	}
}

// ParseSortField accepts "title" (or "name") and "date".
func ParseSortField(s string) (SortField, bool) {
	switch strings.ToLower(s) {
	case "title", "name":
		return SortTitle, true
	case "date":
		return SortDate, true
	}
	return SortNone, false
}

// SortState is the current ordering of the view list.
type SortState struct {
	Field SortField
	Desc  bool
}

func (s SortState) String() string {
	if s.Field == SortNone {
		return "none"
	}
	if s.Desc {
		return s.Field.String() + " descending"
	}
	return s.Field.String() + " ascending"
}

// Toggle returns the state after the user picks field: the same field flips direction, a new field starts ascending.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field {
		return SortState{Field: field, Desc: !s.Desc}
	}
	return SortState{Field: field}
}

// SortSongs returns songs ordered by state. Titles use locale collation; undated songs sort last in both directions.
func SortSongs(songs []models.Song, state SortState) []models.Song {
	out := slices.Clone(songs)
	switch state.Field {
	case SortTitle:
		c := collate.New(language.English, collate.Loose)
		slices.SortStableFunc(out, func(a, b models.Song) int {
			cmp := c.CompareString(a.Title, b.Title)
			if state.Desc {
				return -cmp
			}
			return cmp
		})
	case SortDate:
		slices.SortStableFunc(out, func(a, b models.Song) int {
			switch {
			case !a.HasDate() && !b.HasDate():
				return 0
			case !a.HasDate():
				return 1
			case !b.HasDate():
				return -1
			}
			cmp := a.Date.Compare(b.Date)
			if state.Desc {
				return -cmp
			}
			return cmp
		})
	}
	return out
}

// Search returns the songs whose title or artist contains query, case-insensitively.
// An empty query returns every song.
func Search(songs []models.Song, query string) []models.Song {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return slices.Clone(songs)
	}
	return lo.Filter(songs, func(s models.Song, _ int) bool {
		return strings.Contains(strings.ToLower(s.Title), query) ||
			strings.Contains(strings.ToLower(s.Artist.String()), query)
	})
}
