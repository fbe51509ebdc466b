package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/samber/lo"
)

// Season is the calendar label shown next to the holiday toggle.
type Season int

const (
	OffSeason Season = iota
	Winter
	Spring
	Summer
	Autumn
	Halloween
)

// SeasonOf labels the month of now. October is Halloween rather than Autumn.
func SeasonOf(now time.Time) Season {
	switch now.Month() {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	case time.October:
		return Halloween
	case time.September, time.November:
		return Autumn
	default:
		return OffSeason
	}
}

func (s Season) String() string {
	switch s {
	case Winter:
		return "Winter"
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	case Halloween:
		return "Halloween"
	default:
		return "Off-season"
	}
}

// Icon returns the emoji used by the TUI status line.
func (s Season) Icon() string {
	switch s {
	case Winter:
		return "❄️"
	case Spring:
		return "🌸"
	case Summer:
		return "☀️"
	case Autumn:
		return "🍂"
	case Halloween:
		return "🎃"
	default:
		return ""
	}
}

// SeasonInfo renders "Current season: Winter (12/20)".
func SeasonInfo(now time.Time) string {
	return fmt.Sprintf("Current season: %s (%d/%d)", SeasonOf(now), int(now.Month()), now.Day())
}

// DisplayInSeason is the in-season marker shown beside seasonal playlists.
// It differs from [InSeason] only for christmas_music, which is marked from December 15.
// Filtering always uses [InSeason].
func DisplayInSeason(playlist string, now time.Time) bool {
	if playlist == models.ChristmasMusic {
		return now.Month() == time.December && now.Day() >= 15
	}
	return InSeason(playlist, now)
}

// HolidayStatus describes what holiday mode currently hides from the library.
func (e *Engine) HolidayStatus() string {
	if !e.filters.HolidayMode {
		return "All seasonal songs available year-round"
	}
	if n := e.Report().Seasonal; n > 0 {
		return fmt.Sprintf("%d seasonal songs currently filtered out", n)
	}
	return "No seasonal songs being filtered (all seasons active)"
}

// Header is the title and status line above the library list.
type Header struct {
	Title  string
	Status string
}

// Header summarizes the library view for the current artist selection.
func (e *Engine) Header() Header {
	r := e.Report()
	selected := e.filters.Artists

	if r.Remaining == 0 {
		h := Header{Title: "No Songs Available"}
		switch {
		case selected.IsEmpty():
			h.Status = "No artists selected"
		case r.Total > 0:
			h.Status = "All songs are filtered out"
		default:
			h.Status = "Refresh the library or check the music folders"
		}
		return h
	}

	h := Header{Status: fmt.Sprintf("%d songs available", r.Remaining)}
	if r.Filtered() > 0 {
		h.Status += fmt.Sprintf(" (%d songs filtered)", r.Filtered())
	}
	if selected.IsFull() {
		h.Title = "Your Music Library"
	} else {
		names := lo.Map(selected.Artists(), func(a models.Artist, _ int) string { return a.String() })
		h.Title = strings.Join(names, " & ") + " Songs"
	}
	return h
}

// RecheckSeasons compares the active seasonal playlists with prev and, when they differ
// while holiday mode is on, re-derives the view. It returns the current set.
func (e *Engine) RecheckSeasons(prev []string) (active []string, changed bool) {
	active = ActiveSeasons(e.now())
	if slices.Equal(active, prev) {
		return active, false
	}
	if e.filters.HolidayMode {
		e.logger.Info("season changed", "active", active)
		e.refresh()
		e.emit(Change{Kind: ChangeFilters})
	}
	return active, true
}
