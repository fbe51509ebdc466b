package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/samber/lo"
)

// Engine owns the library, playlist memberships, filters, view and playback position.
//
// It is not safe for concurrent use; the owning controller serializes access.
type Engine struct {
	library   *Library
	playlists Memberships
	filters   Filters
	view      models.View
	sort      SortState
	viewList  []models.Song
	shuffled  []models.Song
	pb        playback

	now       func() time.Time
	rng       *rand.Rand
	logger    *log.Logger
	listeners []Listener
	restoring bool
}

// Options configures an [Engine]. Zero values use the wall clock, a time-seeded RNG and a stderr logger.
type Options struct {
	Now    func() time.Time
	Rand   *rand.Rand
	Logger *log.Logger
}

// New creates an engine showing the empty library section.
func New(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Engine{
		library:   NewLibrary(),
		playlists: Memberships{},
		filters:   DefaultFilters(),
		view:      models.SectionView(models.SectionLibrary),
		sort:      SortState{Field: SortTitle},
		now:       opts.Now,
		rng:       opts.Rand,
		logger:    shared.WithLogger(opts.Logger, "component", "engine"),
	}
}

// Ingest adds songs from refs, skipping duplicates, and re-derives the view.
func (e *Engine) Ingest(refs []FileRef) (added, skipped int) {
	added, skipped = e.library.Ingest(refs)
	e.logger.Debug("ingested songs", "added", added, "skipped", skipped, "total", e.library.Len())
	e.refresh()
	e.emit(Change{Kind: ChangeLibrary})
	return added, skipped
}

// Refresh replaces the library with refs.
func (e *Engine) Refresh(refs []FileRef) (added, skipped int) {
	e.library.Reset()
	return e.Ingest(refs)
}

// Enrich attaches tag metadata to a library song, and its copies in the view, without emitting a change.
func (e *Engine) Enrich(path, album, genre string) {
	e.library.Enrich(path, album, genre)
	for _, list := range [][]models.Song{e.viewList, e.shuffled} {
		if i := indexOfPath(list, path); i >= 0 {
			list[i].Album, list[i].Genre = album, genre
		}
	}
}

// Library returns every song in ingestion order.
func (e *Engine) Library() []models.Song { return e.library.Songs() }

// Lookup finds a library song by filename.
func (e *Engine) Lookup(filename string) (models.Song, bool) { return e.library.Lookup(filename) }

// Now returns the engine clock.
func (e *Engine) Now() time.Time { return e.now() }

// Filters returns the current filter state.
func (e *Engine) Filters() Filters { return e.filters }

// SetHolidayMode toggles holiday-season gating.
func (e *Engine) SetHolidayMode(on bool) {
	if e.filters.HolidayMode == on {
		return
	}
	e.filters.HolidayMode = on
	e.refresh()
	e.emit(Change{Kind: ChangeFilters})
}

// SetArtists replaces the artist selection.
func (e *Engine) SetArtists(set ArtistSet) {
	if e.filters.Artists == set {
		return
	}
	e.filters.Artists = set
	e.refresh()
	e.emit(Change{Kind: ChangeFilters})
}

// ToggleArtist flips one artist in the selection and returns the new set.
func (e *Engine) ToggleArtist(a models.Artist) ArtistSet {
	if e.filters.Artists.Has(a) {
		e.SetArtists(e.filters.Artists.Without(a))
	} else {
		e.SetArtists(e.filters.Artists.With(a))
	}
	return e.filters.Artists
}

// Report counts the songs each filter step hides from the library.
func (e *Engine) Report() FilterReport {
	return Report(e.library.songs, e.playlists, e.filters, e.now())
}

// View returns the current view.
func (e *Engine) View() models.View { return e.view }

// ShowSection switches to a section. The library section resets to title order.
func (e *Engine) ShowSection(s models.Section) error {
	if _, ok := models.ParseSection(string(s)); !ok {
		return fmt.Errorf("%w: unknown section %q", shared.ErrInvalidArgument, s)
	}
	e.setView(models.SectionView(s))
	e.emit(Change{Kind: ChangeView})
	return nil
}

// OpenPlaylist switches to a named playlist, creating it in memory when absent.
func (e *Engine) OpenPlaylist(name string) error {
	name, err := models.ValidatePlaylistName(name)
	if err != nil {
		return err
	}
	e.setView(models.PlaylistView(name))
	e.emit(Change{Kind: ChangeView})
	return nil
}

func (e *Engine) setView(v models.View) {
	e.view = v
	if v.IsPlaylist() && !e.playlists.Exists(v.Playlist) {
		e.playlists[v.Playlist] = []string{}
	}
	if v.Section == models.SectionLibrary {
		e.sort = SortState{Field: SortTitle}
	} else {
		e.sort = SortState{}
	}
	e.refresh()
}

// derive computes the view list; ok is false for sections without songs.
func (e *Engine) derive() (list []models.Song, ok bool) {
	now := e.now()
	switch {
	case e.view.IsPlaylist():
		list = LoadNamed(e.view.Playlist, e.library, e.playlists, e.filters, now)
	case e.view.Section == models.SectionLibrary:
		list = DeriveView(e.library.songs, e.playlists, e.filters, now)
	case e.view.Section == models.SectionFavorites:
		list = LoadNamed(models.Favorites, e.library, e.playlists, e.filters, now)
	case e.view.Section == models.SectionBlocked:
		list = LoadNamed(models.Blocked, e.library, e.playlists, e.filters, now)
	default:
		return nil, false
	}
	return SortSongs(list, e.sort), true
}

// refresh re-derives the view list and reshuffles when shuffle is on.
func (e *Engine) refresh() {
	if list, ok := e.derive(); ok {
		e.setViewList(list)
	}
}

// reconcile applies a membership change: songs leaving the view are removed in place
// so the shuffled order survives; any song entering it triggers a full refresh.
func (e *Engine) reconcile() {
	fresh, ok := e.derive()
	if !ok {
		return
	}

	shown := lo.SliceToMap(e.viewList, func(s models.Song) (string, bool) { return s.Path, true })
	if !lo.EveryBy(fresh, func(s models.Song) bool { return shown[s.Path] }) {
		e.setViewList(fresh)
		return
	}

	keep := lo.SliceToMap(fresh, func(s models.Song) (string, bool) { return s.Path, true })
	inView := func(s models.Song, _ int) bool { return keep[s.Path] }
	e.viewList = lo.Filter(e.viewList, inView)
	if e.pb.shuffled {
		e.shuffled = lo.Filter(e.shuffled, inView)
	}
	e.relocate()
}

func (e *Engine) setViewList(list []models.Song) {
	e.viewList = list
	if !e.pb.shuffled {
		e.shuffled = nil
		e.relocate()
		return
	}

	var idx int
	e.shuffled, idx = Shuffle(list, e.pb.current, e.rng)
	if idx >= 0 {
		e.pb.index = idx
	} else {
		e.clampIndex()
	}
}

// relocate points the index at the current song when the active list still holds it.
func (e *Engine) relocate() {
	if e.pb.current != nil {
		if i := indexOfPath(e.active(), e.pb.current.Path); i >= 0 {
			e.pb.index = i
			return
		}
	}
	e.clampIndex()
}

func (e *Engine) clampIndex() {
	if n := len(e.active()); e.pb.index >= n {
		e.pb.index = max(0, n-1)
	}
}

// ViewList returns the filtered, sorted list for the current view.
func (e *Engine) ViewList() []models.Song { return slices.Clone(e.viewList) }

// Active returns a copy of the list driving navigation: the shuffled order when shuffle is on.
func (e *Engine) Active() []models.Song { return slices.Clone(e.active()) }

func (e *Engine) active() []models.Song {
	if e.pb.shuffled {
		return e.shuffled
	}
	return e.viewList
}

// Sort returns the current sort state.
func (e *Engine) Sort() SortState { return e.sort }

// SortBy orders the view by field, flipping direction when field is already active.
// A shuffled active list keeps its order.
func (e *Engine) SortBy(field SortField) SortState {
	e.sort = e.sort.Toggle(field)
	e.viewList = SortSongs(e.viewList, e.sort)
	if !e.pb.shuffled {
		e.relocate()
	}
	e.emit(Change{Kind: ChangeView})
	return e.sort
}

// Search filters the view list by title or artist without touching the active list.
func (e *Engine) Search(query string) []models.Song {
	return Search(e.viewList, query)
}
