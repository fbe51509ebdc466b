package engine

// ChangeKind classifies a committed engine mutation.
type ChangeKind int

const (
	ChangeLibrary ChangeKind = iota
	ChangePlaylist
	ChangePlaylistCreated
	ChangePlaylistDeleted
	ChangeFilters
	ChangeView
	ChangePlayback
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeLibrary:
		return "library"
	case ChangePlaylist:
		return "playlist"
	case ChangePlaylistCreated:
		return "playlist_created"
	case ChangePlaylistDeleted:
		return "playlist_deleted"
	case ChangeFilters:
		return "filters"
	case ChangeView:
		return "view"
	case ChangePlayback:
		return "playback"
	default:
		return ""
	}
}

// Change is emitted once after each committed mutation.
type Change struct {
	Kind     ChangeKind
	Playlist string // set for the playlist kinds
	// ViewReset marks a deletion that also moved the view off the deleted playlist.
	ViewReset bool
}

// Listener receives engine changes synchronously.
type Listener func(Change)

// Subscribe registers fn for every subsequent change.
func (e *Engine) Subscribe(fn Listener) {
	e.listeners = append(e.listeners, fn)
}

func (e *Engine) emit(c Change) {
	if e.restoring {
		return
	}
	for _, fn := range e.listeners {
		fn(c)
	}
}

// AffectsSettings reports whether the change alters the settings document.
func (c Change) AffectsSettings() bool {
	switch c.Kind {
	case ChangeFilters, ChangeView, ChangePlayback:
		return true
	case ChangePlaylistDeleted:
		return c.ViewReset
	default:
		return false
	}
}
