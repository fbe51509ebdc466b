package engine

import (
	"fmt"
	"maps"
	"slices"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
)

// SetPlaylists replaces every membership list, as loaded from disk. No change is emitted.
func (e *Engine) SetPlaylists(m Memberships) {
	e.playlists = m.Clone()
	if e.view.IsPlaylist() && !e.playlists.Exists(e.view.Playlist) {
		e.playlists[e.view.Playlist] = []string{}
	}
	e.refresh()
}

// Playlists returns a copy of the membership lists.
func (e *Engine) Playlists() Memberships { return e.playlists.Clone() }

// Members returns the filenames in a playlist, resolving the winter union.
func (e *Engine) Members(name string) []string {
	return slices.Clone(e.playlists.Members(name))
}

// RawMembers returns the filenames stored for name, without the winter union. This is
// what the playlist file holds.
func (e *Engine) RawMembers(name string) []string {
	return slices.Clone(e.playlists[name])
}

// IsMember reports whether filename is in playlist name.
func (e *Engine) IsMember(name, filename string) bool {
	return e.playlists.Contains(name, filename)
}

// CreatePlaylist adds an empty playlist and returns its trimmed name.
func (e *Engine) CreatePlaylist(name string) (string, error) {
	name, err := models.ValidatePlaylistName(name)
	if err != nil {
		return "", err
	}
	if e.playlists.Exists(name) {
		return "", fmt.Errorf("%w: %s", shared.ErrPlaylistExists, name)
	}

	e.playlists[name] = []string{}
	e.emit(Change{Kind: ChangePlaylistCreated, Playlist: name})
	return name, nil
}

// DeletePlaylist removes a custom playlist. Viewing it falls back to the playlists section.
func (e *Engine) DeletePlaylist(name string) error {
	if !models.IsCustom(name) {
		return fmt.Errorf("%w: %s", shared.ErrReservedPlaylist, name)
	}
	if !e.playlists.Exists(name) {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}

	delete(e.playlists, name)
	c := Change{Kind: ChangePlaylistDeleted, Playlist: name}
	if e.view.Playlist == name {
		e.setView(models.SectionView(models.SectionPlaylists))
		c.ViewReset = true
	}
	e.emit(c)
	return nil
}

// AddToPlaylist appends a library song to a playlist, creating the playlist when needed.
// It returns false when the song was already a member.
func (e *Engine) AddToPlaylist(name, filename string) (bool, error) {
	name, err := models.ValidatePlaylistName(name)
	if err != nil {
		return false, err
	}
	if _, ok := e.library.Lookup(filename); !ok {
		return false, fmt.Errorf("%w: %s", shared.ErrSongNotFound, filename)
	}

	if !e.playlists.Add(name, filename) {
		return false, nil
	}
	e.reconcile()
	e.emit(Change{Kind: ChangePlaylist, Playlist: name})
	return true, nil
}

// RemoveFromPlaylist drops filename from a playlist. It returns false when it was not a member.
func (e *Engine) RemoveFromPlaylist(name, filename string) (bool, error) {
	if !e.playlists.Exists(name) {
		return false, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
	}
	if !e.playlists.Remove(name, filename) {
		if name == models.WinterMusic && e.playlists.Contains(models.ChristmasMusic, filename) {
			return false, fmt.Errorf("%w: %s is in %s", shared.ErrLinkedMember, filename, models.ChristmasMusic)
		}
		return false, nil
	}
	e.reconcile()
	e.emit(Change{Kind: ChangePlaylist, Playlist: name})
	return true, nil
}

func (e *Engine) toggle(name, filename string) (bool, error) {
	if e.playlists.Contains(name, filename) {
		_, err := e.RemoveFromPlaylist(name, filename)
		return false, err
	}
	_, err := e.AddToPlaylist(name, filename)
	return err == nil, err
}

// ToggleFavorite flips favorites membership and reports whether the song is now a favorite.
func (e *Engine) ToggleFavorite(filename string) (bool, error) {
	return e.toggle(models.Favorites, filename)
}

// ToggleBlocked flips blocked membership and reports whether the song is now blocked.
// A newly blocked song leaves every view except the blocked section.
func (e *Engine) ToggleBlocked(filename string) (bool, error) {
	return e.toggle(models.Blocked, filename)
}

// SetMemberships adds filename to every playlist mapped to true and removes it from those mapped to false.
func (e *Engine) SetMemberships(filename string, want map[string]bool) (added, removed int, err error) {
	if _, ok := e.library.Lookup(filename); !ok {
		return 0, 0, fmt.Errorf("%w: %s", shared.ErrSongNotFound, filename)
	}

	var changed []string
	for _, name := range slices.Sorted(maps.Keys(want)) {
		valid, err := models.ValidatePlaylistName(name)
		if err != nil {
			return added, removed, err
		}
		switch {
		case want[name] && e.playlists.Add(valid, filename):
			added++
			changed = append(changed, valid)
		case !want[name] && e.playlists.Remove(valid, filename):
			removed++
			changed = append(changed, valid)
		}
	}

	if len(changed) > 0 {
		e.reconcile()
	}
	for _, name := range changed {
		e.emit(Change{Kind: ChangePlaylist, Playlist: name})
	}
	return added, removed, nil
}

// PlaylistSummary is one row of the playlists overview.
type PlaylistSummary struct {
	Name     string
	Kind     models.PlaylistKind
	Songs    int
	InSeason bool
}

// Overview lists reserved, then seasonal, then custom playlists (alphabetical).
func (e *Engine) Overview() []PlaylistSummary {
	now := e.now()
	summary := func(name string) PlaylistSummary {
		return PlaylistSummary{
			Name:     name,
			Kind:     models.KindOf(name),
			Songs:    len(e.playlists.Members(name)),
			InSeason: DisplayInSeason(name, now),
		}
	}

	out := []PlaylistSummary{summary(models.Favorites), summary(models.Blocked)}
	for _, name := range models.SeasonalPlaylists {
		out = append(out, summary(name))
	}
	for _, name := range e.CustomPlaylists() {
		out = append(out, summary(name))
	}
	return out
}

// CustomPlaylists returns user-created playlist names in alphabetical order.
func (e *Engine) CustomPlaylists() []string {
	var names []string
	for _, name := range e.playlists.Names() {
		if models.IsCustom(name) {
			names = append(names, name)
		}
	}
	return names
}

// PlaylistSongs resolves a playlist to filtered songs without changing the view.
func (e *Engine) PlaylistSongs(name string) []models.Song {
	return LoadNamed(name, e.library, e.playlists, e.filters, e.now())
}
