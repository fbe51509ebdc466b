package engine

import (
	"slices"

	"github.com/desertthunder/nmp/internal/models"
)

// FileRef is one audio file found in an artist folder.
type FileRef struct {
	Path string
	Hint string // artist folder hint, "" when unknown
}

// Library is the ordered, duplicate-free song collection.
type Library struct {
	songs      []models.Song
	byPath     map[string]int
	byFilename map[string]int
}

// NewLibrary returns an empty [Library].
func NewLibrary() *Library {
	return &Library{byPath: map[string]int{}, byFilename: map[string]int{}}
}

// Ingest parses refs in order and appends every song whose path and filename are both new.
// It returns the number of songs added and skipped as duplicates.
func (l *Library) Ingest(refs []FileRef) (added, skipped int) {
	for _, ref := range refs {
		song := ParseFilename(ref.Path, ref.Hint)
		if l.has(song) {
			skipped++
			continue
		}

		l.byPath[song.Path] = len(l.songs)
		l.byFilename[song.Filename] = len(l.songs)
		l.songs = append(l.songs, song)
		added++
	}
	return added, skipped
}

func (l *Library) has(song models.Song) bool {
	_, pathSeen := l.byPath[song.Path]
	_, nameSeen := l.byFilename[song.Filename]
	return pathSeen || nameSeen
}

// Reset empties the library.
func (l *Library) Reset() {
	l.songs = nil
	clear(l.byPath)
	clear(l.byFilename)
}

// Songs returns a copy of the library in ingestion order.
func (l *Library) Songs() []models.Song { return slices.Clone(l.songs) }

// Len returns the number of songs.
func (l *Library) Len() int { return len(l.songs) }

// Lookup finds a song by filename.
func (l *Library) Lookup(filename string) (models.Song, bool) {
	i, ok := l.byFilename[filename]
	if !ok {
		return models.Song{}, false
	}
	return l.songs[i], true
}

// LookupPath finds a song by absolute path.
func (l *Library) LookupPath(path string) (models.Song, bool) {
	i, ok := l.byPath[path]
	if !ok {
		return models.Song{}, false
	}
	return l.songs[i], true
}

// Enrich replaces the metadata-only fields of the song at path.
func (l *Library) Enrich(path, album, genre string) {
	if i, ok := l.byPath[path]; ok {
		l.songs[i].Album = album
		l.songs[i].Genre = genre
	}
}
