package engine

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/nmp/internal/models"
)

// AudioExtensions are the file extensions the library ingests.
var AudioExtensions = []string{".mp3", ".wav"}

var (
	evilTag      = regexp.MustCompile(`\s*\(evil\)\s*`)
	trailingDate = regexp.MustCompile(`\s*\((\d{1,2})\s+(\d{1,2})\s+(\d{2})\)$`)
	parenGroups  = regexp.MustCompile(`\s*\(.*?\)\s*`)
)

// IsAudioFile reports whether name has a supported audio extension.
func IsAudioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range AudioExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ParseFilename turns a file path and optional artist folder hint into a [models.Song].
//
// "Song Title (evil)(5 3 24).mp3" parses to title "Song Title", evil-tagged, dated 2024-03-05.
func ParseFilename(path, hint string) models.Song {
	filename := filepath.Base(path)
	name := filename
	if IsAudioFile(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	song := models.Song{Filename: filename, Path: path}

	if strings.Contains(name, "(evil)") {
		song.IsEvilTagged = true
		name = evilTag.ReplaceAllString(name, " ")
	}

	name = strings.TrimSpace(name)
	if date, ok := parseDateTag(name); ok {
		song.Date = date
		name = trailingDate.ReplaceAllString(name, "")
	}

	song.Title = strings.TrimSpace(name)
	song.Artist = resolveArtist(filename, hint, song.IsEvilTagged)
	return song
}

// parseDateTag reads a trailing "(D M YY)" tag. Impossible dates are left in the title.
func parseDateTag(name string) (time.Time, bool) {
	m := trailingDate.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	year += 2000

	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

func resolveArtist(filename, hint string, evil bool) models.Artist {
	if hint != "" {
		if a, ok := models.ParseArtist(hint); ok {
			return a
		}
		return models.Unknown
	}

	switch {
	case evil:
		return models.Evil
	case strings.Contains(strings.ToLower(filename), "duet"):
		return models.Duet
	default:
		return models.Neuro
	}
}

// TitleKey normalizes a title for duplicate-song detection: lower-cased with parenthesized groups removed.
func TitleKey(title string) string {
	return strings.TrimSpace(parenGroups.ReplaceAllString(strings.ToLower(title), ""))
}
