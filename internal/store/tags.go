package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Tags is the embedded metadata read from an audio file.
type Tags struct {
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
}

// ReadTags reads ID3/MP4/FLAC metadata from path. Files without tags return an error.
func ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, fmt.Errorf("failed to read tags from %s: %w", path, err)
	}

	return Tags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Genre:  strings.TrimSpace(m.Genre()),
		Year:   m.Year(),
	}, nil
}
