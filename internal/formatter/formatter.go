// package formatter renders song lists to export formats (CSV, Markdown, plain text, M3U and JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatM3U      Format = "m3u"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatM3U, FormatJSON}

// ParseFormat maps a user-supplied name (including "md" and "text") to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "m3u", "m3u8":
		return FormatM3U, nil
	case "json", "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// Ext returns the file extension written for f.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	case FormatM3U:
		return ".m3u"
	case FormatCSV:
		return ".csv"
	default:
		return ".json"
	}
}

// Export is a named song list ready to render.
type Export struct {
	Name       string        `json:"name"`
	Kind       string        `json:"kind"`
	ExportedAt time.Time     `json:"exportedAt"`
	Songs      []models.Song `json:"songs"`
}

// Render converts export to the given format.
func Render(export *Export, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	case FormatM3U:
		return ExportToM3U(export)
	default:
		return json.MarshalIndent(export, "", "  ")
	}
}

// ExportToCSV converts an export to CSV format with columns: Title, Artist, Date, Album, Genre, Filename
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Artist", "Date", "Album", "Genre", "Filename"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range export.Songs {
		record := []string{
			song.Title,
			song.Artist.String(),
			song.DateLabel(),
			song.Album,
			song.Genre,
			song.Filename,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an export to a Markdown document with one numbered line per song
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Name)
	if export.Kind != "" {
		fmt.Fprintf(&buf, "**Kind**: %s\n", export.Kind)
	}
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(export.Songs))
	buf.WriteString("## Songs\n\n")

	for i, song := range export.Songs {
		albumPart := ""
		if song.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", song.Album)
		}
		datePart := ""
		if song.HasDate() {
			datePart = fmt.Sprintf(" [%s]", song.DateLabel())
		}
		fmt.Fprintf(&buf, "%d. %s - %s%s%s\n", i+1, song.Artist, song.Title, albumPart, datePart)
	}

	return buf.Bytes(), nil
}

// ExportToText converts an export to plain text format
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", export.Name)
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(export.Songs))

	for i, song := range export.Songs {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, song.Artist, song.Title)
	}

	return buf.Bytes(), nil
}

// ExportToM3U converts an export to an extended M3U playlist that other players can open.
//
// Durations are written as -1 because they are only known once a song is decoded.
func ExportToM3U(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("#EXTM3U\n")
	fmt.Fprintf(&buf, "#PLAYLIST:%s\n", export.Name)
	for _, song := range export.Songs {
		fmt.Fprintf(&buf, "#EXTINF:-1,%s - %s\n", song.Artist, song.Title)
		buf.WriteString(song.Path)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

// FileName returns a filesystem-safe file name for an export.
func FileName(name string, f Format) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if safe == "" {
		safe = "playlist"
	}
	return safe + f.Ext()
}

// WriteExport renders export into dir and returns the written path.
func WriteExport(export *Export, f Format, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := Render(export, f)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", f, err)
	}

	path := filepath.Join(dir, FileName(export.Name, f))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// ManifestEntry summarizes one exported playlist.
type ManifestEntry struct {
	Name  string `json:"name"`
	Songs int    `json:"songs"`
	File  string `json:"file,omitempty"`
	Error string `json:"error,omitempty"`
}

// Manifest summarizes a bulk export.
type Manifest struct {
	Format     Format          `json:"format"`
	ExportedAt time.Time       `json:"exportedAt"`
	Directory  string          `json:"directory"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Playlists  []ManifestEntry `json:"playlists"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
