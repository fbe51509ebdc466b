package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
)

const playlistExt = ".txt"

// FileStore reads and writes the music folders, playlist files and settings document.
type FileStore struct {
	library      shared.LibraryConfig
	playlistsDir string
	settingsPath string
	logger       *log.Logger
}

// NewFileStore creates a [FileStore] rooted at the configured paths.
func NewFileStore(cfg *shared.Config, logger *log.Logger) *FileStore {
	return &FileStore{
		library:      cfg.Library,
		playlistsDir: cfg.Storage.PlaylistsDir,
		settingsPath: cfg.Storage.SettingsPath,
		logger:       shared.WithLogger(logger, "component", "store"),
	}
}

// ListAudioFiles returns the playable files in one artist folder, sorted by name.
// A missing folder yields no files.
func (s *FileStore) ListAudioFiles(hint string) ([]engine.FileRef, error) {
	dir := s.library.FolderPath(hint)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("music folder missing", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read music folder %s: %w", dir, err)
	}

	var refs []engine.FileRef
	for _, entry := range entries {
		if entry.IsDir() || !engine.IsAudioFile(entry.Name()) {
			continue
		}
		path, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", entry.Name(), err)
		}
		refs = append(refs, engine.FileRef{Path: path, Hint: hint})
	}
	return refs, nil
}

// Folders returns the absolute artist folder paths, for watching.
func (s *FileStore) Folders() []string {
	dirs := make([]string, 0, len(s.library.Folders))
	for _, hint := range s.library.Folders {
		dir, err := filepath.Abs(s.library.FolderPath(hint))
		if err != nil {
			dir = s.library.FolderPath(hint)
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

func (s *FileStore) playlistPath(name string) (string, error) {
	name, err := models.ValidatePlaylistName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.playlistsDir, name+playlistExt), nil
}

// ReadPlaylist returns the filenames in a playlist file with blank lines dropped.
func (s *FileStore) ReadPlaylist(name string) ([]string, error) {
	path, err := s.playlistPath(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
		}
		return nil, fmt.Errorf("failed to read playlist %s: %w", name, err)
	}
	return parsePlaylist(data), nil
}

func parsePlaylist(data []byte) []string {
	filenames := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			filenames = append(filenames, line)
		}
	}
	return filenames
}

// WritePlaylist overwrites a playlist file with newline-joined filenames.
func (s *FileStore) WritePlaylist(name string, filenames []string) error {
	path, err := s.playlistPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.playlistsDir, 0755); err != nil {
		return fmt.Errorf("failed to create playlists directory: %w", err)
	}
	return writeAtomic(path, []byte(strings.Join(filenames, "\n")))
}

// ListPlaylists returns the names of every playlist file, sorted.
func (s *FileStore) ListPlaylists() ([]string, error) {
	entries, err := os.ReadDir(s.playlistsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read playlists directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != playlistExt {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), playlistExt))
	}
	slices.Sort(names)
	return names, nil
}

// LoadPlaylists reads every playlist file. Unreadable files are logged and skipped.
func (s *FileStore) LoadPlaylists() (engine.Memberships, error) {
	names, err := s.ListPlaylists()
	if err != nil {
		return engine.Memberships{}, err
	}

	m := engine.Memberships{}
	for _, name := range names {
		filenames, err := s.ReadPlaylist(name)
		if err != nil {
			s.logger.Warn("skipping playlist", "name", name, "error", err)
			continue
		}
		m[name] = filenames
	}
	s.logger.Debug("loaded playlists", "count", len(m))
	return m, nil
}

// CreatePlaylist creates an empty playlist file, failing when one already exists.
func (s *FileStore) CreatePlaylist(name string) error {
	path, err := s.playlistPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.playlistsDir, 0755); err != nil {
		return fmt.Errorf("failed to create playlists directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", shared.ErrPlaylistExists, name)
		}
		return fmt.Errorf("failed to create playlist %s: %w", name, err)
	}
	return f.Close()
}

// DeletePlaylist removes a playlist file.
func (s *FileStore) DeletePlaylist(name string) error {
	path, err := s.playlistPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
		}
		return fmt.Errorf("failed to delete playlist %s: %w", name, err)
	}
	return nil
}

// LoadSettings reads the settings document merged over the defaults.
//
// A missing file returns the defaults. A corrupt file returns the defaults and an error.
func (s *FileStore) LoadSettings() (models.Settings, error) {
	settings := models.DefaultSettings()

	data, err := os.ReadFile(s.settingsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("no settings file found, using defaults", "path", s.settingsPath)
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings(), fmt.Errorf("%w: settings: %v", shared.ErrInvalidInput, err)
	}
	settings.Volume = models.ClampVolume(settings.Volume)
	settings.Playback.RepeatMode = settings.Playback.RepeatMode.Valid()
	if settings.Equalizer.Bands == nil {
		settings.Equalizer.Bands = map[string]float64{}
	}
	return settings, nil
}

// SaveSettings writes the settings document with two-space indentation.
func (s *FileStore) SaveSettings(settings models.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if dir := filepath.Dir(s.settingsPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	return writeAtomic(s.settingsPath, data)
}

// ResetSettings deletes the settings document and returns the defaults.
func (s *FileStore) ResetSettings() (models.Settings, error) {
	if err := os.Remove(s.settingsPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return models.DefaultSettings(), fmt.Errorf("failed to reset settings: %w", err)
	}
	return models.DefaultSettings(), nil
}

// writeAtomic writes data to a sibling temp file and renames it over path.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
