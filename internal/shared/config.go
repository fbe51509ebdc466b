package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library       LibraryConfig       `toml:"library"`
	Storage       StorageConfig       `toml:"storage"`
	Database      DatabaseConfig      `toml:"database"`
	Player        PlayerConfig        `toml:"player"`
	Server        ServerConfig        `toml:"server"`
	Timers        TimersConfig        `toml:"timers"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// LibraryConfig describes where songs live and how they are scanned.
type LibraryConfig struct {
	MusicDir       string   `toml:"music_dir"`
	Folders        []string `toml:"folders"` // artist folder hints, scanned in this order
	Watch          bool     `toml:"watch"`
	RescanInterval Duration `toml:"rescan_interval"`
}

// StorageConfig contains the flat-file locations for playlists and settings.
type StorageConfig struct {
	PlaylistsDir string `toml:"playlists_dir"`
	SettingsPath string `toml:"settings_path"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PlayerConfig contains audio output settings.
type PlayerConfig struct {
	SampleRate      int      `toml:"sample_rate"`
	Buffer          Duration `toml:"buffer"`
	ResampleQuality int      `toml:"resample_quality"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// TimersConfig contains the background tick intervals.
type TimersConfig struct {
	SeasonCheck  Duration `toml:"season_check"`
	Autosave     Duration `toml:"autosave"`
	SaveDebounce Duration `toml:"save_debounce"`
}

// NotificationsConfig toggles desktop notifications.
type NotificationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Duration wraps [time.Duration] so it can be written as "30s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", ErrInvalidConfig, text, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// FolderPath returns the directory for an artist folder hint.
func (l LibraryConfig) FolderPath(hint string) string {
	return filepath.Join(l.MusicDir, hint)
}

// Validate checks that required values are present and in range.
func (c *Config) Validate() error {
	switch {
	case c.Library.MusicDir == "":
		return fmt.Errorf("%w: library.music_dir is required", ErrInvalidConfig)
	case len(c.Library.Folders) == 0:
		return fmt.Errorf("%w: library.folders must list at least one folder", ErrInvalidConfig)
	case c.Storage.PlaylistsDir == "" || c.Storage.SettingsPath == "":
		return fmt.Errorf("%w: storage paths are required", ErrInvalidConfig)
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	case c.Player.SampleRate <= 0:
		return fmt.Errorf("%w: player.sample_rate must be positive", ErrInvalidConfig)
	case c.Timers.SeasonCheck.Duration <= 0 || c.Timers.Autosave.Duration <= 0:
		return fmt.Errorf("%w: timer intervals must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigOrDefault loads the config at path, falling back to defaults when the file is absent.
func LoadConfigOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return LoadConfig(path)
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
