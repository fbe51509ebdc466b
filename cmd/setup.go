package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/nmp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing, the artist music folders, the playlists
// directory and the history database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config
	r.configPath = configPath

	for _, hint := range config.Library.Folders {
		dir := config.Library.FolderPath(hint)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create music folder: %w", err)
		}
		r.logger.Debug("music folder ready", "dir", dir)
	}

	if err := os.MkdirAll(config.Storage.PlaylistsDir, 0755); err != nil {
		return fmt.Errorf("failed to create playlists directory: %w", err)
	}

	r.logger.Info("initializing database", "path", config.Database.Path)
	db, err := r.openDB(config.Database)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	r.writePlainHeader("Setup complete")
	r.writePlain("Config:    %s\n", configPath)
	r.writePlain("Music:     %s (%d folders)\n", config.Library.MusicDir, len(config.Library.Folders))
	r.writePlain("Playlists: %s\n", config.Storage.PlaylistsDir)
	r.writePlain("Database:  %s\n", config.Database.Path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Copy songs into the %s folders\n", config.Library.MusicDir)
	r.writePlain("2. Run 'nmp play' to start listening\n")
	return nil
}
