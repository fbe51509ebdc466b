// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

// setupCommand creates the config file, history database and music folders.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file, database and music folders",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// libraryCommand handles the scanned song library.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Browse and refresh the song library",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the songs of a section or playlist after filtering",
				Flags: append(jsonFlags(),
					&cli.StringFlag{
						Name:    "section",
						Aliases: []string{"s"},
						Usage:   "Section to list: library, favorites or blocked",
						Value:   "library",
					},
					&cli.StringFlag{
						Name:    "playlist",
						Aliases: []string{"p"},
						Usage:   "Playlist to list instead of a section",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort by title or date",
					},
					&cli.BoolFlag{
						Name:  "desc",
						Usage: "Sort descending",
					},
				),
				Action: r.LibraryList,
			},
			{
				Name:   "refresh",
				Usage:  "Re-scan the music folders",
				Action: r.LibraryRefresh,
			},
			{
				Name:  "search",
				Usage: "Search song titles in the current view",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags:  jsonFlags(),
				Action: r.LibrarySearch,
			},
			{
				Name:  "shuffle",
				Usage: "Print a shuffled play order of the current view",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of songs to print",
						Value: 20,
					},
				},
				Action: r.LibraryShuffle,
			},
			{
				Name:   "status",
				Usage:  "Show filter, season and playback status",
				Flags:  jsonFlags(),
				Action: r.LibraryStatus,
			},
			{
				Name:  "open",
				Usage: "Open the music directory, or one artist folder, in the file manager",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "folder",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "playlists",
						Usage: "Open the playlists directory instead",
					},
				},
				Action: r.LibraryOpen,
			},
		},
	}
}

// playlistCommand handles favorites, blocked, seasonal and custom playlists.
func playlistCommand(r *Runner) *cli.Command {
	nameArg := []cli.Argument{&cli.StringArg{Name: "name"}}
	songArgs := []cli.Argument{&cli.StringArg{Name: "name"}, &cli.StringArg{Name: "filename"}}
	fileArg := []cli.Argument{&cli.StringArg{Name: "filename"}}

	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every playlist with its song count",
				Flags:  jsonFlags(),
				Action: r.PlaylistList,
			},
			{
				Name:      "show",
				Usage:     "Show the songs of a playlist",
				Arguments: nameArg,
				Flags:     jsonFlags(),
				Action:    r.PlaylistShow,
			},
			{
				Name:      "create",
				Usage:     "Create a custom playlist",
				Arguments: nameArg,
				Action:    r.PlaylistCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a custom playlist",
				Arguments: nameArg,
				Action:    r.PlaylistDelete,
			},
			{
				Name:      "add",
				Usage:     "Add a song to a playlist",
				Arguments: songArgs,
				Action:    r.PlaylistAdd,
			},
			{
				Name:      "remove",
				Usage:     "Remove a song from a playlist",
				Arguments: songArgs,
				Action:    r.PlaylistRemove,
			},
			{
				Name:      "favorite",
				Aliases:   []string{"fav"},
				Usage:     "Toggle a song in favorites",
				Arguments: fileArg,
				Action:    r.PlaylistFavorite,
			},
			{
				Name:      "block",
				Usage:     "Toggle a song in blocked",
				Arguments: fileArg,
				Action:    r.PlaylistBlock,
			},
			{
				Name:      "export",
				Usage:     "Export playlists to csv, markdown, txt, m3u or json",
				Arguments: nameArg,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format",
						Value:   "m3u",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every playlist with a manifest",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 4,
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// settingsCommand handles the persisted player settings.
func settingsCommand(r *Runner) *cli.Command {
	stateArg := []cli.Argument{&cli.StringArg{Name: "state"}}

	return &cli.Command{
		Name:    "settings",
		Aliases: []string{"set"},
		Usage:   "Show and change player settings",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the saved settings",
				Flags:  jsonFlags(),
				Action: r.SettingsShow,
			},
			{
				Name:   "reset",
				Usage:  "Delete the settings file and restore defaults",
				Action: r.SettingsReset,
			},
			{
				Name:      "holiday",
				Usage:     "Turn holiday mode on or off",
				Arguments: stateArg,
				Action:    r.SettingsHoliday,
			},
			{
				Name:      "artists",
				Usage:     "Select which artists are shown",
				ArgsUsage: "[neuro|evil|duet ...]",
				Action:    r.SettingsArtists,
			},
			{
				Name:      "repeat",
				Usage:     "Set repeat mode: off, all or one",
				Arguments: []cli.Argument{&cli.StringArg{Name: "mode"}},
				Action:    r.SettingsRepeat,
			},
			{
				Name:      "shuffle",
				Usage:     "Turn shuffle on or off",
				Arguments: stateArg,
				Action:    r.SettingsShuffle,
			},
			{
				Name:      "volume",
				Usage:     "Set the volume from 0 to 100",
				Arguments: []cli.Argument{&cli.StringArg{Name: "level"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "mute",
						Usage: "Toggle mute",
					},
				},
				Action: r.SettingsVolume,
			},
			{
				Name:  "eq",
				Usage: "Configure the equalizer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "preset",
						Usage: "Apply a preset",
					},
					&cli.StringSliceFlag{
						Name:  "band",
						Usage: "Set a band gain as HZ=DB, e.g. 60=4.5",
					},
					&cli.BoolFlag{
						Name:  "enable",
						Usage: "Enable the equalizer",
					},
					&cli.BoolFlag{
						Name:  "disable",
						Usage: "Disable the equalizer",
					},
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Reset every band to flat",
					},
					&cli.BoolFlag{
						Name:  "presets",
						Usage: "List the available presets",
					},
				},
				Action: r.SettingsEqualizer,
			},
		},
	}
}

// playCommand launches the interactive player.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "play",
		Aliases: []string{"tui", "ui"},
		Usage:   "Launch the interactive player",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the player owns the terminal",
				Value: "./tmp/nmp-tui.log",
			},
		},
		Action: r.Play,
	}
}

// serveCommand runs the player headless behind the HTTP control API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the player with an HTTP control API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// statsCommand reports listening history.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show listening history and library scans",
		Flags: append(jsonFlags(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Number of rows per table",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Delete the listening history",
			},
		),
		Action: r.Stats,
	}
}
