package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/formatter"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/desertthunder/nmp/internal/tasks"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

type playlistSummary struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Songs    int    `json:"songs"`
	InSeason bool   `json:"inSeason"`
}

// PlaylistList prints every playlist with its kind and visible song count.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(ctx, func(session *tasks.Session) error {
		var overview []engine.PlaylistSummary
		session.Inspect(func(e *engine.Engine) { overview = e.Overview() })

		out := make([]playlistSummary, 0, len(overview))
		for _, p := range overview {
			out = append(out, playlistSummary{Name: p.Name, Kind: p.Kind.String(), Songs: p.Songs, InSeason: p.InSeason})
		}
		if cmd.Bool("json") {
			return r.writeJSON(out, cmd.Bool("pretty"))
		}

		t := r.newTable("Playlist", "Kind", "Songs", "In season")
		for _, p := range out {
			season := ""
			if p.Kind == models.SeasonalPlaylist.String() && p.InSeason {
				season = "✓"
			}
			t.AppendRow(table.Row{p.Name, p.Kind, p.Songs, season})
		}
		t.Render()
		return nil
	})
}

// PlaylistShow prints the songs of one playlist after its filters.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		var (
			songs  []models.Song
			exists bool
		)
		session.Inspect(func(e *engine.Engine) {
			exists = e.Playlists().Exists(name) || !models.IsCustom(name)
			songs = e.PlaylistSongs(name)
		})
		if !exists {
			return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
		}

		if cmd.Bool("json") {
			return r.writeJSON(songs, cmd.Bool("pretty"))
		}
		r.writePlainHeader(fmt.Sprintf("%s (%s)", name, models.KindOf(name)))
		r.renderSongs(songs)
		return nil
	})
}

// PlaylistCreate creates an empty custom playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(ctx, func(session *tasks.Session) error {
		name, err := session.CreatePlaylist(cmd.StringArg("name"))
		if err != nil {
			return err
		}
		r.logger.Info("playlist created", "name", name)
		return r.writePlain("✓ Created playlist %q\n", name)
	})
}

// PlaylistDelete deletes a custom playlist and its file.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	name, err := requireArg(cmd, "name")
	if err != nil {
		return err
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		if err := session.DeletePlaylist(name); err != nil {
			return err
		}
		return r.writePlain("✓ Deleted playlist %q\n", name)
	})
}

// PlaylistAdd adds a song to a playlist, creating a custom playlist on first use.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	name, filename, err := requireSongArgs(cmd)
	if err != nil {
		return err
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		added, err := session.AddToPlaylist(name, filename)
		if err != nil {
			return err
		}
		if !added {
			return r.writePlain("%s is already in %q\n", filename, name)
		}
		return r.writePlain("✓ Added %s to %q\n", filename, name)
	})
}

// PlaylistRemove removes a song from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	name, filename, err := requireSongArgs(cmd)
	if err != nil {
		return err
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		removed, err := session.RemoveFromPlaylist(name, filename)
		if err != nil {
			return err
		}
		if !removed {
			return r.writePlain("%s is not in %q\n", filename, name)
		}
		return r.writePlain("✓ Removed %s from %q\n", filename, name)
	})
}

// PlaylistFavorite toggles a song in favorites.
func (r *Runner) PlaylistFavorite(ctx context.Context, cmd *cli.Command) error {
	return r.toggleReserved(ctx, cmd, models.Favorites, (*tasks.Session).ToggleFavorite)
}

// PlaylistBlock toggles a song in blocked.
func (r *Runner) PlaylistBlock(ctx context.Context, cmd *cli.Command) error {
	return r.toggleReserved(ctx, cmd, models.Blocked, (*tasks.Session).ToggleBlocked)
}

func (r *Runner) toggleReserved(ctx context.Context, cmd *cli.Command, name string, toggle func(*tasks.Session, string) (bool, error)) error {
	filename, err := requireArg(cmd, "filename")
	if err != nil {
		return err
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		in, err := toggle(session, filename)
		if err != nil {
			return err
		}
		if in {
			return r.writePlain("✓ Added %s to %s\n", filename, name)
		}
		return r.writePlain("✓ Removed %s from %s\n", filename, name)
	})
}

// PlaylistExport writes one playlist, or with --all every playlist plus a manifest.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	name := cmd.StringArg("name")
	if name == "" && !cmd.Bool("all") {
		return fmt.Errorf("%w: playlist name or --all", shared.ErrMissingArgument)
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		if !cmd.Bool("all") {
			var exists bool
			session.Inspect(func(e *engine.Engine) { exists = e.Playlists().Exists(name) || !models.IsCustom(name) })
			if !exists {
				return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, name)
			}

			dir := cmd.String("output")
			if dir == "" {
				dir = "."
			}
			path, err := session.ExportPlaylist(name, format, dir)
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", name, err)
			}
			return r.writePlain("✓ Exported %q to %s\n", name, path)
		}

		r.writePlain("Exporting playlists as %s...\n\n", format)
		progress := make(chan tasks.ProgressUpdate, 50)
		done := r.printProgress(progress)

		result, err := session.BulkExport(ctx, progress, tasks.BulkExportOpts{
			Format:     format,
			OutputDir:  cmd.String("output"),
			NumWorkers: cmd.Int("workers"),
		})
		close(progress)
		<-done

		if err != nil {
			return fmt.Errorf("bulk export failed: %w", err)
		}

		r.writePlain("\n")
		r.writePlainHeader("Export Complete!")
		r.writePlain("Directory: %s\n", result.OutputDirectory)
		r.writePlain("Manifest:  %s\n", result.ManifestPath)
		r.writePlain("Exported:  %d/%d\n", result.SuccessfulExports, result.TotalPlaylists)

		if result.FailedExports > 0 {
			r.writePlain("\nFailed to export %d playlists:\n", result.FailedExports)
			for _, res := range result.Results {
				if res.Error != nil {
					r.writePlain("  - %s: %v\n", res.Name, res.Error)
				}
			}
		}
		return nil
	})
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := cmd.StringArg(name)
	if v == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return v, nil
}

func requireSongArgs(cmd *cli.Command) (name, filename string, err error) {
	if name, err = requireArg(cmd, "name"); err != nil {
		return "", "", err
	}
	if filename, err = requireArg(cmd, "filename"); err != nil {
		return "", "", err
	}
	return name, filename, nil
}
