package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/desertthunder/nmp/internal/tasks"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

// LibraryList prints the active list. --section and --playlist switch the view first, the same
// as selecting it in the player, so the choice is saved.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(ctx, func(session *tasks.Session) error {
		switch {
		case cmd.String("playlist") != "":
			if err := session.OpenPlaylist(cmd.String("playlist")); err != nil {
				return err
			}
		case cmd.String("section") != "":
			sec, ok := models.ParseSection(cmd.String("section"))
			if !ok || !sec.HasSongs() {
				return fmt.Errorf("%w: section %q has no songs", shared.ErrInvalidArgument, cmd.String("section"))
			}
			if err := session.ShowSection(sec); err != nil {
				return err
			}
		}

		if name := cmd.String("sort"); name != "" {
			field, ok := engine.ParseSortField(name)
			if !ok {
				return fmt.Errorf("%w: sort by %q", shared.ErrInvalidFlag, name)
			}
			if state := session.SortBy(field); state.Desc != cmd.Bool("desc") {
				session.SortBy(field)
			}
		}

		var (
			songs  []models.Song
			header engine.Header
			view   models.View
		)
		session.Inspect(func(e *engine.Engine) {
			songs = e.Active()
			header = e.Header()
			view = e.View()
		})

		if cmd.Bool("json") {
			return r.writeJSON(songs, cmd.Bool("pretty"))
		}

		r.writePlainHeader(fmt.Sprintf("%s (%s)", header.Title, view))
		r.renderSongs(songs)
		r.writePlain("%s\n", header.Status)
		return nil
	})
}

// LibraryRefresh re-scans the music folders and records the scan in the history database.
func (r *Runner) LibraryRefresh(ctx context.Context, cmd *cli.Command) error {
	session, closeFn, err := r.openSession(ctx, sessionOpts{})
	if err != nil {
		return err
	}
	defer closeFn()

	r.writePlain("Scanning %s...\n\n", r.config.Library.MusicDir)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := r.printProgress(progress)

	scan, err := session.Scan(ctx, progress, tasks.ReasonManual)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if db, err := r.openDB(r.config.Database); err != nil {
		r.logger.Warn("scan not recorded", "error", err)
	} else {
		defer db.Close()
		if err := newRecorder(db).RecordScan(scan); err != nil {
			r.logger.Warn("scan not recorded", "error", err)
		}
	}

	r.writePlain("\n")
	r.writePlainHeader("Scan Complete!")
	r.writePlain("Songs:   %d\n", scan.Songs)
	r.writePlain("Skipped: %d\n", scan.Skipped)
	r.writePlain("Took:    %s\n", scan.Duration().Round(time.Millisecond))
	return nil
}

// LibrarySearch prints the songs of the current view whose title contains the query.
func (r *Runner) LibrarySearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		results := session.Search(query)
		if cmd.Bool("json") {
			return r.writeJSON(results, cmd.Bool("pretty"))
		}

		if len(results) == 0 {
			r.writePlain("No songs match %q\n", query)
			return nil
		}
		r.renderSongs(results)
		return nil
	})
}

// LibraryShuffle turns shuffle on with a fresh order and prints the start of it.
func (r *Runner) LibraryShuffle(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(ctx, func(session *tasks.Session) error {
		if session.Status().Shuffled {
			session.SetShuffle(false)
		}
		session.SetShuffle(true)

		var songs []models.Song
		session.Inspect(func(e *engine.Engine) { songs = e.Active() })

		if limit := cmd.Int("limit"); limit > 0 && len(songs) > limit {
			songs = songs[:limit]
		}

		r.writePlainHeader("Shuffled order")
		r.renderSongs(songs)
		return nil
	})
}

type libraryStatus struct {
	tasks.Status
	Report engine.FilterReport `json:"report"`
}

// LibraryStatus prints the header, filter counts, season and transport state.
func (r *Runner) LibraryStatus(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(ctx, func(session *tasks.Session) error {
		st := libraryStatus{Status: session.Status()}
		session.Inspect(func(e *engine.Engine) { st.Report = e.Report() })

		if cmd.Bool("json") {
			return r.writeJSON(st, cmd.Bool("pretty"))
		}

		r.writePlainHeader(st.Title)
		r.writePlain("%s\n", st.Message)
		r.writePlain("%s\n", st.Season)
		r.writePlain("Holiday mode: %s\n", onOff(st.Holiday))
		r.writePlain("%s\n", st.Seasonal)
		r.writePlainln("Filters")

		t := r.newTable("Step", "Songs")
		t.AppendRows([]table.Row{
			{"library", st.Report.Total},
			{"seasonal", -st.Report.Seasonal},
			{"blocked", -st.Report.Blocked},
			{"artist", -st.Report.Artist},
		})
		t.AppendFooter(table.Row{"showing", st.Report.Remaining})
		t.Render()

		r.writePlainln("Playback")
		current := "nothing"
		if st.Current != nil {
			current = fmt.Sprintf("%s - %s", st.Current.Artist, st.Current.Title)
		}
		r.writePlain("View:    %s (%d songs)\n", st.View, st.Count)
		r.writePlain("Song:    %s [%s]\n", current, st.State)
		r.writePlain("Repeat:  %s, shuffle %s\n", st.Repeat, onOff(st.Shuffled))
		r.writePlain("Artists: %s\n", strings.Join(st.Artists, ", "))
		return nil
	})
}

// LibraryOpen hands the music directory, an artist folder or the playlists directory to the
// desktop's file manager.
func (r *Runner) LibraryOpen(ctx context.Context, cmd *cli.Command) error {
	lib := r.config.Library
	dir := lib.MusicDir
	switch folder := cmd.StringArg("folder"); {
	case cmd.Bool("playlists"):
		dir = r.config.Storage.PlaylistsDir
	case folder != "":
		if !slices.Contains(lib.Folders, folder) {
			return fmt.Errorf("%w: folder %q is not one of %s", shared.ErrInvalidArgument, folder, strings.Join(lib.Folders, ", "))
		}
		dir = lib.FolderPath(folder)
	}

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("%s is not available, run 'nmp setup' first: %w", dir, err)
	}
	if err := r.openPath(dir); err != nil {
		return err
	}
	return r.writePlain("📂 Opened %s\n", dir)
}

func (r *Runner) renderSongs(songs []models.Song) {
	t := r.newTable("#", "Title", "Artist", "Date", "Filename")
	for i, s := range songs {
		t.AppendRow(table.Row{i + 1, s.Title, s.Artist.String(), s.DateLabel(), s.Filename})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d songs", len(songs))})
	t.Render()
}

// printProgress writes progress updates until the channel is closed, then closes done.
func (r *Runner) printProgress(progress <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			switch update.Phase {
			case tasks.ScanFolders:
				if _, failed := update.Data.(error); failed {
					r.writePlain("⚠️  %s\n", update.Message)
				} else {
					r.writePlain("📂 %s\n", update.Message)
				}
			case tasks.ReadTags:
				if update.Step == update.Total {
					r.writePlain("🏷️  %s\n", update.Message)
				}
			case tasks.IngestSongs:
				r.writePlain("🎵 %s\n", update.Message)
			case tasks.LoadPlaylists:
				r.writePlain("📋 %s\n", update.Message)
			case tasks.ExportPlaylist:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()
	return done
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// parseOnOff accepts on/off, true/false and yes/no.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	case "":
		return false, fmt.Errorf("%w: on or off", shared.ErrMissingArgument)
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", shared.ErrInvalidArgument, s)
}
