package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/player"
	"github.com/desertthunder/nmp/internal/shared"
	th "github.com/desertthunder/nmp/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer, *shared.Config) {
	t.Helper()

	cfg := th.NewTestConfig(t)
	cfg.Timers.SaveDebounce.Duration = 0
	cfg.Database.Path = filepath.Join(t.TempDir(), "nmp.db")
	th.WriteSongs(t, cfg, "neuro", "Alpha.mp3")
	th.WriteSongs(t, cfg, "evil", "Bravo.mp3")
	th.WriteSongs(t, cfg, "duet", "Charlie.mp3")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: cfg,
		Logger: shared.NewLogger(io.Discard),
		Output: output,
		Sink:   player.NewSilent(),
	})
	return runner, output, cfg
}

// run executes args against a fresh command tree and returns what was written.
func run(t *testing.T, r *Runner, out *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	out.Reset()

	app := &cli.Command{Name: "nmp", Commands: r.register()}
	err := app.Run(context.Background(), append([]string{"nmp"}, args...))
	return out.String(), err
}

func mustRun(t *testing.T, r *Runner, out *bytes.Buffer, args ...string) string {
	t.Helper()
	text, err := run(t, r, out, args...)
	if err != nil {
		t.Fatalf("%s failed: %v", strings.Join(args, " "), err)
	}
	return text
}

func loadSettings(t *testing.T, cfg *shared.Config) models.Settings {
	t.Helper()
	var settings models.Settings
	if err := json.Unmarshal([]byte(th.MustReadFile(t, cfg.Storage.SettingsPath)), &settings); err != nil {
		t.Fatalf("failed to decode settings: %v", err)
	}
	return settings
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			sink := player.NewSilent()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				Sink:       sink,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.sink != sink {
				t.Error("expected sink to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil notifier and database uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.notifier == nil {
				t.Error("expected a default notifier")
			}
			if runner.openDB == nil {
				t.Error("expected a default database opener")
			}
			if runner.openPath == nil {
				t.Error("expected a default path opener")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := output.String(); got != "{\"key\":\"value\"}\n" {
				t.Errorf("expected compact JSON, got %q", got)
			}
		})

		t.Run("handles marshal error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &th.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write error", func(t *testing.T) {
			w := th.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &w})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		runner.writePlain("Hello %s\n", "world")
		runner.writePlainln("Section")
		runner.writePlainHeader("Title")

		result := output.String()
		if !strings.HasPrefix(result, "Hello world\n\nSection\n") {
			t.Errorf("unexpected output %q", result)
		}
		if !strings.Contains(result, "═\nTitle\n═") {
			t.Errorf("expected boxed header, got %q", result)
		}

		failing := NewRunner(RunnerOpts{Output: &th.FWriter{}})
		if err := failing.writePlain("x"); err == nil {
			t.Error("expected write error")
		}
		if err := failing.writePlainln("x"); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := make([]string, 0, len(commands))
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names = append(names, cmd.Name)
		}

		want := "setup,library,playlist,settings,play,serve,stats"
		if got := strings.Join(names, ","); got != want {
			t.Errorf("expected commands %s, got %s", want, got)
		}
	})
}

func TestLibraryCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		runner, out, _ := newTestRunner(t)

		text := mustRun(t, runner, out, "library", "list")
		for _, want := range []string{"Your Music Library", "Alpha", "Bravo", "Charlie", "3 SONGS"} {
			if !strings.Contains(text, want) {
				t.Errorf("expected %q in output:\n%s", want, text)
			}
		}
	})

	t.Run("list sorted as JSON", func(t *testing.T) {
		runner, out, _ := newTestRunner(t)

		text := mustRun(t, runner, out, "library", "list", "--sort", "title", "--desc", "--json")
		var songs []models.Song
		if err := json.Unmarshal([]byte(text), &songs); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if len(songs) != 3 || songs[0].Title != "Charlie" || songs[2].Title != "Alpha" {
			t.Errorf("expected descending titles, got %+v", songs)
		}
	})

	t.Run("list a section", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)

		text := mustRun(t, runner, out, "library", "list", "--section", "favorites")
		if !strings.Contains(text, "0 SONGS") {
			t.Errorf("expected empty favorites, got:\n%s", text)
		}
		if vs := loadSettings(t, cfg).CurrentView; vs == nil || vs.Section == nil || *vs.Section != string(models.SectionFavorites) {
			t.Errorf("expected the favorites view to be saved, got %+v", vs)
		}

		if _, err := run(t, runner, out, "library", "list", "--section", "settings"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := run(t, runner, out, "library", "list", "--sort", "plays"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("search", func(t *testing.T) {
		runner, out, _ := newTestRunner(t)

		text := mustRun(t, runner, out, "library", "search", "alp")
		if !strings.Contains(text, "Alpha") || strings.Contains(text, "Bravo") {
			t.Errorf("unexpected search output:\n%s", text)
		}

		text = mustRun(t, runner, out, "library", "search", "zzz")
		if !strings.Contains(text, "No songs match") {
			t.Errorf("expected no matches, got:\n%s", text)
		}

		if _, err := run(t, runner, out, "library", "search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("shuffle", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)

		text := mustRun(t, runner, out, "library", "shuffle", "--limit", "2")
		if !strings.Contains(text, "Shuffled order") || !strings.Contains(text, "2 SONGS") {
			t.Errorf("unexpected shuffle output:\n%s", text)
		}
		if !loadSettings(t, cfg).Playback.Shuffled {
			t.Error("expected shuffle to be saved")
		}
	})

	t.Run("status", func(t *testing.T) {
		runner, out, _ := newTestRunner(t)

		text := mustRun(t, runner, out, "library", "status", "--json")
		var st libraryStatus
		if err := json.Unmarshal([]byte(text), &st); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if st.Count != 3 || st.Report.Total != 3 || st.Report.Remaining != 3 {
			t.Errorf("unexpected status %+v", st)
		}

		text = mustRun(t, runner, out, "library", "status")
		for _, want := range []string{"Current season:", "Holiday mode: off", "SHOWING"} {
			if !strings.Contains(text, want) {
				t.Errorf("expected %q in output:\n%s", want, text)
			}
		}
	})

	t.Run("open", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)
		var opened []string
		runner.openPath = func(target string) error {
			opened = append(opened, target)
			return nil
		}

		mustRun(t, runner, out, "library", "open")
		mustRun(t, runner, out, "library", "open", "evil")

		want := []string{cfg.Library.MusicDir, cfg.Library.FolderPath("evil")}
		if strings.Join(opened, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v to be opened, got %v", want, opened)
		}

		if _, err := run(t, runner, out, "library", "open", "vedal"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := run(t, runner, out, "library", "open", "--playlists"); err == nil {
			t.Error("expected an error for a playlists directory that does not exist yet")
		}
	})

	t.Run("refresh records the scan", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)
		th.WriteSongs(t, cfg, "neuro", "Delta.wav")

		text := mustRun(t, runner, out, "library", "refresh")
		if !strings.Contains(text, "Scan Complete!") || !strings.Contains(text, "Songs:   4") {
			t.Errorf("unexpected refresh output:\n%s", text)
		}

		text = mustRun(t, runner, out, "stats", "--json")
		var report statsReport
		if err := json.Unmarshal([]byte(text), &report); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if report.LastScan == nil || report.LastScan.Reason != "manual" || report.LastScan.Songs != 4 {
			t.Errorf("expected the manual scan to be recorded, got %+v", report.LastScan)
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	t.Run("custom playlist lifecycle", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)

		if text := mustRun(t, runner, out, "playlist", "create", "road trip"); !strings.Contains(text, `Created playlist "road trip"`) {
			t.Errorf("unexpected create output %q", text)
		}
		if _, err := run(t, runner, out, "playlist", "create", "road trip"); !errors.Is(err, shared.ErrPlaylistExists) {
			t.Errorf("expected ErrPlaylistExists, got %v", err)
		}

		mustRun(t, runner, out, "playlist", "add", "road trip", "Alpha.mp3")
		if text := mustRun(t, runner, out, "playlist", "add", "road trip", "Alpha.mp3"); !strings.Contains(text, "already in") {
			t.Errorf("expected duplicate add to be reported, got %q", text)
		}
		th.AssertFileExists(t, filepath.Join(cfg.Storage.PlaylistsDir, "road trip.txt"))

		text := mustRun(t, runner, out, "playlist", "show", "--json", "road trip")
		var songs []models.Song
		if err := json.Unmarshal([]byte(text), &songs); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if len(songs) != 1 || songs[0].Filename != "Alpha.mp3" {
			t.Errorf("expected Alpha in road trip, got %+v", songs)
		}

		if text := mustRun(t, runner, out, "playlist", "list"); !strings.Contains(text, "road trip") || !strings.Contains(text, "custom") {
			t.Errorf("expected road trip in overview:\n%s", text)
		}

		mustRun(t, runner, out, "playlist", "remove", "road trip", "Alpha.mp3")
		if text := mustRun(t, runner, out, "playlist", "remove", "road trip", "Alpha.mp3"); !strings.Contains(text, "is not in") {
			t.Errorf("expected missing remove to be reported, got %q", text)
		}

		mustRun(t, runner, out, "playlist", "delete", "road trip")
		th.AssertFileMissing(t, filepath.Join(cfg.Storage.PlaylistsDir, "road trip.txt"))
	})

	t.Run("favorite and block toggle", func(t *testing.T) {
		runner, out, _ := newTestRunner(t)

		if text := mustRun(t, runner, out, "playlist", "favorite", "Bravo.mp3"); !strings.Contains(text, "Added Bravo.mp3 to favorites") {
			t.Errorf("unexpected output %q", text)
		}
		if text := mustRun(t, runner, out, "playlist", "favorite", "Bravo.mp3"); !strings.Contains(text, "Removed Bravo.mp3 from favorites") {
			t.Errorf("unexpected output %q", text)
		}

		mustRun(t, runner, out, "playlist", "block", "Charlie.mp3")
		text := mustRun(t, runner, out, "library", "list", "--json")
		var songs []models.Song
		if err := json.Unmarshal([]byte(text), &songs); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if len(songs) != 2 {
			t.Errorf("expected blocked song hidden, got %d songs", len(songs))
		}
	})

	t.Run("errors", func(t *testing.T) {
		runner, out, _ := newTestRunner(t)

		tests := []struct {
			name string
			args []string
			want error
		}{
			{"delete reserved", []string{"playlist", "delete", "favorites"}, shared.ErrReservedPlaylist},
			{"show missing", []string{"playlist", "show", "nope"}, shared.ErrPlaylistNotFound},
			{"add unknown song", []string{"playlist", "add", "mix", "missing.mp3"}, shared.ErrSongNotFound},
			{"add without song", []string{"playlist", "add", "mix"}, shared.ErrMissingArgument},
			{"favorite without song", []string{"playlist", "favorite"}, shared.ErrMissingArgument},
			{"export without name", []string{"playlist", "export"}, shared.ErrMissingArgument},
			{"export bad format", []string{"playlist", "export", "--format", "xml", "favorites"}, shared.ErrInvalidFlag},
			{"export missing playlist", []string{"playlist", "export", "nope"}, shared.ErrPlaylistNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := run(t, runner, out, tt.args...); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("export one playlist", func(t *testing.T) {
		runner, out, _ := newTestRunner(t)
		dir := t.TempDir()

		mustRun(t, runner, out, "playlist", "favorite", "Alpha.mp3")
		text := mustRun(t, runner, out, "playlist", "export", "--format", "m3u", "--output", dir, "favorites")

		path := filepath.Join(dir, "favorites.m3u")
		if !strings.Contains(text, path) {
			t.Errorf("expected export path in output %q", text)
		}
		if content := th.MustReadFile(t, path); !strings.Contains(content, "Alpha.mp3") {
			t.Errorf("expected Alpha in export, got %q", content)
		}
	})

	t.Run("export all", func(t *testing.T) {
		runner, out, _ := newTestRunner(t)
		dir := filepath.Join(t.TempDir(), "export")

		text := mustRun(t, runner, out, "playlist", "export", "--all", "--format", "json", "--output", dir)
		if !strings.Contains(text, "Export Complete!") {
			t.Errorf("unexpected export output:\n%s", text)
		}
		th.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))
		th.AssertFileExists(t, filepath.Join(dir, "favorites.json"))
	})
}

func TestSettingsCommands(t *testing.T) {
	t.Run("holiday, repeat and shuffle are saved", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)

		mustRun(t, runner, out, "settings", "holiday", "on")
		mustRun(t, runner, out, "settings", "repeat", "one")
		mustRun(t, runner, out, "settings", "shuffle", "on")

		settings := loadSettings(t, cfg)
		if !settings.HolidayMode || settings.Playback.RepeatMode != models.RepeatOne || !settings.Playback.Shuffled {
			t.Errorf("unexpected settings %+v", settings)
		}

		if text := mustRun(t, runner, out, "settings", "repeat"); !strings.Contains(text, "Repeat off") {
			t.Errorf("expected repeat to cycle from one to off, got %q", text)
		}
		if text := mustRun(t, runner, out, "settings", "shuffle"); !strings.Contains(text, "Shuffle off") {
			t.Errorf("expected shuffle to toggle off, got %q", text)
		}

		if _, err := run(t, runner, out, "settings", "holiday", "maybe"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := run(t, runner, out, "settings", "repeat", "twice"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("artists", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)

		text := mustRun(t, runner, out, "settings", "artists", "neuro", "duet")
		if !strings.Contains(text, "Neuro, Duet") || !strings.Contains(text, "(2 songs)") {
			t.Errorf("unexpected artists output %q", text)
		}
		if got := loadSettings(t, cfg).SelectedArtists; len(got) != 2 {
			t.Errorf("expected two saved artists, got %v", got)
		}

		text = mustRun(t, runner, out, "settings", "artists", "none")
		if !strings.Contains(text, "Artists: none") || !strings.Contains(text, "No Songs Available") {
			t.Errorf("unexpected output for empty selection %q", text)
		}

		if _, err := run(t, runner, out, "settings", "artists", "vedal"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("volume", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)

		if text := mustRun(t, runner, out, "settings", "volume", "150"); !strings.Contains(text, "Volume: 100") {
			t.Errorf("expected clamped volume, got %q", text)
		}
		if text := mustRun(t, runner, out, "settings", "volume", "--mute"); !strings.Contains(text, "muted") {
			t.Errorf("expected muted, got %q", text)
		}
		if got := loadSettings(t, cfg).Volume; got != 100 {
			t.Errorf("expected the level before muting to be saved, got %d", got)
		}
		if _, err := run(t, runner, out, "settings", "volume", "loud"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("equalizer", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)

		text := mustRun(t, runner, out, "settings", "eq", "--preset", "bass-booster")
		if !strings.Contains(text, "bass-booster (on)") || !strings.Contains(text, "+5.0") {
			t.Errorf("unexpected eq output:\n%s", text)
		}

		text = mustRun(t, runner, out, "settings", "eq", "--band", "60=-3", "--disable")
		if !strings.Contains(text, "custom (off)") || !strings.Contains(text, "-3.0") {
			t.Errorf("unexpected eq output:\n%s", text)
		}
		if eq := loadSettings(t, cfg).Equalizer; eq.Enabled || eq.Bands["60"] != -3 {
			t.Errorf("unexpected saved equalizer %+v", eq)
		}

		if text := mustRun(t, runner, out, "settings", "eq", "--presets"); !strings.HasPrefix(text, "flat\n") {
			t.Errorf("expected flat first, got %q", text)
		}

		tests := []struct {
			name string
			args []string
			want error
		}{
			{"unknown preset", []string{"--preset", "dubstep"}, shared.ErrUnknownPreset},
			{"unknown band", []string{"--band", "61=1"}, shared.ErrUnknownBand},
			{"malformed band", []string{"--band", "60"}, shared.ErrInvalidFlag},
			{"enable and disable", []string{"--enable", "--disable"}, shared.ErrInvalidFlag},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				args := append([]string{"settings", "eq"}, tt.args...)
				if _, err := run(t, runner, out, args...); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("show and reset", func(t *testing.T) {
		runner, out, cfg := newTestRunner(t)
		mustRun(t, runner, out, "settings", "holiday", "on")

		text := mustRun(t, runner, out, "settings", "show")
		if !strings.Contains(text, "Holiday mode") || !strings.Contains(text, "on") {
			t.Errorf("unexpected settings output:\n%s", text)
		}

		mustRun(t, runner, out, "settings", "reset")
		if loadSettings(t, cfg).HolidayMode {
			t.Error("expected defaults after reset")
		}
	})
}

func TestParsers(t *testing.T) {
	t.Run("parseOnOff", func(t *testing.T) {
		tests := []struct {
			in   string
			want bool
			err  error
		}{
			{"on", true, nil},
			{"YES", true, nil},
			{"off", false, nil},
			{"0", false, nil},
			{"", false, shared.ErrMissingArgument},
			{"sometimes", false, shared.ErrInvalidArgument},
		}
		for _, tt := range tests {
			got, err := parseOnOff(tt.in)
			if !errors.Is(err, tt.err) || got != tt.want {
				t.Errorf("parseOnOff(%q) = %v, %v; want %v, %v", tt.in, got, err, tt.want, tt.err)
			}
		}
	})

	t.Run("parseBand", func(t *testing.T) {
		tests := []struct {
			in     string
			hz     int
			db     float64
			hasErr bool
		}{
			{"60=4.5", 60, 4.5, false},
			{"1000Hz=-2", 1000, -2, false},
			{" 170 = 1 ", 170, 1, false},
			{"60", 0, 0, true},
			{"sixty=1", 0, 0, true},
			{"60=loud", 0, 0, true},
		}
		for _, tt := range tests {
			hz, db, err := parseBand(tt.in)
			if (err != nil) != tt.hasErr || hz != tt.hz || db != tt.db {
				t.Errorf("parseBand(%q) = %d, %v, %v", tt.in, hz, db, err)
			}
		}
	})

	t.Run("parseArtists", func(t *testing.T) {
		set, err := parseArtists(nil)
		if set != nil || err != nil {
			t.Errorf("expected nil for no arguments, got %v %v", set, err)
		}

		set, err = parseArtists([]string{"Neuro", "evil"})
		if err != nil || set.Len() != 2 || !set.Has(models.Neuro) || !set.Has(models.Evil) {
			t.Errorf("unexpected set %v %v", set, err)
		}

		set, err = parseArtists([]string{"all"})
		if err != nil || !set.IsFull() {
			t.Errorf("expected every artist, got %v %v", set, err)
		}

		if _, err := parseArtists([]string{"unknown"}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestStats(t *testing.T) {
	runner, out, cfg := newTestRunner(t)

	if text := mustRun(t, runner, out, "stats"); !strings.Contains(text, "Nothing played yet") {
		t.Errorf("expected empty history, got:\n%s", text)
	}

	db, err := shared.OpenDatabase(cfg.Database)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	recorder := newRecorder(db)
	song := models.Song{Title: "Alpha", Artist: models.Neuro, Filename: "Alpha.mp3"}
	for range 2 {
		id, err := recorder.RecordPlay(song, "library", time.Now())
		if err != nil {
			t.Fatalf("RecordPlay failed: %v", err)
		}
		if err := recorder.RecordCompletion(id); err != nil {
			t.Fatalf("RecordCompletion failed: %v", err)
		}
	}
	db.Close()

	text := mustRun(t, runner, out, "stats")
	for _, want := range []string{"Listening history (2 plays)", "Most played", "Alpha", "Neuro"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output:\n%s", want, text)
		}
	}

	text = mustRun(t, runner, out, "stats", "--json", "--limit", "1")
	var report statsReport
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if report.Plays != 2 || len(report.Top) != 1 || report.Top[0].Plays != 2 || len(report.Recent) != 1 {
		t.Errorf("unexpected report %+v", report)
	}

	if text := mustRun(t, runner, out, "stats", "--clear"); !strings.Contains(text, "Cleared 2 plays") {
		t.Errorf("unexpected clear output %q", text)
	}
	if text := mustRun(t, runner, out, "stats"); !strings.Contains(text, "Nothing played yet") {
		t.Errorf("expected empty history after clear, got:\n%s", text)
	}
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	wd := th.MustGetwd(t)
	th.MustChdir(t, dir)
	t.Cleanup(func() { th.MustChdir(t, wd) })

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: output})

	app := &cli.Command{Name: "nmp", Commands: runner.register()}
	if err := app.Run(context.Background(), []string{"nmp", "setup", "--config", "conf/config.toml"}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	th.AssertFileExists(t, filepath.Join(dir, "conf", "config.toml"))
	th.AssertFileExists(t, filepath.Join(dir, "nmp.db"))
	th.AssertDirExists(t, filepath.Join(dir, "playlists"))
	for _, hint := range []string{"neuro", "evil", "duet"} {
		th.AssertDirExists(t, filepath.Join(dir, "music", hint))
	}
	if !strings.Contains(output.String(), "Setup complete") {
		t.Errorf("unexpected setup output:\n%s", output.String())
	}

	if err := app.Run(context.Background(), []string{"nmp", "setup", "--config", "conf/config.toml"}); err != nil {
		t.Fatalf("second setup should reuse the existing config, got %v", err)
	}
}
