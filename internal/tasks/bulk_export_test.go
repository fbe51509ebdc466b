package tasks

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/nmp/internal/formatter"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/player"
	th "github.com/desertthunder/nmp/internal/testing"
)

func TestBulkExport(t *testing.T) {
	f := newFixture(t, player.NewSilent())
	if err := f.store.WritePlaylist("mix", []string{"Charlie.mp3", "Alpha.mp3"}); err != nil {
		t.Fatalf("WritePlaylist failed: %v", err)
	}
	if err := f.store.WritePlaylist(models.Favorites, []string{"Echo.mp3"}); err != nil {
		t.Fatalf("WritePlaylist failed: %v", err)
	}
	f.start(t)

	t.Run("every playlist", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "export")
		progress := make(chan ProgressUpdate, 64)

		result, err := f.session.BulkExport(context.Background(), progress, BulkExportOpts{
			Format:     formatter.FormatM3U,
			OutputDir:  dir,
			NumWorkers: 2,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		if result.TotalPlaylists != 6 || result.SuccessfulExports != 6 || result.FailedExports != 0 {
			t.Errorf("unexpected result %+v", result)
		}
		th.AssertFileExists(t, filepath.Join(dir, "mix.m3u"))
		th.AssertFileExists(t, filepath.Join(dir, "favorites.m3u"))

		content := th.MustReadFile(t, filepath.Join(dir, "mix.m3u"))
		if strings.Index(content, "Charlie") > strings.Index(content, "Alpha") {
			t.Errorf("expected membership order, got:\n%s", content)
		}

		var manifest formatter.Manifest
		if err := json.Unmarshal([]byte(th.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
			t.Fatalf("failed to parse manifest: %v", err)
		}
		if manifest.Succeeded != 6 || len(manifest.Playlists) != 6 || manifest.Format != formatter.FormatM3U {
			t.Errorf("unexpected manifest %+v", manifest)
		}

		exporting := 0
		for _, u := range collect(progress) {
			if u.Phase == ExportPlaylist {
				exporting++
			}
		}
		if exporting != 12 {
			t.Errorf("expected a start and finish update per playlist, got %d", exporting)
		}
	})

	t.Run("named playlists", func(t *testing.T) {
		dir := t.TempDir()

		result, err := f.session.BulkExport(context.Background(), nil, BulkExportOpts{
			Format:    formatter.FormatCSV,
			OutputDir: dir,
			Names:     []string{"mix"},
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if result.TotalPlaylists != 1 || result.Results[0].Songs != 2 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := f.session.BulkExport(ctx, nil, BulkExportOpts{OutputDir: t.TempDir()})
		if err == nil {
			t.Fatal("expected cancellation error")
		}
		if result.FailedExports != result.TotalPlaylists {
			t.Errorf("expected every export to fail, got %+v", result)
		}
		if result.ManifestPath != "" {
			t.Error("manifest should not be written after cancellation")
		}
	})

	t.Run("single playlist", func(t *testing.T) {
		path, err := f.session.ExportPlaylist("mix", formatter.FormatText, t.TempDir())
		if err != nil {
			t.Fatalf("ExportPlaylist failed: %v", err)
		}
		content := th.MustReadFile(t, path)
		if !strings.HasPrefix(content, "Playlist: mix\nSongs: 2") {
			t.Errorf("unexpected export:\n%s", content)
		}
	})
}
