package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/player"
	"github.com/desertthunder/nmp/internal/store"
	th "github.com/desertthunder/nmp/internal/testing"
)

func collect(progress chan ProgressUpdate) []ProgressUpdate {
	var updates []ProgressUpdate
	for {
		select {
		case u := <-progress:
			updates = append(updates, u)
		default:
			return updates
		}
	}
}

func TestSessionScan(t *testing.T) {
	t.Run("reports progress and records the scan", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		progress := make(chan ProgressUpdate, 32)

		scan, err := f.session.Scan(context.Background(), progress, ReasonManual)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if scan.Songs != 4 || scan.Skipped != 0 || scan.Reason != ReasonManual {
			t.Errorf("unexpected scan record %+v", scan)
		}
		if len(f.recorder.scans) != 1 {
			t.Errorf("expected scan recorded, got %d", len(f.recorder.scans))
		}

		updates := collect(progress)
		folders := 0
		for _, u := range updates {
			if u.Phase == ScanFolders {
				folders++
			}
		}
		if folders != 3 {
			t.Errorf("expected one update per folder, got %d", folders)
		}
		if last := updates[len(updates)-1]; last.Phase != IngestSongs || last.Data != 4 {
			t.Errorf("expected ingest summary last, got %+v", last)
		}
	})

	t.Run("skips unreadable folders", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		evil := f.cfg.Library.FolderPath("evil")
		if err := os.RemoveAll(evil); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(evil, nil, 0644); err != nil {
			t.Fatal(err)
		}
		progress := make(chan ProgressUpdate, 32)

		scan, err := f.session.Scan(context.Background(), progress, ReasonManual)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if scan.Songs != 3 {
			t.Errorf("expected 3 songs, got %d", scan.Songs)
		}

		failed := false
		for _, u := range collect(progress) {
			if _, ok := u.Data.(error); ok && u.Phase == ScanFolders {
				failed = true
			}
		}
		if !failed {
			t.Error("expected a folder failure update")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := f.session.Scan(ctx, nil, ReasonManual); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(f.recorder.scans) != 0 {
			t.Error("cancelled scans should not be recorded")
		}
	})

	t.Run("enriches songs with tags", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		f.session.readTags = func(path string) (store.Tags, error) {
			if filepath.Base(path) == "Alpha.mp3" {
				return store.Tags{Album: "Singles", Genre: "Pop"}, nil
			}
			return store.Tags{}, errors.New("no tags")
		}

		if _, err := f.session.Scan(context.Background(), nil, ReasonManual); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}

		var alpha models.Song
		f.session.Inspect(func(e *engine.Engine) {
			for _, s := range e.Active() {
				if s.Filename == "Alpha.mp3" {
					alpha = s
				}
			}
		})
		if alpha.Album != "Singles" || alpha.Genre != "Pop" {
			t.Errorf("expected tags applied, got %+v", alpha)
		}
	})

	t.Run("new files appear on rescan", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		f.start(t)
		th.WriteSongs(t, f.cfg, "duet", "Delta.mp3", "cover.jpg")

		scan, err := f.session.Scan(context.Background(), nil, ReasonWatch)
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if scan.Songs != 5 || f.session.Status().Count != 5 {
			t.Errorf("expected 5 songs after rescan, got %d", scan.Songs)
		}
	})
}

func TestSessionReloadPlaylists(t *testing.T) {
	f := newFixture(t, player.NewSilent())
	f.start(t)

	if err := f.store.WritePlaylist("evening", []string{"Bravo.mp3"}); err != nil {
		t.Fatalf("WritePlaylist failed: %v", err)
	}
	progress := make(chan ProgressUpdate, 4)
	if err := f.session.ReloadPlaylists(progress); err != nil {
		t.Fatalf("ReloadPlaylists failed: %v", err)
	}

	if err := f.session.OpenPlaylist("evening"); err != nil {
		t.Fatalf("OpenPlaylist failed: %v", err)
	}
	if st := f.session.Status(); st.Count != 1 {
		t.Errorf("expected 1 song in evening, got %d", st.Count)
	}
	if updates := collect(progress); len(updates) != 1 || updates[0].Phase != LoadPlaylists {
		t.Errorf("expected a load playlists update, got %+v", updates)
	}
}
