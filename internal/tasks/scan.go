package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/store"
)

// Scan reasons recorded with each [models.ScanRecord].
const (
	ReasonStartup = "startup"
	ReasonManual  = "manual"
	ReasonWatch   = "watch"
)

// Start loads playlists, scans the library and restores the saved settings.
//
// A missing or corrupt settings document falls back to defaults; only a cancelled context fails.
func (s *Session) Start(ctx context.Context, progress chan<- ProgressUpdate) error {
	settings, err := s.store.LoadSettings()
	if err != nil {
		s.logger.Warn("using default settings", "error", err)
		s.notify("Settings reset", "The settings file could not be read; defaults were loaded.")
	}

	if err := s.ReloadPlaylists(progress); err != nil {
		s.logger.Warn("failed to load playlists", "error", err)
	}

	if _, err := s.Scan(ctx, progress, ReasonStartup); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(settings)
	s.seasons = engine.ActiveSeasons(s.now())

	current, _ := s.engine.Current()
	s.logger.Info("session started", "songs", len(s.engine.Library()), "view", s.engine.View(), "song", current.Filename)
	return nil
}

// ReloadPlaylists replaces the in-memory memberships with the playlist files.
func (s *Session) ReloadPlaylists(progress chan<- ProgressUpdate) error {
	memberships, err := s.store.LoadPlaylists()
	if err != nil {
		return fmt.Errorf("failed to load playlists: %w", err)
	}

	s.mu.Lock()
	s.engine.SetPlaylists(memberships)
	s.mu.Unlock()

	sendProgress(progress, loadPlaylistsUpdate(len(memberships)))
	return nil
}

// Scan re-reads every configured music folder, replaces the library and records the scan.
//
// Folder and tag errors are reported through progress and skipped. The engine lock is only
// taken to swap in the new library.
func (s *Session) Scan(ctx context.Context, progress chan<- ProgressUpdate, reason string) (*models.ScanRecord, error) {
	started := s.now()
	folders := s.cfg.Library.Folders

	var refs []engine.FileRef
	for i, hint := range folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sendProgress(progress, scanFolderUpdate(i+1, len(folders), hint))
		found, err := s.store.ListAudioFiles(hint)
		if err != nil {
			s.logger.Warn("skipping music folder", "folder", hint, "error", err)
			sendProgress(progress, scanFolderFailedUpdate(i+1, len(folders), hint, err))
			continue
		}
		refs = append(refs, found...)
	}

	tags := s.collectTags(ctx, progress, refs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	added, skipped := s.engine.Refresh(refs)
	for path, t := range tags {
		s.engine.Enrich(path, t.Album, t.Genre)
	}
	s.mu.Unlock()

	sendProgress(progress, ingestUpdate(added, skipped))
	s.logger.Info("library scanned", "reason", reason, "songs", added, "skipped", skipped)

	scan := models.NewScanRecord(started, s.now(), added, skipped, reason)
	if s.recorder != nil {
		if err := s.recorder.RecordScan(scan); err != nil {
			s.logger.Warn("failed to record scan", "error", err)
		}
	}
	return scan, nil
}

// collectTags reads embedded tags for refs. Files without readable tags are skipped.
func (s *Session) collectTags(ctx context.Context, progress chan<- ProgressUpdate, refs []engine.FileRef) map[string]store.Tags {
	if s.readTags == nil {
		return nil
	}

	tags := make(map[string]store.Tags, len(refs))
	for i, ref := range refs {
		if ctx.Err() != nil {
			break
		}
		sendProgress(progress, readTagsUpdate(i+1, len(refs)))

		t, err := s.readTags(ref.Path)
		if err != nil {
			s.logger.Debug("no tags", "path", ref.Path, "error", err)
			continue
		}
		if t.Album != "" || t.Genre != "" {
			tags[ref.Path] = t
		}
	}
	return tags
}
