package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/nmp/internal/formatter"
	"github.com/desertthunder/nmp/internal/models"
)

// BulkExportOpts contains configuration for bulk playlist exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format: csv, markdown, txt, m3u or json
	OutputDir  string           // Base output directory (default: nmp_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4)
	Names      []string         // Playlists to export (default: every playlist in the overview)
}

// PlaylistExportJob is one playlist resolved to songs, waiting to be written.
type PlaylistExportJob struct {
	Export *formatter.Export
}

// PlaylistExportResult reports the outcome of writing one playlist.
type PlaylistExportResult struct {
	Name  string
	Songs int
	File  string
	Error error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalPlaylists    int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []PlaylistExportResult
}

// BulkExport writes several playlists concurrently and summarizes them in a manifest.
//
// Playlists are resolved under the session lock first, so writing never blocks playback.
// Per-playlist failures are collected in the result; only setup and manifest failures are returned.
func (s *Session) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("nmp_export_%d", s.now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	exports := s.resolveExports(opts.Names)
	result := &BulkExportResult{
		TotalPlaylists:  len(exports),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(exports)),
	}

	jobs := make(chan PlaylistExportJob, len(exports))
	results := make(chan PlaylistExportResult, len(exports))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go exportWorker(ctx, &wg, jobs, results, opts)
	}

	for i, export := range exports {
		sendProgress(prog, exportingPlaylistUpdate(i+1, len(exports), export.Name))
		jobs <- PlaylistExportJob{Export: export}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Error == nil {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(exports), res.Name, res.Songs))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(exports), res.Name, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(manifestFor(result, opts.Format, s.now()), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// resolveExports snapshots the named playlists, or every overview playlist when names is empty.
func (s *Session) resolveExports(names []string) []*formatter.Export {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(names) == 0 {
		for _, p := range s.engine.Overview() {
			names = append(names, p.Name)
		}
	}

	now := s.now()
	exports := make([]*formatter.Export, 0, len(names))
	for _, name := range names {
		exports = append(exports, &formatter.Export{
			Name:       name,
			Kind:       models.KindOf(name).String(),
			ExportedAt: now,
			Songs:      s.engine.PlaylistSongs(name),
		})
	}
	return exports
}

// exportWorker writes playlists from the jobs channel until it closes or ctx is cancelled.
func exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan PlaylistExportJob,
	results chan<- PlaylistExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		res := PlaylistExportResult{Name: job.Export.Name, Songs: len(job.Export.Songs)}
		if err := ctx.Err(); err != nil {
			res.Error = err
			results <- res
			continue
		}

		res.File, res.Error = formatter.WriteExport(job.Export, opts.Format, opts.OutputDir)
		results <- res
	}
}

func manifestFor(result *BulkExportResult, f formatter.Format, now time.Time) *formatter.Manifest {
	m := &formatter.Manifest{
		Format:     f,
		ExportedAt: now,
		Directory:  result.OutputDirectory,
		Succeeded:  result.SuccessfulExports,
		Failed:     result.FailedExports,
	}
	for _, r := range result.Results {
		entry := formatter.ManifestEntry{Name: r.Name, Songs: r.Songs}
		if r.Error != nil {
			entry.Error = r.Error.Error()
		} else {
			entry.File = filepath.Base(r.File)
		}
		m.Playlists = append(m.Playlists, entry)
	}
	return m
}

// ExportPlaylist writes one playlist into dir and returns the written path.
func (s *Session) ExportPlaylist(name string, f formatter.Format, dir string) (string, error) {
	exports := s.resolveExports([]string{name})
	return formatter.WriteExport(exports[0], f, dir)
}
