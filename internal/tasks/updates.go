package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ScanFolders Phase = iota
	ReadTags
	IngestSongs
	LoadPlaylists
	ExportPlaylist
)

func (p Phase) String() string {
	switch p {
	case ScanFolders:
		return "scan_folders"
	case ReadTags:
		return "read_tags"
	case IngestSongs:
		return "ingest_songs"
	case LoadPlaylists:
		return "load_playlists"
	case ExportPlaylist:
		return "export_playlist"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func scanFolderUpdate(step, total int, hint string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanFolders,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Scanning %s...", step, total, hint),
	}
}

func scanFolderFailedUpdate(step, total int, hint string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanFolders,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, hint, err),
		Data:    err,
	}
}

func readTagsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadTags,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Reading tags (%d/%d)...", step, total),
	}
}

func ingestUpdate(added, skipped int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   IngestSongs,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d songs (%d skipped)", added, skipped),
		Data:    added,
	}
}

func loadPlaylistsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadPlaylists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d playlists", count),
	}
}

func exportingPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, songs int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d songs)", step, total, name, songs),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
