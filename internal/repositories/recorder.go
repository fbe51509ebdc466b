package repositories

import (
	"fmt"
	"time"

	"github.com/desertthunder/nmp/internal/models"
)

// HistoryRecorder implements session.Recorder on top of the history and scan repositories.
type HistoryRecorder struct {
	plays *HistoryRepository
	scans *ScanRepository
}

// NewHistoryRecorder creates a new HistoryRecorder with the given repositories
func NewHistoryRecorder(plays *HistoryRepository, scans *ScanRepository) *HistoryRecorder {
	return &HistoryRecorder{plays: plays, scans: scans}
}

// RecordPlay stores a play of song started from source and returns its ID.
func (a *HistoryRecorder) RecordPlay(song models.Song, source string, at time.Time) (string, error) {
	event := models.NewPlayEvent(song, source, at)
	if err := a.plays.Create(event); err != nil {
		return "", fmt.Errorf("failed to record play: %w", err)
	}
	return event.ID(), nil
}

// RecordCompletion marks a recorded play as finished.
func (a *HistoryRecorder) RecordCompletion(id string) error {
	return a.plays.MarkCompleted(id)
}

// RecordScan stores a finished library scan.
func (a *HistoryRecorder) RecordScan(scan *models.ScanRecord) error {
	return a.scans.Create(scan)
}
