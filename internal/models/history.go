package models

import (
	"fmt"
	"time"
)

// PlayEvent records one song started from the player.
type PlayEvent struct {
	id        string
	Filename  string
	Title     string
	Artist    Artist
	Source    string // view the song was played from, e.g. "library" or "playlist:road trip"
	PlayedAt  time.Time
	Completed bool
}

// NewPlayEvent creates a [PlayEvent] for song started now.
func NewPlayEvent(song Song, source string, now time.Time) *PlayEvent {
	return &PlayEvent{
		Filename: song.Filename,
		Title:    song.Title,
		Artist:   song.Artist,
		Source:   source,
		PlayedAt: now,
	}
}

func (p *PlayEvent) ID() string           { return p.id }
func (p *PlayEvent) SetID(id string)      { p.id = id }
func (p *PlayEvent) CreatedAt() time.Time { return p.PlayedAt }

func (p *PlayEvent) Validate() error {
	if p.Filename == "" {
		return fmt.Errorf("play event filename is required")
	}
	if p.PlayedAt.IsZero() {
		return fmt.Errorf("play event time is required")
	}
	return nil
}

// PlayCount aggregates play events for one song.
type PlayCount struct {
	Filename   string
	Title      string
	Artist     Artist
	Plays      int
	LastPlayed time.Time
}

// ScanRecord records one full ingest of the music folders.
type ScanRecord struct {
	id         string
	StartedAt  time.Time
	FinishedAt time.Time
	Songs      int
	Skipped    int
	Reason     string // "manual", "startup" or "watch"
}

// NewScanRecord creates a [ScanRecord].
func NewScanRecord(started, finished time.Time, songs, skipped int, reason string) *ScanRecord {
	return &ScanRecord{StartedAt: started, FinishedAt: finished, Songs: songs, Skipped: skipped, Reason: reason}
}

func (s *ScanRecord) ID() string              { return s.id }
func (s *ScanRecord) SetID(id string)         { s.id = id }
func (s *ScanRecord) CreatedAt() time.Time    { return s.StartedAt }
func (s *ScanRecord) Duration() time.Duration { return s.FinishedAt.Sub(s.StartedAt) }

func (s *ScanRecord) Validate() error {
	if s.StartedAt.IsZero() || s.FinishedAt.Before(s.StartedAt) {
		return fmt.Errorf("scan record times are invalid")
	}
	if s.Songs < 0 || s.Skipped < 0 {
		return fmt.Errorf("scan record counts must not be negative")
	}
	return nil
}
