package tasks

import (
	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
)

// Status is a point-in-time snapshot of the session for display.
type Status struct {
	Title     string                   `json:"title"`
	Message   string                   `json:"message"`
	View      string                   `json:"view"`
	State     string                   `json:"state"`
	Index     int                      `json:"index"`
	Count     int                      `json:"count"`
	Current   *models.Song             `json:"current,omitempty"`
	Position  string                   `json:"position"`
	Duration  string                   `json:"duration"`
	Repeat    string                   `json:"repeat"`
	Shuffled  bool                     `json:"shuffled"`
	Volume    int                      `json:"volume"` // level to restore while muted
	Muted     bool                     `json:"muted"`
	Equalizer models.EqualizerSettings `json:"equalizer"`
	Holiday   bool                     `json:"holidayMode"`
	Seasonal  string                   `json:"seasonal"`
	Season    string                   `json:"season"`
	Artists   []string                 `json:"artists"`
}

// Status snapshots the session.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.engine
	header := e.Header()
	st := Status{
		Title:     header.Title,
		Message:   header.Status,
		View:      e.View().String(),
		State:     e.State().String(),
		Index:     e.Index(),
		Count:     len(e.Active()),
		Position:  shared.FormatTime(s.sink.Position()),
		Duration:  shared.FormatTime(s.sink.Duration()),
		Repeat:    e.Repeat().String(),
		Shuffled:  e.Shuffled(),
		Volume:    s.volume.Persisted(),
		Muted:     s.volume.Muted(),
		Equalizer: s.eq.Settings(),
		Holiday:   e.Filters().HolidayMode,
		Seasonal:  e.HolidayStatus(),
		Season:    engine.SeasonInfo(e.Now()),
	}
	if song, ok := e.Current(); ok {
		st.Current = &song
	}
	for _, a := range e.Filters().Artists.Artists() {
		st.Artists = append(st.Artists, a.String())
	}
	return st
}
