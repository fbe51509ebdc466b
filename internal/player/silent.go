package player

import (
	"sync"
	"time"

	"github.com/desertthunder/nmp/internal/shared"
)

// Silent is an [AudioSink] and [EqualizerSink] that tracks transport state without producing sound.
// It backs headless runs (serve without an audio device) and builds without audio support.
type Silent struct {
	mu      sync.Mutex
	path    string
	playing bool
	gain    float64
	gains   map[int]float64
}

// NewSilent returns an idle [Silent] sink at full gain.
func NewSilent() *Silent {
	return &Silent{gain: 1, gains: map[int]float64{}}
}

func (s *Silent) Load(path string, onEnd func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.playing = false
	return nil
}

func (s *Silent) setPlaying(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return shared.ErrNothingLoaded
	}
	s.playing = on
	return nil
}

func (s *Silent) Play() error                { return s.setPlaying(true) }
func (s *Silent) Pause() error               { return s.setPlaying(false) }
func (s *Silent) Stop() error                { return s.setPlaying(false) }
func (s *Silent) Seek(d time.Duration) error { return nil }
func (s *Silent) Position() time.Duration    { return 0 }
func (s *Silent) Duration() time.Duration    { return 0 }
func (s *Silent) Close() error               { return nil }

func (s *Silent) SetVolume(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gain = v
	return nil
}

func (s *Silent) SetBandGain(hz int, db float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gains[hz] = db
}

// Loaded returns the last loaded path and whether it is playing.
func (s *Silent) Loaded() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path, s.playing
}

// Gain returns the last volume set.
func (s *Silent) Gain() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gain
}

// BandGain returns the last gain set for hz.
func (s *Silent) BandGain(hz int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gains[hz]
}
