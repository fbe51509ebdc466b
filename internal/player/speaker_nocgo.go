//go:build !((linux && cgo) || windows || darwin)

package player

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/nmp/internal/shared"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries.
const AudioAvailable = false

// Speaker is a placeholder for builds without cgo. Every transport call fails with [shared.ErrPlayerDisabled].
type Speaker struct{}

// NewSpeaker reports that audio output is unavailable.
func NewSpeaker(cfg shared.PlayerConfig, logger *log.Logger) (*Speaker, error) {
	return nil, shared.ErrPlayerDisabled
}

func (s *Speaker) Load(path string, onEnd func()) error { return shared.ErrPlayerDisabled }
func (s *Speaker) Play() error                          { return shared.ErrPlayerDisabled }
func (s *Speaker) Pause() error                         { return shared.ErrPlayerDisabled }
func (s *Speaker) Stop() error                          { return shared.ErrPlayerDisabled }
func (s *Speaker) Seek(d time.Duration) error           { return shared.ErrPlayerDisabled }
func (s *Speaker) SetVolume(v float64) error            { return shared.ErrPlayerDisabled }
func (s *Speaker) SetBandGain(hz int, db float64)       {}
func (s *Speaker) Position() time.Duration              { return 0 }
func (s *Speaker) Duration() time.Duration              { return 0 }
func (s *Speaker) Close() error                         { return nil }
