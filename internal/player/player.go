package player

import (
	"math"
	"time"
)

//go:generate mockgen -destination=../mocks/player.go -package=mocks github.com/desertthunder/nmp/internal/player AudioSink,EqualizerSink

// AudioSink decodes and plays one song at a time.
//
// onEnd passed to Load fires once when the loaded song plays to completion, from the audio goroutine.
// It never fires for a song replaced by a later Load or Stop.
type AudioSink interface {
	Load(path string, onEnd func()) error
	Play() error
	Pause() error
	Stop() error
	Seek(d time.Duration) error
	SetVolume(v float64) error
	Position() time.Duration
	Duration() time.Duration
	Close() error
}

// EqualizerSink applies per-band gain. Unknown bands are ignored.
type EqualizerSink interface {
	SetBandGain(hz int, db float64)
}

// Volume tracks the 0-100 volume level and the level to restore after unmuting.
type Volume struct {
	level    int
	previous int
	muted    bool
}

// NewVolume returns a [Volume] at level, clamped to 0-100.
func NewVolume(level int) *Volume {
	v := &Volume{}
	v.Set(level)
	return v
}

// Set changes the level. Raising it above zero clears mute.
func (v *Volume) Set(level int) int {
	v.level = max(0, min(100, level))
	if v.level > 0 {
		v.muted = false
	}
	return v.level
}

// Level returns the current level, 0 while muted.
func (v *Volume) Level() int { return v.level }

// Muted reports whether the volume was muted with [Volume.ToggleMute].
func (v *Volume) Muted() bool { return v.muted }

// ToggleMute drops to zero, remembering the level, or restores it.
func (v *Volume) ToggleMute() bool {
	if v.muted {
		v.level = v.previous
		v.muted = false
		return false
	}
	v.previous = v.level
	v.level = 0
	v.muted = true
	return true
}

// Persisted returns the level to save: the pre-mute level while muted.
func (v *Volume) Persisted() int {
	if v.muted {
		return v.previous
	}
	return v.level
}

// Gain maps the level to the 0..1 range taken by [AudioSink.SetVolume].
func (v *Volume) Gain() float64 { return float64(v.level) / 100 }

// gainToExponent converts a linear 0..1 gain to the base-2 exponent used by the volume effect.
func gainToExponent(gain float64) (exp float64, silent bool) {
	if gain <= 0 {
		return 0, true
	}
	return math.Log2(math.Min(gain, 1)), false
}
