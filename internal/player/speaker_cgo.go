//go:build (linux && cgo) || windows || darwin

package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// Speaker plays songs through the system audio device using beep.
//
// The decoded stream is resampled to the device rate, run through the equalizer and the volume
// effect, and wrapped in a [beep.Ctrl] for pause.
type Speaker struct {
	mu     sync.Mutex
	logger *log.Logger

	initialized bool
	sampleRate  beep.SampleRate
	buffer      time.Duration
	quality     int

	streamer   beep.StreamSeekCloser
	format     beep.Format
	resampled  beep.Streamer
	eq         *swapStreamer
	volume     *effects.Volume
	ctrl       *beep.Ctrl
	playbackID uint64

	gain  float64
	gains map[int]float64
}

// NewSpeaker creates a [Speaker]. The audio device is opened on the first Load.
func NewSpeaker(cfg shared.PlayerConfig, logger *log.Logger) (*Speaker, error) {
	quality := cfg.ResampleQuality
	if quality < 1 || quality > 64 {
		quality = 4
	}
	return &Speaker{
		logger:     shared.WithLogger(logger, "component", "speaker"),
		sampleRate: beep.SampleRate(cfg.SampleRate),
		buffer:     cfg.Buffer.Duration,
		quality:    quality,
		gain:       1,
		gains:      map[int]float64{},
	}, nil
}

func (s *Speaker) initLocked() error {
	if s.initialized {
		return nil
	}
	buffer := s.buffer
	if buffer <= 0 {
		buffer = time.Second / 10
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(buffer)); err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	s.initialized = true
	return nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var (
		st     beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		st, format, err = mp3.Decode(f)
	case ".wav":
		st, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", shared.ErrUnsupportedAudio, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return st, format, nil
}

// Load decodes path and queues it paused. onEnd fires when it plays to completion.
func (s *Speaker) Load(path string, onEnd func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unloadLocked()

	st, format, err := decode(path)
	if err != nil {
		return err
	}
	if err := s.initLocked(); err != nil {
		st.Close()
		return err
	}

	s.streamer = st
	s.format = format
	s.resampled = beep.Resample(s.quality, format.SampleRate, s.sampleRate, st)
	s.eq = &swapStreamer{st: s.equalize(s.resampled)}

	exp, silent := gainToExponent(s.gain)
	s.volume = &effects.Volume{Streamer: s.eq, Base: 2, Volume: exp, Silent: silent}
	s.ctrl = &beep.Ctrl{Streamer: s.volume, Paused: true}

	s.playbackID++
	id := s.playbackID
	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		// The callback runs on the audio goroutine with the speaker locked.
		go s.finished(id, onEnd)
	})))

	s.logger.Debug("loaded song", "path", path, "rate", format.SampleRate, "length", format.SampleRate.D(st.Len()))
	return nil
}

func (s *Speaker) finished(id uint64, onEnd func()) {
	s.mu.Lock()
	stale := id != s.playbackID
	s.mu.Unlock()

	if stale || onEnd == nil {
		return
	}
	onEnd()
}

func (s *Speaker) unloadLocked() {
	if s.streamer == nil {
		return
	}
	s.playbackID++
	speaker.Clear()
	if err := s.streamer.Close(); err != nil {
		s.logger.Warn("failed to close stream", "error", err)
	}
	s.streamer = nil
	s.resampled = nil
	s.eq = nil
	s.volume = nil
	s.ctrl = nil
}

func (s *Speaker) setPaused(paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return shared.ErrNothingLoaded
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
	return nil
}

// Play resumes the loaded song.
func (s *Speaker) Play() error { return s.setPaused(false) }

// Pause pauses the loaded song.
func (s *Speaker) Pause() error { return s.setPaused(true) }

// Stop pauses and rewinds the loaded song.
func (s *Speaker) Stop() error {
	if err := s.setPaused(true); err != nil {
		return err
	}
	return s.Seek(0)
}

// Seek moves to d, clamped to the song length.
func (s *Speaker) Seek(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return shared.ErrNothingLoaded
	}

	speaker.Lock()
	defer speaker.Unlock()

	n := max(0, min(s.format.SampleRate.N(d), s.streamer.Len()-1))
	if err := s.streamer.Seek(n); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	return nil
}

// SetVolume sets the output gain in the 0..1 range.
func (s *Speaker) SetVolume(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gain = max(0, min(1, v))
	if s.volume == nil {
		return nil
	}

	exp, silent := gainToExponent(s.gain)
	speaker.Lock()
	s.volume.Volume = exp
	s.volume.Silent = silent
	speaker.Unlock()
	return nil
}

// SetBandGain rebuilds the equalizer stage with the new gain for hz.
func (s *Speaker) SetBandGain(hz int, db float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gains[hz] = db
	if s.eq == nil {
		return
	}

	speaker.Lock()
	s.eq.st = s.equalize(s.resampled)
	speaker.Unlock()
}

// equalize wraps st in one peaking section per non-zero band.
func (s *Speaker) equalize(st beep.Streamer) beep.Streamer {
	var sections effects.MonoEqualizerSections
	for _, hz := range Bands {
		db := s.gains[hz]
		if db == 0 {
			continue
		}
		sections = append(sections, effects.MonoEqualizerSection{
			F0: float64(hz), Bf: float64(hz) / 2, GB: db / 2, G0: 0, G: db,
		})
	}
	if len(sections) == 0 {
		return st
	}
	return effects.NewEqualizer(st, s.sampleRate, sections)
}

// Position returns the playback position of the loaded song.
func (s *Speaker) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := s.streamer.Position()
	speaker.Unlock()
	return s.format.SampleRate.D(pos)
}

// Duration returns the length of the loaded song.
func (s *Speaker) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// Close releases the stream and the audio device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unloadLocked()
	if s.initialized {
		speaker.Close()
		s.initialized = false
	}
	return nil
}

// swapStreamer lets the equalizer stage be replaced while the speaker is locked.
type swapStreamer struct {
	st beep.Streamer
}

func (w *swapStreamer) Stream(samples [][2]float64) (int, bool) { return w.st.Stream(samples) }
func (w *swapStreamer) Err() error                               { return w.st.Err() }
