package tasks

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/player"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/desertthunder/nmp/internal/store"
)

// Store reads the music folders and persists playlists and settings.
// [store.FileStore] is the production implementation.
type Store interface {
	ListAudioFiles(hint string) ([]engine.FileRef, error)
	Folders() []string
	LoadPlaylists() (engine.Memberships, error)
	WritePlaylist(name string, filenames []string) error
	DeletePlaylist(name string) error
	LoadSettings() (models.Settings, error)
	SaveSettings(settings models.Settings) error
	ResetSettings() (models.Settings, error)
}

// Recorder stores listening history. Failures are logged and never interrupt playback.
type Recorder interface {
	RecordPlay(song models.Song, source string, at time.Time) (string, error)
	RecordCompletion(id string) error
	RecordScan(scan *models.ScanRecord) error
}

// TagReader reads embedded metadata from an audio file.
type TagReader func(path string) (store.Tags, error)

// Options configures a [Session]. Store and Sink are required.
type Options struct {
	Store     Store
	Sink      player.AudioSink
	Equalizer player.EqualizerSink // defaults to Sink when it also implements EqualizerSink
	Recorder  Recorder
	Notifier  Notifier
	ReadTags  TagReader
	Logger    *log.Logger
	Now       func() time.Time
	Rand      *rand.Rand
}

// EventKind classifies a [Event].
type EventKind int

const (
	EventChange EventKind = iota
	EventError
)

// Event is published to [Session.Events] after each engine change or playback failure.
type Event struct {
	Kind   EventKind
	Change engine.Change
	Err    error
}

const eventBuffer = 64

// Session owns an [engine.Engine] and drives the audio sink, persistence and history from its changes.
//
// All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	cfg      *shared.Config
	engine   *engine.Engine
	store    Store
	sink     player.AudioSink
	eqSink   player.EqualizerSink
	eq       *player.Equalizer
	volume   *player.Volume
	recorder Recorder
	notifier Notifier
	readTags TagReader
	logger   *log.Logger
	now      func() time.Time

	settings  models.Settings
	seasons   []string
	loaded    string
	playID    string
	dirty     bool
	saveTimer *time.Timer
	events    chan Event
	closed    bool
}

// NewSession creates a session with an empty library. Call [Session.Start] to load state.
func NewSession(cfg *shared.Config, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Equalizer == nil {
		if eq, ok := opts.Sink.(player.EqualizerSink); ok {
			opts.Equalizer = eq
		}
	}

	s := &Session{
		cfg:      cfg,
		store:    opts.Store,
		sink:     opts.Sink,
		eqSink:   opts.Equalizer,
		eq:       player.NewEqualizer(),
		volume:   player.NewVolume(models.DefaultVolume),
		recorder: opts.Recorder,
		notifier: opts.Notifier,
		readTags: opts.ReadTags,
		logger:   shared.WithLogger(opts.Logger, "component", "session"),
		now:      opts.Now,
		settings: models.DefaultSettings(),
		events:   make(chan Event, eventBuffer),
	}
	s.engine = engine.New(engine.Options{Now: opts.Now, Rand: opts.Rand, Logger: opts.Logger})
	s.engine.Subscribe(s.onChange)
	return s
}

// Events returns the channel of session events. Events are dropped when the channel is full,
// and the channel is closed by [Session.Close].
func (s *Session) Events() <-chan Event { return s.events }

// Inspect runs fn with exclusive access to the engine. fn must not call back into the session.
func (s *Session) Inspect(fn func(e *engine.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Close flushes settings and releases the sink. Later calls are no-ops.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	err := s.saveLocked()
	s.closed = true
	close(s.events)

	if cerr := s.sink.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

func (s *Session) publish(ev Event) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

// step runs one navigation operation and hands the resulting cue to the sink.
func (s *Session) step(op func() (engine.Cue, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cue, err := op()
	if err != nil {
		return err
	}
	s.apply(cue)
	return nil
}

// apply drives the sink for cue. Sink failures are logged and published, never returned.
func (s *Session) apply(cue engine.Cue) {
	var err error
	switch cue.Action {
	case engine.ActionLoad:
		if err = s.load(cue.Song); err == nil && cue.Autoplay {
			err = s.start(cue.Song)
		}
	case engine.ActionRestart:
		if err = s.ensureLoaded(cue.Song); err == nil {
			err = s.sink.Seek(0)
		}
		if err == nil {
			err = s.start(cue.Song)
		}
	case engine.ActionPause:
		err = s.sink.Pause()
	case engine.ActionResume:
		if err = s.ensureLoaded(cue.Song); err == nil {
			if s.playID == "" {
				err = s.start(cue.Song)
			} else {
				err = s.sink.Play()
			}
		}
	case engine.ActionStop:
		s.playID = ""
		if s.loaded != "" {
			err = s.sink.Stop()
		}
	}

	if err != nil {
		s.logger.Warn("audio sink failed", "action", cue.Action, "song", cue.Song.Filename, "error", err)
		s.publish(Event{Kind: EventError, Err: err})
		s.notify("Playback error", cue.Song.Title+": "+err.Error())
	}
}

// load hands song to the sink at the current volume.
func (s *Session) load(song models.Song) error {
	s.playID = ""
	s.loaded = ""
	if err := s.sink.Load(song.Path, s.trackEnded); err != nil {
		return err
	}
	s.loaded = song.Path
	return s.sink.SetVolume(s.volume.Gain())
}

// ensureLoaded loads song unless the sink already holds it, as after a restore.
func (s *Session) ensureLoaded(song models.Song) error {
	if s.loaded == song.Path {
		return nil
	}
	return s.load(song)
}

// start plays the loaded song and records it.
func (s *Session) start(song models.Song) error {
	if err := s.sink.Play(); err != nil {
		return err
	}
	s.started(song)
	return nil
}

// started records a play and announces the song.
func (s *Session) started(song models.Song) {
	s.notify("Now playing", song.Title+" - "+song.Artist.String())

	if s.recorder == nil {
		return
	}
	id, err := s.recorder.RecordPlay(song, s.engine.View().String(), s.now())
	if err != nil {
		s.logger.Warn("failed to record play", "song", song.Filename, "error", err)
		return
	}
	s.playID = id
}

// trackEnded is the sink's end-of-song callback.
func (s *Session) trackEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if s.playID != "" && s.recorder != nil {
		if err := s.recorder.RecordCompletion(s.playID); err != nil {
			s.logger.Warn("failed to record completion", "error", err)
		}
	}
	s.playID = ""

	cue, err := s.engine.TrackEnded()
	if err != nil {
		s.logger.Debug("track ended with nothing to play", "error", err)
		return
	}
	s.apply(cue)
}

func (s *Session) notify(title, message string) {
	if err := s.notifier.Notify(title, message); err != nil {
		s.logger.Debug("notification failed", "error", err)
	}
}

// Play starts the song at index i of the active list.
func (s *Session) Play(i int) error {
	return s.step(func() (engine.Cue, error) { return s.engine.Play(i) })
}

// PlayFilename starts the song with filename from the active list.
func (s *Session) PlayFilename(filename string) error {
	return s.step(func() (engine.Cue, error) { return s.engine.PlayFilename(filename) })
}

// Next advances to the next song.
func (s *Session) Next() error { return s.step(s.engine.Next) }

// Previous steps back one song.
func (s *Session) Previous() error { return s.step(s.engine.Previous) }

// TogglePlayPause pauses, resumes or starts the first song.
func (s *Session) TogglePlayPause() error { return s.step(s.engine.TogglePlayPause) }

// Stop halts playback.
func (s *Session) Stop() {
	s.step(func() (engine.Cue, error) { return s.engine.Stop(), nil })
}

// Seek moves within the loaded song.
func (s *Session) Seek(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Seek(d)
}

// ToggleShuffle flips shuffle and returns the new setting.
func (s *Session) ToggleShuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ToggleShuffle()
}

// CycleRepeat advances the repeat mode.
func (s *Session) CycleRepeat() models.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CycleRepeat()
}

// SetRepeat sets the repeat mode.
func (s *Session) SetRepeat(m models.RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetRepeat(m)
}

// SetShuffle turns shuffle on or off.
func (s *Session) SetShuffle(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetShuffle(on)
}
