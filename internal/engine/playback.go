package engine

import (
	"fmt"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
)

type playback struct {
	index    int
	shuffled bool
	repeat   models.RepeatMode
	state    models.TransportState
	current  *models.Song
}

// Action tells the audio sink what to do with a [Cue].
type Action int

const (
	ActionNone Action = iota
	ActionLoad
	ActionRestart
	ActionPause
	ActionResume
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionLoad:
		return "load"
	case ActionRestart:
		return "restart"
	case ActionPause:
		return "pause"
	case ActionResume:
		return "resume"
	case ActionStop:
		return "stop"
	default:
		return "none"
	}
}

// Cue is the result of a navigation step, handed to the audio sink by the controller.
type Cue struct {
	Action   Action
	Song     models.Song
	Autoplay bool // for ActionLoad: start playback once loaded
}

// Index returns the position in the active list.
func (e *Engine) Index() int { return e.pb.index }

// State returns the transport state.
func (e *Engine) State() models.TransportState { return e.pb.state }

// Repeat returns the repeat mode.
func (e *Engine) Repeat() models.RepeatMode { return e.pb.repeat }

// Shuffled reports whether the active list is the shuffled copy.
func (e *Engine) Shuffled() bool { return e.pb.shuffled }

// Current returns the loaded song, if any.
func (e *Engine) Current() (models.Song, bool) {
	if e.pb.current == nil {
		return models.Song{}, false
	}
	return *e.pb.current, true
}

func (e *Engine) load(i int, autoplay bool) Cue {
	song := e.active()[i]
	e.pb.index = i
	e.pb.current = &song
	e.emit(Change{Kind: ChangePlayback})
	return Cue{Action: ActionLoad, Song: song, Autoplay: autoplay}
}

// Play starts the song at index i of the active list. Out-of-range indices are rejected without side effects.
func (e *Engine) Play(i int) (Cue, error) {
	if n := len(e.active()); i < 0 || i >= n {
		return Cue{}, fmt.Errorf("%w: %d not in [0,%d)", shared.ErrIndexOutOfRange, i, n)
	}
	e.pb.state = models.Playing
	return e.load(i, true), nil
}

// PlayFilename starts the song with filename from the active list.
func (e *Engine) PlayFilename(filename string) (Cue, error) {
	for i, s := range e.active() {
		if s.Filename == filename {
			return e.Play(i)
		}
	}
	e.logger.Debug("song not in active list", "filename", filename)
	return Cue{}, fmt.Errorf("%w: %s", shared.ErrSongNotFound, filename)
}

// Next advances one song, always wrapping to the start.
func (e *Engine) Next() (Cue, error) {
	n := len(e.active())
	if n == 0 {
		return Cue{}, shared.ErrEmptyPlaylist
	}
	return e.load((e.pb.index+1)%n, e.pb.state == models.Playing), nil
}

// Previous steps back one song. Below zero it wraps only with repeat all, otherwise it stays at 0.
func (e *Engine) Previous() (Cue, error) {
	n := len(e.active())
	if n == 0 {
		return Cue{}, shared.ErrEmptyPlaylist
	}

	i := e.pb.index - 1
	switch {
	case i < 0 && e.pb.repeat == models.RepeatAll:
		i = n - 1
	case i < 0:
		i = 0
	case i >= n:
		i = n - 1
	}
	return e.load(i, e.pb.state == models.Playing), nil
}

// TrackEnded handles the end of the loaded song: repeat one restarts it, anything else advances.
func (e *Engine) TrackEnded() (Cue, error) {
	if e.pb.current == nil {
		return Cue{}, shared.ErrNothingLoaded
	}

	e.pb.state = models.Playing
	if e.pb.repeat == models.RepeatOne {
		e.emit(Change{Kind: ChangePlayback})
		return Cue{Action: ActionRestart, Song: *e.pb.current, Autoplay: true}, nil
	}
	return e.Next()
}

// TogglePlayPause pauses or resumes; with nothing loaded it plays the first song.
func (e *Engine) TogglePlayPause() (Cue, error) {
	if e.pb.current == nil {
		if len(e.active()) == 0 {
			return Cue{}, shared.ErrEmptyPlaylist
		}
		return e.Play(0)
	}

	cue := Cue{Song: *e.pb.current}
	if e.pb.state == models.Playing {
		e.pb.state = models.Paused
		cue.Action = ActionPause
	} else {
		e.pb.state = models.Playing
		cue.Action = ActionResume
	}
	e.emit(Change{Kind: ChangePlayback})
	return cue, nil
}

// Stop halts playback and rewinds the loaded song.
func (e *Engine) Stop() Cue {
	if e.pb.current == nil {
		return Cue{}
	}
	e.pb.state = models.Stopped
	e.emit(Change{Kind: ChangePlayback})
	return Cue{Action: ActionStop, Song: *e.pb.current}
}

// ToggleShuffle flips shuffle and returns the new setting.
func (e *Engine) ToggleShuffle() bool {
	e.SetShuffle(!e.pb.shuffled)
	return e.pb.shuffled
}

// SetShuffle turns shuffle on (reshuffling the view list) or off (returning to view order).
// The index follows the current song; with shuffle off it falls back to 0 when the song is gone.
func (e *Engine) SetShuffle(on bool) {
	if e.pb.shuffled == on {
		return
	}
	e.pb.shuffled = on

	if on {
		var idx int
		e.shuffled, idx = Shuffle(e.viewList, e.pb.current, e.rng)
		if idx >= 0 {
			e.pb.index = idx
		}
		e.clampIndex()
	} else {
		e.shuffled = nil
		e.pb.index = 0
		if e.pb.current != nil {
			if i := indexOfPath(e.viewList, e.pb.current.Path); i >= 0 {
				e.pb.index = i
			}
		}
	}
	e.emit(Change{Kind: ChangePlayback})
}

// CycleRepeat advances off → all → one → off.
func (e *Engine) CycleRepeat() models.RepeatMode {
	e.SetRepeat(e.pb.repeat.Next())
	return e.pb.repeat
}

// SetRepeat sets the repeat mode.
func (e *Engine) SetRepeat(m models.RepeatMode) {
	m = m.Valid()
	if e.pb.repeat == m {
		return
	}
	e.pb.repeat = m
	e.emit(Change{Kind: ChangePlayback})
}
