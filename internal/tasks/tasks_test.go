package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/mocks"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/player"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/desertthunder/nmp/internal/store"
	th "github.com/desertthunder/nmp/internal/testing"
	"github.com/golang/mock/gomock"
)

type fakeRecorder struct {
	plays     []models.Song
	sources   []string
	completed []string
	scans     []*models.ScanRecord
	failPlays bool
}

func (r *fakeRecorder) RecordPlay(song models.Song, source string, at time.Time) (string, error) {
	if r.failPlays {
		return "", errors.New("database is locked")
	}
	r.plays = append(r.plays, song)
	r.sources = append(r.sources, source)
	return fmt.Sprintf("play-%d", len(r.plays)), nil
}

func (r *fakeRecorder) RecordCompletion(id string) error {
	r.completed = append(r.completed, id)
	return nil
}

func (r *fakeRecorder) RecordScan(scan *models.ScanRecord) error {
	r.scans = append(r.scans, scan)
	return nil
}

type fakeNotifier struct {
	titles []string
}

func (n *fakeNotifier) Notify(title, message string) error {
	n.titles = append(n.titles, title)
	return nil
}

type fixture struct {
	session  *Session
	cfg      *shared.Config
	store    *store.FileStore
	recorder *fakeRecorder
	notifier *fakeNotifier
	now      *time.Time
}

// newFixture writes four songs (Alpha and Echo by Neuro, Bravo by Evil, Charlie as a duet)
// and builds a session over them. Settings saves happen immediately.
func newFixture(t *testing.T, sink player.AudioSink) *fixture {
	t.Helper()

	cfg := th.NewTestConfig(t)
	cfg.Timers.SaveDebounce.Duration = 0
	th.WriteSongs(t, cfg, "neuro", "Alpha.mp3", "Echo.mp3")
	th.WriteSongs(t, cfg, "evil", "Bravo.mp3")
	th.WriteSongs(t, cfg, "duet", "Charlie.mp3")

	logger := shared.NewLogger(io.Discard)
	now := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	f := &fixture{
		cfg:      cfg,
		store:    store.NewFileStore(cfg, logger),
		recorder: &fakeRecorder{},
		notifier: &fakeNotifier{},
		now:      &now,
	}
	f.session = NewSession(cfg, Options{
		Store:     f.store,
		Sink:      sink,
		Equalizer: player.NewSilent(),
		Recorder:  f.recorder,
		Notifier:  f.notifier,
		Logger:    logger,
		Now:       func() time.Time { return *f.now },
		Rand:      rand.New(rand.NewPCG(7, 7)),
	})
	return f
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	if err := f.session.Start(context.Background(), nil); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
}

func (f *fixture) songPath(hint, name string) string {
	return filepath.Join(f.cfg.Library.FolderPath(hint), name)
}

func drainErrors(s *Session) []error {
	var errs []error
	for {
		select {
		case ev := <-s.Events():
			if ev.Kind == EventError {
				errs = append(errs, ev.Err)
			}
		default:
			return errs
		}
	}
}

func TestSessionStart(t *testing.T) {
	t.Run("fresh install", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		f.start(t)

		st := f.session.Status()
		if st.Count != 4 || st.View != "library" || st.Volume != models.DefaultVolume {
			t.Errorf("unexpected status %+v", st)
		}
		if st.Title != "Your Music Library" || st.Message != "4 songs available" {
			t.Errorf("unexpected header %q / %q", st.Title, st.Message)
		}
		if len(f.recorder.scans) != 1 || f.recorder.scans[0].Reason != ReasonStartup || f.recorder.scans[0].Songs != 4 {
			t.Errorf("expected one startup scan, got %+v", f.recorder.scans)
		}
	})

	t.Run("restores saved state", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		if err := f.store.WritePlaylist("mix", []string{"Echo.mp3", "Bravo.mp3", "Alpha.mp3"}); err != nil {
			t.Fatalf("WritePlaylist failed: %v", err)
		}

		settings := models.DefaultSettings()
		settings.Volume = 35
		settings.Playback.RepeatMode = models.RepeatAll
		settings.Playback.LastPlaylist = "mix"
		settings.Playback.CurrentSong = &models.SongRef{Filename: "Bravo.mp3"}
		settings.Equalizer.Preset = "rock"
		if err := f.store.SaveSettings(settings); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}

		f.start(t)

		st := f.session.Status()
		if st.View != "playlist:mix" || st.Index != 1 || st.Current == nil || st.Current.Title != "Bravo" {
			t.Errorf("expected Bravo restored in mix, got %+v", st)
		}
		if st.Repeat != "all" || st.Volume != 35 || st.State != models.Stopped.String() {
			t.Errorf("unexpected transport %+v", st)
		}
	})

	t.Run("corrupt settings fall back to defaults", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		if err := os.WriteFile(f.cfg.Storage.SettingsPath, []byte("{not json"), 0644); err != nil {
			t.Fatalf("Failed to write settings: %v", err)
		}

		f.start(t)

		if st := f.session.Status(); st.Volume != models.DefaultVolume {
			t.Errorf("expected default volume, got %d", st.Volume)
		}
		if !slices.Contains(f.notifier.titles, "Settings reset") {
			t.Errorf("expected a settings notification, got %v", f.notifier.titles)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := f.session.Start(ctx, nil); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestSessionPlayback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockAudioSink(ctrl)
	sink.EXPECT().SetVolume(gomock.Any()).Return(nil).AnyTimes()
	sink.EXPECT().Position().Return(time.Duration(0)).AnyTimes()
	sink.EXPECT().Duration().Return(time.Duration(0)).AnyTimes()

	f := newFixture(t, sink)
	f.start(t)

	var onEnd func()
	capture := func(path string, fn func()) error {
		onEnd = fn
		return nil
	}

	t.Run("play loads and records", func(t *testing.T) {
		gomock.InOrder(
			sink.EXPECT().Load(f.songPath("neuro", "Alpha.mp3"), gomock.Any()).DoAndReturn(capture),
			sink.EXPECT().Play().Return(nil),
		)

		if err := f.session.Play(0); err != nil {
			t.Fatalf("Play failed: %v", err)
		}
		if len(f.recorder.plays) != 1 || f.recorder.plays[0].Title != "Alpha" || f.recorder.sources[0] != "library" {
			t.Errorf("expected Alpha recorded from library, got %+v", f.recorder.plays)
		}
	})

	t.Run("end of song advances", func(t *testing.T) {
		gomock.InOrder(
			sink.EXPECT().Load(f.songPath("evil", "Bravo.mp3"), gomock.Any()).DoAndReturn(capture),
			sink.EXPECT().Play().Return(nil),
		)

		onEnd()

		if !slices.Equal(f.recorder.completed, []string{"play-1"}) {
			t.Errorf("expected first play completed, got %v", f.recorder.completed)
		}
		if st := f.session.Status(); st.Current == nil || st.Current.Title != "Bravo" || st.Index != 1 {
			t.Errorf("expected Bravo at index 1, got %+v", st)
		}
	})

	t.Run("pause and resume", func(t *testing.T) {
		gomock.InOrder(
			sink.EXPECT().Pause().Return(nil),
			sink.EXPECT().Play().Return(nil),
		)

		if err := f.session.TogglePlayPause(); err != nil {
			t.Fatalf("pause failed: %v", err)
		}
		if err := f.session.TogglePlayPause(); err != nil {
			t.Fatalf("resume failed: %v", err)
		}
		if len(f.recorder.plays) != 2 {
			t.Errorf("resuming should not record a new play, got %d", len(f.recorder.plays))
		}
	})

	t.Run("repeat one restarts", func(t *testing.T) {
		f.session.SetRepeat(models.RepeatOne)
		gomock.InOrder(
			sink.EXPECT().Seek(time.Duration(0)).Return(nil),
			sink.EXPECT().Play().Return(nil),
		)

		onEnd()

		if st := f.session.Status(); st.Current.Title != "Bravo" {
			t.Errorf("expected Bravo again, got %s", st.Current.Title)
		}
		if len(f.recorder.plays) != 3 {
			t.Errorf("restart should record a play, got %d", len(f.recorder.plays))
		}
		f.session.SetRepeat(models.RepeatOff)
	})

	t.Run("load failure is reported", func(t *testing.T) {
		drainErrors(f.session)
		sink.EXPECT().Load(f.songPath("duet", "Charlie.mp3"), gomock.Any()).Return(shared.ErrUnsupportedAudio)

		if err := f.session.Next(); err != nil {
			t.Fatalf("sink failures should not be returned, got %v", err)
		}
		if errs := drainErrors(f.session); len(errs) != 1 || !errors.Is(errs[0], shared.ErrUnsupportedAudio) {
			t.Errorf("expected one published error, got %v", errs)
		}
		if !slices.Contains(f.notifier.titles, "Playback error") {
			t.Error("expected a playback error notification")
		}
	})

	t.Run("stop", func(t *testing.T) {
		gomock.InOrder(
			sink.EXPECT().Load(f.songPath("neuro", "Echo.mp3"), gomock.Any()).DoAndReturn(capture),
			sink.EXPECT().Play().Return(nil),
			sink.EXPECT().Stop().Return(nil),
		)

		if err := f.session.PlayFilename("Echo.mp3"); err != nil {
			t.Fatalf("PlayFilename failed: %v", err)
		}
		f.session.Stop()

		if st := f.session.Status(); st.State != models.Stopped.String() {
			t.Errorf("expected stopped, got %s", st.State)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		f.session.SetArtists(engine.NewArtistSet())
		if err := f.session.Next(); !errors.Is(err, shared.ErrEmptyPlaylist) {
			t.Errorf("expected ErrEmptyPlaylist, got %v", err)
		}
		f.session.SetArtists(engine.AllArtists())
	})

	t.Run("close", func(t *testing.T) {
		sink.EXPECT().Close().Return(nil)

		if err := f.session.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := f.session.Close(); err != nil {
			t.Errorf("second Close should be a no-op, got %v", err)
		}
		for range f.session.Events() {
		}
	})
}

func TestSessionResumeAfterRestore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockAudioSink(ctrl)
	sink.EXPECT().SetVolume(gomock.Any()).Return(nil).AnyTimes()

	f := newFixture(t, sink)
	settings := models.DefaultSettings()
	settings.Playback.CurrentSong = &models.SongRef{Filename: "Charlie.mp3"}
	f.store.SaveSettings(settings)
	f.start(t)

	gomock.InOrder(
		sink.EXPECT().Load(f.songPath("duet", "Charlie.mp3"), gomock.Any()).Return(nil),
		sink.EXPECT().Play().Return(nil),
	)

	if err := f.session.TogglePlayPause(); err != nil {
		t.Fatalf("TogglePlayPause failed: %v", err)
	}
	if len(f.recorder.plays) != 1 || f.recorder.plays[0].Title != "Charlie" {
		t.Errorf("expected restored song played, got %+v", f.recorder.plays)
	}
}

func TestSessionPersistence(t *testing.T) {
	t.Run("playlist changes write files", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		f.start(t)

		if on, err := f.session.ToggleFavorite("Charlie.mp3"); err != nil || !on {
			t.Fatalf("ToggleFavorite = %v, %v", on, err)
		}
		got, err := f.store.ReadPlaylist(models.Favorites)
		if err != nil || !slices.Equal(got, []string{"Charlie.mp3"}) {
			t.Errorf("expected favorites file, got %v (%v)", got, err)
		}

		name, err := f.session.CreatePlaylist("road trip")
		if err != nil {
			t.Fatalf("CreatePlaylist failed: %v", err)
		}
		th.AssertFileExists(t, filepath.Join(f.cfg.Storage.PlaylistsDir, name+".txt"))

		if _, err := f.session.AddToPlaylist(name, "Echo.mp3"); err != nil {
			t.Fatalf("AddToPlaylist failed: %v", err)
		}
		if got, _ := f.store.ReadPlaylist(name); !slices.Equal(got, []string{"Echo.mp3"}) {
			t.Errorf("expected road trip file, got %v", got)
		}

		if err := f.session.DeletePlaylist(name); err != nil {
			t.Fatalf("DeletePlaylist failed: %v", err)
		}
		th.AssertFileMissing(t, filepath.Join(f.cfg.Storage.PlaylistsDir, name+".txt"))

		if _, err := f.session.CreatePlaylist("favorites"); !errors.Is(err, shared.ErrPlaylistExists) && !errors.Is(err, shared.ErrReservedPlaylist) {
			t.Errorf("expected reserved name rejected, got %v", err)
		}
	})

	t.Run("winter_music file keeps only its own members", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		if err := f.store.WritePlaylist(models.WinterMusic, []string{"Alpha.mp3"}); err != nil {
			t.Fatalf("WritePlaylist failed: %v", err)
		}
		if err := f.store.WritePlaylist(models.ChristmasMusic, []string{"Bravo.mp3"}); err != nil {
			t.Fatalf("WritePlaylist failed: %v", err)
		}
		f.start(t)

		if _, err := f.session.AddToPlaylist(models.WinterMusic, "Echo.mp3"); err != nil {
			t.Fatalf("AddToPlaylist failed: %v", err)
		}
		got, _ := f.store.ReadPlaylist(models.WinterMusic)
		if !slices.Equal(got, []string{"Alpha.mp3", "Echo.mp3"}) {
			t.Errorf("expected winter file without christmas members, got %v", got)
		}

		var shown []string
		f.session.Inspect(func(e *engine.Engine) {
			for _, song := range e.PlaylistSongs(models.WinterMusic) {
				shown = append(shown, song.Filename)
			}
		})
		if !slices.Equal(shown, []string{"Alpha.mp3", "Echo.mp3", "Bravo.mp3"}) {
			t.Errorf("expected the winter view to include christmas songs, got %v", shown)
		}

		if _, err := f.session.RemoveFromPlaylist(models.WinterMusic, "Bravo.mp3"); !errors.Is(err, shared.ErrLinkedMember) {
			t.Errorf("expected ErrLinkedMember, got %v", err)
		}
		if _, err := f.session.RemoveFromPlaylist(models.ChristmasMusic, "Bravo.mp3"); err != nil {
			t.Fatalf("RemoveFromPlaylist failed: %v", err)
		}
		f.session.Inspect(func(e *engine.Engine) {
			if n := len(e.PlaylistSongs(models.WinterMusic)); n != 2 {
				t.Errorf("expected Bravo to leave the winter view, got %d songs", n)
			}
		})
	})

	t.Run("settings changes are saved", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		f.start(t)

		f.session.SetHolidayMode(true)
		f.session.ToggleArtist(models.Evil)
		f.session.SetVolume(40)
		f.session.ToggleMute()
		if err := f.session.ApplyPreset("jazz"); err != nil {
			t.Fatalf("ApplyPreset failed: %v", err)
		}

		saved, err := f.store.LoadSettings()
		if err != nil {
			t.Fatalf("LoadSettings failed: %v", err)
		}
		if !saved.HolidayMode || slices.Contains(saved.SelectedArtists, "Evil") {
			t.Errorf("filters not saved: %+v", saved)
		}
		if saved.Volume != 40 {
			t.Errorf("expected pre-mute volume saved, got %d", saved.Volume)
		}
		if st := f.session.Status(); st.Volume != saved.Volume || !st.Muted {
			t.Errorf("expected status to report the saved level while muted, got %d %v", st.Volume, st.Muted)
		}
		if saved.Equalizer.Preset != "jazz" {
			t.Errorf("expected jazz preset saved, got %s", saved.Equalizer.Preset)
		}
	})

	t.Run("debounced save", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		f.cfg.Timers.SaveDebounce.Duration = 200 * time.Millisecond
		f.start(t)

		f.session.ToggleShuffle()
		th.AssertFileMissing(t, f.cfg.Storage.SettingsPath)

		deadline := time.Now().Add(2 * time.Second)
		for {
			saved, _ := f.store.LoadSettings()
			if saved.Playback.Shuffled {
				break
			}
			if time.Now().After(deadline) {
				t.Fatal("settings were not saved after the debounce interval")
			}
			time.Sleep(10 * time.Millisecond)
		}
	})

	t.Run("reset", func(t *testing.T) {
		f := newFixture(t, player.NewSilent())
		f.start(t)

		f.session.SetVolume(10)
		f.session.SetHolidayMode(true)

		settings, err := f.session.ResetSettings()
		if err != nil {
			t.Fatalf("ResetSettings failed: %v", err)
		}
		if settings.Volume != models.DefaultVolume || settings.HolidayMode {
			t.Errorf("expected defaults, got %+v", settings)
		}
		if st := f.session.Status(); st.Volume != models.DefaultVolume || st.Holiday {
			t.Errorf("session not reset: %+v", st)
		}
	})
}

func TestSessionEqualizer(t *testing.T) {
	eq := player.NewSilent()
	f := newFixture(t, player.NewSilent())
	f.session.eqSink = eq
	f.start(t)

	if err := f.session.ApplyPreset("bass-booster"); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}
	if eq.BandGain(60) != 5 {
		t.Errorf("expected preset pushed to sink, got %v", eq.BandGain(60))
	}

	if err := f.session.SetBand(60, -4); err != nil {
		t.Fatalf("SetBand failed: %v", err)
	}
	if got := f.session.Equalizer(); got.Preset != player.CustomPreset {
		t.Errorf("expected custom preset, got %s", got.Preset)
	}

	f.session.SetEqualizerEnabled(false)
	if eq.BandGain(60) != 0 {
		t.Error("disabled equalizer should push flat gains")
	}

	if err := f.session.SetBand(61, 1); !errors.Is(err, shared.ErrUnknownBand) {
		t.Errorf("expected ErrUnknownBand, got %v", err)
	}
}

func TestSessionCheckSeasons(t *testing.T) {
	f := newFixture(t, player.NewSilent())
	*f.now = time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)
	f.store.WritePlaylist(models.WinterMusic, []string{"Alpha.mp3"})
	f.start(t)
	f.session.SetHolidayMode(true)

	if f.session.CheckSeasons() {
		t.Error("season should not change within February")
	}

	*f.now = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !f.session.CheckSeasons() {
		t.Fatal("expected winter to end")
	}
	if st := f.session.Status(); st.Count != 3 {
		t.Errorf("expected winter song hidden, got %d songs", st.Count)
	}
	if !slices.Contains(f.notifier.titles, "Seasonal playlists updated") {
		t.Errorf("expected season notification, got %v", f.notifier.titles)
	}
}

func TestSessionRecorderFailure(t *testing.T) {
	f := newFixture(t, player.NewSilent())
	f.recorder.failPlays = true
	f.start(t)

	if err := f.session.Play(0); err != nil {
		t.Fatalf("recorder failures should not stop playback, got %v", err)
	}
	if path, playing := f.session.sink.(*player.Silent).Loaded(); !playing || filepath.Base(path) != "Alpha.mp3" {
		t.Errorf("expected Alpha playing, got %s %v", path, playing)
	}
}

func TestNewNotifier(t *testing.T) {
	if _, ok := NewNotifier(shared.NotificationsConfig{Enabled: false}).(nopNotifier); !ok {
		t.Error("disabled notifications should use the no-op notifier")
	}
	if _, ok := NewNotifier(shared.NotificationsConfig{Enabled: true}).(*DesktopNotifier); !ok {
		t.Error("enabled notifications should use the desktop notifier")
	}
}
