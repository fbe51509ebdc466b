package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/nmp/internal/shared"
)

func TestArtist(t *testing.T) {
	t.Run("ParseArtist is case-insensitive", func(t *testing.T) {
		tc := map[string]Artist{"neuro": Neuro, "EVIL": Evil, " Duet ": Duet, "unknown": Unknown}
		for in, want := range tc {
			got, ok := ParseArtist(in)
			if !ok || got != want {
				t.Errorf("ParseArtist(%q) = %v, %v; want %v", in, got, ok, want)
			}
		}
		if _, ok := ParseArtist("vedal"); ok {
			t.Error("expected unrecognized name to fail")
		}
	})

	t.Run("marshals by name", func(t *testing.T) {
		data, err := json.Marshal(Song{Title: "Life", Artist: Evil})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if !strings.Contains(string(data), `"artist":"Evil"`) {
			t.Errorf("expected artist name in %s", data)
		}
		if strings.Contains(string(data), `"date"`) {
			t.Errorf("expected zero date to be omitted in %s", data)
		}
	})
}

func TestSong(t *testing.T) {
	s := Song{Title: "Life", Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)}
	if !s.HasDate() || s.DateLabel() != "5/3/2024" {
		t.Errorf("unexpected date label %q", s.DateLabel())
	}
	if (Song{}).DateLabel() != "" {
		t.Error("expected empty label without date")
	}
}

func TestRepeatMode(t *testing.T) {
	if RepeatOff.Next() != RepeatAll || RepeatAll.Next() != RepeatOne || RepeatOne.Next() != RepeatOff {
		t.Error("repeat mode should cycle off → all → one → off")
	}
	if RepeatMode(7).Valid() != RepeatOff {
		t.Error("out-of-range repeat mode should clamp to off")
	}
	if m, ok := ParseRepeatMode("one"); !ok || m != RepeatOne {
		t.Errorf("ParseRepeatMode(one) = %v, %v", m, ok)
	}
}

func TestPlaylistNames(t *testing.T) {
	t.Run("KindOf", func(t *testing.T) {
		tc := map[string]PlaylistKind{
			Favorites:      ReservedPlaylist,
			Blocked:        ReservedPlaylist,
			WinterMusic:    SeasonalPlaylist,
			ChristmasMusic: SeasonalPlaylist,
			"road trip":    CustomPlaylist,
		}
		for name, want := range tc {
			if got := KindOf(name); got != want {
				t.Errorf("KindOf(%q) = %v, want %v", name, got, want)
			}
		}
	})

	t.Run("ValidatePlaylistName", func(t *testing.T) {
		if got, err := ValidatePlaylistName("  road trip "); err != nil || got != "road trip" {
			t.Errorf("expected trimmed name, got %q, %v", got, err)
		}
		for _, bad := range []string{"", "   ", "..", "a/b", `a\b`, strings.Repeat("x", 101)} {
			if _, err := ValidatePlaylistName(bad); !errors.Is(err, shared.ErrInvalidPlaylistName) {
				t.Errorf("ValidatePlaylistName(%q) = %v, want ErrInvalidPlaylistName", bad, err)
			}
		}
	})
}

func TestViewFromSettings(t *testing.T) {
	str := func(s string) *string { return &s }

	tc := []struct {
		name string
		vs   *ViewSettings
		last string
		want View
	}{
		{name: "playlist wins", vs: &ViewSettings{Playlist: str("road trip")}, want: PlaylistView("road trip")},
		{name: "section", vs: &ViewSettings{Section: str("favorites")}, want: SectionView(SectionFavorites)},
		{name: "unknown section falls back", vs: &ViewSettings{Section: str("charts")}, last: "blocked", want: SectionView(SectionBlocked)},
		{name: "last playlist name", last: "winter_music", want: PlaylistView(WinterMusic)},
		{name: "nothing saved", want: SectionView(SectionLibrary)},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ViewFromSettings(tt.vs, tt.last); got != tt.want {
				t.Errorf("ViewFromSettings() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("round trip", func(t *testing.T) {
		v := PlaylistView("gym")
		if got := ViewFromSettings(v.Settings(), ""); got != v {
			t.Errorf("round trip = %v, want %v", got, v)
		}
	})
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for _, key := range []string{`"holidayMode":false`, `"volume":70`, `"repeatMode":0`, `"lastPlaylist":"library"`, `"currentSong":null`, `"preset":"flat"`, `"enabled":true`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}

	if got := s.Artists(); len(got) != 3 {
		t.Errorf("expected all artists selected, got %v", got)
	}
	if ClampVolume(140) != 100 || ClampVolume(-3) != 0 {
		t.Error("ClampVolume should clamp to 0-100")
	}
}

func TestHistoryModels(t *testing.T) {
	now := time.Now()
	ev := NewPlayEvent(Song{Filename: "a.mp3", Title: "A", Artist: Neuro}, "library", now)
	if err := ev.Validate(); err != nil {
		t.Errorf("expected valid event: %v", err)
	}
	if err := (&PlayEvent{}).Validate(); err == nil {
		t.Error("expected empty event to be invalid")
	}

	scan := NewScanRecord(now, now.Add(time.Second), 10, 1, "manual")
	if err := scan.Validate(); err != nil || scan.Duration() != time.Second {
		t.Errorf("unexpected scan record: %v, %v", err, scan.Duration())
	}
	if err := NewScanRecord(now, now.Add(-time.Second), 0, 0, "manual").Validate(); err == nil {
		t.Error("expected finished-before-started to be invalid")
	}
}
