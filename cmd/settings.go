package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/nmp/internal/engine"
	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/player"
	"github.com/desertthunder/nmp/internal/shared"
	"github.com/desertthunder/nmp/internal/tasks"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

// SettingsShow prints the settings as they are saved.
func (r *Runner) SettingsShow(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(ctx, func(session *tasks.Session) error {
		settings := session.Settings()
		if cmd.Bool("json") {
			return r.writeJSON(settings, cmd.Bool("pretty"))
		}

		song := ""
		if ref := settings.Playback.CurrentSong; ref != nil {
			song = fmt.Sprintf("%s - %s", ref.Artist, ref.Title)
		}
		view := session.Status().View

		t := r.newTable("Setting", "Value")
		t.AppendRows([]table.Row{
			{"Holiday mode", onOff(settings.HolidayMode)},
			{"Artists", strings.Join(settings.SelectedArtists, ", ")},
			{"Volume", settings.Volume},
			{"Repeat", settings.Playback.RepeatMode.Valid().String()},
			{"Shuffle", onOff(settings.Playback.Shuffled)},
			{"View", view},
			{"Last song", song},
			{"Equalizer", fmt.Sprintf("%s (%s)", settings.Equalizer.Preset, onOff(settings.Equalizer.Enabled))},
		})
		t.Render()
		return nil
	})
}

// SettingsReset deletes the settings document and restores defaults.
func (r *Runner) SettingsReset(ctx context.Context, cmd *cli.Command) error {
	return r.withSession(ctx, func(session *tasks.Session) error {
		if _, err := session.ResetSettings(); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		return r.writePlain("✓ Settings reset to defaults\n")
	})
}

// SettingsHoliday turns holiday mode on or off.
func (r *Runner) SettingsHoliday(ctx context.Context, cmd *cli.Command) error {
	on, err := parseOnOff(cmd.StringArg("state"))
	if err != nil {
		return err
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		session.SetHolidayMode(on)
		st := session.Status()
		r.writePlain("✓ Holiday mode %s\n", onOff(on))
		return r.writePlain("%s\n", st.Seasonal)
	})
}

// SettingsArtists selects the shown artists. "all" selects every artist and no arguments
// prints the current selection.
func (r *Runner) SettingsArtists(ctx context.Context, cmd *cli.Command) error {
	set, err := parseArtists(cmd.Args().Slice())
	if err != nil {
		return err
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		if set != nil {
			session.SetArtists(*set)
		}

		st := session.Status()
		selected := "none"
		if len(st.Artists) > 0 {
			selected = strings.Join(st.Artists, ", ")
		}
		r.writePlain("Artists: %s\n", selected)
		return r.writePlain("%s (%d songs)\n", st.Title, st.Count)
	})
}

// parseArtists returns nil when args is empty.
func parseArtists(args []string) (*engine.ArtistSet, error) {
	if len(args) == 0 {
		return nil, nil
	}

	set := engine.NewArtistSet()
	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "all":
			set = engine.AllArtists()
			continue
		case "none":
			continue
		}

		artist, ok := models.ParseArtist(arg)
		if !ok || artist == models.Unknown {
			return nil, fmt.Errorf("%w: unknown artist %q", shared.ErrInvalidArgument, arg)
		}
		set = set.With(artist)
	}
	return &set, nil
}

// SettingsRepeat sets the repeat mode, or cycles it when no mode is given.
func (r *Runner) SettingsRepeat(ctx context.Context, cmd *cli.Command) error {
	arg := strings.ToLower(cmd.StringArg("mode"))
	mode, ok := models.ParseRepeatMode(arg)
	if arg != "" && !ok {
		return fmt.Errorf("%w: repeat mode must be off, all or one", shared.ErrInvalidArgument)
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		if arg == "" {
			mode = session.CycleRepeat()
		} else {
			session.SetRepeat(mode)
		}
		return r.writePlain("✓ Repeat %s\n", mode)
	})
}

// SettingsShuffle turns shuffle on or off, or toggles it when no state is given.
func (r *Runner) SettingsShuffle(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("state")

	var on bool
	if arg != "" {
		var err error
		if on, err = parseOnOff(arg); err != nil {
			return err
		}
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		if arg == "" {
			on = session.ToggleShuffle()
		} else {
			session.SetShuffle(on)
		}
		return r.writePlain("✓ Shuffle %s\n", onOff(on))
	})
}

// SettingsVolume sets the volume, clamped to 0-100. --mute toggles mute.
func (r *Runner) SettingsVolume(ctx context.Context, cmd *cli.Command) error {
	level := -1
	if arg := cmd.StringArg("level"); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: volume %q is not a number", shared.ErrInvalidArgument, arg)
		}
		level = n
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		if level >= 0 {
			session.SetVolume(level)
		}
		if cmd.Bool("mute") {
			session.ToggleMute()
		}

		st := session.Status()
		if st.Muted {
			return r.writePlain("Volume: %d (muted)\n", st.Volume)
		}
		return r.writePlain("Volume: %d\n", st.Volume)
	})
}

// SettingsEqualizer applies the equalizer flags in order: reset, preset, bands, enable/disable.
func (r *Runner) SettingsEqualizer(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("presets") {
		for _, name := range player.PresetNames() {
			r.writePlain("%s\n", name)
		}
		return nil
	}
	if cmd.Bool("enable") && cmd.Bool("disable") {
		return fmt.Errorf("%w: cannot specify both --enable and --disable", shared.ErrInvalidFlag)
	}

	bands := make(map[int]float64)
	for _, value := range cmd.StringSlice("band") {
		hz, db, err := parseBand(value)
		if err != nil {
			return err
		}
		if !slices.Contains(player.Bands, hz) {
			return fmt.Errorf("%w: %d Hz", shared.ErrUnknownBand, hz)
		}
		bands[hz] = db
	}

	return r.withSession(ctx, func(session *tasks.Session) error {
		if cmd.Bool("reset") {
			session.ResetEqualizer()
		}
		if preset := cmd.String("preset"); preset != "" {
			if err := session.ApplyPreset(preset); err != nil {
				return err
			}
		}
		for _, hz := range player.Bands {
			if db, ok := bands[hz]; ok {
				if err := session.SetBand(hz, db); err != nil {
					return err
				}
			}
		}
		switch {
		case cmd.Bool("enable"):
			session.SetEqualizerEnabled(true)
		case cmd.Bool("disable"):
			session.SetEqualizerEnabled(false)
		}

		eq := session.Equalizer()
		r.writePlain("Equalizer: %s (%s)\n", eq.Preset, onOff(eq.Enabled))

		t := r.newTable("Band", "Gain (dB)")
		for _, hz := range player.Bands {
			t.AppendRow(table.Row{fmt.Sprintf("%d Hz", hz), fmt.Sprintf("%+.1f", eq.Bands[strconv.Itoa(hz)])})
		}
		t.Render()
		return nil
	})
}

// parseBand parses "HZ=DB", e.g. "60=4.5".
func parseBand(value string) (int, float64, error) {
	hzText, dbText, ok := strings.Cut(value, "=")
	if !ok {
		return 0, 0, fmt.Errorf("%w: band %q must be HZ=DB", shared.ErrInvalidFlag, value)
	}
	hz, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.ToLower(hzText), "hz")))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: band frequency %q", shared.ErrInvalidFlag, hzText)
	}
	db, err := strconv.ParseFloat(strings.TrimSpace(dbText), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: band gain %q", shared.ErrInvalidFlag, dbText)
	}
	return hz, db, nil
}
