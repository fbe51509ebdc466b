package player

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
)

// Bands are the equalizer center frequencies in Hz.
var Bands = []int{60, 170, 310, 600, 1000, 3000, 6000, 12000, 14000, 16000}

// CustomPreset names a band layout edited by hand.
const CustomPreset = "custom"

// FlatPreset is the default preset.
const FlatPreset = "flat"

// Presets maps preset names to one gain per band, in dB.
var Presets = map[string][]float64{
	"flat":           {0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"acoustic":       {4, 4, 2, 0, 2, 2, 4, 3, 3, 4},
	"bass-booster":   {5, 4, 3, 2, 0, -1, -2, -2, -2, -2},
	"bass-reducer":   {-5, -4, -3, -2, 0, 1, 2, 2, 2, 2},
	"classical":      {4, 3, 2, 2, -2, -2, 0, 2, 3, 4},
	"dance":          {4, 6, 2, 0, 0, -2, -2, 0, 2, 4},
	"deep":           {5, 3, 1, 1, 3, 1, -2, -4, -5, -6},
	"electronic":     {3, 3, 0, -2, -1, 1, 0, 1, 3, 4},
	"hip-hop":        {5, 4, 1, 3, -1, -1, 1, -1, 2, 3},
	"jazz":           {3, 2, 1, 2, -2, -2, 0, 1, 2, 3},
	"latin":          {4, 3, 0, 0, -2, -2, -2, 0, 3, 4},
	"loudness":       {6, 4, 0, 0, -2, 0, -1, -5, 5, 1},
	"lounge":         {-3, -1, -1, 1, 4, 2, 0, -2, 1, 1},
	"piano":          {2, 1, 0, 2, 3, 1, 4, 5, 3, 3},
	"pop":            {-1, -1, 0, 2, 4, 4, 2, 0, -1, -2},
	"rnb":            {2, 6, 5, 1, -2, -1, 2, 2, 3, 3},
	"rock":           {4, 3, 2, 1, -1, -1, 0, 2, 3, 4},
	"small-speakers": {4, 3, 3, 2, 1, 0, -1, -2, -3, -4},
	"spoken-word":    {-3, -1, 0, 1, 4, 5, 4, 3, 2, 0},
	"treble-booster": {-2, -2, -2, -1, 0, 1, 2, 3, 4, 5},
	"treble-reducer": {2, 2, 2, 1, 0, -1, -2, -3, -4, -5},
	"vocal-booster":  {-2, -3, -3, 1, 4, 4, 3, 2, 1, -1},
}

// MaxGain bounds a band edit in either direction.
const MaxGain = 12.0

// PresetNames lists the presets alphabetically with flat first.
func PresetNames() []string {
	names := slices.Sorted(maps.Keys(Presets))
	names = slices.DeleteFunc(names, func(n string) bool { return n == FlatPreset })
	return append([]string{FlatPreset}, names...)
}

// Equalizer is the band state behind an [EqualizerSink].
type Equalizer struct {
	enabled bool
	preset  string
	gains   map[int]float64
}

// NewEqualizer returns an enabled, flat equalizer.
func NewEqualizer() *Equalizer {
	return &Equalizer{enabled: true, preset: FlatPreset, gains: flatGains()}
}

func flatGains() map[int]float64 {
	gains := make(map[int]float64, len(Bands))
	for _, hz := range Bands {
		gains[hz] = 0
	}
	return gains
}

// EqualizerFromSettings restores a saved equalizer. Unknown presets and bands are ignored.
func EqualizerFromSettings(s models.EqualizerSettings) *Equalizer {
	eq := NewEqualizer()
	eq.enabled = s.Enabled

	if _, ok := Presets[s.Preset]; ok {
		eq.ApplyPreset(s.Preset)
	}
	for key, db := range s.Bands {
		hz, err := strconv.Atoi(key)
		if err != nil || !slices.Contains(Bands, hz) {
			continue
		}
		eq.gains[hz] = clampGain(db)
	}
	if s.Preset == CustomPreset {
		eq.preset = CustomPreset
	}
	return eq
}

// Settings converts the equalizer into its persisted form.
func (e *Equalizer) Settings() models.EqualizerSettings {
	bands := make(map[string]float64, len(e.gains))
	for hz, db := range e.gains {
		bands[strconv.Itoa(hz)] = db
	}
	return models.EqualizerSettings{Enabled: e.enabled, Preset: e.preset, Bands: bands}
}

func (e *Equalizer) Enabled() bool  { return e.enabled }
func (e *Equalizer) Preset() string { return e.preset }

// Gain returns the stored gain for hz, regardless of whether the equalizer is enabled.
func (e *Equalizer) Gain(hz int) float64 { return e.gains[hz] }

// Gains returns the stored gains in band order.
func (e *Equalizer) Gains() []float64 {
	out := make([]float64, len(Bands))
	for i, hz := range Bands {
		out[i] = e.gains[hz]
	}
	return out
}

// SetEnabled turns the equalizer on or off; bands are kept while off.
func (e *Equalizer) SetEnabled(on bool) { e.enabled = on }

// ApplyPreset loads a named preset.
func (e *Equalizer) ApplyPreset(name string) error {
	gains, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrUnknownPreset, name)
	}
	for i, hz := range Bands {
		e.gains[hz] = gains[i]
	}
	e.preset = name
	return nil
}

// SetBand edits one band and marks the layout as custom.
func (e *Equalizer) SetBand(hz int, db float64) error {
	if !slices.Contains(Bands, hz) {
		return fmt.Errorf("%w: %d Hz", shared.ErrUnknownBand, hz)
	}
	e.gains[hz] = clampGain(db)
	e.preset = CustomPreset
	return nil
}

// Reset returns to flat.
func (e *Equalizer) Reset() {
	e.gains = flatGains()
	e.preset = FlatPreset
}

// Apply pushes every band to sink. A disabled equalizer pushes zero gain.
func (e *Equalizer) Apply(sink EqualizerSink) {
	for _, hz := range Bands {
		db := e.gains[hz]
		if !e.enabled {
			db = 0
		}
		sink.SetBandGain(hz, db)
	}
}

func clampGain(db float64) float64 {
	return max(-MaxGain, min(MaxGain, db))
}
