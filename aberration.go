package cadence

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
)

// Intensity is a preset for the chromatic aberration offsets and
// displacement scale.
type Intensity struct {
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
	Scale   float64 `yaml:"scale"`
}

// DefaultIntensity is used for unknown levels.
const DefaultIntensity = "intense"

// Intensities holds the built-in presets.
var Intensities = map[string]Intensity{
	"subtle":  {OffsetX: 2, OffsetY: 1, Scale: 6},
	"normal":  {OffsetX: 3, OffsetY: 1.5, Scale: 9},
	"intense": {OffsetX: 5, OffsetY: 2, Scale: 12},
	"extreme": {OffsetX: 8, OffsetY: 3, Scale: 18},
}

// Breathing parameters.
const (
	BreathPeriod = 4 * time.Second
	BreathFactor = 1.3
)

// Aberration is the red/blue channel split effect. Its displacement scale
// breathes continuously between the preset scale and BreathFactor times it.
type Aberration struct {
	// FilterID uniquely names this instance's filter.
	FilterID string

	ticker   *Ticker
	presets  map[string]Intensity
	level    string
	animated bool

	RedOffset, BlueOffset Vec2
	RedScale, BlueScale   float64

	base   float64
	breath *Tween
}

// NewAberration creates the effect at the given level and starts breathing
// when animated is true. presets may be nil to use Intensities.
func NewAberration(t *Ticker, presets map[string]Intensity, level string, animated bool) *Aberration {
	if presets == nil {
		presets = Intensities
	}
	a := &Aberration{
		FilterID: "chromatic-filter-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9],
		ticker:   t,
		presets:  presets,
		animated: animated,
	}
	a.SetIntensity(level)
	return a
}

// Level returns the applied intensity level.
func (a *Aberration) Level() string {
	return a.level
}

// SetIntensity applies a preset and restarts breathing from its scale.
// Unknown levels fall back to DefaultIntensity.
func (a *Aberration) SetIntensity(level string) {
	in, ok := a.presets[level]
	if !ok {
		log.Printf("cadence: unknown intensity %q, using %q", level, DefaultIntensity)
		level = DefaultIntensity
		in, ok = a.presets[level]
		if !ok {
			in = Intensities[DefaultIntensity]
		}
	}
	a.level = level
	a.RedOffset = Vec2{-in.OffsetX, -in.OffsetY}
	a.BlueOffset = Vec2{in.OffsetX, in.OffsetY}
	a.RedScale = in.Scale
	a.BlueScale = in.Scale
	a.base = in.Scale

	if a.animated {
		a.breathe(in.Scale)
	}
}

func (a *Aberration) breathe(base float64) {
	if a.breath != nil {
		a.breath.Cancel()
	}
	a.breath = a.ticker.Oscillate(TweenSpec{
		Property: "scale",
		From:     Scalar(base),
		To:       Scalar(base * BreathFactor),
		Duration: BreathPeriod,
		Easing:   ease.InOutSine,
	}, func(v Value) {
		a.RedScale = v[0]
		a.BlueScale = v[0]
	})
}

// Breathing reports whether the oscillator is running.
func (a *Aberration) Breathing() bool {
	return a.breath != nil && a.breath.State() == Running
}

// Offsets returns the red and blue channel offsets stretched by the current
// breathing phase.
func (a *Aberration) Offsets() (red, blue Vec2) {
	kr, kb := 1.0, 1.0
	if a.base > 0 {
		kr, kb = a.RedScale/a.base, a.BlueScale/a.base
	}
	return Vec2{a.RedOffset.X * kr, a.RedOffset.Y * kr}, Vec2{a.BlueOffset.X * kb, a.BlueOffset.Y * kb}
}

// Stop cancels the breathing oscillator.
func (a *Aberration) Stop() {
	if a.breath != nil {
		a.breath.Cancel()
		a.breath = nil
	}
}

// IntensityNames returns the preset names in sorted order.
func IntensityNames(presets map[string]Intensity) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
