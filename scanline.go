package cadence

import (
	"time"

	"github.com/tanema/gween/ease"
)

// DefaultScanLineCount is the number of lines in a field created with a
// non-positive count.
const DefaultScanLineCount = 15

// Scan-line timing and geometry.
var (
	ScanLineDelay  = Range{0, 2000} // milliseconds before a line first flickers
	ScanLineHeight = Range{1, 4}    // pixels
	ScanLineWidth  = Range{20, 100} // percent, redrawn every update
)

const (
	scanLineRise = 300 * time.Millisecond
	scanLineFall = 500 * time.Millisecond
	scanLinePeak = 0.8
)

// ScanLine is one horizontal flicker line. Top and Width are percentages of
// the field's box, Height is in pixels.
type ScanLine struct {
	ID      int
	Top     float64
	Height  float64
	Width   float64
	Opacity float64
}

// ScanLineField is a randomized flicker overlay. Each line flickers on its
// own looping tween and jumps to a new random top and width on every update.
// The renderer reads immutable copies through Snapshot.
type ScanLineField struct {
	ticker  *Ticker
	rng     Rand
	lines   []ScanLine
	handles []Handle
}

// NewScanLineField generates count lines. Call Start to animate them.
func NewScanLineField(t *Ticker, rng Rand, count int) *ScanLineField {
	if count <= 0 {
		count = DefaultScanLineCount
	}
	f := &ScanLineField{ticker: t, rng: orGlobal(rng)}
	f.lines = make([]ScanLine, count)
	for i := range f.lines {
		f.lines[i] = ScanLine{
			ID:     i,
			Top:    f.rng.Float64() * 100,
			Height: ScanLineHeight.Random(f.rng),
			Width:  f.rng.Float64() * 100,
		}
	}
	return f
}

// Start begins flickering every line. Calling Start again restarts the field.
func (f *ScanLineField) Start() {
	f.Stop()
	period := scanLineRise + scanLineFall
	rise := float64(scanLineRise) / float64(period)
	for i := range f.lines {
		i := i
		tw := f.ticker.Tween(TweenSpec{
			From:     Scalar(0),
			To:       Scalar(1),
			Duration: period,
			Delay:    msToDuration(ScanLineDelay.Random(f.rng)),
			Loop:     true,
		}, func(v Value) {
			f.lines[i] = f.next(f.lines[i], v[0], rise)
		}, nil)
		f.handles = append(f.handles, tw)
	}
}

// next derives a line's state at loop progress p.
func (f *ScanLineField) next(l ScanLine, p, rise float64) ScanLine {
	if p < rise {
		l.Opacity = scanLinePeak * inOutSine(p/rise)
	} else {
		l.Opacity = scanLinePeak * (1 - inOutSine((p-rise)/(1-rise)))
	}
	l.Top = f.rng.Float64() * 100
	l.Width = ScanLineWidth.Random(f.rng)
	return l
}

// Stop cancels every line's animation.
func (f *ScanLineField) Stop() {
	cancelAll(f.handles)
	f.handles = nil
}

// Running reports whether the field is animating.
func (f *ScanLineField) Running() bool {
	return len(f.handles) > 0
}

// Snapshot returns a copy of the current lines.
func (f *ScanLineField) Snapshot() []ScanLine {
	out := make([]ScanLine, len(f.lines))
	copy(out, f.lines)
	return out
}

func inOutSine(t float64) float64 {
	return float64(ease.InOutSine(float32(clamp01(t)), 0, 1, 1))
}
