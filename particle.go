package cadence

import (
	"log"
	"time"

	"github.com/tanema/gween/ease"
)

// Particle is one member of a ParticleField. Positions are percentages of
// the field's box. All values are drawn once at Init and fixed afterwards.
type Particle struct {
	ID              int
	Start, End      Vec2
	Delay, Duration time.Duration
}

// ParticleFrame is a particle's animated state at one tick.
type ParticleFrame struct {
	Pos     Vec2
	Opacity float64
	Scale   float64
}

// Randomization ranges for particle parameters.
var (
	ParticleDelay    = Range{0, 500}     // milliseconds
	ParticleDuration = Range{1000, 2000} // milliseconds
)

const (
	particleFadeIn  = 0.2 // fraction of a loop spent fading in
	particleFadeOut = 0.2 // fraction spent fading out
	particlePopAt   = 0.3 // fraction at which scale peaks
	particlePeak    = 1.5 // peak scale
)

// ParticleField manages a fixed set of independently randomized, looping
// particle animations. Only one animation set runs at a time: Animate and
// FadeOut cancel whatever the field was running before.
type ParticleField struct {
	ticker    *Ticker
	rng       Rand
	particles []Particle
	frames    []ParticleFrame
	handles   []Handle
}

// NewParticleField creates an empty field. A nil rng uses the global
// math/rand/v2 source.
func NewParticleField(t *Ticker, rng Rand) *ParticleField {
	return &ParticleField{ticker: t, rng: orGlobal(rng)}
}

// Init cancels any running animation and draws count new particles. A
// negative count is treated as zero.
func (f *ParticleField) Init(count int) []Particle {
	if count < 0 {
		log.Printf("cadence: particle count %d is negative, using 0", count)
		count = 0
	}
	f.CancelAll()
	f.particles = make([]Particle, count)
	f.frames = make([]ParticleFrame, count)
	for i := range f.particles {
		delay := ParticleDelay.Random(f.rng)
		dur := ParticleDuration.Random(f.rng)
		sx := f.rng.Float64() * 100
		sy := 50 + (f.rng.Float64()-0.5)*20
		ex := sx + (f.rng.Float64()-0.5)*40
		ey := sy + (f.rng.Float64()-0.5)*30
		f.particles[i] = Particle{
			ID:       i,
			Start:    Vec2{sx, sy},
			End:      Vec2{ex, ey},
			Delay:    msToDuration(delay),
			Duration: msToDuration(dur),
		}
		f.frames[i] = ParticleFrame{Pos: f.particles[i].Start}
	}
	return f.particles
}

// Particles returns the current particle set. The returned slice MUST NOT be mutated.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Snapshot returns a copy of the latest frame of every particle.
func (f *ParticleField) Snapshot() []ParticleFrame {
	out := make([]ParticleFrame, len(f.frames))
	copy(out, f.frames)
	return out
}

// Animate starts one looping animation per particle: fade in, hold, fade
// out, repeat, while drifting from Start to End and popping in scale. The
// loops run until CancelAll. onUpdate may be nil.
func (f *ParticleField) Animate(onUpdate func(Particle, ParticleFrame)) []Handle {
	f.CancelAll()
	f.handles = make([]Handle, 0, len(f.particles))
	for i := range f.particles {
		i := i
		p := f.particles[i]
		tw := f.ticker.Tween(TweenSpec{
			From:     Scalar(0),
			To:       Scalar(1),
			Duration: p.Duration,
			Delay:    p.Delay,
			Loop:     true,
		}, func(v Value) {
			fr := particleFrameAt(p, v[0])
			f.frames[i] = fr
			if onUpdate != nil {
				onUpdate(p, fr)
			}
		}, nil)
		f.handles = append(f.handles, tw)
	}
	return f.handles
}

// FadeOut cancels the particle loops and fades every particle's last frame
// to zero opacity and scale over d. onComplete fires once the fade ends.
func (f *ParticleField) FadeOut(d time.Duration, onUpdate func(Particle, ParticleFrame), onComplete func()) Handle {
	f.CancelAll()
	from := f.Snapshot()
	tw := f.ticker.Tween(TweenSpec{
		From:     Scalar(1),
		To:       Scalar(0),
		Duration: d,
		Easing:   ease.OutQuad,
	}, func(v Value) {
		k := v[0]
		for i, p := range f.particles {
			fr := from[i]
			fr.Opacity *= k
			fr.Scale *= k
			f.frames[i] = fr
			if onUpdate != nil {
				onUpdate(p, fr)
			}
		}
	}, onComplete)
	f.handles = []Handle{tw}
	return tw
}

// CancelAll cancels every handle the field owns. After it returns no
// particle callback fires until the next Animate or FadeOut.
func (f *ParticleField) CancelAll() {
	cancelAll(f.handles)
	f.handles = nil
}

// Handles returns the handles of the running animation set.
func (f *ParticleField) Handles() []Handle {
	return f.handles
}

// particleFrameAt computes a particle's frame at loop progress p in [0, 1].
func particleFrameAt(pt Particle, p float64) ParticleFrame {
	var opacity float64
	switch {
	case p < particleFadeIn:
		opacity = inOutQuad(p / particleFadeIn)
	case p < 1-particleFadeOut:
		opacity = 1
	default:
		opacity = 1 - inOutQuad((p-(1-particleFadeOut))/particleFadeOut)
	}

	var scale float64
	if p < particlePopAt {
		scale = particlePeak * inOutQuad(p/particlePopAt)
	} else {
		scale = lerp(particlePeak, 1, inOutQuad((p-particlePopAt)/(1-particlePopAt)))
	}

	k := inOutQuad(p)
	return ParticleFrame{
		Pos:     Vec2{lerp(pt.Start.X, pt.End.X, k), lerp(pt.Start.Y, pt.End.Y, k)},
		Opacity: opacity,
		Scale:   scale,
	}
}

func inOutQuad(t float64) float64 {
	return float64(ease.InOutQuad(float32(clamp01(t)), 0, 1, 1))
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
