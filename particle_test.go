package cadence

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParticleInitRanges(t *testing.T) {
	f := NewParticleField(NewTicker(), NewRand(7))
	ps := f.Init(50)
	if len(ps) != 50 {
		t.Fatalf("len = %d, want 50", len(ps))
	}
	for _, p := range ps {
		if p.Delay < 0 || p.Delay >= 500*ms {
			t.Errorf("particle %d delay %v out of range", p.ID, p.Delay)
		}
		if p.Duration < time.Second || p.Duration >= 2*time.Second {
			t.Errorf("particle %d duration %v out of range", p.ID, p.Duration)
		}
		if p.Start.X < 0 || p.Start.X >= 100 || p.Start.Y < 40 || p.Start.Y > 60 {
			t.Errorf("particle %d start %v out of range", p.ID, p.Start)
		}
		if math.Abs(p.End.X-p.Start.X) > 20 || math.Abs(p.End.Y-p.Start.Y) > 15 {
			t.Errorf("particle %d drift %v -> %v too large", p.ID, p.Start, p.End)
		}
	}
}

func TestParticleInitDeterministic(t *testing.T) {
	a := NewParticleField(NewTicker(), NewRand(42)).Init(10)
	b := NewParticleField(NewTicker(), NewRand(42)).Init(10)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different particles (-a +b):\n%s", diff)
	}
}

func TestParticleInitNegativeCount(t *testing.T) {
	f := NewParticleField(NewTicker(), NewRand(1))
	if n := len(f.Init(-3)); n != 0 {
		t.Errorf("len = %d, want 0", n)
	}
}

func TestParticleFrameAt(t *testing.T) {
	p := Particle{Start: Vec2{10, 50}, End: Vec2{30, 40}}

	fr := particleFrameAt(p, 0)
	if fr.Opacity != 0 || fr.Scale != 0 || fr.Pos != p.Start {
		t.Errorf("frame at 0 = %+v", fr)
	}

	fr = particleFrameAt(p, 0.3)
	if fr.Opacity != 1 || !approx(fr.Scale, 1.5) {
		t.Errorf("frame at 0.3 = %+v, want opacity 1 scale 1.5", fr)
	}

	fr = particleFrameAt(p, 0.5)
	if fr.Opacity != 1 || fr.Scale <= 1 || fr.Scale >= 1.5 {
		t.Errorf("frame at 0.5 = %+v", fr)
	}
	if !approx(fr.Pos.X, 20) || !approx(fr.Pos.Y, 45) {
		t.Errorf("midpoint = %v, want (20, 45)", fr.Pos)
	}

	fr = particleFrameAt(p, 1)
	if fr.Opacity != 0 || !approx(fr.Scale, 1) {
		t.Errorf("frame at 1 = %+v, want opacity 0 scale 1", fr)
	}
	if !approx(fr.Pos.X, 30) || !approx(fr.Pos.Y, 40) {
		t.Errorf("end = %v, want (30, 40)", fr.Pos)
	}
}

func TestParticleAnimateAndCancel(t *testing.T) {
	tk := NewTicker()
	f := NewParticleField(tk, NewRand(3))
	f.Init(5)
	calls := 0
	hs := f.Animate(func(Particle, ParticleFrame) { calls++ })
	if len(hs) != 5 {
		t.Fatalf("handles = %d, want 5", len(hs))
	}
	if calls != 5 {
		t.Errorf("initial updates = %d, want 5", calls)
	}
	tk.Advance(700 * ms)
	for _, fr := range f.Snapshot() {
		if fr.Opacity <= 0 {
			t.Errorf("particle not visible at 700ms: %+v", fr)
		}
	}

	f.CancelAll()
	calls = 0
	tk.Advance(time.Second)
	if calls != 0 {
		t.Errorf("callbacks after CancelAll = %d", calls)
	}
	for _, h := range hs {
		if h.State() != Cancelled {
			t.Errorf("handle state = %v, want cancelled", h.State())
		}
	}
	if tk.Live() != 0 {
		t.Errorf("Live = %d, want 0", tk.Live())
	}
}

func TestParticleAnimateTwiceReplaces(t *testing.T) {
	tk := NewTicker()
	f := NewParticleField(tk, NewRand(3))
	f.Init(4)
	first := f.Animate(nil)
	f.Animate(nil)
	for _, h := range first {
		if h.State() != Cancelled {
			t.Errorf("first set state = %v, want cancelled", h.State())
		}
	}
	if tk.Live() != 4 {
		t.Errorf("Live = %d, want 4", tk.Live())
	}
}

func TestParticleFadeOut(t *testing.T) {
	tk := NewTicker()
	f := NewParticleField(tk, NewRand(9))
	f.Init(3)
	f.Animate(nil)
	tk.Advance(700 * ms)

	done := false
	f.FadeOut(300*ms, nil, func() { done = true })
	tk.Advance(150 * ms)
	if done {
		t.Fatal("fade finished early")
	}
	tk.Advance(150 * ms)
	if !done {
		t.Fatal("fade did not finish at 300ms")
	}
	for _, fr := range f.Snapshot() {
		if fr.Opacity != 0 || fr.Scale != 0 {
			t.Errorf("frame after fade = %+v, want zero opacity and scale", fr)
		}
	}
	if tk.Live() != 0 {
		t.Errorf("Live = %d, want 0", tk.Live())
	}
}
