package cadence

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Value is the animated quantity of a tween: one component for scalars, two
// for 2D offsets, and so on. From and To of a TweenSpec must have the same
// number of components.
type Value []float64

// Scalar returns a one-component Value.
func Scalar(v float64) Value { return Value{v} }

// Point returns a two-component Value.
func Point(x, y float64) Value { return Value{x, y} }

// TweenSpec describes a single property animation. The spec is copied when
// the tween starts; later changes to the caller's slices have no effect.
type TweenSpec struct {
	// Property names the target property ("opacity", "width", "scale",
	// "position", ...). Used by node writers; ignored by plain callbacks.
	Property string
	From, To Value
	Duration time.Duration
	Delay    time.Duration
	// Easing shapes normalized progress. Nil means linear.
	Easing    ease.TweenFunc
	Loop      bool
	Alternate bool
}

// Tween drives one TweenSpec. Create one with Ticker.Tween, Ticker.Oscillate
// or Ticker.After.
//
// On every tick progress t = clamp((elapsed-Delay)/Duration, 0, 1) is eased
// and used to interpolate From..To component-wise. The Value passed to the
// update callback is reused between calls and must not be retained.
type Tween struct {
	ticker     *Ticker
	spec       TweenSpec
	curve      *gween.Tween
	value      Value
	onUpdate   func(Value)
	onComplete func()

	elapsed    time.Duration
	state      PlayState
	registered bool
	gen        int // bumped by every start
}

func newTween(tk *Ticker, spec TweenSpec, onUpdate func(Value), onComplete func()) *Tween {
	if spec.Duration < 0 {
		panic("cadence: tween duration must be non-negative")
	}
	if len(spec.From) != len(spec.To) {
		panic("cadence: tween from/to component count mismatch")
	}
	fn := spec.Easing
	if fn == nil {
		fn = ease.Linear
	}
	spec.From = append(Value(nil), spec.From...)
	spec.To = append(Value(nil), spec.To...)
	return &Tween{
		ticker:     tk,
		spec:       spec,
		curve:      gween.New(0, 1, 1, fn),
		value:      make(Value, len(spec.From)),
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
}

// Tween starts a tween. onUpdate receives the interpolated value on every
// tick, including once immediately at elapsed zero; onComplete fires exactly
// once after the final update of a non-looping tween. Either may be nil.
// A zero-duration, non-looping tween completes inside this call.
func (t *Ticker) Tween(spec TweenSpec, onUpdate func(Value), onComplete func()) *Tween {
	tw := newTween(t, spec, onUpdate, onComplete)
	tw.start()
	return tw
}

// Oscillate starts a ping-pong tween that runs until cancelled. Loop and
// Alternate are forced on.
func (t *Ticker) Oscillate(spec TweenSpec, onUpdate func(Value)) *Tween {
	spec.Loop = true
	spec.Alternate = true
	return t.Tween(spec, onUpdate, nil)
}

// After calls fn once d has elapsed on the ticker. The returned tween can be
// paused or cancelled like any other.
func (t *Ticker) After(d time.Duration, fn func()) *Tween {
	if d < 0 {
		d = 0
	}
	return t.Tween(TweenSpec{Duration: d}, nil, fn)
}

// Spec returns the tween's (copied) spec.
func (tw *Tween) Spec() TweenSpec {
	return tw.spec
}

// Elapsed returns the time accumulated while running, including the delay.
func (tw *Tween) Elapsed() time.Duration {
	return tw.elapsed
}

// State reports the tween's lifecycle state.
func (tw *Tween) State() PlayState {
	return tw.state
}

// Pause stops time accumulation. Resume continues from the same progress.
func (tw *Tween) Pause() {
	if tw.state == Running {
		tw.state = Paused
	}
}

// Resume continues a paused tween.
func (tw *Tween) Resume() {
	if tw.state == Paused {
		tw.state = Running
	}
}

// Restart rewinds the tween to elapsed zero and runs it again, whatever its
// current state.
func (tw *Tween) Restart() {
	tw.elapsed = 0
	tw.start()
}

// Cancel stops the tween without firing onComplete. Safe to call repeatedly
// and from inside any callback.
func (tw *Tween) Cancel() {
	if tw.state == Running || tw.state == Paused {
		tw.state = Cancelled
	}
}

func (tw *Tween) start() {
	tw.gen++
	tw.state = Running
	if tw.ticker != nil && !tw.registered {
		tw.registered = true
		tw.ticker.add(tw)
	}
	tw.step(tw.elapsed)
}

func (tw *Tween) advance(dt time.Duration) bool {
	if tw.state == Running {
		tw.step(tw.elapsed + dt)
	}
	// A restart from inside a callback keeps this entry alive.
	if tw.state == Running || tw.state == Paused {
		return true
	}
	tw.registered = false
	return false
}

// step evaluates at elapsed and finishes the tween when it is done. A
// restart from inside onUpdate supersedes this evaluation.
func (tw *Tween) step(elapsed time.Duration) {
	gen := tw.gen
	if tw.seek(elapsed) && tw.state == Running && tw.gen == gen {
		tw.finish()
	}
}

func (tw *Tween) finish() {
	tw.state = Finished
	if tw.onComplete != nil {
		tw.onComplete()
	}
}

// seek evaluates the tween at the given elapsed time, calls onUpdate and
// reports whether the final non-looping pass has been reached.
func (tw *Tween) seek(elapsed time.Duration) bool {
	tw.elapsed = elapsed
	local := elapsed - tw.spec.Delay
	if local < 0 {
		local = 0
	}

	var t float64
	done := false
	d := tw.spec.Duration
	switch {
	case d == 0:
		t = 1
		done = !tw.spec.Loop
	case !tw.spec.Loop:
		if local >= d {
			t = 1
			done = true
		} else {
			t = float64(local) / float64(d)
		}
	default:
		pass := local / d
		t = float64(local%d) / float64(d)
		if tw.spec.Alternate && pass%2 == 1 {
			t = 1 - t
		}
	}

	tw.apply(t)
	return done
}

func (tw *Tween) apply(t float64) {
	if tw.onUpdate == nil {
		return
	}
	p := tw.progress(t)
	for i := range tw.value {
		switch p {
		case 0:
			tw.value[i] = tw.spec.From[i]
		case 1:
			tw.value[i] = tw.spec.To[i]
		default:
			tw.value[i] = lerp(tw.spec.From[i], tw.spec.To[i], p)
		}
	}
	tw.onUpdate(tw.value)
}

// progress maps normalized time through the easing curve.
func (tw *Tween) progress(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	v, _ := tw.curve.Set(float32(t))
	return float64(v)
}

// --- Node tweens ---

// TweenNode starts a tween that writes spec.Property onto node each tick.
// If the node is disposed the tween cancels itself and no write occurs.
func (t *Ticker) TweenNode(node *Node, spec TweenSpec, onComplete func()) *Tween {
	var tw *Tween
	tw = newTween(t, spec, func(v Value) {
		if node == nil || node.IsDisposed() {
			tw.Cancel()
			return
		}
		node.SetProperty(spec.Property, v)
	}, onComplete)
	tw.start()
	return tw
}

// TweenAlpha animates node.Alpha from its current value to to.
func (t *Ticker) TweenAlpha(node *Node, to float64, d time.Duration, fn ease.TweenFunc) *Tween {
	return t.TweenNode(node, TweenSpec{
		Property: PropOpacity, From: Scalar(node.Alpha), To: Scalar(to), Duration: d, Easing: fn,
	}, nil)
}

// TweenPosition animates node.X and node.Y to the given coordinates.
func (t *Ticker) TweenPosition(node *Node, toX, toY float64, d time.Duration, fn ease.TweenFunc) *Tween {
	return t.TweenNode(node, TweenSpec{
		Property: PropPosition, From: Point(node.X, node.Y), To: Point(toX, toY), Duration: d, Easing: fn,
	}, nil)
}

// TweenScale animates node.ScaleX and node.ScaleY to the given values.
func (t *Ticker) TweenScale(node *Node, toSX, toSY float64, d time.Duration, fn ease.TweenFunc) *Tween {
	return t.TweenNode(node, TweenSpec{
		Property: PropScale, From: Point(node.ScaleX, node.ScaleY), To: Point(toSX, toSY), Duration: d, Easing: fn,
	}, nil)
}

// TweenWidth animates node.Width to w.
func (t *Ticker) TweenWidth(node *Node, w float64, d time.Duration, fn ease.TweenFunc) *Tween {
	return t.TweenNode(node, TweenSpec{
		Property: PropWidth, From: Scalar(node.Width), To: Scalar(w), Duration: d, Easing: fn,
	}, nil)
}
