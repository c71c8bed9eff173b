package cadence

import "time"

// animation is anything the Ticker can drive. advance returns false once the
// animation should be dropped from the schedule.
type animation interface {
	advance(dt time.Duration) bool
	State() PlayState
}

// Ticker is the shared scheduling tick. Every Tween, Timeline and controller
// built on them registers here and is advanced once per Advance call.
//
// A Ticker is single-threaded: Advance, Start and Cancel must all be called
// from the goroutine that owns the frame loop (Scene.Update when running
// under Ebitengine). Animations started from inside a callback begin ticking
// on the next Advance.
type Ticker struct {
	now       time.Duration
	frame     uint64
	active    []animation
	pending   []animation
	advancing bool
}

// NewTicker creates an idle ticker at time zero.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Now returns the total time advanced so far.
func (t *Ticker) Now() time.Duration {
	return t.now
}

// Frame returns the number of Advance calls so far.
func (t *Ticker) Frame() uint64 {
	return t.frame
}

// Advance moves the clock forward by dt and advances every registered
// animation in registration order. Negative dt is treated as zero.
func (t *Ticker) Advance(dt time.Duration) {
	if t.advancing {
		panic("cadence: Ticker.Advance called re-entrantly")
	}
	if dt < 0 {
		dt = 0
	}
	t.now += dt
	t.frame++

	t.advancing = true
	n := len(t.active)
	kept := t.active[:0]
	for i := 0; i < n; i++ {
		a := t.active[i]
		if a.advance(dt) {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < n; i++ {
		t.active[i] = nil
	}
	t.active = kept
	t.advancing = false

	if len(t.pending) > 0 {
		t.active = append(t.active, t.pending...)
		for i := range t.pending {
			t.pending[i] = nil
		}
		t.pending = t.pending[:0]
	}
}

// Len returns the number of registered animations, including ones cancelled
// since the last Advance that have not been dropped yet.
func (t *Ticker) Len() int {
	return len(t.active) + len(t.pending)
}

// Live returns the number of registered animations that are running or
// paused.
func (t *Ticker) Live() int {
	n := 0
	for _, list := range [2][]animation{t.active, t.pending} {
		for _, a := range list {
			if s := a.State(); s == Running || s == Paused {
				n++
			}
		}
	}
	return n
}

// Run advances the ticker in fixed steps of dt until done reports true or
// limit time has elapsed. It returns the time advanced. Intended for headless
// playback and tests.
func (t *Ticker) Run(dt, limit time.Duration, done func() bool) time.Duration {
	if dt <= 0 {
		panic("cadence: Ticker.Run step must be positive")
	}
	start := t.now
	for t.now-start < limit {
		if done != nil && done() {
			break
		}
		t.Advance(dt)
	}
	return t.now - start
}

func (t *Ticker) add(a animation) {
	if t.advancing {
		t.pending = append(t.pending, a)
		return
	}
	t.active = append(t.active, a)
}
