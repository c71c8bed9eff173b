package cadence

import "time"

// Align selects what a TimelineStep's Offset is measured from.
type Align uint8

const (
	AlignEnd   Align = iota // offset from the previous step's end (default)
	AlignStart              // offset from the previous step's start
)

// TimelineStep is one tween in a Timeline. A negative Offset overlaps the
// step with its predecessor.
//
// When OnUpdate is nil the step writes Tween.Property onto every node in
// Targets. A step with neither OnUpdate nor live targets keeps its slot in
// the schedule but writes nothing.
type TimelineStep struct {
	Tween    TweenSpec
	Offset   time.Duration
	Align    Align
	Targets  []*Node
	OnUpdate func(Value)
}

type timelineSlot struct {
	start, end time.Duration
	tween      *Tween
	done       bool
}

// Timeline sequences and overlaps tweens into one controllable animation.
// The absolute schedule is resolved once, when the timeline is composed.
type Timeline struct {
	ticker     *Ticker
	slots      []timelineSlot
	total      time.Duration
	onComplete func()

	elapsed    time.Duration
	state      PlayState
	registered bool
	gen        int
}

// Compose resolves steps into an absolute schedule and starts playing it.
// onComplete fires once, when the step with the latest end completes. An
// empty step list completes inside this call.
func (t *Ticker) Compose(steps []TimelineStep, onComplete func()) *Timeline {
	tl := &Timeline{
		ticker:     t,
		slots:      make([]timelineSlot, len(steps)),
		onComplete: onComplete,
	}

	var prevStart, prevEnd time.Duration
	for i, st := range steps {
		base := prevEnd
		if st.Align == AlignStart {
			base = prevStart
		}
		start := base + st.Offset
		if start < 0 {
			start = 0
		}
		end := start + st.Tween.Delay + st.Tween.Duration
		if end > tl.total {
			tl.total = end
		}
		tl.slots[i] = timelineSlot{
			start: start,
			end:   end,
			tween: newTween(nil, st.Tween, stepWriter(st), nil),
		}
		prevStart, prevEnd = start, end
	}

	tl.start()
	return tl
}

// stepWriter returns the per-tick writer for a step.
func stepWriter(st TimelineStep) func(Value) {
	if st.OnUpdate != nil {
		return st.OnUpdate
	}
	if len(st.Targets) == 0 {
		return nil
	}
	prop := st.Tween.Property
	targets := st.Targets
	return func(v Value) {
		for _, n := range targets {
			if n != nil && !n.IsDisposed() {
				n.SetProperty(prop, v)
			}
		}
	}
}

// Duration returns the resolved end of the latest step.
func (tl *Timeline) Duration() time.Duration {
	return tl.total
}

// StartOf returns the resolved absolute start of step i.
func (tl *Timeline) StartOf(i int) time.Duration {
	return tl.slots[i].start
}

// Elapsed returns the time accumulated while running.
func (tl *Timeline) Elapsed() time.Duration {
	return tl.elapsed
}

// State reports the timeline's lifecycle state.
func (tl *Timeline) State() PlayState {
	return tl.state
}

// Pause stops every pending and in-flight step.
func (tl *Timeline) Pause() {
	if tl.state != Running {
		return
	}
	tl.state = Paused
	for i := range tl.slots {
		tl.slots[i].tween.Pause()
	}
}

// Resume continues a paused timeline from the same position.
func (tl *Timeline) Resume() {
	if tl.state != Paused {
		return
	}
	tl.state = Running
	for i := range tl.slots {
		tl.slots[i].tween.Resume()
	}
}

// Restart rewinds every step and plays the timeline from the beginning.
func (tl *Timeline) Restart() {
	tl.elapsed = 0
	for i := range tl.slots {
		tl.slots[i].done = false
		tl.slots[i].tween.state = Running
	}
	tl.start()
}

// Cancel stops every pending and in-flight step. No callback fires
// afterwards. Idempotent.
func (tl *Timeline) Cancel() {
	if tl.state != Running && tl.state != Paused {
		return
	}
	tl.state = Cancelled
	for i := range tl.slots {
		tl.slots[i].tween.Cancel()
	}
}

func (tl *Timeline) start() {
	tl.gen++
	tl.state = Running
	if len(tl.slots) == 0 {
		tl.finish()
		return
	}
	if !tl.registered {
		tl.registered = true
		tl.ticker.add(tl)
	}
	tl.drive(tl.elapsed)
}

func (tl *Timeline) advance(dt time.Duration) bool {
	if tl.state == Running {
		tl.drive(tl.elapsed + dt)
	}
	if tl.state == Running || tl.state == Paused {
		return true
	}
	tl.registered = false
	return false
}

// drive evaluates every started step, in declaration order, at elapsed.
func (tl *Timeline) drive(elapsed time.Duration) {
	tl.elapsed = elapsed
	gen := tl.gen
	remaining := 0
	for i := range tl.slots {
		s := &tl.slots[i]
		if s.done {
			continue
		}
		if elapsed < s.start {
			remaining++
			continue
		}
		done := s.tween.seek(elapsed - s.start)
		if tl.gen != gen {
			return
		}
		if done {
			s.done = true
			s.tween.state = Finished
		} else {
			remaining++
		}
		if tl.state != Running {
			return
		}
	}
	if remaining == 0 {
		tl.finish()
	}
}

func (tl *Timeline) finish() {
	tl.state = Finished
	if tl.onComplete != nil {
		tl.onComplete()
	}
}
