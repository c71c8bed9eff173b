package cadence

import (
	"log"
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// Typing defaults.
const (
	DefaultTypingDuration = time.Second
	DefaultCursorChar     = "▋"
	DefaultCursorBlink    = 600 * time.Millisecond
	EraseDelay            = time.Second
	CursorClass           = "typing-cursor"
)

// TypingOptions configures Type and Sequence. Zero fields take the defaults
// above.
type TypingOptions struct {
	Duration        time.Duration
	Delay           time.Duration
	CursorChar      string
	CursorBlink     time.Duration
	EraseOnComplete bool
	OnStart         func()
	OnComplete      func()
}

func (o TypingOptions) withDefaults() TypingOptions {
	if o.Duration <= 0 {
		o.Duration = DefaultTypingDuration
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	if o.CursorChar == "" {
		o.CursorChar = DefaultCursorChar
	}
	if o.CursorBlink <= 0 {
		o.CursorBlink = DefaultCursorBlink
	}
	return o
}

// Typer reveals text character by character on Node targets. It keeps at
// most one typing session per target: starting a new one cancels the
// previous session on that target first.
type Typer struct {
	ticker *Ticker
	active map[*Node]*Typing
}

// NewTyper creates a Typer scheduling on t.
func NewTyper(t *Ticker) *Typer {
	return &Typer{ticker: t, active: make(map[*Node]*Typing)}
}

// Typing is the handle of one Type call. It owns the reveal tween, the
// cursor blink oscillator and, when erasing, the erase timer and tween.
type Typing struct {
	typer  *Typer
	target *Node
	cursor *Node
	runes  []rune
	opts   TypingOptions

	reveal *Tween
	blink  *Tween
	erase  *Tween
	state  PlayState
}

// Type clears target, appends a blinking cursor child and reveals text over
// opts.Duration after opts.Delay. Every update writes the revealed prefix as
// the target's text and re-appends the cursor. When typing completes the
// cursor is hidden and opts.OnComplete runs.
//
// A nil or disposed target is reported and yields an already finished
// handle; no callback runs.
func (ty *Typer) Type(target *Node, text string, opts TypingOptions) *Typing {
	if !alive(target) {
		log.Printf("cadence: typing target missing, skipping %q", text)
		return &Typing{state: Finished}
	}
	if prev := ty.active[target]; prev != nil {
		prev.Cancel()
	}

	opts = opts.withDefaults()
	t := &Typing{
		typer:  ty,
		target: target,
		runes:  []rune(text),
		opts:   opts,
		state:  Running,
	}
	ty.active[target] = t

	target.SetText("")
	target.RemoveChildren()
	t.cursor = NewText("cursor", opts.CursorChar, CursorClass)
	target.AddChild(t.cursor)

	t.startBlink()
	if opts.OnStart != nil {
		opts.OnStart()
	}
	if t.state == Cancelled {
		return t
	}

	t.reveal = newTween(ty.ticker, TweenSpec{
		Property: "reveal",
		From:     Scalar(0),
		To:       Scalar(float64(len(t.runes))),
		Duration: opts.Duration,
		Delay:    opts.Delay,
	}, t.write, t.typed)
	t.reveal.start()
	if t.state == Paused {
		t.reveal.Pause()
	}
	return t
}

func (t *Typing) startBlink() {
	t.cursor.Visible = true
	t.cursor.SetAlpha(1)
	t.blink = t.typer.ticker.Oscillate(TweenSpec{
		Property: PropOpacity,
		From:     Scalar(1),
		To:       Scalar(0),
		Duration: t.opts.CursorBlink,
		Easing:   ease.InOutSine,
	}, func(v Value) {
		if !alive(t.cursor) {
			return
		}
		t.cursor.SetAlpha(math.Round(v[0]))
	})
}

// write renders the first floor(v) runes followed by the cursor.
func (t *Typing) write(v Value) {
	if !alive(t.target) {
		t.Cancel()
		return
	}
	n := int(math.Floor(v[0]))
	if n < 0 {
		n = 0
	}
	if n > len(t.runes) {
		n = len(t.runes)
	}
	t.target.SetText(string(t.runes[:n]))
	if alive(t.cursor) {
		t.target.AddChild(t.cursor)
		t.cursor.X = float64(n) * GlyphWidth
		t.cursor.MarkDirty()
	}
}

// typed runs when the reveal finishes.
func (t *Typing) typed() {
	t.hideCursor()
	if t.opts.EraseOnComplete {
		t.erase = t.typer.ticker.After(EraseDelay, t.startErase)
	} else {
		t.settle(Finished)
	}
	if t.opts.OnComplete != nil {
		t.opts.OnComplete()
	}
}

func (t *Typing) startErase() {
	if !alive(t.target) {
		t.settle(Cancelled)
		return
	}
	t.erase = t.typer.ticker.Tween(TweenSpec{
		Property: "reveal",
		From:     Scalar(float64(len(t.runes))),
		To:       Scalar(0),
		Duration: t.opts.Duration / 2,
	}, t.write, func() {
		t.settle(Finished)
	})
}

func (t *Typing) hideCursor() {
	if t.blink != nil {
		t.blink.Cancel()
	}
	if alive(t.cursor) {
		t.cursor.SetAlpha(0)
		t.cursor.Visible = false
	}
}

// settle moves the session to a terminal state and releases the target.
func (t *Typing) settle(s PlayState) {
	t.state = s
	if t.typer != nil && t.typer.active[t.target] == t {
		delete(t.typer.active, t.target)
	}
}

// Text returns the full text being typed.
func (t *Typing) Text() string {
	return string(t.runes)
}

// Cursor returns the cursor node, or nil for a skipped session.
func (t *Typing) Cursor() *Node {
	return t.cursor
}

// State reports the session's lifecycle state.
func (t *Typing) State() PlayState {
	return t.state
}

// Pause pauses typing, cursor blink and erase.
func (t *Typing) Pause() {
	if t.state != Running {
		return
	}
	t.state = Paused
	t.each((*Tween).Pause)
}

// Resume continues a paused session.
func (t *Typing) Resume() {
	if t.state != Paused {
		return
	}
	t.state = Running
	t.each((*Tween).Resume)
}

// Restart types the text again from an empty target.
func (t *Typing) Restart() {
	if t.reveal == nil || !alive(t.target) {
		return
	}
	if prev := t.typer.active[t.target]; prev != nil && prev != t {
		prev.Cancel()
	}
	if t.erase != nil {
		t.erase.Cancel()
		t.erase = nil
	}
	t.state = Running
	t.typer.active[t.target] = t
	if !alive(t.cursor) || t.cursor.Parent != t.target {
		t.cursor = NewText("cursor", t.opts.CursorChar, CursorClass)
	}
	t.target.SetText("")
	t.target.AddChild(t.cursor)
	t.blink.Cancel()
	t.startBlink()
	t.reveal.Restart()
}

// Cancel stops every animation of the session and hides the cursor. No
// callback fires afterwards. Idempotent.
func (t *Typing) Cancel() {
	if t.state != Running && t.state != Paused {
		return
	}
	t.each((*Tween).Cancel)
	if alive(t.cursor) {
		t.cursor.SetAlpha(0)
		t.cursor.Visible = false
	}
	t.settle(Cancelled)
}

func (t *Typing) each(fn func(*Tween)) {
	for _, tw := range [...]*Tween{t.reveal, t.blink, t.erase} {
		if tw != nil {
			fn(tw)
		}
	}
}
