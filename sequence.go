package cadence

import (
	"fmt"
	"log"
	"time"
)

// DefaultInterDelay separates a message without an explicit delay from the
// next one.
const DefaultInterDelay = 300 * time.Millisecond

// LineHeight is the vertical spacing of console lines created by Sequence.
const LineHeight = 16

// Message is one line of a typing sequence. A non-zero Delay is waited
// before the line starts typing.
type Message struct {
	Text  string        `yaml:"text"`
	Delay time.Duration `yaml:"delay"`
}

// Sequence types a list of messages one after another into child lines of a
// target. At most one message types at a time.
type Sequence struct {
	typer    *Typer
	target   *Node
	messages []Message
	opts     TypingOptions
	onDone   func()

	index  int
	owned  []Handle
	state  PlayState
	done   chan struct{}
	closed bool
}

// Sequence clears target and types messages in order, each into a fresh
// ".console-line" child. For every message it waits Delay if non-zero,
// types the message to completion and, when the message had no explicit
// delay and is not the last, waits DefaultInterDelay before the next.
// opts.OnComplete fires once after the last message.
//
// A nil or disposed target is reported and yields an already finished
// sequence whose Done channel is closed.
func (ty *Typer) Sequence(target *Node, messages []Message, opts TypingOptions) *Sequence {
	s := &Sequence{
		typer:    ty,
		target:   target,
		messages: append([]Message(nil), messages...),
		opts:     opts,
		onDone:   opts.OnComplete,
		done:     make(chan struct{}),
	}
	s.opts.OnComplete = nil
	if !alive(target) {
		log.Printf("cadence: sequence target missing, skipping %d messages", len(messages))
		s.state = Finished
		s.close()
		return s
	}
	s.begin()
	return s
}

func (s *Sequence) begin() {
	s.state = Running
	s.index = 0
	s.target.SetText("")
	s.target.RemoveChildren()
	s.next()
}

// next starts the message at s.index, or finishes the sequence.
func (s *Sequence) next() {
	if s.state != Running {
		return
	}
	if !alive(s.target) {
		s.Cancel()
		return
	}
	if s.index >= len(s.messages) {
		s.finish()
		return
	}

	msg := s.messages[s.index]
	line := NewText(fmt.Sprintf("line-%d", s.index), "", "console-line", "glitch")
	line.Y = float64(s.index * LineHeight)
	s.target.AddChild(line)

	if msg.Delay > 0 {
		s.hold(s.typer.ticker.After(msg.Delay, func() { s.typeLine(line, msg) }))
		return
	}
	s.typeLine(line, msg)
}

func (s *Sequence) typeLine(line *Node, msg Message) {
	opts := s.opts
	opts.OnComplete = func() { s.typed(msg) }
	h := s.typer.Type(line, msg.Text, opts)
	s.hold(h)
	// OnStart runs inside Type, before h is owned.
	switch s.state {
	case Paused:
		h.Pause()
	case Running:
	default:
		h.Cancel()
	}
}

// typed runs when the current message finishes typing.
func (s *Sequence) typed(msg Message) {
	s.index++
	if msg.Delay == 0 && s.index < len(s.messages) {
		s.hold(s.typer.ticker.After(DefaultInterDelay, s.next))
		return
	}
	s.next()
}

// hold records h as owned by the sequence.
func (s *Sequence) hold(h Handle) {
	s.owned = append(s.owned, h)
}

func (s *Sequence) finish() {
	s.state = Finished
	s.close()
	if s.onDone != nil {
		s.onDone()
	}
}

func (s *Sequence) close() {
	if !s.closed {
		s.closed = true
		close(s.done)
	}
}

// Done returns a channel closed when the sequence finishes or is cancelled.
// It lets code outside the frame loop wait for completion; the sequence
// itself must still only be controlled from the frame loop.
func (s *Sequence) Done() <-chan struct{} {
	return s.done
}

// Index returns the index of the message currently being processed.
func (s *Sequence) Index() int {
	return s.index
}

// Lines returns the console line nodes created so far.
func (s *Sequence) Lines() []*Node {
	if !alive(s.target) {
		return nil
	}
	return s.target.QueryAll(".console-line")
}

// State reports the sequence's lifecycle state.
func (s *Sequence) State() PlayState {
	return s.state
}

// Pause pauses the current step.
func (s *Sequence) Pause() {
	if s.state != Running {
		return
	}
	s.state = Paused
	for _, h := range s.owned {
		h.Pause()
	}
}

// Resume continues a paused sequence.
func (s *Sequence) Resume() {
	if s.state != Paused {
		return
	}
	s.state = Running
	for _, h := range s.owned {
		h.Resume()
	}
}

// Restart cancels whatever is in flight and types every message again.
// A sequence whose Done channel was already closed keeps it closed.
func (s *Sequence) Restart() {
	if !alive(s.target) {
		return
	}
	cancelAll(s.owned)
	s.owned = nil
	s.begin()
}

// Cancel stops the sequence and everything it started. Idempotent.
func (s *Sequence) Cancel() {
	if s.state != Running && s.state != Paused {
		return
	}
	s.state = Cancelled
	cancelAll(s.owned)
	s.owned = nil
	s.close()
}
