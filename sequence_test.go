package cadence

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func lineTexts(s *Sequence) []string {
	var out []string
	for _, l := range s.Lines() {
		out = append(out, l.Text)
	}
	return out
}

func TestSequenceTiming(t *testing.T) {
	tk := NewTicker()
	target := NewContainer("console")
	target.AddChild(NewText("old", "old"))
	done := 0
	seq := NewTyper(tk).Sequence(target, []Message{{Text: "AB"}, {Text: "CD"}}, TypingOptions{
		Duration:   200 * ms,
		OnComplete: func() { done++ },
	})

	if n := len(seq.Lines()); n != 1 {
		t.Fatalf("lines at start = %d, want 1", n)
	}
	if target.Query("#old") != nil {
		t.Error("target not cleared")
	}

	tk.Run(10*ms, 490*ms, nil)
	if n := len(seq.Lines()); n != 1 {
		t.Errorf("lines at 490ms = %d, want 1", n)
	}
	if seq.Index() != 1 {
		t.Errorf("Index = %d, want 1", seq.Index())
	}

	tk.Run(10*ms, 10*ms, nil)
	if n := len(seq.Lines()); n != 2 {
		t.Errorf("lines at 500ms = %d, want 2", n)
	}

	elapsed := tk.Run(10*ms, time.Second, func() bool { return seq.State() == Finished })
	if got := tk.Now(); got != 700*ms {
		t.Errorf("finished at %v (ran %v), want 700ms", got, elapsed)
	}
	if done != 1 || !isClosed(seq.Done()) {
		t.Errorf("done = %d, closed = %v", done, isClosed(seq.Done()))
	}
	if diff := cmp.Diff([]string{"AB", "CD"}, lineTexts(seq)); diff != "" {
		t.Errorf("line texts mismatch (-want +got):\n%s", diff)
	}
	lines := seq.Lines()
	if lines[1].Y != LineHeight || !lines[1].HasClass("glitch") {
		t.Errorf("line-1 Y = %v, classes = %v", lines[1].Y, lines[1].Classes())
	}
}

func TestSequenceExplicitDelay(t *testing.T) {
	tk := NewTicker()
	target := NewContainer("console")
	seq := NewTyper(tk).Sequence(target, []Message{
		{Text: "A"},
		{Text: "B", Delay: 250 * ms},
		{Text: "C", Delay: 50 * ms},
	}, TypingOptions{Duration: 100 * ms})

	tk.Run(10*ms, time.Second, func() bool { return seq.State() == Finished })
	// A: 0-100, inter delay to 400, B delay to 650, typed by 750,
	// C delay to 800, typed by 900.
	if tk.Now() != 900*ms {
		t.Errorf("finished at %v, want 900ms", tk.Now())
	}
}

func TestSequenceCancel(t *testing.T) {
	tk := NewTicker()
	target := NewContainer("console")
	done := false
	seq := NewTyper(tk).Sequence(target, []Message{{Text: "AB"}, {Text: "CD"}}, TypingOptions{
		Duration:   100 * ms,
		OnComplete: func() { done = true },
	})
	tk.Advance(50 * ms)
	seq.Cancel()
	seq.Cancel()
	if !isClosed(seq.Done()) || seq.State() != Cancelled {
		t.Errorf("closed = %v, state = %v", isClosed(seq.Done()), seq.State())
	}
	tk.Run(10*ms, 2*time.Second, nil)
	if done || len(seq.Lines()) != 1 {
		t.Errorf("done = %v, lines = %d", done, len(seq.Lines()))
	}
	if tk.Live() != 0 {
		t.Errorf("Live = %d, want 0", tk.Live())
	}
}

func TestSequenceCancelFromOnStart(t *testing.T) {
	tk := NewTicker()
	target := NewContainer("console")
	starts := 0
	var seq *Sequence
	seq = NewTyper(tk).Sequence(target, []Message{{Text: "AB"}, {Text: "HELLO"}}, TypingOptions{
		Duration: 100 * ms,
		OnStart: func() {
			starts++
			if starts == 2 {
				seq.Cancel()
			}
		},
	})

	tk.Run(10*ms, 400*ms, nil)
	if starts != 2 || seq.State() != Cancelled {
		t.Fatalf("starts = %d, state = %v", starts, seq.State())
	}
	tk.Run(10*ms, time.Second, nil)
	if diff := cmp.Diff([]string{"AB", ""}, lineTexts(seq)); diff != "" {
		t.Errorf("line texts mismatch (-want +got):\n%s", diff)
	}
	if tk.Live() != 0 {
		t.Errorf("Live = %d, want 0", tk.Live())
	}
}

func TestSequencePauseFromOnStart(t *testing.T) {
	tk := NewTicker()
	target := NewContainer("console")
	starts := 0
	var seq *Sequence
	seq = NewTyper(tk).Sequence(target, []Message{{Text: "AB"}, {Text: "CD"}}, TypingOptions{
		Duration: 100 * ms,
		OnStart: func() {
			starts++
			if starts == 2 {
				seq.Pause()
			}
		},
	})

	tk.Run(10*ms, time.Second, nil)
	if seq.State() != Paused || seq.Lines()[1].Text != "" {
		t.Fatalf("state = %v, line-1 = %q", seq.State(), seq.Lines()[1].Text)
	}
	seq.Resume()
	tk.Run(10*ms, 100*ms, nil)
	if seq.State() != Finished {
		t.Errorf("state = %v, want finished", seq.State())
	}
	if diff := cmp.Diff([]string{"AB", "CD"}, lineTexts(seq)); diff != "" {
		t.Errorf("line texts mismatch (-want +got):\n%s", diff)
	}
}

func TestSequencePauseResume(t *testing.T) {
	tk := NewTicker()
	target := NewContainer("console")
	seq := NewTyper(tk).Sequence(target, []Message{{Text: "AB"}}, TypingOptions{Duration: 100 * ms})
	tk.Advance(50 * ms)
	seq.Pause()
	tk.Advance(time.Second)
	if seq.State() != Paused || seq.Lines()[0].Text != "A" {
		t.Errorf("state = %v, text = %q", seq.State(), seq.Lines()[0].Text)
	}
	seq.Resume()
	tk.Advance(50 * ms)
	if seq.State() != Finished {
		t.Errorf("state = %v, want finished", seq.State())
	}
}

func TestSequenceRestart(t *testing.T) {
	tk := NewTicker()
	target := NewContainer("console")
	seq := NewTyper(tk).Sequence(target, []Message{{Text: "A"}, {Text: "B"}}, TypingOptions{Duration: 100 * ms})
	tk.Run(10*ms, 450*ms, nil)
	seq.Restart()
	if n := len(seq.Lines()); n != 1 || seq.Index() != 0 {
		t.Errorf("after Restart: lines = %d, index = %d", n, seq.Index())
	}
	tk.Run(10*ms, time.Second, func() bool { return seq.State() == Finished })
	if diff := cmp.Diff([]string{"A", "B"}, lineTexts(seq)); diff != "" {
		t.Errorf("line texts mismatch (-want +got):\n%s", diff)
	}
}

func TestSequenceMissingTarget(t *testing.T) {
	called := false
	seq := NewTyper(NewTicker()).Sequence(nil, []Message{{Text: "x"}}, TypingOptions{OnComplete: func() { called = true }})
	if !isClosed(seq.Done()) || seq.State() != Finished {
		t.Errorf("closed = %v, state = %v", isClosed(seq.Done()), seq.State())
	}
	if called {
		t.Error("OnComplete fired for a missing target")
	}
	if seq.Lines() != nil {
		t.Error("Lines should be nil")
	}
}

func TestSequenceEmpty(t *testing.T) {
	done := false
	seq := NewTyper(NewTicker()).Sequence(NewContainer("c"), nil, TypingOptions{OnComplete: func() { done = true }})
	if !done || seq.State() != Finished {
		t.Errorf("done = %v, state = %v", done, seq.State())
	}
}
