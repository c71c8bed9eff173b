package cadence

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr runs fn and returns everything it wrote to os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stderr
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	s.Root().AddChild(parent)

	child := NewRect("child", 10, 10, ColorWhite)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed node, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestReleaseMode_DisposedNodeNoPanic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewRect("child", 10, 10, ColorWhite)
	child.Dispose()
	parent.AddChild(child)
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	out := captureStderr(t, func() {
		cur := s.Root()
		for i := 0; i < debugMaxTreeDepth+1; i++ {
			next := NewContainer(fmt.Sprintf("n%d", i))
			cur.AddChild(next)
			cur = next
		}
	})
	if !strings.Contains(out, "tree depth") {
		t.Errorf("expected depth warning, got %q", out)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	out := captureStderr(t, func() {
		for i := 0; i < debugMaxChildCount+1; i++ {
			s.Root().AddChild(NewContainer("c"))
		}
	})
	if !strings.Contains(out, "children (threshold 1000)") {
		t.Errorf("expected child count warning, got %q", out)
	}
}

func TestDebugLogStats(t *testing.T) {
	s := NewScene()
	s.Root().AddChild(NewContainer("a"))
	s.Ticker().After(time.Second, nil)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	out := captureStderr(t, func() {
		s.Step(10 * ms)
	})
	want := "[cadence] frame: 1 | t: 10ms | live: 1 | scheduled: 1 | nodes: 2"
	if !strings.Contains(out, want) {
		t.Errorf("debug log = %q, want it to contain %q", out, want)
	}
}

func TestCountNodes(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	a.AddChild(NewContainer("b"))
	root.AddChild(a)
	root.AddChild(NewContainer("c"))
	if n := countNodes(root); n != 4 {
		t.Errorf("countNodes = %d, want 4", n)
	}
}
