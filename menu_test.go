package cadence

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestMenu(t *testing.T) (*Scene, *Menu) {
	t.Helper()
	s := NewScene()
	m := NewMenu(s, []string{"About Me", "Projects", "Skills", "Contact"}, DefaultButtonConfig(), NewRand(4))
	return s, m
}

func stepFor(s *Scene, d time.Duration) {
	for end := s.Ticker().Now() + d; s.Ticker().Now() < end; {
		s.Step(10 * ms)
	}
}

func buttonStates(m *Menu) []string {
	var out []string
	for _, b := range m.Buttons() {
		out = append(out, b.State().String())
	}
	return out
}

func TestNewMenuLayout(t *testing.T) {
	s, m := newTestMenu(t)
	if m.Root().Parent != s.Root() {
		t.Error("menu not attached to the scene root")
	}
	if len(m.Buttons()) != 4 {
		t.Fatalf("buttons = %d, want 4", len(m.Buttons()))
	}
	item := s.Root().Query("#item-2")
	if item == nil || item.Y != 2*MenuItemSpacing {
		t.Fatalf("item-2 = %v", item)
	}
	if label := item.Query(".label"); label == nil || label.Text != "Skills" {
		t.Errorf("label = %v", label)
	}
	if m.Selected() != -1 {
		t.Errorf("Selected before Ready = %d, want -1", m.Selected())
	}
}

func TestMenuReadyActivatesFirst(t *testing.T) {
	s, m := newTestMenu(t)
	m.Ready()
	if m.Selected() != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected())
	}
	for _, b := range m.Buttons() {
		if n := len(b.Node().QueryAll(SelParticle)); n != 10 {
			t.Errorf("%s particles = %d, want 10", b.Node().Name, n)
		}
	}

	stepFor(s, 140*ms)
	if m.Buttons()[0].State() != Inactive {
		t.Errorf("state at 140ms = %v, want inactive", m.Buttons()[0].State())
	}
	stepFor(s, 10*ms)
	if m.Buttons()[0].State() != Activating {
		t.Errorf("state at 150ms = %v, want activating", m.Buttons()[0].State())
	}
	stepFor(s, 700*ms)
	want := []string{"active", "inactive", "inactive", "inactive"}
	if diff := cmp.Diff(want, buttonStates(m)); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuKeyboardNavigation(t *testing.T) {
	s, m := newTestMenu(t)
	m.Ready()
	stepFor(s, 900*ms)

	s.InjectKey(KeyNext)
	s.Step(10 * ms)
	if m.Selected() != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected())
	}
	want := []string{"deactivating", "activating", "inactive", "inactive"}
	if diff := cmp.Diff(want, buttonStates(m)); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}

	stepFor(s, 700*ms)
	want = []string{"inactive", "active", "inactive", "inactive"}
	if diff := cmp.Diff(want, buttonStates(m)); diff != "" {
		t.Errorf("states mismatch (-want +got):\n%s", diff)
	}

	var confirmed []string
	m.OnConfirm = func(i int, label string) { confirmed = append(confirmed, label) }
	s.InjectKey(KeyConfirm)
	s.Step(10 * ms)
	if diff := cmp.Diff([]string{"Projects"}, confirmed); diff != "" {
		t.Errorf("confirmed mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuHover(t *testing.T) {
	s, m := newTestMenu(t)
	m.Ready()
	stepFor(s, 900*ms)

	var confirmed []int
	m.OnConfirm = func(i int, _ string) { confirmed = append(confirmed, i) }
	s.InjectHover(s.Root().Query("#item-2"))
	s.Step(10 * ms)
	if !m.Buttons()[2].Hovered() || m.Buttons()[2].State() != Activating {
		t.Errorf("item-2 hovered = %v, state = %v", m.Buttons()[2].Hovered(), m.Buttons()[2].State())
	}
	// Keyboard focus stays on the first entry.
	if m.Buttons()[0].State() != Active {
		t.Errorf("item-0 state = %v, want active", m.Buttons()[0].State())
	}

	s.InjectKey(KeyConfirm)
	s.Step(10 * ms)
	if diff := cmp.Diff([]int{2}, confirmed); diff != "" {
		t.Errorf("confirmed mismatch (-want +got):\n%s", diff)
	}

	s.InjectLeave()
	s.Step(10 * ms)
	if m.Buttons()[2].State() != Deactivating {
		t.Errorf("item-2 state after leave = %v, want deactivating", m.Buttons()[2].State())
	}
}

func TestMenuSelect(t *testing.T) {
	s, m := newTestMenu(t)
	m.Ready()
	m.Select(3)
	m.Select(9)
	if m.Selected() != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected())
	}
	if m.Buttons()[3].State() != Activating {
		t.Errorf("item-3 state = %v, want activating", m.Buttons()[3].State())
	}
	// The pending view-ready activation of item-0 was dropped.
	stepFor(s, time.Second)
	if m.Buttons()[0].State() != Inactive {
		t.Errorf("item-0 state = %v, want inactive", m.Buttons()[0].State())
	}
}

func TestMenuDestroy(t *testing.T) {
	s, m := newTestMenu(t)
	m.Ready()
	stepFor(s, 300*ms)
	m.Destroy()
	if s.Ticker().Live() != 0 {
		t.Errorf("Live = %d, want 0", s.Ticker().Live())
	}
	if !m.Root().IsDisposed() || s.Focused() != nil {
		t.Error("menu not torn down")
	}
	stepFor(s, 100*ms)
}
