package cadence

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key is a logical navigation key.
type Key uint8

const (
	KeyConfirm Key = iota // Enter / Space: fire OnConfirm on the focused node
	KeyNext               // Down / S / Tab: move focus forward
	KeyPrev               // Up / W / Shift+Tab: move focus backward
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Pointer state ---

type pointerState struct {
	x, y      float64
	inside    bool  // pointer is over the window
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's Width x Height box. Containers
// with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type == NodeTypeContainer || (n.Width == 0 && n.Height == 0) {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order, appending interactable
// nodes to buf. Skips Visible=false, Interactable=false and disposed subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable || n.disposed {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY), or nil.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.focusBuf = collectInteractable(s.root, s.focusBuf[:0])
	for i := len(s.focusBuf) - 1; i >= 0; i-- {
		n := s.focusBuf[i]
		if n == s.root {
			continue
		}
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput consumes one injected event, or polls the real devices when
// the queue is empty and devices is true.
func (s *Scene) processInput(devices bool) {
	if s.processInjectedInput() {
		return
	}
	if !devices {
		return
	}

	mx, my := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && mx >= 0 && my >= 0
	if inside {
		s.processPointer(float64(mx), float64(my))
	} else if s.pointer.inside {
		s.processPointerLeave()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.processKey(KeyConfirm)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		s.processKey(KeyNext)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		s.processKey(KeyPrev)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			s.processKey(KeyPrev)
		} else {
			s.processKey(KeyNext)
		}
	}
}

// processPointer moves the pointer to (x, y) and fires enter/leave when the
// hovered node changes.
func (s *Scene) processPointer(x, y float64) {
	ps := &s.pointer
	ps.x, ps.y = x, y
	ps.inside = true

	target := s.hitTest(x, y)
	if target == ps.hoverNode {
		return
	}
	if prev := ps.hoverNode; alive(prev) && prev.OnPointerLeave != nil {
		lx, ly := prev.WorldToLocal(x, y)
		prev.OnPointerLeave(PointerContext{Node: prev, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly})
	}
	ps.hoverNode = target
	if target != nil && target.OnPointerEnter != nil {
		lx, ly := target.WorldToLocal(x, y)
		target.OnPointerEnter(PointerContext{Node: target, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly})
	}
}

// processPointerLeave handles the pointer leaving the window.
func (s *Scene) processPointerLeave() {
	ps := &s.pointer
	ps.inside = false
	if prev := ps.hoverNode; alive(prev) && prev.OnPointerLeave != nil {
		lx, ly := prev.WorldToLocal(ps.x, ps.y)
		prev.OnPointerLeave(PointerContext{Node: prev, GlobalX: ps.x, GlobalY: ps.y, LocalX: lx, LocalY: ly})
	}
	ps.hoverNode = nil
}

// Hovered returns the node under the pointer, or nil.
func (s *Scene) Hovered() *Node {
	return s.pointer.hoverNode
}

// --- Focus ---

// Focused returns the keyboard-focused node, or nil.
func (s *Scene) Focused() *Node {
	if !alive(s.focus) {
		return nil
	}
	return s.focus
}

// SetFocus moves keyboard focus to n (nil clears it), notifying the old and
// new node through OnFocusChange.
func (s *Scene) SetFocus(n *Node) {
	if n == s.focus {
		return
	}
	prev := s.focus
	s.focus = n
	if alive(prev) && prev.OnFocusChange != nil {
		prev.OnFocusChange(false)
	}
	if alive(n) && n.OnFocusChange != nil {
		n.OnFocusChange(true)
	}
}

// focusable returns the nodes that accept confirm, in document order.
func (s *Scene) focusable() []*Node {
	var out []*Node
	for _, n := range collectInteractable(s.root, nil) {
		if n.OnConfirm != nil {
			out = append(out, n)
		}
	}
	return out
}

func (s *Scene) processKey(k Key) {
	switch k {
	case KeyConfirm:
		target := s.pointer.hoverNode
		if !alive(target) || target.OnConfirm == nil {
			target = s.Focused()
		}
		if target != nil && target.OnConfirm != nil {
			target.OnConfirm()
		}
	case KeyNext, KeyPrev:
		nodes := s.focusable()
		if len(nodes) == 0 {
			return
		}
		idx := -1
		for i, n := range nodes {
			if n == s.focus {
				idx = i
				break
			}
		}
		// Focus stops at either end of the list.
		switch {
		case idx < 0:
			idx = 0
		case k == KeyNext && idx < len(nodes)-1:
			idx++
		case k == KeyPrev && idx > 0:
			idx--
		}
		s.SetFocus(nodes[idx])
	}
}
