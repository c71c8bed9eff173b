package cadence

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeRect                      // solid rectangle of Width x Height
	NodeTypeText                      // text content drawn with the debug font
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// --- ID counter ---

// nodeIDCounter is a plain counter; nodes are only created on the update goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the visual target the animation layer mutates. A single flat struct
// is used for all node types. Descendants are addressed with class selectors
// (see Query), text content is replaced with SetText, and per-frame property
// writes go through SetProperty or the exported fields directly.
type Node struct {
	// Identity
	ID      uint32
	Name    string
	Type    NodeType
	classes []string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout (local)
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64

	// Computed during traversal
	worldX, worldY float64
	worldAlpha     float64
	dirty          bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool
	Color        Color

	// Text content (NodeTypeText)
	Text string

	// Metadata
	UserData any

	// Hit testing
	HitShape HitShape

	// Per-node callbacks (nil by default)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	OnConfirm      func()
	OnFocusChange  func(focused bool)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.dirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string, classes ...string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer, classes: classes}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid rectangle node.
func NewRect(name string, w, h float64, c Color, classes ...string) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: w, Height: h, classes: classes}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewText creates a text node with the given content.
func NewText(name, content string, classes ...string) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Text: content, classes: classes}
	nodeDefaults(n)
	return n
}

// --- Classes ---

// Classes returns the node's class list. The returned slice MUST NOT be mutated.
func (n *Node) Classes() []string {
	return n.classes
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	for _, have := range n.classes {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass adds c unless already present.
func (n *Node) AddClass(c string) {
	if !n.HasClass(c) {
		n.classes = append(n.classes, c)
	}
}

// RemoveClass removes c if present.
func (n *Node) RemoveClass(c string) {
	for i, have := range n.classes {
		if have == c {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			return
		}
	}
}

// --- Text ---

// SetText replaces the node's text content.
func (n *Node) SetText(s string) {
	if n.Text == s {
		return
	}
	n.Text = s
	n.dirty = true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children. If child already has a
// parent (including this node) it is removed first, so re-adding an existing
// child moves it to the end.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("cadence: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("cadence: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("cadence: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Animations writing to a disposed
// node stop on their next tick.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnConfirm = nil
	n.OnFocusChange = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// alive reports whether n can be written to.
func alive(n *Node) bool {
	return n != nil && !n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets dirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.dirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
