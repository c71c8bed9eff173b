package cadence

// Property names understood by SetProperty and Property. Timeline steps and
// node tweens address node fields through these.
const (
	PropOpacity  = "opacity"  // Alpha
	PropWidth    = "width"    // Width
	PropHeight   = "height"   // Height
	PropScale    = "scale"    // ScaleX, ScaleY (one component sets both)
	PropPosition = "position" // X, Y
	PropX        = "x"        // X
	PropY        = "y"        // Y
)

// updateWorldTransform recomputes world position and alpha. Positions are
// translation-only: a node's scale affects its own drawn size, not its
// children. parentRecomputed forces recomputation of clean subtrees.
func updateWorldTransform(n *Node, px, py, parentAlpha float64, parentRecomputed bool) {
	recompute := n.dirty || parentRecomputed
	if recompute {
		n.worldX = px + n.X
		n.worldY = py + n.Y
		n.worldAlpha = parentAlpha * n.Alpha
		n.dirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldX, n.worldY, n.worldAlpha, recompute)
	}
}

// --- Property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.dirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.dirty = true
}

// SetSize sets the node's Width and Height and marks it dirty.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
	n.dirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.dirty = true
}

// MarkDirty forces recomputation of world values on the next frame. Useful
// after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// SetProperty writes v to the named property. It reports false, writing
// nothing, for unknown properties or a value with too few components.
func (n *Node) SetProperty(prop string, v Value) bool {
	if len(v) == 0 {
		return false
	}
	switch prop {
	case PropOpacity:
		n.SetAlpha(v[0])
	case PropWidth:
		n.Width = v[0]
		n.dirty = true
	case PropHeight:
		n.Height = v[0]
		n.dirty = true
	case PropScale:
		if len(v) > 1 {
			n.SetScale(v[0], v[1])
		} else {
			n.SetScale(v[0], v[0])
		}
	case PropPosition:
		if len(v) < 2 {
			return false
		}
		n.SetPosition(v[0], v[1])
	case PropX:
		n.X = v[0]
		n.dirty = true
	case PropY:
		n.Y = v[0]
		n.dirty = true
	default:
		return false
	}
	return true
}

// Property reads the named property, or nil if unknown.
func (n *Node) Property(prop string) Value {
	switch prop {
	case PropOpacity:
		return Scalar(n.Alpha)
	case PropWidth:
		return Scalar(n.Width)
	case PropHeight:
		return Scalar(n.Height)
	case PropScale:
		return Point(n.ScaleX, n.ScaleY)
	case PropPosition:
		return Point(n.X, n.Y)
	case PropX:
		return Scalar(n.X)
	case PropY:
		return Scalar(n.Y)
	}
	return nil
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return wx - n.worldX, wy - n.worldY
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return lx + n.worldX, ly + n.worldY
}
