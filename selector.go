package cadence

import (
	"strings"
)

// compound is one selector component: an optional #name plus classes.
type compound struct {
	name    string
	classes []string
}

// parseSelector splits a selector such as ".ornamental .line-segment.left"
// into whitespace-separated compounds. Each compound may carry "#name" and
// any number of ".class" parts.
func parseSelector(sel string) []compound {
	fields := strings.Fields(sel)
	out := make([]compound, 0, len(fields))
	for _, f := range fields {
		var c compound
		for len(f) > 0 {
			kind := f[0]
			f = f[1:]
			end := strings.IndexAny(f, ".#")
			if end < 0 {
				end = len(f)
			}
			part := f[:end]
			f = f[end:]
			switch kind {
			case '.':
				if part != "" {
					c.classes = append(c.classes, part)
				}
			case '#':
				c.name = part
			default:
				// Bare identifiers are treated as names.
				c.name = string(kind) + part
			}
		}
		out = append(out, c)
	}
	return out
}

func (c compound) matches(n *Node) bool {
	if c.name != "" && n.Name != c.name {
		return false
	}
	for _, cl := range c.classes {
		if !n.HasClass(cl) {
			return false
		}
	}
	return true
}

// matchesChain reports whether n matches the last compound and each earlier
// compound matches some ancestor strictly below root, in order.
func matchesChain(root, n *Node, chain []compound) bool {
	last := len(chain) - 1
	if !chain[last].matches(n) {
		return false
	}
	i := last - 1
	for p := n.Parent; i >= 0 && p != nil && p != root; p = p.Parent {
		if chain[i].matches(p) {
			i--
		}
	}
	return i < 0
}

// Query returns the first descendant (depth-first, document order) matching
// sel, or nil. Disposed nodes are never returned.
func (n *Node) Query(sel string) *Node {
	if !alive(n) {
		return nil
	}
	chain := parseSelector(sel)
	if len(chain) == 0 {
		return nil
	}
	var found *Node
	walkDescendants(n, func(d *Node) bool {
		if matchesChain(n, d, chain) {
			found = d
			return false
		}
		return true
	})
	return found
}

// QueryAll returns every descendant matching sel in document order.
func (n *Node) QueryAll(sel string) []*Node {
	if !alive(n) {
		return nil
	}
	chain := parseSelector(sel)
	if len(chain) == 0 {
		return nil
	}
	var out []*Node
	walkDescendants(n, func(d *Node) bool {
		if matchesChain(n, d, chain) {
			out = append(out, d)
		}
		return true
	})
	return out
}

// walkDescendants visits descendants depth-first until fn returns false.
func walkDescendants(n *Node, fn func(*Node) bool) bool {
	for _, c := range n.children {
		if !fn(c) {
			return false
		}
		if !walkDescendants(c, fn) {
			return false
		}
	}
	return true
}
