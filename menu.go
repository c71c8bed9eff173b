package cadence

import "fmt"

// Menu layout.
const (
	MenuItemWidth   = 220.0
	MenuItemHeight  = 32.0
	MenuItemSpacing = 44.0
)

// Menu is a vertical list of MenuButtons. Pointer hover drives each button
// directly; keyboard focus (Up/Down, W/S) is forwarded as the button's
// external active flag, and confirm reports the selected entry.
type Menu struct {
	scene   *Scene
	root    *Node
	labels  []string
	nodes   []*Node
	buttons []*MenuButton

	// OnConfirm is called with the confirmed entry.
	OnConfirm func(index int, label string)
}

// NewMenu builds one button per label under a "menu" container attached to
// the scene root. Call Ready once the menu should come alive.
func NewMenu(s *Scene, labels []string, cfg ButtonConfig, rng Rand) *Menu {
	m := &Menu{
		scene:  s,
		root:   NewContainer("menu", "menu"),
		labels: append([]string(nil), labels...),
	}
	m.root.Interactable = true

	for i, label := range m.labels {
		i := i
		node := NewMenuButtonNode(fmt.Sprintf("item-%d", i), label, MenuItemWidth, MenuItemHeight)
		node.SetPosition(0, float64(i)*MenuItemSpacing)
		b := NewMenuButton(s.Ticker(), node, cfg, rng)

		node.OnPointerEnter = func(PointerContext) { b.OnHover() }
		node.OnPointerLeave = func(PointerContext) { b.OnLeave() }
		node.OnFocusChange = b.OnActivate
		node.OnConfirm = func() { m.confirm(i) }

		m.root.AddChild(node)
		m.nodes = append(m.nodes, node)
		m.buttons = append(m.buttons, b)
	}
	s.Root().AddChild(m.root)
	return m
}

// Root returns the menu container.
func (m *Menu) Root() *Node {
	return m.root
}

// Buttons returns the menu's controllers in display order.
func (m *Menu) Buttons() []*MenuButton {
	return m.buttons
}

// Ready selects the first entry and signals every button that its view is
// ready. The selected button activates after ViewReadyDelay.
func (m *Menu) Ready() {
	if len(m.nodes) > 0 {
		m.scene.focus = m.nodes[0]
		m.buttons[0].SetActiveFlag(true)
	}
	for _, b := range m.buttons {
		b.OnViewReady()
	}
}

// Selected returns the focused entry's index, or -1.
func (m *Menu) Selected() int {
	for i, n := range m.nodes {
		if n == m.scene.Focused() {
			return i
		}
	}
	return -1
}

// Select moves keyboard focus to entry i.
func (m *Menu) Select(i int) {
	if i < 0 || i >= len(m.nodes) {
		return
	}
	m.scene.SetFocus(m.nodes[i])
}

func (m *Menu) confirm(i int) {
	if m.OnConfirm != nil {
		m.OnConfirm(i, m.labels[i])
	}
}

// Destroy tears down every button and disposes the menu's nodes.
func (m *Menu) Destroy() {
	for _, b := range m.buttons {
		b.OnDestroy()
	}
	if m.scene.Focused() != nil && isAncestor(m.root, m.scene.Focused()) {
		m.scene.focus = nil
	}
	m.root.Dispose()
}
