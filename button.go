package cadence

import (
	"log"
	"time"

	"github.com/tanema/gween/ease"
)

// ActivationState is the state of a MenuButton's decoration.
type ActivationState uint8

const (
	Inactive ActivationState = iota
	Activating
	Active
	Deactivating
)

var activationNames = [...]string{"inactive", "activating", "active", "deactivating"}

func (s ActivationState) String() string {
	if int(s) < len(activationNames) {
		return activationNames[s]
	}
	return "unknown"
}

// ButtonConfig toggles a MenuButton's sub-effects.
type ButtonConfig struct {
	ShowParticles      bool `yaml:"showParticles"`
	ShowOrnamentalLine bool `yaml:"showOrnamentalLine"`
	ParticleCount      int  `yaml:"particleCount"`
}

// DefaultButtonConfig returns the configuration used when none is given.
func DefaultButtonConfig() ButtonConfig {
	return ButtonConfig{ShowParticles: true, ShowOrnamentalLine: true, ParticleCount: 10}
}

// Activation timing.
const (
	LineWidth             = 80.0
	ContainerFadeDuration = 200 * time.Millisecond
	LineExpandDuration    = 400 * time.Millisecond
	DotAppearDuration     = 300 * time.Millisecond
	DotAppearDelay        = 200 * time.Millisecond
	CenterLineDuration    = 400 * time.Millisecond
	CenterLineDelay       = 100 * time.Millisecond
	DeactivationDuration  = 300 * time.Millisecond
	DotVanishDuration     = 200 * time.Millisecond
	ViewReadyDelay        = 150 * time.Millisecond
	CenterLineOpacity     = 0.6
)

// Element selectors addressed by the activation timelines.
const (
	SelOrnamentalLine = ".ornamental-line"
	SelLineLeft       = ".line-segment.left"
	SelLineRight      = ".line-segment.right"
	SelLineCenter     = ".line-segment.center"
	SelDot            = ".dot"
	SelParticles      = ".particles"
	SelParticle       = ".particle"
)

// MenuButton drives a menu entry's ornamental line and particle decoration
// through Inactive → Activating → Active → Deactivating → Inactive.
//
// The button owns at most one timeline and one particle animation set at any
// time. Every trigger cancels whatever the opposite direction left running
// before it starts its own animations.
type MenuButton struct {
	ticker    *Ticker
	node      *Node
	cfg       ButtonConfig
	particles *ParticleField

	state    ActivationState
	hovered  bool
	external bool

	timeline  *Timeline
	particleH []Handle
	pending   *Tween
	joins     int

	destroyed bool

	// OnStateChange, when set, is called after every state transition.
	OnStateChange func(from, to ActivationState)
}

// NewMenuButton binds a controller to node, the button element. The
// decorations are looked up below node with the Sel* selectors; missing ones
// are skipped. rng seeds particle placement (nil uses the global source).
func NewMenuButton(t *Ticker, node *Node, cfg ButtonConfig, rng Rand) *MenuButton {
	if cfg.ParticleCount < 0 {
		log.Printf("cadence: particle count %d is negative, using 0", cfg.ParticleCount)
		cfg.ParticleCount = 0
	}
	return &MenuButton{
		ticker:    t,
		node:      node,
		cfg:       cfg,
		particles: NewParticleField(t, rng),
	}
}

// State returns the current activation state.
func (b *MenuButton) State() ActivationState {
	return b.state
}

// Node returns the button element.
func (b *MenuButton) Node() *Node {
	return b.node
}

// Particles returns the button's particle field.
func (b *MenuButton) Particles() *ParticleField {
	return b.particles
}

// Timeline returns the timeline currently owned by the button, or nil.
func (b *MenuButton) Timeline() *Timeline {
	return b.timeline
}

// Hovered reports whether the pointer is over the button.
func (b *MenuButton) Hovered() bool {
	return b.hovered
}

// --- Triggers ---

// OnViewReady creates the particle nodes and, when the button is externally
// active, schedules activation shortly afterwards. A particle set already in
// use by a transition is kept.
func (b *MenuButton) OnViewReady() {
	if b.destroyed {
		return
	}
	if b.state == Inactive {
		b.initParticles()
	}
	if b.external {
		b.cancelPending()
		b.pending = b.ticker.After(ViewReadyDelay, func() {
			b.pending = nil
			b.Activate()
		})
	}
}

// SetActiveFlag records the externally driven active flag without starting
// a transition. Set it before OnViewReady to have the view activate once
// ready.
func (b *MenuButton) SetActiveFlag(active bool) {
	b.external = active
}

// OnHover activates an inactive button.
func (b *MenuButton) OnHover() {
	if b.destroyed {
		return
	}
	b.hovered = true
	if !b.activeSide() {
		b.Activate()
	}
}

// OnLeave deactivates an active button.
func (b *MenuButton) OnLeave() {
	if b.destroyed {
		return
	}
	b.hovered = false
	if b.activeSide() {
		b.Deactivate()
	}
}

// OnActivate follows an externally driven active flag (keyboard selection).
// It is ignored while the pointer hovers the button.
func (b *MenuButton) OnActivate(active bool) {
	if b.destroyed {
		return
	}
	b.external = active
	b.cancelPending()
	if b.hovered {
		return
	}
	if active {
		b.Activate()
	} else {
		b.Deactivate()
	}
}

// OnDestroy cancels every animation the button owns. Later triggers are
// ignored. Safe to call more than once.
func (b *MenuButton) OnDestroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.stopAll()
	b.cancelPending()
	b.setState(Inactive)
}

// --- Transitions ---

// Activate plays the activation choreography. Valid from Inactive and
// Deactivating; it reports whether a transition started.
func (b *MenuButton) Activate() bool {
	if b.destroyed || b.activeSide() {
		return false
	}
	b.stopAll()
	b.setState(Activating)

	if b.cfg.ShowParticles {
		b.particleH = b.particles.Animate(b.writeParticle)
	}

	line := b.line()
	if line == nil {
		b.setState(Active)
		return true
	}

	b.timeline = b.ticker.Compose(b.activationSteps(line), func() {
		b.timeline = nil
		b.setState(Active)
	})
	return true
}

// Deactivate plays the mirrored shrink/fade choreography and fades the
// particles out. Valid from Active and Activating; it reports whether a
// transition started.
func (b *MenuButton) Deactivate() bool {
	if b.destroyed || !b.activeSide() {
		return false
	}
	b.stopAll()
	b.setState(Deactivating)

	b.joins = 0
	if b.cfg.ShowParticles && b.particles.Len() > 0 {
		b.joins++
		b.particleH = []Handle{b.particles.FadeOut(DeactivationDuration, b.writeParticle, b.joined)}
	}
	if line := b.line(); line != nil {
		b.joins++
		b.timeline = b.ticker.Compose(b.deactivationSteps(line), func() {
			b.timeline = nil
			b.joined()
		})
	}
	if b.joins == 0 {
		b.settleInactive()
	}
	return true
}

// joined counts down the deactivation animations.
func (b *MenuButton) joined() {
	b.joins--
	if b.joins == 0 && b.state == Deactivating {
		b.settleInactive()
	}
}

func (b *MenuButton) settleInactive() {
	b.particles.CancelAll()
	b.particleH = nil
	b.setState(Inactive)
}

func (b *MenuButton) activationSteps(line *Node) []TimelineStep {
	segments := b.queryAll(line, SelLineLeft, SelLineRight)
	center := b.queryAll(line, SelLineCenter)
	dots := b.queryAll(line, SelDot)

	return []TimelineStep{
		{
			Tween: TweenSpec{Property: PropOpacity, From: Scalar(line.Alpha), To: Scalar(1),
				Duration: ContainerFadeDuration, Easing: ease.OutQuad},
			Targets: []*Node{line},
		},
		{
			Tween: TweenSpec{Property: PropWidth, From: Scalar(firstWidth(segments)), To: Scalar(LineWidth),
				Duration: LineExpandDuration, Easing: ease.OutExpo},
			Offset:  -ContainerFadeDuration / 2,
			Targets: segments,
		},
		{
			Tween: TweenSpec{Property: PropOpacity, From: Scalar(firstAlpha(center)), To: Scalar(CenterLineOpacity),
				Duration: CenterLineDuration, Easing: ease.OutQuad},
			Offset:  -(LineExpandDuration - CenterLineDelay),
			Targets: center,
		},
		{
			Tween: TweenSpec{Property: PropOpacity, From: Scalar(firstAlpha(dots)), To: Scalar(1),
				Duration: DotAppearDuration, Easing: ease.OutBack},
			Offset:  -(LineExpandDuration - DotAppearDelay),
			Targets: dots,
		},
		{
			Tween: TweenSpec{Property: PropScale, From: Scalar(firstScale(dots)), To: Scalar(1),
				Duration: DotAppearDuration, Easing: ease.OutBack},
			Align:   AlignStart,
			Targets: dots,
		},
	}
}

func (b *MenuButton) deactivationSteps(line *Node) []TimelineStep {
	segments := b.queryAll(line, SelLineLeft, SelLineRight)
	center := b.queryAll(line, SelLineCenter)
	dots := b.queryAll(line, SelDot)

	at0 := func(st TimelineStep) TimelineStep {
		st.Align = AlignStart
		return st
	}
	return []TimelineStep{
		{
			Tween: TweenSpec{Property: PropOpacity, From: Scalar(line.Alpha), To: Scalar(0),
				Duration: DeactivationDuration, Easing: ease.OutQuad},
			Targets: []*Node{line},
		},
		at0(TimelineStep{
			Tween: TweenSpec{Property: PropWidth, From: Scalar(firstWidth(segments)), To: Scalar(0),
				Duration: DeactivationDuration, Easing: ease.InExpo},
			Targets: segments,
		}),
		at0(TimelineStep{
			Tween: TweenSpec{Property: PropOpacity, From: Scalar(firstAlpha(center)), To: Scalar(0),
				Duration: DeactivationDuration, Easing: ease.OutQuad},
			Targets: center,
		}),
		at0(TimelineStep{
			Tween: TweenSpec{Property: PropOpacity, From: Scalar(firstAlpha(dots)), To: Scalar(0),
				Duration: DotVanishDuration, Easing: ease.InBack},
			Targets: dots,
		}),
		at0(TimelineStep{
			Tween: TweenSpec{Property: PropScale, From: Scalar(firstScale(dots)), To: Scalar(0),
				Duration: DotVanishDuration, Easing: ease.InBack},
			Targets: dots,
		}),
	}
}

// --- Helpers ---

func (b *MenuButton) activeSide() bool {
	return b.state == Activating || b.state == Active
}

func (b *MenuButton) setState(s ActivationState) {
	if b.state == s {
		return
	}
	from := b.state
	b.state = s
	if b.OnStateChange != nil {
		b.OnStateChange(from, s)
	}
}

// stopAll cancels the owned timeline and particle animations.
func (b *MenuButton) stopAll() {
	if b.timeline != nil {
		b.timeline.Cancel()
		b.timeline = nil
	}
	b.particles.CancelAll()
	b.particleH = nil
}

func (b *MenuButton) cancelPending() {
	if b.pending != nil {
		b.pending.Cancel()
		b.pending = nil
	}
}

// line returns the ornamental line container when it is enabled and present.
func (b *MenuButton) line() *Node {
	if !b.cfg.ShowOrnamentalLine || !alive(b.node) {
		return nil
	}
	line := b.node.Query(SelOrnamentalLine)
	if line == nil {
		log.Printf("cadence: button %q has no %s element", b.node.Name, SelOrnamentalLine)
	}
	return line
}

// queryAll gathers the matches of several selectors below root, logging the
// ones that match nothing.
func (b *MenuButton) queryAll(root *Node, sels ...string) []*Node {
	var out []*Node
	for _, sel := range sels {
		found := root.QueryAll(sel)
		if len(found) == 0 {
			log.Printf("cadence: button %q has no %s element, skipping", b.node.Name, sel)
		}
		out = append(out, found...)
	}
	return out
}

// initParticles draws the particle set and builds one node per particle
// under the particles container.
func (b *MenuButton) initParticles() {
	if !b.cfg.ShowParticles || !alive(b.node) {
		return
	}
	b.particles.Init(b.cfg.ParticleCount)
	box := b.node.Query(SelParticles)
	if box == nil {
		log.Printf("cadence: button %q has no %s element", b.node.Name, SelParticles)
		return
	}
	for _, old := range box.QueryAll(SelParticle) {
		old.Dispose()
	}
	for _, p := range b.particles.Particles() {
		n := NewRect("particle", 2, 2, ColorWhite, "particle")
		n.UserData = p.ID
		n.SetAlpha(0)
		n.SetScale(0, 0)
		box.AddChild(n)
	}
}

// writeParticle maps a particle frame onto its node. Positions are
// percentages of the particles container.
func (b *MenuButton) writeParticle(p Particle, fr ParticleFrame) {
	box := b.node.Query(SelParticles)
	if box == nil {
		return
	}
	nodes := box.QueryAll(SelParticle)
	if p.ID >= len(nodes) {
		return
	}
	n := nodes[p.ID]
	n.SetPosition(fr.Pos.X/100*box.Width, fr.Pos.Y/100*box.Height)
	n.SetAlpha(fr.Opacity)
	n.SetScale(fr.Scale, fr.Scale)
}

func firstAlpha(ns []*Node) float64 {
	if len(ns) == 0 {
		return 0
	}
	return ns[0].Alpha
}

func firstWidth(ns []*Node) float64 {
	if len(ns) == 0 {
		return 0
	}
	return ns[0].Width
}

func firstScale(ns []*Node) float64 {
	if len(ns) == 0 {
		return 0
	}
	return ns[0].ScaleX
}

// NewMenuButtonNode builds the element tree a MenuButton expects: a label,
// an ornamental line with left/right/center segments and two dots, and a
// particles container. Decorations start hidden.
func NewMenuButtonNode(name, label string, w, h float64) *Node {
	root := NewContainer(name, "menu-button")
	root.Width, root.Height = w, h
	root.HitShape = Rect{Width: w, Height: h}
	root.Interactable = true

	text := NewText(name+"-label", label, "label")
	text.SetPosition(12, h/2-8)
	root.AddChild(text)

	line := NewContainer(name+"-line", "ornamental-line")
	line.SetPosition(w/2, h-6)
	line.SetAlpha(0)
	root.AddChild(line)

	left := NewRect("left", 0, 1, ColorWhite, "line-segment", "left")
	left.SetPosition(-LineWidth-6, 0)
	right := NewRect("right", 0, 1, ColorWhite, "line-segment", "right")
	right.SetPosition(6, 0)
	center := NewRect("center", 8, 1, ColorWhite, "line-segment", "center")
	center.SetPosition(-4, 0)
	center.SetAlpha(0)
	line.AddChild(left)
	line.AddChild(right)
	line.AddChild(center)

	for i, x := range [...]float64{-LineWidth - 10, LineWidth + 8} {
		dot := NewRect("dot", 3, 3, ColorWhite, "dot")
		dot.UserData = i
		dot.SetPosition(x, -1)
		dot.SetAlpha(0)
		dot.SetScale(0, 0)
		line.AddChild(dot)
	}

	box := NewContainer(name+"-particles", "particles")
	box.Width, box.Height = w, h
	root.AddChild(box)
	return root
}
