package cadence

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, the shared Ticker,
// input state and the draw hooks.
type Scene struct {
	root   *Node
	ticker *Ticker
	debug  bool

	// ClearColor fills the screen before the tree is drawn. Zero alpha skips
	// the fill.
	ClearColor Color

	updateFunc  func() error
	overlayFunc func(screen *ebiten.Image)

	// Input state
	pointer     pointerState
	focus       *Node
	injectQueue []syntheticEvent
	focusBuf    []*Node

	script *ScriptRunner
}

// NewScene creates a new scene with a pre-created root container and its own
// Ticker.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:   root,
		ticker: NewTicker(),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Ticker returns the scene's animation clock. Every controller attached to
// the scene's nodes should schedule on it.
func (s *Scene) Ticker() *Ticker {
	return s.ticker
}

// SetUpdateFunc registers a callback run at the end of every Update, after
// animations have advanced.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetOverlayFunc registers a callback run after the tree is drawn. Effects
// that are not nodes (scan lines, aberration fringes) draw here.
func (s *Scene) SetOverlayFunc(fn func(screen *ebiten.Image)) {
	s.overlayFunc = fn
}

// Update is the per-tick entry point under Ebitengine. It reads devices and
// advances the scene by one tick at the current TPS.
func (s *Scene) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	return s.step(dt, true)
}

// Step advances the scene by dt without reading real devices. Injected
// events and the attached script still run. Used for headless playback and
// tests.
func (s *Scene) Step(dt time.Duration) error {
	return s.step(dt, false)
}

func (s *Scene) step(dt time.Duration, devices bool) error {
	if s.script != nil {
		s.script.step(s)
	}

	// Refresh world positions first so hit testing sees this frame's layout.
	updateWorldTransform(s.root, 0, 0, 1, false)
	s.processInput(devices)
	s.ticker.Advance(dt)

	if s.debug {
		s.debugLog(debugStats{
			frame:     s.ticker.Frame(),
			now:       s.ticker.Now(),
			live:      s.ticker.Live(),
			scheduled: s.ticker.Len(),
			nodes:     countNodes(s.root),
		})
	}

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame scheduler stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// TPS overrides Ebitengine's tick rate when positive.
	TPS int
}

type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error { return g.scene.Update() }

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		drawFPS(screen)
	}
}

func (g *game) Layout(_, _ int) (int, int) { return g.cfg.Width, g.cfg.Height }

// Run opens a window and drives scene until the window closes or an update
// callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return ebiten.RunGame(&game{scene: scene, cfg: cfg})
}
