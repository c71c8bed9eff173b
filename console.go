package cadence

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Console overlay colors.
var (
	scanLineColor = Color{R: 0.55, G: 0.9, B: 1, A: 1}
	redFringe     = Color{R: 1, G: 0.1, B: 0.1, A: 1}
	blueFringe    = Color{R: 0.1, G: 0.3, B: 1, A: 1}
)

const (
	scanLineAlpha = 0.35
	fringeAlpha   = 0.45
)

// Console is the loading screen: a typed diagnostic sequence under a
// scan-line flicker and a breathing chromatic aberration on the text.
type Console struct {
	scene      *Scene
	cfg        Config
	output     *Node
	typer      *Typer
	scanLines  *ScanLineField
	aberration *Aberration

	seq     *Sequence
	pending *Tween
	done    bool
	scratch *ebiten.Image

	// OnDone is called once the sequence has finished and EndHold elapsed.
	OnDone func()
}

// NewConsole attaches a console output container at (x, y) under the scene
// root. Nothing animates until Start.
func NewConsole(s *Scene, cfg Config, rng Rand, x, y float64) *Console {
	out := NewContainer("console-output", "console-output")
	out.SetPosition(x, y)
	s.Root().AddChild(out)
	return &Console{
		scene:      s,
		cfg:        cfg,
		output:     out,
		typer:      NewTyper(s.Ticker()),
		scanLines:  NewScanLineField(s.Ticker(), rng, cfg.ScanLines),
		aberration: NewAberration(s.Ticker(), cfg.Intensities, cfg.Intensity, cfg.Animated),
	}
}

// Output returns the node the console types into.
func (c *Console) Output() *Node {
	return c.output
}

// Sequence returns the running typing sequence, or nil before it starts.
func (c *Console) Sequence() *Sequence {
	return c.seq
}

// ScanLines returns the flicker field.
func (c *Console) ScanLines() *ScanLineField {
	return c.scanLines
}

// Aberration returns the chromatic aberration effect.
func (c *Console) Aberration() *Aberration {
	return c.aberration
}

// Done reports whether the console has finished and held its last frame.
func (c *Console) Done() bool {
	return c.done
}

// Start begins the scan lines immediately and the typing sequence after the
// configured start delay.
func (c *Console) Start() {
	c.scanLines.Start()
	c.pending = nil
	tw := c.scene.Ticker().After(c.cfg.Typing.StartDelay, c.begin)
	// A zero delay may already have moved on to the end hold.
	if c.pending == nil {
		c.pending = tw
	}
}

func (c *Console) begin() {
	opts := c.cfg.Typing.Options()
	opts.OnComplete = func() {
		c.pending = c.scene.Ticker().After(c.cfg.Typing.EndHold, c.finish)
	}
	c.seq = c.typer.Sequence(c.output, c.cfg.Messages, opts)
}

func (c *Console) finish() {
	c.done = true
	if c.OnDone != nil {
		c.OnDone()
	}
}

// Stop cancels everything the console runs.
func (c *Console) Stop() {
	if c.pending != nil {
		c.pending.Cancel()
	}
	if c.seq != nil {
		c.seq.Cancel()
	}
	c.scanLines.Stop()
	c.aberration.Stop()
}

// DrawOverlay draws the aberration fringes over the typed lines, then the
// scan lines across the whole screen. Register it with Scene.SetOverlayFunc.
func (c *Console) DrawOverlay(screen *ebiten.Image) {
	c.drawFringes(screen)

	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	for _, l := range c.scanLines.Snapshot() {
		if l.Opacity <= 0 {
			continue
		}
		DrawRect(screen, 0, l.Top/100*h, l.Width/100*w, l.Height, scanLineColor, l.Opacity*scanLineAlpha)
	}
}

// drawFringes renders each typed line into a scratch image and draws it
// tinted red and blue at the aberration offsets.
func (c *Console) drawFringes(screen *ebiten.Image) {
	if c.seq == nil {
		return
	}
	red, blue := c.aberration.Offsets()
	sw := screen.Bounds().Dx()
	if c.scratch == nil || c.scratch.Bounds().Dx() != sw {
		c.scratch = ebiten.NewImage(sw, GlyphHeight)
	}
	for _, line := range c.seq.Lines() {
		if line.Text == "" {
			continue
		}
		c.scratch.Clear()
		ebitenutil.DebugPrint(c.scratch, line.Text)
		drawTinted(screen, c.scratch, line.worldX+red.X, line.worldY+red.Y, redFringe, fringeAlpha)
		drawTinted(screen, c.scratch, line.worldX+blue.X, line.worldY+blue.Y, blueFringe, fringeAlpha)
	}
}

func drawTinted(dst, src *ebiten.Image, x, y float64, c Color, alpha float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	a := c.A * alpha
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	op.Blend = ebiten.BlendLighter
	dst.DrawImage(src, &op)
}
