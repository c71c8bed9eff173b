package cadence

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// GlyphWidth and GlyphHeight are the cell size of Ebitengine's debug font,
// which text nodes are drawn with.
const (
	GlyphWidth  = 6
	GlyphHeight = 16
)

// textAlphaCutoff hides text nodes below this world alpha; the debug font
// cannot be tinted.
const textAlphaCutoff = 0.5

var whitePixelImage *ebiten.Image

// ensureWhitePixel lazily creates the 1x1 image rect nodes are scaled from.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(ColorWhite.toRGBA())
	}
	return whitePixelImage
}

// Draw renders the tree onto screen in depth-first order, then runs the
// overlay callback.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	updateWorldTransform(s.root, 0, 0, 1, false)
	s.drawNode(screen, s.root)
	if s.overlayFunc != nil {
		s.overlayFunc(screen)
	}
}

func (s *Scene) drawNode(screen *ebiten.Image, n *Node) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	switch n.Type {
	case NodeTypeRect:
		DrawRect(screen, n.worldX, n.worldY, n.Width*n.ScaleX, n.Height*n.ScaleY, n.Color, n.worldAlpha)
	case NodeTypeText:
		if n.Text != "" && n.worldAlpha >= textAlphaCutoff {
			ebitenutil.DebugPrintAt(screen, n.Text, int(n.worldX), int(n.worldY))
		}
	}
	for _, child := range n.children {
		s.drawNode(screen, child)
	}
}

// DrawRect fills a rectangle with c, multiplied by alpha. Zero or negative
// sizes draw nothing.
func DrawRect(dst *ebiten.Image, x, y, w, h float64, c Color, alpha float64) {
	if w <= 0 || h <= 0 {
		return
	}
	a := c.A * alpha
	if a <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	dst.DrawImage(ensureWhitePixel(), &op)
}

// drawFPS prints the current FPS and TPS in the top-right corner.
func drawFPS(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		w-100, 4)
}
