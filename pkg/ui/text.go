package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Screen is one full-window view
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

var face = text.NewGoXFace(bitmapfont.Face)

// drawTextAt draws text with its left edge at x, vertically centred on y.
// size is in pixels; the bitmap face is 16px tall.
func drawTextAt(screen *ebiten.Image, str string, x, y, size float64, clr color.Color) {
	scale := size / 16.0

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y-8*scale)
	op.ColorScale.ScaleWithColor(clr)

	text.Draw(screen, str, face, op)
}

// drawCentered draws text centred horizontally on cx
func drawCentered(screen *ebiten.Image, str string, cx, y, size float64, clr color.Color) {
	w := text.Advance(str, face) * size / 16.0
	drawTextAt(screen, str, cx-w/2, y, size, clr)
}
