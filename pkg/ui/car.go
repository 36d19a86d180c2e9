package ui

import (
	"image/color"

	"github.com/golangdaddy/roadrush/pkg/models"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	outlineColor    = color.RGBA{20, 20, 20, 255}
	windshieldColor = color.RGBA{150, 200, 255, 200}
	wheelColor      = color.RGBA{30, 30, 30, 255}
)

// RenderCar draws a top-down car facing up, offset by the road origin
func RenderCar(screen *ebiten.Image, car models.CarView, ox, oy float64, body color.Color) {
	x := float32(ox + car.X)
	y := float32(oy + car.Y)
	w := float32(car.W)
	h := float32(car.H)

	// wheels sit just outside the body
	const wheelW, wheelH = 6, 14
	for _, wy := range []float32{y + 8, y + h - wheelH - 8} {
		vector.DrawFilledRect(screen, x-2, wy, wheelW, wheelH, wheelColor, false)
		vector.DrawFilledRect(screen, x+w-wheelW+2, wy, wheelW, wheelH, wheelColor, false)
	}

	vector.DrawFilledRect(screen, x, y, w, h, body, false)
	vector.StrokeRect(screen, x, y, w, h, 2, outlineColor, false)

	ww := w * 0.6
	vector.DrawFilledRect(screen, x+(w-ww)/2, y+h*0.12, ww, h*0.2, windshieldColor, false)

	if car.Label != "" {
		drawCentered(screen, car.Label, float64(x+w/2), float64(y+h*0.6), 16, color.White)
	}
}
