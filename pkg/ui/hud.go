package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golangdaddy/roadrush/pkg/models"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// MPHPerPixelPerFrame converts the scroll speed to the number shown on
// the speedometer
const MPHPerPixelPerFrame = 12.5

var (
	panelColor  = color.RGBA{20, 20, 30, 200}
	borderColor = color.RGBA{100, 100, 120, 255}
	labelColor  = color.RGBA{200, 200, 200, 255}
	lifeColor   = color.RGBA{230, 60, 60, 255}
)

// drawHUD draws score, level and lives on the left and the speedometer
// with the nitro gauge on the right
func drawHUD(screen *ebiten.Image, snap models.Snapshot) {
	width := float64(screen.Bounds().Dx())

	drawPanel(screen, 10, 10, 110, 150)
	drawTextAt(screen, "SCORE", 20, 28, 14, labelColor)
	drawTextAt(screen, fmt.Sprintf("%d", snap.Score), 20, 48, 20, color.White)
	drawTextAt(screen, "BEST", 20, 74, 14, labelColor)
	drawTextAt(screen, fmt.Sprintf("%d", snap.BestScore), 20, 92, 16, color.White)
	drawTextAt(screen, fmt.Sprintf("LEVEL %d", snap.Level), 20, 118, 16, color.RGBA{255, 200, 50, 255})
	for i := 0; i < snap.MaxLives; i++ {
		x := float32(20 + i*22)
		if i < snap.Lives {
			vector.DrawFilledRect(screen, x, 136, 16, 16, lifeColor, false)
		} else {
			vector.StrokeRect(screen, x, 136, 16, 16, 2, lifeColor, false)
		}
	}

	drawSpeedometer(screen, width-120, 10, 110, 150, snap)
}

func drawPanel(screen *ebiten.Image, x, y, w, h float64) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), panelColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, borderColor, false)
}

func drawSpeedometer(screen *ebiten.Image, x, y, width, height float64, snap models.Snapshot) {
	drawPanel(screen, x, y, width, height)

	mph := snap.Speed * MPHPerPixelPerFrame
	var speedColor color.RGBA
	switch {
	case snap.NitroActive:
		speedColor = color.RGBA{120, 200, 255, 255}
	case mph < 150:
		speedColor = color.RGBA{100, 255, 100, 255}
	case mph < 250:
		speedColor = color.RGBA{255, 255, 100, 255}
	default:
		speedColor = color.RGBA{255, 100, 100, 255}
	}
	drawCentered(screen, fmt.Sprintf("%.0f", mph), x+width/2, y+35, 36, speedColor)
	drawCentered(screen, "MPH", x+width/2, y+65, 16, labelColor)

	label := "NITRO"
	if snap.NitroReady {
		label = "NITRO READY"
	}
	drawCentered(screen, label, x+width/2, y+95, 12, labelColor)
	drawGauge(screen, x+10, y+height-40, width-20, 15, snap.NitroCharge)
	drawCentered(screen, fmt.Sprintf("%d%%", snap.NitroPercent()), x+width/2, y+height-12, 14, labelColor)
}

// drawGauge draws a horizontal bar running red to yellow to green with the fill
func drawGauge(screen *ebiten.Image, x, y, width, height, fill float64) {
	fill = math.Max(0, math.Min(fill, 1))
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{40, 40, 40, 255}, false)

	if w := width * fill; w > 0 {
		var bar color.RGBA
		if fill < 0.5 {
			ratio := fill / 0.5
			bar = color.RGBA{255, uint8(100 + ratio*155), 100, 255}
		} else {
			ratio := (fill - 0.5) / 0.5
			bar = color.RGBA{uint8(255 - ratio*155), 255, 100, 255}
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(height), bar, false)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, color.RGBA{150, 150, 150, 255}, false)
}
