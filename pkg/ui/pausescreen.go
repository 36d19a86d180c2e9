package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseScreen dims the frozen run and lists the controls
type PauseScreen struct {
	under Screen
}

func NewPauseScreen(under Screen) *PauseScreen {
	return &PauseScreen{under: under}
}

func (ps *PauseScreen) Update() error {
	return nil
}

func (ps *PauseScreen) Draw(screen *ebiten.Image) {
	if ps.under != nil {
		ps.under.Draw(screen)
	}
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), color.RGBA{0, 0, 0, 160}, false)

	cx := float64(width) / 2
	y := float64(height) / 3
	drawCentered(screen, "PAUSED", cx, y, 48, color.RGBA{255, 200, 0, 255})

	help := []string{
		"Arrows / WASD   drive",
		"Space           nitro",
		"P               resume",
		"R               restart",
		"N               day / night",
		"M               music",
	}
	y += 80
	for _, l := range help {
		drawCentered(screen, l, cx, y, 16, color.RGBA{150, 150, 200, 255})
		y += 26
	}
}
