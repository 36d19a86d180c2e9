package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/golangdaddy/roadrush/pkg/storage"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameOverInfo is the summary of a finished run
type GameOverInfo struct {
	Score     int
	Level     int
	BestScore int
	NewBest   bool
	Recent    []storage.Run
}

// GameOverScreen shows the outcome and recent runs
type GameOverScreen struct {
	info  GameOverInfo
	shown time.Time
}

func NewGameOverScreen(info GameOverInfo) *GameOverScreen {
	return &GameOverScreen{info: info, shown: time.Now()}
}

func (gs *GameOverScreen) Update() error {
	return nil
}

func (gs *GameOverScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{20, 20, 30, 255})
	cx := float64(width) / 2
	y := float64(height) / 5

	drawCentered(screen, "GAME OVER", cx, y, 64, color.RGBA{230, 60, 60, 255})
	y += 90
	drawCentered(screen, fmt.Sprintf("Score %d   Level %d", gs.info.Score, gs.info.Level), cx, y, 24, color.White)
	y += 40
	if gs.info.NewBest {
		elapsed := time.Since(gs.shown).Seconds()
		if int(elapsed*3)%2 == 0 {
			drawCentered(screen, "NEW BEST!", cx, y, 28, color.RGBA{255, 200, 50, 255})
		}
	} else {
		drawCentered(screen, fmt.Sprintf("Best %d", gs.info.BestScore), cx, y, 20, labelColor)
	}

	if len(gs.info.Recent) > 0 {
		y += 60
		drawCentered(screen, "RECENT RUNS", cx, y, 18, color.RGBA{150, 200, 255, 255})
		for _, r := range gs.info.Recent {
			y += 26
			line := fmt.Sprintf("%6d  L%-2d  %s", r.Score, r.Level, r.Finished.Format("Jan 02 15:04"))
			drawCentered(screen, line, cx, y, 16, labelColor)
		}
	}

	drawCentered(screen, "Press ENTER or R to race again", cx, float64(height)-80, 20, color.RGBA{150, 200, 255, 255})
}
