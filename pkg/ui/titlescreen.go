package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TitleInfo is what the title screen shows below the logo
type TitleInfo struct {
	BestScore   int
	Environment string
	StartLevel  int
	MusicOn     bool
	PlayerName  string
}

// TitleScreen is shown before the first run
type TitleScreen struct {
	startTime time.Time
	info      func() TitleInfo
}

// NewTitleScreen creates a title screen. info is read on every draw so
// settings changed from the keyboard show up immediately.
func NewTitleScreen(info func() TitleInfo) *TitleScreen {
	return &TitleScreen{
		startTime: time.Now(),
		info:      info,
	}
}

func (ts *TitleScreen) Update() error {
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	// pulse between 1.0 and 1.1
	pulse := 1.0 + 0.1*math.Sin(elapsed*2.0)
	brightness := math.Min(1.0+0.2*math.Sin(elapsed*1.5), 1.0)
	titleColor := color.RGBA{
		uint8(255 * brightness),
		uint8(200 * brightness),
		uint8(50 * brightness),
		255,
	}
	drawCentered(screen, "ROADRUSH", centerX, centerY, 96*pulse, titleColor)
	drawCentered(screen, "Three lanes. No brakes.", centerX, centerY+80, 28, color.RGBA{180, 180, 200, 255})

	info := ts.info()
	lines := []string{
		fmt.Sprintf("Best score: %d", info.BestScore),
		fmt.Sprintf("Environment: %s (E)", info.Environment),
		fmt.Sprintf("Start level: %d", info.StartLevel),
		fmt.Sprintf("Music: %s (M)", onOff(info.MusicOn)),
	}
	if info.PlayerName != "" {
		lines = append([]string{"Driver: " + info.PlayerName}, lines...)
	}
	y := centerY + 150
	for _, l := range lines {
		drawCentered(screen, l, centerX, y, 20, color.RGBA{200, 200, 200, 255})
		y += 30
	}

	// blink every half second
	if int(elapsed*2)%2 == 0 {
		drawCentered(screen, "Press ENTER to Start", centerX, float64(height)-100, 24, color.RGBA{150, 200, 255, 255})
	}

	drawDecorativeElements(screen, width, height)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func drawDecorativeElements(screen *ebiten.Image, width, height int) {
	lineColor := color.RGBA{50, 60, 80, 100}
	vector.DrawFilledRect(screen, 0, float32(height)/6, float32(width), 2, lineColor, false)
	vector.DrawFilledRect(screen, 0, float32(height)*5/6, float32(width), 2, lineColor, false)
}
