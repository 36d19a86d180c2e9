package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/golangdaddy/roadrush/pkg/game"
	"github.com/golangdaddy/roadrush/pkg/models"
	"github.com/golangdaddy/roadrush/pkg/road"
)

const roadCols = 30

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHeader  = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBorder  = styleDefault.Foreground(tcell.ColorDarkGray)
	stylePaused  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleWarning = styleDefault.Foreground(tcell.ColorYellow)
)

// renderer maps road pixels onto terminal cells
type renderer struct {
	screen  tcell.Screen
	road    *road.Road
	catalog *road.Catalog
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (r *renderer) draw(snap models.Snapshot, state game.State) {
	s := r.screen
	s.Clear()
	w, h := s.Size()

	rows := h - 3
	if rows < 10 {
		drawString(s, 0, 0, "terminal too small", styleWarning)
		s.Show()
		return
	}
	ox := (w - roadCols) / 2
	if ox < 1 {
		ox = 1
	}
	oy := 2
	sx := r.road.Width / roadCols
	sy := r.road.Height / float64(rows)

	env := r.catalog.Get(snap.Environment)
	roadStyle := styleDefault.Background(rgb(r.catalog.Dim(env.Road.Color(), snap.Night)))
	lineStyle := roadStyle.Foreground(rgb(r.catalog.Dim(env.Line.Color(), snap.Night)))
	sideStyle := styleDefault.Background(rgb(r.catalog.Dim(env.Ground.Color(), snap.Night)))

	for y := 0; y < rows; y++ {
		s.SetContent(ox-1, oy+y, ' ', nil, sideStyle)
		s.SetContent(ox+roadCols, oy+y, ' ', nil, sideStyle)
		for x := 0; x < roadCols; x++ {
			s.SetContent(ox+x, oy+y, ' ', nil, roadStyle)
		}
	}

	// lane dividers
	for lane := 0; lane < road.LaneCount-1; lane++ {
		mid := (r.road.LaneX(lane) + r.road.CarWidth + r.road.LaneX(lane+1)) / 2
		col := ox + int(mid/sx)
		for _, ly := range snap.Lines {
			for row := int(ly / sy); float64(row)*sy < ly+60; row++ {
				if row >= 0 && row < rows {
					s.SetContent(col, oy+row, '|', nil, lineStyle)
				}
			}
		}
	}

	for _, o := range snap.Obstacles {
		r.drawCar(o, ox, oy, rows, sx, sy, styleDefault.Foreground(rgb(r.catalog.Dim(o.Color, snap.Night))))
	}
	player := styleDefault.Foreground(tcell.ColorRed)
	if snap.Hit {
		player = styleDefault.Foreground(tcell.ColorWhite)
	}
	r.drawCar(snap.Player, ox, oy, rows, sx, sy, player)

	hud := fmt.Sprintf("SCORE %d  BEST %d  LEVEL %d  LIVES %s  NITRO %3d%%",
		snap.Score, snap.BestScore, snap.Level,
		strings.Repeat("♥", snap.Lives), snap.NitroPercent())
	drawString(s, 0, 0, hud, styleHeader)

	switch state {
	case game.StateIdle:
		drawString(s, 0, 1, " ENTER start  E environment  M music  Q quit ", stylePaused)
	case game.StatePaused:
		drawString(s, 0, 1, " PAUSED  P resume  R restart ", stylePaused)
	case game.StateEnded:
		drawString(s, 0, 1, " GAME OVER  ENTER race again  Q quit ", stylePaused)
	default:
		drawString(s, 0, 1, env.Label, styleBorder)
	}
	s.Show()
}

func (r *renderer) drawCar(car models.CarView, ox, oy, rows int, sx, sy float64, style tcell.Style) {
	x0 := int(car.X / sx)
	x1 := int((car.X + car.W) / sx)
	y0 := int(car.Y / sy)
	y1 := int((car.Y + car.H) / sy)
	for y := y0; y < y1; y++ {
		if y < 0 || y >= rows {
			continue
		}
		for x := x0; x < x1 && x < roadCols; x++ {
			r.screen.SetContent(ox+x, oy+y, '█', nil, style)
		}
	}
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, ch := range str {
		s.SetContent(x, y, ch, nil, style)
		x++
	}
}
