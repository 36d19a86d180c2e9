package models

import (
	"image/color"
	"time"
)

// CarView is a car as the renderer needs it
type CarView struct {
	X, Y  float64
	W, H  float64
	Lane  int
	Color color.RGBA
	Label string
}

// Snapshot is a read-only copy of a session taken once per tick.
// Renderers and sinks must not hold on to the Obstacles slice across
// ticks if they mutate it.
type Snapshot struct {
	Player    CarView
	Obstacles []CarView

	Score     int
	BestScore int
	Level     int
	Lives     int
	MaxLives  int
	Speed     float64

	NitroCharge float64
	NitroActive bool
	NitroReady  bool

	Running bool
	Paused  bool
	Hit     bool
	Night   bool

	Environment string
	Lines       []float64
	Background  float64
	Taken       time.Time
}

// NitroPercent is the charge rounded to a whole percentage
func (s Snapshot) NitroPercent() int {
	return int(s.NitroCharge*100 + 0.5)
}
