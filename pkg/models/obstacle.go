package models

import (
	"fmt"
	"image/color"
)

// Obstacle is one traffic car scrolling down the road
type Obstacle struct {
	ID    int // 1-based spawn index, shown on the car
	Lane  int
	Y     float64
	Color color.RGBA
}

func (o Obstacle) LaneIndex() int { return o.Lane }
func (o Obstacle) PosY() float64  { return o.Y }

// Label is the text painted on the car
func (o Obstacle) Label() string {
	return fmt.Sprintf("%d", o.ID)
}
