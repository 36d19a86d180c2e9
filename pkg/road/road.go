package road

import "github.com/golangdaddy/roadrush/pkg/config"

// LaneCount is the number of travel lanes on the track
const LaneCount = 3

const (
	// LineCount is the number of dashed centre lines scrolled down the road
	LineCount = 10
	// LineSpacing is the vertical gap between two consecutive lines
	LineSpacing = 150.0
	// LineWrap is where a line jumps back to the top
	LineWrap = 1500.0
	// TileHeight is the height of one repeated background tile
	TileHeight = 200.0
	// Parallax scales the background scroll relative to road speed
	Parallax = 0.8
)

// Road is the track geometry. It maps lane indices to pixel positions and
// knows the bounds the player car is clamped to.
type Road struct {
	Width      float64 // Track width in pixels
	Height     float64 // Visible track height in pixels
	CarWidth   float64 // Width shared by player and obstacle cars
	CarHeight  float64 // Height shared by player and obstacle cars
	LaneMargin float64 // Left edge of lane 0
	LanePitch  float64 // Distance between the left edges of neighbouring lanes
}

// New builds the road from config. Lanes are spread so the last lane keeps
// the same margin on the right as lane 0 has on the left.
func New(cfg config.RoadConfig) *Road {
	pitch := (cfg.Width - 2*cfg.LaneMargin - cfg.CarWidth) / float64(LaneCount-1)
	if pitch < 0 {
		pitch = 0
	}
	return &Road{
		Width:      cfg.Width,
		Height:     cfg.Height,
		CarWidth:   cfg.CarWidth,
		CarHeight:  cfg.CarHeight,
		LaneMargin: cfg.LaneMargin,
		LanePitch:  pitch,
	}
}

// LaneX returns the left edge of a car driving in the given lane
func (r *Road) LaneX(lane int) float64 {
	if lane < 0 {
		lane = 0
	}
	if lane >= LaneCount {
		lane = LaneCount - 1
	}
	return r.LaneMargin + float64(lane)*r.LanePitch
}

// MaxX is the largest x the player car may reach
func (r *Road) MaxX() float64 {
	return r.Width - r.CarWidth
}

// MaxY is the largest y the player car may reach
func (r *Road) MaxY() float64 {
	return r.Height - r.CarHeight
}

// Clamp keeps a car's top-left corner inside the road
func (r *Road) Clamp(x, y float64) (float64, float64) {
	return clamp(x, 0, r.MaxX()), clamp(y, 0, r.MaxY())
}

// StartPosition is where the player car is placed at session start:
// the middle lane, 20px above the bottom edge.
func (r *Road) StartPosition() (float64, float64) {
	x := r.LaneX(LaneCount / 2)
	y := r.Height - r.CarHeight - 20
	return r.Clamp(x, y)
}

// Lines holds the decorative centre lines and the background offset
type Lines struct {
	Y          [LineCount]float64
	Background float64
}

// NewLines lays the lines out from the top of the road
func NewLines() Lines {
	var l Lines
	for i := range l.Y {
		l.Y[i] = float64(i) * LineSpacing
	}
	return l
}

// Scroll moves every line and the background down by speed
func (l *Lines) Scroll(speed float64) {
	for i := range l.Y {
		if l.Y[i] >= LineWrap {
			l.Y[i] -= LineWrap
		}
		l.Y[i] += speed
	}

	next := l.Background + speed*Parallax
	if next > TileHeight {
		next -= TileHeight
	}
	l.Background = next
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
