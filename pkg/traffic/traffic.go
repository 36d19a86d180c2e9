package traffic

import (
	"image/color"
	"math/rand"

	"github.com/golangdaddy/roadrush/pkg/models"
	"github.com/golangdaddy/roadrush/pkg/road"
)

const (
	// SpawnGap separates obstacles at session start: obstacle i starts at -SpawnGap*(i+1)
	SpawnGap = 600.0
	// RespawnY is where an obstacle reappears above the road
	RespawnY = -600.0
	// Bottom is the y at which an obstacle has left the road
	Bottom = 1500.0
)

// Store holds the obstacle cars of one run. The number of obstacles is fixed
// by Populate; Advance and Relocate only move them.
type Store struct {
	obstacles []models.Obstacle
	rng       *rand.Rand
}

// NewStore creates an empty store drawing lanes and colours from rng
func NewStore(rng *rand.Rand) *Store {
	return &Store{rng: rng}
}

// Populate replaces all obstacles with count new ones stacked above the road
func (s *Store) Populate(count int) {
	s.obstacles = make([]models.Obstacle, 0, count)
	for i := 0; i < count; i++ {
		y := -SpawnGap * float64(i+1)
		s.obstacles = append(s.obstacles, models.Obstacle{
			ID:    i + 1,
			Lane:  road.AllocateLane(y, s.obstacles, s.rng),
			Y:     y,
			Color: s.randomColor(),
		})
	}
}

// Len is the number of obstacles
func (s *Store) Len() int {
	return len(s.obstacles)
}

// At returns obstacle i
func (s *Store) At(i int) models.Obstacle {
	return s.obstacles[i]
}

// All returns a copy of the obstacles
func (s *Store) All() []models.Obstacle {
	out := make([]models.Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Advance moves every obstacle down by speed. Obstacles that pass Bottom are
// respawned at RespawnY with a new lane and colour; their indices are returned.
func (s *Store) Advance(speed float64) []int {
	var respawned []int
	for i := range s.obstacles {
		s.obstacles[i].Y += speed
		if s.obstacles[i].Y >= Bottom {
			s.respawn(i)
			respawned = append(respawned, i)
		}
	}
	return respawned
}

// Relocate pushes obstacle i back above the road in its current lane
func (s *Store) Relocate(i int) {
	s.obstacles[i].Y = RespawnY
}

func (s *Store) respawn(i int) {
	o := &s.obstacles[i]
	o.Y = RespawnY
	o.Lane = road.AllocateLane(o.Y, s.others(i), s.rng)
	o.Color = s.randomColor()
}

// others lists every obstacle except i
func (s *Store) others(i int) []models.Obstacle {
	out := make([]models.Obstacle, 0, len(s.obstacles)-1)
	out = append(out, s.obstacles[:i]...)
	return append(out, s.obstacles[i+1:]...)
}

func (s *Store) randomColor() color.RGBA {
	v := s.rng.Intn(0xFFFFFF)
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
