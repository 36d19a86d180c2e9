package models

import "time"

// Player is the state of the player's car for one run
type Player struct {
	X, Y      float64 // Top-left corner in road pixels
	BaseSpeed float64 // Speed tier, raised by progression
	Speed     float64 // Effective speed: BaseSpeed plus any boost

	Score    int
	Level    int
	Lives    int
	MaxLives int

	InvincibleUntil time.Time // Collisions before this instant are ignored
	Hit             bool      // Cosmetic flash after a collision

	NitroCharge float64 // 0.0-1.0
	NitroActive bool
	NitroReady  bool

	Paused  bool
	Running bool
}

// Invincible reports whether a collision at now should be ignored
func (p *Player) Invincible(now time.Time) bool {
	return !now.After(p.InvincibleUntil)
}
