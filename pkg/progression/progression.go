package progression

import "math"

const (
	// Milestone is the score interval at which the speed tier goes up
	Milestone = 1000
	// StartSpeed is the base speed of a level 1 run
	StartSpeed = 5.0
	// LevelSpeedStep is the extra start speed per starting level
	LevelSpeedStep = 2.0
)

// Clock tracks score, speed tier and level. Score is counted in ticks, so
// a faster display scores faster.
type Clock struct {
	Score     int
	BaseSpeed float64
	Level     int
}

// New starts a clock at the given level
func New(level int) *Clock {
	c := &Clock{}
	c.Reset(level)
	return c
}

// Reset restarts the clock. Levels below 1 count as 1.
func (c *Clock) Reset(level int) {
	if level < 1 {
		level = 1
	}
	c.Score = 0
	c.Level = level
	c.BaseSpeed = StartSpeed + float64(level-1)*LevelSpeedStep
}

// Tick scores one frame and reports whether the level went up
func (c *Clock) Tick() bool {
	c.Score++
	if c.Score%Milestone != 0 {
		return false
	}

	c.BaseSpeed++
	level := LevelFor(c.BaseSpeed)
	if level == c.Level {
		return false
	}
	c.Level = level
	return true
}

// LevelFor derives the level shown for a base speed
func LevelFor(baseSpeed float64) int {
	return 1 + int(math.Floor(baseSpeed-StartSpeed))
}
