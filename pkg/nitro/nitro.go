package nitro

import "math"

const (
	DrainPerTick    = 0.01 // while boosting
	RechargePerTick = 0.002
	Boost           = 5.0 // added to base speed while active
	epsilon         = 1e-9
)

// Result reports what happened during one tick
type Result struct {
	Depleted    bool // boost ran dry and switched itself off
	BecameReady bool // charge reached full
	BonusLife   bool // full charge was spent on an extra life
}

// Meter tracks the boost charge. A full meter is either held for a boost
// or, when the player is missing a life, spent on one straight away.
type Meter struct {
	Charge float64 // 0.0-1.0
	Active bool
	Ready  bool
}

// New returns a meter in the session start state: full but not yet ready
func New() *Meter {
	m := &Meter{}
	m.Reset()
	return m
}

// Reset restores the session start state
func (m *Meter) Reset() {
	m.Charge = 1
	m.Active = false
	m.Ready = false
}

// Tick drains or recharges the meter by one step
func (m *Meter) Tick(lives, maxLives int) Result {
	var res Result

	if m.Active {
		m.Charge = math.Max(0, m.Charge-DrainPerTick)
		if m.Charge < epsilon {
			m.Charge = 0
			m.Active = false
			res.Depleted = true
		}
		return res
	}

	m.Charge = math.Min(1, m.Charge+RechargePerTick)
	if m.Charge > 1-epsilon {
		m.Charge = 1
		if !m.Ready {
			res.BecameReady = true
		}
		m.Ready = true

		if lives < maxLives {
			m.Charge = 0
			m.Active = false
			m.Ready = false
			res.BonusLife = true
		}
	}
	return res
}

// Engage starts a boost. It only succeeds on a full, ready meter while the
// game is not paused.
func (m *Meter) Engage(paused bool) bool {
	if paused || !m.Ready || m.Charge < 1 {
		return false
	}
	m.Active = true
	m.Ready = false
	return true
}

// Release stops a boost regardless of the remaining charge. It reports
// whether a boost was running.
func (m *Meter) Release() bool {
	was := m.Active
	m.Active = false
	return was
}

// SpeedBonus is the amount added to base speed this tick
func (m *Meter) SpeedBonus() float64 {
	if m.Active {
		return Boost
	}
	return 0
}
