package game

import (
	"time"

	"github.com/golangdaddy/roadrush/pkg/vehicle"
	"go.uber.org/zap"
)

// Loop is the per-tick driver of a session. It runs at most one tick per
// armed frame and re-arms itself only while the session keeps running, so
// a paused or finished run stops scheduling on its own.
type Loop struct {
	s        *Session
	armed    bool
	armedGen uint64
	ticks    uint64
}

func newLoop(s *Session) *Loop {
	return &Loop{s: s}
}

// RequestFrame arms the next tick for the current run
func (l *Loop) RequestFrame() {
	l.armed = true
	l.armedGen = l.s.generation
}

// Armed reports whether a tick is waiting for the next frame
func (l *Loop) Armed() bool {
	return l.armed && l.armedGen == l.s.generation
}

// Ticks counts ticks run since the session was created
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

func (l *Loop) disarm() {
	l.armed = false
}

// Frame consumes the armed tick. Due timers run first, then the tick.
// It reports whether a tick ran.
func (l *Loop) Frame() bool {
	s := l.s
	if !l.Armed() {
		return false
	}
	l.armed = false
	if s.state != StateRunning {
		return false
	}

	gen := s.generation
	now := s.clock.Now()
	s.sched.Advance(now)
	if s.generation != gen || s.state != StateRunning {
		return false
	}

	l.tick(now)
	l.ticks++

	if s.generation == gen && s.state == StateRunning {
		l.RequestFrame()
	}
	return true
}

// tick advances the run by one step. Order matters: speed, nitro, road and
// traffic with collisions, player movement, then score.
func (l *Loop) tick(now time.Time) {
	s := l.s
	p := &s.player
	gen := s.generation

	p.BaseSpeed = s.progress.BaseSpeed
	p.Speed = p.BaseSpeed + s.nitro.SpeedBonus()

	res := s.nitro.Tick(p.Lives, p.MaxLives)
	if res.BonusLife {
		p.Lives++
	}
	s.syncNitro()
	if res.BonusLife {
		s.log.Debug("nitro converted to life", zap.Int("lives", p.Lives))
		s.emit(EventBonusLife, now)
	}
	if res.Depleted {
		s.emit(EventNitroReleased, now)
	}
	if s.generation != gen {
		return
	}

	s.lines.Scroll(p.Speed)
	if l.collide(now) || s.generation != gen {
		return
	}
	s.traffic.Advance(p.Speed)

	l.move()

	leveled := s.progress.Tick()
	p.Score = s.progress.Score
	p.Level = s.progress.Level
	p.BaseSpeed = s.progress.BaseSpeed
	p.Speed = p.BaseSpeed + s.nitro.SpeedBonus()
	if leveled {
		s.log.Debug("level up", zap.Int("level", p.Level), zap.Float64("speed", p.BaseSpeed))
		s.emit(EventLevelUp, now)
	}
}

// collide checks the player against every obstacle. It reports whether the
// run ended.
func (l *Loop) collide(now time.Time) bool {
	s := l.s
	p := &s.player
	player := s.body.At(p.X, p.Y)

	for i := 0; i < s.traffic.Len(); i++ {
		o := s.traffic.At(i)
		if !vehicle.Collides(player, s.body.At(s.road.LaneX(o.Lane), o.Y)) {
			continue
		}
		if p.Invincible(now) {
			continue
		}

		p.Lives--
		p.InvincibleUntil = now.Add(s.cfg.Invincibility)
		l.flash(now)
		s.traffic.Relocate(i)

		s.log.Debug("collision", zap.Int("obstacle", o.ID), zap.Int("lives", p.Lives))
		s.emit(EventCollision, now)

		if p.Lives <= 0 {
			p.Lives = 0
			s.EndGame()
			return true
		}
	}
	return false
}

// flash raises the hit flag and schedules it to clear. A later hit restarts
// the flash.
func (l *Loop) flash(now time.Time) {
	s := l.s
	s.player.Hit = true
	if s.flashTask != 0 {
		s.sched.Cancel(s.flashTask)
	}
	s.flashTask = s.sched.After(now, s.cfg.HitFlash, func(time.Time) {
		s.player.Hit = false
		s.flashTask = 0
	})
}

// move applies the held movement intents at the effective speed
func (l *Loop) move() {
	s := l.s
	p := &s.player
	x, y := p.X, p.Y
	if s.held[MoveUp] {
		y -= p.Speed
	}
	if s.held[MoveDown] {
		y += p.Speed
	}
	if s.held[MoveLeft] {
		x -= p.Speed
	}
	if s.held[MoveRight] {
		x += p.Speed
	}
	p.X, p.Y = s.road.Clamp(x, y)
}
