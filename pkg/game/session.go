package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/models"
	"github.com/golangdaddy/roadrush/pkg/nitro"
	"github.com/golangdaddy/roadrush/pkg/progression"
	"github.com/golangdaddy/roadrush/pkg/road"
	"github.com/golangdaddy/roadrush/pkg/traffic"
	"github.com/golangdaddy/roadrush/pkg/vehicle"
	"go.uber.org/zap"
)

// BaseObstacles is the obstacle count of a level 0 run; a run at level n
// drives against BaseObstacles+n cars.
const BaseObstacles = 3

const reportTimeout = 2 * time.Second

// State is the lifecycle state of a session
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// Options wires a session to its collaborators. Nil fields get defaults:
// the monotonic clock, a time seeded RNG, no-op listener and score keeper,
// and a no-op logger.
type Options struct {
	Game     config.GameConfig
	Road     *road.Road
	Clock    TimeProvider
	Rand     *rand.Rand
	Listener Listener
	Scores   ScoreKeeper
	Logger   *zap.Logger
}

// Session owns every piece of mutable state of a run. It is driven from a
// single goroutine: the host feeds it intents and calls Frame once per
// display refresh.
type Session struct {
	cfg      config.GameConfig
	road     *road.Road
	body     vehicle.Body
	clock    TimeProvider
	listener Listener
	scores   ScoreKeeper
	log      *zap.Logger

	player   models.Player
	traffic  *traffic.Store
	nitro    *nitro.Meter
	progress *progression.Clock
	lines    road.Lines
	held     controls

	state       State
	level       int // level the current run was started at
	night       bool
	environment string
	best        int
	outcome     *Outcome

	sched      *Scheduler
	flashTask  TaskID
	pausedAt   time.Time
	generation uint64
	loop       *Loop
}

// NewSession creates an idle session
func NewSession(opts Options) *Session {
	if opts.Road == nil {
		opts.Road = road.New(config.Defaults().Road)
	}
	if opts.Clock == nil {
		opts.Clock = NewMonotonicTimeProvider()
	}
	if opts.Rand == nil {
		seed := opts.Game.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		opts.Rand = rand.New(rand.NewSource(seed))
	}
	if opts.Listener == nil {
		opts.Listener = NopListener{}
	}
	if opts.Scores == nil {
		opts.Scores = NopScoreKeeper{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Game.MaxLives < 1 {
		opts.Game.MaxLives = config.Defaults().Game.MaxLives
	}
	if opts.Game.StartLevel < 1 {
		opts.Game.StartLevel = 1
	}

	s := &Session{
		cfg:         opts.Game,
		road:        opts.Road,
		body:        vehicle.Body{Width: opts.Road.CarWidth, Height: opts.Road.CarHeight},
		clock:       opts.Clock,
		listener:    opts.Listener,
		scores:      opts.Scores,
		log:         opts.Logger,
		traffic:     traffic.NewStore(opts.Rand),
		nitro:       nitro.New(),
		progress:    progression.New(opts.Game.StartLevel),
		lines:       road.NewLines(),
		environment: opts.Game.Environment,
		sched:       NewScheduler(),
	}
	s.loop = newLoop(s)
	s.best = s.readBest()
	return s
}

// Start begins a new run at level, discarding any run in progress. Every
// timer and armed frame of the previous run is cancelled first. Levels
// below 1 fall back to the configured start level.
func (s *Session) Start(level int) {
	if level < 1 {
		level = s.cfg.StartLevel
	}

	s.sched.CancelAll()
	s.flashTask = 0
	s.generation++
	s.loop.disarm()

	now := s.clock.Now()
	s.level = level
	s.progress.Reset(level)
	s.nitro.Reset()
	s.held.clear()
	s.lines = road.NewLines()
	s.outcome = nil

	x, y := s.road.StartPosition()
	s.player = models.Player{
		X:         x,
		Y:         y,
		BaseSpeed: s.progress.BaseSpeed,
		Speed:     s.progress.BaseSpeed,
		Level:     s.progress.Level,
		Lives:     s.cfg.MaxLives,
		MaxLives:  s.cfg.MaxLives,
		Running:   true,
	}
	s.syncNitro()
	s.traffic.Populate(BaseObstacles + level)
	s.best = s.readBest()
	s.state = StateRunning

	s.sched.Every(now, s.cfg.DayNightInterval, func(now time.Time) {
		s.toggleNight(now)
	})
	s.sched.Every(now, s.cfg.KeepAlive, func(now time.Time) {
		s.emit(EventKeepAlive, now)
	})

	s.log.Info("session started",
		zap.Int("level", level),
		zap.Int("obstacles", s.traffic.Len()),
		zap.String("environment", s.environment))
	s.emit(EventSessionStarted, now)
	s.loop.RequestFrame()
}

// Restart starts again at the level of the last run
func (s *Session) Restart() {
	level := s.level
	if level < 1 {
		level = s.cfg.StartLevel
	}
	s.Start(level)
}

// EndGame stops the run, reports the score and tears down its timers.
// It does nothing when no run is in progress.
func (s *Session) EndGame() {
	if s.state != StateRunning && s.state != StatePaused {
		return
	}
	now := s.clock.Now()

	s.state = StateEnded
	s.player.Running = false
	s.player.Paused = false
	s.held.clear()
	s.nitro.Release()
	s.syncNitro()
	s.sched.CancelAll()
	s.flashTask = 0
	s.loop.disarm()

	newBest := s.reportScore(s.player.Score, s.player.Level)
	if newBest && s.player.Score > s.best {
		s.best = s.player.Score
	}
	s.outcome = &Outcome{
		Score:     s.player.Score,
		Level:     s.player.Level,
		BestScore: s.best,
		NewBest:   newBest,
	}

	s.log.Info("session ended",
		zap.Int("score", s.player.Score),
		zap.Int("level", s.player.Level),
		zap.Bool("new_best", newBest))
	s.emitOutcome(now)
}

// TogglePause flips between running and paused. Pausing only sets the
// flag; resuming pushes every timer back by the paused time and arms the
// next frame.
func (s *Session) TogglePause() {
	now := s.clock.Now()
	switch s.state {
	case StateRunning:
		s.state = StatePaused
		s.player.Paused = true
		s.pausedAt = now
		s.emit(EventPaused, now)
	case StatePaused:
		s.state = StateRunning
		s.player.Paused = false
		s.sched.Shift(now.Sub(s.pausedAt))
		s.emit(EventResumed, now)
		s.loop.RequestFrame()
	}
}

// Press handles an intent becoming active
func (s *Session) Press(i Intent) {
	switch i {
	case MoveUp, MoveDown, MoveLeft, MoveRight:
		s.held.set(i, true)
	case Pause:
		s.TogglePause()
	case BoostEngage:
		s.engageNitro()
	case BoostRelease:
		s.releaseNitro()
	case Restart:
		s.Restart()
	case ToggleDayNight:
		s.toggleNight(s.clock.Now())
	}
}

// Release handles an intent becoming inactive. Letting go of the boost
// ends it.
func (s *Session) Release(i Intent) {
	switch {
	case i.movement():
		s.held.set(i, false)
	case i == BoostEngage:
		s.releaseNitro()
	}
}

// Frame runs the armed tick, if any. Hosts call it once per display refresh.
func (s *Session) Frame() bool {
	return s.loop.Frame()
}

// Loop returns the orchestrator driving this session
func (s *Session) Loop() *Loop {
	return s.loop
}

// State returns the lifecycle state
func (s *Session) State() State {
	return s.state
}

// Outcome returns the summary of the last finished run, or nil
func (s *Session) Outcome() *Outcome {
	return s.outcome
}

// Environment is the cosmetic environment name
func (s *Session) Environment() string {
	return s.environment
}

// SetEnvironment stores the cosmetic environment. The name is not interpreted.
func (s *Session) SetEnvironment(name string) {
	s.environment = name
}

// Night reports whether the night palette is active
func (s *Session) Night() bool {
	return s.night
}

// Snapshot copies everything a renderer needs
func (s *Session) Snapshot() models.Snapshot {
	p := s.player
	snap := models.Snapshot{
		Player: models.CarView{
			X: p.X, Y: p.Y,
			W: s.body.Width, H: s.body.Height,
			Lane: -1,
		},
		Obstacles:   make([]models.CarView, 0, s.traffic.Len()),
		Score:       p.Score,
		BestScore:   s.best,
		Level:       p.Level,
		Lives:       p.Lives,
		MaxLives:    p.MaxLives,
		Speed:       p.Speed,
		NitroCharge: p.NitroCharge,
		NitroActive: p.NitroActive,
		NitroReady:  p.NitroReady,
		Running:     p.Running,
		Paused:      p.Paused,
		Hit:         p.Hit,
		Night:       s.night,
		Environment: s.environment,
		Lines:       append([]float64(nil), s.lines.Y[:]...),
		Background:  s.lines.Background,
		Taken:       s.clock.Now(),
	}
	for _, o := range s.traffic.All() {
		snap.Obstacles = append(snap.Obstacles, models.CarView{
			X: s.road.LaneX(o.Lane), Y: o.Y,
			W: s.body.Width, H: s.body.Height,
			Lane:  o.Lane,
			Color: o.Color,
			Label: o.Label(),
		})
	}
	return snap
}

func (s *Session) engageNitro() {
	if s.state != StateRunning && s.state != StatePaused {
		return
	}
	if s.nitro.Engage(s.player.Paused) {
		s.syncNitro()
		s.emit(EventNitroEngaged, s.clock.Now())
	}
}

func (s *Session) releaseNitro() {
	if s.nitro.Release() {
		s.syncNitro()
		s.emit(EventNitroReleased, s.clock.Now())
	}
}

func (s *Session) toggleNight(now time.Time) {
	s.night = !s.night
	s.emit(EventDayNight, now)
}

func (s *Session) syncNitro() {
	s.player.NitroCharge = s.nitro.Charge
	s.player.NitroActive = s.nitro.Active
	s.player.NitroReady = s.nitro.Ready
}

func (s *Session) event(kind EventKind, now time.Time) Event {
	return Event{
		Kind:  kind,
		At:    now,
		Score: s.player.Score,
		Level: s.player.Level,
		Lives: s.player.Lives,
		Night: s.night,
	}
}

func (s *Session) emit(kind EventKind, now time.Time) {
	s.deliver(s.event(kind, now))
}

func (s *Session) emitOutcome(now time.Time) {
	ev := s.event(EventSessionEnded, now)
	out := *s.outcome
	ev.Outcome = &out
	s.deliver(ev)
}

// deliver hands an event to the listener. A failing listener never stops
// the tick.
func (s *Session) deliver(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("listener panicked", zap.Stringer("event", ev.Kind), zap.Any("panic", r))
		}
	}()
	s.listener.OnEvent(ev)
}

func (s *Session) readBest() (best int) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("score keeper panicked", zap.Any("panic", r))
			best = s.best
		}
	}()
	best, err := s.scores.BestScore()
	if err != nil {
		s.log.Debug("read best score", zap.Error(err))
		return s.best
	}
	return best
}

// reportScore records the run. When the keeper fails the comparison falls
// back to the best score read at start.
func (s *Session) reportScore(score, level int) (newBest bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("score keeper panicked", zap.Any("panic", r))
			newBest = score > s.best
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	newBest, err := s.scores.ReportScore(ctx, score, level)
	if err != nil {
		s.log.Warn("report score", zap.Int("score", score), zap.Error(err))
		return score > s.best
	}
	return newBest
}
