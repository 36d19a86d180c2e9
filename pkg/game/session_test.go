package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/traffic"
	"go.uber.org/zap/zaptest"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(kind EventKind) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return Event{}, false
}

type fakeScores struct {
	best      int
	bestErr   error
	reportErr error
	reported  []int
}

func (f *fakeScores) BestScore() (int, error) { return f.best, f.bestErr }

func (f *fakeScores) ReportScore(_ context.Context, score, _ int) (bool, error) {
	f.reported = append(f.reported, score)
	if f.reportErr != nil {
		return false, f.reportErr
	}
	if score > f.best {
		f.best = score
		return true, nil
	}
	return false, nil
}

type fixture struct {
	s      *Session
	clock  *MockTimeProvider
	events *recorder
	scores *fakeScores
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:  NewMockTimeProvider(epoch),
		events: &recorder{},
		scores: &fakeScores{},
	}
	f.s = NewSession(Options{
		Game:     config.Defaults().Game,
		Clock:    f.clock,
		Rand:     rand.New(rand.NewSource(42)),
		Listener: f.events,
		Scores:   f.scores,
		Logger:   zaptest.NewLogger(t),
	})
	return f
}

// frame advances the clock by one 60Hz frame and runs the armed tick
func (f *fixture) frame() bool {
	f.clock.Advance(time.Second / 60)
	return f.s.Frame()
}

// drain empties the nitro meter so a full meter cannot turn into a bonus
// life while a test counts lives
func (f *fixture) drain() {
	f.s.nitro.Charge = 0
	f.s.syncNitro()
}

// shield makes the player ignore collisions for the rest of the test
func (f *fixture) shield() {
	f.s.player.InvincibleUntil = f.clock.Now().Add(24 * time.Hour)
}

func (f *fixture) checkInvariants(t *testing.T, tick int) {
	t.Helper()
	p := f.s.player
	if p.Lives < 0 || p.Lives > p.MaxLives {
		t.Fatalf("tick %d: lives %d outside [0,%d]", tick, p.Lives, p.MaxLives)
	}
	if p.NitroCharge < 0 || p.NitroCharge > 1 {
		t.Fatalf("tick %d: nitro charge %v outside [0,1]", tick, p.NitroCharge)
	}
	if p.Speed < p.BaseSpeed {
		t.Fatalf("tick %d: speed %v below base %v", tick, p.Speed, p.BaseSpeed)
	}
}

func TestNewSessionIsIdle(t *testing.T) {
	f := newFixture(t)
	if f.s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", f.s.State())
	}
	if f.s.Frame() {
		t.Fatal("idle session ran a tick")
	}
}

func TestStartResetsState(t *testing.T) {
	tests := []struct {
		level         int
		wantObstacles int
		wantSpeed     float64
	}{
		{1, 4, 5},
		{2, 5, 7},
		{5, 8, 13},
		{0, 4, 5}, // falls back to configured level 1
	}
	for _, tt := range tests {
		f := newFixture(t)
		f.s.Start(tt.level)

		p := f.s.player
		if f.s.State() != StateRunning || !p.Running {
			t.Fatalf("level %d: state %v", tt.level, f.s.State())
		}
		if f.s.traffic.Len() != tt.wantObstacles {
			t.Errorf("level %d: %d obstacles, want %d", tt.level, f.s.traffic.Len(), tt.wantObstacles)
		}
		if p.BaseSpeed != tt.wantSpeed || p.Speed != tt.wantSpeed {
			t.Errorf("level %d: speed %v/%v, want %v", tt.level, p.BaseSpeed, p.Speed, tt.wantSpeed)
		}
		if p.Lives != 3 || p.Score != 0 || p.NitroCharge != 1 || p.NitroReady || p.NitroActive {
			t.Errorf("level %d: player = %+v", tt.level, p)
		}
		x, y := f.s.road.StartPosition()
		if p.X != x || p.Y != y {
			t.Errorf("level %d: start position (%v,%v), want (%v,%v)", tt.level, p.X, p.Y, x, y)
		}
		if !f.s.Loop().Armed() {
			t.Errorf("level %d: first frame not armed", tt.level)
		}
		if f.events.count(EventSessionStarted) != 1 {
			t.Errorf("level %d: session started events = %d", tt.level, f.events.count(EventSessionStarted))
		}
	}
}

func TestStartReadsBestScore(t *testing.T) {
	f := newFixture(t)
	f.scores.best = 1234
	f.s.Start(1)
	if got := f.s.Snapshot().BestScore; got != 1234 {
		t.Errorf("best = %d, want 1234", got)
	}
}

func TestFrameRearmsWhileRunning(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()
	for i := 0; i < 10; i++ {
		if !f.frame() {
			t.Fatalf("frame %d did not tick", i)
		}
	}
	if f.s.player.Score != 10 {
		t.Errorf("score = %d, want 10", f.s.player.Score)
	}
	if f.s.Loop().Ticks() != 10 {
		t.Errorf("ticks = %d", f.s.Loop().Ticks())
	}
}

func TestInvariantsHoldUnderRandomPlay(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	rng := rand.New(rand.NewSource(7))
	intents := []Intent{MoveUp, MoveDown, MoveLeft, MoveRight, BoostEngage}

	for tick := 0; tick < 5000 && f.s.State() == StateRunning; tick++ {
		i := intents[rng.Intn(len(intents))]
		if rng.Intn(2) == 0 {
			f.s.Press(i)
		} else {
			f.s.Release(i)
		}
		f.frame()
		f.checkInvariants(t, tick)

		p := f.s.player
		if p.X < 0 || p.X > f.s.road.MaxX() || p.Y < 0 || p.Y > f.s.road.MaxY() {
			t.Fatalf("tick %d: player (%v,%v) outside the road", tick, p.X, p.Y)
		}
		if f.s.traffic.Len() != 4 {
			t.Fatalf("tick %d: obstacle count %d", tick, f.s.traffic.Len())
		}
	}
}

func TestCollisionImmunityWindow(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.drain()

	// park the player on top of obstacle 0 before every frame
	park := func() {
		o := f.s.traffic.At(0)
		f.s.player.X = f.s.road.LaneX(o.Lane)
		f.s.player.Y = o.Y
	}

	park()
	f.frame()
	if f.s.player.Lives != 2 {
		t.Fatalf("lives after first hit = %d, want 2", f.s.player.Lives)
	}
	if !f.s.player.Hit {
		t.Error("hit flash not raised")
	}
	if o := f.s.traffic.At(0); o.Y != traffic.RespawnY+f.s.player.Speed {
		t.Errorf("hit obstacle at y=%v, want pushed back to %v and advanced", o.Y, traffic.RespawnY)
	}
	hitAt := f.clock.Now()

	for f.clock.Now().Sub(hitAt) < 1500*time.Millisecond-time.Second/60 {
		park()
		f.frame()
		if f.s.player.Lives != 2 {
			t.Fatalf("lives = %d %v after the hit, want 2", f.s.player.Lives, f.clock.Now().Sub(hitAt))
		}
	}

	f.clock.Advance(200 * time.Millisecond)
	park()
	f.frame()
	if f.s.player.Lives != 1 {
		t.Fatalf("lives after immunity = %d, want 1", f.s.player.Lives)
	}
	if f.events.count(EventCollision) != 2 {
		t.Errorf("collision events = %d, want 2", f.events.count(EventCollision))
	}
}

func TestHitFlashClears(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	o := f.s.traffic.At(0)
	f.s.player.X, f.s.player.Y = f.s.road.LaneX(o.Lane), o.Y
	f.frame()
	if !f.s.player.Hit {
		t.Fatal("hit flag not set")
	}

	f.clock.Advance(1500 * time.Millisecond)
	f.s.Frame()
	if !f.s.player.Hit {
		t.Fatal("hit flag cleared too early")
	}
	f.clock.Advance(200 * time.Millisecond)
	f.s.Frame()
	if f.s.player.Hit {
		t.Fatal("hit flag still set after 1.7s")
	}
}

func TestLastLifeEndsRun(t *testing.T) {
	f := newFixture(t)
	f.scores.best = 10_000
	f.s.Start(1)
	f.drain()
	f.s.player.Lives = 1

	o := f.s.traffic.At(0)
	f.s.player.X, f.s.player.Y = f.s.road.LaneX(o.Lane), o.Y
	f.frame()

	if f.s.State() != StateEnded {
		t.Fatalf("state = %v, want ended", f.s.State())
	}
	if f.s.player.Lives != 0 || f.s.player.Running {
		t.Errorf("player = %+v", f.s.player)
	}
	if f.s.Loop().Armed() {
		t.Error("ended run still armed")
	}
	if f.s.sched.Pending() != 0 {
		t.Errorf("%d timers left after end", f.s.sched.Pending())
	}
	ev, ok := f.events.last(EventSessionEnded)
	if !ok || ev.Outcome == nil {
		t.Fatal("no outcome event")
	}
	if ev.Outcome.NewBest || ev.Outcome.BestScore != 10_000 {
		t.Errorf("outcome = %+v", ev.Outcome)
	}
	if len(f.scores.reported) != 1 {
		t.Errorf("reported %d scores", len(f.scores.reported))
	}

	score := f.s.player.Score
	for i := 0; i < 5; i++ {
		if f.frame() {
			t.Fatal("ended run ticked")
		}
	}
	if f.s.player.Score != score {
		t.Error("score changed after the end")
	}
}

func TestEndGameNewBest(t *testing.T) {
	f := newFixture(t)
	f.scores.best = 5
	f.s.Start(1)
	f.shield()
	for i := 0; i < 20; i++ {
		f.frame()
	}
	f.s.EndGame()

	out := f.s.Outcome()
	if out == nil || !out.NewBest || out.Score != 20 || out.BestScore != 20 {
		t.Fatalf("outcome = %+v", out)
	}

	f.s.EndGame()
	if len(f.scores.reported) != 1 {
		t.Errorf("second EndGame reported again")
	}
}

func TestScoreKeeperFailureFallsBack(t *testing.T) {
	f := newFixture(t)
	f.scores.best = 3
	f.scores.reportErr = errors.New("disk full")
	f.s.Start(1)
	f.shield()
	for i := 0; i < 4; i++ {
		f.frame()
	}
	f.s.EndGame()
	if out := f.s.Outcome(); out == nil || !out.NewBest {
		t.Errorf("outcome = %+v, want new best from local comparison", out)
	}
}

func TestNitroConvertsToLife(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()
	f.s.player.Lives = 2
	f.s.nitro.Charge = 0.998

	for i := 0; i < 5 && f.s.player.Lives < 3; i++ {
		f.frame()
	}
	p := f.s.player
	if p.Lives != 3 {
		t.Fatalf("lives = %d, want 3", p.Lives)
	}
	if p.NitroCharge != 0 || p.NitroActive || p.NitroReady {
		t.Errorf("nitro after conversion: charge=%v active=%v ready=%v", p.NitroCharge, p.NitroActive, p.NitroReady)
	}
	if f.events.count(EventBonusLife) != 1 {
		t.Errorf("bonus life events = %d", f.events.count(EventBonusLife))
	}
}

func TestBoostRaisesSpeed(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()

	f.s.Press(BoostEngage)
	if f.s.player.NitroActive {
		t.Fatal("boost engaged before the meter was ready")
	}
	f.frame() // full meter at max lives becomes ready
	f.s.Press(BoostEngage)
	if !f.s.player.NitroActive {
		t.Fatal("boost did not engage")
	}
	f.frame()
	if f.s.player.Speed != f.s.player.BaseSpeed+5 {
		t.Errorf("speed = %v, want base+5", f.s.player.Speed)
	}
	f.s.Release(BoostEngage)
	if f.s.player.NitroActive || f.s.player.Speed < f.s.player.BaseSpeed {
		t.Errorf("after release: %+v", f.s.player)
	}
	if f.events.count(EventNitroEngaged) != 1 || f.events.count(EventNitroReleased) != 1 {
		t.Errorf("nitro events engaged=%d released=%d",
			f.events.count(EventNitroEngaged), f.events.count(EventNitroReleased))
	}
}

func TestLevelUpAfterThousandTicks(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()

	for i := 0; i < 1000; i++ {
		f.frame()
	}
	p := f.s.player
	if p.Score != 1000 || p.BaseSpeed != 6 || p.Level != 2 {
		t.Fatalf("score=%d speed=%v level=%d, want 1000, 6, 2", p.Score, p.BaseSpeed, p.Level)
	}
	if n := f.events.count(EventLevelUp); n != 1 {
		t.Fatalf("level up events = %d, want 1", n)
	}
	ev, _ := f.events.last(EventLevelUp)
	if ev.Level != 2 {
		t.Errorf("level up event level = %d", ev.Level)
	}

	for i := 0; i < 999; i++ {
		f.frame()
	}
	if n := f.events.count(EventLevelUp); n != 1 {
		t.Errorf("level up events before next milestone = %d", n)
	}
}

func TestObstaclesRespawnAtTop(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()

	respawns := 0
	for tick := 0; tick < 1000; tick++ {
		before := f.s.traffic.All()
		f.frame()
		after := f.s.traffic.All()
		if len(after) != len(before) {
			t.Fatalf("tick %d: obstacle count %d -> %d", tick, len(before), len(after))
		}
		for i := range after {
			if after[i].ID != before[i].ID {
				t.Fatalf("tick %d: obstacle %d replaced", tick, i)
			}
			if after[i].Y < before[i].Y {
				respawns++
				if after[i].Y != traffic.RespawnY {
					t.Fatalf("tick %d: respawned at y=%v, want %v", tick, after[i].Y, traffic.RespawnY)
				}
				if before[i].Y+f.s.progress.BaseSpeed < traffic.Bottom {
					t.Fatalf("tick %d: respawned early from y=%v", tick, before[i].Y)
				}
			}
		}
	}
	if respawns == 0 {
		t.Fatal("no obstacle respawned")
	}
}

func TestPauseTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()
	for i := 0; i < 5; i++ {
		f.frame()
	}
	before := f.s.Snapshot()
	player := f.s.player

	f.s.Press(Pause)
	if f.s.State() != StatePaused || !f.s.player.Paused {
		t.Fatal("not paused")
	}
	f.clock.Advance(time.Minute)
	if f.s.Frame() {
		t.Fatal("paused session ticked")
	}
	f.s.Press(Pause)
	if f.s.State() != StateRunning {
		t.Fatalf("state = %v after second pause", f.s.State())
	}

	if f.s.player != player {
		t.Errorf("player changed across pause:\n%+v\n%+v", player, f.s.player)
	}
	after := f.s.Snapshot()
	if after.Score != before.Score || after.Night != before.Night || len(after.Obstacles) != len(before.Obstacles) {
		t.Error("snapshot changed across pause")
	}
	for i := range after.Obstacles {
		if after.Obstacles[i] != before.Obstacles[i] {
			t.Errorf("obstacle %d moved while paused", i)
		}
	}
	if !f.s.Loop().Armed() {
		t.Error("resume did not re-arm the loop")
	}
	if f.events.count(EventPaused) != 1 || f.events.count(EventResumed) != 1 {
		t.Error("pause events missing")
	}
}

func TestPauseIgnoredWhenIdle(t *testing.T) {
	f := newFixture(t)
	f.s.Press(Pause)
	if f.s.State() != StateIdle {
		t.Fatalf("state = %v", f.s.State())
	}
}

func TestBoostRefusedWhilePaused(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()
	f.frame()
	f.s.Press(Pause)
	f.s.Press(BoostEngage)
	if f.s.player.NitroActive {
		t.Fatal("boost engaged while paused")
	}
}

func TestDayNightTimer(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()

	f.clock.Advance(29 * time.Second)
	f.s.Frame()
	if f.s.Night() {
		t.Fatal("night before 30s")
	}
	f.clock.Advance(time.Second)
	f.s.Frame()
	if !f.s.Night() {
		t.Fatal("no night after 30s")
	}
	if f.events.count(EventDayNight) != 1 {
		t.Errorf("day/night events = %d", f.events.count(EventDayNight))
	}
	// the 10s and 20s keep-alives were both missed by the 29s frame and fire once
	if f.events.count(EventKeepAlive) != 2 {
		t.Errorf("keep alive events = %d, want 2", f.events.count(EventKeepAlive))
	}
}

func TestTimersDoNotFireWhilePaused(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()
	f.s.Press(Pause)
	f.clock.Advance(time.Minute)
	f.s.Frame()
	if f.s.Night() || f.events.count(EventKeepAlive) != 0 {
		t.Fatal("timers ran while paused")
	}
}

func TestPausedTimeDoesNotCountTowardsTimers(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()

	f.clock.Advance(5 * time.Second)
	f.s.Frame()
	f.s.Press(Pause)
	f.clock.Advance(time.Minute)
	f.s.Press(Pause)

	f.frame()
	if f.s.Night() || f.events.count(EventDayNight) != 0 {
		t.Fatal("day/night fired on the first frame after resume")
	}
	if f.events.count(EventKeepAlive) != 0 {
		t.Fatal("keep alive fired on the first frame after resume")
	}

	// 25s of running time remain until the first toggle
	f.clock.Advance(24 * time.Second)
	f.s.Frame()
	if f.s.Night() {
		t.Fatal("night before 30s of running time")
	}
	f.clock.Advance(time.Second)
	f.s.Frame()
	if !f.s.Night() || f.events.count(EventDayNight) != 1 {
		t.Fatalf("night = %v after 30s of running time, events = %d", f.s.Night(), f.events.count(EventDayNight))
	}
}

func TestHitFlashPausesWithTheRun(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.drain()
	o := f.s.traffic.At(0)
	f.s.player.X, f.s.player.Y = f.s.road.LaneX(o.Lane), o.Y
	f.frame()
	if !f.s.player.Hit {
		t.Fatal("hit flag not set")
	}
	f.shield()

	f.s.Press(Pause)
	f.clock.Advance(10 * time.Second)
	f.s.Press(Pause)

	f.clock.Advance(time.Second)
	f.s.Frame()
	if !f.s.player.Hit {
		t.Fatal("hit flag cleared by time spent paused")
	}
	f.clock.Advance(time.Second)
	f.s.Frame()
	if f.s.player.Hit {
		t.Fatal("hit flag still set after 1.6s of running time")
	}
}

func TestRestartCancelsOldTimers(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()
	f.clock.Advance(29 * time.Second)
	f.s.Frame()

	f.s.Press(Restart)
	f.shield()
	if f.events.count(EventSessionStarted) != 2 {
		t.Fatal("restart did not start a new run")
	}
	if f.s.sched.Pending() != 2 {
		t.Errorf("pending timers = %d, want 2", f.s.sched.Pending())
	}

	f.clock.Advance(2 * time.Second)
	f.s.Frame()
	if f.s.Night() {
		t.Fatal("timer of the previous run toggled night")
	}

	f.clock.Advance(28 * time.Second)
	f.s.Frame()
	if !f.s.Night() {
		t.Fatal("new run's day/night timer did not fire")
	}
}

func TestRestartDropsStaleFrame(t *testing.T) {
	f := newFixture(t)
	f.s.Start(1)
	f.shield()
	f.frame()
	f.s.Start(2)
	f.shield()

	if !f.frame() {
		t.Fatal("new run did not tick")
	}
	if f.s.player.Score != 1 {
		t.Errorf("score = %d after one tick of the new run", f.s.player.Score)
	}
	if f.s.traffic.Len() != 5 {
		t.Errorf("obstacles = %d, want 5", f.s.traffic.Len())
	}
}

func TestPanickingListenerDoesNotStopTick(t *testing.T) {
	f := newFixture(t)
	f.s.listener = ListenerFunc(func(Event) { panic("speaker unplugged") })
	f.s.scores = panicScores{}

	f.s.Start(1)
	o := f.s.traffic.At(0)
	f.s.player.X, f.s.player.Y = f.s.road.LaneX(o.Lane), o.Y
	if !f.frame() {
		t.Fatal("tick aborted")
	}
	if f.s.player.Lives != 2 || f.s.player.Score != 1 {
		t.Errorf("player = %+v", f.s.player)
	}
	f.s.EndGame()
	if f.s.State() != StateEnded || f.s.Outcome() == nil {
		t.Fatal("end game failed with panicking collaborators")
	}
}

type panicScores struct{}

func (panicScores) BestScore() (int, error) { panic("no db") }

func (panicScores) ReportScore(context.Context, int, int) (bool, error) { panic("no db") }

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	f.s.SetEnvironment("desert")
	f.s.Start(1)
	snap := f.s.Snapshot()

	if snap.Environment != "desert" || !snap.Running || snap.Lives != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.Obstacles) != 4 || len(snap.Lines) != 10 {
		t.Fatalf("snapshot has %d obstacles and %d lines", len(snap.Obstacles), len(snap.Lines))
	}
	for i, o := range snap.Obstacles {
		if o.X != f.s.road.LaneX(o.Lane) || o.W != 50 || o.H != 90 {
			t.Errorf("obstacle %d view = %+v", i, o)
		}
	}
	snap.Obstacles[0].Y = 9999
	if f.s.traffic.At(0).Y == 9999 {
		t.Error("snapshot aliases session state")
	}
}

func TestManualDayNightToggle(t *testing.T) {
	f := newFixture(t)
	f.s.Press(ToggleDayNight)
	if !f.s.Night() {
		t.Fatal("toggle did not switch to night")
	}
	f.s.Press(ToggleDayNight)
	if f.s.Night() {
		t.Fatal("toggle did not switch back")
	}
}
