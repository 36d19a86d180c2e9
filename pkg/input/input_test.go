package input

import (
	"math/rand"
	"testing"
	"time"

	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/game"
	"go.uber.org/zap/zaptest"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	return game.NewSession(game.Options{
		Game:   config.Defaults().Game,
		Clock:  game.NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Rand:   rand.New(rand.NewSource(1)),
		Logger: zaptest.NewLogger(t),
	})
}

func TestUnboundKey(t *testing.T) {
	r := NewRouter(newSession(t), nil, Hooks{}, zaptest.NewLogger(t))
	if r.Pressed("F12") || r.Released("F12") {
		t.Error("unbound key reported as handled")
	}
}

func TestEnterStartsOnlyWhenIdle(t *testing.T) {
	s := newSession(t)
	starts := 0
	r := NewRouter(s, nil, Hooks{Start: func() {
		starts++
		s.Start(0)
	}}, zaptest.NewLogger(t))

	r.Pressed("Enter")
	if s.State() != game.StateRunning || starts != 1 {
		t.Fatalf("state %v after Enter, starts %d", s.State(), starts)
	}
	r.Pressed("Enter")
	if starts != 1 {
		t.Errorf("Enter during a run called Start again")
	}
}

func TestRestartKeyStartsFromIdle(t *testing.T) {
	s := newSession(t)
	r := NewRouter(s, nil, Hooks{}, nil)
	r.Pressed("R")
	if s.State() != game.StateRunning {
		t.Fatalf("state = %v, want running", s.State())
	}
}

func TestPauseKey(t *testing.T) {
	s := newSession(t)
	s.Start(1)
	r := NewRouter(s, nil, Hooks{}, nil)

	r.Pressed("P")
	if s.State() != game.StatePaused {
		t.Fatalf("state = %v, want paused", s.State())
	}
	r.Released("P")
	r.Pressed("Escape")
	if s.State() != game.StateRunning {
		t.Fatalf("state = %v, want running", s.State())
	}
}

func TestHeldMovement(t *testing.T) {
	s := newSession(t)
	s.Start(1)
	r := NewRouter(s, nil, Hooks{}, nil)
	x0 := s.Snapshot().Player.X

	r.Pressed("ArrowLeft")
	s.Frame()
	x1 := s.Snapshot().Player.X
	if x1 >= x0 {
		t.Fatalf("x %v did not decrease from %v", x1, x0)
	}

	r.Released("ArrowLeft")
	s.Frame()
	if x2 := s.Snapshot().Player.X; x2 != x1 {
		t.Errorf("x moved to %v after release", x2)
	}
}

func TestCommandHooks(t *testing.T) {
	var got []Command
	hooks := Hooks{
		Music:       func() { got = append(got, CommandMusic) },
		Environment: func() { got = append(got, CommandEnvironment) },
		Quit:        func() { got = append(got, CommandQuit) },
	}
	r := NewRouter(newSession(t), nil, hooks, nil)
	for _, k := range []string{"M", "E", "Q"} {
		r.Pressed(k)
		r.Released(k)
	}
	want := []Command{CommandMusic, CommandEnvironment, CommandQuit}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDayNightKey(t *testing.T) {
	s := newSession(t)
	s.Start(1)
	r := NewRouter(s, nil, Hooks{}, nil)
	r.Pressed("N")
	if !s.Night() {
		t.Error("N did not switch to night")
	}
}
