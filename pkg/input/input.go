// Package input turns device key names into session intents and host
// commands. Both the window host and the terminal host feed it the same
// key names, so the bindings live in one place.
package input

import (
	"github.com/golangdaddy/roadrush/pkg/game"
	"go.uber.org/zap"
)

// Command is an action handled by the host rather than the session
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandMusic
	CommandEnvironment
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandMusic:
		return "music"
	case CommandEnvironment:
		return "environment"
	case CommandQuit:
		return "quit"
	}
	return "none"
}

// Action is what a key does: either a session intent or a host command
type Action struct {
	Intent  game.Intent
	Command Command
}

func intent(i game.Intent) Action {
	return Action{Intent: i}
}

func command(c Command) Action {
	return Action{Command: c}
}

// Bindings maps key names to actions
type Bindings map[string]Action

// DefaultBindings uses the arrow keys and WASD to drive, Space for nitro
func DefaultBindings() Bindings {
	return Bindings{
		"ArrowUp":    intent(game.MoveUp),
		"ArrowDown":  intent(game.MoveDown),
		"ArrowLeft":  intent(game.MoveLeft),
		"ArrowRight": intent(game.MoveRight),
		"W":          intent(game.MoveUp),
		"S":          intent(game.MoveDown),
		"A":          intent(game.MoveLeft),
		"D":          intent(game.MoveRight),
		"Space":      intent(game.BoostEngage),
		"P":          intent(game.Pause),
		"Escape":     intent(game.Pause),
		"R":          intent(game.Restart),
		"N":          intent(game.ToggleDayNight),
		"Enter":      command(CommandStart),
		"M":          command(CommandMusic),
		"E":          command(CommandEnvironment),
		"Q":          command(CommandQuit),
	}
}

// Hooks receive host commands. Nil hooks are skipped.
type Hooks struct {
	Start       func()
	Music       func()
	Environment func()
	Quit        func()
}

// Router applies key edges to a session
type Router struct {
	session  *game.Session
	bindings Bindings
	hooks    Hooks
	log      *zap.Logger
}

// NewRouter creates a router. Nil bindings use DefaultBindings.
func NewRouter(s *game.Session, bindings Bindings, hooks Hooks, log *zap.Logger) *Router {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{session: s, bindings: bindings, hooks: hooks, log: log}
}

// Pressed handles a key going down. It reports whether the key is bound.
func (r *Router) Pressed(key string) bool {
	a, ok := r.bindings[key]
	if !ok {
		return false
	}
	if a.Command != CommandNone {
		r.run(a.Command)
		return true
	}
	if a.Intent == game.Restart && !r.live() {
		r.run(CommandStart)
		return true
	}
	r.session.Press(a.Intent)
	return true
}

// Released handles a key coming up
func (r *Router) Released(key string) bool {
	a, ok := r.bindings[key]
	if !ok || a.Command != CommandNone {
		return ok
	}
	r.session.Release(a.Intent)
	return true
}

func (r *Router) live() bool {
	st := r.session.State()
	return st == game.StateRunning || st == game.StatePaused
}

func (r *Router) run(c Command) {
	r.log.Debug("command", zap.Stringer("command", c))
	switch c {
	case CommandStart:
		if r.live() {
			return
		}
		if r.hooks.Start != nil {
			r.hooks.Start()
			return
		}
		r.session.Restart()
	case CommandMusic:
		call(r.hooks.Music)
	case CommandEnvironment:
		call(r.hooks.Environment)
	case CommandQuit:
		call(r.hooks.Quit)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
