// Package app wires a session to its collaborators: the score store, the
// player profile, the audio director and the keyboard router. Both hosts
// build one App and differ only in how they draw and read keys.
package app

import (
	"context"
	"time"

	"github.com/golangdaddy/roadrush/pkg/audio"
	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/game"
	"github.com/golangdaddy/roadrush/pkg/input"
	"github.com/golangdaddy/roadrush/pkg/models/profile"
	"github.com/golangdaddy/roadrush/pkg/road"
	"github.com/golangdaddy/roadrush/pkg/storage"
	"go.uber.org/zap"
)

// RecentRuns is how many finished runs the game over view lists
const RecentRuns = 5

// Deps are the long-lived collaborators owned by the caller
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   *storage.Store // nil disables persistence of scores
	Profile *profile.Profile
	Sink    audio.Sink
	Clock   game.TimeProvider
	Catalog *road.Catalog
}

// App is the host-neutral part of a running game
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *storage.Store
	profile  *profile.Profile
	catalog  *road.Catalog
	road     *road.Road
	director *audio.Director
	session  *game.Session
	router   *input.Router

	recent   []storage.Run
	quitting bool
}

// New builds the session and wires events to audio and the profile
func New(deps Deps) *App {
	if deps.Config == nil {
		deps.Config = config.Defaults()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Catalog == nil {
		deps.Catalog = road.DefaultCatalog()
	}
	if deps.Profile == nil {
		deps.Profile = profile.New("driver", deps.Config.Game.Environment)
	}

	a := &App{
		cfg:     deps.Config,
		log:     deps.Logger,
		store:   deps.Store,
		profile: deps.Profile,
		catalog: deps.Catalog,
		road:    road.New(deps.Config.Road),
	}
	a.director = audio.NewDirector(deps.Sink, a.profile.MusicOn, a.log.Named("audio"))

	var scores game.ScoreKeeper
	if a.store != nil {
		scores = a.store
	}

	gameCfg := a.cfg.Game
	gameCfg.Environment = a.catalog.Get(a.profile.Environment).Name
	a.session = game.NewSession(game.Options{
		Game:     gameCfg,
		Road:     a.road,
		Clock:    deps.Clock,
		Listener: game.Listeners{a.director, game.ListenerFunc(a.onEvent)},
		Scores:   scores,
		Logger:   a.log.Named("session"),
	})
	a.router = input.NewRouter(a.session, nil, input.Hooks{
		Start:       a.Start,
		Music:       a.ToggleMusic,
		Environment: a.NextEnvironment,
		Quit:        a.Quit,
	}, a.log.Named("input"))
	return a
}

// Start begins a run at the profile's start level
func (a *App) Start() {
	a.recent = nil
	a.session.Start(a.profile.StartLevel)
}

// ToggleMusic flips the music preference and persists it
func (a *App) ToggleMusic() {
	a.director.SetMusic(a.profile.ToggleMusic())
	a.saveProfile()
}

// NextEnvironment cycles the roadside theme and persists it
func (a *App) NextEnvironment() {
	env := a.catalog.Next(a.session.Environment())
	a.session.SetEnvironment(env.Name)
	a.profile.Environment = env.Name
	a.log.Info("environment changed", zap.String("environment", env.Name))
	a.saveProfile()
}

// Quit asks the host to exit after the current frame
func (a *App) Quit() {
	if a.session.State() == game.StateRunning || a.session.State() == game.StatePaused {
		a.session.EndGame()
	}
	a.quitting = true
}

// Quitting reports whether Quit was called
func (a *App) Quitting() bool {
	return a.quitting
}

func (a *App) Session() *game.Session {
	return a.session
}

func (a *App) Router() *input.Router {
	return a.router
}

func (a *App) Road() *road.Road {
	return a.road
}

func (a *App) Catalog() *road.Catalog {
	return a.catalog
}

func (a *App) Profile() *profile.Profile {
	return a.profile
}

func (a *App) Config() *config.Config {
	return a.cfg
}

// Recent returns the runs loaded when the last session ended
func (a *App) Recent() []storage.Run {
	return a.recent
}

// MusicOn reports the current music preference
func (a *App) MusicOn() bool {
	return a.director.MusicOn()
}

// Close ends a run in progress, saves the profile and releases audio
func (a *App) Close() error {
	if st := a.session.State(); st == game.StateRunning || st == game.StatePaused {
		a.session.EndGame()
	}
	a.saveProfile()
	return a.director.Close()
}

func (a *App) onEvent(ev game.Event) {
	if ev.Kind != game.EventSessionEnded {
		return
	}
	a.profile.RecordRun()
	a.saveProfile()
	a.loadRecent()
}

func (a *App) loadRecent() {
	if a.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	runs, err := a.store.Recent(ctx, RecentRuns)
	if err != nil {
		a.log.Warn("load recent runs", zap.Error(err))
		a.recent = nil
		return
	}
	a.recent = runs
}

func (a *App) saveProfile() {
	path := a.cfg.Storage.ProfilePath
	if path == "" {
		return
	}
	if err := a.profile.SaveToFile(path); err != nil {
		a.log.Warn("save profile", zap.String("path", path), zap.Error(err))
	}
}
