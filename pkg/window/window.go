// Package window hosts the game in an Ebitengine window
package window

import (
	"github.com/golangdaddy/roadrush/pkg/app"
	"github.com/golangdaddy/roadrush/pkg/game"
	"github.com/golangdaddy/roadrush/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Game implements the ebiten.Game interface and switches screens as the
// session changes state
type Game struct {
	app *app.App
	log *zap.Logger

	title    *ui.TitleScreen
	gameplay *ui.GameplayScreen
	pause    *ui.PauseScreen
	over     *ui.GameOverScreen
	overFor  *game.Outcome

	currentScreen ui.Screen
	keys          []ebiten.Key
}

// NewGame creates the window host around a
func NewGame(a *app.App, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{app: a, log: log}

	cfg := a.Config()
	margin := (cfg.Window.Width - int(a.Road().Width)) / 2

	g.title = ui.NewTitleScreen(g.titleInfo)
	g.gameplay = ui.NewGameplayScreen(a.Session().Snapshot, a.Road(), a.Catalog(), margin)
	g.pause = ui.NewPauseScreen(g.gameplay)
	g.currentScreen = g.title
	return g
}

// Run opens the window and blocks until it is closed
func (g *Game) Run() error {
	cfg := g.app.Config().Window
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(g)
}

// Update routes key edges, advances the session one frame and picks the screen
func (g *Game) Update() error {
	router := g.app.Router()

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		router.Pressed(k.String())
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		router.Released(k.String())
	}

	if g.app.Quitting() {
		return ebiten.Termination
	}

	s := g.app.Session()
	s.Frame()
	g.currentScreen = g.screenFor(s)
	return g.currentScreen.Update()
}

func (g *Game) screenFor(s *game.Session) ui.Screen {
	switch s.State() {
	case game.StateRunning:
		return g.gameplay
	case game.StatePaused:
		return g.pause
	case game.StateEnded:
		if out := s.Outcome(); out != nil && out != g.overFor {
			g.overFor = out
			g.over = ui.NewGameOverScreen(ui.GameOverInfo{
				Score:     out.Score,
				Level:     out.Level,
				BestScore: out.BestScore,
				NewBest:   out.NewBest,
				Recent:    g.app.Recent(),
			})
			g.log.Debug("showing game over", zap.Int("score", out.Score))
		}
		if g.over != nil {
			return g.over
		}
	}
	return g.title
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout keeps the configured logical size regardless of window size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.app.Config().Window
	return cfg.Width, cfg.Height
}

func (g *Game) titleInfo() ui.TitleInfo {
	p := g.app.Profile()
	return ui.TitleInfo{
		BestScore:   g.app.Session().Snapshot().BestScore,
		Environment: g.app.Catalog().Get(g.app.Session().Environment()).Label,
		StartLevel:  p.StartLevel,
		MusicOn:     g.app.MusicOn(),
		PlayerName:  p.Name,
	}
}
