// Command roadrush-tty plays roadrush in a terminal
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/golangdaddy/roadrush/pkg/app"
	"github.com/golangdaddy/roadrush/pkg/audio"
	"github.com/golangdaddy/roadrush/pkg/audio/speakersink"
	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/logging"
	"github.com/golangdaddy/roadrush/pkg/models/profile"
	"github.com/golangdaddy/roadrush/pkg/storage"
	"go.uber.org/zap"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.Path(), "path to the TOML config file")
	logPath := flag.String("log", "roadrush-tty.log", "log file; the terminal is busy drawing")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		return err
	}
	log, err := logging.ToFile(cfg.Logging, *logPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := storage.Open(cfg.Storage.DatabasePath, log.Named("storage"))
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := profile.LoadOrNew(cfg.Storage.ProfilePath, cfg.Game.Environment)
	if err != nil {
		log.Warn("profile unreadable, starting fresh", zap.Error(err))
		p = profile.New("driver", cfg.Game.Environment)
	}

	var sink audio.Sink
	if cfg.Audio.Enabled {
		s, err := speakersink.New(cfg.Audio, log.Named("audio"))
		if err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			sink = s
		}
	}

	a := app.New(app.Deps{
		Config:  cfg,
		Logger:  log,
		Store:   store,
		Profile: p,
		Sink:    sink,
	})
	defer a.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	loop(screen, a, log)
	return nil
}

func loop(screen tcell.Screen, a *app.App, log *zap.Logger) {
	r := &renderer{screen: screen, road: a.Road(), catalog: a.Catalog()}
	held := newHeldKeys()
	router := a.Router()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				name := keyName(ev)
				if name == "" {
					continue
				}
				// auto-repeat of a held key is not a new press
				if held.press(name, time.Now()) {
					continue
				}
				router.Pressed(name)
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			for _, name := range held.expire(now) {
				router.Released(name)
			}
			if a.Quitting() {
				log.Info("quit requested")
				return
			}
			s := a.Session()
			s.Frame()
			r.draw(s.Snapshot(), s.State())
		}
	}
}
