package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golangdaddy/roadrush/pkg/app"
	"github.com/golangdaddy/roadrush/pkg/audio"
	"github.com/golangdaddy/roadrush/pkg/audio/ebitensink"
	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/golangdaddy/roadrush/pkg/logging"
	"github.com/golangdaddy/roadrush/pkg/models/profile"
	"github.com/golangdaddy/roadrush/pkg/storage"
	"github.com/golangdaddy/roadrush/pkg/window"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.Path(), "path to the TOML config file")
	level := flag.Int("level", 0, "override the profile's start level")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging)
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
	if *level > 0 {
		p.StartLevel = *level
	}

	var sink audio.Sink
	if cfg.Audio.Enabled {
		s, err := ebitensink.New(cfg.Audio, log.Named("audio"))
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

	log.Info("roadrush starting",
		zap.String("config", *configPath),
		zap.Int("start_level", p.StartLevel),
		zap.String("environment", p.Environment))

	return window.NewGame(a, log.Named("window")).Run()
}
