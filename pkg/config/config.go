package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvVar overrides the default config path when set
const EnvVar = "ROADRUSH_CONFIG"

// DefaultPath is where the hosts look for the config file
const DefaultPath = "config/roadrush.toml"

// Config is the complete runtime configuration
type Config struct {
	Game    GameConfig    `toml:"game"`
	Road    RoadConfig    `toml:"road"`
	Window  WindowConfig  `toml:"window"`
	Audio   AudioConfig   `toml:"audio"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
}

// GameConfig holds session tuning
type GameConfig struct {
	StartLevel       int           `toml:"start_level"`
	Environment      string        `toml:"environment"` // jungle, city, desert
	MaxLives         int           `toml:"max_lives"`
	Invincibility    time.Duration `toml:"invincibility"`
	HitFlash         time.Duration `toml:"hit_flash"`
	DayNightInterval time.Duration `toml:"day_night_interval"`
	KeepAlive        time.Duration `toml:"keep_alive"`
	Seed             int64         `toml:"seed"` // 0 = time based
}

// RoadConfig holds the track geometry in pixels
type RoadConfig struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	CarWidth   float64 `toml:"car_width"`
	CarHeight  float64 `toml:"car_height"`
	LaneMargin float64 `toml:"lane_margin"` // left offset of lane 0
}

// WindowConfig holds desktop window settings
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// AudioConfig holds sound settings
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	SampleRate   int     `toml:"sample_rate"`
	MasterVolume float64 `toml:"master_volume"` // 0.0-1.0
	MusicVolume  float64 `toml:"music_volume"`  // 0.0-1.0
}

// StorageConfig holds persistence locations
type StorageConfig struct {
	DatabasePath string `toml:"database_path"`
	ProfilePath  string `toml:"profile_path"`
}

// LoggingConfig selects the zap encoder and level
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Path returns the config path honouring the environment override
func Path() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	return DefaultPath
}

// Validate rejects values the game cannot run with
func (c *Config) Validate() error {
	if c.Game.StartLevel < 1 {
		return fmt.Errorf("game.start_level must be positive, got %d", c.Game.StartLevel)
	}
	if c.Game.MaxLives < 1 {
		return fmt.Errorf("game.max_lives must be positive, got %d", c.Game.MaxLives)
	}
	if c.Road.Width <= c.Road.CarWidth || c.Road.Height <= c.Road.CarHeight {
		return fmt.Errorf("road %.0fx%.0f cannot fit a %.0fx%.0f car",
			c.Road.Width, c.Road.Height, c.Road.CarWidth, c.Road.CarHeight)
	}
	if c.Road.CarWidth <= 0 || c.Road.CarHeight <= 0 {
		return errors.New("road.car_width and road.car_height must be positive")
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("audio.master_volume out of range: %v", c.Audio.MasterVolume)
	}
	return nil
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			StartLevel:       1,
			Environment:      "jungle",
			MaxLives:         3,
			Invincibility:    1500 * time.Millisecond,
			HitFlash:         1600 * time.Millisecond,
			DayNightInterval: 30 * time.Second,
			KeepAlive:        10 * time.Second,
		},
		Road: RoadConfig{
			Width:      400,
			Height:     700,
			CarWidth:   50,
			CarHeight:  90,
			LaneMargin: 25,
		},
		Window: WindowConfig{
			Title:  "Roadrush",
			Width:  640,
			Height: 720,
		},
		Audio: AudioConfig{
			Enabled:      true,
			SampleRate:   44100,
			MasterVolume: 0.8,
			MusicVolume:  0.5,
		},
		Storage: StorageConfig{
			DatabasePath: "data/roadrush.db",
			ProfilePath:  "data/profile.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
