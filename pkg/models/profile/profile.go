package profile

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/golangdaddy/roadrush/pkg/data"
)

// Profile holds the player's persisted preferences
type Profile struct {
	Name        string    `json:"name"`
	MusicOn     bool      `json:"music_on"`
	Environment string    `json:"environment"`
	StartLevel  int       `json:"start_level"`
	Created     time.Time `json:"created"`
	LastPlayed  time.Time `json:"last_played"`
	RunsPlayed  int       `json:"runs_played"`
}

// New creates a profile with music on and the given environment
func New(name, environment string) *Profile {
	now := time.Now()
	return &Profile{
		Name:        name,
		MusicOn:     true,
		Environment: environment,
		StartLevel:  1,
		Created:     now,
		LastPlayed:  now,
	}
}

// ToggleMusic flips the music preference and returns the new value
func (p *Profile) ToggleMusic() bool {
	p.MusicOn = !p.MusicOn
	return p.MusicOn
}

// RecordRun marks a finished run
func (p *Profile) RecordRun() {
	p.RunsPlayed++
	p.LastPlayed = time.Now()
}

// SaveToFile writes the profile as indented JSON, creating the directory
func (p *Profile) SaveToFile(filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create profile dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// LoadFromFile reads a profile written by SaveToFile
func LoadFromFile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", filename, err)
	}
	if p.StartLevel < 1 {
		p.StartLevel = 1
	}

	return &p, nil
}

// LoadOrNew returns the stored profile, or a fresh one with a random
// driver name when none exists yet
func LoadOrNew(filename, environment string) (*Profile, error) {
	p, err := LoadFromFile(filename)
	if os.IsNotExist(err) {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return New(data.RandomDriver(rng), environment), nil
	}
	return p, err
}
