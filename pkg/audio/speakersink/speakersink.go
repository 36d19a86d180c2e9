// Package speakersink plays roadrush sounds through beep's speaker, for
// hosts that do not run Ebitengine.
package speakersink

import (
	"fmt"
	"time"

	"github.com/golangdaddy/roadrush/pkg/audio"
	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Sink mixes effects and a looping riff into the speaker
type Sink struct {
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	riff   *beep.Buffer
	music  *beep.Ctrl
	log    *zap.Logger
}

// New initialises the speaker
func New(cfg config.AudioConfig, log *zap.Logger) (*Sink, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	s := &Sink{
		rate:   rate,
		volume: cfg.MasterVolume,
		mixer:  &beep.Mixer{},
		riff:   audio.Buffer(audio.Music(rate, cfg.MasterVolume*cfg.MusicVolume), rate),
		log:    log,
	}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Sink) PlayEffect(snd audio.Sound) {
	st := audio.Effect(snd, s.rate, s.volume)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Sink) StartMusic() {
	speaker.Lock()
	defer speaker.Unlock()
	if s.music != nil {
		s.music.Streamer = nil
	}
	s.music = &beep.Ctrl{Streamer: beep.Loop(-1, s.riff.Streamer(0, s.riff.Len()))}
	s.mixer.Add(s.music)
}

func (s *Sink) StopMusic() {
	speaker.Lock()
	defer speaker.Unlock()
	if s.music != nil {
		s.music.Streamer = nil
		s.music = nil
	}
}

func (s *Sink) PauseMusic() {
	s.setPaused(true)
}

func (s *Sink) ResumeMusic() {
	s.setPaused(false)
}

func (s *Sink) setPaused(p bool) {
	speaker.Lock()
	defer speaker.Unlock()
	if s.music != nil {
		s.music.Paused = p
	}
}

func (s *Sink) MusicPlaying() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.music != nil && !s.music.Paused
}

// Close clears the mixer and shuts the speaker down
func (s *Sink) Close() error {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}
