// Package ebitensink plays roadrush sounds through Ebitengine's audio context.
package ebitensink

import (
	"bytes"
	"time"

	"github.com/golangdaddy/roadrush/pkg/audio"
	"github.com/golangdaddy/roadrush/pkg/config"
	"github.com/gopxl/beep"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

const maxEffect = 2 * time.Second

// Sink renders every effect to PCM once and plays copies on demand.
// Music is a pre-rendered riff wrapped in an infinite loop.
type Sink struct {
	ctx     *ebaudio.Context
	effects map[audio.Sound][]byte
	music   *ebaudio.Player
	log     *zap.Logger
}

// New creates the audio context. Ebitengine allows one context per process.
func New(cfg config.AudioConfig, log *zap.Logger) (*Sink, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	s := &Sink{
		ctx:     ebaudio.NewContext(cfg.SampleRate),
		effects: make(map[audio.Sound][]byte),
		log:     log,
	}

	for _, snd := range audio.Sounds() {
		st := audio.Effect(snd, rate, cfg.MasterVolume)
		if st == nil {
			continue
		}
		s.effects[snd] = audio.PCM(st, rate.N(maxEffect))
	}

	riff := audio.PCM(audio.Music(rate, cfg.MasterVolume*cfg.MusicVolume), rate.N(time.Minute))
	loop := ebaudio.NewInfiniteLoop(bytes.NewReader(riff), int64(len(riff)))
	player, err := s.ctx.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	s.music = player

	log.Debug("ebiten audio ready", zap.Int("sample_rate", cfg.SampleRate), zap.Int("effects", len(s.effects)))
	return s, nil
}

// PlayEffect starts a sound; overlapping effects mix
func (s *Sink) PlayEffect(snd audio.Sound) {
	pcm, ok := s.effects[snd]
	if !ok {
		return
	}
	s.ctx.NewPlayerFromBytes(pcm).Play()
}

func (s *Sink) StartMusic() {
	if err := s.music.Rewind(); err != nil {
		s.log.Debug("rewind music", zap.Error(err))
	}
	s.music.Play()
}

func (s *Sink) StopMusic() {
	s.music.Pause()
	if err := s.music.Rewind(); err != nil {
		s.log.Debug("rewind music", zap.Error(err))
	}
}

func (s *Sink) PauseMusic()        { s.music.Pause() }
func (s *Sink) ResumeMusic()       { s.music.Play() }
func (s *Sink) MusicPlaying() bool { return s.music.IsPlaying() }

// Close stops the music player
func (s *Sink) Close() error {
	return s.music.Close()
}
