package audio

import (
	"github.com/golangdaddy/roadrush/pkg/game"
	"go.uber.org/zap"
)

// Sink plays sounds on some output device
type Sink interface {
	PlayEffect(s Sound)
	StartMusic()
	StopMusic()
	PauseMusic()
	ResumeMusic()
	MusicPlaying() bool
	Close() error
}

// Director turns session events into sounds. Music follows the run:
// it starts with the session, pauses with it and stops at game over.
type Director struct {
	sink    Sink
	musicOn bool
	running bool
	log     *zap.Logger
}

// NewDirector plays through sink. A nil sink makes the director silent.
func NewDirector(sink Sink, musicOn bool, log *zap.Logger) *Director {
	if sink == nil {
		sink = NopSink{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Director{sink: sink, musicOn: musicOn, log: log}
}

// OnEvent implements game.Listener
func (d *Director) OnEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventSessionStarted:
		d.running = true
		d.sink.PlayEffect(SoundStart)
		if d.musicOn {
			d.sink.StartMusic()
		}
	case game.EventCollision:
		d.sink.PlayEffect(SoundCrash)
	case game.EventLevelUp:
		d.sink.PlayEffect(SoundLevelUp)
	case game.EventBonusLife:
		d.sink.PlayEffect(SoundBonusLife)
	case game.EventNitroEngaged:
		d.sink.PlayEffect(SoundNitro)
	case game.EventPaused:
		d.sink.PauseMusic()
	case game.EventResumed:
		if d.musicOn {
			d.sink.ResumeMusic()
		}
	case game.EventKeepAlive:
		// output devices sometimes drop the music stream; restart it
		if d.musicOn && d.running && !d.sink.MusicPlaying() {
			d.log.Debug("restarting music")
			d.sink.StartMusic()
		}
	case game.EventSessionEnded:
		d.running = false
		d.sink.StopMusic()
		d.sink.PlayEffect(SoundGameOver)
	}
}

// SetMusic switches background music on or off
func (d *Director) SetMusic(on bool) {
	d.musicOn = on
	if !on {
		d.sink.StopMusic()
		return
	}
	if d.running {
		d.sink.StartMusic()
	}
}

// MusicOn reports the music preference
func (d *Director) MusicOn() bool {
	return d.musicOn
}

// Close releases the sink
func (d *Director) Close() error {
	return d.sink.Close()
}

// NopSink discards everything
type NopSink struct{}

func (NopSink) PlayEffect(Sound)   {}
func (NopSink) StartMusic()        {}
func (NopSink) StopMusic()         {}
func (NopSink) PauseMusic()        {}
func (NopSink) ResumeMusic()       {}
func (NopSink) MusicPlaying() bool { return false }
func (NopSink) Close() error       { return nil }
