package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Sound names a sound effect
type Sound int

const (
	SoundCrash Sound = iota
	SoundLevelUp
	SoundBonusLife
	SoundNitro
	SoundGameOver
	SoundStart
	soundCount
)

// Sounds lists every sound effect
func Sounds() []Sound {
	out := make([]Sound, 0, soundCount)
	for s := Sound(0); s < soundCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s Sound) String() string {
	switch s {
	case SoundCrash:
		return "crash"
	case SoundLevelUp:
		return "level_up"
	case SoundBonusLife:
		return "bonus_life"
	case SoundNitro:
		return "nitro"
	case SoundGameOver:
		return "game_over"
	case SoundStart:
		return "start"
	}
	return "unknown"
}

// WaveType selects the oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator streams a raw waveform for duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope shapes s with a linear attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	start := total - rel
	if start < att {
		start = att
	}
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: start,
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		} else if e.position >= e.releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; zero or less is silence
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate)
}

// Effect builds a fresh streamer for sound at the given sample rate and volume
func Effect(sound Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch sound {
	case SoundCrash:
		d := 350 * time.Millisecond
		noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 300*time.Millisecond, rate)
		thud := tone(70, d, WaveSaw, rate)
		s = beep.Mix(withVolume(noise, 0.6), withVolume(thud, 0.4))
	case SoundLevelUp:
		s = beep.Seq(
			tone(523.25, 90*time.Millisecond, WaveSquare, rate),
			tone(659.25, 90*time.Millisecond, WaveSquare, rate),
			tone(783.99, 160*time.Millisecond, WaveSquare, rate),
		)
	case SoundBonusLife:
		s = beep.Seq(
			tone(987.77, 80*time.Millisecond, WaveSine, rate),
			tone(1318.51, 200*time.Millisecond, WaveSine, rate),
		)
	case SoundNitro:
		d := 250 * time.Millisecond
		s = NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 60*time.Millisecond, 150*time.Millisecond, rate)
	case SoundGameOver:
		s = beep.Seq(
			tone(392.00, 180*time.Millisecond, WaveSaw, rate),
			tone(329.63, 180*time.Millisecond, WaveSaw, rate),
			tone(261.63, 400*time.Millisecond, WaveSaw, rate),
		)
	case SoundStart:
		sine, err := generators.SineTone(rate, 880)
		if err != nil {
			return nil
		}
		d := 120 * time.Millisecond
		s = NewEnvelope(beep.Take(rate.N(d), sine), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	default:
		return nil
	}
	return withVolume(s, volume)
}

var musicNotes = []float64{261.63, 329.63, 392.00, 523.25, 493.88, 440.00, 392.00, 329.63}

// Music builds one pass of the background riff. Sinks loop it.
func Music(rate beep.SampleRate, volume float64) beep.Streamer {
	const step = 250 * time.Millisecond
	parts := make([]beep.Streamer, 0, len(musicNotes))
	for _, freq := range musicNotes {
		lead := tone(freq, step, WaveSquare, rate)
		bass := tone(freq/2, step, WaveSine, rate)
		parts = append(parts, beep.Mix(withVolume(lead, 0.35), withVolume(bass, 0.5)))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// Buffer renders a finite streamer into a seekable buffer
func Buffer(s beep.Streamer, rate beep.SampleRate) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf
}

// PCM renders a finite streamer as signed 16-bit little endian stereo,
// the format Ebitengine's audio players take. Rendering stops after
// maxSamples frames.
func PCM(s beep.Streamer, maxSamples int) []byte {
	out := make([]byte, 0, 4096)
	chunk := make([][2]float64, 512)
	total := 0
	for total < maxSamples {
		want := len(chunk)
		if left := maxSamples - total; left < want {
			want = left
		}
		n, ok := s.Stream(chunk[:want])
		for _, frame := range chunk[:n] {
			for _, v := range frame {
				i := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
				out = append(out, byte(i), byte(i>>8))
			}
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}
