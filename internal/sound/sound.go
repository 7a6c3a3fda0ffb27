// Package sound plays the pad tones through a small pool of mixer voices.
package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"

	"simon-says/internal/simon"
)

// SampleRate is the output rate handed to the speaker.
const SampleRate beep.SampleRate = 44100

// Player is what the game driver needs from an audio backend.
type Player interface {
	Play(c simon.Color)
	Buzz()
	Close() error
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Play(simon.Color) {}
func (Nop) Buzz()            {}
func (Nop) Close() error     { return nil }

// Tones are the classic pad pitches in Hz.
var Tones = map[simon.Color]float64{
	simon.Blue:   329.63, // E4
	simon.Green:  415.30, // G#4
	simon.Yellow: 554.37, // C#5
	simon.Red:    659.26, // E5
}

// buzzTone is the low note played on a wrong press.
const buzzTone = 110.0

// Options configure a Pool.
type Options struct {
	Voices   int
	Duration time.Duration
	// Volume is in beep's base-2 scale: 0 is unchanged, -1 is half.
	Volume float64
}

// Pool mixes at most Voices tones at once. A tone requested while every
// voice is busy is dropped.
type Pool struct {
	mixer    *beep.Mixer
	sr       beep.SampleRate
	voices   chan struct{}
	duration time.Duration
	volume   float64

	lock, unlock func()
	closeOnce    sync.Once
	closeFn      func()
}

// Open initialises the speaker and returns a Pool playing through it.
func Open(opts Options) (*Pool, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := newPool(SampleRate, opts, speaker.Lock, speaker.Unlock)
	p.closeFn = speaker.Close
	speaker.Play(p.mixer)
	return p, nil
}

// NewPool returns a Pool that is not attached to any output. Callers drain
// it with Stream.
func NewPool(sr beep.SampleRate, opts Options) *Pool {
	return newPool(sr, opts, func() {}, func() {})
}

func newPool(sr beep.SampleRate, opts Options, lock, unlock func()) *Pool {
	if opts.Voices <= 0 {
		opts.Voices = 1
	}
	if opts.Duration <= 0 {
		opts.Duration = 300 * time.Millisecond
	}
	return &Pool{
		mixer:    &beep.Mixer{},
		sr:       sr,
		voices:   make(chan struct{}, opts.Voices),
		duration: opts.Duration,
		volume:   opts.Volume,
		lock:     lock,
		unlock:   unlock,
		closeFn:  func() {},
	}
}

// Play sounds the tone for c.
func (p *Pool) Play(c simon.Color) { p.play(Tones[c], p.duration) }

// Buzz sounds the failure tone.
func (p *Pool) Buzz() { p.play(buzzTone, 2*p.duration) }

// play reports whether a voice was free.
func (p *Pool) play(freq float64, d time.Duration) bool {
	select {
	case p.voices <- struct{}{}:
	default:
		return false
	}
	tone, err := generators.SineTone(p.sr, freq)
	if err != nil {
		<-p.voices
		return false
	}
	voice := beep.Seq(
		beep.Take(p.sr.N(d), &effects.Volume{Streamer: tone, Base: 2, Volume: p.volume}),
		beep.Callback(func() { <-p.voices }),
	)
	p.lock()
	p.mixer.Add(voice)
	p.unlock()
	return true
}

// Active returns the number of voices currently sounding.
func (p *Pool) Active() int { return len(p.voices) }

// Stream pulls samples straight from the mixer. Only pools made with NewPool
// are drained this way; an opened pool is streamed by the speaker.
func (p *Pool) Stream(samples [][2]float64) (int, bool) {
	p.lock()
	defer p.unlock()
	return p.mixer.Stream(samples)
}

// Close stops the speaker if the pool owns one.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		p.lock()
		p.mixer.Clear()
		p.unlock()
		p.closeFn()
	})
	return nil
}
