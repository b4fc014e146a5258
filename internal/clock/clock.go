// Package clock provides the song time, read from the position of the
// song's audio stream.
package clock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// DefaultSampleRate is used for silent clocks.
const DefaultSampleRate = beep.SampleRate(44100)

type Clock struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	playing  bool
	buffer   [][2]float64
}

// Open decodes an mp3, ogg or wav file.
func Open(path string) (*Clock, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, fmt.Errorf("unable to open audio: %w", err)
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg", ".egg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format %v", filepath.Ext(path))
	}
	if nil != err {
		f.Close()
		return nil, fmt.Errorf("unable to decode %v: %w", path, err)
	}
	return newClock(streamer, format), nil
}

// Silent is a clock of the given length with nothing to hear.
func Silent(length time.Duration, rate beep.SampleRate) *Clock {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return newClock(&silence{length: rate.N(length)}, beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
}

func newClock(streamer beep.StreamSeekCloser, format beep.Format) *Clock {
	return &Clock{
		streamer: streamer,
		format:   format,
		buffer:   make([][2]float64, 512),
	}
}

func (c *Clock) lock() func() {
	if !c.playing {
		return func() {}
	}
	speaker.Lock()
	return speaker.Unlock
}

// SongTime is the position in seconds.
func (c *Clock) SongTime() float64 {
	defer c.lock()()
	return c.format.SampleRate.D(c.streamer.Position()).Seconds()
}

// Length is the song length in seconds.
func (c *Clock) Length() float64 {
	return c.format.SampleRate.D(c.streamer.Len()).Seconds()
}

// Advance consumes d worth of samples without playing them. It reports
// false once the stream has ended.
func (c *Clock) Advance(d time.Duration) bool {
	if c.playing {
		return true
	}
	remaining := c.format.SampleRate.N(d)
	for remaining > 0 {
		chunk := c.buffer
		if remaining < len(chunk) {
			chunk = chunk[:remaining]
		}
		n, ok := c.streamer.Stream(chunk)
		remaining -= n
		if !ok || n == 0 {
			return false
		}
	}
	return c.streamer.Position() < c.streamer.Len()
}

// Seek moves to seconds, clamped to the stream.
func (c *Clock) Seek(seconds float64) error {
	p := c.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if p < 0 {
		p = 0
	}
	if l := c.streamer.Len(); p > l {
		p = l
	}
	defer c.lock()()
	if err := c.streamer.Seek(p); nil != err {
		return fmt.Errorf("unable to seek: %w", err)
	}
	return nil
}

// Play starts audible playback through the speaker after delay.
func (c *Clock) Play(delay time.Duration) error {
	if c.playing {
		return errors.New("clock is already playing")
	}
	rate := c.format.SampleRate
	if err := speaker.Init(rate, rate.N(time.Second/60)); nil != err {
		return fmt.Errorf("unable to initialise speaker: %w", err)
	}
	c.ctrl = &beep.Ctrl{Streamer: c.streamer}
	c.playing = true
	go func() {
		time.Sleep(delay)
		speaker.Play(c.ctrl)
	}()
	return nil
}

// SetPaused pauses or resumes audible playback.
func (c *Clock) SetPaused(paused bool) {
	if !c.playing {
		return
	}
	speaker.Lock()
	c.ctrl.Paused = paused
	speaker.Unlock()
}

func (c *Clock) Close() error {
	if c.playing {
		c.SetPaused(true)
	}
	return c.streamer.Close()
}

type silence struct {
	position, length int
}

func (s *silence) Stream(samples [][2]float64) (int, bool) {
	if s.position >= s.length {
		return 0, false
	}
	n := len(samples)
	if remaining := s.length - s.position; remaining < n {
		n = remaining
	}
	for i := range samples[:n] {
		samples[i] = [2]float64{}
	}
	s.position += n
	return n, true
}

func (s *silence) Err() error    { return nil }
func (s *silence) Len() int      { return s.length }
func (s *silence) Position() int { return s.position }
func (s *silence) Close() error  { return nil }

func (s *silence) Seek(p int) error {
	if p < 0 || p > s.length {
		return fmt.Errorf("seek position %v out of range [0, %v]", p, s.length)
	}
	s.position = p
	return nil
}
