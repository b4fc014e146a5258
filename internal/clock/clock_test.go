package clock

import (
	"math"
	"testing"
	"time"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestSilentAdvance(t *testing.T) {
	c := Silent(2*time.Second, 1000)
	if !near(c.Length(), 2) {
		t.Fatalf("expected length 2, got %v", c.Length())
	}
	for i := 1; i <= 3; i++ {
		if !c.Advance(500 * time.Millisecond) {
			t.Fatalf("stream ended early at step %v", i)
		}
		if expected := float64(i) * 0.5; !near(c.SongTime(), expected) {
			t.Errorf("expected %v, got %v", expected, c.SongTime())
		}
	}
	if c.Advance(time.Second) {
		t.Error("expected the stream to end")
	}
	if !near(c.SongTime(), 2) {
		t.Errorf("expected to stop at the end, got %v", c.SongTime())
	}
}

func TestSeekClamps(t *testing.T) {
	c := Silent(time.Second, 1000)
	seeks := map[float64]float64{
		0.25: 0.25,
		-1:   0,
		5:    1,
	}
	for to, expected := range seeks {
		if err := c.Seek(to); nil != err {
			t.Fatal(err)
		}
		if !near(c.SongTime(), expected) {
			t.Errorf("seek %v: expected %v, got %v", to, expected, c.SongTime())
		}
	}
}

func TestOpenRejectsUnknownFormat(t *testing.T) {
	if _, err := Open("song.flac"); nil == err {
		t.Error("expected an error")
	}
}

func BenchmarkAdvance(b *testing.B) {
	c := Silent(time.Duration(b.N+1)*time.Second/60, DefaultSampleRate)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		c.Advance(time.Second / 60)
	}
}
