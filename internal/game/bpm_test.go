package game

import (
	"math"
	"testing"
)

var rates = []BPM{
	{StartingBeat: 0, Value: 120},
	{StartingBeat: 8, Value: 60},
	{StartingBeat: 12, Value: 240},
}

var secondsTests = map[float64]float64{
	0:  0,
	4:  2,
	8:  4,
	10: 6,
	12: 8,
	16: 9,
}

func TestSeconds(t *testing.T) {
	for beat, expected := range secondsTests {
		if s := Seconds(rates, beat); math.Abs(s-expected) > 1e-9 {
			t.Log(beat, "expected", expected, "got", s)
			t.Fail()
		}
	}
	if s := Seconds(nil, 10); s != 0 {
		t.Errorf("no rates should give 0, got %v", s)
	}
}

func TestLengthFallsBackToObjects(t *testing.T) {
	b := Beatmap{
		Objects: []*Object{
			{Kind: KindNote, Time: 3},
			{Kind: KindObstacle, Time: 2, Duration: 4},
			{Kind: KindSlider, Time: 1, TailTime: 5},
		},
		Events: []*CustomEvent{{Time: 5.5}},
	}
	if l := b.Length(); l != 6 {
		t.Errorf("expected 6, got %v", l)
	}
	b.Info.SongLength = 100
	if l := b.Length(); l != 100 {
		t.Errorf("expected 100, got %v", l)
	}
}

func TestHasArrow(t *testing.T) {
	objects := map[*Object]bool{
		{Kind: KindNote, Color: ColorA}:     true,
		{Kind: KindNote, Color: ColorB}:     true,
		{Kind: KindNote, Color: ColorNone}:  false,
		{Kind: KindObstacle, Color: ColorA}: false,
	}
	for o, expected := range objects {
		if o.HasArrow() != expected {
			t.Errorf("%v color %v: expected %v", o.Kind, o.Color, expected)
		}
	}
}
