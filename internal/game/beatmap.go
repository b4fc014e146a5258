package game

import "github.com/tidwall/gjson"

type Info struct {
	BPM            float64
	NoteJumpSpeed  float64
	NoteJumpOffset float64
	SongLength     float64 // Seconds, 0 when unknown
}

type CustomEvent struct {
	Beat float64
	Time float64
	Type string
	Data gjson.Result
}

type Beatmap struct {
	Info    Info
	BPMs    []BPM
	Objects []*Object      // Sorted by time
	Events  []*CustomEvent // Sorted by time
	Custom  gjson.Result   // Beatmap level customData
	Sum     string         // Hash of the raw file

	NoteCount     int64
	ObstacleCount int64
	SliderCount   int64
}

// Length is the song length, falling back to the end of the last object.
func (b *Beatmap) Length() float64 {
	if b.Info.SongLength > 0 {
		return b.Info.SongLength
	}
	length := 0.0
	for _, o := range b.Objects {
		if e := o.End(); e > length {
			length = e
		}
	}
	for _, e := range b.Events {
		if e.Time > length {
			length = e.Time
		}
	}
	return length
}
