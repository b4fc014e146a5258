package game

import "github.com/tidwall/gjson"

// ObjectID identifies a live, spawned object. It is assigned by the host
// when an object spawns and is never reused within a session.
type ObjectID uint64

type Kind uint8

const (
	KindNote Kind = iota
	KindObstacle
	KindSlider
	kindCount
)

// KindCount is the number of object kinds.
const KindCount = int(kindCount)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindObstacle:
		return "obstacle"
	case KindSlider:
		return "slider"
	}
	return "unknown"
}

type ColorType int8

const (
	ColorNone ColorType = iota - 1 // Bombs
	ColorA
	ColorB
)

type Object struct {
	Index        int // Position in the beatmap, stable across spawns
	Kind         Kind
	Beat         float64
	Time         float64 // Seconds from the start of the song
	Line         int     // Column, 0 is leftmost
	Layer        int     // Row, 0 is the floor
	Color        ColorType
	CutDirection int

	// Obstacles
	Duration float64 // Seconds
	Width    int
	Height   int

	// Sliders
	TailTime  float64 // Seconds
	TailLine  int
	TailLayer int

	Custom gjson.Result // Raw customData tree, may not exist
}

// HasArrow reports whether the object is drawn with a directional arrow.
func (o *Object) HasArrow() bool {
	return o.Kind == KindNote && o.Color != ColorNone
}

// End is the time the object leaves the play area.
func (o *Object) End() float64 {
	switch o.Kind {
	case KindObstacle:
		return o.Time + o.Duration
	case KindSlider:
		return o.TailTime
	}
	return o.Time
}
