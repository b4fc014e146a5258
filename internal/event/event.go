// Package event decodes the beatmap's custom events and fires them as song
// time advances.
package event

import (
	"github.com/tidwall/gjson"

	"git.lost.host/meutraa/noodle/internal/game"
)

const TypeAssignPlayerToTrack = "AssignPlayerToTrack"

type Kind uint8

const (
	KindUnknown Kind = iota
	KindAssignPlayerToTrack
)

func (k Kind) String() string {
	switch k {
	case KindAssignPlayerToTrack:
		return TypeAssignPlayerToTrack
	}
	return "unknown"
}

// AssignPlayerToTrack binds the player transform to a track. An empty name
// means the event carried no usable track.
type AssignPlayerToTrack struct {
	Track string
}

// Unknown is any event this package does not act on.
type Unknown struct {
	Type string
}

// Event is a decoded custom event. Payload is AssignPlayerToTrack or
// Unknown, matching Kind.
type Event struct {
	Time    float64
	Kind    Kind
	Payload interface{}
}

func Decode(e *game.CustomEvent) Event {
	switch e.Type {
	case TypeAssignPlayerToTrack:
		return Event{
			Time:    e.Time,
			Kind:    KindAssignPlayerToTrack,
			Payload: AssignPlayerToTrack{Track: trackName(e.Data)},
		}
	}
	return Event{Time: e.Time, Kind: KindUnknown, Payload: Unknown{Type: e.Type}}
}

func trackName(data gjson.Result) string {
	v := data.Get("track")
	if !v.Exists() {
		v = data.Get("_track")
	}
	if v.Type != gjson.String {
		return ""
	}
	return v.String()
}

// DecodeAll decodes events in timeline order.
func DecodeAll(events []*game.CustomEvent) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if nil == e {
			continue
		}
		out = append(out, Decode(e))
	}
	return out
}
