// Package objectdata holds the per-object animation descriptors built from a
// beatmap's custom data and the live copies attached to spawned objects.
package objectdata

import (
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/noodle/internal/animation"
	"git.lost.host/meutraa/noodle/internal/track"
)

// Baseline is what the host computed for an object at spawn, before any
// animation touches it.
type Baseline struct {
	Start, Mid, End mgl64.Vec3
	WorldRotation   mgl64.Quat
	LocalRotation   mgl64.Quat
}

// Anchors are the baseline values captured on a descriptor. Offsets are
// always applied to these, never to the host's already animated state.
type Anchors struct {
	Start, Mid, End animation.Optional[mgl64.Vec3]
	WorldRotation   animation.Optional[mgl64.Quat]
	LocalRotation   animation.Optional[mgl64.Quat]
}

// Descriptor is the animation data of one object.
type Descriptor struct {
	Tracks    []*track.Track
	Animation *track.Properties
	Time      animation.Optional[float64]

	// Static overrides folded into the anchors on capture. Coordinates move
	// the whole path so that its mid point sits at x, y.
	Coordinates   animation.Optional[mgl64.Vec2]
	WorldRotation animation.Optional[mgl64.Quat]
	LocalRotation animation.Optional[mgl64.Quat]

	Anchors Anchors
}

// Animated reports whether there is anything to evaluate per tick.
func (d *Descriptor) Animated() bool {
	return d != nil && (len(d.Tracks) > 0 || (d.Animation != nil && !d.Animation.Empty()))
}

// Clone copies the descriptor for a single spawn. Tracks and curves are
// shared, anchors are not.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	c.Tracks = append([]*track.Track(nil), d.Tracks...)
	c.Anchors = Anchors{}
	return &c
}

// Capture records the anchors from the host baseline, with the static
// overrides applied.
func (d *Descriptor) Capture(b Baseline) {
	start, mid, end := b.Start, b.Mid, b.End
	if d.Coordinates.Valid {
		c := d.Coordinates.Value
		shift := mgl64.Vec3{c.X() - mid.X(), c.Y() - mid.Y(), 0}
		start, mid, end = start.Add(shift), mid.Add(shift), end.Add(shift)
	}
	d.Anchors = Anchors{
		Start:         animation.Some(start),
		Mid:           animation.Some(mid),
		End:           animation.Some(end),
		WorldRotation: animation.Some(d.WorldRotation.Or(b.WorldRotation)),
		LocalRotation: animation.Some(d.LocalRotation.Or(b.LocalRotation)),
	}
}

// Resolve returns the anchors, taking anything not captured from b.
func (d *Descriptor) Resolve(b Baseline) Baseline {
	return Baseline{
		Start:         d.Anchors.Start.Or(b.Start),
		Mid:           d.Anchors.Mid.Or(b.Mid),
		End:           d.Anchors.End.Or(b.End),
		WorldRotation: d.Anchors.WorldRotation.Or(b.WorldRotation),
		LocalRotation: d.Anchors.LocalRotation.Or(b.LocalRotation),
	}
}
