// Package host is a small simulated game engine. It moves spawned objects
// along floor and jump trajectories and exposes the state the applicator
// writes into.
package host

import (
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/noodle/internal/apply"
	"git.lost.host/meutraa/noodle/internal/game"
	"git.lost.host/meutraa/noodle/internal/objectdata"
)

// Trajectory is a straight movement from Start to End in the space given by
// WorldRotation.
type Trajectory struct {
	Start, End           mgl64.Vec3
	WorldRotation        mgl64.Quat
	InverseWorldRotation mgl64.Quat
}

func (t *Trajectory) SetAnchors(start, end mgl64.Vec3) {
	t.Start, t.End = start, end
}

func (t *Trajectory) SetWorldRotation(rotation, inverse mgl64.Quat) {
	t.WorldRotation, t.InverseWorldRotation = rotation, inverse
}

// Position is the world position at progress p, clamped to [0, 1].
func (t *Trajectory) Position(p float64) mgl64.Vec3 {
	p = mgl64.Clamp(p, 0, 1)
	local := t.Start.Add(t.End.Sub(t.Start).Mul(p))
	return t.WorldRotation.Rotate(local)
}

type Transform struct {
	LocalRotation mgl64.Quat
	LocalScale    mgl64.Vec3
}

func (t *Transform) SetLocalRotation(q mgl64.Quat) { t.LocalRotation = q }

func (t *Transform) SetLocalScale(v mgl64.Vec3) { t.LocalScale = v }

type Collider struct {
	CanBeCut bool
}

func (c *Collider) SetCanBeCut(v bool) { c.CanBeCut = v }

// Object is a spawned beatmap object.
type Object struct {
	id           game.ObjectID
	data         *game.Object
	jumpDuration float64
	moveDuration float64
	baseline     objectdata.Baseline

	floor, jump Trajectory
	transform   Transform
	colliders   []*Collider
}

func newObject(id game.ObjectID, data *game.Object, jumpDuration, moveDuration float64, baseline objectdata.Baseline) *Object {
	o := &Object{
		id:           id,
		data:         data,
		jumpDuration: jumpDuration,
		moveDuration: moveDuration,
		baseline:     baseline,
		transform:    Transform{LocalRotation: baseline.LocalRotation, LocalScale: mgl64.Vec3{1, 1, 1}},
	}
	o.place(baseline)

	// Colour notes are cut by a big and a small box, bombs and obstacles by
	// a single one, sliders cannot be cut.
	colliders := 0
	switch {
	case data.Kind == game.KindNote && data.Color != game.ColorNone:
		colliders = 2
	case data.Kind == game.KindNote, data.Kind == game.KindObstacle:
		colliders = 1
	}
	for i := 0; i < colliders; i++ {
		o.colliders = append(o.colliders, &Collider{CanBeCut: true})
	}
	return o
}

// place moves both trajectories onto a set of anchors.
func (o *Object) place(a objectdata.Baseline) {
	inverse := a.WorldRotation.Inverse()
	o.floor = Trajectory{Start: a.Start, End: a.Mid, WorldRotation: a.WorldRotation, InverseWorldRotation: inverse}
	o.jump = Trajectory{Start: a.Mid, End: a.End, WorldRotation: a.WorldRotation, InverseWorldRotation: inverse}
	o.transform.LocalRotation = a.LocalRotation
}

func (o *Object) ID() game.ObjectID { return o.id }
func (o *Object) Data() *game.Object { return o.data }
func (o *Object) JumpDuration() float64 { return o.jumpDuration }
func (o *Object) Baseline() objectdata.Baseline { return o.baseline }
func (o *Object) Floor() apply.Trajectory { return &o.floor }
func (o *Object) Jump() apply.Trajectory { return &o.jump }
func (o *Object) Transform() apply.Transform { return &o.transform }
func (o *Object) LocalRotation() mgl64.Quat { return o.transform.LocalRotation }
func (o *Object) LocalScale() mgl64.Vec3 { return o.transform.LocalScale }

func (o *Object) Colliders() []apply.Collider {
	out := make([]apply.Collider, len(o.colliders))
	for i, c := range o.colliders {
		out[i] = c
	}
	return out
}

// Cuttable reports whether any of the object's colliders can be cut.
func (o *Object) Cuttable() bool {
	for _, c := range o.colliders {
		if c.CanBeCut {
			return true
		}
	}
	return false
}

// jumpStart is the song time the object leaves the floor.
func (o *Object) jumpStart() float64 {
	return o.data.Time - o.jumpDuration*0.5
}

func (o *Object) spawnTime() float64 {
	return o.jumpStart() - o.moveDuration
}

func (o *Object) despawnTime() float64 {
	return o.data.End() + o.jumpDuration*0.5
}

// Position is where the object is at songTime.
func (o *Object) Position(songTime float64) mgl64.Vec3 {
	start := o.jumpStart()
	if songTime < start {
		if o.moveDuration <= 0 {
			return o.floor.Position(1)
		}
		return o.floor.Position(1 - (start-songTime)/o.moveDuration)
	}
	span := o.despawnTime() - start
	if span <= 0 {
		return o.jump.Position(1)
	}
	return o.jump.Position((songTime - start) / span)
}
