// Package apply writes evaluated animation frames into the host's object
// state once per tick.
package apply

import (
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/noodle/internal/game"
	"git.lost.host/meutraa/noodle/internal/objectdata"
)

// Trajectory is one of an object's movement phases, the floor approach or
// the jump.
type Trajectory interface {
	SetAnchors(start, end mgl64.Vec3)
	SetWorldRotation(rotation, inverse mgl64.Quat)
}

type Transform interface {
	SetLocalRotation(mgl64.Quat)
	SetLocalScale(mgl64.Vec3)
}

// Collider is one hit box of an object.
type Collider interface {
	SetCanBeCut(bool)
}

// Object is a live, spawned beatmap object.
type Object interface {
	ID() game.ObjectID
	Data() *game.Object
	// JumpDuration is the time the object takes to cross the jump phase, in
	// seconds.
	JumpDuration() float64
	Baseline() objectdata.Baseline
	Floor() Trajectory
	Jump() Trajectory
	Transform() Transform
	Colliders() []Collider
}

// CutoutSink receives dissolve values, 0 is invisible and 1 fully shown.
type CutoutSink interface {
	SetCutout(id game.ObjectID, value float64)
	SetArrowCutout(id game.ObjectID, value float64)
}

// PlayerTransform is the transform of the player's play space.
type PlayerTransform interface {
	SetLocalPosition(mgl64.Vec3)
	SetLocalRotation(mgl64.Quat)
}
