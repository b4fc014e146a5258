package animation

import "github.com/go-gl/mathgl/mgl64"

// Orientation is an object's rotation after offsets are applied.
type Orientation struct {
	// World is the offset world rotation and WorldInverse its inverse. Both
	// are only meaningful when a world offset was applied.
	World        Optional[mgl64.Quat]
	WorldInverse mgl64.Quat
	// Final is the rotation of the object's transform.
	Final mgl64.Quat
}

// Compose recomposes rotations in a fixed order: the world offset onto the
// captured world rotation, then the captured local rotation, then the local
// offset. It reports false when there is no offset at all.
func Compose(world, local mgl64.Quat, offset, localOffset Optional[mgl64.Quat]) (Orientation, bool) {
	if !offset.Valid && !localOffset.Valid {
		return Orientation{}, false
	}
	var o Orientation
	rotation := world
	if offset.Valid {
		rotation = rotation.Mul(offset.Value)
		o.World = Some(rotation)
		o.WorldInverse = rotation.Inverse()
	}
	rotation = rotation.Mul(local)
	if localOffset.Valid {
		rotation = rotation.Mul(localOffset.Value)
	}
	o.Final = rotation
	return o, true
}
