// Package animation composes the values of several tracks and an object's
// own curves into one frame of optional property values.
package animation

import "github.com/go-gl/mathgl/mgl64"

// Optional is a value that may be absent. Absent means "leave the property
// alone", which is not the same as a zero value.
type Optional[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// Or returns the value, or fallback when absent.
func (o Optional[T]) Or(fallback T) T {
	if o.Valid {
		return o.Value
	}
	return fallback
}

// Frame is the composed result for one object on one tick.
type Frame struct {
	Position      Optional[mgl64.Vec3]
	Rotation      Optional[mgl64.Quat]
	LocalRotation Optional[mgl64.Quat]
	Scale         Optional[mgl64.Vec3]
	Dissolve      Optional[float64]
	DissolveArrow Optional[float64]
	Cuttable      Optional[float64]
}

func (f Frame) Empty() bool {
	return !f.Position.Valid &&
		!f.Rotation.Valid &&
		!f.LocalRotation.Valid &&
		!f.Scale.Valid &&
		!f.Dissolve.Valid &&
		!f.DissolveArrow.Valid &&
		!f.Cuttable.Valid
}
