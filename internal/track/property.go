package track

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Property is one animatable attribute of an object.
type Property uint8

const (
	Position Property = iota
	Rotation
	LocalRotation
	Scale
	Dissolve
	DissolveArrow
	Cuttable
	Time
)

var propertyNames = [...]string{
	Position:      "offsetPosition",
	Rotation:      "offsetWorldRotation",
	LocalRotation: "localRotation",
	Scale:         "scale",
	Dissolve:      "dissolve",
	DissolveArrow: "dissolveArrow",
	Cuttable:      "interactable",
	Time:          "time",
}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return fmt.Sprintf("property(%d)", p)
}

// Dimensions is the number of values a keyframe of this property carries.
func (p Property) Dimensions() int {
	switch p {
	case Position, Rotation, LocalRotation, Scale:
		return 3
	}
	return 1
}

// ParseProperty maps a custom data key onto a property.
func ParseProperty(name string) (Property, bool) {
	for i, n := range propertyNames {
		if n == name {
			return Property(i), true
		}
	}
	return 0, false
}

// The curve evaluators. A sample reports false when the curve has nothing
// to say at t.
type FloatCurve interface {
	SampleFloat(t float64) (float64, bool)
}

type Vector3Curve interface {
	SampleVector3(t float64) (mgl64.Vec3, bool)
}

type QuaternionCurve interface {
	SampleQuaternion(t float64) (mgl64.Quat, bool)
}

// Properties is a set of optional curves, one per property. A nil curve
// means the property is not animated by this set.
type Properties struct {
	Position      Vector3Curve
	Rotation      QuaternionCurve
	LocalRotation QuaternionCurve
	Scale         Vector3Curve
	Dissolve      FloatCurve
	DissolveArrow FloatCurve
	Cuttable      FloatCurve
	Time          FloatCurve
}

func (p *Properties) Empty() bool {
	return p == nil || (p.Position == nil &&
		p.Rotation == nil &&
		p.LocalRotation == nil &&
		p.Scale == nil &&
		p.Dissolve == nil &&
		p.DissolveArrow == nil &&
		p.Cuttable == nil &&
		p.Time == nil)
}

// Set stores curve under prop. The curve must implement the evaluator
// matching the property's value type.
func (p *Properties) Set(prop Property, curve interface{}) error {
	mismatch := fmt.Errorf("curve %T cannot animate %v", curve, prop)
	switch prop {
	case Position, Scale:
		c, ok := curve.(Vector3Curve)
		if !ok {
			return mismatch
		}
		if prop == Position {
			p.Position = c
		} else {
			p.Scale = c
		}
	case Rotation, LocalRotation:
		c, ok := curve.(QuaternionCurve)
		if !ok {
			return mismatch
		}
		if prop == Rotation {
			p.Rotation = c
		} else {
			p.LocalRotation = c
		}
	case Dissolve, DissolveArrow, Cuttable, Time:
		c, ok := curve.(FloatCurve)
		if !ok {
			return mismatch
		}
		switch prop {
		case Dissolve:
			p.Dissolve = c
		case DissolveArrow:
			p.DissolveArrow = c
		case Cuttable:
			p.Cuttable = c
		default:
			p.Time = c
		}
	default:
		return fmt.Errorf("unknown property %v", prop)
	}
	return nil
}
