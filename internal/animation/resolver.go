package animation

import (
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/noodle/internal/track"
)

// Resolver evaluates tracks and an object's direct curves at a normalized
// time. For every property the last track in the list with a value wins,
// then the direct curves, otherwise the property is absent. The time is not
// clamped; extrapolation is up to the curves.
type Resolver struct{}

func (Resolver) Evaluate(tracks []*track.Track, direct *track.Properties, t float64) Frame {
	return Frame{
		Position:      vector3(tracks, direct, t, func(p *track.Properties) track.Vector3Curve { return p.Position }),
		Rotation:      quaternion(tracks, direct, t, func(p *track.Properties) track.QuaternionCurve { return p.Rotation }),
		LocalRotation: quaternion(tracks, direct, t, func(p *track.Properties) track.QuaternionCurve { return p.LocalRotation }),
		Scale:         vector3(tracks, direct, t, func(p *track.Properties) track.Vector3Curve { return p.Scale }),
		Dissolve:      scalar(tracks, direct, t, func(p *track.Properties) track.FloatCurve { return p.Dissolve }),
		DissolveArrow: scalar(tracks, direct, t, func(p *track.Properties) track.FloatCurve { return p.DissolveArrow }),
		Cuttable:      scalar(tracks, direct, t, func(p *track.Properties) track.FloatCurve { return p.Cuttable }),
	}
}

// Time resolves the time remapping curve with the same precedence as the
// other properties.
func (Resolver) Time(tracks []*track.Track, direct *track.Properties, t float64) Optional[float64] {
	return scalar(tracks, direct, t, func(p *track.Properties) track.FloatCurve { return p.Time })
}

func scalar(tracks []*track.Track, direct *track.Properties, t float64, pick func(*track.Properties) track.FloatCurve) Optional[float64] {
	for i := len(tracks) - 1; i >= 0; i-- {
		if tracks[i] == nil {
			continue
		}
		if c := pick(tracks[i].Properties()); c != nil {
			if v, ok := c.SampleFloat(t); ok {
				return Some(v)
			}
		}
	}
	if direct != nil {
		if c := pick(direct); c != nil {
			if v, ok := c.SampleFloat(t); ok {
				return Some(v)
			}
		}
	}
	return Optional[float64]{}
}

func vector3(tracks []*track.Track, direct *track.Properties, t float64, pick func(*track.Properties) track.Vector3Curve) Optional[mgl64.Vec3] {
	for i := len(tracks) - 1; i >= 0; i-- {
		if tracks[i] == nil {
			continue
		}
		if c := pick(tracks[i].Properties()); c != nil {
			if v, ok := c.SampleVector3(t); ok {
				return Some(v)
			}
		}
	}
	if direct != nil {
		if c := pick(direct); c != nil {
			if v, ok := c.SampleVector3(t); ok {
				return Some(v)
			}
		}
	}
	return Optional[mgl64.Vec3]{}
}

func quaternion(tracks []*track.Track, direct *track.Properties, t float64, pick func(*track.Properties) track.QuaternionCurve) Optional[mgl64.Quat] {
	for i := len(tracks) - 1; i >= 0; i-- {
		if tracks[i] == nil {
			continue
		}
		if c := pick(tracks[i].Properties()); c != nil {
			if v, ok := c.SampleQuaternion(t); ok {
				return Some(v)
			}
		}
	}
	if direct != nil {
		if c := pick(direct); c != nil {
			if v, ok := c.SampleQuaternion(t); ok {
				return Some(v)
			}
		}
	}
	return Optional[mgl64.Quat]{}
}
