// Package curve samples keyframed point definitions. Values are held
// constant before the first and after the last keyframe.
package curve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

type Point struct {
	Values []float64
	Time   float64
	Easing ease.TweenFunc // Applied to the segment ending at this point
	Spline bool           // Catmull-Rom into this point, vectors only
}

type Definition struct {
	points []Point
	dims   int
}

// New builds a definition of dims-valued keyframes, sorted by time.
func New(dims int, points ...Point) (*Definition, error) {
	if len(points) == 0 {
		return nil, errors.New("point definition has no points")
	}
	for i, p := range points {
		if len(p.Values) != dims {
			return nil, fmt.Errorf("point %v has %v values, expected %v", i, len(p.Values), dims)
		}
	}
	sorted := append([]Point(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return &Definition{points: sorted, dims: dims}, nil
}

// Static is a definition with a single keyframe.
func Static(values ...float64) *Definition {
	return &Definition{points: []Point{{Values: values}}, dims: len(values)}
}

// segment finds the keyframes around t and the eased progress between them.
func (d *Definition) segment(t float64) (int, int, float64) {
	last := len(d.points) - 1
	if t <= d.points[0].Time {
		return 0, 0, 0
	}
	if t >= d.points[last].Time {
		return last, last, 0
	}
	r := sort.Search(len(d.points), func(i int) bool {
		return d.points[i].Time > t
	})
	l := r - 1
	span := d.points[r].Time - d.points[l].Time
	if span <= 0 {
		return r, r, 0
	}
	return l, r, apply(d.points[r].Easing, (t-d.points[l].Time)/span)
}

func (d *Definition) SampleFloat(t float64) (float64, bool) {
	if d == nil || d.dims != 1 || len(d.points) == 0 {
		return 0, false
	}
	l, r, p := d.segment(t)
	a, b := d.points[l].Values[0], d.points[r].Values[0]
	return a + (b-a)*p, true
}

func (d *Definition) vector(i int) mgl64.Vec3 {
	v := d.points[i].Values
	return mgl64.Vec3{v[0], v[1], v[2]}
}

func (d *Definition) SampleVector3(t float64) (mgl64.Vec3, bool) {
	if d == nil || d.dims != 3 || len(d.points) == 0 {
		return mgl64.Vec3{}, false
	}
	l, r, p := d.segment(t)
	if l == r {
		return d.vector(l), true
	}
	if d.points[r].Spline {
		p0 := d.vector(max(l-1, 0))
		p3 := d.vector(min(r+1, len(d.points)-1))
		return catmullRom(p0, d.vector(l), d.vector(r), p3, p), true
	}
	a, b := d.vector(l), d.vector(r)
	return a.Add(b.Sub(a).Mul(p)), true
}

// SampleQuaternion reads keyframes as euler angles in degrees and slerps
// between them.
func (d *Definition) SampleQuaternion(t float64) (mgl64.Quat, bool) {
	if d == nil || d.dims != 3 || len(d.points) == 0 {
		return mgl64.QuatIdent(), false
	}
	l, r, p := d.segment(t)
	a := Euler(d.vector(l))
	if l == r {
		return a, true
	}
	return mgl64.QuatSlerp(a, Euler(d.vector(r)), p), true
}

func catmullRom(p0, p1, p2, p3 mgl64.Vec3, t float64) mgl64.Vec3 {
	t2 := t * t
	t3 := t2 * t
	a := p1.Mul(2)
	b := p2.Sub(p0).Mul(t)
	c := p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)
	e := p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(t3)
	return a.Add(b).Add(c).Add(e).Mul(0.5)
}

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// Euler converts angles in degrees to a rotation applied about z, then x,
// then y.
func Euler(degrees mgl64.Vec3) mgl64.Quat {
	x := mgl64.QuatRotate(mgl64.DegToRad(degrees[0]), axisX)
	y := mgl64.QuatRotate(mgl64.DegToRad(degrees[1]), axisY)
	z := mgl64.QuatRotate(mgl64.DegToRad(degrees[2]), axisZ)
	return y.Mul(x).Mul(z)
}
