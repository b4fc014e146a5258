package curve

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tidwall/gjson"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// nearVec compares per component, mgl64's relative comparison fails on
// rounding noise around zero.
func nearVec(a, b mgl64.Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) >= 1e-9 {
			return false
		}
	}
	return true
}

func mustParse(t *testing.T, raw string, dims int, lib *Library) *Definition {
	t.Helper()
	d, err := Parse(gjson.Parse(raw), dims, lib)
	if nil != err {
		t.Fatalf("unable to parse %v: %v", raw, err)
	}
	return d
}

var floatTests = map[float64]float64{
	-1:  0.5, // Held before the first keyframe
	0.4: 0.5,
	0.5: 0.75,
	0.6: 1,
	2:   1, // Held after the last keyframe
}

func TestSampleFloatHoldsOutsideRange(t *testing.T) {
	d := mustParse(t, `[[0.5, 0.4], [1, 0.6]]`, 1, nil)
	for at, expected := range floatTests {
		v, ok := d.SampleFloat(at)
		if !ok || !near(v, expected) {
			t.Errorf("t=%v: expected %v, got %v (%v)", at, expected, v, ok)
		}
	}
}

func TestSampleRejectsWrongDimensions(t *testing.T) {
	d := mustParse(t, `[[0, 0, 0, 0], [1, 1, 1, 1]]`, 3, nil)
	if _, ok := d.SampleFloat(0.5); ok {
		t.Error("three dimensional curve sampled as a float")
	}
	f := Static(1)
	if _, ok := f.SampleVector3(0.5); ok {
		t.Error("one dimensional curve sampled as a vector")
	}
	if _, ok := f.SampleQuaternion(0.5); ok {
		t.Error("one dimensional curve sampled as a rotation")
	}
}

func TestSampleVector3Linear(t *testing.T) {
	d := mustParse(t, `[[0, 0, 0, 0], [2, 4, -2, 1]]`, 3, nil)
	v, ok := d.SampleVector3(0.25)
	expected := mgl64.Vec3{0.5, 1, -0.5}
	if !ok || !v.ApproxEqual(expected) {
		t.Errorf("expected %v, got %v", expected, v)
	}
}

func TestEasingAppliesToSegmentEnd(t *testing.T) {
	linear := mustParse(t, `[[0, 0], [1, 1]]`, 1, nil)
	eased := mustParse(t, `[[0, 0], [1, 1, "easeInQuad"]]`, 1, nil)
	l, _ := linear.SampleFloat(0.5)
	e, _ := eased.SampleFloat(0.5)
	if !near(l, 0.5) || !near(e, 0.25) {
		t.Errorf("expected 0.5 and 0.25, got %v and %v", l, e)
	}
}

func TestStepEasing(t *testing.T) {
	d := mustParse(t, `[[0, 0], [1, 1, "easeStep"]]`, 1, nil)
	if v, _ := d.SampleFloat(0.99); !near(v, 0) {
		t.Errorf("step should hold 0 before the keyframe, got %v", v)
	}
	if v, _ := d.SampleFloat(1); !near(v, 1) {
		t.Errorf("step should reach 1 at the keyframe, got %v", v)
	}
}

func TestSplinePassesThroughKeyframes(t *testing.T) {
	d := mustParse(t, `[[0, 0, 0, 0], [1, 1, 0, 0.5, "splineCatmullRom"], [2, 0, 0, 1, "splineCatmullRom"]]`, 3, nil)
	for at, expected := range map[float64]mgl64.Vec3{
		0:   {0, 0, 0},
		0.5: {1, 1, 0},
		1:   {2, 0, 0},
	} {
		v, _ := d.SampleVector3(at)
		if !v.ApproxEqual(expected) {
			t.Errorf("t=%v: expected %v, got %v", at, expected, v)
		}
	}
	mid, _ := d.SampleVector3(0.25)
	if mid.Y() <= 0.5 {
		t.Errorf("spline should bow above the straight line, got %v", mid)
	}
}

func TestSampleQuaternionSlerps(t *testing.T) {
	d := mustParse(t, `[[0, 0, 0, 0], [0, 90, 0, 1]]`, 3, nil)
	q, ok := d.SampleQuaternion(0.5)
	expected := Euler(mgl64.Vec3{0, 45, 0})
	if !ok || !q.OrientationEqualThreshold(expected, 1e-6) {
		t.Errorf("expected %v, got %v", expected, q)
	}
}

func TestEulerOrder(t *testing.T) {
	// z first, then x, then y
	q := Euler(mgl64.Vec3{90, 90, 0})
	v := q.Rotate(mgl64.Vec3{0, 0, 1})
	// x by 90 takes forward to down, y by 90 leaves down in place
	expected := mgl64.Vec3{0, -1, 0}
	if !nearVec(v, expected) {
		t.Errorf("expected %v, got %v", expected, v)
	}
	// z by 90 takes right to up
	if v := Euler(mgl64.Vec3{0, 0, 90}).Rotate(mgl64.Vec3{1, 0, 0}); !nearVec(v, mgl64.Vec3{0, 1, 0}) {
		t.Errorf("expected [0 1 0], got %v", v)
	}
}

func TestShortForms(t *testing.T) {
	s := mustParse(t, `[0.25]`, 1, nil)
	if v, _ := s.SampleFloat(10); !near(v, 0.25) {
		t.Errorf("static float expected 0.25, got %v", v)
	}
	v := mustParse(t, `[1, 2, 3]`, 3, nil)
	if got, _ := v.SampleVector3(-5); !got.ApproxEqual(mgl64.Vec3{1, 2, 3}) {
		t.Errorf("static vector expected [1 2 3], got %v", got)
	}
}

func TestNamedDefinitions(t *testing.T) {
	lib := NewLibrary(gjson.Parse(`{"fadeIn": [[0, 0], [1, 1]], "alias": "fadeIn"}`))
	if lib.Len() != 2 {
		t.Fatalf("expected 2 definitions, got %v", lib.Len())
	}
	d := mustParse(t, `"fadeIn"`, 1, lib)
	if v, _ := d.SampleFloat(0.5); !near(v, 0.5) {
		t.Errorf("expected 0.5, got %v", v)
	}
	if _, err := Parse(gjson.Parse(`"alias"`), 1, lib); nil == err {
		t.Error("expected an error for a name referring to a name")
	}

	legacy := NewLibrary(gjson.Parse(`[{"_name": "up", "_points": [[0, 1, 0, 0]]}]`))
	if _, err := Parse(gjson.Parse(`"up"`), 3, legacy); nil != err {
		t.Errorf("unable to parse legacy definition: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		`"missing"`:                    "unknown point definition",
		`{}`:                           "must be a list",
		`[]`:                           "no points",
		`[[0, 0, 0]]`:                  "needs 3 values",
		`[[0, 0, 0, 0, "easeWobble"]]`: "unknown easing",
		`[[0, 0, 0, 0, "lerpHSV"]]`:    "unknown keyframe flag",
		`[["a", 0, 0, 0]]`:             "expected number",
	}
	for raw, expected := range tests {
		_, err := Parse(gjson.Parse(raw), 3, nil)
		if nil == err || !strings.Contains(err.Error(), expected) {
			t.Errorf("%v: expected error containing %q, got %v", raw, expected, err)
		}
	}
}

var sink float64

func BenchmarkSampleFloat(b *testing.B) {
	points := make([]Point, 64)
	for i := range points {
		points[i] = Point{Values: []float64{float64(i % 2)}, Time: float64(i) / 63}
	}
	d, _ := New(1, points...)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		v, _ := d.SampleFloat(float64(n%100) / 100)
		sink += v
	}
}
