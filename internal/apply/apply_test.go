package apply

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/noodle/internal/animation"
	"git.lost.host/meutraa/noodle/internal/curve"
	"git.lost.host/meutraa/noodle/internal/event"
	"git.lost.host/meutraa/noodle/internal/game"
	"git.lost.host/meutraa/noodle/internal/objectdata"
	"git.lost.host/meutraa/noodle/internal/track"
)

type fakeTrajectory struct {
	start, end     mgl64.Vec3
	world, inverse mgl64.Quat
	anchorWrites   int
	rotationWrites int
}

func (f *fakeTrajectory) SetAnchors(start, end mgl64.Vec3) {
	f.start, f.end = start, end
	f.anchorWrites++
}

func (f *fakeTrajectory) SetWorldRotation(rotation, inverse mgl64.Quat) {
	f.world, f.inverse = rotation, inverse
	f.rotationWrites++
}

type fakeTransform struct {
	rotation        mgl64.Quat
	scale, position mgl64.Vec3
	writes          int
}

func (f *fakeTransform) SetLocalRotation(q mgl64.Quat) { f.rotation = q; f.writes++ }
func (f *fakeTransform) SetLocalScale(v mgl64.Vec3) { f.scale = v; f.writes++ }
func (f *fakeTransform) SetLocalPosition(v mgl64.Vec3) { f.position = v; f.writes++ }

type fakeCollider struct {
	cuttable bool
	writes   int
}

func (f *fakeCollider) SetCanBeCut(v bool) { f.cuttable = v; f.writes++ }

type fakeObject struct {
	id        game.ObjectID
	data      *game.Object
	jump      float64
	baseline  objectdata.Baseline
	floorT    fakeTrajectory
	jumpT     fakeTrajectory
	transform fakeTransform
	colliders []*fakeCollider
	explode   bool
}

func (f *fakeObject) ID() game.ObjectID { return f.id }
func (f *fakeObject) Data() *game.Object { return f.data }
func (f *fakeObject) JumpDuration() float64 { return f.jump }
func (f *fakeObject) Baseline() objectdata.Baseline { return f.baseline }
func (f *fakeObject) Floor() Trajectory { return &f.floorT }
func (f *fakeObject) Jump() Trajectory { return &f.jumpT }
func (f *fakeObject) Transform() Transform {
	if f.explode {
		panic("transform destroyed")
	}
	return &f.transform
}

func (f *fakeObject) Colliders() []Collider {
	out := make([]Collider, len(f.colliders))
	for i, c := range f.colliders {
		out[i] = c
	}
	return out
}

type fakeCutouts struct {
	cutout, arrow map[game.ObjectID]float64
}

func newCutouts() *fakeCutouts {
	return &fakeCutouts{cutout: map[game.ObjectID]float64{}, arrow: map[game.ObjectID]float64{}}
}

func (f *fakeCutouts) SetCutout(id game.ObjectID, v float64) { f.cutout[id] = v }
func (f *fakeCutouts) SetArrowCutout(id game.ObjectID, v float64) { f.arrow[id] = v }

var baseline = objectdata.Baseline{
	Start:         mgl64.Vec3{0, 0, 30},
	Mid:           mgl64.Vec3{0, 0, 10},
	End:           mgl64.Vec3{0, 0, -10},
	WorldRotation: mgl64.QuatIdent(),
	LocalRotation: mgl64.QuatIdent(),
}

func note(id game.ObjectID, color game.ColorType) *fakeObject {
	o := &fakeObject{
		id:       id,
		data:     &game.Object{Kind: game.KindNote, Time: 10, Color: color},
		jump:     1,
		baseline: baseline,
	}
	if color == game.ColorNone {
		o.colliders = []*fakeCollider{{}}
	} else {
		o.colliders = []*fakeCollider{{}, {}}
	}
	return o
}

type fixture struct {
	reg     *track.Registry
	store   *objectdata.Store
	cutouts *fakeCutouts
	app     *Applicator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{reg: track.NewRegistry(), store: objectdata.NewStore(), cutouts: newCutouts()}
	app, err := NewApplicator(f.store, f.cutouts)
	if nil != err {
		t.Fatal(err)
	}
	f.app = app
	return f
}

func (f *fixture) spawn(o *fakeObject, d *objectdata.Descriptor) {
	f.store.Spawn(o.id, d, o.baseline)
}

func set(t *testing.T, p interface{ Set(track.Property, interface{}) error }, prop track.Property, c interface{}) {
	t.Helper()
	if err := p.Set(prop, c); nil != err {
		t.Fatal(err)
	}
}

func linear(t *testing.T, from, to []float64) *curve.Definition {
	t.Helper()
	d, err := curve.New(len(from), curve.Point{Values: from, Time: 0}, curve.Point{Values: to, Time: 1})
	if nil != err {
		t.Fatal(err)
	}
	return d
}

func TestNoDescriptorNoWrites(t *testing.T) {
	f := newFixture(t)
	o := note(1, game.ColorA)
	if n := f.app.Tick(10, []Object{o}); n != 0 {
		t.Errorf("expected nothing animated, got %v", n)
	}
	if o.floorT.anchorWrites+o.jumpT.anchorWrites+o.transform.writes != 0 || len(f.cutouts.cutout) != 0 {
		t.Error("unexpected writes")
	}
}

func TestPositionOffsetUsesAnchors(t *testing.T) {
	f := newFixture(t)
	tr := f.reg.GetOrCreate("move")
	set(t, tr, track.Position, curve.Static(1, 2, 3))
	o := note(1, game.ColorA)
	f.spawn(o, &objectdata.Descriptor{Tracks: []*track.Track{tr}})

	// The host moving its own state must not compound offsets
	for i := 0; i < 3; i++ {
		f.app.Tick(10, []Object{o})
		o.baseline.Mid = o.baseline.Mid.Add(mgl64.Vec3{5, 5, 5})
	}
	offset := mgl64.Vec3{1, 2, 3}
	if o.floorT.start != baseline.Start.Add(offset) || o.floorT.end != baseline.Mid.Add(offset) {
		t.Errorf("unexpected floor %v %v", o.floorT.start, o.floorT.end)
	}
	if o.jumpT.start != baseline.Mid.Add(offset) || o.jumpT.end != baseline.End.Add(offset) {
		t.Errorf("unexpected jump %v %v", o.jumpT.start, o.jumpT.end)
	}
	if o.floorT.rotationWrites != 0 || o.transform.writes != 0 {
		t.Error("only positions should have been written")
	}
}

func TestNormalTime(t *testing.T) {
	f := newFixture(t)
	direct := &track.Properties{}
	set(t, direct, track.Dissolve, linear(t, []float64{0}, []float64{1}))

	objects := map[*fakeObject]float64{
		note(1, game.ColorA): 0.5,
		{id: 2, data: &game.Object{Kind: game.KindObstacle, Time: 10, Duration: 1}, jump: 1}:     0.25,
		{id: 3, data: &game.Object{Kind: game.KindSlider, Time: 10, TailTime: 13}, jump: 1}:      0.125,
		{id: 4, data: &game.Object{Kind: game.KindNote, Time: 10}, jump: 0}:                      -1,
		{id: 5, data: &game.Object{Kind: game.KindNote, Time: 10, Color: game.ColorA}, jump: -2}: -1,
	}
	for o, expected := range objects {
		f.spawn(o, &objectdata.Descriptor{Animation: direct})
		f.app.Tick(10, []Object{o})
		v, ok := f.cutouts.cutout[o.id]
		if expected < 0 {
			if ok {
				t.Errorf("object %v: a non-positive jump duration must be skipped", o.id)
			}
			continue
		}
		if !ok || math.Abs(v-expected) > 1e-9 {
			t.Errorf("object %v: expected %v, got %v", o.id, expected, v)
		}
	}
}

func TestExplicitTimeAndRemap(t *testing.T) {
	f := newFixture(t)
	direct := &track.Properties{}
	set(t, direct, track.Dissolve, linear(t, []float64{0}, []float64{1}))

	explicit := note(1, game.ColorA)
	f.spawn(explicit, &objectdata.Descriptor{Animation: direct, Time: animation.Some(0.8)})
	f.app.Tick(-100, []Object{explicit})
	if v := f.cutouts.cutout[1]; math.Abs(v-0.8) > 1e-9 {
		t.Errorf("expected explicit time 0.8, got %v", v)
	}

	remap := f.reg.GetOrCreate("remap")
	set(t, remap, track.Time, curve.Static(0.1))
	remapped := note(2, game.ColorA)
	f.spawn(remapped, &objectdata.Descriptor{Tracks: []*track.Track{remap}, Animation: direct})
	f.app.Tick(10, []Object{remapped})
	if v := f.cutouts.cutout[2]; math.Abs(v-0.1) > 1e-9 {
		t.Errorf("expected remapped time 0.1, got %v", v)
	}
}

func TestRotationWrites(t *testing.T) {
	f := newFixture(t)
	tr := f.reg.GetOrCreate("spin")
	set(t, tr, track.Rotation, curve.Static(0, 90, 0))
	set(t, tr, track.LocalRotation, curve.Static(0, 0, 90))
	o := note(1, game.ColorA)
	o.baseline.LocalRotation = curve.Euler(mgl64.Vec3{90, 0, 0})
	f.spawn(o, &objectdata.Descriptor{Tracks: []*track.Track{tr}})
	f.app.Tick(10, []Object{o})

	world := curve.Euler(mgl64.Vec3{0, 90, 0})
	expected := world.Mul(o.baseline.LocalRotation).Mul(curve.Euler(mgl64.Vec3{0, 0, 90}))
	if !o.transform.rotation.ApproxEqual(expected) {
		t.Errorf("expected %v, got %v", expected, o.transform.rotation)
	}
	for name, tr := range map[string]*fakeTrajectory{"floor": &o.floorT, "jump": &o.jumpT} {
		if tr.rotationWrites != 1 || !tr.world.ApproxEqual(world) {
			t.Errorf("%v: unexpected world rotation %v", name, tr.world)
		}
		if !tr.world.Mul(tr.inverse).ApproxEqual(mgl64.QuatIdent()) {
			t.Errorf("%v: inverse does not match", name)
		}
	}
}

func TestLocalRotationLeavesWorldAlone(t *testing.T) {
	f := newFixture(t)
	direct := &track.Properties{}
	set(t, direct, track.LocalRotation, curve.Static(0, 0, 45))
	o := note(1, game.ColorA)
	f.spawn(o, &objectdata.Descriptor{Animation: direct})
	f.app.Tick(10, []Object{o})
	if o.floorT.rotationWrites+o.jumpT.rotationWrites != 0 {
		t.Error("world rotation written without a world offset")
	}
	if o.transform.writes != 1 {
		t.Errorf("expected one transform write, got %v", o.transform.writes)
	}
}

func TestCuttableAndDissolve(t *testing.T) {
	f := newFixture(t)
	direct := &track.Properties{}
	set(t, direct, track.Cuttable, curve.Static(0.99))
	set(t, direct, track.DissolveArrow, curve.Static(0.5))
	set(t, direct, track.Scale, curve.Static(2, 2, 2))

	colored, bomb := note(1, game.ColorB), note(2, game.ColorNone)
	for _, o := range []*fakeObject{colored, bomb} {
		f.spawn(o, &objectdata.Descriptor{Animation: direct})
		for _, c := range o.colliders {
			c.cuttable = true
		}
	}
	f.app.Tick(10, []Object{colored, bomb})

	for _, o := range []*fakeObject{colored, bomb} {
		for i, c := range o.colliders {
			if c.cuttable || c.writes != 1 {
				t.Errorf("object %v collider %v: 0.99 must disable cutting", o.id, i)
			}
		}
		if o.transform.scale != (mgl64.Vec3{2, 2, 2}) {
			t.Errorf("object %v: unexpected scale %v", o.id, o.transform.scale)
		}
	}
	if len(colored.colliders) != 2 {
		t.Error("colour notes carry big and small colliders")
	}
	if _, ok := f.cutouts.arrow[1]; !ok {
		t.Error("expected an arrow cutout for the colour note")
	}
	if _, ok := f.cutouts.arrow[2]; ok {
		t.Error("bombs have no arrow to dissolve")
	}
	if _, ok := f.cutouts.cutout[1]; ok {
		t.Error("dissolve was never animated")
	}
}

func TestCuttableCrossesThreshold(t *testing.T) {
	f := newFixture(t)
	a := f.reg.GetOrCreate("A")
	c, err := curve.New(1, curve.Point{Values: []float64{0.5}, Time: 0.4}, curve.Point{Values: []float64{1}, Time: 0.6})
	if nil != err {
		t.Fatal(err)
	}
	set(t, a, track.Cuttable, c)

	tests := map[float64]bool{0.5: false, 0.6: true}
	id := game.ObjectID(1)
	for at, expected := range tests {
		o := note(id, game.ColorA)
		id++
		f.spawn(o, &objectdata.Descriptor{Tracks: []*track.Track{a}, Time: animation.Some(at)})
		f.app.Tick(0, []Object{o})
		for i, c := range o.colliders {
			if c.cuttable != expected {
				t.Errorf("at %v collider %v: expected cuttable %v", at, i, expected)
			}
		}
	}
}

func TestApplyTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	direct := &track.Properties{}
	set(t, direct, track.Position, linear(t, []float64{0, 0, 0}, []float64{2, 4, 6}))
	set(t, direct, track.Rotation, curve.Static(0, 90, 0))
	set(t, direct, track.LocalRotation, curve.Static(0, 0, 45))
	o := note(1, game.ColorA)
	f.spawn(o, &objectdata.Descriptor{Animation: direct})

	f.app.Tick(10, []Object{o})
	floor, jump, transform := o.floorT, o.jumpT, o.transform
	f.app.Tick(10, []Object{o})
	if o.floorT.start != floor.start || o.floorT.end != floor.end ||
		o.jumpT.start != jump.start || o.jumpT.end != jump.end {
		t.Error("anchors moved on the second application")
	}
	if o.floorT.world != floor.world || o.jumpT.inverse != jump.inverse || o.transform.rotation != transform.rotation {
		t.Error("rotations changed on the second application")
	}
	// The floor end and jump start stay joined
	if o.floorT.end != o.jumpT.start {
		t.Errorf("floor ends at %v but the jump starts at %v", o.floorT.end, o.jumpT.start)
	}
}

func TestPanicIsolatedPerObject(t *testing.T) {
	f := newFixture(t)
	direct := &track.Properties{}
	set(t, direct, track.Scale, curve.Static(3, 3, 3))
	broken, fine := note(1, game.ColorA), note(2, game.ColorA)
	broken.explode = true
	f.spawn(broken, &objectdata.Descriptor{Animation: direct})
	f.spawn(fine, &objectdata.Descriptor{Animation: direct})
	if n := f.app.Tick(10, []Object{broken, fine}); n != 1 {
		t.Errorf("expected one object animated, got %v", n)
	}
	if fine.transform.scale != (mgl64.Vec3{3, 3, 3}) {
		t.Error("the second object was not animated")
	}
}

func TestUnbuiltApplicatorPanics(t *testing.T) {
	defer func() {
		if nil == recover() {
			t.Error("expected a panic")
		}
	}()
	var a Applicator
	a.Tick(0, nil)
}

func TestNewApplicatorRequiresCollaborators(t *testing.T) {
	if _, err := NewApplicator(nil, newCutouts()); nil == err {
		t.Error("expected an error without a store")
	}
	if _, err := NewApplicator(objectdata.NewStore(), nil); nil == err {
		t.Error("expected an error without a cutout sink")
	}
}

func TestPlayerDriver(t *testing.T) {
	reg := track.NewRegistry()
	tr := reg.GetOrCreate("player")
	set(t, tr, track.Position, linear(t, []float64{0, 0, 0}, []float64{0, 0, 100}))
	player := &event.PlayerTrack{}
	transform := &fakeTransform{}
	driver := NewPlayerDriver(player, transform, 200)

	if driver.Update(50) {
		t.Error("nothing is bound yet")
	}
	player.Assign(tr)
	if !driver.Update(50) {
		t.Fatal("expected a write")
	}
	if !transform.position.ApproxEqual(mgl64.Vec3{0, 0, 25}) {
		t.Errorf("expected a quarter of the way, got %v", transform.position)
	}
	if transform.writes != 1 {
		t.Error("rotation must not be written without a rotation curve")
	}
}

func BenchmarkTick(b *testing.B) {
	reg := track.NewRegistry()
	tr := reg.GetOrCreate("bench")
	tr.Set(track.Position, curve.Static(1, 1, 1))
	tr.Set(track.Rotation, curve.Static(0, 45, 0))
	store := objectdata.NewStore()
	app, _ := NewApplicator(store, newCutouts())
	objects := make([]Object, 100)
	for i := range objects {
		o := note(game.ObjectID(i), game.ColorA)
		store.Spawn(o.id, &objectdata.Descriptor{Tracks: []*track.Track{tr}}, o.baseline)
		objects[i] = o
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		app.Tick(10, objects)
	}
}
