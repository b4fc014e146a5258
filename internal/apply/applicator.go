package apply

import (
	"errors"
	"log"

	"git.lost.host/meutraa/noodle/internal/animation"
	"git.lost.host/meutraa/noodle/internal/objectdata"
)

// Applicator animates live objects. It must be created with NewApplicator.
type Applicator struct {
	store    *objectdata.Store
	cutouts  CutoutSink
	handlers []Handler
	resolver animation.Resolver
}

func NewApplicator(store *objectdata.Store, cutouts CutoutSink, handlers ...Handler) (*Applicator, error) {
	if nil == store {
		return nil, errors.New("applicator needs an object store")
	}
	if nil == cutouts {
		return nil, errors.New("applicator needs a cutout sink")
	}
	if len(handlers) == 0 {
		handlers = DefaultHandlers()
	}
	return &Applicator{store: store, cutouts: cutouts, handlers: handlers}, nil
}

func (a *Applicator) mustBeBuilt() {
	if nil == a || nil == a.store {
		panic("apply: Applicator used without NewApplicator")
	}
}

// Tick animates every object at songTime and returns how many were
// written to. A panic while animating one object is logged and the rest
// still animate.
func (a *Applicator) Tick(songTime float64, objects []Object) int {
	a.mustBeBuilt()
	count := 0
	for _, o := range objects {
		if a.safeApply(songTime, o) {
			count++
		}
	}
	return count
}

func (a *Applicator) safeApply(songTime float64, o Object) (applied bool) {
	defer func() {
		if r := recover(); nil != r {
			log.Printf("unable to animate object %v: %v\n", o.ID(), r)
			applied = false
		}
	}()
	return a.Apply(songTime, o)
}

func (a *Applicator) handler(o Object) Handler {
	kind := o.Data().Kind
	for _, h := range a.handlers {
		if h.Kind() == kind {
			return h
		}
	}
	return nil
}

// Apply animates a single object, reporting whether anything was evaluated.
func (a *Applicator) Apply(songTime float64, o Object) bool {
	a.mustBeBuilt()
	d, ok := a.store.Resolve(o.ID())
	if !ok || !d.Animated() {
		return false
	}

	t := d.Time.Value
	if !d.Time.Valid {
		h := a.handler(o)
		if nil == h {
			return false
		}
		if t, ok = h.NormalTime(o, songTime); !ok {
			return false
		}
	}
	if remapped := a.resolver.Time(d.Tracks, d.Animation, t); remapped.Valid {
		t = remapped.Value
	}

	frame := a.resolver.Evaluate(d.Tracks, d.Animation, t)
	a.write(o, d.Resolve(o.Baseline()), frame)
	return true
}

func (a *Applicator) write(o Object, anchors objectdata.Baseline, f animation.Frame) {
	if offset, ok := f.Position.Get(); ok {
		floor, jump := o.Floor(), o.Jump()
		floor.SetAnchors(anchors.Start.Add(offset), anchors.Mid.Add(offset))
		jump.SetAnchors(anchors.Mid.Add(offset), anchors.End.Add(offset))
	}

	transform := o.Transform()
	if r, ok := animation.Compose(anchors.WorldRotation, anchors.LocalRotation, f.Rotation, f.LocalRotation); ok {
		if world, ok := r.World.Get(); ok {
			o.Jump().SetWorldRotation(world, r.WorldInverse)
			o.Floor().SetWorldRotation(world, r.WorldInverse)
		}
		transform.SetLocalRotation(r.Final)
	}

	if scale, ok := f.Scale.Get(); ok {
		transform.SetLocalScale(scale)
	}

	if v, ok := f.Dissolve.Get(); ok {
		a.cutouts.SetCutout(o.ID(), v)
	}
	if v, ok := f.DissolveArrow.Get(); ok && o.Data().HasArrow() {
		a.cutouts.SetArrowCutout(o.ID(), v)
	}

	if v, ok := f.Cuttable.Get(); ok {
		enabled := v >= 1
		for _, c := range o.Colliders() {
			c.SetCanBeCut(enabled)
		}
	}
}
