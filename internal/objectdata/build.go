package objectdata

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tidwall/gjson"

	"git.lost.host/meutraa/noodle/internal/animation"
	"git.lost.host/meutraa/noodle/internal/curve"
	"git.lost.host/meutraa/noodle/internal/track"
)

// field reads key from custom data, falling back to the underscored name
// older beatmaps use.
func field(custom gjson.Result, key string) gjson.Result {
	if v := custom.Get(key); v.Exists() {
		return v
	}
	return custom.Get("_" + key)
}

// TrackNames reads a "track" value, which is either one name or a list.
func TrackNames(v gjson.Result) []string {
	switch {
	case v.Type == gjson.String:
		return []string{v.String()}
	case v.IsArray():
		names := []string{}
		for _, n := range v.Array() {
			if n.Type == gjson.String && n.String() != "" {
				names = append(names, n.String())
			}
		}
		return names
	}
	return nil
}

// curveSetter is anything curves can be authored on, a Track or a bare
// Properties.
type curveSetter interface {
	Set(prop track.Property, curve interface{}) error
}

// setCurves parses an object of property name to point definition onto
// target. Unknown property names are ignored.
func setCurves(raw gjson.Result, lib *curve.Library, target curveSetter) error {
	var err error
	raw.ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		if len(name) > 0 && name[0] == '_' {
			name = name[1:]
		}
		prop, ok := track.ParseProperty(name)
		if !ok {
			if name == "position" {
				prop = track.Position
			} else if name == "rotation" {
				prop = track.Rotation
			} else {
				return true
			}
		}
		var d *curve.Definition
		d, err = curve.Parse(v, prop.Dimensions(), lib)
		if nil != err {
			err = fmt.Errorf("%v: %w", k.String(), err)
			return false
		}
		if err = target.Set(prop, d); nil != err {
			err = fmt.Errorf("unable to set %v: %w", prop, err)
		}
		return nil == err
	})
	return err
}

// Properties parses an object of property name to point definition.
func Properties(raw gjson.Result, lib *curve.Library) (*track.Properties, error) {
	p := &track.Properties{}
	if err := setCurves(raw, lib, p); nil != err {
		return nil, err
	}
	return p, nil
}

func vector(v gjson.Result) (mgl64.Vec3, bool) {
	if !v.IsArray() {
		return mgl64.Vec3{}, false
	}
	var out mgl64.Vec3
	items := v.Array()
	if len(items) > 3 {
		items = items[:3]
	}
	for i, item := range items {
		if item.Type != gjson.Number {
			return mgl64.Vec3{}, false
		}
		out[i] = item.Float()
	}
	return out, true
}

// rotation reads a static rotation in degrees, either [x, y, z] or a single
// number for y.
func rotation(v gjson.Result) (mgl64.Quat, bool) {
	if v.Type == gjson.Number {
		return curve.Euler(mgl64.Vec3{0, v.Float(), 0}), true
	}
	if angles, ok := vector(v); ok {
		return curve.Euler(angles), true
	}
	return mgl64.Quat{}, false
}

// Build creates the descriptor template for one beatmap object from its
// custom data. Objects without animation data get nil.
func Build(custom gjson.Result, reg *track.Registry, lib *curve.Library) (*Descriptor, error) {
	if !custom.IsObject() {
		return nil, nil
	}
	d := &Descriptor{}
	for _, name := range TrackNames(field(custom, "track")) {
		d.Tracks = append(d.Tracks, reg.GetOrCreate(name))
	}
	if raw := field(custom, "animation"); raw.IsObject() {
		p, err := Properties(raw, lib)
		if nil != err {
			return nil, fmt.Errorf("unable to parse animation: %w", err)
		}
		if !p.Empty() {
			d.Animation = p
		}
	}
	if t := field(custom, "time"); t.Type == gjson.Number {
		d.Time = animation.Some(t.Float())
	}
	if c := field(custom, "coordinates"); c.IsArray() && len(c.Array()) >= 2 {
		items := c.Array()
		d.Coordinates = animation.Some(mgl64.Vec2{items[0].Float(), items[1].Float()})
	}
	if r, ok := rotation(field(custom, "worldRotation")); ok {
		d.WorldRotation = animation.Some(r)
	} else if r, ok := rotation(field(custom, "rotation")); ok {
		d.WorldRotation = animation.Some(r)
	}
	if r, ok := rotation(field(custom, "localRotation")); ok {
		d.LocalRotation = animation.Some(r)
	}

	if len(d.Tracks) == 0 && d.Animation == nil && !d.Time.Valid &&
		!d.Coordinates.Valid && !d.WorldRotation.Valid && !d.LocalRotation.Valid {
		return nil, nil
	}
	return d, nil
}

// DefineTracks authors track curves from an object of track name to
// properties. It must run before anything is evaluated.
func DefineTracks(tracks gjson.Result, reg *track.Registry, lib *curve.Library) error {
	var err error
	tracks.ForEach(func(k, v gjson.Result) bool {
		if err = setCurves(v, lib, reg.GetOrCreate(k.String())); nil != err {
			err = fmt.Errorf("unable to define track %v: %w", k.String(), err)
		}
		return nil == err
	})
	return err
}
