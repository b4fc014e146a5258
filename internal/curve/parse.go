package curve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const splineCatmullRom = "splineCatmullRom"

// Library holds the beatmap's named point definitions. They are parsed on
// use since a name carries no dimension.
type Library struct {
	defs map[string]gjson.Result
}

// NewLibrary reads named definitions, either as an object of name to
// points or as a list of {"name", "points"} entries.
func NewLibrary(defs gjson.Result) *Library {
	lib := &Library{defs: map[string]gjson.Result{}}
	if defs.IsObject() {
		defs.ForEach(func(k, v gjson.Result) bool {
			lib.defs[k.String()] = v
			return true
		})
	} else if defs.IsArray() {
		for _, d := range defs.Array() {
			name := d.Get("name")
			if !name.Exists() {
				name = d.Get("_name")
			}
			points := d.Get("points")
			if !points.Exists() {
				points = d.Get("_points")
			}
			if name.Type == gjson.String {
				lib.defs[name.String()] = points
			}
		}
	}
	return lib
}

func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.defs)
}

// Parse reads a point definition of dims values per keyframe. raw may be a
// list of keyframes, a single short form keyframe, or the name of a
// definition in lib.
func Parse(raw gjson.Result, dims int, lib *Library) (*Definition, error) {
	if raw.Type == gjson.String {
		if lib == nil {
			return nil, fmt.Errorf("unknown point definition %q", raw.String())
		}
		named, ok := lib.defs[raw.String()]
		if !ok {
			return nil, fmt.Errorf("unknown point definition %q", raw.String())
		}
		if named.Type == gjson.String {
			return nil, fmt.Errorf("point definition %q refers to another name", raw.String())
		}
		return Parse(named, dims, nil)
	}
	if !raw.IsArray() {
		return nil, fmt.Errorf("point definition must be a list, got %v", raw.Type)
	}
	items := raw.Array()
	if len(items) == 0 {
		return nil, errors.New("point definition has no points")
	}
	if !items[0].IsArray() {
		// Short form, one keyframe without a list around it
		if len(items) == dims {
			values, err := numbers(items)
			if nil != err {
				return nil, err
			}
			return Static(values...), nil
		}
		p, err := parsePoint(items, dims)
		if nil != err {
			return nil, err
		}
		return New(dims, p)
	}
	points := make([]Point, 0, len(items))
	for i, item := range items {
		p, err := parsePoint(item.Array(), dims)
		if nil != err {
			return nil, fmt.Errorf("point %v: %w", i, err)
		}
		points = append(points, p)
	}
	return New(dims, points...)
}

func numbers(items []gjson.Result) ([]float64, error) {
	values := make([]float64, len(items))
	for i, item := range items {
		if item.Type != gjson.Number {
			return nil, fmt.Errorf("expected number, got %v", item.Raw)
		}
		values[i] = item.Float()
	}
	return values, nil
}

func parsePoint(items []gjson.Result, dims int) (Point, error) {
	if len(items) < dims+1 {
		return Point{}, fmt.Errorf("keyframe needs %v values and a time, got %v items", dims, len(items))
	}
	values, err := numbers(items[:dims+1])
	if nil != err {
		return Point{}, err
	}
	p := Point{Values: values[:dims], Time: values[dims]}
	for _, flag := range items[dims+1:] {
		name := flag.String()
		switch {
		case name == splineCatmullRom:
			p.Spline = true
		case strings.HasPrefix(name, "ease"):
			fn, ok := Easing(name)
			if !ok {
				return Point{}, fmt.Errorf("unknown easing %q", name)
			}
			p.Easing = fn
		default:
			return Point{}, fmt.Errorf("unknown keyframe flag %q", name)
		}
	}
	return p, nil
}
