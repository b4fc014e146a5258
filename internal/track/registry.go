package track

import "sort"

// Registry maps track names to tracks for the lifetime of a playback
// session. It is not safe for concurrent use; it is only touched from the
// simulation tick.
type Registry struct {
	tracks map[string]*Track
}

func NewRegistry() *Registry {
	return &Registry{tracks: map[string]*Track{}}
}

// GetOrCreate returns the track called name, creating it on first use.
// Repeated calls return the same instance.
func (r *Registry) GetOrCreate(name string) *Track {
	if t, ok := r.tracks[name]; ok {
		return t
	}
	t := &Track{name: name}
	r.tracks[name] = t
	return t
}

func (r *Registry) Find(name string) (*Track, bool) {
	t, ok := r.tracks[name]
	return t, ok
}

func (r *Registry) Len() int {
	return len(r.tracks)
}

// Names returns the registered track names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tracks))
	for name := range r.tracks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
