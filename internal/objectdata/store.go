package objectdata

import "git.lost.host/meutraa/noodle/internal/game"

// Store maps live objects to their descriptors.
type Store struct {
	live map[game.ObjectID]*Descriptor
}

func NewStore() *Store {
	return &Store{live: map[game.ObjectID]*Descriptor{}}
}

// Spawn clones template for a new object, captures the anchors from the
// host baseline and attaches the copy. A nil template attaches nothing.
func (s *Store) Spawn(id game.ObjectID, template *Descriptor, baseline Baseline) *Descriptor {
	if template == nil {
		delete(s.live, id)
		return nil
	}
	d := template.Clone()
	d.Capture(baseline)
	s.live[id] = d
	return d
}

func (s *Store) Detach(id game.ObjectID) {
	delete(s.live, id)
}

func (s *Store) Resolve(id game.ObjectID) (*Descriptor, bool) {
	d, ok := s.live[id]
	return d, ok
}

func (s *Store) Len() int {
	return len(s.live)
}
