package track

import "errors"

// ErrSealed is returned when a track's curves are changed after they have
// been read for evaluation.
var ErrSealed = errors.New("track curves cannot change after evaluation")

// Track is a named bundle of optional property curves, shared by every
// object and event that references the name.
type Track struct {
	name   string
	props  Properties
	sealed bool
}

func (t *Track) Name() string {
	return t.name
}

// Set authors the curve for prop. Curves are authored at load time only.
func (t *Track) Set(prop Property, curve interface{}) error {
	if t.sealed {
		return ErrSealed
	}
	return t.props.Set(prop, curve)
}

// Properties returns the track's curve set and seals the track.
func (t *Track) Properties() *Properties {
	t.sealed = true
	return &t.props
}

func (t *Track) Sealed() bool {
	return t.sealed
}
