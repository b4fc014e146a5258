package apply

import (
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/noodle/internal/animation"
	"git.lost.host/meutraa/noodle/internal/event"
	"git.lost.host/meutraa/noodle/internal/track"
)

// PlayerDriver moves the player along whichever track is bound to it.
type PlayerDriver struct {
	player     *event.PlayerTrack
	transform  PlayerTransform
	songLength float64
	resolver   animation.Resolver
}

func NewPlayerDriver(player *event.PlayerTrack, transform PlayerTransform, songLength float64) *PlayerDriver {
	return &PlayerDriver{player: player, transform: transform, songLength: songLength}
}

// Update evaluates the bound track at the song's progress and reports
// whether anything was written.
func (p *PlayerDriver) Update(songTime float64) bool {
	t := p.player.Track()
	if nil == t || p.songLength <= 0 {
		return false
	}
	f := p.resolver.Evaluate([]*track.Track{t}, nil, songTime/p.songLength)
	written := false
	if position, ok := f.Position.Get(); ok {
		p.transform.SetLocalPosition(position)
		written = true
	}
	identity := mgl64.QuatIdent()
	if r, ok := animation.Compose(identity, identity, f.Rotation, f.LocalRotation); ok {
		p.transform.SetLocalRotation(r.Final)
		written = true
	}
	return written
}
