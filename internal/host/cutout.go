package host

import (
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/noodle/internal/game"
)

// CutoutManager keeps the dissolve state of every live object. Objects are
// fully visible until told otherwise.
type CutoutManager struct {
	cutouts map[game.ObjectID]float64
	arrows  map[game.ObjectID]float64
}

func NewCutoutManager() *CutoutManager {
	return &CutoutManager{
		cutouts: map[game.ObjectID]float64{},
		arrows:  map[game.ObjectID]float64{},
	}
}

func (c *CutoutManager) SetCutout(id game.ObjectID, value float64) {
	c.cutouts[id] = mgl64.Clamp(value, 0, 1)
}

func (c *CutoutManager) SetArrowCutout(id game.ObjectID, value float64) {
	c.arrows[id] = mgl64.Clamp(value, 0, 1)
}

func (c *CutoutManager) Cutout(id game.ObjectID) float64 {
	if v, ok := c.cutouts[id]; ok {
		return v
	}
	return 1
}

func (c *CutoutManager) ArrowCutout(id game.ObjectID) float64 {
	if v, ok := c.arrows[id]; ok {
		return v
	}
	return 1
}

func (c *CutoutManager) Remove(id game.ObjectID) {
	delete(c.cutouts, id)
	delete(c.arrows, id)
}

// Player is the transform of the player's play space.
type Player struct {
	LocalPosition mgl64.Vec3
	LocalRotation mgl64.Quat
}

func NewPlayer() *Player {
	return &Player{LocalRotation: mgl64.QuatIdent()}
}

func (p *Player) SetLocalPosition(v mgl64.Vec3) { p.LocalPosition = v }

func (p *Player) SetLocalRotation(q mgl64.Quat) { p.LocalRotation = q }
