package theme

import (
	"image/color"

	"git.lost.host/meutraa/noodle/internal/game"
)

type Theme interface {
	// Glyph is the symbol of an object, arrow is the object's arrow cutout.
	Glyph(o *game.Object, arrow float64) string
	// Color of an object, faded by its cutout.
	Color(o *game.Object, cutout float64) color.RGBA
	RenderLane(index int) string
	RenderPlayer() string
}
