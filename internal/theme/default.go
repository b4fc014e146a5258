package theme

import (
	"image/color"
	"math"

	"git.lost.host/meutraa/noodle/internal/game"
)

type DefaultTheme struct{}

// arrowVisible is the arrow cutout below which a note is drawn as a dot.
const arrowVisible = 0.5

const (
	bombSym     = "⨯"
	dotSym      = "⬤"
	obstacleSym = "█"
	sliderSym   = "┃"
	laneSym     = "-"
	playerSym   = "▲"
)

var (
	// Indexed by cut direction
	arrowSyms = [...]string{"↑", "↓", "←", "→", "↖", "↗", "↙", "↘", dotSym}

	noteColors = map[game.ColorType]color.RGBA{
		game.ColorNone: {106, 106, 106, 255}, // bombs grey
		game.ColorA:    {236, 30, 0, 255},    // red
		game.ColorB:    {0, 118, 236, 255},   // blue
	}
	obstacleColor = color.RGBA{236, 0, 106, 255}
	white         = color.RGBA{255, 255, 255, 255}
)

func (t *DefaultTheme) Glyph(o *game.Object, arrow float64) string {
	switch o.Kind {
	case game.KindObstacle:
		return obstacleSym
	case game.KindSlider:
		return sliderSym
	}
	if !o.HasArrow() {
		return bombSym
	}
	if arrow < arrowVisible || o.CutDirection < 0 || o.CutDirection >= len(arrowSyms) {
		return dotSym
	}
	return arrowSyms[o.CutDirection]
}

func (t *DefaultTheme) Color(o *game.Object, cutout float64) color.RGBA {
	c := white
	if o.Kind == game.KindObstacle {
		c = obstacleColor
	} else if nc, ok := noteColors[o.Color]; ok {
		c = nc
	}
	return dim(c, cutout)
}

func (t *DefaultTheme) RenderLane(index int) string {
	return laneSym
}

func (t *DefaultTheme) RenderPlayer() string {
	return playerSym
}

// dim fades a colour toward black.
func dim(c color.RGBA, amount float64) color.RGBA {
	amount = math.Max(0, math.Min(1, amount))
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * amount)),
		G: uint8(math.Round(float64(c.G) * amount)),
		B: uint8(math.Round(float64(c.B) * amount)),
		A: c.A,
	}
}
