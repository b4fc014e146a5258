package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// unitsPerLane is the world width of one lane.
const unitsPerLane = 0.6

// Layout projects world positions onto the terminal. Lanes are spread
// horizontally around the middle column and depth runs from the hit row at
// the bottom toward the top of the screen.
type Layout struct {
	Columns, Rows int
	Spacing       uint // Columns between lanes
	BarOffset     int  // Rows between the hit row and the bottom
}

func (l Layout) HitRow() int {
	return l.Rows - l.BarOffset
}

// LaneColumn is the column of a lane index, 0 being the leftmost of four.
func (l Layout) LaneColumn(lane int) int {
	return l.Columns/2 + int(math.Round((float64(lane)-1.5)*float64(l.Spacing)))
}

// Place maps a position and its depth, 0 at the player and 1 at the spawn
// point, to a cell. ok is false when the cell is off screen.
func (l Layout) Place(p mgl64.Vec3, depth float64) (col, row uint16, ok bool) {
	hit := l.HitRow()
	c := l.Columns/2 + int(math.Round(p.X()/unitsPerLane*float64(l.Spacing)))
	r := hit - int(math.Round(depth*float64(hit-1)))
	if c < 1 || c > l.Columns || r < 1 || r > l.Rows {
		return 0, 0, false
	}
	return uint16(c), uint16(r), true
}
