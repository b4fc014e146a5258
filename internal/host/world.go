package host

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/noodle/internal/apply"
	"git.lost.host/meutraa/noodle/internal/game"
	"git.lost.host/meutraa/noodle/internal/objectdata"
)

const (
	// MoveDuration is how long an object slides along the floor before it
	// jumps.
	MoveDuration = 0.5
	// moveSpeed is the floor speed in units per second.
	moveSpeed = 200.0

	laneWidth           = 0.6
	maxHalfJumpDistance = 17.999
	minHalfJumpBeats    = 0.25
)

var layerHeights = [...]float64{0.25, 0.85, 1.45}

// JumpDuration is the time an object spends in its jump, derived from the
// beatmap's note jump speed and offset.
func JumpDuration(info game.Info) float64 {
	if info.BPM <= 0 || info.NoteJumpSpeed <= 0 {
		return 0
	}
	beat := 60 / info.BPM
	halfJump := 4.0
	for info.NoteJumpSpeed*beat*halfJump > maxHalfJumpDistance {
		halfJump /= 2
	}
	halfJump += info.NoteJumpOffset
	if halfJump < minHalfJumpBeats {
		halfJump = minHalfJumpBeats
	}
	return beat * halfJump * 2
}

// BaselineFor is where the engine places an object before any animation.
func BaselineFor(o *game.Object, jumpDistance float64) objectdata.Baseline {
	layer := o.Layer
	if layer < 0 {
		layer = 0
	} else if layer >= len(layerHeights) {
		layer = len(layerHeights) - 1
	}
	x := (float64(o.Line) - 1.5) * laneWidth
	y := layerHeights[layer]
	mid := mgl64.Vec3{x, y, jumpDistance * 0.5}
	return objectdata.Baseline{
		Start:         mgl64.Vec3{x, y, mid.Z() + moveSpeed*MoveDuration},
		Mid:           mid,
		End:           mgl64.Vec3{x, y, -jumpDistance * 0.5},
		WorldRotation: mgl64.QuatIdent(),
		LocalRotation: mgl64.QuatIdent(),
	}
}

// World spawns and despawns a beatmap's objects as song time passes.
type World struct {
	Cutouts *CutoutManager
	Player  *Player

	objects   []*game.Object
	templates []*objectdata.Descriptor
	store     *objectdata.Store

	jumpDuration float64
	jumpDistance float64

	live   []*Object
	next   int
	nextID game.ObjectID

	Spawned, Despawned int
}

// NewWorld creates a world for objects, which must be sorted by time.
// templates is indexed like objects and may hold nil entries.
func NewWorld(objects []*game.Object, templates []*objectdata.Descriptor, store *objectdata.Store, info game.Info, jumpDuration float64) *World {
	if jumpDuration <= 0 {
		jumpDuration = JumpDuration(info)
	}
	return &World{
		Cutouts:      NewCutoutManager(),
		Player:       NewPlayer(),
		objects:      objects,
		templates:    templates,
		store:        store,
		jumpDuration: jumpDuration,
		jumpDistance: info.NoteJumpSpeed * jumpDuration,
	}
}

func (w *World) JumpDuration() float64 {
	return w.jumpDuration
}

func (w *World) spawnTime(o *game.Object) float64 {
	return o.Time - w.jumpDuration*0.5 - MoveDuration
}

func (w *World) spawn(index int) {
	data := w.objects[index]
	w.nextID++
	baseline := BaselineFor(data, w.jumpDistance)
	o := newObject(w.nextID, data, w.jumpDuration, MoveDuration, baseline)
	var template *objectdata.Descriptor
	if index < len(w.templates) {
		template = w.templates[index]
	}
	if d := w.store.Spawn(o.id, template, baseline); nil != d {
		o.place(d.Resolve(baseline))
	}
	w.live = append(w.live, o)
	w.Spawned++
}

func (w *World) despawn(o *Object) {
	w.store.Detach(o.id)
	w.Cutouts.Remove(o.id)
	w.Despawned++
}

// Update spawns every object whose spawn time has been reached and
// despawns the ones that have passed the player.
func (w *World) Update(songTime float64) {
	for ; w.next < len(w.objects) && w.spawnTime(w.objects[w.next]) <= songTime; w.next++ {
		w.spawn(w.next)
	}
	kept := w.live[:0]
	for _, o := range w.live {
		if o.despawnTime() < songTime {
			w.despawn(o)
			continue
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(w.live); i++ {
		w.live[i] = nil
	}
	w.live = kept
}

// Seek despawns everything, puts the player back where it started and
// restarts the active window at songTime, skipping objects that would
// already have left.
func (w *World) Seek(songTime float64) {
	for _, o := range w.live {
		w.despawn(o)
	}
	*w.Player = *NewPlayer()
	w.live = w.live[:0]
	w.next = sort.Search(len(w.objects), func(i int) bool {
		return w.spawnTime(w.objects[i]) > songTime
	})
	for i := 0; i < w.next; i++ {
		if w.objects[i].End()+w.jumpDuration*0.5 >= songTime {
			w.spawn(i)
		}
	}
}

// Live returns the spawned objects in spawn order.
func (w *World) Live() []*Object {
	return w.live
}

// Animated returns the live objects as the applicator sees them.
func (w *World) Animated() []apply.Object {
	out := make([]apply.Object, len(w.live))
	for i, o := range w.live {
		out[i] = o
	}
	return out
}

// Window is the range of beatmap indices from the earliest live object to
// the next one to spawn.
func (w *World) Window() (int, int) {
	start := w.next
	for _, o := range w.live {
		start = min(start, o.data.Index)
	}
	return start, w.next
}

// Done reports whether every object has spawned and left.
func (w *World) Done() bool {
	return w.next >= len(w.objects) && len(w.live) == 0
}

// Depth maps a position to how far it is from the player, 0 at the player
// and 1 at the spawn point.
func (w *World) Depth(p mgl64.Vec3) float64 {
	far := w.jumpDistance*0.5 + moveSpeed*MoveDuration
	if far <= 0 {
		return 0
	}
	return math.Max(0, p.Z()) / far
}
