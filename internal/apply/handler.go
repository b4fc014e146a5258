package apply

import "git.lost.host/meutraa/noodle/internal/game"

// Handler computes the normalized time of one kind of object. The returned
// bool is false when the object cannot be animated this tick.
type Handler interface {
	Kind() game.Kind
	NormalTime(o Object, songTime float64) (float64, bool)
}

// normalTime measures elapsed time from half a jump before the object's
// time and divides it by span.
func normalTime(o Object, songTime, extra float64) (float64, bool) {
	jump := o.JumpDuration()
	if jump <= 0 {
		return 0, false
	}
	span := jump + extra
	if span <= 0 {
		return 0, false
	}
	elapsed := songTime - (o.Data().Time - jump*0.5)
	return elapsed / span, true
}

type NoteHandler struct{}

func (NoteHandler) Kind() game.Kind { return game.KindNote }

func (NoteHandler) NormalTime(o Object, songTime float64) (float64, bool) {
	return normalTime(o, songTime, 0)
}

// ObstacleHandler spreads the animation over the jump and the obstacle's
// duration.
type ObstacleHandler struct{}

func (ObstacleHandler) Kind() game.Kind { return game.KindObstacle }

func (ObstacleHandler) NormalTime(o Object, songTime float64) (float64, bool) {
	return normalTime(o, songTime, o.Data().Duration)
}

// SliderHandler spreads the animation over the jump and the time from head
// to tail.
type SliderHandler struct{}

func (SliderHandler) Kind() game.Kind { return game.KindSlider }

func (SliderHandler) NormalTime(o Object, songTime float64) (float64, bool) {
	data := o.Data()
	return normalTime(o, songTime, data.TailTime-data.Time)
}

// DefaultHandlers is the pipeline in the order objects are matched.
func DefaultHandlers() []Handler {
	return []Handler{NoteHandler{}, ObstacleHandler{}, SliderHandler{}}
}
