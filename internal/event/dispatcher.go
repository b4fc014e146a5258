package event

import (
	"log"
	"sort"

	"git.lost.host/meutraa/noodle/internal/track"
)

// Prescan creates every track an assignment refers to, so that the tracks
// exist before any object or event looks them up.
func Prescan(events []Event, reg *track.Registry) {
	for _, e := range events {
		if a, ok := e.Payload.(AssignPlayerToTrack); ok && a.Track != "" {
			reg.GetOrCreate(a.Track)
		}
	}
}

// PlayerTrack is the track currently driving the player. The last
// assignment wins.
type PlayerTrack struct {
	current *track.Track
}

func (p *PlayerTrack) Assign(t *track.Track) {
	p.current = t
}

func (p *PlayerTrack) Track() *track.Track {
	return p.current
}

func (p *PlayerTrack) Name() string {
	if p.current == nil {
		return ""
	}
	return p.current.Name()
}

// Dispatcher fires events once song time reaches them.
type Dispatcher struct {
	events  []Event
	next    int
	reg     *track.Registry
	player  *PlayerTrack
	Verbose bool

	// OnAssign is called for every binding applied while advancing, not
	// while seeking.
	OnAssign func(at float64, t *track.Track)
}

func NewDispatcher(events []Event, reg *track.Registry, player *PlayerTrack) *Dispatcher {
	sorted := append([]Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &Dispatcher{events: sorted, reg: reg, player: player}
}

// Advance fires every event up to and including songTime, returning how
// many fired.
func (d *Dispatcher) Advance(songTime float64) int {
	fired := 0
	for ; d.next < len(d.events) && d.events[d.next].Time <= songTime; d.next++ {
		d.fire(d.events[d.next], false)
		fired++
	}
	return fired
}

// Seek rebuilds the binding for songTime by replaying assignments from the
// start of the song without reporting them.
func (d *Dispatcher) Seek(songTime float64) {
	d.player.Assign(nil)
	d.next = 0
	for ; d.next < len(d.events) && d.events[d.next].Time <= songTime; d.next++ {
		d.fire(d.events[d.next], true)
	}
}

func (d *Dispatcher) Remaining() int {
	return len(d.events) - d.next
}

func (d *Dispatcher) fire(e Event, silent bool) {
	switch p := e.Payload.(type) {
	case AssignPlayerToTrack:
		if p.Track == "" {
			if !silent {
				log.Printf("%v at %.3f has no track\n", e.Kind, e.Time)
			}
			return
		}
		t, ok := d.reg.Find(p.Track)
		if !ok {
			if !silent {
				log.Printf("%v at %.3f: unknown track %v\n", e.Kind, e.Time, p.Track)
			}
			return
		}
		d.player.Assign(t)
		if silent {
			return
		}
		if d.Verbose {
			log.Printf("player assigned to %v at %.3f\n", t.Name(), e.Time)
		}
		if nil != d.OnAssign {
			d.OnAssign(e.Time, t)
		}
	default:
		if d.Verbose && !silent {
			log.Printf("ignoring %v event at %.3f\n", e.Kind, e.Time)
		}
	}
}
