package main

import (
	"fmt"
	"io"
	"math"
	"time"

	"git.lost.host/meutraa/noodle/internal/apply"
	"git.lost.host/meutraa/noodle/internal/clock"
	"git.lost.host/meutraa/noodle/internal/config"
	"git.lost.host/meutraa/noodle/internal/curve"
	"git.lost.host/meutraa/noodle/internal/event"
	"git.lost.host/meutraa/noodle/internal/game"
	"git.lost.host/meutraa/noodle/internal/history"
	"git.lost.host/meutraa/noodle/internal/host"
	"git.lost.host/meutraa/noodle/internal/input"
	"git.lost.host/meutraa/noodle/internal/objectdata"
	"git.lost.host/meutraa/noodle/internal/parser"
	"git.lost.host/meutraa/noodle/internal/render"
	"git.lost.host/meutraa/noodle/internal/theme"
	"git.lost.host/meutraa/noodle/internal/track"
)

// seekStep is how far rewind and forward jump, in seconds.
const seekStep = 5.0

type Position struct {
	Col, Row uint16
}

type Program struct {
	Config   *config.Config
	Parser   parser.Parser
	History  history.Store
	Theme    theme.Theme
	Renderer render.Renderer

	beatmap    *game.Beatmap
	registry   *track.Registry
	store      *objectdata.Store
	world      *host.World
	applicator *apply.Applicator
	dispatcher *event.Dispatcher
	player     *event.PlayerTrack
	driver     *apply.PlayerDriver
	clock      *clock.Clock

	session  history.Session
	previous int // Sessions of this beatmap played before
	paused   bool

	layout render.Layout
	drawn  []Position // Cells to blank on the next frame
}

func (p *Program) Init() error {
	b, err := p.Parser.Parse(p.Config.Beatmap)
	if nil != err {
		return err
	}
	if err := p.Load(b); nil != err {
		return err
	}

	if p.Config.Audio != "" {
		p.clock, err = clock.Open(p.Config.Audio)
		if nil != err {
			return err
		}
	} else {
		length := b.Length() + p.world.JumpDuration()
		p.clock = clock.Silent(time.Duration(length*float64(time.Second)), clock.DefaultSampleRate)
	}

	if nil != p.History {
		if err := p.History.Init(p.Config.Database); nil != err {
			return err
		}
		p.previous = len(p.History.Load(b))
	}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.clock {
		p.clock.Close()
	}
	if nil != p.History {
		p.History.Deinit()
	}
}

// Load builds the tracks, object templates and event timeline of a beatmap.
func (p *Program) Load(b *game.Beatmap) error {
	p.beatmap = b
	p.registry = track.NewRegistry()
	p.store = objectdata.NewStore()
	p.session = history.Session{Sum: b.Sum}

	lib := curve.NewLibrary(b.Custom.Get("pointDefinitions"))
	if err := objectdata.DefineTracks(b.Custom.Get("tracks"), p.registry, lib); nil != err {
		return err
	}

	templates := make([]*objectdata.Descriptor, len(b.Objects))
	for i, o := range b.Objects {
		d, err := objectdata.Build(o.Custom, p.registry, lib)
		if nil != err {
			return fmt.Errorf("unable to read %v at beat %v: %w", o.Kind, o.Beat, err)
		}
		templates[i] = d
	}

	events := event.DecodeAll(b.Events)
	event.Prescan(events, p.registry)
	p.player = &event.PlayerTrack{}
	p.dispatcher = event.NewDispatcher(events, p.registry, p.player)
	p.dispatcher.Verbose = p.Config.Verbose
	p.dispatcher.OnAssign = func(at float64, t *track.Track) {
		p.session.Bindings = append(p.session.Bindings, history.Binding{Time: at, Track: t.Name()})
	}

	p.world = host.NewWorld(b.Objects, templates, p.store, b.Info, p.Config.JumpDuration)

	var err error
	p.applicator, err = apply.NewApplicator(p.store, p.world.Cutouts, apply.DefaultHandlers()...)
	if nil != err {
		return err
	}
	p.driver = apply.NewPlayerDriver(p.player, p.world.Player, b.Length())
	return nil
}

// Tick moves everything to songTime and returns how many objects were
// animated.
func (p *Program) Tick(songTime float64) int {
	p.dispatcher.Advance(songTime)
	p.world.Update(songTime)
	n := p.applicator.Tick(songTime, p.world.Animated())
	p.driver.Update(songTime)
	p.session.Animated += uint64(n)
	return n
}

// Seek jumps to songTime as if the song had been played up to it.
func (p *Program) Seek(songTime float64) error {
	songTime = math.Max(0, songTime)
	if err := p.clock.Seek(songTime); nil != err {
		return err
	}
	songTime = p.clock.SongTime()
	p.dispatcher.Seek(songTime)
	p.world.Seek(songTime)
	p.driver.Update(songTime)
	return nil
}

// RunHeadless advances the clock tick by tick until the song ends.
func (p *Program) RunHeadless() {
	period := p.Config.TickPeriod()
	for {
		p.Tick(p.clock.SongTime())
		if !p.clock.Advance(period) {
			break
		}
	}
	p.Tick(p.clock.SongTime())
}

// RunInteractive plays the song through the speaker and draws every tick
// until the song ends or the player quits.
func (p *Program) RunInteractive() error {
	commands, closeKeyboard, err := input.ReadInput(input.Keys{
		Pause:   p.Config.Key(0),
		Rewind:  p.Config.Key(1),
		Forward: p.Config.Key(2),
	}, 16)
	if nil != err {
		return err
	}
	defer closeKeyboard()

	if err := p.Renderer.Init(); nil != err {
		return err
	}
	defer p.Renderer.Deinit()

	columns, rows := p.Renderer.Size()
	p.layout = render.Layout{Columns: columns, Rows: rows, Spacing: p.Config.Spacing, BarOffset: 4}

	if err := p.clock.Play(p.Config.Delay); nil != err {
		return err
	}

	length := p.clock.Length()
	p.Renderer.RenderLoop(p.Config.TickPeriod(), func() bool {
		for len(commands) > 0 {
			if !p.handle(<-commands) {
				return false
			}
		}
		songTime := p.clock.SongTime()
		if !p.paused {
			p.Tick(songTime)
		}
		p.draw(songTime)
		return songTime < length
	})
	return nil
}

// handle reacts to a command, returning false to stop playing.
func (p *Program) handle(c input.Command) bool {
	switch c {
	case input.CommandQuit:
		return false
	case input.CommandPause:
		p.paused = !p.paused
		p.clock.SetPaused(p.paused)
	case input.CommandRewind, input.CommandForward:
		step := -seekStep
		if c == input.CommandForward {
			step = seekStep
		}
		if err := p.Seek(p.clock.SongTime() + step); nil != err {
			p.Renderer.AddDecoration(2, 2, err.Error(), 120)
		}
	}
	return true
}

func (p *Program) draw(songTime float64) {
	r := p.Renderer
	for _, c := range p.drawn {
		r.Fill(c.Row, c.Col, " ")
	}
	p.drawn = p.drawn[:0]

	hitRow := uint16(p.layout.HitRow())
	for i := 0; i < 4; i++ {
		r.Fill(hitRow, uint16(p.layout.LaneColumn(i)), p.Theme.RenderLane(i))
	}

	uncuttable := 0
	for _, o := range p.world.Live() {
		if !o.Cuttable() {
			uncuttable++
		}
		cutout := p.world.Cutouts.Cutout(o.ID())
		if cutout <= 0 {
			continue
		}
		position := o.Position(songTime)
		col, row, ok := p.layout.Place(position, p.world.Depth(position))
		if !ok {
			continue
		}
		glyph := p.Theme.Glyph(o.Data(), p.world.Cutouts.ArrowCutout(o.ID()))
		r.FillColor(row, col, p.Theme.Color(o.Data(), cutout), glyph)
		p.drawn = append(p.drawn, Position{Col: col, Row: row})
	}

	if col, row, ok := p.layout.Place(p.world.Player.LocalPosition, 0); ok && int(row) < p.layout.Rows {
		r.Fill(row+1, col, p.Theme.RenderPlayer())
		p.drawn = append(p.drawn, Position{Col: col, Row: row + 1})
	}

	start, end := p.world.Window()
	status := "playing"
	if p.paused {
		status = "paused "
	}
	r.Fill(2, 2, fmt.Sprintf("       Time:  %8.2f s  %v", songTime, status))
	r.Fill(3, 2, fmt.Sprintf("     Window:  [%v - %v] (%v)", start, end, len(p.world.Live())))
	r.Fill(4, 2, fmt.Sprintf(" Uncuttable:  %6v", uncuttable))
	r.Fill(5, 2, fmt.Sprintf("     Player:  %-16v", p.player.Name()))
	r.Fill(6, 2, fmt.Sprintf("   Animated:  %6v", p.session.Animated))
}

// Save records the session in the history store.
func (p *Program) Save() {
	if nil == p.History {
		return
	}
	p.session.Played = time.Now()
	p.History.Save(p.beatmap, &p.session)
}

func (p *Program) PrintSummary(w io.Writer) {
	b := p.beatmap
	fmt.Fprintf(w, "     Notes:  %6v\n", b.NoteCount)
	fmt.Fprintf(w, " Obstacles:  %6v\n", b.ObstacleCount)
	fmt.Fprintf(w, "   Sliders:  %6v\n", b.SliderCount)
	fmt.Fprintf(w, "    Tracks:  %6v  %v\n", p.registry.Len(), p.registry.Names())
	fmt.Fprintf(w, "  Bindings:  %6v\n", len(p.session.Bindings))
	fmt.Fprintf(w, "  Animated:  %6v\n", p.session.Animated)
	fmt.Fprintf(w, "    Played:  %6v\n", p.previous+1)
}
