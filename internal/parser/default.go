package parser

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/gjson"

	"git.lost.host/meutraa/noodle/internal/game"
)

type DefaultParser struct{}

// Beatmap layout, beats are "b" everywhere
//   info        bpm, noteJumpSpeed, noteJumpOffset, songLength
//   bpmEvents   b, m
//   colorNotes  b, x, y, c, d
//   bombNotes   b, x, y
//   obstacles   b, x, y, d (beats), w, h
//   sliders     b, x, y, c, d, tb, tx, ty
//   customData  customEvents (b, t, d), pointDefinitions, tracks
// Every object may carry its own customData.

func (p *DefaultParser) Parse(file string) (*game.Beatmap, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, fmt.Errorf("unable to read beatmap: %w", err)
	}
	return p.ParseBytes(data)
}

func (p *DefaultParser) getBPMs(root gjson.Result, initial float64) []game.BPM {
	bpms := []game.BPM{}
	for _, e := range root.Get("bpmEvents").Array() {
		if m := e.Get("m").Float(); m > 0 {
			bpms = append(bpms, game.BPM{StartingBeat: e.Get("b").Float(), Value: m})
		}
	}
	sort.SliceStable(bpms, func(i, j int) bool { return bpms[i].StartingBeat < bpms[j].StartingBeat })
	if len(bpms) == 0 || bpms[0].StartingBeat > 0 {
		bpms = append([]game.BPM{{StartingBeat: 0, Value: initial}}, bpms...)
	}
	return bpms
}

func (p *DefaultParser) ParseBytes(data []byte) (*game.Beatmap, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("beatmap is not valid json")
	}
	root := gjson.ParseBytes(data)

	info := root.Get("info")
	b := &game.Beatmap{
		Info: game.Info{
			BPM:            info.Get("bpm").Float(),
			NoteJumpSpeed:  info.Get("noteJumpSpeed").Float(),
			NoteJumpOffset: info.Get("noteJumpOffset").Float(),
			SongLength:     info.Get("songLength").Float(),
		},
		Custom: root.Get("customData"),
	}
	if b.Info.BPM <= 0 {
		return nil, errors.New("beatmap has no bpm")
	}
	b.BPMs = p.getBPMs(root, b.Info.BPM)
	seconds := func(beat float64) float64 {
		return game.Seconds(b.BPMs, beat)
	}

	newObject := func(kind game.Kind, v gjson.Result) *game.Object {
		beat := v.Get("b").Float()
		return &game.Object{
			Kind:         kind,
			Beat:         beat,
			Time:         seconds(beat),
			Line:         int(v.Get("x").Int()),
			Layer:        int(v.Get("y").Int()),
			Color:        game.ColorNone,
			CutDirection: int(v.Get("d").Int()),
			Custom:       v.Get("customData"),
		}
	}

	for _, v := range root.Get("colorNotes").Array() {
		o := newObject(game.KindNote, v)
		o.Color = game.ColorType(v.Get("c").Int())
		b.Objects = append(b.Objects, o)
		b.NoteCount++
	}
	for _, v := range root.Get("bombNotes").Array() {
		o := newObject(game.KindNote, v)
		o.CutDirection = 0
		b.Objects = append(b.Objects, o)
		b.NoteCount++
	}
	for _, v := range root.Get("obstacles").Array() {
		o := newObject(game.KindObstacle, v)
		o.CutDirection = 0
		o.Duration = seconds(o.Beat+v.Get("d").Float()) - o.Time
		o.Width = int(v.Get("w").Int())
		o.Height = int(v.Get("h").Int())
		b.Objects = append(b.Objects, o)
		b.ObstacleCount++
	}
	for _, v := range root.Get("sliders").Array() {
		o := newObject(game.KindSlider, v)
		o.Color = game.ColorType(v.Get("c").Int())
		o.TailTime = seconds(v.Get("tb").Float())
		o.TailLine = int(v.Get("tx").Int())
		o.TailLayer = int(v.Get("ty").Int())
		if o.TailTime < o.Time {
			return nil, fmt.Errorf("slider at beat %v ends before it starts", o.Beat)
		}
		b.Objects = append(b.Objects, o)
		b.SliderCount++
	}
	sort.SliceStable(b.Objects, func(i, j int) bool { return b.Objects[i].Time < b.Objects[j].Time })
	for i, o := range b.Objects {
		o.Index = i
	}

	for _, v := range b.Custom.Get("customEvents").Array() {
		beat := v.Get("b").Float()
		b.Events = append(b.Events, &game.CustomEvent{
			Beat: beat,
			Time: seconds(beat),
			Type: v.Get("t").String(),
			Data: v.Get("d"),
		})
	}
	sort.SliceStable(b.Events, func(i, j int) bool { return b.Events[i].Time < b.Events[j].Time })

	sum := sha256.Sum256(data)
	b.Sum = base64.StdEncoding.EncodeToString(sum[:])
	return b, nil
}
