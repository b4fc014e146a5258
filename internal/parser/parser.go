package parser

import "git.lost.host/meutraa/noodle/internal/game"

type Parser interface {
	Parse(file string) (*game.Beatmap, error)
	ParseBytes(data []byte) (*game.Beatmap, error)
}
