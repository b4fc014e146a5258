package main

import (
	"log"
	"os"

	"git.lost.host/meutraa/noodle/internal/config"
	"git.lost.host/meutraa/noodle/internal/history"
	"git.lost.host/meutraa/noodle/internal/parser"
	"git.lost.host/meutraa/noodle/internal/render"
	"git.lost.host/meutraa/noodle/internal/theme"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	c, err := config.Parse(args)
	if nil != err {
		return err
	}

	// Ensure our Default implementations are used as interfaces
	p := &Program{
		Config:   c,
		Parser:   &parser.DefaultParser{},
		History:  &history.DefaultStore{},
		Theme:    &theme.DefaultTheme{},
		Renderer: &render.DefaultRenderer{},
	}
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	if c.Headless {
		p.RunHeadless()
	} else if err := p.RunInteractive(); nil != err {
		return err
	}

	p.Save()
	p.PrintSummary(os.Stdout)
	return nil
}
