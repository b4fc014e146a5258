// Package input turns key presses into playback commands.
package input

import (
	"fmt"
	"log"

	"github.com/eiannone/keyboard"
)

type Command uint8

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause
	CommandRewind
	CommandForward
)

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	case CommandPause:
		return "pause"
	case CommandRewind:
		return "rewind"
	case CommandForward:
		return "forward"
	}
	return "none"
}

// Keys are the runes bound to commands, on top of escape, space and the
// arrow keys.
type Keys struct {
	Pause, Rewind, Forward rune
}

func (k Keys) Command(e keyboard.KeyEvent) Command {
	switch e.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return CommandQuit
	case keyboard.KeySpace:
		return CommandPause
	case keyboard.KeyArrowLeft:
		return CommandRewind
	case keyboard.KeyArrowRight:
		return CommandForward
	}
	switch e.Rune {
	case 0:
		return CommandNone
	case 'q':
		return CommandQuit
	case k.Pause:
		return CommandPause
	case k.Rewind:
		return CommandRewind
	case k.Forward:
		return CommandForward
	}
	return CommandNone
}

// ReadInput starts reading the keyboard and sends every bound command to the
// returned channel. The returned func releases the keyboard.
func ReadInput(keys Keys, buffer int) (<-chan Command, func() error, error) {
	events, err := keyboard.GetKeys(buffer)
	if nil != err {
		return nil, nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	out := make(chan Command, buffer)
	go func() {
		defer close(out)
		for e := range events {
			if nil != e.Err {
				log.Println(e.Err, "unable to read keyboard input")
				return
			}
			if c := keys.Command(e); c != CommandNone {
				out <- c
			}
		}
	}()
	return out, keyboard.Close, nil
}
