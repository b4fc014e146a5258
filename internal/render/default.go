package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

type DefaultRenderer struct {
	Out io.Writer // Stdout when nil

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	X, Y    uint16
	Content string
	Frames  int // remaining frames until removed
}

func (r *DefaultRenderer) out() io.Writer {
	if nil == r.Out {
		return os.Stdout
	}
	return r.Out
}

func (r *DefaultRenderer) Init() error {
	state, err := term.MakeRaw(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to make the terminal raw: %w", err)
	}
	r.restoreState = state

	fmt.Fprintf(r.out(), "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out(), "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

// Size of the terminal, 80x24 when it cannot be read.
func (r *DefaultRenderer) Size() (int, int) {
	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return 80, 24
	}
	return columns, rows
}

func (r *DefaultRenderer) AddDecoration(col, row uint16, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, " ")
			continue
		}
		r.Fill(d.Y, d.X, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop calls render once per period until it returns false.
func (r *DefaultRenderer) RenderLoop(period time.Duration, render func() bool) {
	for cont := true; cont; {
		now := time.Now()
		deadline := now.Add(period)

		cont = render()

		r.tickDecorations()
		r.flush()

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column uint16, c color.RGBA, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H\033[38;2;")
	r.buffer.WriteString(strconv.FormatInt(int64(c.R), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.G), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(c.B), 10))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) flush() {
	r.out().Write([]byte(r.buffer.String()))
	r.buffer.Reset()
}
