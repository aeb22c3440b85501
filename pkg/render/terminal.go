package render

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// Presenter writes composited frames to a terminal as rows of characters,
// plain or wrapped in 24-bit color escape sequences.
type Presenter struct {
	out  *bufio.Writer
	char rune
}

// NewPresenter creates a presenter that writes frames to w using char as
// the fill character.
func NewPresenter(w io.Writer, char rune) *Presenter {
	return &Presenter{
		out:  bufio.NewWriter(w),
		char: char,
	}
}

// Present writes the frame row by row in row-major order: the fill
// character for covered cells (wrapped in a truecolor foreground escape in
// color mode), a space otherwise, a newline per row. The output is flushed
// once after the full frame.
func (p *Presenter) Present(f *Frame) error {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c, ok := f.At(x, y)
			switch {
			case !ok:
				p.out.WriteByte(' ')
			case f.colored:
				// Exact byte format expected by 24-bit terminal emulators.
				fmt.Fprintf(p.out, "\x1b[38;2;%d;%d;%dm%c\x1b[0m", c.R, c.G, c.B, p.char)
			default:
				p.out.WriteRune(p.char)
			}
		}
		p.out.WriteByte('\n')
	}
	return p.out.Flush()
}

// ClearScreen invokes the platform clear primitive, writing its output to
// w: cls on Windows, clear everywhere else. Called once per frame before
// drawing.
func ClearScreen(w io.Writer) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = w
	return cmd.Run()
}
