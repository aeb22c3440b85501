package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("35")  // success
	colorRed   = lipgloss.Color("167") // errors
	colorDim   = lipgloss.Color("240") // muted text
)

var (
	styleStopped = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

// printStopped reports user-requested termination.
func printStopped(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleStopped.Render("Animation stopped."))
}

// printFailed reports the fault that terminated the loop, including its
// detail.
func printFailed(w io.Writer, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleFailed.Render("Animation failed:")+" "+err.Error())
}

// waitForEnter blocks until the user presses enter, so the final message is
// not lost when the process runs in a window that closes on exit.
func waitForEnter(r io.Reader, w io.Writer) {
	fmt.Fprint(w, styleDim.Render("Press Enter to exit..."))
	_, _ = bufio.NewReader(r).ReadString('\n')
}
