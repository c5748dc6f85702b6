// ConsoleWriter prints each tick's event record to a terminal.
package sim

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"

	"ghostlidar-sim/internal/telemetry"
)

// ConsoleWriter renders event log lines, optionally colourised and clipped to
// the terminal width.
type ConsoleWriter struct {
	out      io.Writer
	colorize bool
	width    int

	tag     lipgloss.Style
	body    lipgloss.Style
	pass    lipgloss.Style
	stop    lipgloss.Style
	caution lipgloss.Style
}

// NewConsoleWriter writes to out. A width of 0 disables clipping.
func NewConsoleWriter(out io.Writer, colorize bool, width int) *ConsoleWriter {
	r := lipgloss.NewRenderer(out)
	return &ConsoleWriter{
		out:      out,
		colorize: colorize,
		width:    width,
		tag:      r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		body:     r.NewStyle(),
		pass:     r.NewStyle().Foreground(lipgloss.Color("2")),
		stop:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		caution:  r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// NewStdoutConsole writes to os.Stdout, colourising and clipping only when
// stdout is a terminal.
func NewStdoutConsole(noColor bool) *ConsoleWriter {
	fd := int(os.Stdout.Fd())
	tty := term.IsTerminal(fd)
	width := 0
	if tty {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}
	return NewConsoleWriter(os.Stdout, tty && !noColor, width)
}

// WriteState prints the record for st.
func (w *ConsoleWriter) WriteState(st telemetry.SimulationState) error {
	for _, line := range FormatEventLines(st) {
		fmt.Fprintln(w.out, w.render(line))
	}
	return nil
}

func (w *ConsoleWriter) render(line string) string {
	if w.width > 0 {
		line = truncate.StringWithTail(line, uint(w.width), "…")
	}
	if !w.colorize {
		return line
	}
	tag, rest, ok := strings.Cut(line, "] ")
	if !ok {
		return line
	}
	body := w.body
	switch {
	case strings.Contains(rest, telemetry.WatchdogStop), strings.Contains(rest, telemetry.SignalEStop):
		body = w.stop
	case strings.HasPrefix(tag, "[SOL.WatchdogAgent"):
		body = w.pass
	case strings.Contains(rest, "status="+telemetry.StabilityCaution):
		body = w.caution
	}
	return w.tag.Render(tag+"]") + " " + body.Render(rest)
}
