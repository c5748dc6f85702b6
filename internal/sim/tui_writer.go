package sim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ghostlidar-sim/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// stateMsg carries a tick snapshot into the TUI.
type stateMsg struct{ telemetry.SimulationState }

const (
	tuiLogLines  = 12
	tuiBarWidth  = 40
	tuiBoxMargin = 2
)

// TUIWriter renders the live run in a bubbletea dashboard.
type TUIWriter struct {
	program teaProgram
	done    chan struct{}
}

// NewTUIWriter starts the dashboard. onQuit runs when the program exits,
// whether the user quit or Close was called.
func NewTUIWriter(onQuit func()) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	p := tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if onQuit != nil {
			onQuit()
		}
	}()
	return w
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(st telemetry.SimulationState) error {
	w.program.Send(stateMsg{st})
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

var (
	tuiTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	tuiBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginRight(tuiBoxMargin)
	tuiLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tuiPass  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	tuiStop  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	tuiHelp  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tuiModel struct {
	state    telemetry.SimulationState
	have     bool
	phaseBar progress.Model
	runBar   progress.Model
	logs     []string
	width    int
}

func newTUIModel() tuiModel {
	return tuiModel{
		phaseBar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(tuiBarWidth)),
		runBar:   progress.New(progress.WithSolidFill("6"), progress.WithWidth(tuiBarWidth)),
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		bw := min(tuiBarWidth, max(10, msg.Width-24))
		m.phaseBar.Width = bw
		m.runBar.Width = bw
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case stateMsg:
		m.state = msg.SimulationState
		m.have = true
		m.logs = append(m.logs, FormatEventLines(msg.SimulationState)...)
		if len(m.logs) > tuiLogLines {
			m.logs = m.logs[len(m.logs)-tuiLogLines:]
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	if !m.have {
		return tuiTitle.Render("Ghost LiDAR") + "\n\nwaiting for first tick...\n\n" + tuiHelp.Render("q: quit")
	}
	st := m.state
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", tuiTitle.Render("Ghost LiDAR"), tuiLabel.Render("run "+st.RunID))
	fmt.Fprintf(&b, "Step %d/%d  %s  %s\n", st.Workflow.CurrentStep, st.Workflow.TotalSteps, st.Phase, st.Workflow.StepLabel)
	fmt.Fprintf(&b, "%s %s\n", tuiLabel.Render("phase"), m.phaseBar.ViewAs(st.PhaseProgress))
	fmt.Fprintf(&b, "%s %s  %.2f / %.0f min\n\n", tuiLabel.Render("run  "), m.runBar.ViewAs(runProgress(st.Watchdog)),
		st.Workflow.ElapsedMinutes, st.Workflow.TargetMinutes)

	d := st.DraftReadings
	drafts := fmt.Sprintf("DRAFT (%s)\nfore  %6.2f\naft   %6.2f\nport  %6.2f\nstbd  %6.2f\nmean  %6.2f",
		d.Unit, d.Fore, d.Aft, d.Port, d.Starboard, d.Mean)
	c := st.CraneSignals
	crane := fmt.Sprintf("CRANE %s\nload  %d/%dt\nboom  %.1f\nslew  %.1f\nhook  %.1f\n%s",
		c.Status, c.LoadWeight, c.MaxCapacity, c.BoomAngle, c.SlewBearing, c.HookHeight, c.GCode)
	s := st.Stability
	stab := fmt.Sprintf("STABILITY %s\ntrim  %.3f\nheel  %.3f\nGM    %.2fm\ndisp  %dt",
		s.Status, s.Trim, s.Heel, s.GM, s.Displacement)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tuiBox.Render(drafts), tuiBox.Render(crane), tuiBox.Render(stab)))
	b.WriteString("\n\n")

	wd := st.Watchdog
	status := tuiPass.Render(wd.Status)
	if wd.Status == telemetry.WatchdogStop {
		status = tuiStop.Render(wd.Status)
	}
	fmt.Fprintf(&b, "Watchdog %s  %s\n\n", status, wd.SafetyMessage)

	for _, l := range m.logs {
		if m.width > 0 && len(l) > m.width {
			l = l[:m.width]
		}
		b.WriteString(tuiLabel.Render(l) + "\n")
	}
	b.WriteString("\n" + tuiHelp.Render("q: quit"))
	return b.String()
}

func runProgress(w telemetry.Watchdog) float64 {
	total := w.TimeElapsedSeconds + w.TimeRemainingSeconds
	if total <= 0 {
		return 1
	}
	return min(1, float64(w.TimeElapsedSeconds)/float64(total))
}
