package sim

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ghostlidar-sim/internal/telemetry"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}
	st := testState(7)
	if err := w.WriteState(st); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg, ok := p.msgs[0].(stateMsg)
	if !ok {
		t.Fatalf("expected stateMsg, got %T", p.msgs[0])
	}
	if msg.Tick != 7 {
		t.Fatalf("unexpected tick %d", msg.Tick)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := p.msgs[1].(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg on close, got %T", p.msgs[1])
	}
}

func TestTUIModelWaitingView(t *testing.T) {
	m := newTUIModel()
	if !strings.Contains(m.View(), "waiting for first tick") {
		t.Fatalf("unexpected initial view: %q", m.View())
	}
}

func TestTUIModelRendersState(t *testing.T) {
	m := newTUIModel()
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = mi.(tuiModel)
	mi, _ = m.Update(stateMsg{testState(39)})
	m = mi.(tuiModel)

	view := m.View()
	for _, want := range []string{"run-test", "Step 4/6", "CARGO-LOAD", "DRAFT (ft)", "CRANE LOADING", "STABILITY", "Watchdog", "PASS"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTUIModelShowsStop(t *testing.T) {
	st := testState(37)
	st.Watchdog.Status = telemetry.WatchdogStop
	st.Watchdog.SafetyMessage = StopMessage
	mi, _ := newTUIModel().Update(stateMsg{st})
	view := mi.(tuiModel).View()
	if !strings.Contains(view, "STOP") || !strings.Contains(view, "EMERGENCY STOP") {
		t.Fatalf("stop not rendered:\n%s", view)
	}
}

func TestTUIModelLogTail(t *testing.T) {
	m := newTUIModel()
	for tick := 0; tick < 5; tick++ {
		mi, _ := m.Update(stateMsg{testState(tick)})
		m = mi.(tuiModel)
	}
	if len(m.logs) != tuiLogLines {
		t.Fatalf("expected %d log lines, got %d", tuiLogLines, len(m.logs))
	}
	if !strings.HasPrefix(m.logs[len(m.logs)-6], "[SOL.GhostLiDAR] tick=4 ") {
		t.Fatalf("log tail should end with the latest tick: %q", m.logs[len(m.logs)-6])
	}
}

func TestTUIModelQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := newTUIModel().Update(key)
		if cmd == nil {
			t.Fatalf("key %q should quit", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("key %q returned %T", key.String(), cmd())
		}
	}
}

func TestRunProgress(t *testing.T) {
	if got := runProgress(telemetry.Watchdog{TimeElapsedSeconds: 15, TimeRemainingSeconds: 45}); got != 0.25 {
		t.Fatalf("runProgress = %v", got)
	}
	if got := runProgress(telemetry.Watchdog{}); got != 1 {
		t.Fatalf("empty watchdog should report complete, got %v", got)
	}
}
