package progress

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uterosim/symprobe/internal/run"
	"github.com/uterosim/symprobe/internal/sweep"
)

func record(n int, label string, status run.Status, err error) run.Record {
	return run.Record{
		Number: n,
		Config: sweep.SimulationConfig{Label: label},
		Status: status,
		Err:    err,
	}
}

func TestModelTracksRecords(t *testing.T) {
	updates := make(chan run.Record, 4)
	m := NewModel("parameter sweep", 2, updates)

	next, _ := m.Update(RecordMsg(record(1, "gkv43=0.1", run.Pending, nil)))
	m = next.(Model)
	next, _ = m.Update(RecordMsg(record(1, "gkv43=0.1", run.Success, nil)))
	m = next.(Model)
	next, _ = m.Update(RecordMsg(record(2, "gkv43=0.2", run.Failed, errors.New("exit status 1"))))
	m = next.(Model)

	if len(m.rows) != 2 {
		t.Fatalf("rows = %d, want 2 (updates must replace, not append)", len(m.rows))
	}

	view := m.View()
	if !strings.Contains(view, "parameter sweep") {
		t.Errorf("view missing title: %q", view)
	}
	if !strings.Contains(view, "gkv43=0.1") || !strings.Contains(view, "gkv43=0.2") {
		t.Errorf("view missing run labels: %q", view)
	}
	if !strings.Contains(view, "2/2 done") {
		t.Errorf("view missing completion count: %q", view)
	}
	if !strings.Contains(view, "1 failed") {
		t.Errorf("view missing failure count: %q", view)
	}
	if !strings.Contains(view, "exit status 1") {
		t.Errorf("view missing failure detail: %q", view)
	}
}

func TestModelDone(t *testing.T) {
	m := NewModel("estrus sweep", 4, make(chan run.Record))

	next, cmd := m.Update(DoneMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("DoneMsg should quit the program")
	}
	if !m.done {
		t.Error("done flag not set")
	}
	if m.Aborted() {
		t.Error("finished sweep must not count as aborted")
	}
	if !strings.Contains(m.View(), "sweep finished") {
		t.Errorf("view missing finished notice: %q", m.View())
	}
}

func TestModelQuitBeforeDone(t *testing.T) {
	m := NewModel("estrus sweep", 4, make(chan run.Record))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if !m.Aborted() {
		t.Error("quitting mid-sweep must report aborted")
	}
}

func TestWaitForRecordClosedChannel(t *testing.T) {
	updates := make(chan run.Record)
	close(updates)
	m := NewModel("sweep", 0, updates)

	msg := m.waitForRecord()()
	if _, ok := msg.(DoneMsg); !ok {
		t.Fatalf("closed channel should yield DoneMsg, got %T", msg)
	}
}
