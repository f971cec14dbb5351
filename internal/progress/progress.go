// Package progress renders a live terminal view of a running sweep.
package progress

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uterosim/symprobe/internal/run"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// RecordMsg carries a dispatcher status update.
type RecordMsg run.Record

// DoneMsg signals that the sweep finished and no more updates follow.
type DoneMsg struct{}

// Model displays per-run status as records arrive from the dispatcher.
type Model struct {
	title   string
	total   int
	updates <-chan run.Record

	rows    []run.Record
	byNum   map[int]int
	done    bool
	aborted bool
}

// NewModel builds a progress view fed by the given update channel. The
// channel must be closed once the sweep is over.
func NewModel(title string, total int, updates <-chan run.Record) Model {
	return Model{
		title:   title,
		total:   total,
		updates: updates,
		rows:    make([]run.Record, 0, total),
		byNum:   make(map[int]int),
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForRecord()
}

func (m Model) waitForRecord() tea.Cmd {
	return func() tea.Msg {
		rec, ok := <-m.updates
		if !ok {
			return DoneMsg{}
		}
		return RecordMsg(rec)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.aborted = !m.done
			return m, tea.Quit
		}
	case RecordMsg:
		rec := run.Record(msg)
		if i, ok := m.byNum[rec.Number]; ok {
			m.rows[i] = rec
		} else {
			m.byNum[rec.Number] = len(m.rows)
			m.rows = append(m.rows, rec)
		}
		return m, m.waitForRecord()
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// Aborted reports whether the user quit before the sweep finished.
func (m Model) Aborted() bool { return m.aborted }

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(m.title) + "\n")

	succeeded, failed := 0, 0
	for _, rec := range m.rows {
		switch rec.Status {
		case run.Success:
			succeeded++
		case run.Failed:
			failed++
		}
		s.WriteString(renderRow(rec) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(labelStyle.Render(fmt.Sprintf("%d/%d done", succeeded+failed, m.total)))
	if failed > 0 {
		s.WriteString("  " + failedStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	if m.done {
		s.WriteString("\n" + labelStyle.Render("sweep finished"))
	}
	s.WriteString(helpStyle.Render("\nq: quit"))
	return s.String()
}

func renderRow(rec run.Record) string {
	var status string
	switch rec.Status {
	case run.Success:
		status = successStyle.Render("ok")
	case run.Failed:
		status = failedStyle.Render("failed")
	default:
		status = pendingStyle.Render("running")
	}

	line := fmt.Sprintf("  %3d  %-24s %s", rec.Number, rec.Config.Label, status)
	if rec.Err != nil {
		line += "  " + labelStyle.Render(rec.Err.Error())
	}
	return line
}

// Run drives the view until the update channel closes or the user quits.
func Run(title string, total int, updates <-chan run.Record) error {
	p := tea.NewProgram(NewModel(title, total, updates))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress: %w", err)
	}
	if m, ok := final.(Model); ok && m.Aborted() {
		return fmt.Errorf("progress: sweep interrupted")
	}
	return nil
}
