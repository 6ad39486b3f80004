// Package ui provides the optional terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MiladSamani/TaskManager/internal/task"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// filter narrows which tasks the viewer shows.
type filter int

const (
	filterAll filter = iota
	filterPending
	filterCompleted
)

func (f filter) String() string {
	switch f {
	case filterPending:
		return "pending"
	case filterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// RunTUI starts the read-only task viewer for the store at dbPath.
func RunTUI(ctx context.Context, dbPath string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(dbPath)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	dbPath  string
	loadErr error
	tasks   []task.Task
	visible []task.Task
	cursor  int
	filter  filter
}

func newTUIModel(dbPath string) *tuiModel {
	return &tuiModel{dbPath: dbPath}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "j", "down":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "a":
			m.filter = filterAll
			m.applyFilter()
			return m, nil
		case "p":
			m.filter = filterPending
			m.applyFilter()
			return m, nil
		case "c":
			m.filter = filterCompleted
			m.applyFilter()
			return m, nil
		}
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskman") + "  " + footerStyle.Render(m.dbPath) + "\n\n")

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	pending, completed := 0, 0
	for i := range m.tasks {
		if m.tasks[i].Completed {
			completed++
		} else {
			pending++
		}
	}
	b.WriteString(fmt.Sprintf("%d tasks  •  %d pending  •  %d completed  •  filter: %s\n\n",
		len(m.tasks), pending, completed, m.filter))

	if len(m.visible) == 0 {
		b.WriteString("No tasks to show.\n\n")
		writeFooter(&b)
		return b.String()
	}

	for i := range m.visible {
		t := &m.visible[i]
		line := t.Label()
		if t.Completed {
			line = completedStyle.Render(line)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	writeFooter(&b)
	return b.String()
}

func writeFooter(b *strings.Builder) {
	b.WriteString(footerStyle.Render("j/k move  a all  p pending  c completed  r reload  q quit") + "\n")
}

func (m *tuiModel) refresh() {
	store, err := task.Load(m.dbPath)
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.visible = nil
		return
	}
	m.loadErr = nil
	m.tasks = store.Tasks
	task.SortByID(m.tasks)
	m.applyFilter()
}

// applyFilter rebuilds the visible slice and clamps the cursor.
func (m *tuiModel) applyFilter() {
	m.visible = m.visible[:0]
	for i := range m.tasks {
		switch m.filter {
		case filterPending:
			if m.tasks[i].Completed {
				continue
			}
		case filterCompleted:
			if !m.tasks[i].Completed {
				continue
			}
		}
		m.visible = append(m.visible, m.tasks[i])
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
