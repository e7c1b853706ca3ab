package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/layout"
	"github.com/tmarsh/gantry/pkg/plan"
	"github.com/tmarsh/gantry/pkg/schedule"
)

// timelineModel is the bubbletea model for the interactive timeline
// browser. Moving a task runs the constraint solver, so the chart shown
// is always a settled plan.
type timelineModel struct {
	doc    *plan.Document
	rows   []layout.Row
	cursor int // index into rows; always points at a task row
	zoom   layout.Zoom
	dirty  bool

	height int
	offset int
}

// newTimelineModel creates a model over a settled copy of the document.
func newTimelineModel(doc *plan.Document) timelineModel {
	d := doc.Clone()
	schedule.Settle(d)
	m := timelineModel{
		doc:    d,
		zoom:   layout.Zoom100,
		height: 20,
	}
	m.reflow()
	return m
}

// reflow rebuilds the row list after any mutation and keeps the cursor
// on a task row.
func (m *timelineModel) reflow() {
	m.rows = layout.Rows(m.doc, layout.Metrics{})
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.rows[m.cursor].Kind != layout.RowTask {
		m.moveCursor(1)
	}
}

// moveCursor advances the cursor to the next task row in the given
// direction, scrolling the viewport along.
func (m *timelineModel) moveCursor(dir int) {
	i := m.cursor
	for {
		i += dir
		if i < 0 || i >= len(m.rows) {
			return
		}
		if m.rows[i].Kind == layout.RowTask {
			m.cursor = i
			break
		}
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m timelineModel) selectedTask() (plan.Task, bool) {
	if m.cursor < len(m.rows) && m.rows[m.cursor].Kind == layout.RowTask {
		return m.rows[m.cursor].Task, true
	}
	return plan.Task{}, false
}

func (m timelineModel) Init() tea.Cmd {
	return nil
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "left", "h":
			if t, ok := m.selectedTask(); ok {
				if schedule.MoveTask(m.doc, t.ID, -1) {
					m.dirty = true
					m.reflow()
				}
			}
		case "right", "l":
			if t, ok := m.selectedTask(); ok {
				if schedule.MoveTask(m.doc, t.ID, 1) {
					m.dirty = true
					m.reflow()
				}
			}
		case "+", "=":
			m.zoom = m.zoom.In()
		case "-":
			m.zoom = m.zoom.Out()
		case "c":
			if t, ok := m.selectedTask(); ok {
				if g, found := m.doc.Group(t.GroupID); found {
					g.Collapsed = !g.Collapsed
					m.reflow()
				}
			}
		case "a":
			if t, ok := m.selectedTask(); ok {
				schedule.AddTask(m.doc, t.GroupID)
				m.dirty = true
				m.reflow()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m timelineModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Timeline"))
	b.WriteString("  " + listDimStyle.Render(m.zoom.Label()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ task  ←/→ move day  +/- zoom  c collapse  a add  q quit"))
	b.WriteString("\n\n")

	r := m.doc.Range()
	days := calendar.DaysInclusive(r.Start, r.Due)
	// One character per day keeps the chart readable at any zoom; the
	// zoom preset still drives the pixel geometry reported elsewhere.
	if days > 120 {
		days = 120
	}

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		switch row.Kind {
		case layout.RowGroup:
			b.WriteString(StyleTitle.Render(row.Group.Name))
		case layout.RowTask:
			b.WriteString(m.taskLine(row.Task, r.Start, days, i == m.cursor))
		case layout.RowAdd:
			b.WriteString(listDimStyle.Render("  + add task"))
		}
		b.WriteString("\n")
	}

	if t, ok := m.selectedTask(); ok {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%s  %s..%s  %s",
			t.Name, t.Start.ISO(), t.Due.ISO(), t.Assignee)))
	}
	return b.String()
}

func (m timelineModel) taskLine(t plan.Task, rangeStart calendar.Date, days int, selected bool) string {
	const nameW = 20
	name := t.Name
	if len(name) > nameW {
		name = name[:nameW-1] + "…"
	}
	for len(name) < nameW {
		name += " "
	}

	startIdx := calendar.DayIndex(rangeStart, t.Start)
	endIdx := calendar.DayIndex(rangeStart, t.Due)
	var bar strings.Builder
	for d := 0; d < days; d++ {
		if d >= startIdx && d <= endIdx {
			bar.WriteString("█")
		} else {
			bar.WriteString(" ")
		}
	}

	style := listNormalStyle
	prefix := "  "
	if selected {
		style = listSelectedStyle
		prefix = "› "
	}
	return prefix + style.Render(name) + " " + style.Render(bar.String())
}
