package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tmarsh/gantry/pkg/calendar"
	"github.com/tmarsh/gantry/pkg/plan"
)

var (
	ganttGroupStyle   = lipgloss.NewStyle().Bold(true)
	ganttWeekendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ganttBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	ganttDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	ganttNameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// GanttOptions configures the terminal Gantt view.
type GanttOptions struct {
	// NameWidth is the width of the task name column. Defaults to 24.
	NameWidth int

	// Compact drops the per-task date suffix.
	Compact bool
}

// Gantt renders the document as a text Gantt chart: one day per column,
// one row per task, grouped under group headers. Weekends render as
// dots, task bars as filled blocks in the task's color.
func Gantt(doc *plan.Document, opts GanttOptions) string {
	nameW := opts.NameWidth
	if nameW <= 0 {
		nameW = 24
	}

	r := doc.Range()
	days := calendar.DaysInclusive(r.Start, r.Due)

	var b strings.Builder
	b.WriteString(ganttHeader(r.Start, days, nameW))
	b.WriteString("\n")

	for _, g := range doc.Groups {
		b.WriteString(ganttGroupStyle.Render(g.Name))
		b.WriteString("\n")
		if g.Collapsed {
			continue
		}
		for _, t := range doc.TasksInGroup(g.ID, false) {
			b.WriteString(ganttRow(t, r.Start, days, nameW, opts.Compact))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ganttHeader renders the month ruler above the grid.
func ganttHeader(rangeStart calendar.Date, days, nameW int) string {
	cells := make([]byte, days)
	for i := range cells {
		d := rangeStart.AddDays(i)
		if d.Time().Day() == 1 || i == 0 {
			cells[i] = '|'
		} else {
			cells[i] = ' '
		}
	}
	return strings.Repeat(" ", nameW) + " " + string(cells)
}

func ganttRow(t plan.Task, rangeStart calendar.Date, days, nameW int, compact bool) string {
	name := t.Name
	if len(name) > nameW {
		name = name[:nameW-1] + "…"
	}

	startIdx := calendar.DayIndex(rangeStart, t.Start)
	endIdx := calendar.DayIndex(rangeStart, t.Due)

	var cells strings.Builder
	for i := 0; i < days; i++ {
		switch {
		case i >= startIdx && i <= endIdx:
			cells.WriteString(barStyle(t).Render("█"))
		case calendar.IsWeekend(rangeStart.AddDays(i)):
			cells.WriteString(ganttWeekendStyle.Render("·"))
		default:
			cells.WriteString(" ")
		}
	}

	row := fmt.Sprintf("%s %s", ganttNameStyle.Render(padRight(name, nameW)), cells.String())
	if !compact {
		row += ganttWeekendStyle.Render(fmt.Sprintf("  %s..%s", t.Start.ISO(), t.Due.ISO()))
	}
	return row
}

func barStyle(t plan.Task) lipgloss.Style {
	if t.Status == plan.StatusCompleted {
		return ganttDoneStyle
	}
	if t.BarColor != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.BarColor))
	}
	return ganttBarStyle
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
