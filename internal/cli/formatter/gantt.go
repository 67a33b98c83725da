package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/schedule"
	"github.com/charmbracelet/lipgloss"
)

const (
	ganttPlanned = '░'
	ganttActual  = '█'
	ganttToday   = '│'
	ganttEmpty   = ' '

	// DefaultGanttWidth is the number of bar cells when the caller has no
	// terminal width to go on.
	DefaultGanttWidth = 60
)

type ganttCell struct {
	r     rune
	style lipgloss.Style
}

// RenderGantt draws rows as a text Gantt chart over window. Planned spans
// are light blocks, actual spans solid (amber while in progress). The
// today column is marked where no bar covers it. Rows without dates are
// listed with a dim note so the hierarchy stays readable.
func RenderGantt(rows []schedule.Row, window schedule.Window, today time.Time, width int) string {
	if width <= 0 {
		width = DefaultGanttWidth
	}
	days := window.Days()
	if days < 1 {
		days = 1
	}
	cells := width
	if days < cells {
		cells = days
	}

	nameWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.DisplayName); w > nameWidth {
			nameWidth = w
		}
	}

	cellOf := func(t time.Time) int {
		d := int(dates.Truncate(t).Sub(window.Start).Hours() / 24)
		return d * cells / days
	}
	inWindow := func(t time.Time) bool {
		t = dates.Truncate(t)
		return !t.Before(window.Start) && !t.After(window.End)
	}

	var b strings.Builder
	start, end := window.Start.Format(dates.Layout), window.End.Format(dates.Layout)
	gap := cells - len(start) - len(end)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(strings.Repeat(" ", nameWidth+colGap))
	b.WriteString(Dim(start + strings.Repeat(" ", gap) + end))
	b.WriteString("\n")

	for _, r := range rows {
		pad := nameWidth - lipgloss.Width(r.DisplayName)
		b.WriteString(r.DisplayName + strings.Repeat(" ", pad+colGap))
		if !r.Charted() {
			b.WriteString(Dim("(no dates)"))
			b.WriteString("\n")
			continue
		}

		line := make([]ganttCell, cells)
		for i := range line {
			line[i] = ganttCell{r: ganttEmpty, style: StyleDim}
		}
		fill := func(from, to *time.Time, ch rune, style lipgloss.Style) {
			lo, hi := dates.Truncate(*from), dates.Truncate(*to)
			if hi.Before(lo) {
				lo, hi = hi, lo
			}
			if hi.Before(window.Start) || lo.After(window.End) {
				return
			}
			if lo.Before(window.Start) {
				lo = window.Start
			}
			if hi.After(window.End) {
				hi = window.End
			}
			for c := cellOf(lo); c <= cellOf(hi) && c < cells; c++ {
				line[c] = ganttCell{r: ch, style: style}
			}
		}
		if r.HasPlanned() {
			fill(r.PlannedStart, r.PlannedEnd, ganttPlanned, StyleBlue)
		}
		if r.HasActual() && r.ActualEndForChart != nil {
			style := StyleGreen
			if r.InProgress {
				style = StyleYellow
			}
			fill(r.ActualStart, r.ActualEndForChart, ganttActual, style)
		}
		if inWindow(today) {
			if c := cellOf(today); c < cells && line[c].r == ganttEmpty {
				line[c] = ganttCell{r: ganttToday, style: StyleRed}
			}
		}

		var bar strings.Builder
		for _, c := range line {
			bar.WriteString(c.style.Render(string(c.r)))
		}
		b.WriteString(strings.TrimRight(bar.String(), " "))
		b.WriteString("\n")
	}
	return b.String()
}
