package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/tasks"
	"github.com/charmbracelet/lipgloss"
)

const boardColumnWidth = 26

// RenderBoard lays the status columns out side by side. Each card shows the
// task title, its WBS label and the due date when set.
func RenderBoard(cols []tasks.Column, statuses domain.StatusSet, label func(*domain.Task) string, today time.Time) string {
	if len(cols) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(cols))
	for _, col := range cols {
		style := StatusStyle(col.Status, statuses)
		var b strings.Builder
		b.WriteString(style.Bold(true).Render(fmt.Sprintf("%s (%d)", col.Status, len(col.Tasks))))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(strings.Repeat("─", boardColumnWidth-2)))
		for _, t := range col.Tasks {
			b.WriteString("\n")
			b.WriteString(renderCard(t, label, today))
		}
		if len(col.Tasks) == 0 {
			b.WriteString("\n")
			b.WriteString(Dim("(empty)"))
		}

		box := lipgloss.NewStyle().
			Width(boardColumnWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)
		rendered = append(rendered, box.Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}

func renderCard(t *domain.Task, label func(*domain.Task) string, today time.Time) string {
	lines := []string{Bold(t.Title)}
	meta := []string{}
	if label != nil {
		meta = append(meta, StyleBlue.Render(label(t)))
	}
	if t.Priority != domain.PriorityNone {
		meta = append(meta, PriorityBadge(t.Priority))
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, " "))
	}
	if t.Due != nil {
		lines = append(lines, Dim("due ")+DueCell(t.Due, today))
	}
	return strings.Join(lines, "\n")
}
