package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/tasks"
	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders a bar like [████░░░░]  45% for count out of total.
func RenderShare(count, total, width int, style lipgloss.Style) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if total > 0 {
		pct = float64(count) / float64(total)
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderSummary renders the per-status counts with a share bar each and a
// total line.
func RenderSummary(counts []tasks.StatusCount, statuses domain.StatusSet) string {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		style := StatusStyle(c.Status, statuses)
		rows = append(rows, []string{
			style.Render(string(c.Status)),
			fmt.Sprintf("%d", c.Count),
			RenderShare(c.Count, total, 20, style),
		})
	}
	var b strings.Builder
	b.WriteString(RenderTable([]string{"STATUS", "COUNT", "SHARE"}, rows))
	b.WriteString(fmt.Sprintf("%s %d\n", Dim("total"), total))
	return b.String()
}
