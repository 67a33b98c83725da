package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly day distance from today.
func RelativeDateFrom(t, today time.Time) string {
	days := int(dates.Truncate(t).Sub(dates.Truncate(today)).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueCell renders a due date with urgency coloring relative to today.
func DueCell(due *time.Time, today time.Time) string {
	if due == nil {
		return Dim("--")
	}
	style := StyleFg
	switch days := int(dates.Truncate(*due).Sub(dates.Truncate(today)).Hours() / 24); {
	case days <= 2:
		style = StyleRed
	case days <= 7:
		style = StyleYellow
	}
	return style.Render(dates.Format(due)) + " " + Dim("("+RelativeDateFrom(*due, today)+")")
}

// DateCell renders an optional date, dim "--" when unset.
func DateCell(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return dates.Format(t)
}

// DateRange renders "start → end" with either side optional.
func DateRange(start, end *time.Time) string {
	if start == nil && end == nil {
		return Dim("--")
	}
	return DateCell(start) + Dim(" → ") + DateCell(end)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
