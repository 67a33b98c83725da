package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wbs/internal/wbstree"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title      string
	ID         string
	Level      int
	IsLast     bool
	InProgress bool
	Done       bool
	Detail     string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// TreeItems converts a depth-first traversal into display items. detail may
// be nil.
func TreeItems(entries []wbstree.Entry, detail func(wbstree.Entry) string) []TreeItem {
	items := make([]TreeItem, len(entries))
	for i, e := range entries {
		items[i] = TreeItem{
			Title:      e.Node.Name,
			ID:         e.Node.ID,
			Level:      e.Depth,
			IsLast:     isLastSibling(entries, i),
			InProgress: e.Node.InProgress(),
			Done:       e.Node.ActualEnd != nil,
		}
		if detail != nil {
			items[i].Detail = detail(e)
		}
	}
	return items
}

// isLastSibling looks ahead for another entry at the same depth before the
// traversal climbs above it.
func isLastSibling(entries []wbstree.Entry, i int) bool {
	depth := entries[i].Depth
	for j := i + 1; j < len(entries); j++ {
		switch d := entries[j].Depth; {
		case d == depth:
			return false
		case d < depth:
			return true
		}
	}
	return true
}

// RenderTree renders TreeItems as an indented tree with box-drawing
// connectors. Finished nodes get a green ✔ prefix, in-progress nodes an
// amber ▶ prefix. Detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0
	// open[d] is true while an ancestor at depth d still has siblings below.
	var open []bool

	for idx, item := range items {
		if len(open) <= item.Level {
			open = append(open, make([]bool, item.Level+1-len(open))...)
		}
		var prefix strings.Builder
		if item.Level > 0 {
			for d := 1; d < item.Level; d++ {
				if open[d] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		open[item.Level] = !item.IsLast

		title := item.Title
		statusPrefix := ""
		switch {
		case item.Done:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case item.InProgress:
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		}
		if item.ID != "" {
			title += " " + TruncID(item.ID)
		}

		content := prefix.String() + statusPrefix + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxContentWidth - lipgloss.Width(li.content)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}
