package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/schedule"
	"github.com/alexanderramin/wbs/internal/tasks"
	"github.com/alexanderramin/wbs/internal/wbstree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func day(s string) time.Time {
	return *dates.MustParse(s)
}

func TestRenderTable(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "NAME"}, [][]string{
		{"a", "Design"},
		{"bbbb", "X"},
	}))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID    NAME", lines[0])
	assert.Equal(t, "────  ──────", lines[1])
	assert.Equal(t, "a     Design", lines[2])
	assert.Equal(t, "bbbb  X", lines[3])
}

func TestRenderTable_NoRows(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID"}, nil))
	assert.Contains(t, out, "(none)")
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTree_Connectors(t *testing.T) {
	a := &domain.WBSNode{ID: "a", Name: "A"}
	b := &domain.WBSNode{ID: "b", Name: "B", ParentID: &a.ID}
	c := &domain.WBSNode{ID: "c", Name: "C", ParentID: &b.ID}
	d := &domain.WBSNode{ID: "d", Name: "D", ParentID: &a.ID}
	e := &domain.WBSNode{ID: "e", Name: "E"}

	entries := wbstree.FlattenDepthFirst([]*domain.WBSNode{a, b, c, d, e})
	out := stripANSI(RenderTree(TreeItems(entries, nil)))

	assert.Equal(t, strings.Join([]string{
		"A a",
		"├─ B b",
		"│  └─ C c",
		"└─ D d",
		"E e",
	}, "\n")+"\n", out)
}

func TestRenderTree_StatusAndDetail(t *testing.T) {
	items := []TreeItem{
		{Title: "Done", Done: true, Detail: "x"},
		{Title: "Running", InProgress: true},
	}
	out := stripANSI(RenderTree(items))
	assert.Contains(t, out, "✔ Done")
	assert.Contains(t, out, "[ x ]")
	assert.Contains(t, out, "▶ Running")
	assert.Empty(t, RenderTree(nil))
}

func TestRelativeDateFrom(t *testing.T) {
	today := day("2024-03-10")
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-10", "Today"},
		{"2024-03-11", "Tomorrow"},
		{"2024-03-09", "Yesterday"},
		{"2024-03-13", "In 3d"},
		{"2024-03-31", "In 3w"},
		{"2024-06-10", "In 3mo"},
		{"2024-03-01", "9d ago"},
		{"2024-02-10", "4w ago"},
		{"2023-12-01", "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(day(tt.in), today))
		})
	}
}

func TestDateCells(t *testing.T) {
	assert.Equal(t, "--", stripANSI(DateCell(nil)))
	assert.Equal(t, "2024-01-02", DateCell(dates.MustParse("2024-01-02")))
	assert.Equal(t, "-- → 2024-01-02", stripANSI(DateRange(nil, dates.MustParse("2024-01-02"))))
	assert.Equal(t, "2024-03-12 (In 2d)", stripANSI(DueCell(dates.MustParse("2024-03-12"), day("2024-03-10"))))
}

func TestRenderBoard(t *testing.T) {
	statuses := domain.DefaultStatuses
	ts := []*domain.Task{
		{ID: "1", Title: "write", Status: domain.StatusTodo},
		{ID: "2", Title: "ship", Status: domain.StatusDone, Priority: domain.PriorityHigh},
	}
	out := stripANSI(RenderBoard(tasks.GroupByStatus(ts, statuses), statuses,
		func(*domain.Task) string { return tasks.LabelUnassigned }, day("2024-03-10")))

	assert.Contains(t, out, "TODO (1)")
	assert.Contains(t, out, "DOING (0)")
	assert.Contains(t, out, "DONE (1)")
	assert.Contains(t, out, "write")
	assert.Contains(t, out, "high")
	assert.Contains(t, out, "(empty)")
}

func TestRenderSummary(t *testing.T) {
	counts := []tasks.StatusCount{{Status: "TODO", Count: 1}, {Status: "DONE", Count: 3}}
	out := stripANSI(RenderSummary(counts, domain.DefaultStatuses))
	assert.Contains(t, out, " 25%")
	assert.Contains(t, out, " 75%")
	assert.Contains(t, out, "total 4")
}

func TestRenderShare_ZeroTotal(t *testing.T) {
	assert.Equal(t, "[░░░░]   0%", stripANSI(RenderShare(0, 0, 4, StyleGreen)))
	assert.Equal(t, "[████] 100%", stripANSI(RenderShare(2, 2, 4, StyleGreen)))
}

func TestRenderGantt(t *testing.T) {
	a := &domain.WBSNode{ID: "a", Name: "A", PlannedStart: dates.MustParse("2024-03-01"), PlannedEnd: dates.MustParse("2024-03-10")}
	b := &domain.WBSNode{ID: "b", Name: "B", ParentID: &a.ID, ActualStart: dates.MustParse("2024-03-05")}
	c := &domain.WBSNode{ID: "c", Name: "C", ParentID: &a.ID}

	view, err := schedule.Build([]*domain.WBSNode{a, b, c}, day("2024-03-10"), schedule.Options{})
	require.NoError(t, err)

	out := stripANSI(RenderGantt(view.Rows, view.Window, view.Today, 0))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "2024-03-01")
	assert.Contains(t, lines[0], "2024-03-10")
	// Ten days fit in ten cells: planned covers all of them.
	assert.Equal(t, "A    ░░░░░░░░░░", lines[1])
	// In progress: solid from 03-05 through today.
	assert.Equal(t, "  B      ██████", lines[2])
	assert.Equal(t, "  C  (no dates)", lines[3])
}
