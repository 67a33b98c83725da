package filter

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func sampleDataset() *domain.Dataset {
	return &domain.Dataset{
		WBS: []*domain.WBSNode{
			{ID: "a", Name: "Design phase", PlannedStart: dates.MustParse("2024-01-10"), PlannedEnd: dates.MustParse("2024-02-10")},
			{ID: "b", Name: "Design review", ParentID: ptr("a"), PlannedEnd: dates.MustParse("2024-03-05")},
			{ID: "c", Name: "Build", PlannedStart: dates.MustParse("2024-04-01")},
			{ID: "d", Name: "Backlog"},
		},
		Tasks: []*domain.Task{
			{ID: "t1", Title: "sketch", Status: domain.StatusTodo, WBSID: ptr("a"), Due: dates.MustParse("2024-01-20")},
			{ID: "t2", Title: "review", Status: domain.StatusDone, WBSID: ptr("b")},
			{ID: "t3", Title: "compile", Status: domain.StatusTodo, WBSID: ptr("c"), Due: dates.MustParse("2024-04-15")},
			{ID: "t4", Title: "triage", Status: domain.StatusDoing},
			{ID: "t5", Title: "ghost", Status: domain.StatusTodo, WBSID: ptr("gone")},
		},
	}
}

func TestApply_DisabledReturnsInput(t *testing.T) {
	ds := sampleDataset()
	out := Apply(ds, Criteria{Status: domain.StatusDone, NameQuery: "x"})
	assert.Same(t, ds, out)
}

func TestApply_EmptyEnabledEqualsInput(t *testing.T) {
	ds := sampleDataset()
	out := Apply(ds, Criteria{Enabled: true})
	assert.NotSame(t, ds, out)
	assert.Equal(t, ds, out)
	assert.True(t, Criteria{Enabled: true}.IsZero())
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		criteria  Criteria
		wantNodes []string
		wantTasks []string
	}{
		{
			name:      "date range uses planned start then planned end",
			criteria:  Criteria{Enabled: true, DateStart: dates.MustParse("2024-03-01"), DateEnd: dates.MustParse("2024-03-31")},
			wantNodes: []string{"b", "d"},
			wantTasks: []string{"t2", "t4", "t5"},
		},
		{
			name:      "open start bound",
			criteria:  Criteria{Enabled: true, DateEnd: dates.MustParse("2024-01-31")},
			wantNodes: []string{"a", "d"},
			wantTasks: []string{"t1", "t2", "t4", "t5"},
		},
		{
			name:      "status only",
			criteria:  Criteria{Enabled: true, Status: domain.StatusTodo},
			wantNodes: []string{"a", "b", "c", "d"},
			wantTasks: []string{"t1", "t3", "t5"},
		},
		{
			name:      "name query keeps unassigned and drops dangling",
			criteria:  Criteria{Enabled: true, NameQuery: "Design"},
			wantNodes: []string{"a", "b"},
			wantTasks: []string{"t1", "t2", "t4"},
		},
		{
			name:      "name query is case sensitive",
			criteria:  Criteria{Enabled: true, NameQuery: "design"},
			wantNodes: []string{},
			wantTasks: []string{"t4"},
		},
		{
			name:      "combined",
			criteria:  Criteria{Enabled: true, Status: domain.StatusTodo, NameQuery: "Design", DateStart: dates.MustParse("2024-01-01")},
			wantNodes: []string{"a", "b"},
			wantTasks: []string{"t1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := sampleDataset()
			out := Apply(ds, tt.criteria)
			assert.Equal(t, tt.wantNodes, out.NodeIDs())
			assert.Equal(t, tt.wantTasks, out.TaskIDs())
			assert.Equal(t, sampleDataset(), ds, "source must not change")
		})
	}
}

func TestApply_ResultIsIndependent(t *testing.T) {
	ds := sampleDataset()
	out := Apply(ds, Criteria{Enabled: true, NameQuery: "Build"})
	require.Len(t, out.WBS, 1)
	out.WBS[0].Name = "changed"
	assert.Equal(t, "Build", ds.Node("c").Name)
}

func TestApply_NarrowingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []domain.TaskStatus{"", domain.StatusTodo, domain.StatusDoing, domain.StatusDone}
	queries := []string{"", "1", "node", "x"}

	for i := 0; i < 200; i++ {
		ds := randomDataset(rng)
		c := Criteria{
			Enabled:   true,
			Status:    statuses[rng.Intn(len(statuses))],
			NameQuery: queries[rng.Intn(len(queries))],
			DateStart: randomDate(rng),
			DateEnd:   randomDate(rng),
		}
		out := Apply(ds, c)

		nodeIDs := toSet(ds.NodeIDs())
		for _, id := range out.NodeIDs() {
			assert.True(t, nodeIDs[id], "iteration %d: node %s not in input", i, id)
		}
		taskIDs := toSet(ds.TaskIDs())
		for _, id := range out.TaskIDs() {
			assert.True(t, taskIDs[id], "iteration %d: task %s not in input", i, id)
		}
	}
}

func randomDate(rng *rand.Rand) *time.Time {
	if rng.Intn(3) == 0 {
		return nil
	}
	return dates.MustParse(fmt.Sprintf("2024-%02d-%02d", 1+rng.Intn(12), 1+rng.Intn(28)))
}

func randomDataset(rng *rand.Rand) *domain.Dataset {
	ds := domain.NewDataset()
	n := 1 + rng.Intn(10)
	for i := 0; i < n; i++ {
		node := &domain.WBSNode{ID: fmt.Sprintf("n%d", i), Name: fmt.Sprintf("node %d", i),
			PlannedStart: randomDate(rng), PlannedEnd: randomDate(rng)}
		if i > 0 && rng.Intn(2) == 0 {
			node.ParentID = ptr(fmt.Sprintf("n%d", rng.Intn(i)))
		}
		ds.WBS = append(ds.WBS, node)
	}
	m := rng.Intn(15)
	for i := 0; i < m; i++ {
		task := &domain.Task{ID: fmt.Sprintf("t%d", i), Title: "task",
			Status: domain.DefaultStatuses[rng.Intn(len(domain.DefaultStatuses))], Due: randomDate(rng)}
		if rng.Intn(3) > 0 {
			task.WBSID = ptr(fmt.Sprintf("n%d", rng.Intn(n+2)))
		}
		ds.Tasks = append(ds.Tasks, task)
	}
	return ds
}

func toSet(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
