// Package tasks holds the read-side queries over the task collection:
// status aggregation, grouping for board views and WBS label resolution.
package tasks

import (
	"github.com/alexanderramin/wbs/internal/domain"
)

// Labels used when a task's WBS reference cannot be shown as a node name.
const (
	LabelUnassigned = "(unassigned)"
	LabelDeleted    = "(deleted)"
)

// StatusCount is one entry of a per-status summary.
type StatusCount struct {
	Status domain.TaskStatus
	Count  int
}

// Summarize counts tasks per configured status. Every status in the set is
// present, in set order; tasks with a status outside the set are ignored.
func Summarize(tasks []*domain.Task, statuses domain.StatusSet) []StatusCount {
	counts := make(map[domain.TaskStatus]int, len(statuses))
	for _, t := range tasks {
		if statuses.Contains(t.Status) {
			counts[t.Status]++
		}
	}
	out := make([]StatusCount, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}

// Column is one status lane of a board.
type Column struct {
	Status domain.TaskStatus
	Tasks  []*domain.Task
}

// GroupByStatus buckets tasks into one column per configured status,
// keeping task order within each column. Empty columns are kept.
func GroupByStatus(tasks []*domain.Task, statuses domain.StatusSet) []Column {
	pos := make(map[domain.TaskStatus]int, len(statuses))
	cols := make([]Column, len(statuses))
	for i, s := range statuses {
		pos[s] = i
		cols[i] = Column{Status: s, Tasks: []*domain.Task{}}
	}
	for _, t := range tasks {
		if i, ok := pos[t.Status]; ok {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// FilterByWBS returns the tasks assigned to wbsID. A nil wbsID returns the
// input unchanged.
func FilterByWBS(tasks []*domain.Task, wbsID *string) []*domain.Task {
	if wbsID == nil {
		return tasks
	}
	var out []*domain.Task
	for _, t := range tasks {
		if t.WBSID != nil && *t.WBSID == *wbsID {
			out = append(out, t)
		}
	}
	return out
}

// Label resolves a task's WBS reference to a display name, falling back to
// LabelUnassigned for nil and LabelDeleted for a reference to a missing node.
func Label(index map[string]*domain.WBSNode, wbsID *string) string {
	if wbsID == nil {
		return LabelUnassigned
	}
	n, ok := index[*wbsID]
	if !ok {
		return LabelDeleted
	}
	return n.Name
}

// Dangling returns tasks whose WBS reference points at a missing node.
func Dangling(tasks []*domain.Task, index map[string]*domain.WBSNode) []*domain.Task {
	var out []*domain.Task
	for _, t := range tasks {
		if t.WBSID == nil {
			continue
		}
		if _, ok := index[*t.WBSID]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the task with the given id, or nil.
func Find(tasks []*domain.Task, id string) *domain.Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
