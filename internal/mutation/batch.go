package mutation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

// WBSRowEdit is the desired state of one row of a WBS table edit.
type WBSRowEdit struct {
	ID       string
	Dates    DateEdit
	ParentID *string
	Delete   bool
}

// TaskRowEdit is the desired state of one row of a task table edit.
type TaskRowEdit struct {
	ID     string
	Title  string
	WBSID  *string
	Due    *time.Time
	Delete bool
}

// Rejection records one edit the batch refused to apply.
type Rejection struct {
	ID   string
	Name string
	Err  error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s: %v", domain.CoalesceStr(r.Name, r.ID), r.Err)
}

// BatchResult is the structured outcome of a batch edit.
type BatchResult struct {
	FieldUpdates    int
	ReparentUpdates int
	Deleted         int
	Rejected        []Rejection
}

// Changed reports whether the batch modified the dataset.
func (r *BatchResult) Changed() bool {
	return r.FieldUpdates > 0 || r.ReparentUpdates > 0 || r.Deleted > 0
}

// Summary renders the non-zero counts, e.g. "2 updated, 1 deleted".
func (r *BatchResult) Summary() string {
	var parts []string
	if r.FieldUpdates > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", r.FieldUpdates))
	}
	if r.ReparentUpdates > 0 {
		parts = append(parts, fmt.Sprintf("%d moved", r.ReparentUpdates))
	}
	if r.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("%d deleted", r.Deleted))
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

func (r *BatchResult) reject(id, name string, err error) {
	r.Rejected = append(r.Rejected, Rejection{ID: id, Name: name, Err: err})
}

// ApplyWBSBatch applies a WBS table edit as one transaction:
//
//  0. rows naming the same node collapse into the last one;
//  1. rows marked Delete are expanded to their full cascade set;
//  2. rows in that set get no field edits;
//  3. every reparent is validated against the tree as it was before the
//     batch, so row order does not matter;
//  4. invalid rows are collected in Rejected and valid ones are applied;
//  5. deletions run last.
//
// Reparents that are individually valid can still close a loop together.
// Any batch reparent left on a cycle is reverted and rejected.
func ApplyWBSBatch(ds *domain.Dataset, rows []WBSRowEdit) *BatchResult {
	res := &BatchResult{}
	rows = mergeRows(rows, func(r WBSRowEdit) string { return r.ID }, func(r *WBSRowEdit) *bool { return &r.Delete })

	desc := wbstree.DescendantsMap(ds.WBS)
	index := ds.NodeIndex()
	origParent := make(map[string]*string, len(ds.WBS))
	for _, n := range ds.WBS {
		origParent[n.ID] = copyStr(n.ParentID)
	}

	var marked []string
	for _, row := range rows {
		if row.Delete {
			marked = append(marked, row.ID)
		}
	}
	del := expandWith(desc, marked)

	moved := make(map[string]bool)
	for _, row := range rows {
		n, ok := index[row.ID]
		if !ok || del[row.ID] {
			continue
		}

		if ApplyDateEdit(n, row.Dates) {
			res.FieldUpdates++
		}

		if domain.StrPtrEqual(n.ParentID, row.ParentID) {
			continue
		}
		if row.ParentID != nil {
			p := *row.ParentID
			switch {
			case del[p]:
				res.reject(n.ID, n.Name, domain.ErrParentDeleted)
				continue
			case p == n.ID || desc[n.ID][p]:
				res.reject(n.ID, n.Name, domain.ErrInvalidReparent)
				continue
			case index[p] == nil:
				res.reject(n.ID, n.Name, fmt.Errorf("%w: %s", domain.ErrUnknownParent, p))
				continue
			}
		}
		n.ParentID = copyStr(row.ParentID)
		moved[n.ID] = true
		res.ReparentUpdates++
	}

	for {
		cycle := wbstree.FindCycle(ds.WBS)
		if cycle == nil {
			break
		}
		reverted := false
		for _, id := range cycle {
			if !moved[id] {
				continue
			}
			n := index[id]
			n.ParentID = copyStr(origParent[id])
			delete(moved, id)
			res.ReparentUpdates--
			res.reject(n.ID, n.Name, domain.ErrInvalidReparent)
			reverted = true
		}
		if !reverted {
			// The cycle predates the batch; nothing of ours to undo.
			break
		}
	}

	res.Deleted = removeNodes(ds, del)
	return res
}

// ApplyTaskBatch applies a task table edit: marked rows are deleted, other
// rows are validated and updated, and invalid rows are reported without
// blocking the rest.
func ApplyTaskBatch(ds *domain.Dataset, rows []TaskRowEdit) *BatchResult {
	res := &BatchResult{}
	rows = mergeRows(rows, func(r TaskRowEdit) string { return r.ID }, func(r *TaskRowEdit) *bool { return &r.Delete })
	index := ds.TaskIndex()

	del := make(map[string]bool)
	for _, row := range rows {
		if row.Delete {
			del[row.ID] = true
		}
	}

	for _, row := range rows {
		t, ok := index[row.ID]
		if !ok || del[row.ID] {
			continue
		}
		changed, err := UpdateTask(ds, row.ID, TaskEdit{Title: row.Title, WBSID: row.WBSID, Due: row.Due})
		if err != nil {
			res.reject(t.ID, t.Title, err)
			continue
		}
		if changed {
			res.FieldUpdates++
		}
	}

	res.Deleted = removeTasks(ds, del)
	return res
}

// mergeRows keeps one row per id: the last one, in the position of the
// first. A delete mark on any of them survives.
func mergeRows[T any](rows []T, id func(T) string, del func(*T) *bool) []T {
	pos := make(map[string]int, len(rows))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		i, seen := pos[id(row)]
		if !seen {
			pos[id(row)] = len(out)
			out = append(out, row)
			continue
		}
		*del(&row) = *del(&row) || *del(&out[i])
		out[i] = row
	}
	return out
}
