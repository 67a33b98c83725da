// Package filter narrows a dataset by date range, task status and WBS name.
package filter

import (
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
)

// Criteria selects which records survive Apply. Unset fields do not
// constrain anything.
type Criteria struct {
	Enabled   bool
	DateStart *time.Time
	DateEnd   *time.Time
	Status    domain.TaskStatus
	NameQuery string
}

// IsZero reports whether the criteria would keep every record.
func (c Criteria) IsZero() bool {
	return !c.Enabled || (c.DateStart == nil && c.DateEnd == nil && c.Status == "" && c.NameQuery == "")
}

// Apply returns the records of ds that match c. When filtering is disabled
// ds itself is returned. Otherwise the result holds clones, so callers may
// not use it to mutate the source.
func Apply(ds *domain.Dataset, c Criteria) *domain.Dataset {
	if !c.Enabled {
		return ds
	}

	out := domain.NewDataset()
	for _, n := range ds.WBS {
		if nodeMatches(n, c) {
			out.WBS = append(out.WBS, n.Clone())
		}
	}

	var allowed map[string]bool
	if c.NameQuery != "" {
		allowed = make(map[string]bool, len(out.WBS))
		for _, n := range out.WBS {
			allowed[n.ID] = true
		}
	}

	for _, t := range ds.Tasks {
		if taskMatches(t, c, allowed) {
			out.Tasks = append(out.Tasks, t.Clone())
		}
	}
	return out
}

// nodeMatches tests the planned start (or planned end when the start is
// missing) against the range, then the name query.
func nodeMatches(n *domain.WBSNode, c Criteria) bool {
	target := n.PlannedStart
	if target == nil {
		target = n.PlannedEnd
	}
	if !dates.Within(target, c.DateStart, c.DateEnd) {
		return false
	}
	if c.NameQuery != "" && !strings.Contains(n.Name, c.NameQuery) {
		return false
	}
	return true
}

// allowed is nil unless a name query narrowed the WBS set. Unassigned tasks
// always pass it; tasks pointing at a missing node never do.
func taskMatches(t *domain.Task, c Criteria, allowed map[string]bool) bool {
	if c.Status != "" && t.Status != c.Status {
		return false
	}
	if !dates.Within(t.Due, c.DateStart, c.DateEnd) {
		return false
	}
	if allowed != nil && t.WBSID != nil && !allowed[*t.WBSID] {
		return false
	}
	return true
}
