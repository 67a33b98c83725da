package mutation

import (
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

// ExpandCascade returns targetIDs plus every transitive descendant of every
// target. Expansion repeats until no new id is added.
func ExpandCascade(nodes []*domain.WBSNode, targetIDs []string) map[string]bool {
	return expandWith(wbstree.DescendantsMap(nodes), targetIDs)
}

func expandWith(desc map[string]map[string]bool, targetIDs []string) map[string]bool {
	set := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		set[id] = true
	}
	for {
		added := false
		for id := range set {
			for d := range desc[id] {
				if !set[d] {
					set[d] = true
					added = true
				}
			}
		}
		if !added {
			return set
		}
	}
}

// DeleteWBSCascade removes the targets and all their descendants, and
// unassigns (never deletes) every task that referenced a removed node. It
// returns the number of nodes actually removed.
func DeleteWBSCascade(ds *domain.Dataset, targetIDs []string) int {
	return removeNodes(ds, ExpandCascade(ds.WBS, targetIDs))
}

func removeNodes(ds *domain.Dataset, set map[string]bool) int {
	if len(set) == 0 {
		return 0
	}
	kept := make([]*domain.WBSNode, 0, len(ds.WBS))
	for _, n := range ds.WBS {
		if !set[n.ID] {
			kept = append(kept, n)
		}
	}
	removed := len(ds.WBS) - len(kept)
	ds.WBS = kept

	for _, t := range ds.Tasks {
		if t.WBSID != nil && set[*t.WBSID] {
			t.WBSID = nil
		}
	}
	return removed
}

// DeleteTasks removes the tasks whose id is in targetIDs and returns how
// many were removed. Unknown ids are ignored.
func DeleteTasks(ds *domain.Dataset, targetIDs []string) int {
	set := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		set[id] = true
	}
	return removeTasks(ds, set)
}

func removeTasks(ds *domain.Dataset, set map[string]bool) int {
	if len(set) == 0 {
		return 0
	}
	kept := make([]*domain.Task, 0, len(ds.Tasks))
	for _, t := range ds.Tasks {
		if !set[t.ID] {
			kept = append(kept, t)
		}
	}
	removed := len(ds.Tasks) - len(kept)
	ds.Tasks = kept
	return removed
}
