package wbstree

import (
	"github.com/alexanderramin/wbs/internal/domain"
)

// Orphans returns the nodes whose parent reference points at a missing node.
func Orphans(nodes []*domain.WBSNode) []*domain.WBSNode {
	exists := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		exists[n.ID] = true
	}
	var out []*domain.WBSNode
	for _, n := range nodes {
		if !n.IsTopLevel() && !exists[*n.ParentID] {
			out = append(out, n)
		}
	}
	return out
}

// FindCycle returns the ids of one parent cycle, in parent-walk order, or
// nil when the parent graph is acyclic.
func FindCycle(nodes []*domain.WBSNode) []string {
	parent := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if n.ParentID != nil {
			parent[n.ID] = *n.ParentID
		}
	}

	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[string]int, len(nodes))

	for _, n := range nodes {
		if state[n.ID] != unvisited {
			continue
		}
		var path []string
		id := n.ID
		for {
			if state[id] == done {
				break
			}
			if state[id] == onPath {
				for i, p := range path {
					if p == id {
						return append([]string(nil), path[i:]...)
					}
				}
				break
			}
			state[id] = onPath
			path = append(path, id)
			next, ok := parent[id]
			if !ok {
				break
			}
			id = next
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}

// Path returns the ancestor chain of id from the top-level node down to id
// itself. Dangling or cyclic references end the walk.
func Path(nodes []*domain.WBSNode, id string) []*domain.WBSNode {
	idx := make(map[string]*domain.WBSNode, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n
	}
	var rev []*domain.WBSNode
	seen := make(map[string]bool)
	for cur, ok := idx[id]; ok && !seen[cur.ID]; {
		seen[cur.ID] = true
		rev = append(rev, cur)
		if cur.IsTopLevel() {
			break
		}
		cur, ok = idx[*cur.ParentID]
	}
	out := make([]*domain.WBSNode, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}
