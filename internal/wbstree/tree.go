// Package wbstree derives structure from the flat parent-pointer WBS
// records. The child index is rebuilt on every call; nothing here caches
// or mutates the nodes it is given.
package wbstree

import (
	"fmt"

	"github.com/alexanderramin/wbs/internal/domain"
)

// RootKey is the ChildIndex key under which top-level nodes are listed.
const RootKey = ""

// ChildIndex maps a parent id (RootKey for none) to its children in
// original sequence order.
type ChildIndex map[string][]*domain.WBSNode

// Entry is one row of a depth-first traversal.
type Entry struct {
	Node  *domain.WBSNode
	Depth int
}

// BuildChildIndex groups nodes by parent reference, preserving sibling order.
func BuildChildIndex(nodes []*domain.WBSNode) ChildIndex {
	idx := make(ChildIndex, len(nodes))
	for _, n := range nodes {
		key := RootKey
		if n.ParentID != nil {
			key = *n.ParentID
		}
		idx[key] = append(idx[key], n)
	}
	return idx
}

// FlattenDepthFirst lists nodes in pre-order starting from every top-level
// node. Nodes whose parent does not exist are treated as top-level so they
// stay visible. Parents always precede their descendants and siblings keep
// their relative order.
func FlattenDepthFirst(nodes []*domain.WBSNode) []Entry {
	idx := BuildChildIndex(nodes)
	exists := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		exists[n.ID] = true
	}

	out := make([]Entry, 0, len(nodes))
	visited := make(map[string]bool, len(nodes))

	var walk func(n *domain.WBSNode, depth int)
	walk = func(n *domain.WBSNode, depth int) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		out = append(out, Entry{Node: n, Depth: depth})
		for _, c := range idx[n.ID] {
			walk(c, depth+1)
		}
	}

	for _, n := range nodes {
		if n.IsTopLevel() || !exists[*n.ParentID] {
			walk(n, 0)
		}
	}
	return out
}

// Descendants returns the ids transitively reachable as children of rootID,
// excluding rootID itself.
func Descendants(nodes []*domain.WBSNode, rootID string) map[string]bool {
	return descendantsIn(BuildChildIndex(nodes), rootID)
}

func descendantsIn(idx ChildIndex, rootID string) map[string]bool {
	out := make(map[string]bool)
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range idx[id] {
			if c.ID == rootID || out[c.ID] {
				continue
			}
			out[c.ID] = true
			stack = append(stack, c.ID)
		}
	}
	return out
}

// DescendantsMap computes Descendants for every node at once from a single
// child index. Used by batch edits that validate against one snapshot.
func DescendantsMap(nodes []*domain.WBSNode) map[string]map[string]bool {
	idx := BuildChildIndex(nodes)
	out := make(map[string]map[string]bool, len(nodes))
	for _, n := range nodes {
		out[n.ID] = descendantsIn(idx, n.ID)
	}
	return out
}

// ValidateReparent checks that nodeID may be moved under candidate. A nil
// candidate means top-level and is always allowed.
func ValidateReparent(nodes []*domain.WBSNode, nodeID string, candidate *string) error {
	if candidate == nil {
		return nil
	}
	if *candidate == nodeID {
		return fmt.Errorf("%w: %s", domain.ErrInvalidReparent, nodeID)
	}
	found := false
	for _, n := range nodes {
		if n.ID == *candidate {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", domain.ErrUnknownParent, *candidate)
	}
	if Descendants(nodes, nodeID)[*candidate] {
		return fmt.Errorf("%w: %s is a descendant of %s", domain.ErrInvalidReparent, *candidate, nodeID)
	}
	return nil
}
