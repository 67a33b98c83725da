package domain

import "time"

// WBSNode is one element of the work breakdown structure. Hierarchy is
// expressed only through ParentID; a nil ParentID marks a top-level node.
type WBSNode struct {
	ID           string
	Name         string
	ParentID     *string
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
}

// IsTopLevel reports whether the node has no parent reference.
func (n *WBSNode) IsTopLevel() bool {
	return n.ParentID == nil
}

// InProgress reports whether actual work started but has not finished.
func (n *WBSNode) InProgress() bool {
	return n.ActualStart != nil && n.ActualEnd == nil
}

// Clone returns a deep copy of the node.
func (n *WBSNode) Clone() *WBSNode {
	c := *n
	c.ParentID = cloneStr(n.ParentID)
	c.PlannedStart = cloneTime(n.PlannedStart)
	c.PlannedEnd = cloneTime(n.PlannedEnd)
	c.ActualStart = cloneTime(n.ActualStart)
	c.ActualEnd = cloneTime(n.ActualEnd)
	return &c
}
