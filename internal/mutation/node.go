// Package mutation applies validated edits to a domain.Dataset. Functions
// here mutate the dataset in place and report what changed; persisting the
// result is the caller's job.
package mutation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbstree"
	"github.com/google/uuid"
)

// NewNode carries the fields accepted when a WBS node is created.
type NewNode struct {
	Name         string
	ParentID     *string
	PlannedStart *time.Time
	PlannedEnd   *time.Time
}

// AddNode appends a node to the dataset. The parent, when given, must exist.
// Planned end before planned start is rejected here and only here; later
// date edits accept any order.
func AddNode(ds *domain.Dataset, in NewNode) (*domain.WBSNode, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	if in.ParentID != nil && ds.Node(*in.ParentID) == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownParent, *in.ParentID)
	}
	if dates.Before(in.PlannedEnd, in.PlannedStart) {
		return nil, fmt.Errorf("%w: planned end %s is before planned start %s",
			domain.ErrInvalidDateRange, dates.Format(in.PlannedEnd), dates.Format(in.PlannedStart))
	}

	n := &domain.WBSNode{
		ID:           uuid.New().String(),
		Name:         name,
		ParentID:     copyStr(in.ParentID),
		PlannedStart: copyDate(in.PlannedStart),
		PlannedEnd:   copyDate(in.PlannedEnd),
	}
	ds.WBS = append(ds.WBS, n)
	return n, nil
}

// DateEdit is the full set of four schedule dates for a node.
type DateEdit struct {
	PlannedStart *time.Time
	PlannedEnd   *time.Time
	ActualStart  *time.Time
	ActualEnd    *time.Time
}

// DatesOf captures a node's current dates as an edit.
func DatesOf(n *domain.WBSNode) DateEdit {
	return DateEdit{
		PlannedStart: copyDate(n.PlannedStart),
		PlannedEnd:   copyDate(n.PlannedEnd),
		ActualStart:  copyDate(n.ActualStart),
		ActualEnd:    copyDate(n.ActualEnd),
	}
}

// ApplyDateEdit overwrites all four dates when at least one differs from
// the node's current values and reports whether anything changed. No
// ordering between the dates is enforced.
func ApplyDateEdit(n *domain.WBSNode, e DateEdit) bool {
	if dates.Equal(n.PlannedStart, e.PlannedStart) &&
		dates.Equal(n.PlannedEnd, e.PlannedEnd) &&
		dates.Equal(n.ActualStart, e.ActualStart) &&
		dates.Equal(n.ActualEnd, e.ActualEnd) {
		return false
	}
	n.PlannedStart = copyDate(e.PlannedStart)
	n.PlannedEnd = copyDate(e.PlannedEnd)
	n.ActualStart = copyDate(e.ActualStart)
	n.ActualEnd = copyDate(e.ActualEnd)
	return true
}

// RenameNode changes a node's name. Unknown ids are a no-op.
func RenameNode(ds *domain.Dataset, id, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, domain.ErrEmptyName
	}
	n := ds.Node(id)
	if n == nil || n.Name == name {
		return false, nil
	}
	n.Name = name
	return true, nil
}

// ApplyReparent moves nodeID under newParent (nil for top level) after
// validating the move against the current tree. Nothing is mutated when
// validation fails. Unknown node ids are a no-op.
func ApplyReparent(nodes []*domain.WBSNode, nodeID string, newParent *string) (bool, error) {
	var target *domain.WBSNode
	for _, n := range nodes {
		if n.ID == nodeID {
			target = n
			break
		}
	}
	if target == nil {
		return false, nil
	}
	if err := wbstree.ValidateReparent(nodes, nodeID, newParent); err != nil {
		return false, err
	}
	if domain.StrPtrEqual(target.ParentID, newParent) {
		return false, nil
	}
	target.ParentID = copyStr(newParent)
	return true, nil
}

func copyStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyDate(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	d := dates.Truncate(*p)
	return &d
}
