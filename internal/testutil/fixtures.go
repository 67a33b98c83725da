package testutil

import (
	"time"

	"github.com/alexanderramin/wbs/internal/dates"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/google/uuid"
)

// WBSNode options
type NodeOption func(*domain.WBSNode)

func WithParentID(id string) NodeOption {
	return func(n *domain.WBSNode) {
		n.ParentID = &id
	}
}

func WithPlanned(start, end string) NodeOption {
	return func(n *domain.WBSNode) {
		n.PlannedStart = dates.MustParse(start)
		n.PlannedEnd = dates.MustParse(end)
	}
}

func WithActual(start, end string) NodeOption {
	return func(n *domain.WBSNode) {
		n.ActualStart = dates.MustParse(start)
		n.ActualEnd = dates.MustParse(end)
	}
}

func WithNodeID(id string) NodeOption {
	return func(n *domain.WBSNode) {
		n.ID = id
	}
}

func NewTestNode(name string, opts ...NodeOption) *domain.WBSNode {
	n := &domain.WBSNode{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Task options
type TaskOption func(*domain.Task)

func WithWBS(id string) TaskOption {
	return func(t *domain.Task) {
		t.WBSID = &id
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithDue(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Due = dates.Ptr(d)
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:     uuid.New().String(),
		Title:  title,
		Status: domain.StatusTodo,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestDataset builds the three-level fixture A > B > C plus a separate
// top-level D, with one task on B, one on C and one unassigned.
func NewTestDataset() *domain.Dataset {
	a := NewTestNode("A", WithNodeID("A"), WithPlanned("2024-01-01", "2024-03-31"))
	b := NewTestNode("B", WithNodeID("B"), WithParentID("A"), WithPlanned("2024-01-15", "2024-02-15"))
	c := NewTestNode("C", WithNodeID("C"), WithParentID("B"))
	c.ActualStart = dates.MustParse("2024-01-20")
	d := NewTestNode("D", WithNodeID("D"), WithPlanned("2024-04-01", "2024-04-30"))

	return &domain.Dataset{
		WBS: []*domain.WBSNode{a, b, c, d},
		Tasks: []*domain.Task{
			NewTestTask("design", WithTaskID("t-b"), WithWBS("B"), WithStatus(domain.StatusDoing)),
			NewTestTask("mockups", WithTaskID("t-c"), WithWBS("C")),
			NewTestTask("triage", WithTaskID("t-x"), WithStatus(domain.StatusDone)),
		},
	}
}
