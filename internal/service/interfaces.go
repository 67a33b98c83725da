package service

import (
	"context"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/filter"
	"github.com/alexanderramin/wbs/internal/mutation"
	"github.com/alexanderramin/wbs/internal/schedule"
	"github.com/alexanderramin/wbs/internal/tasks"
	"github.com/alexanderramin/wbs/internal/wbstree"
)

// Mutating methods return whether anything changed. Unknown ids are no-ops;
// only Get reports domain.ErrUnknownID.
type WBSService interface {
	Add(ctx context.Context, in mutation.NewNode) (*domain.WBSNode, error)
	Get(ctx context.Context, id string) (*domain.WBSNode, error)
	List(ctx context.Context) []*domain.WBSNode
	Tree(ctx context.Context) []wbstree.Entry
	Rename(ctx context.Context, id, name string) (bool, error)
	SetDates(ctx context.Context, id string, edit mutation.DateEdit) (bool, error)
	Move(ctx context.Context, id string, parentID *string) (bool, error)
	Delete(ctx context.Context, ids []string) (int, error)
	ApplyBatch(ctx context.Context, rows []mutation.WBSRowEdit) (*mutation.BatchResult, error)
	Check(ctx context.Context) IntegrityReport
}

type TaskService interface {
	Add(ctx context.Context, in mutation.NewTask) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, wbsID *string) []*domain.Task
	Update(ctx context.Context, id string, edit mutation.TaskEdit) (bool, error)
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) (bool, error)
	SetDetails(ctx context.Context, id string, priority domain.Priority, description string) (bool, error)
	Delete(ctx context.Context, ids []string) (int, error)
	ApplyBatch(ctx context.Context, rows []mutation.TaskRowEdit) (*mutation.BatchResult, error)
}

type ViewService interface {
	Filtered(ctx context.Context, c filter.Criteria) *domain.Dataset
	Schedule(ctx context.Context, c filter.Criteria, opts schedule.Options) (*schedule.View, error)
	Board(ctx context.Context, c filter.Criteria, wbsID *string) []tasks.Column
	Summary(ctx context.Context, c filter.Criteria) []tasks.StatusCount
	Label(ctx context.Context, wbsID *string) string
	Risks(ctx context.Context, c filter.Criteria) []schedule.NodeRisk
}

// IntegrityReport lists the data problems that loading tolerates.
type IntegrityReport struct {
	Orphans       []*domain.WBSNode
	DanglingTasks []*domain.Task
}

func (r IntegrityReport) OK() bool {
	return len(r.Orphans) == 0 && len(r.DanglingTasks) == 0
}
